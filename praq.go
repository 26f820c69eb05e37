package praq

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/praq/codecs/common"
	"github.com/dargueta/praq/codecs/ppp"
	"github.com/dargueta/praq/codecs/vlc"
	"github.com/dargueta/praq/utilities/bitio"
)

// Compress reads `input` until EOF and writes a complete compressed stream to
// `output` using the given mode.
//
// The header is written first. For [ModePPP] the block counts aren't known
// until the whole input has been read, so a placeholder header is written and
// then rewritten in place once compression finishes. `output` is left
// positioned at the end of the compressed data. The stream doesn't have to
// start at offset 0 of `output`.
//
// If an error occurs, the contents of `output` are unusable.
func Compress(input io.Reader, output io.WriteSeeker, mode Mode, opts *Options) (Stats, error) {
	stats := Stats{Direction: DirectionCompress, Mode: mode}

	if opts == nil {
		opts = DefaultOptions()
	}
	err := opts.validate()
	if err != nil {
		return stats, err
	}
	if !mode.Valid() {
		return stats, ErrInvalidArgument.WithMessage(
			fmt.Sprintf("can't compress with unrecognized mode %s", mode))
	}

	startOffset, err := output.Seek(0, io.SeekCurrent)
	if err != nil {
		return stats, ErrIOFailed.WithMessage("output isn't seekable").Wrap(err)
	}

	header := Header{Mode: mode}
	err = WriteHeader(output, header)
	if err != nil {
		return stats, err
	}
	stats.BytesWritten = HeaderSize

	common.InfoWith(opts.Logger, "Compressing", "mode", mode.String())

	writer := bitio.NewWriter(output)
	switch mode {
	case ModePPP:
		counts, encodeErr := ppp.NewEncoder(writer, opts.Logger).Encode(input)
		if encodeErr != nil {
			return stats, ErrIOFailed.Wrap(encodeErr)
		}
		stats.BytesRead = int64(counts.TotalBytes())
		header.BlockCount = counts.FullBlocks
		header.LastBlockSize = uint32(counts.LastBlockSize)
	case ModeVLC:
		n, encodeErr := vlc.NewEncoder(writer, opts.ReadChunkSize, opts.Logger).Encode(input)
		if encodeErr != nil {
			return stats, ErrIOFailed.Wrap(encodeErr)
		}
		stats.BytesRead = n
	}

	err = writer.Flush()
	if err != nil {
		return stats, ErrIOFailed.Wrap(err)
	}
	stats.BytesWritten += writer.BytesWritten()
	stats.BlockCount = header.BlockCount
	stats.LastBlockSize = header.LastBlockSize

	if mode == ModePPP {
		err = rewriteHeader(output, header, startOffset)
		if err != nil {
			return stats, err
		}
		common.DebugWith(opts.Logger, "Rewrote header",
			"blockCount", header.BlockCount,
			"lastBlockSize", header.LastBlockSize)
	}

	common.InfoWith(opts.Logger, "Compressed",
		"bytesRead", stats.BytesRead,
		"bytesWritten", stats.BytesWritten)
	return stats, nil
}

// rewriteHeader overwrites the header at `startOffset` and then returns to
// wherever the output was positioned before the call.
func rewriteHeader(output io.WriteSeeker, header Header, startOffset int64) error {
	endOffset, err := output.Seek(0, io.SeekCurrent)
	if err != nil {
		return ErrIOFailed.Wrap(err)
	}

	_, err = output.Seek(startOffset, io.SeekStart)
	if err != nil {
		return ErrIOFailed.Wrap(err)
	}

	err = WriteHeader(output, header)
	if err != nil {
		return err
	}

	_, err = output.Seek(endOffset, io.SeekStart)
	if err != nil {
		return ErrIOFailed.Wrap(err)
	}
	return nil
}

// Decompress reads a compressed stream from `input` and writes the original
// data to `output`. Only the bytes belonging to the stream are consumed from
// `input`, though buffering may read further ahead.
//
// If an error occurs, whatever was written to `output` must be discarded.
func Decompress(input io.Reader, output io.Writer, opts *Options) (Stats, error) {
	stats := Stats{Direction: DirectionDecompress}

	if opts == nil {
		opts = DefaultOptions()
	}
	err := opts.validate()
	if err != nil {
		return stats, err
	}

	header, err := ReadHeader(input)
	if err != nil {
		return stats, err
	}
	stats.Mode = header.Mode
	stats.BlockCount = header.BlockCount
	stats.LastBlockSize = header.LastBlockSize

	common.InfoWith(opts.Logger, "Decompressing",
		"mode", header.Mode.String(),
		"blockCount", header.BlockCount,
		"lastBlockSize", header.LastBlockSize)

	reader := bitio.NewReader(input)
	var n int64
	switch header.Mode {
	case ModePPP:
		n, err = ppp.NewDecoder(reader, opts.Logger).Decode(header.BlockCounts(), output)
	case ModeVLC:
		n, err = vlc.NewDecoder(reader, opts.Logger).Decode(output)
	}

	stats.BytesRead = HeaderSize + reader.BytesRead()
	stats.BytesWritten = n
	if err != nil {
		return stats, classifyDecodeError(err)
	}

	common.InfoWith(opts.Logger, "Decompressed",
		"bytesRead", stats.BytesRead,
		"bytesWritten", stats.BytesWritten)
	return stats, nil
}

// classifyDecodeError maps an error from a decoder onto one of the package's
// error categories.
func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ErrTruncatedStream.Wrap(err)
	case errors.Is(err, vlc.ErrInvalidRank):
		return ErrInvalidFormat.Wrap(err)
	default:
		return ErrIOFailed.Wrap(err)
	}
}
