package praq

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xaionaro-go/bytesextra"
)

// MaxCompressedSize gives an upper bound on the size of the compressed stream,
// header included, for `length` bytes of input in the given mode.
func MaxCompressedSize(length int, mode Mode) int {
	if mode == ModePPP {
		// One bit per byte, plus every byte as a literal.
		return HeaderSize + length + (length+7)/8
	}

	// The most expensive byte is a miss at rank 255: a flag bit plus a 36-bit
	// rank code. Runs cost at most one bit per byte plus their flag. The
	// terminator is another 37 bits at most.
	return HeaderSize + 5*length + 16
}

// CompressBytes is a convenience function wrapping [Compress]. It functions
// identically, except it compresses a byte slice and returns the compressed
// stream in a new byte slice.
func CompressBytes(data []byte, mode Mode, opts *Options) ([]byte, error) {
	if !mode.Valid() {
		return nil, ErrInvalidArgument.WithMessage(
			fmt.Sprintf("can't compress with unrecognized mode %s", mode))
	}

	stream := bytesextra.NewReadWriteSeeker(make([]byte, MaxCompressedSize(len(data), mode)))

	stats, err := Compress(bytes.NewReader(data), stream, mode, opts)
	if err != nil {
		return nil, err
	}

	_, err = stream.Seek(0, io.SeekStart)
	if err != nil {
		return nil, ErrIOFailed.Wrap(err)
	}

	compressed := make([]byte, stats.BytesWritten)
	_, err = io.ReadFull(stream, compressed)
	if err != nil {
		return nil, ErrIOFailed.Wrap(err)
	}
	return compressed, nil
}

// DecompressBytes is a convenience function wrapping [Decompress]. It returns
// the decompressed data in a new byte slice.
func DecompressBytes(data []byte, opts *Options) ([]byte, error) {
	output := bytes.Buffer{}
	_, err := Decompress(bytes.NewReader(data), &output, opts)
	if err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
