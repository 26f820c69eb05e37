package vlc

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/praq/codecs/common"
	"github.com/dargueta/praq/utilities/bitio"
	"github.com/nuclio/logger"
)

// Encoder compresses a byte stream into run-length and rank codes.
type Encoder struct {
	model
	out   *bitio.Writer
	log   logger.Logger
	chunk []byte

	run     uint64
	flushes uint64
	misses  uint64
}

// NewEncoder creates an encoder writing to `out`, reading its input
// `chunkSize` bytes at a time. A `chunkSize` of 0 means [DefaultChunkSize].
// `log` may be nil.
func NewEncoder(out *bitio.Writer, chunkSize int, log logger.Logger) *Encoder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Encoder{
		model: newModel(),
		out:   out,
		log:   log,
		chunk: make([]byte, chunkSize),
	}
}

// Encode compresses everything in `input` until EOF and terminates the stream.
// It doesn't flush the output; the caller owns the writer.
//
// The returned int64 is the number of bytes read from `input`.
func (e *Encoder) Encode(input io.Reader) (int64, error) {
	totalRead := int64(0)

	for {
		n, err := io.ReadFull(input, e.chunk)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return totalRead, fmt.Errorf("error reading input: %w", err)
		}
		totalRead += int64(n)

		for _, c := range e.chunk[:n] {
			encodeErr := e.encodeByte(c)
			if encodeErr != nil {
				return totalRead, encodeErr
			}
		}

		if n < len(e.chunk) {
			break
		}
	}

	err := e.flushRun()
	if err != nil {
		return totalRead, err
	}
	err = e.out.PutGolomb(EndOfStream, RankBits)
	if err != nil {
		return totalRead, err
	}

	common.DebugWith(e.log, "Encoded stream",
		"bytesRead", totalRead,
		"runs", e.flushes,
		"misses", e.misses,
		"context", e.predictor.Context())
	return totalRead, nil
}

func (e *Encoder) encodeByte(c byte) error {
	if e.predictor.Predict() == c {
		e.run++
		e.recordHit(c)
		return nil
	}

	err := e.flushRun()
	if err != nil {
		return err
	}

	rank := e.ranks.RankOf(c)
	err = e.out.PutGolomb(uint64(rank), RankBits)
	if err != nil {
		return err
	}

	e.misses++
	e.recordMiss(c)
	return nil
}

// flushRun writes out the pending run, or a single 0 bit if there isn't one.
func (e *Encoder) flushRun() error {
	if e.run == 0 {
		return e.out.PutBit(false)
	}

	err := e.out.PutBit(true)
	if err != nil {
		return err
	}
	err = e.out.PutGolomb(e.run-1, 0)
	if err != nil {
		return err
	}

	e.flushes++
	e.run = 0
	return nil
}
