package ppp

import (
	"errors"
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/praq/codecs/common"
	"github.com/dargueta/praq/utilities/bitio"
	"github.com/nuclio/logger"
)

// Encoder compresses a byte stream into bitmap blocks.
type Encoder struct {
	predictor *common.Predictor
	out       *bitio.Writer
	log       logger.Logger

	chunk    []byte
	hits     bitmap.Bitmap
	literals []byte
}

// NewEncoder creates an encoder writing to `out`. `log` may be nil.
func NewEncoder(out *bitio.Writer, log logger.Logger) *Encoder {
	return &Encoder{
		predictor: common.NewPredictor(),
		out:       out,
		log:       log,
		chunk:     make([]byte, BlockSize),
		hits:      bitmap.New(BlockSize),
		literals:  make([]byte, 0, BlockSize),
	}
}

// Encode compresses everything in `input` until EOF. It doesn't flush the
// output; the caller owns the writer.
//
// The returned counts are valid only if no error occurred.
func (e *Encoder) Encode(input io.Reader) (BlockCounts, error) {
	total := uint64(0)

	for {
		n, err := io.ReadFull(input, e.chunk)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return CountsForLength(total), fmt.Errorf("error reading input: %w", err)
		}
		if n == 0 {
			return CountsForLength(total), nil
		}

		index := total / BlockSize
		e.predictBlock(e.chunk[:n])
		err = e.writeBlock(n)
		if err != nil {
			return CountsForLength(total), fmt.Errorf("block %d: %w", index, err)
		}
		total += uint64(n)

		common.DebugWith(e.log, "Encoded block",
			"index", index,
			"size", n,
			"literals", len(e.literals),
			"context", e.predictor.Context())

		if n < BlockSize {
			// ReadFull only comes up short at the end of the input.
			return CountsForLength(total), nil
		}
	}
}

// predictBlock fills in the hit bitmap and literal list for `block`.
func (e *Encoder) predictBlock(block []byte) {
	e.literals = e.literals[:0]

	for i, c := range block {
		hit := e.predictor.Predict() == c
		e.hits.Set(i, hit)
		if !hit {
			e.literals = append(e.literals, c)
		}
		e.predictor.Observe(c)
		e.predictor.Advance(c)
	}
}

func (e *Encoder) writeBlock(size int) error {
	for i := 0; i < size; i++ {
		err := e.out.PutBit(e.hits.Get(i))
		if err != nil {
			return err
		}
	}

	if size < BlockSize {
		err := e.out.AlignToByte()
		if err != nil {
			return err
		}
	}

	for _, c := range e.literals {
		err := e.out.PutByte(c)
		if err != nil {
			return err
		}
	}
	return nil
}
