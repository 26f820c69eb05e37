package vlc

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/praq/codecs/common"
	"github.com/dargueta/praq/utilities/bitio"
	"github.com/nuclio/logger"
)

// Decoder reconstructs the original bytes from run-length and rank codes.
type Decoder struct {
	model
	in  *bitio.Reader
	log logger.Logger
}

// NewDecoder creates a decoder reading from `in`. `log` may be nil.
func NewDecoder(in *bitio.Reader, log logger.Logger) *Decoder {
	return &Decoder{
		model: newModel(),
		in:    in,
		log:   log,
	}
}

// Decode reads codes until it hits [EndOfStream], writing the decompressed
// bytes to `output`. Nothing after the end-of-stream code is consumed beyond
// the byte it ends in.
//
// The returned int64 is the number of bytes that reached `output`. Output is
// buffered, so if an error occurs some decoded bytes may never be written;
// they're not counted.
func (d *Decoder) Decode(output io.Writer) (int64, error) {
	out := bufio.NewWriter(output)
	produced := int64(0)

	delivered := func() int64 {
		return produced - int64(out.Buffered())
	}

	for {
		hasRun, err := d.in.GetBit()
		if err != nil {
			return delivered(), fmt.Errorf("failed to read run flag: %w", err)
		}

		if hasRun {
			length, err := d.in.GetGolomb(0)
			if err != nil {
				return delivered(), fmt.Errorf("failed to read run length: %w", err)
			}

			for i := uint64(0); i <= length; i++ {
				c := d.predictor.Predict()
				d.recordHit(c)
				err = out.WriteByte(c)
				if err != nil {
					return delivered(), fmt.Errorf("failed to write to output: %w", err)
				}
				produced++
			}
		}

		code, err := d.in.GetGolombLimited(RankBits, maxRankQuotient)
		if err != nil {
			if errors.Is(err, bitio.ErrQuotientTooLarge) {
				return delivered(), fmt.Errorf("%w: %s", ErrInvalidRank, err.Error())
			}
			return delivered(), fmt.Errorf("failed to read rank: %w", err)
		}

		if code == EndOfStream {
			break
		}
		if code > EndOfStream {
			return delivered(), fmt.Errorf("%w: got %d", ErrInvalidRank, code)
		}

		c, err := d.ranks.SymbolAt(int(code))
		if err != nil {
			return delivered(), fmt.Errorf("%w: %s", ErrInvalidRank, err.Error())
		}
		d.recordMiss(c)

		err = out.WriteByte(c)
		if err != nil {
			return delivered(), fmt.Errorf("failed to write to output: %w", err)
		}
		produced++
	}

	err := out.Flush()
	if err != nil {
		return delivered(), fmt.Errorf("failed to write to output: %w", err)
	}

	common.DebugWith(d.log, "Decoded stream",
		"bytesWritten", produced,
		"context", d.predictor.Context())
	return produced, nil
}
