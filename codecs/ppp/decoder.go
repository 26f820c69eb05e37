package ppp

import (
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/praq/codecs/common"
	"github.com/dargueta/praq/utilities/bitio"
	"github.com/nuclio/logger"
)

// Decoder reconstructs the original bytes from bitmap blocks.
type Decoder struct {
	predictor *common.Predictor
	in        *bitio.Reader
	log       logger.Logger

	hits  bitmap.Bitmap
	block []byte
}

// NewDecoder creates a decoder reading from `in`. `log` may be nil.
func NewDecoder(in *bitio.Reader, log logger.Logger) *Decoder {
	return &Decoder{
		predictor: common.NewPredictor(),
		in:        in,
		log:       log,
		hits:      bitmap.New(BlockSize),
		block:     make([]byte, BlockSize),
	}
}

// Decode reads exactly as many blocks as `counts` describes and writes the
// decompressed data to `output`. A block is only written once it's been
// completely reconstructed.
//
// The returned int64 is the number of bytes written to `output`.
func (d *Decoder) Decode(counts BlockCounts, output io.Writer) (int64, error) {
	err := counts.Validate()
	if err != nil {
		return 0, err
	}

	totalWritten := int64(0)
	for i := uint64(0); i < counts.FullBlocks; i++ {
		n, err := d.decodeBlock(BlockSize, output)
		totalWritten += n
		if err != nil {
			return totalWritten, fmt.Errorf("block %d: %w", i, err)
		}
	}

	if counts.LastBlockSize > 0 {
		n, err := d.decodeBlock(counts.LastBlockSize, output)
		totalWritten += n
		if err != nil {
			return totalWritten, fmt.Errorf("block %d: %w", counts.FullBlocks, err)
		}
	}
	return totalWritten, nil
}

func (d *Decoder) decodeBlock(size int, output io.Writer) (int64, error) {
	for i := 0; i < size; i++ {
		bit, err := d.in.GetBit()
		if err != nil {
			return 0, fmt.Errorf("failed to read bitmap: %w", err)
		}
		d.hits.Set(i, bit)
	}

	if size < BlockSize {
		d.in.AlignToByte()
	}

	literals := 0
	for i := 0; i < size; i++ {
		var c byte
		if d.hits.Get(i) {
			c = d.predictor.Predict()
		} else {
			var err error
			c, err = d.in.GetByte()
			if err != nil {
				return 0, fmt.Errorf("failed to read literal %d: %w", literals, err)
			}
			literals++
		}

		d.block[i] = c
		d.predictor.Observe(c)
		d.predictor.Advance(c)
	}

	common.DebugWith(d.log, "Decoded block", "size", size, "literals", literals)

	n, err := output.Write(d.block[:size])
	if err != nil {
		return int64(n), fmt.Errorf("failed to write to output: %w", err)
	}
	return int64(n), nil
}
