package bitio

import (
	"errors"
	"fmt"
	"io"

	kanzi "github.com/flanglet/kanzi-go"
	"github.com/flanglet/kanzi-go/bitstream"
)

var errWriterClosed = errors.New("writer already flushed")

// Writer packs individual bits into bytes and writes them to an underlying
// stream.
type Writer struct {
	obs    kanzi.OutputBitStream
	sink   *sinkStream
	err    error
	closed bool
}

// NewWriter creates a Writer that buffers its output on top of `out`. Callers
// must call [Writer.Flush] when they're done or trailing data will be lost.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{sink: &sinkStream{out: out}}
	obs, err := bitstream.NewDefaultOutputBitStream(w.sink, bufferSize)
	if err != nil {
		w.err = fmt.Errorf("failed to create bit stream: %w", err)
		return w
	}
	w.obs = obs
	return w
}

// do runs `op` against the bit stream, converting kanzi's panics and any
// write error seen by the sink into a returned error.
func (w *Writer) do(action string, op func(kanzi.OutputBitStream)) (err error) {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return errWriterClosed
	}

	defer func() {
		if err != nil {
			w.err = err
		}
	}()
	defer recoverStreamPanic(&err, action)

	op(w.obs)
	return w.sink.check()
}

// PutBit appends a single bit to the stream.
func (w *Writer) PutBit(bit bool) error {
	value := 0
	if bit {
		value = 1
	}
	return w.do("writing a bit", func(obs kanzi.OutputBitStream) {
		obs.WriteBit(value)
	})
}

// PutBits appends the lowest `n` bits of `value`, most significant first. `n`
// must not exceed 64.
func (w *Writer) PutBits(value uint64, n uint) error {
	if n == 0 {
		return nil
	}
	if n < 64 {
		value &= (uint64(1) << n) - 1
	}
	return w.do("writing bits", func(obs kanzi.OutputBitStream) {
		obs.WriteBits(value, n)
	})
}

// PutByte appends eight bits.
func (w *Writer) PutByte(b byte) error {
	return w.PutBits(uint64(b), 8)
}

// PutGolomb writes `value` as a Golomb-Rice code with a `k`-bit remainder.
func (w *Writer) PutGolomb(value uint64, k uint) error {
	for q := value >> k; q > 0; {
		chunk := q
		if chunk > 64 {
			chunk = 64
		}
		err := w.PutBits(^uint64(0), uint(chunk))
		if err != nil {
			return err
		}
		q -= chunk
	}

	err := w.PutBit(false)
	if err != nil {
		return err
	}
	return w.PutBits(value, k)
}

// AlignToByte pads the current byte with zero bits, if necessary, so that the
// next bit written starts a new byte. Padding is never interpreted as data by
// [Reader.AlignToByte].
func (w *Writer) AlignToByte() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return errWriterClosed
	}

	padding := (8 - w.obs.Written()%8) % 8
	return w.PutBits(0, uint(padding))
}

// Flush aligns the stream to a byte boundary and writes all buffered data to
// the underlying stream. The Writer can't be used afterwards.
func (w *Writer) Flush() error {
	if w.closed {
		return w.err
	}

	err := w.AlignToByte()
	if err != nil {
		return err
	}

	var closeErr error
	err = w.do("flushing", func(obs kanzi.OutputBitStream) {
		_, closeErr = obs.Close()
	})
	w.closed = true
	if err == nil && closeErr != nil {
		err = closeErr
		w.err = err
	}
	return err
}

// BytesWritten gives the number of complete bytes produced so far. Once
// [Writer.Flush] has been called it's exactly the number of bytes the
// underlying stream accepted.
func (w *Writer) BytesWritten() int64 {
	if w.closed || w.err != nil {
		return w.sink.bytesWritten
	}
	return int64(w.obs.Written() / 8)
}
