package bitio

import (
	"errors"
	"fmt"
	"io"

	kanzi "github.com/flanglet/kanzi-go"
	"github.com/flanglet/kanzi-go/bitstream"
)

// ErrQuotientTooLarge is returned by [Reader.GetGolombLimited] when the unary
// part of a code is longer than the caller allows.
var ErrQuotientTooLarge = errors.New("golomb quotient exceeds limit")

// Reader consumes a stream one bit at a time, most significant bit first.
//
// The underlying stream is read ahead in large chunks, so bytes past the end
// of the bit stream may be consumed from it.
type Reader struct {
	ibs    kanzi.InputBitStream
	source *sourceStream
	err    error
}

// NewReader creates a Reader buffering input from `in`.
func NewReader(in io.Reader) *Reader {
	r := &Reader{source: &sourceStream{in: in}}
	ibs, err := bitstream.NewDefaultInputBitStream(r.source, bufferSize)
	if err != nil {
		r.err = fmt.Errorf("failed to create bit stream: %w", err)
		return r
	}
	r.ibs = ibs
	return r
}

// do runs `op` against the bit stream, converting kanzi's panics and reads
// past the end of the input into a returned error. Errors are sticky.
func (r *Reader) do(action string, op func(kanzi.InputBitStream)) (err error) {
	if r.err != nil {
		return r.err
	}

	defer func() {
		if err != nil {
			r.err = err
		}
	}()
	defer recoverStreamPanic(&err, action)

	op(r.ibs)
	return r.source.check(r.ibs.Read())
}

// GetBit consumes one bit from the stream.
func (r *Reader) GetBit() (bool, error) {
	bit := 0
	err := r.do("reading a bit", func(ibs kanzi.InputBitStream) {
		bit = ibs.ReadBit()
	})
	return bit != 0, err
}

// GetBits consumes `n` bits and returns them as an integer, the first bit read
// being the most significant. `n` must not exceed 64.
func (r *Reader) GetBits(n uint) (uint64, error) {
	if n == 0 {
		return 0, r.err
	}

	value := uint64(0)
	err := r.do("reading bits", func(ibs kanzi.InputBitStream) {
		value = ibs.ReadBits(n)
	})
	return value, err
}

// GetByte consumes eight bits.
func (r *Reader) GetByte() (byte, error) {
	value, err := r.GetBits(8)
	return byte(value), err
}

// GetGolomb reads a Golomb-Rice code with a `k`-bit remainder. The quotient is
// unbounded.
func (r *Reader) GetGolomb(k uint) (uint64, error) {
	return r.GetGolombLimited(k, ^uint64(0))
}

// GetGolombLimited reads a Golomb-Rice code with a `k`-bit remainder, failing
// with [ErrQuotientTooLarge] as soon as the quotient exceeds `maxQuotient`.
// This lets callers reject garbage without consuming the rest of the stream.
func (r *Reader) GetGolombLimited(k uint, maxQuotient uint64) (uint64, error) {
	quotient := uint64(0)
	for {
		bit, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			break
		}
		if quotient == maxQuotient {
			return 0, fmt.Errorf("%w: more than %d", ErrQuotientTooLarge, maxQuotient)
		}
		quotient++
	}

	remainder, err := r.GetBits(k)
	if err != nil {
		return 0, err
	}
	return (quotient << k) | remainder, nil
}

// AlignToByte discards any unread bits left in the current byte. Those bits
// were already fetched along with the rest of their byte, so this can't run
// out of input.
func (r *Reader) AlignToByte() {
	if r.err != nil {
		return
	}
	skip := (8 - r.ibs.Read()%8) % 8
	if skip > 0 {
		_, _ = r.GetBits(uint(skip))
	}
}

// BytesRead gives the number of bytes of the bit stream consumed so far,
// counting a partially read byte as a whole one. This doesn't include bytes
// read ahead from the underlying stream.
func (r *Reader) BytesRead() int64 {
	if r.ibs == nil {
		return 0
	}
	return int64((r.ibs.Read() + 7) / 8)
}
