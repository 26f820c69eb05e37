// Package ppp implements the block-oriented hit/miss bitmap back end.
//
// Input is split into blocks of [BlockSize] bytes. For every block the encoder
// writes one bit per byte (1 if the predictor guessed the byte, 0 if it didn't)
// followed by the bytes it missed, in order:
//
//	+-----------------------+--------------------+
//	| bitmap, 1 bit/byte    | mispredicted bytes |
//	+-----------------------+--------------------+
//
// A full block's bitmap is exactly 4096 bytes so the literals always start on a
// byte boundary. The final block may be shorter; its bitmap is padded with zero
// bits up to the next byte boundary before its literals are written.
//
// The stream itself doesn't record how many blocks it contains. That's up to
// the container, which must hand the decoder a [BlockCounts].

package ppp

import "fmt"

const (
	// BlockBits is log2 of [BlockSize].
	BlockBits = 15
	// BlockSize is the number of bytes covered by one bitmap.
	BlockSize = 1 << BlockBits
)

// BlockCounts describes the shape of an encoded stream.
type BlockCounts struct {
	// FullBlocks is the number of complete [BlockSize]-byte blocks.
	FullBlocks uint64
	// LastBlockSize is the size of the trailing partial block, or 0 if there is
	// none. It's always less than [BlockSize].
	LastBlockSize int
}

// CountsForLength returns the block counts for an input of `length` bytes.
func CountsForLength(length uint64) BlockCounts {
	return BlockCounts{
		FullBlocks:    length / BlockSize,
		LastBlockSize: int(length % BlockSize),
	}
}

// TotalBytes gives the size of the uncompressed data described by the counts.
func (counts BlockCounts) TotalBytes() uint64 {
	return counts.FullBlocks*BlockSize + uint64(counts.LastBlockSize)
}

// Validate checks that the counts describe a stream this package can produce.
func (counts BlockCounts) Validate() error {
	if counts.LastBlockSize < 0 || counts.LastBlockSize >= BlockSize {
		return fmt.Errorf(
			"last block size %d not in the range [0, %d)",
			counts.LastBlockSize,
			BlockSize,
		)
	}
	return nil
}
