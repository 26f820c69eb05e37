package testing

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua",
}

// CreateRandomPayload returns `size` bytes of random data. It is guaranteed to
// either return a valid slice or fail the test and abort.
func CreateRandomPayload(size int, t *testing.T) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

// CreateTextPayload returns `size` bytes of text-like data. Word order follows
// a fixed pseudo-random sequence so the output is the same on every call, and
// there's enough repetition for the predictor to get a decent hit rate.
func CreateTextPayload(size int) []byte {
	data := make([]byte, 0, size+16)
	state := uint32(2463534242)

	for len(data) < size {
		// xorshift32
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5

		data = append(data, loremWords[state%uint32(len(loremWords))]...)
		if state%11 == 0 {
			data = append(data, ". "...)
		} else {
			data = append(data, ' ')
		}
	}
	return data[:size]
}

// InterestingSizes gives input lengths around the PPP block boundaries, along
// with the usual tiny cases.
func InterestingSizes(blockSize int) []int {
	return []int{
		0,
		1,
		2,
		7,
		8,
		9,
		blockSize - 1,
		blockSize,
		blockSize + 1,
		2 * blockSize,
		2*blockSize + 13,
	}
}
