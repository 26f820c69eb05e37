// Package vlc implements the run-length + move-to-front residual back end.
//
// The encoder walks the input once. Runs of correctly predicted bytes are
// counted but not written. When the predictor misses, the pending run is
// flushed and the missed byte is written as its rank in a move-to-front list:
//
//	flush:  0                      no pending run
//	        1 <golomb(run-1, 0)>   run of `run` predicted bytes
//	miss:   <golomb(rank, 3)>
//
// The stream ends with a final flush followed by golomb(256, 3), a value no
// rank can take.
//
// On top of the move-to-front list's recency order, both sides track how often
// each byte has been seen and keep a "rank cursor" on the byte with the highest
// count seen so far. Each predicted byte bumps the cursor to the front of the
// list, so a byte that's frequent overall stays cheap to code even when it
// hasn't been missed recently.

package vlc

import (
	"errors"

	"github.com/dargueta/praq/codecs/common"
	"github.com/dargueta/praq/utilities/mtf"
)

const (
	// RankBits is the width of the fixed field in rank codes.
	RankBits = 3
	// EndOfStream is the rank code that terminates a stream.
	EndOfStream = mtf.AlphabetSize
	// DefaultChunkSize is how much input the encoder reads at a time.
	DefaultChunkSize = 1 << 20

	maxRankQuotient = EndOfStream >> RankBits
)

// ErrInvalidRank is returned when a rank code decodes to a value that is
// neither a valid rank nor [EndOfStream].
var ErrInvalidRank = errors.New("rank code out of range")

// model is the adaptive state the encoder and decoder both maintain. It must
// evolve identically on both sides.
type model struct {
	predictor *common.Predictor
	ranks     *mtf.List
	frequency [mtf.AlphabetSize]uint64
	cursor    byte
}

func newModel() model {
	return model{
		predictor: common.NewPredictor(),
		ranks:     mtf.New(),
	}
}

// recordHit updates the model after byte `c` was predicted correctly.
func (m *model) recordHit(c byte) {
	m.frequency[c]++
	if m.frequency[c] >= m.frequency[m.cursor] {
		m.cursor = c
	}
	if m.ranks.Head() != m.cursor {
		m.ranks.Promote(m.cursor)
	}
	m.predictor.Observe(c)
	m.predictor.Advance(c)
}

// recordMiss updates the model after byte `c` was coded by rank. The caller
// must already have moved `c` to the front of the list.
func (m *model) recordMiss(c byte) {
	m.frequency[c]++
	if m.frequency[c] >= m.frequency[m.cursor] || m.ranks.Head() == c {
		m.cursor = c
	}
	m.predictor.Observe(c)
	m.predictor.Advance(c)
}
