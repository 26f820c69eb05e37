// Package common contains the pieces shared by every praq codec, chiefly the
// context-hash byte predictor.

package common

const (
	// ContextBits is the width of the rolling context hash.
	ContextBits = 20
	// TableSize is the number of slots in the prediction table.
	TableSize = 1 << ContextBits
	// ContextMask masks a hash down to a valid table index.
	ContextMask = TableSize - 1
)

// NextContext returns the context hash that follows `hash` after observing
// byte `b`.
func NextContext(hash uint32, b byte) uint32 {
	return ((hash << 5) + uint32(b)) & ContextMask
}

// Predictor guesses the next byte of a stream from a hash of the bytes before
// it. Each slot of the table holds the last byte seen after the context that
// hashes to it.
//
// Encoders and decoders stay in lockstep as long as both call [Predictor.Observe]
// and [Predictor.Advance] with the same bytes in the same order.
type Predictor struct {
	table   []byte
	context uint32
}

// NewPredictor creates a predictor with an all-zero table and a zero context.
func NewPredictor() *Predictor {
	return &Predictor{table: make([]byte, TableSize)}
}

// Predict returns the byte expected at the current context.
func (p *Predictor) Predict() byte {
	return p.table[p.context]
}

// Observe records `b` as the byte following the current context.
func (p *Predictor) Observe(b byte) {
	p.table[p.context] = b
}

// Advance moves the context past `b`.
func (p *Predictor) Advance(b byte) {
	p.context = NextContext(p.context, b)
}

// Context returns the current context hash.
func (p *Predictor) Context() uint32 {
	return p.context
}
