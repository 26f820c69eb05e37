// Package bitio provides bit-granular readers and writers over byte streams,
// along with the Golomb-Rice codes the praq codecs are built on.
//
// The bit packing itself is done by kanzi's default bit streams, which pack
// bits most-significant bit first and buffer their I/O. Those streams report
// I/O problems by panicking; the types here turn that into ordinary error
// returns, and report running out of input as [io.ErrUnexpectedEOF].
//
// A Golomb-Rice code with parameter k stores a non-negative integer v as the
// quotient v >> k in unary (that many 1 bits followed by a single 0 bit),
// followed by the low k bits of v, most significant first. With k = 0 this is
// plain unary. For example, v = 11 with k = 2 is written as:
//
//	1 1 0 1 1
//	^^^ ^ ^^^
//	 |  |  +-- remainder 0b11
//	 |  +----- terminator
//	 +-------- quotient 2
package bitio
