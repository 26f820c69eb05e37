// Package mtf implements a move-to-front list over the 256 byte values.
//
// The list is a total order of all byte values. Rank 0 is the front of the
// list, i.e. the most recently promoted symbol. Every lookup promotes the
// symbol it touches to the front, so the ordering depends only on the order in
// which symbols were referenced.

package mtf

import "fmt"

// AlphabetSize is the number of distinct symbols in a [List].
const AlphabetSize = 256

// List is a move-to-front list of byte values. The zero value is not usable;
// create lists with [New].
type List struct {
	symbols [AlphabetSize]byte
	ranks   [AlphabetSize]uint8
}

// New creates a list in natural order, with symbol 0 at the front.
func New() *List {
	list := &List{}
	for i := 0; i < AlphabetSize; i++ {
		list.symbols[i] = byte(i)
		list.ranks[i] = uint8(i)
	}
	return list
}

// moveToFront moves the symbol at `rank` to the front of the list, shifting
// everything in front of it back by one.
func (list *List) moveToFront(rank int) {
	symbol := list.symbols[rank]
	copy(list.symbols[1:rank+1], list.symbols[:rank])
	list.symbols[0] = symbol

	for i := 0; i <= rank; i++ {
		list.ranks[list.symbols[i]] = uint8(i)
	}
}

// RankOf returns the rank `symbol` had before this call, then moves it to the
// front.
func (list *List) RankOf(symbol byte) int {
	rank := int(list.ranks[symbol])
	if rank != 0 {
		list.moveToFront(rank)
	}
	return rank
}

// SymbolAt returns the symbol currently at `rank`, then moves it to the front.
func (list *List) SymbolAt(rank int) (byte, error) {
	if rank < 0 || rank >= AlphabetSize {
		return 0, fmt.Errorf("rank %d not in the range [0, %d)", rank, AlphabetSize)
	}

	symbol := list.symbols[rank]
	if rank != 0 {
		list.moveToFront(rank)
	}
	return symbol, nil
}

// Promote moves `symbol` to the front of the list.
func (list *List) Promote(symbol byte) {
	list.RankOf(symbol)
}

// Head returns the symbol at the front of the list without modifying it.
func (list *List) Head() byte {
	return list.symbols[0]
}
