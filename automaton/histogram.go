package automaton

import (
	"math/big"

	"github.com/cutonbuminband/rcounting-go/form"
)

// HistogramMachine is the digit-histogram state family (spec §4.3 family
// #1 when nStates == 3: "absent / once / twice-or-more"; family #2,
// the presence bitmask, falls out of the same construction when
// nStates == 2, since a count capped at 1 is exactly a presence bit).
// State i encodes, for each alphabet position pos, a saturating count
// capped at nStates-1, via i = sum_pos nStates^pos * count[pos].
type HistogramMachine struct {
	nSymbols int
	nStates  int
	size     int
}

// NewHistogramMachine builds a digit-histogram machine over nSymbols
// alphabet characters, each with a saturating count in [0, nStates).
func NewHistogramMachine(nSymbols, nStates int) *HistogramMachine {
	size := 1
	for i := 0; i < nSymbols; i++ {
		size *= nStates
	}
	return &HistogramMachine{nSymbols: nSymbols, nStates: nStates, size: size}
}

func (m *HistogramMachine) Size() int     { return m.size }
func (m *HistogramMachine) NSymbols() int { return m.nSymbols }

// counts decodes state index i into its per-alphabet-position saturating
// counts, counts[pos] weighted by nStates^pos.
func (m *HistogramMachine) counts(i int) []int {
	c := make([]int, m.nSymbols)
	for pos := 0; pos < m.nSymbols; pos++ {
		c[pos] = i % m.nStates
		i /= m.nStates
	}
	return c
}

func (m *HistogramMachine) encodeCounts(c []int) int {
	val, mult := 0, 1
	for pos := 0; pos < m.nSymbols; pos++ {
		val += mult * c[pos]
		mult *= m.nStates
	}
	return val
}

// Encode returns the histogram state of word: for each alphabet
// position, the number of occurrences of that symbol in word, capped at
// nStates-1.
func (m *HistogramMachine) Encode(word string) int {
	alphabet := form.Alphabet(m.nSymbols)
	occurrences := make(map[byte]int)
	for i := 0; i < len(word); i++ {
		occurrences[word[i]]++
	}
	c := make([]int, m.nSymbols)
	cap := m.nStates - 1
	for pos := 0; pos < m.nSymbols; pos++ {
		v := occurrences[alphabet[pos]]
		if v > cap {
			v = cap
		}
		c[pos] = v
	}
	return m.encodeCounts(c)
}

// Transition builds the one-symbol transition matrix: from state i,
// appending any of the nSymbols alphabet characters increments that
// character's saturating count by one (or leaves it at the cap),
// landing on a new state j. The lone exception is j == 1, which would
// mean "appended a leading '0' to the empty prefix" — forbidden under
// non-bijective positional notation, so that edge is dropped (spec
// §4.3's prohibition on leading zeros is baked directly into the
// transition matrix here, matching the teacher DFA this is grounded on).
func (m *HistogramMachine) Transition() *Matrix {
	mat := NewMatrix(m.size)
	one := big.NewInt(1)
	cap := m.nStates - 1
	for i := 0; i < m.size; i++ {
		base := m.counts(i)
		for pos := 0; pos < m.nSymbols; pos++ {
			next := make([]int, m.nSymbols)
			copy(next, base)
			if next[pos] < cap {
				next[pos]++
			}
			j := m.encodeCounts(next)
			if j == 1 {
				continue
			}
			mat.AddEdge(i, j, one)
		}
	}
	return mat
}
