package automaton

import (
	"math/big"
	"strings"

	"github.com/cutonbuminband/rcounting-go/form"
)

// LastDigitMachine is the last-symbol-memory state family (spec §4.3
// family #3): state 0 is the empty prefix, states 1..n remember which
// alphabet symbol was appended most recently, and state n+1 is a dead
// "already broke the no-successive rule" sink with no outgoing edges —
// once two equal digits land adjacent, no continuation can undo it, so
// the sink simply never contributes weight to any future accepting sum.
type LastDigitMachine struct {
	n    int
	size int
}

// NewLastDigitMachine builds a last-symbol-memory machine over n
// alphabet symbols.
func NewLastDigitMachine(n int) *LastDigitMachine {
	return &LastDigitMachine{n: n, size: n + 2}
}

func (m *LastDigitMachine) Size() int     { return m.size }
func (m *LastDigitMachine) NSymbols() int { return m.n }

// Encode walks word checking only immediately-adjacent repeats (this
// family tracks "no successive", not "no repeating" anywhere in the
// string): the first adjacent repeat sends word straight to the dead
// sink state, otherwise the state is 1 + the index of the final symbol.
func (m *LastDigitMachine) Encode(word string) int {
	if word == "" {
		return 0
	}
	alphabet := form.Alphabet(m.n)
	var previous byte
	hasPrevious := false
	var last byte
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if hasPrevious && ch == previous {
			return m.size - 1
		}
		previous = ch
		hasPrevious = true
		last = ch
	}
	return 1 + strings.IndexByte(alphabet, last)
}

// Transition builds the one-symbol transition matrix: from the empty
// state, every symbol leads to its own "last digit" state (n edges,
// weight 1, never to the sink); from a "last digit = d" state, every
// *other* symbol leads to its own "last digit" state, while symbol d
// itself (an immediate repeat) leads to the sink; the sink has no
// outgoing edges at all.
func (m *LastDigitMachine) Transition() *Matrix {
	mat := NewMatrix(m.size)
	one := big.NewInt(1)
	sink := m.size - 1
	for row := 0; row < m.size-1; row++ {
		for col := 1; col < m.size; col++ {
			if col == row {
				continue
			}
			if row == 0 && col == sink {
				continue
			}
			mat.AddEdge(row, col, one)
		}
	}
	return mat
}
