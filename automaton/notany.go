package automaton

import (
	"math/big"
	"strings"

	"github.com/cutonbuminband/rcounting-go/form"
)

// NotAnyMachine is the composite state family (spec §4.3 family #5) for
// the "not any of those" side thread, whose counts must avoid every one
// of: no repeating, only repeating, mostly repeating, no successive, no
// consecutive and only consecutive digits. Its state packs three pieces
// of information dense-bijectively into a single index:
//
//   - mask:  which of the n alphabet symbols have appeared at all
//   - b:     how many symbols have appeared twice or more
//   - c:     0 if the last symbol appeared exactly once, 1 if it has
//     appeared twice or more, 2 if two equal symbols have already
//     landed adjacent (the no-successive rule is already broken)
//
// giving 3*n*2^(n-1) + 1 states: the "+1" is the all-absent root (mask
// == 0, reachable only before any symbol is seen).
type NotAnyMachine struct {
	n                int
	size             int
	cumulativeCounts []int
}

// NewNotAnyMachine builds the composite machine over n alphabet symbols.
func NewNotAnyMachine(n int) *NotAnyMachine {
	counts := make([]int, n+1)
	for i := 0; i <= n; i++ {
		v := (i - 1) * binomial(n, i)
		if v < 0 {
			v = 0
		}
		counts[i] = v
	}
	cumulative := make([]int, n+1)
	running := 0
	for i := 0; i <= n; i++ {
		running += counts[i]
		cumulative[i] = running
	}
	return &NotAnyMachine{
		n:                n,
		size:             3*n*(1<<uint(n-1)) + 1,
		cumulativeCounts: cumulative,
	}
}

func (m *NotAnyMachine) Size() int     { return m.size }
func (m *NotAnyMachine) NSymbols() int { return m.n }

func popcountInt(x int) int {
	c := 0
	for x > 0 {
		c += x & 1
		x >>= 1
	}
	return c
}

// stateToInt maps a (mask, b, c) triple to its dense state index.
func (m *NotAnyMachine) stateToInt(mask, b, c int) int {
	if b == 0 {
		return mask
	}
	n := m.n
	total := popcountInt(mask)
	offset := 1 << uint(n)
	if b == total {
		return offset + (mask-1)*2 + (c - 1)
	}
	offset += 2 * ((1 << uint(n)) - 1)
	offset += 3 * m.cumulativeCounts[total-1]
	cwPosition := 0
	onesSoFar := 0
	for idx := 0; idx < n; idx++ {
		bit := (mask >> uint(idx)) & 1
		onesSoFar += bit
		if bit == 1 {
			cwPosition += binomial(idx, onesSoFar)
		}
	}
	return offset + 3*(total-1)*cwPosition + (b-1)*3 + c
}

// decodeMask is the combinatorial unranking inverse of the cwPosition
// ranking used above: given a popcount and a rank, reconstructs which
// bit positions are set.
func (m *NotAnyMachine) decodeMask(state, ones int) int {
	mask := 0
	remaining := m.n
	s, o := state, ones
	for remaining > 0 {
		cost := binomial(remaining-1, o)
		if s >= cost {
			mask |= 1 << uint(remaining-1)
			s -= cost
			o--
		}
		remaining--
	}
	return mask
}

// intToState is the inverse of stateToInt.
func (m *NotAnyMachine) intToState(state int) (mask, b, c int) {
	n := m.n
	if state < (1 << uint(n)) {
		return state, 0, 0
	}
	state -= 1 << uint(n)
	if state < 2*(1<<uint(n))-2 {
		c = state%2 + 1
		state /= 2
		a := state + 1
		return a, popcountInt(a), c
	}
	state -= 2*(1<<uint(n)) - 2
	c = state % 3
	state /= 3
	oldValue, idx := 0, len(m.cumulativeCounts)-1
	for i, v := range m.cumulativeCounts {
		if v > state {
			idx = i
			break
		}
		oldValue = v
	}
	state -= oldValue
	b = state%(idx-1) + 1
	state /= idx - 1
	mask = m.decodeMask(state, idx)
	return mask, b, c
}

type notAnyTransition struct {
	weight     int
	mask, b, c int
}

func (m *NotAnyMachine) findNextStates(mask, b, c int) []notAnyTransition {
	var result []notAnyTransition
	for idx := 0; idx < m.n; idx++ {
		if (mask>>uint(idx))&1 == 0 {
			newC := 0
			if c == 2 {
				newC = 2
			}
			result = append(result, notAnyTransition{1, mask | (1 << uint(idx)), b, newC})
		}
	}
	total := popcountInt(mask)
	if total > 0 {
		if c != 2 {
			nb := b
			if c == 0 {
				nb++
			}
			result = append(result, notAnyTransition{1, mask, nb, 2})
		}
		c1 := 1
		if c == 2 {
			c1 = 2
		}
		w1 := b
		if c == 1 {
			w1--
		}
		result = append(result, notAnyTransition{w1, mask, b, c1})
		w2 := total - b
		if c == 0 {
			w2--
		}
		result = append(result, notAnyTransition{w2, mask, b + 1, c1})
	}
	filtered := result[:0]
	for _, r := range result {
		if r.weight > 0 {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Transition builds the one-symbol transition matrix over every state
// index by decoding it, computing its successors, and re-encoding them.
func (m *NotAnyMachine) Transition() *Matrix {
	mat := NewMatrix(m.size)
	for i := 0; i < m.size; i++ {
		mask, b, c := m.intToState(i)
		for _, next := range m.findNextStates(mask, b, c) {
			j := m.stateToInt(next.mask, next.b, next.c)
			mat.AddEdge(i, j, big.NewInt(int64(next.weight)))
		}
	}
	return mat
}

// Encode returns the composite state of word.
func (m *NotAnyMachine) Encode(word string) int {
	alphabet := form.Alphabet(m.n)
	mask := 0
	for i := 0; i < m.n; i++ {
		if strings.IndexByte(word, alphabet[i]) >= 0 {
			mask |= 1 << uint(i)
		}
	}
	c := 0
	var current byte
	hasCurrent := false
	failed := false
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if hasCurrent && ch == current {
			c = 2
			failed = true
			break
		}
		current = ch
		hasCurrent = true
	}
	occurrences := make(map[byte]int)
	for i := 0; i < len(word); i++ {
		occurrences[word[i]]++
	}
	if !failed && len(word) > 0 {
		v := occurrences[word[len(word)-1]]
		if v > 2 {
			v = 2
		}
		c = v - 1
	}
	b := 0
	for _, v := range occurrences {
		if v >= 2 {
			b++
		}
	}
	return m.stateToInt(mask, b, c)
}
