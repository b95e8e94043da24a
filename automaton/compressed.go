package automaton

import (
	"math/big"

	"github.com/cutonbuminband/rcounting-go/form"
)

// CompressedMachine is the compressed-histogram state family (spec §4.3
// family #4): rather than tracking each alphabet symbol's saturating
// count independently (HistogramMachine's 3^n states), it tracks only
// how many symbols are absent, present once, and present twice-or-more —
// a state is the triple (absent, once, twice) with absent+once+twice ==
// n, giving C(n+2, 2) states instead of 3^n. Used for "no repeating",
// "only repeating" and "mostly repeating" digits, where the rule only
// cares about the multiset of counts, not which symbol has which count.
type CompressedMachine struct {
	n               int
	size            int
	totalLengths    []int
}

// NewCompressedMachine builds a compressed-histogram machine over n
// alphabet symbols.
func NewCompressedMachine(n int) *CompressedMachine {
	size := binomial(n+2, 2)
	totalLengths := make([]int, 2*n+1)
	for i := 0; i <= 2*n; i++ {
		lo := i - n
		if lo < 0 {
			lo = 0
		}
		hi := i / 2
		length := hi + 1 - lo
		if length < 0 {
			length = 0
		}
		totalLengths[i] = length
	}
	return &CompressedMachine{n: n, size: size, totalLengths: totalLengths}
}

func (m *CompressedMachine) Size() int     { return m.size }
func (m *CompressedMachine) NSymbols() int { return m.n }

// encodeState maps a valid (absent, once, twice) triple to a dense state
// index in [0, size). The pair (once, twice) for a fixed digit_sum =
// once + 2*twice is ranked sequentially by totalLengths, then offset by
// once/2 within that rank — the same bijection the teacher machine's
// encode function uses.
func (m *CompressedMachine) encodeState(once, twice int) int {
	digitSum := once + 2*twice
	predecessors := 0
	for i := 0; i < digitSum; i++ {
		predecessors += m.totalLengths[i]
	}
	return predecessors + once/2
}

// Encode returns the compressed-histogram state of word: the triple
// (absent, once, twice-or-more) counted over the n alphabet symbols.
func (m *CompressedMachine) Encode(word string) int {
	alphabet := []byte(form.Alphabet(m.n))
	occurrences := make(map[byte]int)
	for i := 0; i < len(word); i++ {
		occurrences[word[i]]++
	}
	once, twice := 0, 0
	for _, ch := range alphabet {
		switch v := occurrences[ch]; {
		case v == 1:
			once++
		case v >= 2:
			twice++
		}
	}
	return m.encodeState(once, twice)
}

type compressedState struct {
	absent, once, twice int
}

func (m *CompressedMachine) nextStates(s compressedState) []struct {
	weight int
	state  compressedState
} {
	var result []struct {
		weight int
		state  compressedState
	}
	if s.absent > 0 {
		result = append(result, struct {
			weight int
			state  compressedState
		}{s.absent, compressedState{s.absent - 1, s.once + 1, s.twice}})
	}
	if s.once > 0 {
		result = append(result, struct {
			weight int
			state  compressedState
		}{s.once, compressedState{s.absent, s.once - 1, s.twice + 1}})
	}
	if s.twice > 0 {
		result = append(result, struct {
			weight int
			state  compressedState
		}{s.twice, s})
	}
	return result
}

// Transition builds the one-symbol transition matrix by enumerating
// every valid (absent, once, twice) triple and its successors per
// nextStates.
func (m *CompressedMachine) Transition() *Matrix {
	mat := NewMatrix(m.size)
	for absent := 0; absent <= m.n; absent++ {
		for once := 0; once <= m.n-absent; once++ {
			twice := m.n - absent - once
			from := compressedState{absent, once, twice}
			fromIdx := m.encodeState(once, twice)
			for _, next := range m.nextStates(from) {
				toIdx := m.encodeState(next.state.once, next.state.twice)
				mat.AddEdge(fromIdx, toIdx, big.NewInt(int64(next.weight)))
			}
		}
	}
	return mat
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
