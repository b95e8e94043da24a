// Package automaton implements the DFA enumerator (spec §4.3): given a
// language of digit strings recognised by a state machine whose state is
// some multiset summary of the string seen so far, it computes, for an
// arbitrary prefix, how many words of the language precede that prefix
// in length-then-lexicographic order, using powers of the
// automaton's one-symbol transition matrix.
package automaton

import "math/big"

// Edge is a single non-zero transition: from the row it belongs to, to
// column To, with multiplicity Weight.
type Edge struct {
	To     int
	Weight *big.Int
}

// Matrix is a square transition matrix over non-negative arbitrary
// precision integers, stored as a sparse adjacency list: Rows[i] holds
// every non-zero (column, weight) pair for row i. Zero rows are nil.
//
// Matrix entries use math/big.Int rather than a fixed machine width
// because spec §7 documents that the "not any of those" enumeration can
// exceed 64 bits; the standard library's arbitrary-precision integer is
// the only type in the Go ecosystem that removes the overflow question
// entirely, so there is no third-party alternative worth reaching for
// here (see DESIGN.md).
type Matrix struct {
	Size int
	Rows [][]Edge
}

// NewMatrix allocates an empty size x size matrix.
func NewMatrix(size int) *Matrix {
	return &Matrix{Size: size, Rows: make([][]Edge, size)}
}

// Identity returns the size x size identity matrix.
func Identity(size int) *Matrix {
	m := NewMatrix(size)
	one := big.NewInt(1)
	for i := 0; i < size; i++ {
		m.Rows[i] = []Edge{{To: i, Weight: one}}
	}
	return m
}

// AddEdge adds weight to the (from, to) entry, merging with any existing
// edge between the same pair of states.
func (m *Matrix) AddEdge(from, to int, weight *big.Int) {
	if weight.Sign() == 0 {
		return
	}
	for i, e := range m.Rows[from] {
		if e.To == to {
			m.Rows[from][i].Weight = new(big.Int).Add(e.Weight, weight)
			return
		}
	}
	m.Rows[from] = append(m.Rows[from], Edge{To: to, Weight: new(big.Int).Set(weight)})
}

// Mul computes m * other, both size x size, returning a new Matrix.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	result := NewMatrix(m.Size)
	for i := 0; i < m.Size; i++ {
		acc := make(map[int]*big.Int)
		for _, e := range m.Rows[i] {
			for _, f := range other.Rows[e.To] {
				contribution := new(big.Int).Mul(e.Weight, f.Weight)
				if cur, ok := acc[f.To]; ok {
					cur.Add(cur, contribution)
				} else {
					acc[f.To] = contribution
				}
			}
		}
		if len(acc) == 0 {
			continue
		}
		row := make([]Edge, 0, len(acc))
		for to, w := range acc {
			if w.Sign() != 0 {
				row = append(row, Edge{To: to, Weight: w})
			}
		}
		result.Rows[i] = row
	}
	return result
}

// RowVector returns the one-hot row vector for state, represented
// sparsely as a map from state index to weight.
func RowVector(state int) map[int]*big.Int {
	return map[int]*big.Int{state: big.NewInt(1)}
}

// Apply multiplies the sparse row-vector v on the right by m, returning
// the resulting vector v * m.
func (m *Matrix) Apply(v map[int]*big.Int) map[int]*big.Int {
	result := make(map[int]*big.Int)
	for state, weight := range v {
		if weight.Sign() == 0 || state < 0 || state >= m.Size {
			continue
		}
		for _, e := range m.Rows[state] {
			contribution := new(big.Int).Mul(weight, e.Weight)
			if cur, ok := result[e.To]; ok {
				cur.Add(cur, contribution)
			} else {
				result[e.To] = contribution
			}
		}
	}
	return result
}

// SumOver adds up the vector's weights at the given indices.
func SumOver(v map[int]*big.Int, indices []int) *big.Int {
	sum := big.NewInt(0)
	for _, i := range indices {
		if w, ok := v[i]; ok {
			sum.Add(sum, w)
		}
	}
	return sum
}

// PowerCache lazily memoises powers of a one-symbol transition matrix,
// keyed by exponent. It never evicts an entry once computed (spec §4.3,
// §9 "Lazy memoisation"): requests for sequential exponents reuse the
// previous power ("incrementing"), while a jump to a much larger
// exponent is reached by repeated squaring ("doubling"), which also
// caches each halved exponent (n/2, n/4, ...) computed along the way.
type PowerCache struct {
	transition *Matrix
	powers     map[int]*Matrix
}

// NewPowerCache builds a cache around a one-symbol transition matrix.
// transitions[0] is always the identity, per spec §4.3.
func NewPowerCache(transition *Matrix) *PowerCache {
	return &PowerCache{
		transition: transition,
		powers:     map[int]*Matrix{0: Identity(transition.Size)},
	}
}

// Power returns the n-th power of the transition matrix, computing and
// caching it if necessary.
func (c *PowerCache) Power(n int) *Matrix {
	if n < 0 {
		panic("automaton: negative matrix power requested")
	}
	if m, ok := c.powers[n]; ok {
		return m
	}
	if prev, ok := c.powers[n-1]; ok {
		m := prev.Mul(c.transition)
		c.powers[n] = m
		return m
	}
	half := c.Power(n / 2)
	var m *Matrix
	if n%2 == 0 {
		m = half.Mul(half)
	} else {
		m = half.Mul(half).Mul(c.transition)
	}
	c.powers[n] = m
	return m
}

// ApplyPower advances the one-hot vector for state through n single-symbol
// transitions by way of the cached n-th power, without materialising the
// full matrix power's rows beyond what Mul already computed.
func (c *PowerCache) ApplyPower(state, n int) map[int]*big.Int {
	return c.Power(n).Apply(RowVector(state))
}
