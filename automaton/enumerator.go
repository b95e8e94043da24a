package automaton

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cutonbuminband/rcounting-go/form"
)

// Machine is a digit-string state machine: it knows how to fold a word
// down to a state index and how to build its one-symbol transition
// matrix. HistogramMachine, CompressedMachine, LastDigitMachine and
// NotAnyMachine are the four concrete families spec §4.3 names (the
// presence-bitmask family is a HistogramMachine with nStates == 2).
type Machine interface {
	Size() int
	NSymbols() int
	Encode(word string) int
	Transition() *Matrix
}

// Enumerator pairs a Machine with its accepting states and wraps the
// lazily-memoised matrix-power cache, implementing the DFA enumerator's
// two directions: CountPrefix (body_to_count) and CountToBody
// (count_to_body).
type Enumerator struct {
	machine        Machine
	cache          *PowerCache
	accepting      []int
	offset         int
	bijective      bool
	alphabet       string
	encodedSymbols []int
}

// NewEnumerator builds an Enumerator over machine, accepting the given
// state indices as valid endings. offset shifts the zero point of the
// enumeration (used when a thread's counting starts partway through the
// language, e.g. skipping single-digit trivial matches). bijective
// lifts the leading-zero restriction: every symbol of the alphabet,
// including its first ('0'), may start a word.
func NewEnumerator(machine Machine, accepting []int, offset int, bijective bool) *Enumerator {
	alphabet := form.Alphabet(machine.NSymbols())
	encoded := make([]int, len(alphabet))
	for i := range alphabet {
		encoded[i] = machine.Encode(alphabet[i : i+1])
	}
	return &Enumerator{
		machine:        machine,
		cache:          NewPowerCache(machine.Transition()),
		accepting:      accepting,
		offset:         offset,
		bijective:      bijective,
		alphabet:       alphabet,
		encodedSymbols: encoded,
	}
}

func (e *Enumerator) sumStates(states []int, power int) *big.Int {
	if len(states) == 0 {
		return big.NewInt(0)
	}
	counts := make(map[int]int)
	for _, s := range states {
		counts[s]++
	}
	mat := e.cache.Power(power)
	total := big.NewInt(0)
	for state, n := range counts {
		v := mat.Apply(RowVector(state))
		s := SumOver(v, e.accepting)
		s.Mul(s, big.NewInt(int64(n)))
		total.Add(total, s)
	}
	return total
}

// WordIsValid reports whether word's state is one of the accepting
// states.
func (e *Enumerator) WordIsValid(word string) bool {
	enc := e.machine.Encode(word)
	for _, a := range e.accepting {
		if a == enc {
			return true
		}
	}
	return false
}

// CountPrefix returns word's 1-based position in the enumeration,
// shifted by the registered offset (spec §4.3's body_to_count /
// count_prefix): the number of accepting words that precede it (every
// accepting word of a strictly shorter length, for non-bijective forms,
// plus every lexicographically smaller accepting word of the same
// length; words with a leading zero are not counted in non-bijective
// forms), plus one if word itself is accepting. Walking
// word right to left, at each position it sums, over every strictly
// smaller symbol at that position, the number of accepting completions
// reachable from the resulting prefix; for non-bijective forms it also
// folds in every accepting word of a strictly shorter length, reusing
// the very same matrix power the main sum already needed at that step.
func (e *Enumerator) CountPrefix(word string) *big.Int {
	word = strings.ToLower(word)
	wordLength := len(word)
	enumeration := big.NewInt(0)
	for i := wordLength - 1; i >= 0; i-- {
		matrixPower := wordLength - 1 - i
		prefix := word[:i]
		currentChar := word[i]
		startIdx := 0
		if i == 0 && !e.bijective {
			startIdx = 1
		}
		currentIdx := strings.IndexByte(e.alphabet, currentChar)
		var states []int
		for s := startIdx; s < currentIdx; s++ {
			states = append(states, e.machine.Encode(prefix+e.alphabet[s:s+1]))
		}
		if e.bijective {
			states = append(states, e.machine.Encode(""))
		} else if matrixPower > 0 {
			enumeration.Add(enumeration, e.sumStates(e.encodedSymbols[1:], matrixPower-1))
		}
		enumeration.Add(enumeration, e.sumStates(states, matrixPower))
	}
	if e.WordIsValid(word) {
		enumeration.Add(enumeration, big.NewInt(1))
	}
	enumeration.Sub(enumeration, big.NewInt(int64(e.offset)))
	return enumeration
}

// countAtLength returns how many accepting words of exactly length l
// exist (non-bijective forms only, excluding leading-zero words).
func (e *Enumerator) countAtLength(l int) *big.Int {
	if l == 0 {
		if e.WordIsValid("") {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	}
	return e.sumStates(e.encodedSymbols[1:], l-1)
}

// CountToBody is the inverse of CountPrefix: given a target position in
// the enumeration (1-based, as CountPrefix returns), it reconstructs the corresponding word by greedily
// choosing each symbol, most significant first, the same way a reader
// would unrank a combinatorial number system — at each position it
// tries symbols from smallest to largest, and either commits to the
// first one whose accepting-completion count exceeds what's left, or
// subtracts its count and moves to the next candidate.
func (e *Enumerator) CountToBody(target *big.Int) (string, error) {
	if e.bijective {
		return "", fmt.Errorf("automaton: CountToBody not implemented for bijective numbering")
	}
	remaining := new(big.Int).Add(target, big.NewInt(int64(e.offset)-1))
	if remaining.Sign() < 0 {
		return "", fmt.Errorf("automaton: target %s is before the start of the enumeration", target)
	}
	length := 1
	for {
		count := e.countAtLength(length)
		if remaining.Cmp(count) < 0 {
			break
		}
		remaining.Sub(remaining, count)
		length++
		if length > 4096 {
			return "", fmt.Errorf("automaton: could not bound the target's length")
		}
	}

	var b strings.Builder
	prefix := ""
	for pos := 0; pos < length; pos++ {
		startIdx := 0
		if pos == 0 {
			startIdx = 1
		}
		chosen := -1
		for s := startIdx; s < len(e.alphabet); s++ {
			candidate := prefix + e.alphabet[s:s+1]
			remainingSteps := length - pos - 1
			var count *big.Int
			if remainingSteps == 0 {
				if e.WordIsValid(candidate) {
					count = big.NewInt(1)
				} else {
					count = big.NewInt(0)
				}
			} else {
				count = e.sumStates([]int{e.machine.Encode(candidate)}, remainingSteps)
			}
			if remaining.Cmp(count) < 0 {
				prefix = candidate
				chosen = s
				break
			}
			remaining.Sub(remaining, count)
		}
		if chosen < 0 {
			return "", fmt.Errorf("automaton: target is beyond the enumeration at length %d", length)
		}
		b.WriteByte(e.alphabet[chosen])
	}
	return b.String(), nil
}
