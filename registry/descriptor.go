// Package registry implements the side-thread registry (spec §4.5): a
// process-wide, read-only table binding a side-thread identifier to its
// descriptor, plus the alias table (spec §3, SUPPLEMENTED FEATURE 6) and
// directory-wiki parsing (SUPPLEMENTED FEATURE 3).
package registry

import (
	"strconv"
	"time"

	"github.com/cutonbuminband/rcounting-go/codec"
	"github.com/cutonbuminband/rcounting-go/form"
	"github.com/cutonbuminband/rcounting-go/rule"
)

// SideThread is the immutable descriptor spec §3 calls "Side-thread
// descriptor": a form, a rule, an encoder, and an optional length hint
// (the post count at which a thread of this kind completes; 0 means the
// default of 1000 posts per thread applies).
type SideThread struct {
	Name       string
	Form       form.Checker
	Rule       rule.Rule
	Encoder    codec.Encoder
	LengthHint int
}

// Fallback is returned by Lookup for any identifier with no registered
// descriptor: permissive form, default rule, base-10 encoder, per spec
// §4.5.
func Fallback() *SideThread {
	return &SideThread{
		Name:    "default",
		Form:    form.Permissive,
		Rule:    rule.Default(),
		Encoder: codec.NewBaseNEncoder(10),
	}
}

func baseNThread(name string, n int) *SideThread {
	return &SideThread{Name: name, Form: form.BaseN(n), Encoder: codec.NewBaseNEncoder(n)}
}

// KnownDescriptors builds the named side-thread table (spec §4.5's "~80
// named side-threads"). Grounded on
// _examples/original_source/rcounting/side_threads/thread_list.py's
// known_threads dict: every entry below corresponds to one dict entry
// there, constructed from the same (form, rule, encoder, length) triple
// the original's SideThread(...) call specifies. Standard base-n
// variants for n=2..36 are generated the same way thread_list.py's
// base_n_threads comprehension does.
func KnownDescriptors() map[string]*SideThread {
	descriptors := make(map[string]*SideThread)
	put := func(d *SideThread) { descriptors[d.Name] = d }

	for n := 2; n <= 36; n++ {
		put(baseNThread(baseName(n), n))
	}

	put(&SideThread{Name: "bijective base 2", Form: form.BaseN(3), Encoder: codec.NewBijectiveBaseNEncoder(2)})
	put(&SideThread{Name: "binary encoded decimal", Form: form.BaseN(2), Encoder: &codec.PermutationEncoder{Alphabet: digitAlphabet(10), NoLeadingZeros: true}})
	put(&SideThread{Name: "no repeating digits", Form: form.BaseN(10), Encoder: &codec.PermutationEncoder{Alphabet: digitAlphabet(10), NoLeadingZeros: true}})
	put(&SideThread{Name: "no repeating letters", Form: form.BaseN(26), Encoder: &codec.PermutationEncoder{Alphabet: digitAlphabet(26)}})
	put(&SideThread{Name: "permutations", Form: form.BaseN(10), Encoder: &codec.PermutationEncoder{Alphabet: digitAlphabet(10)}})
	put(&SideThread{Name: "letter permutations", Encoder: &codec.PermutationEncoder{Alphabet: digitAlphabet(26)}})

	for _, k := range []int{3, 4, 5, 7, 99} {
		put(&SideThread{Name: byKName(k), Encoder: codec.NewByKEncoder(k)})
	}
	put(&SideThread{Name: "by 3s in base 7", Form: form.BaseN(7)})

	put(&SideThread{Name: "collatz conjecture", Form: form.BaseN(10), Encoder: codec.CollatzEncoder{}})
	put(&SideThread{Name: "wave", Form: form.BaseN(10), Encoder: codec.WaveEncoder{}})
	put(&SideThread{Name: "increasing sequences", Form: form.BaseN(10), Encoder: &codec.IncreasingSequenceEncoder{Base: 10}})
	put(&SideThread{Name: "cyclical bases", Form: form.BaseN(16)})
	put(&SideThread{Name: "dollars and cents", Form: form.BaseN(4)})
	put(&SideThread{Name: "invisible numbers", Form: form.BaseN(10)})
	put(&SideThread{Name: "unicode", Form: form.BaseN(16), LengthHint: 1024})
	put(&SideThread{Name: "decimal encoded sexagesimal", Form: form.BaseN(10), LengthHint: 900})

	put(&SideThread{Name: "four fours", Form: form.FromTokens([]string{"4"})})
	put(&SideThread{Name: "o/l binary", Form: form.FromTokens([]string{"o", "l"}), LengthHint: 1024})
	put(&SideThread{Name: "symbols", Form: form.FromTokens([]string{"!", "@", "#", "$", "%", "^", "&", "*", "(", ")"})})
	put(&SideThread{Name: "unary", Form: form.FromTokens([]string{"|"})})
	put(&SideThread{Name: "using 12345", Form: form.FromTokens([]string{"1", "2", "3", "4", "5"})})
	put(&SideThread{Name: "japanese", Form: form.FromTokens(splitRunes("一二三四五六七八九十百千"))})
	put(&SideThread{Name: "valid brainfuck programs", Form: form.FromTokens(splitRunes("><+-.,[]"))})
	put(&SideThread{Name: "balanced ternary", Form: form.FromTokens([]string{"t", "T", "-", "0", "+"})})

	put(&SideThread{Name: "once per thread", Form: form.BaseN(10), Rule: rule.OncePerThread()})
	put(&SideThread{Name: "only double counting", Form: form.BaseN(10), Rule: rule.OnlyDoubleCounting{}})
	put(&SideThread{Name: "wait 2", Form: form.BaseN(10), Rule: rule.WaitN(2)})
	put(&SideThread{Name: "wait 2 - letters", Rule: rule.WaitN(2)})
	put(&SideThread{Name: "wait 3", Form: form.BaseN(10), Rule: rule.WaitN(3)})
	put(&SideThread{Name: "wait 4", Form: form.BaseN(10), Rule: rule.WaitN(4)})
	put(&SideThread{Name: "wait 9", Form: form.BaseN(10), Rule: rule.WaitN(9)})
	put(&SideThread{Name: "wait 10", Form: form.BaseN(10), Rule: rule.WaitN(10)})
	put(&SideThread{Name: "slow", Form: form.BaseN(10), Rule: rule.TimeGap(minute, 0)})
	put(&SideThread{Name: "slower", Form: form.BaseN(10), Rule: rule.TimeGap(0, hour)})
	put(&SideThread{Name: "slowestest", Form: form.BaseN(10), Rule: rule.TimeGap(hour, day)})
	put(&SideThread{Name: "wait 5s", Form: form.BaseN(10), Rule: rule.TimeGap(5*second, 0)})

	for _, length := range defaultLengthThreads() {
		put(&SideThread{Name: length.name, Form: form.BaseN(10), LengthHint: length.length})
	}
	for name, length := range noValidationThreads() {
		put(&SideThread{Name: name, LengthHint: length})
	}

	return descriptors
}

type namedLength struct {
	name   string
	length int
}

// defaultLengthThreads covers thread_list.py's default_threads list (a
// flat name list defaulting to length 1000) plus its second
// default_threads dict (explicit per-name lengths).
func defaultLengthThreads() []namedLength {
	flat := []string{
		"age", "decimal", "palindromes", "prime numbers", "powers of 2",
		"negative numbers", "rational numbers", "triangular numbers",
		"by 10s", "by 20s", "by 50s", "by 1000s",
	}
	out := make([]namedLength, 0, len(flat)+8)
	for _, name := range flat {
		out = append(out, namedLength{name, 1000})
	}
	explicit := map[string]int{
		"eban": 800, "factoradic": 720, "feet and inches": 600,
		"hoi4 states": 806, "ipv4": 1024, "lucas numbers": 200,
		"seconds minutes hours": 1200, "time": 900,
	}
	for name, length := range explicit {
		out = append(out, namedLength{name, length})
	}
	return out
}

// noValidationThreads covers thread_list.py's no_validation dict: side
// threads with a known length but no form or encoder beyond the
// permissive fallback.
func noValidationThreads() map[string]int {
	return map[string]int{
		"acronyms": 676, "base 40": 1600, "base 60": 900, "base 62": 992,
		"base 64": 1024, "base 93": 930, "cards": 676, "degrees": 900,
		"letters": 676, "musical notes": 1008, "octal letter stack": 1024,
		"qwerty alphabet": 676, "youtube": 1024,
	}
}

func baseName(n int) string {
	return "base " + strconv.Itoa(n)
}

func byKName(k int) string {
	return "by " + strconv.Itoa(k) + "s"
}

func digitAlphabet(n int) []string {
	alphabet := form.Alphabet(n)
	out := make([]string, len(alphabet))
	for i := range alphabet {
		out[i] = string(alphabet[i])
	}
	return out
}

func splitRunes(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

const (
	second = time.Second
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
)
