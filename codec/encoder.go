// Package codec implements the encoder/decoder registry (spec §4.2): for
// each side-thread form, a bijection between a post body and its
// non-negative integer position.
package codec

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/cutonbuminband/rcounting-go/form"
	"github.com/cutonbuminband/rcounting-go/internal/coreerr"
)

// Encoder is the body <-> integer-position bijection spec §4.2 requires.
// body_to_count is undefined (returns an error) for malformed input;
// count_to_body is total over its declared domain.
type Encoder interface {
	CountToBody(n *big.Int) (string, error)
	BodyToCount(body string) (*big.Int, error)
}

// BaseNEncoder is the standard positional base-n encoder, and — when
// Bijective is set — the bijective base-n variant (digits 1..n, no
// zero, no leading-zero restriction since there is no zero digit).
// Grounded on base_n_threads.py's BaseNThread.count_to_comment, which
// picks floor or ceil division depending on bijective.
type BaseNEncoder struct {
	Base      int
	Bijective bool
}

func NewBaseNEncoder(base int) *BaseNEncoder { return &BaseNEncoder{Base: base} }

func NewBijectiveBaseNEncoder(base int) *BaseNEncoder {
	return &BaseNEncoder{Base: base, Bijective: true}
}

func (e *BaseNEncoder) alphabet() string {
	if e.Bijective {
		return form.Alphabet(e.Base + 1)[1:]
	}
	return form.Alphabet(e.Base)
}

// CountToBody repeatedly peels off the lowest digit. For bijective
// numbering, digit values run 1..base instead of 0..base-1, so the
// remainder must be taken in [1, base] rather than [0, base): a
// remainder of 0 is folded to `base` and one is subtracted from the
// running quotient to compensate, matching count_to_comment's f =
// ceil(x)-1 versus floor(x) split.
func (e *BaseNEncoder) CountToBody(n *big.Int) (string, error) {
	if n.Sign() < 0 {
		return "", errors.New("codec: count must be non-negative")
	}
	if n.Sign() == 0 {
		if e.Bijective {
			return "", errors.New("codec: bijective base-n has no representation for 0")
		}
		return string(e.alphabet()[0]), nil
	}
	alphabet := e.alphabet()
	base := big.NewInt(int64(e.Base))
	remaining := new(big.Int).Set(n)
	var digits []byte
	for remaining.Sign() > 0 {
		quotient, remainder := new(big.Int), new(big.Int)
		quotient.DivMod(remaining, base, remainder)
		idx := remainder.Int64()
		if e.Bijective {
			if idx == 0 {
				idx = int64(e.Base)
				quotient.Sub(quotient, big.NewInt(1))
			}
			digits = append(digits, alphabet[idx-1])
		} else {
			digits = append(digits, alphabet[idx])
		}
		remaining = quotient
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}

// BodyToCount evaluates the standard Horner-form positional value.
func (e *BaseNEncoder) BodyToCount(body string) (*big.Int, error) {
	alphabet := e.alphabet()
	normalized := strings.ToLower(form.NormalizeFirstLine(body))
	if normalized == "" {
		return nil, coreerr.New(coreerr.NotACount, "", "empty body")
	}
	base := big.NewInt(int64(e.Base))
	result := big.NewInt(0)
	offset := int64(0)
	if e.Bijective {
		offset = 1
	}
	for i := 0; i < len(normalized); i++ {
		idx := strings.IndexByte(alphabet, normalized[i])
		if idx < 0 {
			return nil, coreerr.New(coreerr.NotACount, "", "character not in alphabet: "+string(normalized[i]))
		}
		result.Mul(result, base)
		result.Add(result, big.NewInt(int64(idx)+offset))
	}
	return result, nil
}

// WordListEncoder is a base-n encoder whose digits are words rather
// than single characters (spec §4.2's "word-list" encoder), e.g.
// colours, planets, isenary. Grounded on base_n_threads.py's BaseNThread
// constructed with an explicit tokens list.
type WordListEncoder struct {
	Words     []string
	Bijective bool
}

func NewWordListEncoder(words []string) *WordListEncoder { return &WordListEncoder{Words: words} }

func (e *WordListEncoder) CountToBody(n *big.Int) (string, error) {
	base := big.NewInt(int64(len(e.Words)))
	remaining := new(big.Int).Set(n)
	var words []string
	if remaining.Sign() == 0 {
		if e.Bijective {
			return "", errors.New("codec: bijective word-list has no representation for 0")
		}
		return e.Words[0], nil
	}
	for remaining.Sign() > 0 {
		quotient, remainder := new(big.Int), new(big.Int)
		quotient.DivMod(remaining, base, remainder)
		idx := remainder.Int64()
		if e.Bijective {
			if idx == 0 {
				idx = int64(len(e.Words))
				quotient.Sub(quotient, big.NewInt(1))
			}
			words = append(words, e.Words[idx-1])
		} else {
			words = append(words, e.Words[idx])
		}
		remaining = quotient
	}
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	return strings.Join(words, " "), nil
}

func (e *WordListEncoder) BodyToCount(body string) (*big.Int, error) {
	line := strings.ToLower(strings.TrimSpace(form.StripMarkdownLinks(strings.SplitN(body, "\n", 2)[0])))
	if line == "" {
		return nil, coreerr.New(coreerr.NotACount, "", "empty body")
	}
	index := make(map[string]int, len(e.Words))
	for i, w := range e.Words {
		index[strings.ToLower(w)] = i
	}
	base := big.NewInt(int64(len(e.Words)))
	result := big.NewInt(0)
	offset := int64(0)
	if e.Bijective {
		offset = 1
	}
	found := false
	for _, word := range strings.Fields(line) {
		idx, ok := index[word]
		if !ok {
			break
		}
		found = true
		result.Mul(result, base)
		result.Add(result, big.NewInt(int64(idx)+offset))
	}
	if !found {
		return nil, coreerr.New(coreerr.NotACount, "", "no recognised word-list token")
	}
	return result, nil
}

// ByKEncoder is the stride encoder (spec §4.2 "by-k"): body_to_count
// divides the plain base-10 value of the body by k, discarding the
// remainder (every k consecutive counts collapse to one position).
// count_to_body is its one right inverse: the smallest base-10 body
// whose stride position is n.
type ByKEncoder struct {
	K int
}

func NewByKEncoder(k int) *ByKEncoder { return &ByKEncoder{K: k} }

func (e *ByKEncoder) CountToBody(n *big.Int) (string, error) {
	if n.Sign() < 0 {
		return "", errors.New("codec: count must be non-negative")
	}
	value := new(big.Int).Mul(n, big.NewInt(int64(e.K)))
	return value.String(), nil
}

func (e *ByKEncoder) BodyToCount(body string) (*big.Int, error) {
	base10 := NewBaseNEncoder(10)
	value, err := base10.BodyToCount(body)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Div(value, big.NewInt(int64(e.K))), nil
}
