package form

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FuzzyThreshold is the minimum Levenshtein ratio (spec §4.1) a word must
// reach against its nearest alphabet entry to be accepted.
const FuzzyThreshold = 0.8

// ratio computes fuzz.ratio's Levenshtein similarity ratio in [0, 1]:
// 1 - distance / max(len(a), len(b)), with two empty strings defined as
// a perfect match.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1 - float64(dist)/float64(maxLen)
}

// FuzzyTokenize splits the normalized first line of body on whitespace
// and matches each word to the nearest entry in alphabet by Levenshtein
// ratio. A word is accepted into the token list iff its best ratio is at
// least threshold; the first word that fails ends the token list (later
// words, even if they would match, are not included) exactly as spec
// §4.1 requires.
func FuzzyTokenize(body string, alphabet []string, threshold float64) []string {
	line := strings.ToLower(strings.TrimSpace(StripMarkdownLinks(firstLine(body))))
	if line == "" {
		return nil
	}
	words := strings.Fields(line)
	lowerAlphabet := make([]string, len(alphabet))
	for i, a := range alphabet {
		lowerAlphabet[i] = strings.ToLower(a)
	}

	var tokens []string
	for _, word := range words {
		bestRatio := -1.0
		bestToken := ""
		for i, candidate := range lowerAlphabet {
			r := ratio(word, candidate)
			if r > bestRatio {
				bestRatio = r
				bestToken = alphabet[i]
			}
		}
		if bestRatio < threshold {
			break
		}
		tokens = append(tokens, bestToken)
	}
	return tokens
}

func firstLine(body string) string {
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		return body[:idx]
	}
	return body
}

// FuzzyWordChecker builds a Checker over a spelled-out alphabet (colours,
// planets, elements): well-formed iff at least one token is extracted.
// The returned token is the space-joined list of matched alphabet
// entries, suitable for feeding to a word-list Encoder.
func FuzzyWordChecker(alphabet []string, threshold float64) Checker {
	return func(body string) (string, bool) {
		tokens := FuzzyTokenize(body, alphabet, threshold)
		if len(tokens) == 0 {
			return "", false
		}
		return strings.Join(tokens, " "), true
	}
}
