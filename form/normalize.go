// Package form implements the tokenizer / form-checker (spec §4.1): given
// a post body and a side-thread's alphabet or token list, it decides
// whether the body looks like a syntactically well-formed count and
// extracts the canonical count token.
package form

import (
	"regexp"
	"strings"
)

// Alphanumeric is the base-36 digit alphabet every base-n form is a
// prefix of.
const Alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyz"

// DeletedSentinels are the bodies Reddit substitutes for removed content.
// Callers decide whether to propagate NotACount or coerce these to a
// placeholder record.
var DeletedSentinels = map[string]bool{
	"[deleted]": true,
	"[removed]": true,
	"[banned]":  true,
}

// IsDeletedPlaceholder reports whether body is one of the deletion
// sentinels.
func IsDeletedPlaceholder(body string) bool {
	return DeletedSentinels[strings.TrimSpace(body)]
}

var markdownLink = regexp.MustCompile(`\[(.*?)\]\((.+?)\)`)

// StripMarkdownLinks replaces markdown links [text](url) with just text.
func StripMarkdownLinks(body string) string {
	return markdownLink.ReplaceAllString(body, "$1")
}

// thousandsSeparators are the non-whitespace separators people have used
// to break up long counts: apostrophe, narrow no-break space, comma,
// period, asterisk, slash.
const thousandsSeparators = "' ,.*/"

// NormalizeFirstLine takes the first non-empty line of body, strips
// markdown links down to their text, and removes whitespace and
// thousands separators. This is the shared first step of every form
// check and of Levenshtein-ratio fuzzy word matching.
func NormalizeFirstLine(body string) string {
	firstLine := ""
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			firstLine = line
			break
		}
	}
	firstLine = strings.TrimSpace(StripMarkdownLinks(firstLine))

	var b strings.Builder
	b.Grow(len(firstLine))
	for _, r := range firstLine {
		if r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f' {
			continue
		}
		if strings.ContainsRune(thousandsSeparators, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
