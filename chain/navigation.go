package chain

import (
	"context"
	"math/big"
	"regexp"

	"github.com/cutonbuminband/rcounting-go/internal/coreerr"
)

// previousThreadPattern matches a /comments/<id36>/.../<id36> style URL,
// with the comment id group optional, grounded on spec §4.6's
// `/comments/<id36>(/[^/]*/([id36]))?` and parsing.py's
// find_urls_in_submission.
var previousThreadPattern = regexp.MustCompile(`/comments/([0-9a-z]+)(?:/[^/]*/([0-9a-z]+))?`)

// id36Less reports whether a sorts before b as a base-36 integer.
func id36Less(a, b string) bool {
	av, aok := new(big.Int).SetString(a, 36)
	bv, bok := new(big.Int).SetString(b, 36)
	if !aok || !bok {
		return a < b
	}
	return av.Cmp(bv) < 0
}

// FindPreviousThread scans body and the top-level replies' bodies for
// the first URL referencing a thread id that sorts earlier than
// currentRootID, returning that thread's id and, if the URL carried
// one, a comment id within it (spec §4.6 step 2).
func FindPreviousThread(currentRootID string, body string, topLevel []PostRecord) (threadID, commentID string, ok bool) {
	texts := make([]string, 0, len(topLevel)+1)
	texts = append(texts, body)
	for _, p := range topLevel {
		texts = append(texts, p.Body)
	}
	for _, text := range texts {
		for _, m := range previousThreadPattern.FindAllStringSubmatch(text, -1) {
			if id36Less(m[1], currentRootID) {
				return m[1], m[2], true
			}
		}
	}
	return "", "", false
}

// FindGet searches forward or backward in a monotonically-ordered list
// of comment ids (as returned by FetchThreadCommentIDs) for the comment
// whose decoded position is an exact multiple of length, starting the
// search at a roughly-correct candidate index. It is the Go analogue of
// thread_navigation.py's find_get_in_submission/find_get_from_comment
// (SUPPLEMENTED FEATURE 5, glossary "Get"/"Assist").
//
// decode must return the post's integer position given its id; it
// should return an error for ids that don't parse as a count (e.g. a
// non-count side conversation comment), which FindGet treats as "skip
// this id and keep searching".
func FindGet(ctx context.Context, ids []string, startIndex int, length int, decode func(context.Context, string) (int64, error)) (id string, position int64, err error) {
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex >= len(ids) {
		startIndex = len(ids) - 1
	}
	if startIndex < 0 {
		return "", 0, coreerr.New(coreerr.ChainBroken, "", "find get: empty comment list")
	}

	check := func(i int) (string, int64, bool) {
		if i < 0 || i >= len(ids) {
			return "", 0, false
		}
		n, derr := decode(ctx, ids[i])
		if derr != nil {
			return "", 0, false
		}
		if n%int64(length) == 0 {
			return ids[i], n, true
		}
		return "", 0, false
	}

	if gotID, n, ok := check(startIndex); ok {
		return gotID, n, nil
	}
	for offset := 1; offset < len(ids); offset++ {
		if gotID, n, ok := check(startIndex + offset); ok {
			return gotID, n, nil
		}
		if gotID, n, ok := check(startIndex - offset); ok {
			return gotID, n, nil
		}
	}
	return "", 0, coreerr.New(coreerr.ChainBroken, ids[startIndex], "find get: no multiple of thread length found")
}

// FindAssist returns the comment id immediately preceding the get in
// ids, the post glossary calls "Assist" — the last post of a thread
// before its terminal one.
func FindAssist(ids []string, getIndex int) (string, bool) {
	if getIndex <= 0 || getIndex > len(ids) {
		return "", false
	}
	return ids[getIndex-1], true
}
