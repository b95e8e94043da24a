// Package chain walks a post tree from a leaf comment back to the root
// of its chain, stitching threads together across thread boundaries
// (spec §4.6). It is the only package in this module whose operations
// may suspend on network activity; every call that reaches the post
// source takes a context.Context.
package chain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var revivalPattern = regexp.MustCompile(`(?i)\(*reviv\w*\)*`)

// PostRecord is one post (submission or comment) in a counting chain.
// Author is the reserved sentinel DeletedAuthor when the forum has
// scrubbed the post's author.
type PostRecord struct {
	ID        string
	ParentID  string
	RootID    string
	Author    string
	Timestamp time.Time
	Body      string
}

// DeletedAuthor is the author sentinel for a post whose author the
// forum no longer reports.
const DeletedAuthor = "[deleted]"

// Thread is one 1000-post-capped submission plus the metadata the
// walker needs to stitch it to its predecessor.
type Thread struct {
	RootID string
	Title  string
	Body   string
}

// IsRevival reports whether the thread's title marks it as a revival —
// a thread that restarts a dead chain rather than continuing one
// (SUPPLEMENTED FEATURE 1). Grounded on parsing.py's is_revived: the
// case-insensitive regex `\(*reviv\w*\)*`.
func (t Thread) IsRevival() bool {
	return revivalPattern.MatchString(strings.ToLower(t.Title))
}

// PostSource is the external collaborator the embedder supplies to
// fetch posts (spec §6). All methods may suspend on network I/O and
// should respect ctx cancellation between calls.
type PostSource interface {
	// FetchPost fetches a single post by id.
	FetchPost(ctx context.Context, id string) (PostRecord, error)
	// FetchParentBatch fetches up to k records: id itself first, then
	// its ancestors, nearest first.
	// It may return fewer than k records if some ancestors are
	// unavailable; it must not fail outright just because one ancestor
	// in the middle of the batch is missing.
	FetchParentBatch(ctx context.Context, id string, k int) ([]PostRecord, error)
	// FetchChildren fetches the direct replies to id.
	FetchChildren(ctx context.Context, id string) ([]PostRecord, error)
	// FetchThreadCommentIDs fetches every comment id in the thread
	// rooted at rootID, for backfilling a gap or searching for a get.
	FetchThreadCommentIDs(ctx context.Context, rootID string) ([]string, error)
	// ResolveShortLink expands an opaque short link token to a
	// canonical thread URL. Optional: sources that never emit short
	// links may return the token unchanged.
	ResolveShortLink(ctx context.Context, token string) (string, error)
}
