package chain

import (
	"context"
	"sort"
	"time"

	"github.com/cutonbuminband/rcounting-go/internal/coreerr"
	"github.com/sirupsen/logrus"
)

// batchSize is the reasonable network-amortisation granularity for
// parent-batch fetches (spec §4.6 step 1: "nine at a time").
const batchSize = 9

// Backoff describes the exponential-backoff schedule the walker uses
// before surfacing a FetchFailed error (SUPPLEMENTED FEATURE 8,
// grounded on weekly_side_thread_stats.py's TooManyRequests handling:
// sleep 30*multiple seconds, multiple *= 1.5 after every failed
// attempt), and the shape of go-mizu's retry middleware Options
// (MaxRetries/Delay fields) generalized to a caller-supplied sleep
// function so tests never actually sleep.
type Backoff struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64
	Sleep      func(time.Duration)
}

// DefaultBackoff matches the original script's schedule: 30s, scaled by
// 1.5x after each failure, up to 5 retries.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxRetries: 5,
		BaseDelay:  30 * time.Second,
		Multiplier: 1.5,
		Sleep:      time.Sleep,
	}
}

// Walker orchestrates fetches from a PostSource to assemble a chain's
// post sequence (spec §4.6). It never mutates a post record and emits
// records in root-to-leaf order.
type Walker struct {
	Source       PostSource
	Backoff      Backoff
	Logger       *logrus.Logger
	ThreadLength int
}

// NewWalker builds a Walker with the default backoff schedule and a
// 1000-post thread length.
func NewWalker(source PostSource) *Walker {
	return &Walker{
		Source:       source,
		Backoff:      DefaultBackoff(),
		Logger:       logrus.StandardLogger(),
		ThreadLength: 1000,
	}
}

// Warning is a non-fatal condition the walker reports while continuing
// the walk (ChainBroken, Archived).
type Warning struct {
	Err *coreerr.Error
}

// withRetry calls fn, retrying with the configured exponential backoff
// on failure, and wraps the final failure as FetchFailed.
func (w *Walker) withRetry(ctx context.Context, postID string, fn func() error) error {
	delay := w.Backoff.BaseDelay
	var lastErr error
	attempts := w.Backoff.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		if w.Logger != nil {
			w.Logger.WithFields(logrus.Fields{"post_id": postID, "attempt": attempt + 1}).
				Warn("fetch failed, retrying after backoff")
		}
		if w.Backoff.Sleep != nil {
			w.Backoff.Sleep(delay)
		}
		delay = time.Duration(float64(delay) * w.Backoff.Multiplier)
	}
	return coreerr.Wrap(coreerr.FetchFailed, postID, "exhausted retries", lastErr)
}

// WalkThread fetches the leaf-to-root chain of posts within a single
// thread, stopping when it reaches a post whose ParentID equals rootID
// or itself equals rootID. Posts are returned in root-to-leaf order.
// Missing ancestors are filled in by single-fetch fallback and reported
// as ChainBroken warnings rather than aborting the walk.
func (w *Walker) WalkThread(ctx context.Context, leafID, rootID string) ([]PostRecord, []Warning) {
	var reverse []PostRecord
	var warnings []Warning

	leaf, err := w.fetchPost(ctx, leafID)
	if err != nil {
		warnings = append(warnings, Warning{Err: coreerr.New(coreerr.ChainBroken, leafID, "could not resolve leaf")})
		return nil, warnings
	}
	reverse = append(reverse, leaf)

	current := leaf.ParentID
	for current != "" && current != rootID {
		var batch []PostRecord
		err := w.withRetry(ctx, current, func() error {
			var fetchErr error
			batch, fetchErr = w.Source.FetchParentBatch(ctx, current, batchSize)
			return fetchErr
		})
		if err != nil || len(batch) == 0 {
			// Batch fetch failed outright; fall back to resolving
			// ancestors one at a time (spec §4.6 step 1, and §7's
			// "retry of a missing parent via single-fetch fallback").
			post, err := w.fetchPost(ctx, current)
			if err != nil {
				warnings = append(warnings, Warning{Err: coreerr.New(coreerr.ChainBroken, current, "could not resolve post")})
				break
			}
			batch = []PostRecord{post}
		}

		current = ""
		for _, p := range batch {
			reverse = append(reverse, p)
			if p.ID == rootID || p.ParentID == "" {
				current = ""
				break
			}
			current = p.ParentID
		}
	}
	if current == rootID {
		if root, err := w.fetchPost(ctx, rootID); err == nil {
			reverse = append(reverse, root)
		} else {
			warnings = append(warnings, Warning{Err: coreerr.New(coreerr.ChainBroken, rootID, "could not resolve root")})
		}
	}

	forward := make([]PostRecord, len(reverse))
	for i, p := range reverse {
		forward[len(reverse)-1-i] = p
	}
	return forward, warnings
}

// WalkChain follows the chain backward from the leaf's thread, walking
// maxThreads threads in all counting the leaf's own (fewer if no
// previous thread can be found), then returns every thread's posts
// concatenated in root-to-leaf, oldest-thread-first order (spec §4.6
// step 4). skipRevivals leaves out of the returned sequence any thread
// whose title marks it as a revival (SUPPLEMENTED FEATURE 1); such a
// thread still counts toward maxThreads and the walk continues to its
// predecessor. PostSource supplies no submission titles, so every
// thread is checked with an empty title and skipRevivals leaves out no
// thread.
func (w *Walker) WalkChain(ctx context.Context, leafID, rootID string, maxThreads int, skipRevivals bool) ([]PostRecord, []Warning) {
	var all []PostRecord
	var warnings []Warning

	type pending struct {
		leaf, root string
		title      string
		body       string
	}
	root, err := w.fetchPost(ctx, rootID)
	title, body := "", ""
	if err == nil {
		body = root.Body
	}
	queue := []pending{{leaf: leafID, root: rootID, title: title, body: body}}

	for i := 0; i < maxThreads && i < len(queue); i++ {
		cur := queue[i]
		posts, w2 := w.WalkThread(ctx, cur.leaf, cur.root)
		warnings = append(warnings, w2...)

		thread := Thread{RootID: cur.root, Title: cur.title, Body: cur.body}
		if !(skipRevivals && thread.IsRevival()) {
			// Each thread walked is older than the ones before it.
			all = append(posts, all...)
		}

		children, _ := w.Source.FetchChildren(ctx, cur.root)
		prevID, _, ok := FindPreviousThread(cur.root, cur.body, children)
		if !ok {
			warnings = append(warnings, Warning{Err: coreerr.New(coreerr.Archived, cur.root, "no previous thread found")})
			break
		}
		prevRoot, perr := w.fetchPost(ctx, prevID)
		prevBody := ""
		if perr == nil {
			prevBody = prevRoot.Body
		}
		ids, _ := w.Source.FetchThreadCommentIDs(ctx, prevID)
		sort.Strings(ids)
		leaf := prevID
		if len(ids) > 0 {
			leaf = ids[len(ids)-1]
		}
		queue = append(queue, pending{leaf: leaf, root: prevID, body: prevBody})
	}

	return all, warnings
}

func (w *Walker) fetchPost(ctx context.Context, id string) (PostRecord, error) {
	var post PostRecord
	err := w.withRetry(ctx, id, func() error {
		var fetchErr error
		post, fetchErr = w.Source.FetchPost(ctx, id)
		return fetchErr
	})
	return post, err
}
