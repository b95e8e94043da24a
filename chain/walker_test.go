package chain

import (
	"context"
	"testing"
	"time"

	"github.com/cutonbuminband/rcounting-go/internal/coreerr"
)

// fakeSource is an in-memory PostSource over a linear chain of posts,
// for exercising the walker without network access.
type fakeSource struct {
	posts    map[string]PostRecord
	fail     map[string]int // number of times to fail FetchParentBatch before succeeding
	children map[string][]PostRecord
	threads  map[string][]string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		posts:    make(map[string]PostRecord),
		fail:     make(map[string]int),
		children: make(map[string][]PostRecord),
		threads:  make(map[string][]string),
	}
}

func (f *fakeSource) FetchPost(ctx context.Context, id string) (PostRecord, error) {
	p, ok := f.posts[id]
	if !ok {
		return PostRecord{}, coreerr.New(coreerr.FetchFailed, id, "not found")
	}
	return p, nil
}

func (f *fakeSource) FetchParentBatch(ctx context.Context, id string, k int) ([]PostRecord, error) {
	if f.fail[id] > 0 {
		f.fail[id]--
		return nil, coreerr.New(coreerr.FetchFailed, id, "simulated failure")
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, coreerr.New(coreerr.FetchFailed, id, "not found")
	}
	batch := []PostRecord{p}
	cur := p
	for len(batch) < k {
		parent, ok := f.posts[cur.ParentID]
		if !ok {
			break
		}
		batch = append(batch, parent)
		cur = parent
	}
	return batch, nil
}

func (f *fakeSource) FetchChildren(ctx context.Context, id string) ([]PostRecord, error) {
	return f.children[id], nil
}

func (f *fakeSource) FetchThreadCommentIDs(ctx context.Context, rootID string) ([]string, error) {
	return f.threads[rootID], nil
}

func (f *fakeSource) ResolveShortLink(ctx context.Context, token string) (string, error) {
	return token, nil
}

func linearChain(rootID string, n int) *fakeSource {
	src := newFakeSource()
	parent := ""
	for i := 0; i < n; i++ {
		id := rootID
		if i > 0 {
			id = rootID + "_" + string(rune('a'+i))
		}
		src.posts[id] = PostRecord{ID: id, ParentID: parent, RootID: rootID, Author: "user", Timestamp: time.Unix(int64(i), 0), Body: "x"}
		parent = id
	}
	return src
}

func TestWalkThreadReturnsRootToLeafOrder(t *testing.T) {
	src := linearChain("root1", 5)
	w := NewWalker(src)
	w.Backoff.Sleep = func(time.Duration) {}

	leafID := "root1_e"
	posts, warnings := w.WalkThread(context.Background(), leafID, "root1")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(posts))
	}
	if posts[0].ID != "root1" {
		t.Errorf("first post = %q, want root", posts[0].ID)
	}
	if posts[len(posts)-1].ID != leafID {
		t.Errorf("last post = %q, want leaf", posts[len(posts)-1].ID)
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].ParentID != posts[i-1].ID {
			t.Errorf("post %d parent %q does not follow post %d id %q", i, posts[i].ParentID, i-1, posts[i-1].ID)
		}
	}
}

func TestWalkThreadFallsBackToSingleFetchOnBatchFailure(t *testing.T) {
	src := linearChain("root1", 3)
	src.fail["root1_b"] = 1 // batch fetch for the first ancestor fails once
	w := NewWalker(src)
	w.Backoff.MaxRetries = 0 // no retry, so the failed batch falls back to a single fetch
	w.Backoff.BaseDelay = time.Millisecond
	w.Backoff.Sleep = func(time.Duration) {}

	posts, warnings := w.WalkThread(context.Background(), "root1_c", "root1")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts despite transient batch failure, got %d", len(posts))
	}
}

func TestWalkThreadReportsChainBrokenOnMissingAncestor(t *testing.T) {
	src := newFakeSource()
	src.posts["leaf"] = PostRecord{ID: "leaf", ParentID: "missing", RootID: "root1"}
	w := NewWalker(src)
	w.Backoff.MaxRetries = 0
	w.Backoff.Sleep = func(time.Duration) {}

	posts, warnings := w.WalkThread(context.Background(), "leaf", "root1")
	if len(posts) != 1 {
		t.Fatalf("expected only the leaf to resolve, got %d posts", len(posts))
	}
	if len(warnings) != 1 || warnings[0].Err.Kind != coreerr.ChainBroken {
		t.Fatalf("expected one ChainBroken warning, got %+v", warnings)
	}
}

func TestFindGetSearchesOutwardFromCandidate(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	decode := func(_ context.Context, id string) (int64, error) {
		positions := map[string]int64{"a": 997, "b": 998, "c": 999, "d": 1000, "e": 1001}
		return positions[id], nil
	}
	gotID, pos, err := FindGet(context.Background(), ids, 1, 1000, decode)
	if err != nil {
		t.Fatalf("FindGet: %v", err)
	}
	if gotID != "d" || pos != 1000 {
		t.Errorf("FindGet = (%q, %d), want (d, 1000)", gotID, pos)
	}
}

func TestFindGetFailsWhenNoMultipleExists(t *testing.T) {
	ids := []string{"a", "b"}
	decode := func(_ context.Context, id string) (int64, error) { return 1, nil }
	_, _, err := FindGet(context.Background(), ids, 0, 1000, decode)
	if err == nil {
		t.Fatal("expected an error when no id decodes to a multiple of length")
	}
}

func TestFindPreviousThreadSelectsEarlierSortingID(t *testing.T) {
	body := "continued from https://reddit.com/r/counting/comments/abc123/_/xyz789/"
	threadID, commentID, ok := FindPreviousThread("zzz999", body, nil)
	if !ok {
		t.Fatal("expected to find a previous thread")
	}
	if threadID != "abc123" || commentID != "xyz789" {
		t.Errorf("got (%q, %q)", threadID, commentID)
	}
}

func TestFindPreviousThreadIgnoresLaterSortingID(t *testing.T) {
	_, _, ok := FindPreviousThread("aaa000", "see https://reddit.com/r/counting/comments/zzz999/_/abc/", nil)
	if ok {
		t.Error("should not select a URL that sorts later than the current thread")
	}
}

func TestThreadIsRevivalMatchesTitleVariants(t *testing.T) {
	cases := map[string]bool{
		"Counting to 100k (Revival)": true,
		"(revival) counting thread":  true,
		"Counting to infinity":       false,
	}
	for title, want := range cases {
		th := Thread{Title: title}
		if got := th.IsRevival(); got != want {
			t.Errorf("IsRevival(%q) = %v, want %v", title, got, want)
		}
	}
}
