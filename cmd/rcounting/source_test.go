package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, posts []filePost) string {
	t.Helper()
	data, err := json.Marshal(posts)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "posts.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFilePostSourceFetchPost(t *testing.T) {
	path := writeFixture(t, []filePost{
		{ID: "root1", ParentID: "", RootID: "root1", Author: "A", Timestamp: 1, Body: "1"},
		{ID: "root1_b", ParentID: "root1", RootID: "root1", Author: "B", Timestamp: 2, Body: "2"},
	})
	src, err := loadFilePostSource(path)
	if err != nil {
		t.Fatalf("loadFilePostSource: %v", err)
	}

	post, err := src.FetchPost(context.Background(), "root1_b")
	if err != nil {
		t.Fatalf("FetchPost: %v", err)
	}
	if post.Body != "2" || post.ParentID != "root1" {
		t.Errorf("unexpected post: %+v", post)
	}

	if _, err := src.FetchPost(context.Background(), "missing"); err == nil {
		t.Error("expected an error for a missing post id")
	}
}

func TestFilePostSourceFetchParentBatch(t *testing.T) {
	path := writeFixture(t, []filePost{
		{ID: "root1", ParentID: "", RootID: "root1", Author: "A", Timestamp: 1, Body: "1"},
		{ID: "root1_b", ParentID: "root1", RootID: "root1", Author: "B", Timestamp: 2, Body: "2"},
		{ID: "root1_c", ParentID: "root1_b", RootID: "root1", Author: "A", Timestamp: 3, Body: "3"},
	})
	src, err := loadFilePostSource(path)
	if err != nil {
		t.Fatalf("loadFilePostSource: %v", err)
	}

	batch, err := src.FetchParentBatch(context.Background(), "root1_c", 9)
	if err != nil {
		t.Fatalf("FetchParentBatch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 posts in batch, got %d", len(batch))
	}
	if batch[0].ID != "root1_c" || batch[2].ID != "root1" {
		t.Errorf("unexpected batch order: %+v", batch)
	}
}

func TestFilePostSourceFetchChildren(t *testing.T) {
	path := writeFixture(t, []filePost{
		{ID: "root1", ParentID: "", RootID: "root1", Author: "A", Timestamp: 1, Body: "1"},
		{ID: "root1_b", ParentID: "root1", RootID: "root1", Author: "B", Timestamp: 2, Body: "2"},
		{ID: "root1_c", ParentID: "root1", RootID: "root1", Author: "A", Timestamp: 3, Body: "3"},
	})
	src, err := loadFilePostSource(path)
	if err != nil {
		t.Fatalf("loadFilePostSource: %v", err)
	}

	children, err := src.FetchChildren(context.Background(), "root1")
	if err != nil {
		t.Fatalf("FetchChildren: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
}
