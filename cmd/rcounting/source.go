package main

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/cutonbuminband/rcounting-go/chain"
)

// filePost is the on-disk shape of one post in a fixture file, the
// reference "post source" spec.md keeps as an external collaborator
// (§1's Non-goals: the network client to the forum API is out of
// scope). filePostSource lets the CLI commands run end-to-end against
// a pre-fetched snapshot instead of a live service.
type filePost struct {
	ID        string `json:"id"`
	ParentID  string `json:"parent_id"`
	RootID    string `json:"root_id"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
	Body      string `json:"body"`
}

type filePostSource struct {
	posts    map[string]chain.PostRecord
	children map[string][]string
}

func loadFilePostSource(path string) (*filePostSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading post fixture file")
	}
	var raw []filePost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing post fixture file")
	}
	src := &filePostSource{
		posts:    make(map[string]chain.PostRecord, len(raw)),
		children: make(map[string][]string),
	}
	for _, p := range raw {
		src.posts[p.ID] = chain.PostRecord{
			ID:        p.ID,
			ParentID:  p.ParentID,
			RootID:    p.RootID,
			Author:    p.Author,
			Timestamp: time.Unix(p.Timestamp, 0).UTC(),
			Body:      p.Body,
		}
		if p.ParentID != "" {
			src.children[p.ParentID] = append(src.children[p.ParentID], p.ID)
		}
	}
	return src, nil
}

func (s *filePostSource) FetchPost(_ context.Context, id string) (chain.PostRecord, error) {
	p, ok := s.posts[id]
	if !ok {
		return chain.PostRecord{}, errors.Errorf("post %s not found in fixture", id)
	}
	return p, nil
}

func (s *filePostSource) FetchParentBatch(ctx context.Context, id string, k int) ([]chain.PostRecord, error) {
	var batch []chain.PostRecord
	current := id
	for len(batch) < k {
		p, err := s.FetchPost(ctx, current)
		if err != nil {
			break
		}
		batch = append(batch, p)
		if p.ParentID == "" {
			break
		}
		current = p.ParentID
	}
	if len(batch) == 0 {
		return nil, errors.Errorf("post %s not found in fixture", id)
	}
	return batch, nil
}

func (s *filePostSource) FetchChildren(_ context.Context, id string) ([]chain.PostRecord, error) {
	ids := s.children[id]
	out := make([]chain.PostRecord, 0, len(ids))
	for _, cid := range ids {
		out = append(out, s.posts[cid])
	}
	return out, nil
}

func (s *filePostSource) FetchThreadCommentIDs(_ context.Context, rootID string) ([]string, error) {
	var ids []string
	for id, p := range s.posts {
		if p.RootID == rootID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *filePostSource) ResolveShortLink(_ context.Context, token string) (string, error) {
	return token, nil
}
