package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutonbuminband/rcounting-go/chain"
	"github.com/cutonbuminband/rcounting-go/codec"
	"github.com/cutonbuminband/rcounting-go/form"
	"github.com/cutonbuminband/rcounting-go/internal/logging"
	"github.com/cutonbuminband/rcounting-go/registry"
	"github.com/cutonbuminband/rcounting-go/rule"
	"github.com/cutonbuminband/rcounting-go/sink"
)

var logCmd = &cobra.Command{
	Use:   "log <leaf-id> <root-id>",
	Short: "Walk a chain from a leaf post and persist its decoded history",
	Args:  cobra.ExactArgs(2),
	RunE:  runLog,
}

func loadSourceAndRegistry() (*filePostSource, *registry.Registry, error) {
	if flagPostsFile == "" {
		return nil, nil, fmt.Errorf("--posts is required (path to a JSON post fixture)")
	}
	src, err := loadFilePostSource(flagPostsFile)
	if err != nil {
		return nil, nil, err
	}
	return src, registry.New(), nil
}

func runLog(cmd *cobra.Command, args []string) error {
	logger := logging.For("log")
	leafID, rootID := args[0], args[1]

	src, reg, err := loadSourceAndRegistry()
	if err != nil {
		return err
	}

	w := chain.NewWalker(src)
	w.ThreadLength = flagThreadLen
	posts, warnings := w.WalkThread(context.Background(), leafID, rootID)
	for _, warn := range warnings {
		logger.Warn(warn.Err.Error())
	}
	if len(posts) == 0 {
		return fmt.Errorf("no posts resolved for leaf %s", leafID)
	}

	descriptor := reg.Lookup(rootID)
	checker := descriptor.Form
	if checker == nil {
		checker = form.Permissive
	}
	encoder := descriptor.Encoder
	if encoder == nil {
		encoder = codec.NewBaseNEncoder(10)
	}

	history := make([]rule.Record, 0, len(posts))
	rows := make([]sink.CountRow, 0, len(posts))
	for _, p := range posts {
		token, ok := checker(p.Body)
		if !ok {
			logger.WithField("post_id", p.ID).Debug("post does not look like a count, skipping")
			continue
		}
		count, err := encoder.BodyToCount(token)
		if err != nil {
			logger.WithField("post_id", p.ID).Debug("post failed to decode, skipping")
			continue
		}
		history = append(history, rule.Record{Username: p.Author, Timestamp: p.Timestamp})
		rows = append(rows, sink.CountRow{
			Count:        count.Int64(),
			Username:     p.Author,
			Timestamp:    p.Timestamp,
			CommentID:    p.ID,
			SubmissionID: rootID,
		})
	}

	activeRule := descriptor.Rule
	if activeRule == nil {
		activeRule = rule.Default()
	}
	mask := activeRule.Validate(history)
	for i, ok := range mask {
		if !ok {
			logger.WithField("comment_id", rows[i].CommentID).Warn("record violates the active posting rule")
		}
	}

	if flagUseSQL {
		path := flagOutputPath
		if path == "" {
			path = "rcounting.db"
		}
		s, err := sink.OpenSQLite(path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.InsertComments(rows); err != nil {
			return err
		}
		return s.SetCheckpoint(rootID, posts[len(posts)-1].ID)
	}

	out := os.Stdout
	if flagOutputPath != "" {
		f, err := os.Create(flagOutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return sink.WriteCSV(out, descriptor.Name, rows)
}
