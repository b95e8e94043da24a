package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutonbuminband/rcounting-go/aggregate"
	"github.com/cutonbuminband/rcounting-go/chain"
	"github.com/cutonbuminband/rcounting-go/codec"
	"github.com/cutonbuminband/rcounting-go/form"
	"github.com/cutonbuminband/rcounting-go/internal/logging"
)

var flagAliasFile string

var stStatsCmd = &cobra.Command{
	Use:   "st-stats <leaf-id> <root-id>",
	Short: "Print a rank-ordered participation tabulation for a side thread",
	Args:  cobra.ExactArgs(2),
	RunE:  runStStats,
}

func init() {
	stStatsCmd.Flags().StringVar(&flagAliasFile, "aliases", "", "path to an alias file")
}

func runStStats(cmd *cobra.Command, args []string) error {
	logger := logging.For("st-stats")
	leafID, rootID := args[0], args[1]

	src, reg, err := loadSourceAndRegistry()
	if err != nil {
		return err
	}

	w := chain.NewWalker(src)
	posts, warnings := w.WalkThread(context.Background(), leafID, rootID)
	for _, warn := range warnings {
		logger.Warn(warn.Err.Error())
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

	var resolve func(string) string
	if flagAliasFile != "" {
		f, err := os.Open(flagAliasFile)
		if err != nil {
			return err
		}
		table, err := loadAliasTable(f)
		f.Close()
		if err != nil {
			return err
		}
		resolve = func(u string) string { return table.Resolve(u).Canonical }
	}

	history := make([]aggregate.Record, 0, len(posts))
	for _, p := range posts {
		token, ok := checker(p.Body)
		if !ok {
			continue
		}
		count, err := encoder.BodyToCount(token)
		if err != nil {
			continue
		}
		history = append(history, aggregate.Record{Author: p.Author, Timestamp: p.Timestamp, CommentID: p.ID, Count: count.Int64()})
	}

	tallies := aggregate.Tabulate(history, resolve)
	fmt.Print(aggregate.RenderMarkdownTable(tallies))

	elapsed := aggregate.ElapsedTime(history)
	fmt.Printf("\nElapsed: %dd %dh %dm %ds\n", elapsed.Days, elapsed.Hours, elapsed.Minutes, elapsed.Seconds)

	for _, errRecord := range aggregate.FindErrors(history) {
		logger.WithField("comment_id", errRecord.CommentID).Warn("uncorrected error in history")
	}
	return nil
}
