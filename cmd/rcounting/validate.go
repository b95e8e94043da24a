package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutonbuminband/rcounting-go/chain"
	"github.com/cutonbuminband/rcounting-go/form"
	"github.com/cutonbuminband/rcounting-go/internal/logging"
	"github.com/cutonbuminband/rcounting-go/rule"
)

var validateCmd = &cobra.Command{
	Use:   "validate <leaf-id> <root-id>",
	Short: "Validate a chain against its side thread's posting rule",
	Args:  cobra.ExactArgs(2),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := logging.For("validate")
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
	activeRule := descriptor.Rule
	if activeRule == nil {
		activeRule = rule.Default()
	}

	history := make([]rule.Record, 0, len(posts))
	commentIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := checker(p.Body); !ok {
			continue
		}
		history = append(history, rule.Record{Username: p.Author, Timestamp: p.Timestamp})
		commentIDs = append(commentIDs, p.ID)
	}

	mask := activeRule.Validate(history)
	for i, ok := range mask {
		if !ok {
			fmt.Fprintf(os.Stderr, "validation failure at %s\n", commentIDs[i])
			os.Exit(2)
		}
	}
	fmt.Println("chain is valid")
	return nil
}
