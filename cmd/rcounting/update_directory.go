package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutonbuminband/rcounting-go/registry"
)

var updateDirectoryCmd = &cobra.Command{
	Use:   "update-directory <directory-page-file>",
	Short: "Parse the wiki directory page and print every discovered side thread",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdateDirectory,
}

func runUpdateDirectory(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	paragraphs := registry.ParseDirectoryPage(string(data))

	out := os.Stdout
	if flagOutputPath != "" {
		f, err := os.Create(flagOutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	count := 0
	for _, p := range paragraphs {
		if !p.IsTable {
			continue
		}
		for _, row := range p.Rows {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", row.Name, row.FirstSubmissionID, row.CurrentSubmissionID, row.CurrentCommentID, row.Count)
			count++
		}
	}
	if count == 0 {
		return fmt.Errorf("no side-thread rows found in directory page")
	}
	return nil
}
