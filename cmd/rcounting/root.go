// Command rcounting is the CLI surface spec §6 names: log, validate,
// update-directory, and st-stats. Grounded on the go-mizu-mizu
// blueprints' cobra root command shape (a package-level rootCmd plus
// an Execute that prints to stderr and exits 1 on failure), generalized
// with exit code 2 for the validate subcommand per spec §6.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutonbuminband/rcounting-go/internal/logging"
)

var (
	flagVerbosity  int
	flagQuiet      bool
	flagOutputPath string
	flagUseSQL     bool
	flagPostsFile  string
	flagThreadLen  int
)

var rootCmd = &cobra.Command{
	Use:   "rcounting",
	Short: "Validate and tabulate r/counting side-thread chains",
	Long: `rcounting walks a counting chain from a leaf post back to its root,
validates it against the thread's posting rule, decodes each post to its
integer position, and produces participation tabulations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(flagVerbosity, flagQuiet)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbose", "v", "increase logging verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress all but error-level logging")
	rootCmd.PersistentFlags().StringVarP(&flagOutputPath, "output", "o", "", "output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&flagUseSQL, "sql", false, "write to a SQLite sink instead of CSV")
	rootCmd.PersistentFlags().StringVar(&flagPostsFile, "posts", "", "path to a JSON post fixture (reference post source)")
	rootCmd.PersistentFlags().IntVar(&flagThreadLen, "thread-length", 1000, "posts per thread")

	rootCmd.AddCommand(logCmd, validateCmd, updateDirectoryCmd, stStatsCmd)
}
