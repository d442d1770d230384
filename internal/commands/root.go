package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/version"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "ledgerline",
		Short:   "Import Deutsche Bank statement exports into a ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	newLogger := func() *log.Logger {
		opts := log.Options{ReportTimestamp: false}
		if verbose {
			opts.Level = log.DebugLevel
		}
		return log.NewWithOptions(os.Stderr, opts)
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newExtractCommand(newLogger))
	rootCmd.AddCommand(newIdentifyCommand(newLogger))
	rootCmd.AddCommand(newImportCommand(newLogger))

	return rootCmd
}
