package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/statement"
)

func newExtractCommand(newLogger func() *log.Logger) *cobra.Command {
	var cfgPath string
	var profileName string
	var outPath string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract one statement file and print its ledger rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			ext, name, err := resolveExtractor(cfg, logger, profileName, args[0])
			if err != nil {
				return err
			}

			st, err := ext.ExtractFile(args[0])
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := ledger.Write(out, st.Transactions); err != nil {
				return err
			}

			logger.Info("extracted statement",
				"profile", name,
				"start", st.Period.Start.Format("2006-01-02"),
				"end", st.Period.End.Format("2006-01-02"),
				"opening", st.Opening.Amount.StringFixed(2),
				"closing", st.Closing.Amount.StringFixed(2),
				"transactions", len(st.Transactions))
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "ledgerline.yaml", "config file")
	cmd.Flags().StringVar(&profileName, "profile", "", "statement profile (default: auto-detect)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// resolveExtractor picks the extractor for a file, either by explicit profile
// name or by matching the file contents against every configured profile.
func resolveExtractor(cfg *config.Config, logger *log.Logger, profileName, path string) (*statement.Extractor, string, error) {
	reg, err := importer.FromConfig(cfg, logger)
	if err != nil {
		return nil, "", err
	}

	if profileName != "" {
		ext := reg.Get(profileName)
		if ext == nil {
			return nil, "", fmt.Errorf("unknown statement profile %q", profileName)
		}
		return ext, profileName, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	name, ext, ok := reg.Resolve(contents)
	if !ok {
		return nil, "", fmt.Errorf("no configured profile matches %s", path)
	}
	return ext, name, nil
}
