package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func newInitCommand() *cobra.Command {
	var profile config.StatementProfile

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerline project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, profile)
		},
	}

	cmd.Flags().StringVar(&profile.Name, "name", "", "statement profile name")
	cmd.Flags().StringVar(&profile.Branch, "branch", "", "branch code on the statement header")
	cmd.Flags().StringVar(&profile.Number, "number", "", "customer number on the statement header")
	cmd.Flags().StringVar(&profile.Account, "account", "", "destination ledger account")
	cmd.Flags().StringVar(&profile.Currency, "currency", "", "statement currency (default EUR)")

	return cmd
}

func runInit(dir string, profile config.StatementProfile) error {
	// Create directory structure.
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write ledgerline.yaml, seeding one profile when identity flags were given.
	cfg := config.Default()
	if profile.Branch != "" || profile.Number != "" {
		if profile.Branch == "" || profile.Number == "" || profile.Account == "" {
			return fmt.Errorf("seeding a profile requires --branch, --number and --account")
		}
		if profile.Name == "" {
			profile.Name = "current"
		}
		cfg.Statements = append(cfg.Statements, profile)
	}
	if err := config.Save(filepath.Join(dir, "ledgerline.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Printf("Initialized ledgerline project at %s\n", dir)
	return nil
}
