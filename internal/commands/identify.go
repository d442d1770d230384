package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
)

func newIdentifyCommand(newLogger func() *log.Logger) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Report which statement profile matches a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			reg, err := importer.FromConfig(cfg, newLogger())
			if err != nil {
				return err
			}

			contents, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			name, _, ok := reg.Resolve(contents)
			if !ok {
				return fmt.Errorf("no configured profile matches %s", args[0])
			}

			fmt.Println(name)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "ledgerline.yaml", "config file")

	return cmd
}
