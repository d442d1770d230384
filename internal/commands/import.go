package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/auditlog"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newImportCommand(newLogger func() *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Import all statements waiting in import/ into the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runImport(root, newLogger())
		},
	}

	return cmd
}

func runImport(root string, logger *log.Logger) error {
	cfg, err := config.Load(filepath.Join(root, "ledgerline.yaml"))
	if err != nil {
		return err
	}

	reg, err := importer.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	files, err := importer.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("nothing to import")
		return nil
	}

	ledgerPath := filepath.Join(root, cfg.Ledger.Path)

	for _, file := range files {
		contents, err := os.ReadFile(file.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file.Name, err)
		}

		name, ext, ok := reg.Resolve(contents)
		if !ok {
			return fmt.Errorf("no configured profile matches %s", file.Name)
		}

		st, err := ext.ExtractFile(file.Path)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", file.Name, err)
		}

		if err := appendLedger(ledgerPath, st.Transactions); err != nil {
			return fmt.Errorf("updating ledger for %s: %w", file.Name, err)
		}

		entry := auditlog.Entry{
			Timestamp:      time.Now(),
			File:           file.Name,
			Account:        name,
			PeriodStart:    st.Period.Start,
			PeriodEnd:      st.Period.End,
			Transactions:   len(st.Transactions),
			ClosingBalance: st.Closing.Amount.StringFixed(2) + " " + st.Closing.Currency,
		}
		if err := auditlog.Append(root, []auditlog.Entry{entry}); err != nil {
			return fmt.Errorf("writing import log: %w", err)
		}

		archive := fmt.Sprintf("%s-%s.csv", name, st.Period.End.Format("2006-01-02"))
		if err := importer.MarkProcessed(root, file.Name, archive); err != nil {
			return err
		}

		logger.Info("imported statement",
			"file", file.Name,
			"profile", name,
			"transactions", len(st.Transactions),
			"archived_as", archive)
	}

	return nil
}

// appendLedger appends transactions to the ledger file, writing the header
// first when the file does not exist yet.
func appendLedger(path string, txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if needsHeader {
		return ledger.Write(f, txns)
	}
	return ledger.Append(f, txns)
}
