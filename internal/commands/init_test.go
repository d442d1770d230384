package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func TestRunInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, config.StatementProfile{}))

	for _, d := range []string{"import", filepath.Join("import", "processed"), "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, "ledgerline.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ledger.csv", cfg.Ledger.Path)
	assert.Empty(t, cfg.Statements)
}

func TestRunInit_SeedsProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, config.StatementProfile{
		Branch:  "100",
		Number:  "1234567",
		Account: "Assets:DB:Current",
	}))

	cfg, err := config.Load(filepath.Join(dir, "ledgerline.yaml"))
	require.NoError(t, err)
	require.Len(t, cfg.Statements, 1)
	assert.Equal(t, "current", cfg.Statements[0].Name)
	assert.Equal(t, "100", cfg.Statements[0].Branch)
}

func TestRunInit_IncompleteProfile(t *testing.T) {
	err := runInit(t.TempDir(), config.StatementProfile{Branch: "100"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--number")
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "ledgerline", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "extract")
	assert.Contains(t, names, "identify")
	assert.Contains(t, names, "import")
}
