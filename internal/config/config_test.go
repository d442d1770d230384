package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Statements = []StatementProfile{
		{
			Name:     "current",
			Branch:   "100",
			Number:   "1234567",
			Account:  "Assets:DB:Current",
			Currency: "EUR",
			Encoding: "ISO-8859-1",
		},
	}

	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Ledger.Path, got.Ledger.Path)
	require.Len(t, got.Statements, 1)
	assert.Equal(t, "current", got.Statements[0].Name)
	assert.Equal(t, "100", got.Statements[0].Branch)
	assert.Equal(t, "1234567", got.Statements[0].Number)
	assert.Equal(t, "Assets:DB:Current", got.Statements[0].Account)
	assert.Equal(t, "ISO-8859-1", got.Statements[0].Encoding)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "ledger.csv", cfg.Ledger.Path)
	assert.Empty(t, cfg.Statements)
}

func TestProfile(t *testing.T) {
	cfg := Default()
	cfg.Statements = []StatementProfile{
		{Name: "current", Branch: "100", Number: "1234567"},
		{Name: "joint", Branch: "200", Number: "7654321"},
	}

	p, ok := cfg.Profile("joint")
	require.True(t, ok)
	assert.Equal(t, "200", p.Branch)

	_, ok = cfg.Profile("savings")
	assert.False(t, ok)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
