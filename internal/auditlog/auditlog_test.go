package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() Entry {
	return Entry{
		Timestamp:      time.Date(2023, 2, 1, 9, 30, 0, 0, time.UTC),
		File:           "statement.csv",
		Account:        "current",
		PeriodStart:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		Transactions:   3,
		ClosingBalance: "7326.55 EUR",
	}
}

func TestAppendRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{sampleEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "statement.csv", e.File)
	assert.Equal(t, "current", e.Account)
	assert.Equal(t, "2023-01-01", e.PeriodStart.Format("2006-01-02"))
	assert.Equal(t, "2023-01-31", e.PeriodEnd.Format("2006-01-02"))
	assert.Equal(t, 3, e.Transactions)
	assert.Equal(t, "7326.55 EUR", e.ClosingBalance)
}

func TestAppend_CreatesHeaderOnce(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{sampleEntry()}))
	require.NoError(t, Append(dir, []Entry{sampleEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "import-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,file"))
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_FieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "few"})
	assert.Error(t, err)
}
