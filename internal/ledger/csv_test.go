package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		{
			Reference: "db_20230105_AcmeGmbH",
			Date:      time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
			Account:   "Assets:DB:Current",
			Payee:     "Acme GmbH",
			Amount:    decimal.RequireFromString("50.00"),
			Currency:  "EUR",
			Source:    model.SourceLocation{File: "statement.csv", Line: 6},
		},
		{
			Reference: "db_20230110_Enterprise",
			Date:      time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
			Account:   "Assets:DB:Current",
			Payee:     "Enterprises Ltd",
			Amount:    decimal.RequireFromString("2500.00"),
			Currency:  "EUR",
			Source:    model.SourceLocation{File: "statement.csv", Line: 7},
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTxns()))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "db_20230105_AcmeGmbH", got[0].Reference)
	assert.Equal(t, "Acme GmbH", got[0].Payee)
	assert.Equal(t, "50.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "EUR", got[0].Currency)
	assert.Equal(t, "statement.csv", got[0].Source.File)
	assert.Equal(t, 6, got[0].Source.Line)
	assert.Equal(t, 7, got[1].Source.Line)
}

func TestWrite_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, Header, strings.TrimSpace(buf.String()))
}

func TestAppend_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Append(&buf, sampleTxns()[:1]))
	assert.False(t, strings.HasPrefix(buf.String(), "reference,"))
	assert.Contains(t, buf.String(), "db_20230105_AcmeGmbH")
}

func TestRead_Empty(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Read(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnmarshal_FieldCount(t *testing.T) {
	_, err := Unmarshal([]string{"only", "three", "fields"})
	assert.Error(t, err)
}

func TestRead_BadRows(t *testing.T) {
	cases := map[string]string{
		"bad date":   Header + "\nref,NOTADATE,acct,payee,,50.00,EUR,f.csv,6\n",
		"bad amount": Header + "\nref,2023-01-05,acct,payee,,NaNope,EUR,f.csv,6\n",
		"bad line":   Header + "\nref,2023-01-05,acct,payee,,50.00,EUR,f.csv,xx\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(in))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}
