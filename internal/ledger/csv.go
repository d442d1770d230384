// Package ledger reads and writes ledger.csv, the flat file extracted
// transactions are appended to.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "reference,date,account,payee,narration,amount,currency,source_file,source_line"

const (
	numFields     = 9
	dateFormat    = "2006-01-02"
	colReference  = 0
	colDate       = 1
	colAccount    = 2
	colPayee      = 3
	colNarration  = 4
	colAmount     = 5
	colCurrency   = 6
	colSourceFile = 7
	colSourceLine = 8
)

// Read reads all transactions from a ledger.csv reader.
func Read(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := Unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// Write writes transactions to a ledger.csv writer, header included.
func Write(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(Marshal(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Append appends transactions to an existing ledger.csv writer (no header).
func Append(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(Marshal(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Marshal converts a Transaction to a CSV row.
func Marshal(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colReference] = txn.Reference
	row[colDate] = txn.Date.Format(dateFormat)
	row[colAccount] = txn.Account
	row[colPayee] = txn.Payee
	row[colNarration] = txn.Narration
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colCurrency] = txn.Currency
	row[colSourceFile] = txn.Source.File
	row[colSourceLine] = strconv.Itoa(txn.Source.Line)
	return row
}

// Unmarshal converts a CSV row to a Transaction.
func Unmarshal(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	line, err := strconv.Atoi(record[colSourceLine])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing source_line %q: %w", record[colSourceLine], err)
	}

	return model.Transaction{
		Reference: record[colReference],
		Date:      date,
		Account:   record[colAccount],
		Payee:     record[colPayee],
		Narration: record[colNarration],
		Amount:    amount,
		Currency:  record[colCurrency],
		Source:    model.SourceLocation{File: record[colSourceFile], Line: line},
	}, nil
}
