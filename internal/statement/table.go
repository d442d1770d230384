package statement

import (
	"encoding/csv"
	"io"
	"strings"
)

// Columns of the transaction table. Header validation compares the set of
// names, not their order, and this list also renders the "expected header"
// part of the mismatch error.
var tableColumns = []string{
	"Booking date",
	"Value date",
	"Transaction Type",
	"Beneficiary / Originator",
	"Payment Details",
	"IBAN",
	"BIC",
	"Customer Reference",
	"Mandate Reference",
	"Creditor ID",
	"Compensation amount",
	"Original Amount",
	"Ultimate creditor",
	"Number of transactions",
	"Number of cheques",
	"Debit",
	"Credit",
	"Currency",
}

const (
	colBookingDate    = "Booking date"
	colValueDate      = "Value date"
	colBeneficiary    = "Beneficiary / Originator"
	colPaymentDetails = "Payment Details"
	colIBAN           = "IBAN"
	colDebit          = "Debit"
	colCredit         = "Credit"
	colCurrency       = "Currency"
)

// rowReader yields table rows as column-name → raw-value maps. It is
// single-pass: rows are pulled one at a time and cannot be replayed.
type rowReader struct {
	cr     *csv.Reader
	header []string
	line   int // physical line of the most recently consumed row
}

// newRowReader reads and validates the table header. line is the physical
// line count consumed so far; the header occupies line+1.
func newRowReader(r io.Reader, line int) (*rowReader, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	header, err := cr.Read()
	line++
	if err != nil {
		return nil, formatErrorf(line, "reading table header: %v", err)
	}
	if !matchesSchema(header) {
		return nil, formatErrorf(line, "unexpected data headers (expected %s)", strings.Join(tableColumns, ";"))
	}
	return &rowReader{cr: cr, header: header, line: line}, nil
}

// matchesSchema reports whether the names form exactly the expected column
// set. Order does not matter; extra or missing names do.
func matchesSchema(header []string) bool {
	want := make(map[string]bool, len(tableColumns))
	for _, name := range tableColumns {
		want[name] = true
	}
	got := make(map[string]bool, len(header))
	for _, name := range header {
		got[name] = true
	}
	if len(got) != len(want) {
		return false
	}
	for name := range got {
		if !want[name] {
			return false
		}
	}
	return true
}

// next returns the following row and its 1-based line number. io.EOF marks
// the end of the table.
func (rr *rowReader) next() (map[string]string, int, error) {
	rec, err := rr.cr.Read()
	if err == io.EOF {
		return nil, rr.line, io.EOF
	}
	rr.line++
	if err != nil {
		return nil, rr.line, formatErrorf(rr.line, "reading table row: %v", err)
	}

	row := make(map[string]string, len(rr.header))
	for i, name := range rr.header {
		row[name] = rec[i]
	}
	return row, rr.line, nil
}
