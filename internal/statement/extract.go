// Package statement parses Deutsche Bank current-account CSV exports: four
// fixed preamble lines, a semicolon-delimited transaction table, and a
// terminal "Account balance" pseudo-row carrying the closing balance.
package statement

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// sentinelBalance marks the terminal table row in the booking-date column.
const sentinelBalance = "Account balance"

// Options configure an Extractor for one statement profile.
type Options struct {
	Branch   string
	Number   string
	Account  string // destination account stamped on every transaction
	Currency string // default "EUR"
	Encoding string // IANA charset name of the input, default "utf-8"
	Logger   *log.Logger
}

// Extractor converts one statement file into a model.Statement. It owns all
// per-extraction state; the only thing shared across calls is configuration.
type Extractor struct {
	account  string
	currency string
	enc      encoding.Encoding
	logger   *log.Logger

	headerLine *regexp.Regexp // anchored to one full line
	headerAny  *regexp.Regexp // multi-line variant for Identify

	balanceLine *regexp.Regexp
}

// New creates an Extractor. Branch and number are required; currency defaults
// to EUR and encoding to utf-8.
func New(opts Options) (*Extractor, error) {
	if opts.Branch == "" || opts.Number == "" {
		return nil, fmt.Errorf("statement: branch and number are required")
	}

	currency := opts.Currency
	if currency == "" {
		currency = "EUR"
	}

	encName := opts.Encoding
	if encName == "" {
		encName = "utf-8"
	}
	enc, err := ianaindex.IANA.Encoding(encName)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("statement: unsupported encoding %q", encName)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	headerBody := `Transactions\s.*;;;Customer\snumber:\s` +
		regexp.QuoteMeta(opts.Branch) + `\s` + regexp.QuoteMeta(opts.Number)

	return &Extractor{
		account:     opts.Account,
		currency:    currency,
		enc:         enc,
		logger:      logger,
		headerLine:  regexp.MustCompile(`^` + headerBody + `$`),
		headerAny:   regexp.MustCompile(`(?m)^` + headerBody + `$`),
		balanceLine: regexp.MustCompile(`^Old balance:;;;;(\d+(?:[.,]\d{3})*[.,]\d\d);` + regexp.QuoteMeta(currency) + `$`),
	}, nil
}

// Identify reports whether contents look like a statement for this profile,
// i.e. the header line pattern matches anywhere. It never parses the table.
func (e *Extractor) Identify(contents []byte) bool {
	return e.headerAny.Match(contents)
}

// ExtractFile opens path and extracts it. The file is closed on every return
// path.
func (e *Extractor) ExtractFile(path string) (*model.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	return e.Extract(filepath.Base(f.Name()), f)
}

// FileDate returns the end of the statement period, for archival filenames.
// It runs a full extraction.
func (e *Extractor) FileDate(path string) (time.Time, error) {
	st, err := e.ExtractFile(path)
	if err != nil {
		return time.Time{}, err
	}
	return st.Period.End, nil
}

// Extract runs the full pipeline over r: preamble, table header, then one
// pass over the rows. filename only tags transaction source locations. The
// first grammar violation aborts the extraction; no partial result is
// returned.
func (e *Extractor) Extract(filename string, r io.Reader) (*model.Statement, error) {
	lr := &lineReader{br: bufio.NewReader(transform.NewReader(r, e.enc.NewDecoder()))}

	period, opening, err := e.readPreamble(lr)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("parsed statement preamble",
		"file", filename,
		"start", period.Start.Format("2006-01-02"),
		"end", period.End.Format("2006-01-02"))

	rows, err := newRowReader(lr.br, lr.line)
	if err != nil {
		return nil, err
	}

	st := &model.Statement{Period: period, Opening: opening}
	for {
		row, line, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch classifyRow(row) {
		case rowTerminal:
			closing, err := e.parseClosingBalance(row, line)
			if err != nil {
				return nil, err
			}
			st.Closing = closing
		case rowTransaction:
			txn, err := e.parseTransaction(row, line, filename)
			if err != nil {
				return nil, err
			}
			st.Transactions = append(st.Transactions, txn)
		}
	}

	e.logger.Debug("extracted statement", "file", filename, "transactions", len(st.Transactions))
	return st, nil
}

// rowKind tags the two row shapes the classifier can produce.
type rowKind int

const (
	rowTransaction rowKind = iota
	rowTerminal
)

func classifyRow(row map[string]string) rowKind {
	if row[colBookingDate] == sentinelBalance {
		return rowTerminal
	}
	return rowTransaction
}

// parseClosingBalance handles the terminal row. The closing amount sits in
// the payment-details column and its currency code in the IBAN column.
func (e *Extractor) parseClosingBalance(row map[string]string, line int) (model.Balance, error) {
	if row[colIBAN] != e.currency {
		// The message reports the Currency column even though the IBAN
		// column is what carries (and is checked for) the currency here.
		return model.Balance{}, formatErrorf(line, "unexpected currency %s", row[colCurrency])
	}

	amount, err := parseAmount(row[colPaymentDetails])
	if err != nil {
		return model.Balance{}, formatErrorf(line, "parsing closing balance: %v", err)
	}
	return model.Balance{Amount: amount, Currency: e.currency}, nil
}

func (e *Extractor) parseTransaction(row map[string]string, line int, filename string) (model.Transaction, error) {
	if row[colCurrency] != e.currency {
		return model.Transaction{}, formatErrorf(line, "unexpected currency %s", row[colCurrency])
	}

	// Exactly one of debit/credit must be populated; whichever it is
	// supplies the magnitude.
	var raw string
	switch debit, credit := row[colDebit], row[colCredit]; {
	case debit != "" && credit != "":
		return model.Transaction{}, formatErrorf(line, "cannot have both debit and credit values")
	case debit != "":
		raw = debit
	case credit != "":
		raw = credit
	default:
		return model.Transaction{}, formatErrorf(line, "neither debit nor credit value found")
	}

	amount, err := parseAmount(raw)
	if err != nil {
		return model.Transaction{}, formatErrorf(line, "parsing amount: %v", err)
	}

	date, err := time.Parse(dateFormat, row[colValueDate])
	if err != nil {
		return model.Transaction{}, formatErrorf(line, "parsing value date %q: %v", row[colValueDate], err)
	}

	payee := strings.TrimSpace(row[colBeneficiary])

	return model.Transaction{
		Date:      date,
		Amount:    amount,
		Currency:  e.currency,
		Payee:     payee,
		Narration: "",
		Account:   e.account,
		Reference: makeReference(date, payee),
		Source:    model.SourceLocation{File: filename, Line: line},
	}, nil
}

// makeReference creates a reference like db_20230105_AcmeGmbH.
func makeReference(date time.Time, payee string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, payee)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("db_%s_%s", date.Format("20060102"), prefix)
}
