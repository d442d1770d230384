package statement

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// dateFormat is the strict MM/DD/YYYY layout used throughout the statement.
const dateFormat = "01/02/2006"

// disclaimerLine is the fixed fourth preamble line.
const disclaimerLine = "Transactions pending are not included in this report."

var periodPattern = regexp.MustCompile(`^(\d\d/\d\d/\d\d\d\d) - (\d\d/\d\d/\d\d\d\d)$`)

// lineReader reads logical lines from the statement and keeps the running
// 1-based line count. Line terminators (CRLF or LF) are stripped.
type lineReader struct {
	br   *bufio.Reader
	line int
}

func (lr *lineReader) next() (string, error) {
	s, err := lr.br.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		if err == io.EOF {
			return "", formatErrorf(lr.line+1, "unexpected end of file")
		}
		return "", formatErrorf(lr.line+1, "reading line: %v", err)
	}
	lr.line++
	return strings.TrimRight(s, "\r\n"), nil
}

// readPreamble consumes exactly the four fixed lines preceding the table and
// returns the statement period and opening balance.
func (e *Extractor) readPreamble(lr *lineReader) (model.Period, model.Balance, error) {
	var period model.Period
	var opening model.Balance

	// Header with customer identity.
	line, err := lr.next()
	if err != nil {
		return period, opening, err
	}
	if !e.headerLine.MatchString(line) {
		return period, opening, formatErrorf(lr.line, "unexpected header %q", line)
	}

	// From and to dates.
	line, err = lr.next()
	if err != nil {
		return period, opening, err
	}
	m := periodPattern.FindStringSubmatch(line)
	if m == nil {
		return period, opening, formatErrorf(lr.line, "unexpected from and to dates %q", line)
	}
	if period.Start, err = time.Parse(dateFormat, m[1]); err != nil {
		return period, opening, formatErrorf(lr.line, "parsing period start %q: %v", m[1], err)
	}
	if period.End, err = time.Parse(dateFormat, m[2]); err != nil {
		return period, opening, formatErrorf(lr.line, "parsing period end %q: %v", m[2], err)
	}

	// Opening balance.
	line, err = lr.next()
	if err != nil {
		return period, opening, err
	}
	m = e.balanceLine.FindStringSubmatch(line)
	if m == nil {
		return period, opening, formatErrorf(lr.line, "unexpected old balance %q", line)
	}
	amount, err := parseAmount(m[1])
	if err != nil {
		return period, opening, formatErrorf(lr.line, "parsing old balance: %v", err)
	}
	opening = model.Balance{Amount: amount, Currency: e.currency}

	// Fixed disclaimer.
	line, err = lr.next()
	if err != nil {
		return period, opening, err
	}
	if line != disclaimerLine {
		return period, opening, formatErrorf(lr.line, "unexpected line %q (expected %q)", line, disclaimerLine)
	}

	return period, opening, nil
}
