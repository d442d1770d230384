package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceLocation points at the physical statement line a transaction came from.
type SourceLocation struct {
	File string
	Line int // 1-based
}

// Transaction represents one parsed statement row.
type Transaction struct {
	Date      time.Time
	Amount    decimal.Decimal // magnitude from whichever of debit/credit was populated
	Currency  string
	Payee     string
	Narration string // always empty for this statement format
	Account   string // destination account from configuration, opaque here
	Reference string // "db_YYYYMMDD_<payee-prefix>"
	Source    SourceLocation
}
