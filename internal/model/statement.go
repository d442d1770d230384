package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the date range a statement covers.
type Period struct {
	Start time.Time
	End   time.Time
}

// Balance is a decimal amount tied to a currency code.
type Balance struct {
	Amount   decimal.Decimal
	Currency string
}

// Statement is the result of one extraction: the ordered transactions plus
// the metadata derived from the preamble and the terminal balance row.
type Statement struct {
	Period       Period
	Opening      Balance
	Closing      Balance
	Transactions []Transaction
}
