package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a journal line as the debit or credit side.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry represents a single balanced accounting event composed of
// multiple lines.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit or credit movement against an account. Amount is
// always positive; EntryType carries the side.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	EntryType EntryType       `json:"entryType"`
}

// TrialBalanceLine is one account row of the trial balance report.
type TrialBalanceLine struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}
