package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the hierarchical chart of accounts. Balance is the
// persisted running balance, maintained by the ledger engine.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"` // Unique human code, ordering key
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID"` // Self-referencing
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
	AuditFields
}
