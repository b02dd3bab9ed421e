package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account in the
// chart of accounts.
type CreateAccountRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	AccountType     string  `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string `json:"parentAccountID"`
}

// UpdateAccountRequest defines the mutable fields of an account. Code, type
// and balance are never updated through this path.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		IsActive:        a.IsActive,
		Balance:         a.Balance,
	}
}

// ToAccountResponses converts a slice of domain.Account.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// CreateJournalLineRequest is one debit or credit movement in a journal
// entry request. Amount must be strictly positive.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	EntryType string          `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
}

// CreateJournalEntryRequest defines the payload for posting a balanced
// journal entry. At least two lines are required.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Description string                     `json:"description"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for one journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	EntryType string          `json:"entryType"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	EntryDate   time.Time             `json:"entryDate"`
	Description string                `json:"description"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry with its lines.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Amount:    l.Amount,
			EntryType: string(l.EntryType),
		}
	}
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ListEntriesParams drives token-based pagination over journal entries.
type ListEntriesParams struct {
	Limit     int    `form:"limit"`
	NextToken string `form:"nextToken"`
}

// ListEntriesResponse is a page of journal entries plus the continuation
// token, empty when the listing is exhausted.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// TrialBalanceRow is one account row of the trial balance report.
type TrialBalanceRow struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the trial balance report. TotalDebits and
// TotalCredits are equal for a consistent ledger.
type TrialBalanceResponse struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}
