package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// AccountSvc defines operations on the chart of accounts.
type AccountSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account; it stays referenced by
	// historical journal lines.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// JournalSvc defines operations on journal entries.
type JournalSvc interface {
	// CreateEntry validates and posts a balanced journal entry, applying the
	// net balance change to each affected account atomically.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines populated.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// TrialBalance aggregates per-account debit and credit totals across all
	// posted entries.
	TrialBalance(ctx context.Context, requestingUserID string) (*dto.TrialBalanceResponse, error)
}

// LedgerSvcFacade combines account and journal service interfaces.
type LedgerSvcFacade interface {
	AccountSvc
	JournalSvc
}
