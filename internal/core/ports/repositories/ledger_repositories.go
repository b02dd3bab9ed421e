package repositories

import (
	"context"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountEntryTotals is the per-account aggregate the trial balance is built
// from.
type AccountEntryTotals struct {
	AccountID   string
	Code        string
	Name        string
	AccountType domain.AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves accounts keyed by ID. Missing IDs are simply
	// absent from the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID string, updatedByUserID string, updatedAt time.Time) error
}

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination, newest first.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// EntryTotalsByAccount aggregates debit and credit sums per account across
	// all posted entries.
	EntryTotalsByAccount(ctx context.Context) ([]AccountEntryTotals, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveEntry persists an entry header and its lines, applying the supplied
	// per-account balance deltas, all within one database transaction. Partial
	// failure must leave no rows and no balance changes behind.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error
}

// LedgerRepositoryFacade combines account and journal repository interfaces.
type LedgerRepositoryFacade interface {
	AccountReader
	AccountWriter
	JournalReader
	JournalWriter
}
