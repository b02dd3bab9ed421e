package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/faroukh/office_mgmt_app/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced  = errors.New("journal lines do not balance: debits must equal credits")
	ErrEntryMinLines    = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts = errors.New("journal entry must affect at least two different accounts")
	ErrAccountInactive  = errors.New("account is inactive")
)

// ledgerService manages the chart of accounts and the double-entry journal.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	userSvc    portssvc.UserSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, userSvc portssvc.UserSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, userSvc: userSvc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateAccount persists a new account with a zero balance.
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ParentAccountID != nil {
		if _, err := s.ledgerRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, err
		}
	}

	now := nowUTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account.
func (s *ledgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.ledgerRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves accounts ordered by code.
func (s *ledgerService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	return s.ledgerRepo.ListAccounts(ctx, activeOnly)
}

// UpdateAccount applies mutable field updates to an account.
func (s *ledgerService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = nowUTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.ledgerRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account.
func (s *ledgerService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	if err := s.ledgerRepo.DeactivateAccount(ctx, accountID, requestingUserID, nowUTC()); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}

// validateEntryLines checks the double-entry invariants on the request lines.
func validateEntryLines(lines []dto.CreateJournalLineRequest) error {
	if len(lines) < 2 {
		return ErrEntryMinLines
	}

	accountSet := make(map[string]struct{})
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, line.AccountID)
		}
		accountSet[line.AccountID] = struct{}{}
		if domain.EntryType(line.EntryType) == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}

	if len(accountSet) < 2 {
		return ErrEntryMinAccounts
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrEntryUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// CreateEntry validates and posts a balanced journal entry, applying the net
// balance change to each affected account atomically.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateEntryLines(req.Lines); err != nil {
		return nil, err
	}

	now := nowUTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: lineReq.AccountID,
			Amount:    lineReq.Amount,
			EntryType: domain.EntryType(lineReq.EntryType),
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.ledgerRepo.FindAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(uniqueAccountIDs))
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		signedAmount, err := accounting.CalculateSignedAmount(line, accountTypes[line.AccountID])
		if err != nil {
			logger.Error("Error calculating signed amount", slog.String("error", err.Error()), slog.String("line_id", line.LineID))
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signedAmount)
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry, lines, balanceChanges); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines populated.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, newToken, err := s.ledgerRepo.ListEntries(ctx, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	resp := &dto.ListEntriesResponse{Entries: responses}
	if newToken != nil {
		resp.NextToken = *newToken
	}
	return resp, nil
}

// TrialBalance aggregates per-account debit and credit totals across all
// posted entries. Requires the report-generation capability.
func (s *ledgerService) TrialBalance(ctx context.Context, requestingUserID string) (*dto.TrialBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapReportsGenerate) {
		return nil, apperrors.ErrForbidden
	}

	totals, err := s.ledgerRepo.EntryTotalsByAccount(ctx)
	if err != nil {
		logger.Error("Failed to aggregate entry totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate entry totals: %w", err)
	}

	resp := &dto.TrialBalanceResponse{
		Rows:         make([]dto.TrialBalanceRow, len(totals)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for i, t := range totals {
		resp.Rows[i] = dto.TrialBalanceRow{
			Code:   t.Code,
			Name:   t.Name,
			Debit:  t.TotalDebit,
			Credit: t.TotalCredit,
		}
		resp.TotalDebits = resp.TotalDebits.Add(t.TotalDebit)
		resp.TotalCredits = resp.TotalCredits.Add(t.TotalCredit)
	}
	return resp, nil
}
