package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
)

var (
	ErrInvalidDiscipline = errors.New("unknown discipline code")
	ErrNotAssignee       = errors.New("only the assignee or a superuser may act on this transaction")
	ErrSlotAlreadyFilled = errors.New("checklist slot is already filled")
)

// buildingLicenceSubCategoryCode is the sub-category whose transactions get
// the full 22-slot document checklist. Everything else gets the minimal pair.
const buildingLicenceSubCategoryCode = "BUILD-LIC"

// transactionService manages the office transaction lifecycle: short codes,
// document checklists, status actions, hand-offs and uploads.
type transactionService struct {
	txnRepo    portsrepo.TransactionRepositoryFacade
	taskRepo   portsrepo.TaskRepositoryFacade
	clientRepo portsrepo.ClientRepositoryFacade
	userSvc    portssvc.UserSvcFacade
	notifier   portssvc.NotificationSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	taskRepo portsrepo.TaskRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	userSvc portssvc.UserSvcFacade,
	notifier portssvc.NotificationSvcFacade,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:    txnRepo,
		taskRepo:   taskRepo,
		clientRepo: clientRepo,
		userSvc:    userSvc,
		notifier:   notifier,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// nextShortCode computes the next short code for the given discipline in the
// current month: PROJ-{discipline}-{year}-{month}-{seq}, sequence zero-padded
// to four digits and scoped per calendar month.
func (s *transactionService) nextShortCode(ctx context.Context, discipline domain.Discipline, now time.Time) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	maxCode, err := s.txnRepo.MaxShortCodeInMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return "", fmt.Errorf("failed to determine short code sequence: %w", err)
	}

	seq := 1
	if maxCode != "" {
		parts := strings.Split(maxCode, "-")
		last := parts[len(parts)-1]
		if parsed, perr := strconv.Atoi(last); perr == nil {
			seq = parsed + 1
		} else {
			// Malformed legacy code: restart the sequence rather than fail.
			logger.Warn("Unparseable short code sequence, restarting at 1", slog.String("short_code", maxCode))
		}
	}

	return fmt.Sprintf("PROJ-%s-%d-%02d-%04d", discipline, now.Year(), int(now.Month()), seq), nil
}

// requiredDocumentCodes returns the checklist slots a transaction needs based
// on its sub-category.
func (s *transactionService) requiredDocumentCodes(ctx context.Context, subCategoryID *string) ([]string, error) {
	if subCategoryID != nil {
		sub, err := s.clientRepo.FindSubCategoryByID(ctx, *subCategoryID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to resolve sub-category: %w", err)
			}
		} else if sub.Code == buildingLicenceSubCategoryCode {
			codes := make([]string, 0, 22)
			for i := 1; i <= 22; i++ {
				codes = append(codes, fmt.Sprintf("DOC%03d", i))
			}
			return codes, nil
		}
	}
	return []string{"DOC001", "DOC005"}, nil
}

// seedChecklist creates the missing-document slots for a new transaction.
// Codes absent from the document-type catalogue are skipped with a warning.
func (s *transactionService) seedChecklist(ctx context.Context, transactionID string, subCategoryID *string, creatorUserID string, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	codes, err := s.requiredDocumentCodes(ctx, subCategoryID)
	if err != nil {
		return err
	}

	slots := make([]domain.TransactionDocument, 0, len(codes))
	for _, code := range codes {
		if _, err := s.txnRepo.FindDocumentTypeByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Document type missing from catalogue, skipping checklist slot", slog.String("code", code))
				continue
			}
			return fmt.Errorf("failed to look up document type %s: %w", code, err)
		}
		slots = append(slots, domain.TransactionDocument{
			TransactionDocumentID: uuid.NewString(),
			TransactionID:         transactionID,
			DocumentTypeCode:      code,
			Status:                domain.DocMissing,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}

	if len(slots) == 0 {
		return nil
	}
	return s.txnRepo.SaveTransactionDocuments(ctx, slots)
}

// CreateTransaction persists a new transaction with a generated short code
// and seeds its document checklist. A short code collision from a concurrent
// creation is retried once with a regenerated code.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	discipline := domain.Discipline(req.Discipline)
	if !domain.ValidDiscipline(discipline) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDiscipline, req.Discipline)
	}

	now := nowUTC()
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		Title:                req.Title,
		Description:          req.Description,
		Status:               domain.TxnNew,
		Discipline:           discipline,
		ClientID:             req.ClientID,
		MainCategoryID:       req.MainCategoryID,
		SubCategoryID:        req.SubCategoryID,
		CompetentAuthorityID: req.CompetentAuthorityID,
		Location:             req.Location,
		ExpectedStartDate:    req.ExpectedStartDate,
		ExpectedDuration:     req.ExpectedDuration,
		DocType:              req.DocType,
		DocClassification:    req.DocClassification,
		DocNumber:            req.DocNumber,
		DocDate:              req.DocDate,
		AreaSqMeters:         req.AreaSqMeters,
		PieceNumber:          req.PieceNumber,
		PlanNumber:           req.PlanNumber,
		Neighborhood:         req.Neighborhood,
		City:                 req.City,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Two attempts: a concurrent creation may take our generated code.
	for attempt := 0; attempt < 2; attempt++ {
		code, err := s.nextShortCode(ctx, discipline, now)
		if err != nil {
			return nil, err
		}
		txn.ShortCode = code

		err = s.txnRepo.SaveTransaction(ctx, txn)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrDuplicate) && attempt == 0 {
			logger.Warn("Short code collision, regenerating", slog.String("short_code", code))
			continue
		}
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	if err := s.seedChecklist(ctx, txn.TransactionID, req.SubCategoryID, creatorUserID, now); err != nil {
		logger.Error("Failed to seed document checklist", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to seed document checklist: %w", err)
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("short_code", txn.ShortCode))
	return &txn, nil
}

// canView reports whether the actor may see the given transaction.
func canView(actor *domain.Actor, txn *domain.Transaction) bool {
	if actor.Has(domain.CapTransactionsViewAll) {
		return true
	}
	if actor.Has(domain.CapTransactionsViewOwn) {
		return txn.AssignedToID != nil && *txn.AssignedToID == actor.UserID
	}
	return false
}

// GetTransactionByID retrieves a transaction, subject to the caller's view
// capabilities.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !canView(actor, txn) {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

// ListTransactions retrieves transactions scoped by the caller's view
// capabilities.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, requestingUserID string) ([]domain.Transaction, error) {
	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.TransactionListFilter{
		ActiveOnly: params.ActiveOnly,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Status != nil {
		status := domain.TransactionStatus(*params.Status)
		filter.Status = &status
	}

	switch {
	case actor.Has(domain.CapTransactionsViewAll):
		// Unscoped.
	case actor.Has(domain.CapTransactionsViewOwn):
		filter.AssignedToID = &actor.UserID
	default:
		return nil, apperrors.ErrForbidden
	}

	return s.txnRepo.ListTransactions(ctx, filter)
}

// GetChecklist retrieves the required-document slots of a transaction.
func (s *transactionService) GetChecklist(ctx context.Context, transactionID string, requestingUserID string) ([]domain.TransactionDocument, error) {
	if _, err := s.GetTransactionByID(ctx, transactionID, requestingUserID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListTransactionDocuments(ctx, transactionID)
}

// GetDashboardStats aggregates transaction and task counts by status.
func (s *transactionService) GetDashboardStats(ctx context.Context, requestingUserID string) (*dto.DashboardStats, error) {
	if _, err := s.userSvc.GetActor(ctx, requestingUserID); err != nil {
		return nil, err
	}

	txnCounts, err := s.txnRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	taskCounts, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats := &dto.DashboardStats{
		TransactionsByStatus: make(map[string]int, len(txnCounts)),
		TasksByStatus:        make(map[string]int, len(taskCounts)),
	}
	for status, n := range txnCounts {
		stats.TransactionsByStatus[string(status)] = n
	}
	for status, n := range taskCounts {
		stats.TasksByStatus[string(status)] = n
	}
	return stats, nil
}

// UpdateTransaction applies metadata updates. The short code and status are
// never touched here.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, transactionID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		txn.Title = *req.Title
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Location != nil {
		txn.Location = *req.Location
	}
	if req.ExpectedStartDate != nil {
		txn.ExpectedStartDate = req.ExpectedStartDate
	}
	if req.ExpectedDuration != nil {
		txn.ExpectedDuration = req.ExpectedDuration
	}
	if req.DocType != nil {
		txn.DocType = *req.DocType
	}
	if req.DocClassification != nil {
		txn.DocClassification = *req.DocClassification
	}
	if req.DocNumber != nil {
		txn.DocNumber = *req.DocNumber
	}
	if req.DocDate != nil {
		txn.DocDate = req.DocDate
	}
	if req.AreaSqMeters != nil {
		txn.AreaSqMeters = req.AreaSqMeters
	}
	if req.PieceNumber != nil {
		txn.PieceNumber = *req.PieceNumber
	}
	if req.PlanNumber != nil {
		txn.PlanNumber = *req.PlanNumber
	}
	if req.Neighborhood != nil {
		txn.Neighborhood = *req.Neighborhood
	}
	if req.City != nil {
		txn.City = *req.City
	}

	txn.LastUpdatedAt = nowUTC()
	txn.LastUpdatedBy = requestingUserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// authorizeAction enforces the assignee-or-superuser gate on transaction
// status actions.
func (s *transactionService) authorizeAction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if actor.IsSuperuser {
		return txn, nil
	}
	if txn.AssignedToID != nil && *txn.AssignedToID == actor.UserID {
		return txn, nil
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotAssignee.Error())
}

func (s *transactionService) setStatus(ctx context.Context, txn *domain.Transaction, status domain.TransactionStatus, byUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := nowUTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, txn.TransactionID, status, byUserID, now); err != nil {
		logger.Error("Failed to update transaction status", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	txn.Status = status
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = byUserID
	logger.Info("Transaction status changed", slog.String("transaction_id", txn.TransactionID), slog.String("status", string(status)))
	return txn, nil
}

// StartProcessing moves an under_review transaction to processing.
func (s *transactionService) StartProcessing(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.authorizeAction(ctx, transactionID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TxnUnderReview {
		return nil, fmt.Errorf("%w: transaction must be under_review to start processing, got %s", apperrors.ErrValidation, txn.Status)
	}
	return s.setStatus(ctx, txn, domain.TxnProcessing, requestingUserID)
}

// RequestDocuments moves a transaction to docs_required from any state.
func (s *transactionService) RequestDocuments(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.authorizeAction(ctx, transactionID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, txn, domain.TxnDocsRequired, requestingUserID)
}

// Complete moves a transaction to completed from any state.
func (s *transactionService) Complete(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.authorizeAction(ctx, transactionID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, txn, domain.TxnCompleted, requestingUserID)
}

// Distribute hands a transaction to an assignee. The distribution record,
// assignee update and forced under_review status land atomically; the
// assignee is then notified.
func (s *transactionService) Distribute(ctx context.Context, req dto.DistributeRequest, assignerUserID string) (*domain.TransactionDistribution, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.GetActor(ctx, assignerUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapTransactionsAssign) {
		return nil, apperrors.ErrForbidden
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userSvc.GetUserByID(ctx, req.AssignedToID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: assignee %s not found", apperrors.ErrValidation, req.AssignedToID)
		}
		return nil, err
	}

	dist := domain.TransactionDistribution{
		DistributionID: uuid.NewString(),
		TransactionID:  req.TransactionID,
		AssignedFromID: &assignerUserID,
		AssignedToID:   req.AssignedToID,
		AssignedAt:     nowUTC(),
		ManagerNotes:   req.ManagerNotes,
	}

	if err := s.txnRepo.SaveDistribution(ctx, dist); err != nil {
		logger.Error("Failed to save distribution", slog.String("error", err.Error()), slog.String("transaction_id", req.TransactionID))
		return nil, fmt.Errorf("failed to save distribution: %w", err)
	}

	if err := s.notifier.Notify(ctx, domain.Notification{
		UserID:    req.AssignedToID,
		Message:   fmt.Sprintf("تم إسناد المعاملة %s إليك", txn.ShortCode),
		EventType: domain.EventTransactionAssigned,
		Related:   &domain.RelatedRef{Kind: domain.RelatedTransaction, ID: txn.TransactionID},
	}); err != nil {
		// The hand-off already committed; delivery is best-effort.
		logger.Warn("Failed to notify assignee", slog.String("error", err.Error()), slog.String("assignee_id", req.AssignedToID))
	}

	logger.Info("Transaction distributed", slog.String("transaction_id", req.TransactionID), slog.String("assignee_id", req.AssignedToID))
	return &dist, nil
}

// AttachDocument records an uploaded file against a transaction, optionally
// filling a checklist slot.
func (s *transactionService) AttachDocument(ctx context.Context, req dto.AttachDocumentRequest, uploaderUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, req.TransactionID, uploaderUserID)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	doc := domain.Document{
		DocumentID:            uuid.NewString(),
		TransactionID:         txn.TransactionID,
		TransactionDocumentID: req.TransactionDocumentID,
		FilePath:              req.FilePath,
		Description:           req.Description,
		UploadedByID:          uploaderUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     uploaderUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: uploaderUserID,
		},
	}

	if req.TransactionDocumentID != nil {
		slot, err := s.txnRepo.FindTransactionDocumentByID(ctx, *req.TransactionDocumentID)
		if err != nil {
			return nil, err
		}
		if slot.TransactionID != txn.TransactionID {
			return nil, fmt.Errorf("%w: checklist slot belongs to a different transaction", apperrors.ErrValidation)
		}
		if slot.Status != domain.DocMissing && slot.Status != domain.DocRejected {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSlotAlreadyFilled.Error())
		}
	}

	if err := s.txnRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	if req.TransactionDocumentID != nil {
		if err := s.txnRepo.UpdateTransactionDocumentStatus(ctx, *req.TransactionDocumentID, domain.DocUploaded, uploaderUserID, now); err != nil {
			logger.Error("Failed to flip checklist slot to uploaded", slog.String("error", err.Error()), slog.String("slot_id", *req.TransactionDocumentID))
			return nil, fmt.Errorf("failed to update checklist slot: %w", err)
		}
	}

	return &doc, nil
}

// ListDocuments retrieves the uploaded files of a transaction.
func (s *transactionService) ListDocuments(ctx context.Context, transactionID string, requestingUserID string) ([]domain.Document, error) {
	if _, err := s.GetTransactionByID(ctx, transactionID, requestingUserID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListDocumentsByTransaction(ctx, transactionID)
}

// StampDocument records the stamped variant of an uploaded document.
func (s *transactionService) StampDocument(ctx context.Context, documentID string, stampedFilePath string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.txnRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if _, err := s.GetTransactionByID(ctx, doc.TransactionID, requestingUserID); err != nil {
		return err
	}

	if err := s.txnRepo.MarkDocumentStamped(ctx, documentID, stampedFilePath, requestingUserID, nowUTC()); err != nil {
		logger.Error("Failed to mark document stamped", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return fmt.Errorf("failed to mark document stamped: %w", err)
	}
	return nil
}
