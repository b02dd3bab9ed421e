package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// TransactionReaderSvc defines read operations for office transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction, subject to the caller's
	// view capabilities.
	GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions scoped by the caller's view
	// capabilities: view-all sees everything, view-own sees only assigned.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams, requestingUserID string) ([]domain.Transaction, error)

	// GetChecklist retrieves the required-document slots of a transaction.
	GetChecklist(ctx context.Context, transactionID string, requestingUserID string) ([]domain.TransactionDocument, error)

	// GetDashboardStats aggregates transaction and task counts by status.
	GetDashboardStats(ctx context.Context, requestingUserID string) (*dto.DashboardStats, error)
}

// TransactionWriterSvc defines write operations for office transactions.
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction with a generated short
	// code and seeds its document checklist.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// StartProcessing moves an under_review transaction to processing.
	// Allowed for the assignee or a superuser.
	StartProcessing(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// RequestDocuments moves a transaction to docs_required from any state.
	RequestDocuments(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// Complete moves a transaction to completed from any state.
	Complete(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// Distribute hands a transaction to an assignee, forcing its status to
	// under_review and notifying the assignee.
	Distribute(ctx context.Context, req dto.DistributeRequest, assignerUserID string) (*domain.TransactionDistribution, error)
}

// DocumentSvc covers uploaded files against transactions.
type DocumentSvc interface {
	// AttachDocument records an uploaded file, optionally filling a checklist
	// slot, which flips that slot to uploaded.
	AttachDocument(ctx context.Context, req dto.AttachDocumentRequest, uploaderUserID string) (*domain.Document, error)

	ListDocuments(ctx context.Context, transactionID string, requestingUserID string) ([]domain.Document, error)

	// StampDocument records the stamped variant of an uploaded document.
	StampDocument(ctx context.Context, documentID string, stampedFilePath string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	DocumentSvc
}
