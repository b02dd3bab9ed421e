package repositories

import (
	"context"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// TransactionListFilter narrows ListTransactions results.
type TransactionListFilter struct {
	Status       *domain.TransactionStatus
	AssignedToID *string
	ActiveOnly   bool // Excludes completed and cancelled
	Limit        int
	Offset       int
}

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.Transaction, error)

	// MaxShortCodeInMonth returns the lexically greatest short code among
	// transactions created in the given (year, month) bucket, or "" when the
	// bucket is empty.
	MaxShortCodeInMonth(ctx context.Context, year int, month time.Month) (string, error)

	// CountByStatus aggregates transaction counts per status.
	CountByStatus(ctx context.Context) (map[domain.TransactionStatus]int, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction. Returns apperrors.ErrDuplicate
	// when the short code collides with an existing row.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedByUserID string, updatedAt time.Time) error
}

// ChecklistRepository covers required-document slots and the document-type
// catalogue.
type ChecklistRepository interface {
	SaveTransactionDocuments(ctx context.Context, docs []domain.TransactionDocument) error
	ListTransactionDocuments(ctx context.Context, transactionID string) ([]domain.TransactionDocument, error)
	FindTransactionDocumentByID(ctx context.Context, transactionDocumentID string) (*domain.TransactionDocument, error)
	UpdateTransactionDocumentStatus(ctx context.Context, transactionDocumentID string, status domain.DocumentStatus, updatedByUserID string, updatedAt time.Time) error

	FindDocumentTypeByCode(ctx context.Context, code string) (*domain.DocumentType, error)
	ListDocumentTypes(ctx context.Context) ([]domain.DocumentType, error)
}

// DocumentRepository covers uploaded files.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByTransaction(ctx context.Context, transactionID string) ([]domain.Document, error)

	// MarkDocumentStamped records the stamped variant of a document.
	MarkDocumentStamped(ctx context.Context, documentID string, stampedFilePath string, updatedByUserID string, updatedAt time.Time) error
}

// DistributionRepository covers transaction hand-off records.
type DistributionRepository interface {
	// SaveDistribution atomically inserts the distribution record, updates the
	// transaction's assignee and forces its status to under_review.
	SaveDistribution(ctx context.Context, dist domain.TransactionDistribution) error

	ListDistributionsByTransaction(ctx context.Context, transactionID string) ([]domain.TransactionDistribution, error)
	ListDistributionsForAssignee(ctx context.Context, assigneeID string) ([]domain.TransactionDistribution, error)
}

// TransactionRepositoryFacade combines all transaction-related repository
// interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	ChecklistRepository
	DocumentRepository
	DistributionRepository
}
