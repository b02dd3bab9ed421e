package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, short_code, title, description, status, discipline,
	client_id, assigned_to_id, main_category_id, sub_category_id, competent_authority_id,
	location, expected_start_date, expected_duration, doc_type, doc_classification, doc_number, doc_date,
	area_sq_meters, piece_number, plan_number, neighborhood, city,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.ShortCode,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Discipline,
		&t.ClientID,
		&t.AssignedToID,
		&t.MainCategoryID,
		&t.SubCategoryID,
		&t.CompetentAuthorityID,
		&t.Location,
		&t.ExpectedStartDate,
		&t.ExpectedDuration,
		&t.DocType,
		&t.DocClassification,
		&t.DocNumber,
		&t.DocDate,
		&t.AreaSqMeters,
		&t.PieceNumber,
		&t.PlanNumber,
		&t.Neighborhood,
		&t.City,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.ShortCode,
		txn.Title,
		txn.Description,
		txn.Status,
		txn.Discipline,
		txn.ClientID,
		txn.AssignedToID,
		txn.MainCategoryID,
		txn.SubCategoryID,
		txn.CompetentAuthorityID,
		txn.Location,
		txn.ExpectedStartDate,
		txn.ExpectedDuration,
		txn.DocType,
		txn.DocClassification,
		txn.DocNumber,
		txn.DocDate,
		txn.AreaSqMeters,
		txn.PieceNumber,
		txn.PlanNumber,
		txn.Neighborhood,
		txn.City,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: short code %s", apperrors.ErrDuplicate, txn.ShortCode)
		}
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	// ShortCode is immutable and deliberately absent from the SET list.
	query := `
		UPDATE transactions SET
			title = $2,
			description = $3,
			status = $4,
			client_id = $5,
			assigned_to_id = $6,
			main_category_id = $7,
			sub_category_id = $8,
			competent_authority_id = $9,
			location = $10,
			expected_start_date = $11,
			expected_duration = $12,
			doc_type = $13,
			doc_classification = $14,
			doc_number = $15,
			doc_date = $16,
			area_sq_meters = $17,
			piece_number = $18,
			plan_number = $19,
			neighborhood = $20,
			city = $21,
			last_updated_at = $22,
			last_updated_by = $23
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Title,
		txn.Description,
		txn.Status,
		txn.ClientID,
		txn.AssignedToID,
		txn.MainCategoryID,
		txn.SubCategoryID,
		txn.CompetentAuthorityID,
		txn.Location,
		txn.ExpectedStartDate,
		txn.ExpectedDuration,
		txn.DocType,
		txn.DocClassification,
		txn.DocNumber,
		txn.DocDate,
		txn.AreaSqMeters,
		txn.PieceNumber,
		txn.PlanNumber,
		txn.Neighborhood,
		txn.City,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE transactions SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, status, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.AssignedToID != nil {
		args = append(args, *filter.AssignedToID)
		query += ` AND assigned_to_id = $` + strconv.Itoa(len(args))
	}
	if filter.ActiveOnly {
		query += ` AND status NOT IN ('completed', 'cancelled')`
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// MaxShortCodeInMonth relies on the fixed-width, zero-padded sequence suffix
// making lexical MAX equal numeric MAX within a month bucket.
func (r *PgxTransactionRepository) MaxShortCodeInMonth(ctx context.Context, year int, month time.Month) (string, error) {
	query := `
		SELECT COALESCE(MAX(short_code), '')
		FROM transactions
		WHERE EXTRACT(YEAR FROM created_at) = $1 AND EXTRACT(MONTH FROM created_at) = $2;
	`
	var maxCode string
	if err := r.Pool.QueryRow(ctx, query, year, int(month)).Scan(&maxCode); err != nil {
		return "", fmt.Errorf("failed to query max short code for %d-%02d: %w", year, int(month), err)
	}
	return maxCode, nil
}

func (r *PgxTransactionRepository) CountByStatus(ctx context.Context) (map[domain.TransactionStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM transactions GROUP BY status;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions by status: %w", err)
	}
	defer rows.Close()

	counts := map[domain.TransactionStatus]int{}
	for rows.Next() {
		var status domain.TransactionStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}
	return counts, nil
}

// --- Checklist ---

const transactionDocumentColumns = `transaction_document_id, transaction_id, document_type_code, status, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionDocument(row pgx.Row) (domain.TransactionDocument, error) {
	var td domain.TransactionDocument
	err := row.Scan(
		&td.TransactionDocumentID,
		&td.TransactionID,
		&td.DocumentTypeCode,
		&td.Status,
		&td.CreatedAt,
		&td.CreatedBy,
		&td.LastUpdatedAt,
		&td.LastUpdatedBy,
	)
	return td, err
}

func (r *PgxTransactionRepository) SaveTransactionDocuments(ctx context.Context, docs []domain.TransactionDocument) error {
	if len(docs) == 0 {
		return nil
	}
	query := `
		INSERT INTO transaction_documents (` + transactionDocumentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, td := range docs {
		batch.Queue(query,
			td.TransactionDocumentID,
			td.TransactionID,
			td.DocumentTypeCode,
			td.Status,
			td.CreatedAt,
			td.CreatedBy,
			td.LastUpdatedAt,
			td.LastUpdatedBy,
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: checklist slot already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save transaction documents: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) ListTransactionDocuments(ctx context.Context, transactionID string) ([]domain.TransactionDocument, error) {
	query := `SELECT ` + transactionDocumentColumns + ` FROM transaction_documents WHERE transaction_id = $1 ORDER BY document_type_code;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	docs := []domain.TransactionDocument{}
	for rows.Next() {
		td, err := scanTransactionDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist row: %w", err)
		}
		docs = append(docs, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checklist rows: %w", err)
	}
	return docs, nil
}

func (r *PgxTransactionRepository) FindTransactionDocumentByID(ctx context.Context, transactionDocumentID string) (*domain.TransactionDocument, error) {
	query := `SELECT ` + transactionDocumentColumns + ` FROM transaction_documents WHERE transaction_document_id = $1;`
	td, err := scanTransactionDocument(r.Pool.QueryRow(ctx, query, transactionDocumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find checklist slot %s: %w", transactionDocumentID, err)
	}
	return &td, nil
}

func (r *PgxTransactionRepository) UpdateTransactionDocumentStatus(ctx context.Context, transactionDocumentID string, status domain.DocumentStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE transaction_documents SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionDocumentID, status, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update checklist slot %s: %w", transactionDocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) FindDocumentTypeByCode(ctx context.Context, code string) (*domain.DocumentType, error) {
	query := `SELECT code, name_ar FROM document_types WHERE code = $1;`
	var dt domain.DocumentType
	err := r.Pool.QueryRow(ctx, query, code).Scan(&dt.Code, &dt.NameAr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document type %s: %w", code, err)
	}
	return &dt, nil
}

func (r *PgxTransactionRepository) ListDocumentTypes(ctx context.Context) ([]domain.DocumentType, error) {
	query := `SELECT code, name_ar FROM document_types ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query document types: %w", err)
	}
	defer rows.Close()

	types := []domain.DocumentType{}
	for rows.Next() {
		var dt domain.DocumentType
		if err := rows.Scan(&dt.Code, &dt.NameAr); err != nil {
			return nil, fmt.Errorf("failed to scan document type row: %w", err)
		}
		types = append(types, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document type rows: %w", err)
	}
	return types, nil
}

// --- Documents ---

const documentColumns = `document_id, transaction_id, transaction_document_id, file_path, description, uploaded_by_id, is_stamped, stamped_file_path, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.DocumentID,
		&d.TransactionID,
		&d.TransactionDocumentID,
		&d.FilePath,
		&d.Description,
		&d.UploadedByID,
		&d.IsStamped,
		&d.StampedFilePath,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

func (r *PgxTransactionRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		doc.DocumentID,
		doc.TransactionID,
		doc.TransactionDocumentID,
		doc.FilePath,
		doc.Description,
		doc.UploadedByID,
		doc.IsStamped,
		doc.StampedFilePath,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return &doc, nil
}

func (r *PgxTransactionRepository) ListDocumentsByTransaction(ctx context.Context, transactionID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE transaction_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

func (r *PgxTransactionRepository) MarkDocumentStamped(ctx context.Context, documentID string, stampedFilePath string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE documents SET is_stamped = TRUE, stamped_file_path = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, stampedFilePath, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to mark document %s stamped: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Distributions ---

const distributionColumns = `distribution_id, transaction_id, assigned_from_id, assigned_to_id, assigned_at, manager_notes`

func scanDistribution(row pgx.Row) (domain.TransactionDistribution, error) {
	var d domain.TransactionDistribution
	err := row.Scan(
		&d.DistributionID,
		&d.TransactionID,
		&d.AssignedFromID,
		&d.AssignedToID,
		&d.AssignedAt,
		&d.ManagerNotes,
	)
	return d, err
}

// SaveDistribution inserts the hand-off record and moves the transaction to
// its new assignee in one database transaction.
func (r *PgxTransactionRepository) SaveDistribution(ctx context.Context, dist domain.TransactionDistribution) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO transaction_distributions (` + distributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertQuery,
		dist.DistributionID,
		dist.TransactionID,
		dist.AssignedFromID,
		dist.AssignedToID,
		dist.AssignedAt,
		dist.ManagerNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to save distribution for transaction %s: %w", dist.TransactionID, err)
	}

	updatedBy := dist.AssignedToID
	if dist.AssignedFromID != nil {
		updatedBy = *dist.AssignedFromID
	}
	updateQuery := `
		UPDATE transactions SET assigned_to_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		dist.TransactionID,
		dist.AssignedToID,
		domain.TxnUnderReview,
		dist.AssignedAt,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to reassign transaction %s: %w", dist.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) ListDistributionsByTransaction(ctx context.Context, transactionID string) ([]domain.TransactionDistribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM transaction_distributions WHERE transaction_id = $1 ORDER BY assigned_at;`
	return r.listDistributions(ctx, query, transactionID)
}

func (r *PgxTransactionRepository) ListDistributionsForAssignee(ctx context.Context, assigneeID string) ([]domain.TransactionDistribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM transaction_distributions WHERE assigned_to_id = $1 ORDER BY assigned_at DESC;`
	return r.listDistributions(ctx, query, assigneeID)
}

func (r *PgxTransactionRepository) listDistributions(ctx context.Context, query string, arg interface{}) ([]domain.TransactionDistribution, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query distributions: %w", err)
	}
	defer rows.Close()

	dists := []domain.TransactionDistribution{}
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		dists = append(dists, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution rows: %w", err)
	}
	return dists, nil
}
