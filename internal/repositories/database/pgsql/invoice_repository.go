package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, client_id, transaction_id, status, issue_date, due_date, notes, total_amount, qr_code_data, qr_code_image, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.InvoiceNumber,
		&inv.ClientID,
		&inv.TransactionID,
		&inv.Status,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Notes,
		&inv.TotalAmount,
		&inv.QRCodeData,
		&inv.QRCodeImage,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}

// SaveInvoice writes the header and replaces the item set in one database
// transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (invoice_id) DO UPDATE SET
			status = EXCLUDED.status,
			issue_date = EXCLUDED.issue_date,
			due_date = EXCLUDED.due_date,
			notes = EXCLUDED.notes,
			total_amount = EXCLUDED.total_amount,
			qr_code_data = EXCLUDED.qr_code_data,
			qr_code_image = EXCLUDED.qr_code_image,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, headerQuery,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.ClientID,
		invoice.TransactionID,
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Notes,
		invoice.TotalAmount,
		invoice.QRCodeData,
		invoice.QRCodeImage,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", apperrors.ErrDuplicate, invoice.InvoiceNumber)
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear items for invoice %s: %w", invoice.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (item_id, invoice_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, item := range items {
		batch.Queue(itemQuery, item.ItemID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for invoice %s: %w", invoice.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	itemQuery := `SELECT item_id, invoice_id, description, quantity, unit_price FROM invoice_items WHERE invoice_id = $1 ORDER BY item_id;`
	rows, err := r.Pool.Query(ctx, itemQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ItemID, &item.InvoiceID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item row: %w", err)
		}
		invoice.Items = append(invoice.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item rows: %w", err)
	}
	return &invoice, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC, invoice_number DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		UPDATE invoices SET
			status = $2,
			issue_date = $3,
			due_date = $4,
			notes = $5,
			total_amount = $6,
			qr_code_data = $7,
			qr_code_image = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Notes,
		invoice.TotalAmount,
		invoice.QRCodeData,
		invoice.QRCodeImage,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInvoiceRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, invoice_id, amount, payment_date, payment_method, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.InvoiceID,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment for invoice %s: %w", payment.InvoiceID, err)
	}
	return nil
}

func (r *PgxInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, invoice_id, amount, payment_date, payment_method, notes, created_at, created_by
		FROM payments
		WHERE invoice_id = $1
		ORDER BY payment_date;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.PaymentID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Notes, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

func (r *PgxInvoiceRepository) SumPaymentsForInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1;`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for invoice %s: %w", invoiceID, err)
	}
	return sum, nil
}
