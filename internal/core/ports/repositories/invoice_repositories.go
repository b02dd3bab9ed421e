package repositories

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceRepositoryFacade covers invoices, their items and payments.
type InvoiceRepositoryFacade interface {
	// SaveInvoice persists the invoice header and all items in one database
	// transaction. Returns apperrors.ErrDuplicate on invoice number collision.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// FindInvoiceByID retrieves an invoice with its items populated.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error)

	// UpdateInvoice rewrites mutable header fields (status, notes, totals, QR
	// payload and image).
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	SavePayment(ctx context.Context, payment domain.Payment) error
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// SumPaymentsForInvoice returns the total settled amount for an invoice.
	SumPaymentsForInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}
