package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// InvoiceSvcFacade covers invoices, their compliance QR payloads and
// payments.
type InvoiceSvcFacade interface {
	// CreateInvoice persists an invoice; the total is computed from the items
	// and the QR payload and image are generated before saving.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves an invoice with its items.
	GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	ListInvoices(ctx context.Context, limit int, offset int, requestingUserID string) ([]domain.Invoice, error)

	// UpdateInvoice applies updates; total and QR payload are regenerated.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// RecordPayment records a settlement and flips the invoice to paid when
	// the settled sum reaches the total. Already-paid invoices are left
	// untouched.
	RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error)

	ListPayments(ctx context.Context, invoiceID string, requestingUserID string) ([]domain.Payment, error)
}
