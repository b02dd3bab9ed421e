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
	"github.com/faroukh/office_mgmt_app/internal/platform/config"
	"github.com/faroukh/office_mgmt_app/internal/utils/zatca"
)

// invoiceService manages invoices, their compliance QR payloads and
// payments.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	userSvc     portssvc.UserSvcFacade
	sellerName  string
	vatNumber   string
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, userSvc portssvc.UserSvcFacade, cfg *config.Config) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		userSvc:     userSvc,
		sellerName:  cfg.SellerName,
		vatNumber:   cfg.VATNumber,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// totalOf sums quantity times unit price across items.
func totalOf(items []domain.InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// refreshQR recomputes the invoice total from its items and regenerates the
// QR payload and image. Called on every save.
func (s *invoiceService) refreshQR(inv *domain.Invoice) error {
	inv.TotalAmount = totalOf(inv.Items)

	qr := zatca.InvoiceQR{
		SellerName: s.sellerName,
		VATNumber:  s.vatNumber,
		IssueDate:  inv.IssueDate,
		Total:      inv.TotalAmount,
	}
	inv.QRCodeData = qr.Payload()

	img, err := qr.Image()
	if err != nil {
		return fmt.Errorf("failed to render invoice QR image: %w", err)
	}
	inv.QRCodeImage = img
	return nil
}

// requireInvoiceAccess gates invoice reads on the view-all capability.
func (s *invoiceService) requireInvoiceAccess(ctx context.Context, requestingUserID string) error {
	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if !actor.Has(domain.CapInvoicesViewAll) {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateInvoice persists an invoice; the total is computed from the items
// and the QR payload and image are generated before saving.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireInvoiceAccess(ctx, creatorUserID); err != nil {
		return nil, err
	}

	now := nowUTC()
	invoiceID := uuid.NewString()

	items := make([]domain.InvoiceItem, len(req.Items))
	for i, itemReq := range req.Items {
		if itemReq.Quantity.LessThanOrEqual(decimal.Zero) || itemReq.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: invoice item quantity must be positive and unit price non-negative", apperrors.ErrValidation)
		}
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: itemReq.Description,
			Quantity:    itemReq.Quantity,
			UnitPrice:   itemReq.UnitPrice,
		}
	}

	inv := domain.Invoice{
		InvoiceID:     invoiceID,
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      req.ClientID,
		TransactionID: req.TransactionID,
		Status:        domain.InvoiceDraft,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		Items:         items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.refreshQR(&inv); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, inv, items); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, req.InvoiceNumber)
		}
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoiceID), slog.String("invoice_number", req.InvoiceNumber))
	return &inv, nil
}

// GetInvoiceByID retrieves an invoice with its items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	if err := s.requireInvoiceAccess(ctx, requestingUserID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// ListInvoices retrieves invoices.
func (s *invoiceService) ListInvoices(ctx context.Context, limit int, offset int, requestingUserID string) ([]domain.Invoice, error) {
	if err := s.requireInvoiceAccess(ctx, requestingUserID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.invoiceRepo.ListInvoices(ctx, limit, offset)
}

// UpdateInvoice applies updates; the total and QR payload are regenerated
// from the resulting item set on every save.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireInvoiceAccess(ctx, requestingUserID); err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		inv.Status = domain.InvoiceStatus(*req.Status)
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}

	itemsReplaced := req.Items != nil
	if itemsReplaced {
		items := make([]domain.InvoiceItem, len(req.Items))
		for i, itemReq := range req.Items {
			if itemReq.Quantity.LessThanOrEqual(decimal.Zero) || itemReq.UnitPrice.LessThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: invoice item quantity must be positive and unit price non-negative", apperrors.ErrValidation)
			}
			items[i] = domain.InvoiceItem{
				ItemID:      uuid.NewString(),
				InvoiceID:   invoiceID,
				Description: itemReq.Description,
				Quantity:    itemReq.Quantity,
				UnitPrice:   itemReq.UnitPrice,
			}
		}
		inv.Items = items
	}

	if err := s.refreshQR(inv); err != nil {
		return nil, err
	}

	inv.LastUpdatedAt = nowUTC()
	inv.LastUpdatedBy = requestingUserID

	if itemsReplaced {
		if err := s.invoiceRepo.SaveInvoice(ctx, *inv, inv.Items); err != nil {
			logger.Error("Failed to rewrite invoice items", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to rewrite invoice: %w", err)
		}
	} else {
		if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
			logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to update invoice: %w", err)
		}
	}

	return inv, nil
}

// RecordPayment records a settlement and flips the invoice to paid when the
// settled sum reaches the total. Recording against a paid invoice leaves the
// status untouched.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireInvoiceAccess(ctx, creatorUserID); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		InvoiceID:     invoiceID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		CreatedAt:     nowUTC(),
		CreatedBy:     creatorUserID,
	}

	if err := s.invoiceRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	settled, err := s.invoiceRepo.SumPaymentsForInvoice(ctx, invoiceID)
	if err != nil {
		logger.Error("Failed to sum payments", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	if inv.Status != domain.InvoicePaid && settled.GreaterThanOrEqual(inv.TotalAmount) {
		inv.Status = domain.InvoicePaid
		inv.LastUpdatedAt = nowUTC()
		inv.LastUpdatedBy = creatorUserID
		if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
			logger.Error("Failed to mark invoice paid", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
		}
		logger.Info("Invoice settled", slog.String("invoice_id", invoiceID), slog.String("settled", settled.String()))
	}

	return &payment, nil
}

// ListPayments retrieves the settlements recorded against an invoice.
func (s *invoiceService) ListPayments(ctx context.Context, invoiceID string, requestingUserID string) ([]domain.Payment, error) {
	if err := s.requireInvoiceAccess(ctx, requestingUserID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListPaymentsByInvoice(ctx, invoiceID)
}
