package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest is one billed line in an invoice request.
type CreateInvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines the payload for issuing an invoice. The total
// is computed from the items server-side.
type CreateInvoiceRequest struct {
	InvoiceNumber string                     `json:"invoiceNumber" binding:"required"`
	ClientID      string                     `json:"clientID" binding:"required"`
	TransactionID *string                    `json:"transactionID"`
	IssueDate     time.Time                  `json:"issueDate" binding:"required"`
	DueDate       time.Time                  `json:"dueDate" binding:"required"`
	Notes         string                     `json:"notes"`
	Items         []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest defines the mutable fields of an invoice. Replacing
// the items recomputes the total and regenerates the QR payload.
type UpdateInvoiceRequest struct {
	Status  *string                    `json:"status" binding:"omitempty,oneof=draft sent paid cancelled"`
	DueDate *time.Time                 `json:"dueDate"`
	Notes   *string                    `json:"notes"`
	Items   []CreateInvoiceItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// InvoiceItemResponse defines the data returned for one invoice line.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	ClientID      string                `json:"clientID"`
	TransactionID *string               `json:"transactionID"`
	Status        string                `json:"status"`
	IssueDate     time.Time             `json:"issueDate"`
	DueDate       time.Time             `json:"dueDate"`
	Notes         string                `json:"notes"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	QRCodeData    string                `json:"qrCodeData"`
	QRCodeImage   string                `json:"qrCodeImage"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToInvoiceResponse converts a domain.Invoice with its items.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ItemID:      it.ItemID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice(),
		}
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		TransactionID: inv.TransactionID,
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		TotalAmount:   inv.TotalAmount,
		QRCodeData:    inv.QRCodeData,
		QRCodeImage:   inv.QRCodeImage,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// RecordPaymentRequest defines the payload for recording a settlement
// against an invoice.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Notes         string          `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}
