package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice bills a client, optionally against a transaction. TotalAmount is
// always recomputed from the items, never trusted from the caller. The QR
// fields hold the compliance TLV payload and its rendered PNG, both base64,
// regenerated on every save.
type Invoice struct {
	InvoiceID     string        `json:"invoiceID"`
	InvoiceNumber string        `json:"invoiceNumber"`
	ClientID      string        `json:"clientID"`
	TransactionID *string       `json:"transactionID"`
	Status        InvoiceStatus `json:"status"`
	IssueDate     time.Time     `json:"issueDate"`
	DueDate       time.Time     `json:"dueDate"`
	Notes         string        `json:"notes"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	QRCodeData    string        `json:"qrCodeData"`
	QRCodeImage   string        `json:"qrCodeImage"`
	Items         []InvoiceItem `json:"items,omitempty"`
	AuditFields
}

// InvoiceItem is one billed line on an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// TotalPrice returns quantity times unit price for this line.
func (i InvoiceItem) TotalPrice() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Payment is a settlement recorded against an invoice.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
