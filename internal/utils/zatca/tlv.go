// Package zatca builds the ZATCA e-invoicing QR payload: a TLV structure over
// seller name, VAT registration number, timestamp, invoice total and VAT
// amount, base64-encoded, optionally rendered as a QR PNG.
package zatca

import (
	"encoding/base64"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/shopspring/decimal"
)

// Tag numbers defined by the ZATCA simplified-invoice QR specification.
const (
	tagSellerName = 1
	tagVATNumber  = 2
	tagTimestamp  = 3
	tagTotal      = 4
	tagVATAmount  = 5
)

// VATRate is the standard VAT rate applied to invoice totals.
var VATRate = decimal.NewFromFloat(0.15)

// InvoiceQR holds the five fields encoded into the payload.
type InvoiceQR struct {
	SellerName string
	VATNumber  string
	IssueDate  time.Time
	Total      decimal.Decimal
}

func toTLV(tag byte, value string) []byte {
	b := []byte(value)
	out := make([]byte, 0, len(b)+2)
	out = append(out, tag, byte(len(b)))
	return append(out, b...)
}

// Payload returns the base64-encoded TLV payload for the invoice.
func (q InvoiceQR) Payload() string {
	timestamp := q.IssueDate.Format("2006-01-02") + "T00:00:00Z"
	vatTotal := q.Total.Mul(VATRate).Round(2)

	tlv := make([]byte, 0, 128)
	tlv = append(tlv, toTLV(tagSellerName, q.SellerName)...)
	tlv = append(tlv, toTLV(tagVATNumber, q.VATNumber)...)
	tlv = append(tlv, toTLV(tagTimestamp, timestamp)...)
	tlv = append(tlv, toTLV(tagTotal, q.Total.StringFixed(2))...)
	tlv = append(tlv, toTLV(tagVATAmount, vatTotal.StringFixed(2))...)

	return base64.StdEncoding.EncodeToString(tlv)
}

// Image renders the payload as a 256x256 QR PNG and returns it base64-encoded.
func (q InvoiceQR) Image() (string, error) {
	png, err := qrcode.Encode(q.Payload(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
