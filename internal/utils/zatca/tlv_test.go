package zatca

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeTLV walks the raw TLV bytes back into tag -> value.
func decodeTLV(t *testing.T, payload string) map[byte]string {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	fields := map[byte]string{}
	for i := 0; i < len(raw); {
		require.True(t, i+2 <= len(raw), "truncated TLV header")
		tag := raw[i]
		length := int(raw[i+1])
		require.True(t, i+2+length <= len(raw), "truncated TLV value")
		fields[tag] = string(raw[i+2 : i+2+length])
		i += 2 + length
	}
	return fields
}

func TestPayloadEncodesFiveTags(t *testing.T) {
	q := InvoiceQR{
		SellerName: "Engineering Consultancy Office",
		VATNumber:  "300000000000003",
		IssueDate:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Total:      decimal.NewFromInt(125),
	}

	fields := decodeTLV(t, q.Payload())

	assert.Len(t, fields, 5)
	assert.Equal(t, "Engineering Consultancy Office", fields[1])
	assert.Equal(t, "300000000000003", fields[2])
	assert.Equal(t, "2025-03-14T00:00:00Z", fields[3])
	assert.Equal(t, "125.00", fields[4])
	assert.Equal(t, "18.75", fields[5]) // 15% VAT
}

func TestPayloadHandlesMultibyteSellerName(t *testing.T) {
	q := InvoiceQR{
		SellerName: "المكتب الهندسي للاستشارات",
		VATNumber:  "300000000000003",
		IssueDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Total:      decimal.NewFromFloat(99.99),
	}

	fields := decodeTLV(t, q.Payload())

	// Length byte counts UTF-8 bytes, not runes; decoding must round-trip.
	assert.Equal(t, "المكتب الهندسي للاستشارات", fields[1])
	assert.Equal(t, "15.00", fields[5]) // 14.9985 rounds to 15.00
}

func TestImageProducesBase64PNG(t *testing.T) {
	q := InvoiceQR{
		SellerName: "Office",
		VATNumber:  "300000000000003",
		IssueDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Total:      decimal.NewFromInt(10),
	}

	img, err := q.Image()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(img)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), raw[:4])
}
