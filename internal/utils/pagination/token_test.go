package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	// Standard timestamp
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeDateBasedToken(createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decoded, "Timestamp should match after decode")

	// Zero time
	zeroToken := EncodeDateBasedToken(time.Time{})
	decodedZero, err := DecodeDateBasedToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, time.Time{}, decodedZero, "Zero time should match after decode")

	// Current time, compared with Equal to tolerate monotonic clock stripping
	now := time.Now().UTC()
	decodedNow, err := DecodeDateBasedToken(EncodeDateBasedToken(now))
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	_, err := DecodeDateBasedToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Base64 of "notadate"
	_, err = DecodeDateBasedToken("bm90YWRhdGU=")
	assert.Error(t, err, "Should return an error for an unparseable date")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing")
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)
	id := "8f14e45f-ea3c-4b29-9bcb-0d1b8a2f6f01"

	token := EncodeMultiFieldToken(createdAt.Format(time.RFC3339Nano), id)
	assert.NotEmpty(t, token, "Token should not be empty")

	fields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Len(t, fields, 2, "Should decode both fields")
	assert.Equal(t, id, fields[1], "ID field should survive the round trip")

	parsed, err := time.Parse(time.RFC3339Nano, fields[0])
	assert.NoError(t, err, "First field should parse back into a timestamp")
	assert.Equal(t, createdAt, parsed, "Timestamp field should survive the round trip")

	// A single field decodes to a single part
	single, err := DecodeMultiFieldToken(EncodeMultiFieldToken("only"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"only"}, single)
}

func TestDecodeMultiFieldTokenError(t *testing.T) {
	_, err := DecodeMultiFieldToken("%%%not-base64%%%")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")
}
