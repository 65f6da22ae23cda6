package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	docDate := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 7, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(docDate, createdAt)
	assert.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, docDate, decodedDate)
	assert.Equal(t, createdAt, decodedCreatedAt)

	// Zero values round-trip too.
	zeroToken := EncodeToken(time.Time{}, time.Time{})
	zeroDate, zeroCreated, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, zeroDate.IsZero())
	assert.True(t, zeroCreated.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 but no separator.
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")
}

func TestDateBasedToken(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	token := EncodeDateBasedToken(date)

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, decoded)

	_, err = DecodeDateBasedToken("%%%")
	assert.Error(t, err)
}
