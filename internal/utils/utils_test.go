package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey("secret", "otp-challenge")
	require.NoError(t, err)
	b, err := DeriveKey("secret", "user-session")
	require.NoError(t, err)
	again, err := DeriveKey("secret", "otp-challenge")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)

	_, err = DeriveKey("", "otp-challenge")
	assert.Error(t, err)
}

func TestSealOpen(t *testing.T) {
	key, err := DeriveKey("secret", "test")
	require.NoError(t, err)

	sealed, err := Seal(key, []byte(`{"code":"582911"}`))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "582911")

	plain, err := Open(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"code":"582911"}`, string(plain))
}

func TestOpenRejectsTampering(t *testing.T) {
	key, err := DeriveKey("secret", "test")
	require.NoError(t, err)
	other, err := DeriveKey("other", "test")
	require.NoError(t, err)

	sealed, err := Seal(key, []byte("payload"))
	require.NoError(t, err)

	flipped := []byte(sealed)
	if flipped[0] == 'A' {
		flipped[0] = 'B'
	} else {
		flipped[0] = 'A'
	}

	_, err = Open(key, string(flipped))
	assert.Error(t, err)
	_, err = Open(other, sealed)
	assert.Error(t, err)
	_, err = Open(key, "not base64 !!")
	assert.Error(t, err)
	_, err = Open(key, "c2hvcnQ")
	assert.Error(t, err)
}

func TestSessionToken(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	token, err := GenerateSessionToken(key, "+254712345678", "admin", issued, 7*24*time.Hour)
	require.NoError(t, err)

	userID, role, err := ParseSessionToken(key, token, issued.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "+254712345678", userID)
	assert.Equal(t, "admin", role)

	_, _, err = ParseSessionToken(key, token, issued.Add(7*24*time.Hour+time.Second))
	assert.Error(t, err)

	_, _, err = ParseSessionToken([]byte("another-key-another-key-another!!"), token, issued)
	assert.Error(t, err)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 20, Offset: 0}, NewPagination(0, 0))
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Offset: 20}, NewPagination(3, 10))
	assert.Equal(t, Pagination{Page: 2, Limit: 100, Offset: 100}, NewPagination(2, 500))
}
