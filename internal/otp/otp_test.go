package otp

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newStore(t *testing.T, c *clock) *ChallengeStore {
	t.Helper()
	store, err := NewChallengeStore(ChallengeStoreConfig{Secret: "test-secret", Now: c.Now})
	require.NoError(t, err)
	return store
}

var codePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

func TestGenerateShape(t *testing.T) {
	gen := NewGenerator()
	for i := 0; i < 500; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
		assert.NoError(t, ValidateCodeFormat(code))
	}
}

func TestValidateCodeFormat(t *testing.T) {
	assert.NoError(t, ValidateCodeFormat("582911"))
	for _, bad := range []string{"", "12345", "1234567", "12a456", " 12345", "１２３４５６"} {
		assert.ErrorIs(t, ValidateCodeFormat(bad), ErrInvalidCodeFormat, bad)
	}
}

func TestChallengeStoreCreateRead(t *testing.T) {
	c := newClock()
	store := newStore(t, c)

	cookie, err := store.Create("+254712345678", "582911")
	require.NoError(t, err)
	assert.Equal(t, ChallengeCookieName, cookie.Name)
	assert.Equal(t, ChallengeTTL, cookie.MaxAge)
	assert.True(t, cookie.HTTPOnly)
	assert.NotContains(t, cookie.Value, "582911")

	challenge, ok := store.Read(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, "+254712345678", challenge.PhoneNumber)
	assert.Equal(t, "582911", challenge.Code)
	assert.True(t, challenge.CreatedAt.Equal(c.Now()))
	assert.Equal(t, ChallengeTTL, challenge.Remaining(c.Now()))
}

func TestChallengeStoreReadAbsent(t *testing.T) {
	store := newStore(t, newClock())

	_, ok := store.Read("")
	assert.False(t, ok)
	_, ok = store.Read("garbage")
	assert.False(t, ok)

	other, err := NewChallengeStore(ChallengeStoreConfig{Secret: "other-secret"})
	require.NoError(t, err)
	cookie, err := other.Create("+254712345678", "582911")
	require.NoError(t, err)
	_, ok = store.Read(cookie.Value)
	assert.False(t, ok)
}

func TestChallengeStoreDestroy(t *testing.T) {
	store := newStore(t, newClock())
	first := store.Destroy()
	second := store.Destroy()

	assert.Equal(t, first, second)
	assert.Equal(t, ChallengeCookieName, first.Name)
	assert.True(t, first.Expire)
	assert.Empty(t, first.Value)
	assert.Equal(t, -1, first.MaxAgeSeconds())
}

func TestNewChallengeStoreRequiresSecret(t *testing.T) {
	_, err := NewChallengeStore(ChallengeStoreConfig{})
	assert.Error(t, err)

	store := newStore(t, newClock())
	_, err = store.Create("", "582911")
	assert.Error(t, err)
}

func TestVerifySuccess(t *testing.T) {
	c := newClock()
	store := newStore(t, c)
	verifier := NewVerifier(store, c.Now)

	cookie, err := store.Create("+254712345678", "582911")
	require.NoError(t, err)

	c.Advance(4*time.Minute + 59*time.Second)
	phone, err := verifier.Verify(cookie.Value, "582911")
	require.NoError(t, err)
	assert.Equal(t, "+254712345678", phone)
}

func TestVerifyNoChallenge(t *testing.T) {
	c := newClock()
	verifier := NewVerifier(newStore(t, c), c.Now)

	_, err := verifier.Verify("", "582911")
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestVerifyExpiredRegardlessOfCode(t *testing.T) {
	c := newClock()
	store := newStore(t, c)
	verifier := NewVerifier(store, c.Now)

	cookie, err := store.Create("+254712345678", "582911")
	require.NoError(t, err)

	c.Advance(ChallengeTTL)
	_, err = verifier.Verify(cookie.Value, "582911")
	assert.ErrorIs(t, err, ErrChallengeExpired)
	_, err = verifier.Verify(cookie.Value, "000000")
	assert.ErrorIs(t, err, ErrChallengeExpired)
}

func TestVerifyMismatchKeepsChallenge(t *testing.T) {
	c := newClock()
	store := newStore(t, c)
	verifier := NewVerifier(store, c.Now)

	cookie, err := store.Create("+254712345678", "582911")
	require.NoError(t, err)

	_, err = verifier.Verify(cookie.Value, "123456")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	phone, err := verifier.Verify(cookie.Value, "582911")
	require.NoError(t, err)
	assert.Equal(t, "+254712345678", phone)
}

func TestResendReplacesCode(t *testing.T) {
	c := newClock()
	store := newStore(t, c)
	verifier := NewVerifier(store, c.Now)

	_, err := store.Create("+254712345678", "111111")
	require.NoError(t, err)
	c.Advance(30 * time.Second)
	resent, err := store.Create("+254712345678", "222222")
	require.NoError(t, err)

	_, err = verifier.Verify(resent.Value, "111111")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	phone, err := verifier.Verify(resent.Value, "222222")
	require.NoError(t, err)
	assert.Equal(t, "+254712345678", phone)
}
