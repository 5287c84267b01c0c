package otp

import (
	"crypto/subtle"
	"time"
)

// ValidateCodeFormat rejects anything other than exactly six ASCII digits.
func ValidateCodeFormat(code string) error {
	if len(code) != CodeLength {
		return ErrInvalidCodeFormat
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrInvalidCodeFormat
		}
	}
	return nil
}

// Verifier checks submitted codes against the caller's pending challenge.
type Verifier struct {
	store *ChallengeStore
	now   func() time.Time
}

// NewVerifier builds a Verifier; a nil clock uses time.Now.
func NewVerifier(store *ChallengeStore, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{store: store, now: now}
}

// Verify returns the bound phone number when submitted matches the challenge
// held in challengeValue. Expiry is checked before the code, so an expired
// challenge fails regardless of correctness. A mismatch leaves the challenge
// usable; destroying it after success is the caller's job.
func (v *Verifier) Verify(challengeValue, submitted string) (string, error) {
	challenge, ok := v.store.Read(challengeValue)
	if !ok {
		return "", ErrNoChallenge
	}
	if challenge.Expired(v.now()) {
		return "", ErrChallengeExpired
	}
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(challenge.Code)) != 1 {
		return "", ErrCodeMismatch
	}
	return challenge.PhoneNumber, nil
}
