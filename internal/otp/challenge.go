package otp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/example/trmops/internal/cookies"
	"github.com/example/trmops/internal/utils"
)

const (
	// ChallengeCookieName carries the sealed pending challenge.
	ChallengeCookieName = "trm_otp_session"
	// ChallengeTTL bounds both the cookie lifetime and code validity.
	ChallengeTTL = 5 * time.Minute

	challengeKeyPurpose = "otp-challenge"
)

// PendingChallenge binds a code to the phone it was sent to.
type PendingChallenge struct {
	PhoneNumber string    `json:"phone"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
}

// Age is the time elapsed since the challenge was issued.
func (c PendingChallenge) Age(now time.Time) time.Duration {
	return now.Sub(c.CreatedAt)
}

// Expired reports whether the challenge is no longer usable at now.
func (c PendingChallenge) Expired(now time.Time) bool {
	return c.Age(now) >= ChallengeTTL
}

// Remaining is the validity left at now, never negative.
func (c PendingChallenge) Remaining(now time.Time) time.Duration {
	left := ChallengeTTL - c.Age(now)
	if left < 0 {
		return 0
	}
	return left
}

// ChallengeStoreConfig configures a ChallengeStore.
type ChallengeStoreConfig struct {
	Secret string
	Secure bool
	Now    func() time.Time
}

// ChallengeStore keeps the single pending challenge inside a sealed,
// client-held cookie. The server holds no state: the cookie is the record.
type ChallengeStore struct {
	key    []byte
	secure bool
	now    func() time.Time
}

// NewChallengeStore derives the sealing key from cfg.Secret.
func NewChallengeStore(cfg ChallengeStoreConfig) (*ChallengeStore, error) {
	key, err := utils.DeriveKey(cfg.Secret, challengeKeyPurpose)
	if err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ChallengeStore{key: key, secure: cfg.Secure, now: now}, nil
}

// Create seals {phone, code, now} into a fresh cookie. Setting it replaces
// whatever challenge the client held before, so older codes stop working.
func (s *ChallengeStore) Create(phone, code string) (cookies.Cookie, error) {
	if phone == "" || code == "" {
		return cookies.Cookie{}, errors.New("otp: challenge requires phone and code")
	}
	payload, err := json.Marshal(PendingChallenge{
		PhoneNumber: phone,
		Code:        code,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return cookies.Cookie{}, err
	}
	sealed, err := utils.Seal(s.key, payload)
	if err != nil {
		return cookies.Cookie{}, err
	}
	return cookies.New(ChallengeCookieName, sealed, ChallengeTTL, s.secure), nil
}

// Read opens the cookie value. Missing, tampered or incomplete values read as absent.
func (s *ChallengeStore) Read(value string) (PendingChallenge, bool) {
	if value == "" {
		return PendingChallenge{}, false
	}
	payload, err := utils.Open(s.key, value)
	if err != nil {
		return PendingChallenge{}, false
	}
	var challenge PendingChallenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return PendingChallenge{}, false
	}
	if challenge.PhoneNumber == "" || challenge.Code == "" || challenge.CreatedAt.IsZero() {
		return PendingChallenge{}, false
	}
	return challenge, true
}

// Destroy returns the directive that clears the challenge slot. It is idempotent.
func (s *ChallengeStore) Destroy() cookies.Cookie {
	return cookies.Expired(ChallengeCookieName, s.secure)
}
