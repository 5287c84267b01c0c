// Package session issues and reads the long-lived authenticated session and
// promotes a verified OTP challenge into one.
package session

import (
	"errors"
	"time"

	"github.com/example/trmops/internal/cookies"
	"github.com/example/trmops/internal/utils"
)

const (
	// CookieName carries the signed session token.
	CookieName = "trm_session"
	// Lifetime is the absolute session lifetime; activity does not extend it.
	Lifetime = 7 * 24 * time.Hour

	sessionKeyPurpose = "user-session"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("session: not authenticated")

// Session is the authenticated principal.
type Session struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Secret string
	Secure bool
	Now    func() time.Time
}

// Manager signs and verifies session cookies.
type Manager struct {
	key    []byte
	secure bool
	now    func() time.Time
}

// NewManager derives the signing key from cfg.Secret.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	key, err := utils.DeriveKey(cfg.Secret, sessionKeyPurpose)
	if err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{key: key, secure: cfg.Secure, now: now}, nil
}

// Issue signs s into a cookie valid for Lifetime.
func (m *Manager) Issue(s Session) (cookies.Cookie, error) {
	if s.UserID == "" {
		return cookies.Cookie{}, errors.New("session: empty user id")
	}
	if !s.Role.Valid() {
		return cookies.Cookie{}, errors.New("session: invalid role")
	}
	token, err := utils.GenerateSessionToken(m.key, s.UserID, string(s.Role), m.now(), Lifetime)
	if err != nil {
		return cookies.Cookie{}, err
	}
	return cookies.New(CookieName, token, Lifetime, m.secure), nil
}

// Read verifies a cookie value and returns the session it carries.
func (m *Manager) Read(value string) (Session, error) {
	if value == "" {
		return Session{}, ErrNoSession
	}
	userID, role, err := utils.ParseSessionToken(m.key, value, m.now())
	if err != nil {
		return Session{}, ErrNoSession
	}
	r, err := ParseRole(role)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return Session{UserID: userID, Role: r}, nil
}

// Destroy returns the directive that clears the session cookie.
func (m *Manager) Destroy() cookies.Cookie {
	return cookies.Expired(CookieName, m.secure)
}
