package session

import (
	"errors"

	"github.com/example/trmops/internal/cookies"
)

// ChallengeDestroyer clears the pending OTP challenge.
type ChallengeDestroyer interface {
	Destroy() cookies.Cookie
}

// Promotion is everything one redirect response must carry after a
// successful verification: the new session and the challenge removal travel
// together or not at all.
type Promotion struct {
	Session  Session
	Location string
	Cookies  []cookies.Cookie
}

// Promoter turns a verified phone into an authenticated session.
type Promoter struct {
	sessions   *Manager
	challenges ChallengeDestroyer
}

// NewPromoter constructs a Promoter.
func NewPromoter(sessions *Manager, challenges ChallengeDestroyer) *Promoter {
	return &Promoter{sessions: sessions, challenges: challenges}
}

// Promote must only be called after the verifier accepted the code. It signs
// the session first so a failure leaves the challenge untouched.
func (p *Promoter) Promote(phone string, role Role) (Promotion, error) {
	if phone == "" {
		return Promotion{}, errors.New("session: promote without verified phone")
	}
	s := Session{UserID: phone, Role: role}
	sessionCookie, err := p.sessions.Issue(s)
	if err != nil {
		return Promotion{}, err
	}
	return Promotion{
		Session:  s,
		Location: LandingPath(role),
		Cookies:  []cookies.Cookie{p.challenges.Destroy(), sessionCookie},
	}, nil
}
