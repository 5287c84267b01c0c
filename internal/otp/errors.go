package otp

import "errors"

var (
	// ErrNoChallenge means there is no readable pending challenge for the caller.
	ErrNoChallenge = errors.New("otp: no pending challenge")
	// ErrChallengeExpired means the challenge is older than ChallengeTTL.
	ErrChallengeExpired = errors.New("otp: challenge expired")
	// ErrCodeMismatch means the submitted code differs from the stored one.
	ErrCodeMismatch = errors.New("otp: code mismatch")
	// ErrInvalidCodeFormat means the submission is not exactly six digits.
	ErrInvalidCodeFormat = errors.New("otp: code must be six digits")
)
