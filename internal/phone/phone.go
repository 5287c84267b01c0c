// Package phone canonicalizes Kenyan mobile numbers into E.164 form.
package phone

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	// CountryCode is the only supported dialing code.
	CountryCode = "254"
	// InvalidMessage is shown next to the phone field when validation fails.
	InvalidMessage = "Please enter a valid Kenyan phone number"
)

// ErrInvalidPhone is matched by every ValidationError.
var ErrInvalidPhone = errors.New("invalid phone number")

// ValidationError reports a phone number that cannot be canonicalized.
type ValidationError struct {
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrInvalidPhone) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPhone
}

// Mobile subscriber numbers start with 7 (Safaricom/Airtel) or 1 (newer ranges).
var (
	trunkPattern      = regexp.MustCompile(`^0[17]\d{8}$`)
	subscriberPattern = regexp.MustCompile(`^[17]\d{8}$`)
	countryPattern    = regexp.MustCompile(`^254[17]\d{8}$`)
	qualifiedPattern  = regexp.MustCompile(`^\+254[17]\d{8}$`)
)

// clean drops every whitespace rune (including non-breaking spaces) and the
// punctuation people type into numbers.
func clean(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, raw)
}

// IsValid reports whether raw matches one of the accepted shapes:
// 0XXXXXXXXX, XXXXXXXXX, 254XXXXXXXXX or +254XXXXXXXXX.
func IsValid(raw string) bool {
	cleaned := clean(raw)
	return trunkPattern.MatchString(cleaned) ||
		subscriberPattern.MatchString(cleaned) ||
		countryPattern.MatchString(cleaned) ||
		qualifiedPattern.MatchString(cleaned)
}

// Normalize folds any accepted shape into +254XXXXXXXXX.
func Normalize(raw string) (string, error) {
	cleaned := clean(raw)
	switch {
	case qualifiedPattern.MatchString(cleaned):
		return cleaned, nil
	case countryPattern.MatchString(cleaned):
		return "+" + cleaned, nil
	case trunkPattern.MatchString(cleaned):
		return "+" + CountryCode + cleaned[1:], nil
	case subscriberPattern.MatchString(cleaned):
		return "+" + CountryCode + cleaned, nil
	default:
		return "", &ValidationError{Input: raw, Message: InvalidMessage}
	}
}

// Mask hides the middle digits of a canonical number for display,
// e.g. +254712345678 -> "+254 712 *** 678". Non-canonical input is returned as is.
func Mask(canonical string) string {
	if !qualifiedPattern.MatchString(canonical) {
		return canonical
	}
	local := canonical[len("+"+CountryCode):]
	return "+" + CountryCode + " " + local[:3] + " *** " + local[6:]
}
