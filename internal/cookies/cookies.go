// Package cookies describes Set-Cookie directives without tying them to an HTTP framework.
package cookies

import "time"

// SameSiteLax is the only same-site mode the application issues.
const SameSiteLax = "Lax"

// Cookie is a single Set-Cookie directive.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
	SameSite string
	// Expire marks a deletion directive: empty value, already expired.
	Expire bool
}

// New builds an http-only, same-site lax cookie scoped to "/".
func New(name, value string, maxAge time.Duration, secure bool) Cookie {
	return Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: SameSiteLax,
	}
}

// Expired builds the directive that removes a cookie set by New.
func Expired(name string, secure bool) Cookie {
	c := New(name, "", 0, secure)
	c.Expire = true
	return c
}

// MaxAgeSeconds returns the Max-Age attribute value; -1 for deletions.
func (c Cookie) MaxAgeSeconds() int {
	if c.Expire {
		return -1
	}
	return int(c.MaxAge / time.Second)
}
