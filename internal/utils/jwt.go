package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed JWT carrying the user ID and role.
// The token expires ttl after issuedAt regardless of activity.
func GenerateSessionToken(key []byte, userID, role string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseSessionToken validates the token against now and returns the embedded user ID and role.
func ParseSessionToken(key []byte, tokenString string, now time.Time) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	if claims.UserID == "" || claims.Role == "" {
		return "", "", errors.New("session token missing identity")
	}
	return claims.UserID, claims.Role, nil
}
