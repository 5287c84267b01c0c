// Package directory resolves the role of a verified phone number.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/trmops/internal/models"
	"github.com/example/trmops/internal/phone"
	"github.com/example/trmops/internal/session"
	"github.com/example/trmops/internal/utils"
)

var (
	// ErrInactive is returned for phones whose directory entry is disabled.
	ErrInactive = errors.New("directory: account disabled")
	// ErrInvalidEntry wraps validation failures on Upsert and seeding.
	ErrInvalidEntry = errors.New("directory: invalid entry")
)

// Directory maps canonical phone numbers to roles.
type Directory interface {
	// ResolveRole returns the entry's role, the default role for unknown
	// phones, or ErrInactive.
	ResolveRole(ctx context.Context, phone string) (session.Role, error)
	List(ctx context.Context, page utils.Pagination) ([]models.User, int64, error)
	Upsert(ctx context.Context, user models.User) (models.User, error)
}

func normalizeEntry(user models.User) (models.User, error) {
	canonical, err := phone.Normalize(user.Phone)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if _, err := session.ParseRole(user.Role); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	user.Phone = canonical
	user.DisplayName = strings.TrimSpace(user.DisplayName)
	return user, nil
}

// ParseSeed reads "phone=role" pairs separated by commas.
func ParseSeed(raw string) ([]models.User, error) {
	var users []models.User
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		number, role, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: seed entry %q is not phone=role", ErrInvalidEntry, pair)
		}
		user, err := normalizeEntry(models.User{
			Phone:  strings.TrimSpace(number),
			Role:   strings.TrimSpace(role),
			Active: true,
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Seed upserts every user into dir.
func Seed(ctx context.Context, dir Directory, users []models.User) error {
	for _, user := range users {
		if _, err := dir.Upsert(ctx, user); err != nil {
			return fmt.Errorf("seed %s: %w", user.Phone, err)
		}
	}
	return nil
}
