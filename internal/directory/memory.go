package directory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/trmops/internal/models"
	"github.com/example/trmops/internal/session"
	"github.com/example/trmops/internal/utils"
)

type memoryDirectory struct {
	mu          sync.RWMutex
	users       map[string]models.User
	defaultRole session.Role
}

// NewMemoryDirectory builds an in-process directory for development and tests.
func NewMemoryDirectory(defaultRole session.Role) Directory {
	return &memoryDirectory{users: make(map[string]models.User), defaultRole: defaultRole}
}

func (d *memoryDirectory) ResolveRole(_ context.Context, phone string) (session.Role, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[phone]
	if !ok {
		return d.defaultRole, nil
	}
	if !user.Active {
		return "", ErrInactive
	}
	return session.Role(user.Role), nil
}

func (d *memoryDirectory) List(_ context.Context, page utils.Pagination) ([]models.User, int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	all := make([]models.User, 0, len(d.users))
	for _, user := range d.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Phone < all[j].Phone })

	total := int64(len(all))
	if page.Offset >= len(all) {
		return []models.User{}, total, nil
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Offset:end], total, nil
}

func (d *memoryDirectory) Upsert(_ context.Context, user models.User) (models.User, error) {
	user, err := normalizeEntry(user)
	if err != nil {
		return models.User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := d.users[user.Phone]; ok {
		existing.DisplayName = user.DisplayName
		existing.Role = user.Role
		existing.Active = user.Active
		existing.UpdatedAt = now
		d.users[user.Phone] = existing
		return existing, nil
	}

	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now
	d.users[user.Phone] = user
	return user, nil
}
