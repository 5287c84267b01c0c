package directory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/trmops/internal/models"
	"github.com/example/trmops/internal/session"
	"github.com/example/trmops/internal/utils"
)

// GormDirectory stores directory entries in the users table.
type GormDirectory struct {
	db          *gorm.DB
	defaultRole session.Role
}

// NewGormDirectory builds a Postgres-backed directory.
func NewGormDirectory(db *gorm.DB, defaultRole session.Role) *GormDirectory {
	return &GormDirectory{db: db, defaultRole: defaultRole}
}

// ResolveRole looks up phone; unknown numbers get the default role.
func (d *GormDirectory) ResolveRole(ctx context.Context, phone string) (session.Role, error) {
	var user models.User
	err := d.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.defaultRole, nil
	}
	if err != nil {
		return "", err
	}
	if !user.Active {
		return "", ErrInactive
	}
	return session.ParseRole(user.Role)
}

// List returns one page of entries ordered by phone, plus the total count.
func (d *GormDirectory) List(ctx context.Context, page utils.Pagination) ([]models.User, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]models.User, 0, page.Limit)
	if err := d.db.WithContext(ctx).
		Order("phone asc").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Upsert creates or updates the entry keyed by phone.
func (d *GormDirectory) Upsert(ctx context.Context, user models.User) (models.User, error) {
	user, err := normalizeEntry(user)
	if err != nil {
		return models.User{}, err
	}

	var existing models.User
	err = d.db.WithContext(ctx).Where("phone = ?", user.Phone).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := d.db.WithContext(ctx).Create(&user).Error; err != nil {
			return models.User{}, err
		}
		return user, nil
	case err != nil:
		return models.User{}, err
	}

	existing.DisplayName = user.DisplayName
	existing.Role = user.Role
	existing.Active = user.Active
	if err := d.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return models.User{}, err
	}
	return existing, nil
}
