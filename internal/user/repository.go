// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"customer_support_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for user data operations.
type Repository interface {
	// Upsert inserts the user or, when a row for the same provider account
	// already exists, refreshes its profile fields. The write is a single
	// atomic statement; the unique index on provider_user_id is the only
	// uniqueness mechanism.
	Upsert(ctx context.Context, usr *User) error
	FindByProviderUserID(ctx context.Context, providerUserID string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Upsert(ctx context.Context, usr *User) error {
	usr.Email = strings.ToLower(strings.TrimSpace(usr.Email))
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
		}).
		Create(usr).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user for provider account %s: %w", usr.ProviderUserID, err)
	}
	return nil
}

func (r *gormRepository) FindByProviderUserID(ctx context.Context, providerUserID string) (*User, error) {
	var usr User
	err := r.db.WithContext(ctx).Where("provider_user_id = ?", providerUserID).First(&usr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found for this provider account.")
		}
		return nil, err
	}
	return &usr, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var usr User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&usr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
		}
		return nil, err
	}
	return &usr, nil
}
