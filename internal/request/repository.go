// File: internal/request/repository.go
package request

import (
	"context"
	"errors"

	"customer_support_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines persistence operations for support requests.
type Repository interface {
	Create(ctx context.Context, req *SupportRequest) error
	FindByCategorySlug(ctx context.Context, categorySlug string) ([]SupportRequest, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM support request repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, req *SupportRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return common.ErrInternalServer.WithDetails("failed to create support request: " + err.Error())
	}
	return nil
}

func (r *gormRepository) FindByCategorySlug(ctx context.Context, categorySlug string) ([]SupportRequest, error) {
	var requests []SupportRequest
	err := r.db.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrInternalServer.WithDetails("failed to list support requests: " + err.Error())
	}
	return requests, nil
}
