// File: internal/request/model.go
package request

import (
	"time"

	"customer_support_backend/internal/common"

	"github.com/google/uuid"
)

// SupportRequest represents a submitted customer support request. Rows are
// written once at submission and never mutated afterwards.
type SupportRequest struct {
	common.BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_support_requests_user_id"`
	Category     string    `gorm:"type:varchar(100);not null"`
	CategorySlug string    `gorm:"type:varchar(100);not null;index:idx_support_requests_category_slug"`
	Comments     string    `gorm:"type:text"`
}

// TableName specifies the table name for the SupportRequest model.
func (SupportRequest) TableName() string {
	return "support_requests"
}

// --- DTOs ---

// CreateRequest defines the payload for submitting a support request.
type CreateRequest struct {
	Category string `json:"category" binding:"required,max=100"`
	Comments string `json:"comments" binding:"omitempty,max=10000"`
}

// SupportRequestResponse defines the structure for support request data sent
// in API responses.
type SupportRequestResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Category  string    `json:"category"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSupportRequestResponse converts a SupportRequest model to its DTO.
func ToSupportRequestResponse(r *SupportRequest) SupportRequestResponse {
	return SupportRequestResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  r.Category,
		Comments:  r.Comments,
		CreatedAt: r.CreatedAt,
	}
}
