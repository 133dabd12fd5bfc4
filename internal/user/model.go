// File: internal/user/model.go
package user

import (
	"time"

	"customer_support_backend/internal/common"

	"github.com/google/uuid"
)

// User represents the canonical identity record in the database. Exactly one
// row exists per provider account; the row is refreshed on every login and
// never deleted by the application.
type User struct {
	common.BaseModel        // Embeds ID, CreatedAt, UpdatedAt
	ProviderUserID   string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_provider_user_id"`
	Email            string `gorm:"type:varchar(255)"`
	DisplayName      string `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// ExternalIdentity is the profile asserted by the OAuth provider for a single
// authentication event. It is never persisted as-is; it only feeds the upsert.
type ExternalIdentity struct {
	ProviderUserID string
	Email          string
	DisplayName    string
}

// --- DTOs ---

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
