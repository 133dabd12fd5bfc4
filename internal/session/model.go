// File: internal/session/model.go
package session

import (
	"time"

	"customer_support_backend/internal/common"

	"github.com/google/uuid"
)

// Session is the server-side state behind one browser's opaque token. It
// stores only the user reference; profile data is looked up fresh on every
// request so a stolen token never leaks more than an ID.
type Session struct {
	common.BaseModel
	Token     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_sessions_token"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_user_id"`
	ExpiresAt time.Time `gorm:"not null;index:idx_sessions_expires_at"`
}

// TableName specifies the table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}
