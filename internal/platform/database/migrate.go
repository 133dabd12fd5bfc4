// File: internal/platform/database/migrate.go
package database

import (
	"customer_support_backend/internal/request"
	"customer_support_backend/internal/session"
	"customer_support_backend/internal/user"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all application models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&session.Session{},
		&request.SupportRequest{},
	)
}
