// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"customer_support_backend/internal/app"
	"customer_support_backend/internal/auth"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/jobs"
	"customer_support_backend/internal/notifier"
	"customer_support_backend/internal/platform/database"
	"customer_support_backend/internal/platform/logger"
	"customer_support_backend/internal/request"
	"customer_support_backend/internal/session"
	"customer_support_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// User Module
		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,

		// Session Module
		session.NewGORMRepository,
		session.NewService,

		// Auth Module
		auth.NewService,
		auth.NewHandler,

		// Support Request Module
		notifier.NewHTTPChannel,
		request.NewGORMRepository,
		request.NewService,
		request.NewHandler,

		// Jobs
		jobs.NewSessionExpiryJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
