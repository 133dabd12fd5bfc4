// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"customer_support_backend/internal/auth"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/jobs"
	"customer_support_backend/internal/middleware"
	"customer_support_backend/internal/platform/database"
	"customer_support_backend/internal/request"
	"customer_support_backend/internal/session"
	"customer_support_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	sessionExpiryJob *jobs.SessionExpiryJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	requestHandler *request.Handler,
	sessionService session.Service,
	sessionExpiryJob *jobs.SessionExpiryJob,
	db *gorm.DB,
) (*Server, error) {
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	requireSessionMW := middleware.RequireSession(sessionService, cfg, logger.Named("AuthMiddleware"))
	optionalSessionMW := middleware.OptionalSession(sessionService, cfg, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Customer Support API is healthy!"})
	})

	// OAuth entry points live at the root so the provider's registered
	// redirect URI stays short and stable.
	root := router.Group("")
	authHandler.RegisterRoutes(root)

	api := router.Group("/api")
	userHandler.RegisterRoutes(api, optionalSessionMW)

	// Listing requests is open by default for legacy clients; deployments
	// can gate it behind a session with REQUESTS_LIST_REQUIRE_AUTH.
	var listMW []gin.HandlerFunc
	if cfg.RequestsListRequireAuth {
		listMW = append(listMW, requireSessionMW)
	}
	requestHandler.RegisterRoutes(api, requireSessionMW, listMW...)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		sessionExpiryJob: sessionExpiryJob,
	}, nil
}

func (s *Server) Start() error {
	if s.sessionExpiryJob != nil {
		if err := s.sessionExpiryJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start session purge job", zap.Error(err))
		}
	} else {
		s.logger.Info("Session purge job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.sessionExpiryJob != nil {
		s.sessionExpiryJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
