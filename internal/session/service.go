// File: internal/session/service.go
package session

import (
	"context"
	"errors"
	"time"

	"customer_support_backend/internal/common"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/platform/crypto"
	"customer_support_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenBytes is the entropy behind the opaque session token (256 bits).
const tokenBytes = 32

// Service encodes an authenticated user into an opaque token and expands the
// token back into a user view on later requests.
type Service interface {
	// Issue creates a new server-side session for the user and returns the
	// opaque token the client will carry.
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	// Resolve looks the token up and rehydrates the user record. A missing
	// or expired session, and a session whose user no longer exists, resolve
	// to (nil, nil): an unauthenticated request, not a failure. Store
	// unavailability is reported as an error so callers can surface a
	// retryable 5xx instead of silently logging the user out.
	Resolve(ctx context.Context, token string) (*user.User, error)
	// Revoke destroys the session behind the token. Idempotent.
	Revoke(ctx context.Context, token string) error
	// PurgeExpired removes sessions past their expiry and reports how many.
	PurgeExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo        Repository
	userService user.Service
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService creates a new session service.
func NewService(repo Repository, userService user.Service, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:        repo,
		userService: userService,
		cfg:         cfg,
		logger:      logger.Named("SessionService"),
	}
}

func (s *service) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := crypto.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		s.logger.Error("Failed to generate session token", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not create session.")
	}

	sess := &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		s.logger.Error("Failed to persist session", zap.Error(err), zap.String("userID", userID.String()))
		return "", common.ErrServiceUnavailable.WithDetails("Could not persist session.")
	}

	s.logger.Info("Session issued", zap.String("userID", userID.String()))
	return token, nil
}

func (s *service) Resolve(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("Session lookup failed", zap.Error(err))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not resolve session.")
	}

	if time.Now().After(sess.ExpiresAt) {
		// Best-effort cleanup; the purge job sweeps anything missed here.
		if err := s.repo.DeleteByToken(ctx, token); err != nil {
			s.logger.Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, nil
	}

	usr, err := s.userService.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// The user record is gone; the dangling session must not crash
			// request handling, it simply no longer authenticates anyone.
			s.logger.Warn("Session references a deleted user",
				zap.String("userID", sess.UserID.String()))
			return nil, nil
		}
		return nil, err
	}
	return usr, nil
}

func (s *service) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		s.logger.Error("Failed to revoke session", zap.Error(err))
		return common.ErrServiceUnavailable.WithDetails("Could not revoke session.")
	}
	return nil
}

func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to purge expired sessions", zap.Error(err))
		return 0, err
	}
	return purged, nil
}
