// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"

	"customer_support_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for user-related business logic.
type Service interface {
	// UpsertFromIdentity maps a verified external identity onto the canonical
	// user record. Idempotent: any sequence of calls for the same provider
	// account converges on a single row with a stable internal ID, with
	// last-writer-wins semantics on the profile fields.
	UpsertFromIdentity(ctx context.Context, identity ExternalIdentity) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("UserService"),
	}
}

func (s *service) UpsertFromIdentity(ctx context.Context, identity ExternalIdentity) (*User, error) {
	if strings.TrimSpace(identity.ProviderUserID) == "" {
		return nil, common.ErrBadRequest.WithDetails("Provider did not assert a user identifier.")
	}

	usr := &User{
		ProviderUserID: identity.ProviderUserID,
		Email:          identity.Email,
		DisplayName:    identity.DisplayName,
	}
	if err := s.repo.Upsert(ctx, usr); err != nil {
		s.logger.Error("Failed to upsert user from external identity",
			zap.Error(err), zap.String("providerUserID", identity.ProviderUserID))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not persist user identity.")
	}

	// Re-read the canonical row: when the upsert hit an existing record the
	// stable internal ID lives there, not in the model we just wrote.
	canonical, err := s.repo.FindByProviderUserID(ctx, identity.ProviderUserID)
	if err != nil {
		s.logger.Error("Failed to load user after upsert",
			zap.Error(err), zap.String("providerUserID", identity.ProviderUserID))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not load user identity.")
	}

	s.logger.Info("External identity upserted",
		zap.String("userID", canonical.ID.String()),
		zap.String("providerUserID", canonical.ProviderUserID))
	return canonical, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Error finding user by ID", zap.Error(err), zap.String("userID", id.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not load user.")
	}
	return usr, nil
}
