// File: internal/request/service.go
package request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"customer_support_backend/internal/common"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/notifier"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for support request business logic.
type Service interface {
	// Submit validates and persists a support request for the given user,
	// then attempts a single best-effort delivery to the external channel.
	// Delivery failure never fails the submission.
	Submit(ctx context.Context, userID uuid.UUID, payload CreateRequest) (*SupportRequest, error)

	// ListByCategory returns all requests whose category matches the given
	// value, compared case-insensitively via slugs.
	ListByCategory(ctx context.Context, category string) ([]SupportRequest, error)
}

type serviceImpl struct {
	repo    Repository
	channel notifier.Channel
	cfg     *config.Config
	logger  *zap.Logger
}

// NewService creates a new support request service instance.
func NewService(repo Repository, channel notifier.Channel, cfg *config.Config, logger *zap.Logger) Service {
	return &serviceImpl{
		repo:    repo,
		channel: channel,
		cfg:     cfg,
		logger:  logger.Named("RequestService"),
	}
}

func (s *serviceImpl) Submit(ctx context.Context, userID uuid.UUID, payload CreateRequest) (*SupportRequest, error) {
	if userID == uuid.Nil {
		return nil, common.ErrUnauthorized.WithDetails("a valid session is required to submit a request")
	}

	category := strings.TrimSpace(payload.Category)
	if category == "" {
		return nil, common.NewValidationAPIError(map[string]string{"category": "Category must not be empty."})
	}

	req := &SupportRequest{
		UserID:       userID,
		Category:     category,
		CategorySlug: slug.Make(category),
		Comments:     payload.Comments,
	}

	// Past this point the submission must not be lost to a client
	// disconnect. Detach from request cancellation before persisting.
	ctx = context.WithoutCancel(ctx)

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error("Failed to persist support request", zap.Error(err), zap.String("userID", userID.String()))
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, common.ErrInternalServer.WithDetails("failed to persist support request")
	}

	s.deliver(ctx, req)

	return req, nil
}

// deliver performs the single best-effort delivery attempt. The request is
// already durable; any failure here is logged and swallowed.
func (s *serviceImpl) deliver(ctx context.Context, req *SupportRequest) {
	deliveryCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifierTimeout)
	defer cancel()

	msg := notifier.Message{
		Body:     fmt.Sprintf("Category: %s, Comments: %s", req.Category, req.Comments),
		SenderID: req.UserID.String(),
	}
	if err := s.channel.Deliver(deliveryCtx, msg); err != nil {
		s.logger.Error("Support request delivery failed",
			zap.Error(err),
			zap.String("requestID", req.ID.String()),
			zap.String("category", req.Category))
	}
}

func (s *serviceImpl) ListByCategory(ctx context.Context, category string) ([]SupportRequest, error) {
	requests, err := s.repo.FindByCategorySlug(ctx, slug.Make(category))
	if err != nil {
		s.logger.Error("Failed to list support requests", zap.Error(err), zap.String("category", category))
		return nil, err
	}
	return requests, nil
}
