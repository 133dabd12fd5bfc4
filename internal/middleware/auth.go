// File: internal/middleware/auth.go
package middleware

import (
	"errors"

	"customer_support_backend/internal/common"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireSession creates a Gin middleware that rejects requests without a
// valid session cookie. Requests carrying a stale or unknown token are
// treated the same as requests with no token at all.
func RequireSession(sessionService session.Service, cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c, cfg)
		if token == "" {
			logger.Debug("Session cookie missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("A valid session is required."))
			return
		}

		usr, err := sessionService.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrServiceUnavailable) {
				logger.Error("Session resolution failed", zap.Error(err))
				common.RespondWithError(c, err)
				return
			}
			logger.Warn("Session resolution rejected", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("A valid session is required."))
			return
		}
		if usr == nil {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("A valid session is required."))
			return
		}

		c.Set(common.UserIDKey, usr.ID)
		c.Set(common.SessionTokenKey, token)

		logger.Debug("User authenticated successfully", zap.String("userID", usr.ID.String()))

		c.Next()
	}
}

// OptionalSession creates a Gin middleware that resolves the session cookie
// when present but never rejects the request. Handlers see uuid.Nil for the
// user ID when no valid session accompanies the request.
func OptionalSession(sessionService session.Service, cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c, cfg)
		if token == "" {
			c.Next()
			return
		}

		usr, err := sessionService.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrServiceUnavailable) {
				logger.Error("Session resolution failed", zap.Error(err))
				common.RespondWithError(c, err)
				return
			}
			logger.Debug("Ignoring unresolvable session token", zap.Error(err))
			c.Next()
			return
		}
		if usr != nil {
			c.Set(common.UserIDKey, usr.ID)
			c.Set(common.SessionTokenKey, token)
		}

		c.Next()
	}
}
