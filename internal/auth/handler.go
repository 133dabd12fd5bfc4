// File: internal/auth/handler.go
package auth

import (
	"net/http"

	"customer_support_backend/internal/config"
	"customer_support_backend/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	cfg            *config.Config
	oauthService   Service
	sessionService session.Service
	logger         *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(
	cfg *config.Config,
	oauthService Service,
	sessionService session.Service,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:            cfg,
		oauthService:   oauthService,
		sessionService: sessionService,
		logger:         logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/google", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)
		authGroup.POST("/logout", h.logout)
	}
}

func (h *Handler) googleLogin(c *gin.Context) {
	authURL, err := h.oauthService.GetGoogleLoginURL(c)
	if err != nil {
		h.failLogin(c)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// googleCallback handles both outcomes of the consent screen. Every failure
// path ends in a redirect back to the unauthenticated landing page; the
// browser never sees an error body and never ends up half authenticated.
func (h *Handler) googleCallback(c *gin.Context) {
	if errorParam := c.Query("error"); errorParam != "" {
		h.logger.Warn("Google OAuth callback reported a denial",
			zap.String("error", errorParam),
			zap.String("description", c.Query("error_description")))
		h.failLogin(c)
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.logger.Warn("Google callback missing code or state")
		h.failLogin(c)
		return
	}

	_, sessionToken, err := h.oauthService.HandleGoogleCallback(c, code, state)
	if err != nil {
		h.failLogin(c)
		return
	}

	session.SetCookie(c, h.cfg, sessionToken)
	c.Redirect(http.StatusFound, h.cfg.LoginSuccessRedirectURL)
}

// logout revokes the session behind the cookie and clears it. Idempotent:
// logging out without a session is still a 204.
func (h *Handler) logout(c *gin.Context) {
	token := session.TokenFromRequest(c, h.cfg)
	if token != "" {
		if err := h.sessionService.Revoke(c.Request.Context(), token); err != nil {
			h.logger.Warn("Failed to revoke session on logout", zap.Error(err))
		}
	}
	session.ClearCookie(c, h.cfg)
	c.Status(http.StatusNoContent)
}

func (h *Handler) failLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, h.cfg.LoginFailureRedirectURL)
}
