// File: internal/auth/service.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"customer_support_backend/internal/common"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/session"
	"customer_support_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Service drives the provider handshake. A callback either ends Verified,
// with a canonical user and an issued session token, or Failed; there is no
// path that leaves the caller authenticated on error.
type Service interface {
	GetGoogleLoginURL(c *gin.Context) (string, error)
	HandleGoogleCallback(c *gin.Context, code string, state string) (*user.User, string, error)
}

type service struct {
	cfg            *config.Config
	userService    user.Service
	sessionService session.Service
	logger         *zap.Logger
}

// NewService creates a new OAuth service.
func NewService(
	cfg *config.Config,
	userService user.Service,
	sessionService session.Service,
	logger *zap.Logger,
) Service {
	return &service{
		cfg:            cfg,
		userService:    userService,
		sessionService: sessionService,
		logger:         logger.Named("OAuthService"),
	}
}

// GetGoogleLoginURL generates the URL for Google OAuth login.
func (s *service) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateAndSetOAuthState(c, s.cfg)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state for Google", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	googleCfg := getGoogleOAuthConfig(s.cfg)
	authURL := googleCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	return authURL, nil
}

// HandleGoogleCallback processes the callback from Google: state check, code
// exchange, profile fetch, identity upsert, session issue. Nothing is
// persisted until the exchange has produced a verified identity.
func (s *service) HandleGoogleCallback(c *gin.Context, code string, state string) (*user.User, string, error) {
	storedState, err := getOAuthCookie(c, s.cfg, s.cfg.OAuthStateCookieName)
	if err != nil {
		s.logger.Error("Failed to get stored OAuth state for Google callback", zap.Error(err))
		return nil, "", common.ErrBadRequest.WithDetails("Invalid session or state mismatch.")
	}
	if state != storedState {
		s.logger.Error("Google OAuth state mismatch",
			zap.String("received_state", state), zap.String("stored_state", storedState))
		return nil, "", common.ErrBadRequest.WithDetails("OAuth state mismatch. Possible CSRF attack.")
	}

	googleCfg := getGoogleOAuthConfig(s.cfg)
	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, http.DefaultClient)

	token, err := googleCfg.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code for token", zap.Error(err))
		return nil, "", common.ErrServiceUnavailable.WithDetails("Could not exchange Google auth code.")
	}
	if !token.Valid() {
		s.logger.Error("Google token received is invalid")
		return nil, "", common.ErrServiceUnavailable.WithDetails("Received invalid token from Google.")
	}

	identity, err := s.fetchGoogleIdentity(ctx, googleCfg, token)
	if err != nil {
		return nil, "", err
	}

	appUser, err := s.userService.UpsertFromIdentity(c.Request.Context(), *identity)
	if err != nil {
		s.logger.Error("Failed to upsert user from Google profile", zap.Error(err))
		if _, ok := common.IsAPIError(err); ok {
			return nil, "", err
		}
		return nil, "", common.ErrInternalServer.WithDetails("Failed to process user account after Google login.")
	}

	sessionToken, err := s.sessionService.Issue(c.Request.Context(), appUser.ID)
	if err != nil {
		s.logger.Error("Failed to issue session after Google login",
			zap.Error(err), zap.String("userID", appUser.ID.String()))
		return nil, "", err
	}

	s.logger.Info("Google OAuth login successful",
		zap.String("userID", appUser.ID.String()), zap.String("email", appUser.Email))
	return appUser, sessionToken, nil
}

// fetchGoogleIdentity calls the userinfo endpoint with the exchanged token
// and maps the profile into the transient external identity.
func (s *service) fetchGoogleIdentity(ctx context.Context, googleCfg *oauth2.Config, token *oauth2.Token) (*user.ExternalIdentity, error) {
	client := googleCfg.Client(ctx, token)
	resp, err := client.Get(GoogleUserInfoURL)
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not fetch user info from Google.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Google user info request failed", zap.Int("status", resp.StatusCode))
		return nil, common.ErrServiceUnavailable.WithDetails(
			fmt.Sprintf("Google returned status %d for user info.", resp.StatusCode))
	}

	var googleUser struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		s.logger.Error("Failed to decode Google user info", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process Google user information.")
	}
	if googleUser.Sub == "" {
		s.logger.Error("Google user info is missing the subject identifier")
		return nil, common.ErrBadRequest.WithDetails("Missing user identifier from Google.")
	}

	return &user.ExternalIdentity{
		ProviderUserID: googleUser.Sub,
		Email:          strings.ToLower(googleUser.Email),
		DisplayName:    googleUser.Name,
	}, nil
}
