// File: internal/auth/handler_test.go
package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer_support_backend/internal/auth"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOAuthService struct {
	loginURL    string
	callbackErr error
	usr         *user.User
	token       string
}

func (s *stubOAuthService) GetGoogleLoginURL(_ *gin.Context) (string, error) {
	return s.loginURL, nil
}

func (s *stubOAuthService) HandleGoogleCallback(_ *gin.Context, _ string, _ string) (*user.User, string, error) {
	if s.callbackErr != nil {
		return nil, "", s.callbackErr
	}
	return s.usr, s.token, nil
}

type stubSessionService struct {
	revoked []string
}

func (s *stubSessionService) Issue(_ context.Context, _ uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubSessionService) Resolve(_ context.Context, _ string) (*user.User, error) {
	return nil, nil
}

func (s *stubSessionService) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubSessionService) PurgeExpired(_ context.Context) (int64, error) { return 0, nil }

func authTestConfig() *config.Config {
	return &config.Config{
		SessionCookieName:       "support_session",
		LoginSuccessRedirectURL: "/dashboard",
		LoginFailureRedirectURL: "/",
	}
}

func newAuthTestRouter(oauthSvc auth.Service, sessionSvc *stubSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := auth.NewHandler(authTestConfig(), oauthSvc, sessionSvc, zap.NewNop())
	handler.RegisterRoutes(router.Group(""))
	return router
}

func TestGoogleLogin_RedirectsToConsentScreen(t *testing.T) {
	oauthSvc := &stubOAuthService{loginURL: "https://accounts.google.com/o/oauth2/auth?state=abc"}
	router := newAuthTestRouter(oauthSvc, &stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, oauthSvc.loginURL, w.Header().Get("Location"))
}

func TestGoogleCallback_DenialRedirectsWithoutSession(t *testing.T) {
	router := newAuthTestRouter(&stubOAuthService{}, &stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies(), "a denied login must not set any cookie")
}

func TestGoogleCallback_MissingCodeRedirectsWithoutSession(t *testing.T) {
	router := newAuthTestRouter(&stubOAuthService{}, &stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGoogleCallback_ExchangeFailureRedirectsWithoutSession(t *testing.T) {
	oauthSvc := &stubOAuthService{callbackErr: errors.New("exchange failed")}
	router := newAuthTestRouter(oauthSvc, &stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=c&state=s", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies())
}

func TestGoogleCallback_SuccessSetsSessionCookie(t *testing.T) {
	usr := &user.User{Email: "alice@example.com"}
	usr.ID = uuid.New()
	oauthSvc := &stubOAuthService{usr: usr, token: "opaque-session-token"}
	router := newAuthTestRouter(oauthSvc, &stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=c&state=s", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "support_session", cookies[0].Name)
	assert.Equal(t, "opaque-session-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogout_RevokesAndClearsCookie(t *testing.T) {
	sessionSvc := &stubSessionService{}
	router := newAuthTestRouter(&stubOAuthService{}, sessionSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "support_session", Value: "tok"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"tok"}, sessionSvc.revoked)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "support_session", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0, "the cookie must be expired on logout")
}

func TestLogout_WithoutSessionIsStillNoContent(t *testing.T) {
	sessionSvc := &stubSessionService{}
	router := newAuthTestRouter(&stubOAuthService{}, sessionSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, sessionSvc.revoked)
}
