// File: internal/middleware/auth_test.go
package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer_support_backend/internal/common"
	"customer_support_backend/internal/config"
	"customer_support_backend/internal/middleware"
	"customer_support_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSessionService resolves a single known token to a fixed user.
type stubSessionService struct {
	validToken string
	usr        *user.User
	resolveErr error
}

func (s *stubSessionService) Issue(_ context.Context, _ uuid.UUID) (string, error) {
	return s.validToken, nil
}

func (s *stubSessionService) Resolve(_ context.Context, token string) (*user.User, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	if token == s.validToken {
		return s.usr, nil
	}
	return nil, nil
}

func (s *stubSessionService) Revoke(_ context.Context, _ string) error { return nil }

func (s *stubSessionService) PurgeExpired(_ context.Context) (int64, error) { return 0, nil }

func testConfig() *config.Config {
	return &config.Config{SessionCookieName: "support_session"}
}

func testUser() *user.User {
	usr := &user.User{ProviderUserID: "google-oauth2|1001", Email: "alice@example.com"}
	usr.ID = uuid.New()
	return usr
}

func newAuthTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": common.GetUserIDFromContext(c).String()})
	})
	return router
}

func TestRequireSession_MissingCookieIsRejected(t *testing.T) {
	svc := &stubSessionService{validToken: "tok", usr: testUser()}
	router := newAuthTestRouter(middleware.RequireSession(svc, testConfig(), zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_UnknownTokenIsRejected(t *testing.T) {
	svc := &stubSessionService{validToken: "tok", usr: testUser()}
	router := newAuthTestRouter(middleware.RequireSession(svc, testConfig(), zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "support_session", Value: "stale"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_ValidTokenPassesUserThrough(t *testing.T) {
	usr := testUser()
	svc := &stubSessionService{validToken: "tok", usr: usr}
	router := newAuthTestRouter(middleware.RequireSession(svc, testConfig(), zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "support_session", Value: "tok"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), usr.ID.String())
}

func TestRequireSession_StoreFailureIsNotAnAuthFailure(t *testing.T) {
	svc := &stubSessionService{resolveErr: common.ErrServiceUnavailable.WithDetails("store down")}
	router := newAuthTestRouter(middleware.RequireSession(svc, testConfig(), zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "support_session", Value: "tok"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code,
		"a store outage must surface as retryable, not as a logout")
}

func TestOptionalSession_MissingCookieStillServes(t *testing.T) {
	svc := &stubSessionService{validToken: "tok", usr: testUser()}
	router := newAuthTestRouter(middleware.OptionalSession(svc, testConfig(), zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), uuid.Nil.String())
}

func TestOptionalSession_ValidTokenSetsUser(t *testing.T) {
	usr := testUser()
	svc := &stubSessionService{validToken: "tok", usr: usr}
	router := newAuthTestRouter(middleware.OptionalSession(svc, testConfig(), zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "support_session", Value: "tok"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), usr.ID.String())
}
