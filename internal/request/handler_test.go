// File: internal/request/handler_test.go
package request_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"customer_support_backend/internal/common"
	"customer_support_backend/internal/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAuth stands in for the session middleware: it either authenticates
// every request as the given user or rejects everything.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID == uuid.Nil {
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}
		c.Set(common.UserIDKey, userID)
		c.Next()
	}
}

func newRequestTestRouter(t *testing.T, authedUser uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupRequestServiceTest(t, &recordingChannel{})
	handler := request.NewHandler(svc, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"), fakeAuth(authedUser))
	return router
}

func TestCreateRequest_AuthenticatedSubmissionIsCreated(t *testing.T) {
	userID := uuid.New()
	router := newRequestTestRouter(t, userID)

	w := httptest.NewRecorder()
	body := `{"category":"Billing","comments":"Charged twice."}`
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "Billing")
}

func TestCreateRequest_UnauthenticatedIsRejected(t *testing.T) {
	router := newRequestTestRouter(t, uuid.Nil)

	w := httptest.NewRecorder()
	body := `{"category":"Billing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRequest_MissingCategoryIsRejected(t *testing.T) {
	router := newRequestTestRouter(t, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(`{"comments":"no category"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestListRequestsByCategory_ReturnsMatches(t *testing.T) {
	userID := uuid.New()
	router := newRequestTestRouter(t, userID)

	w := httptest.NewRecorder()
	body := `{"category":"Account Access","comments":"locked out"}`
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/requests/account-access", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "locked out")
}

func TestListRequestsByCategory_EmptyCategoryIsEmptyList(t *testing.T) {
	router := newRequestTestRouter(t, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/requests/nothing-here", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
