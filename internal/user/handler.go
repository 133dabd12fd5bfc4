// File: internal/user/handler.go
package user

import (
	"customer_support_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for user operations. The current_user
// endpoint answers for anonymous callers too, so it takes the optional-auth
// middleware rather than the required one.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, optionalAuthMW gin.HandlerFunc) {
	router.GET("/current_user", optionalAuthMW, h.currentUser)
}

// currentUser mirrors the classic "who am I" endpoint: the authenticated
// user's record, or an empty payload when no session is established.
func (h *Handler) currentUser(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondOK(c, "No authenticated user.", nil)
		return
	}
	usr, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Current user retrieved successfully.", ToUserResponse(usr))
}
