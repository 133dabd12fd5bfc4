// File: internal/request/handler.go
package request

import (
	"errors"

	"customer_support_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler handles HTTP requests related to support requests.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new support request handler instance.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("RequestHandler"),
	}
}

// RegisterRoutes sets up the routes for support request operations.
// requireAuth gates submission; listMiddleware (possibly empty) gates the
// listing endpoint per deployment policy.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc, listMiddleware ...gin.HandlerFunc) {
	router.POST("/requests", requireAuth, h.createRequest)

	listHandlers := append([]gin.HandlerFunc{}, listMiddleware...)
	listHandlers = append(listHandlers, h.listRequestsByCategory)
	router.GET("/requests/:category", listHandlers...)
}

// createRequest handles POST /api/requests.
func (h *Handler) createRequest(c *gin.Context) {
	var payload CreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("Create support request: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	userID := common.GetUserIDFromContext(c)

	req, err := h.service.Submit(c.Request.Context(), userID, payload)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Support request submitted successfully", ToSupportRequestResponse(req))
}

// listRequestsByCategory handles GET /api/requests/:category.
func (h *Handler) listRequestsByCategory(c *gin.Context) {
	category := c.Param("category")

	requests, err := h.service.ListByCategory(c.Request.Context(), category)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]SupportRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, ToSupportRequestResponse(&requests[i]))
	}

	common.RespondOK(c, "", responses)
}
