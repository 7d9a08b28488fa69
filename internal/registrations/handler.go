package registrations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hotend/giveaway-backend/pkg/response"
)

// RegisterRequest is the body for POST /api/register.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Newsletter bool   `json:"newsletter"`
}

// RegisterResponse is the body returned on both the new- and
// existing-registration paths.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Handler handles the public registration endpoint.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Register handles POST /api/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	res, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Newsletter)
	if err != nil {
		h.logger.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		response.Internal(c, "registration failed")
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Success: true,
		Message: res.Status,
		Code:    res.Code,
	})
}
