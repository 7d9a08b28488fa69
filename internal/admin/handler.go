// Package admin exposes the operator-only projections over the registration
// store: headcount, email export for the drawing, and the full participant
// list with codes. All routes sit behind the shared admin secret.
package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hotend/giveaway-backend/internal/models"
	"github.com/hotend/giveaway-backend/pkg/response"
)

// Store is the read-only registration access the admin endpoints need.
type Store interface {
	Count(ctx context.Context) (int, error)
	ListOrdered(ctx context.Context) ([]models.Registration, error)
}

// EmailLogStore lists confirmation email delivery attempts.
type EmailLogStore interface {
	List(ctx context.Context) ([]models.EmailLog, error)
}

// Handler handles the admin endpoints.
type Handler struct {
	store  Store
	emails EmailLogStore
	logger *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(store Store, emails EmailLogStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, emails: emails, logger: logger}
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(c *gin.Context) {
	n, err := h.store.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("count registrations failed", zap.Error(err))
		response.Internal(c, "stats failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": n})
}

// Export handles GET /api/export: one email per line, oldest first, for the
// drawing tool.
func (h *Handler) Export(c *gin.Context) {
	regs, err := h.store.ListOrdered(c.Request.Context())
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err))
		response.Internal(c, "export failed")
		return
	}
	emails := make([]string, 0, len(regs))
	for _, reg := range regs {
		emails = append(emails, reg.Email)
	}
	c.String(http.StatusOK, strings.Join(emails, "\n"))
}

// Participants handles GET /api/participants: every registration as
// {email, name, code}, oldest first.
func (h *Handler) Participants(c *gin.Context) {
	regs, err := h.store.ListOrdered(c.Request.Context())
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err))
		response.Internal(c, "participants failed")
		return
	}
	list := make([]models.Participant, 0, len(regs))
	for _, reg := range regs {
		list = append(list, models.Participant{Email: reg.Email, Name: reg.Name, Code: reg.Code})
	}
	c.JSON(http.StatusOK, list)
}

// Emails handles GET /api/emails: confirmation delivery log, newest first,
// for spotting participants who need a manual resend.
func (h *Handler) Emails(c *gin.Context) {
	logs, err := h.emails.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list email logs failed", zap.Error(err))
		response.Internal(c, "emails failed")
		return
	}
	if logs == nil {
		logs = []models.EmailLog{}
	}
	c.JSON(http.StatusOK, logs)
}
