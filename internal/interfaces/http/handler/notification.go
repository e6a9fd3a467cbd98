package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/application/messaging"
	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// NotificationHandler exposes the notification outbox
type NotificationHandler struct {
	BaseHandler
	notificationService *messaging.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *messaging.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes. The manual pending
// sweep is an operational escape hatch for branch heads and above;
// the scheduler runs the same sweep on its own.
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("/process-pending", middleware.RequireRole(auth.RoleBranchHead), h.ProcessPending)
	}
}

// List returns the company's notification history
func (h *NotificationHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter messaging.NotificationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	notifications, total, err := h.notificationService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, notifications, total, filter.Page, filter.PageSize)
}

// ProcessPending pushes queued notifications through the sender now
func (h *NotificationHandler) ProcessPending(c *gin.Context) {
	if _, err := getCompanyID(c); err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	processed, err := h.notificationService.ProcessPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"processed": processed})
}
