package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/application/messaging"
)

// LinkHandler resolves public smart links. These routes skip JWT
// authentication: the token in the path is the credential.
type LinkHandler struct {
	BaseHandler
	notificationService *messaging.NotificationService
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(notificationService *messaging.NotificationService) *LinkHandler {
	return &LinkHandler{notificationService: notificationService}
}

// RegisterRoutes registers public smart link routes
func (h *LinkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	links := rg.Group("/links")
	{
		links.GET("/:token", h.Access)
		links.GET("/:token/preview", h.Preview)
	}
}

// Access resolves a smart link, counting the access against the
// link's limit
func (h *LinkHandler) Access(c *gin.Context) {
	resolution, err := h.notificationService.AccessSmartLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resolution)
}

// Preview returns link metadata without consuming an access
func (h *LinkHandler) Preview(c *gin.Context) {
	preview, err := h.notificationService.PreviewSmartLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}
