package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/application/finance"
	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// AnalyticsHandler exposes the finance analytics view, restricted to
// branch heads and above
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *finance.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *finance.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics", middleware.RequireRole(auth.RoleBranchHead))
	{
		analytics.GET("/finance", h.FinanceAnalytics)
	}
}

// FinanceAnalytics returns per-branch expense and revenue totals
// within an optional date window
func (h *AnalyticsHandler) FinanceAnalytics(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.FinanceAnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.analyticsService.GetFinanceAnalytics(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
