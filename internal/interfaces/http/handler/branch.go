package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/application/org"
	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// BranchHandler exposes branch management and stats endpoints
type BranchHandler struct {
	BaseHandler
	branchService *org.BranchService
	statsService  *org.BranchStatsService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *org.BranchService, statsService *org.BranchStatsService) *BranchHandler {
	return &BranchHandler{branchService: branchService, statsService: statsService}
}

// RegisterRoutes registers branch routes. Creating and deleting
// branches is a company-level operation; lifecycle transitions and
// stats recomputation belong to branch heads and above.
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.GET("", h.List)
		branches.GET("/:id", h.GetByID)

		admin := branches.Group("", middleware.RequireRole(auth.RoleBranchHead))
		{
			admin.PUT("/:id", h.Update)
			admin.POST("/:id/activate", h.Activate)
			admin.POST("/:id/deactivate", h.Deactivate)
			admin.POST("/:id/close", h.Close)
			admin.POST("/:id/stats/recompute", h.RecomputeStats)
		}

		company := branches.Group("", middleware.RequireRole(auth.RoleCompanyAdmin))
		{
			company.POST("", h.Create)
			company.DELETE("/:id", h.Delete)
		}
	}
}

// Create opens a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req org.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.branchService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single branch with its cached stats
func (h *BranchHandler) GetByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	resp, err := h.branchService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the company's branches
func (h *BranchHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter org.BranchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	branches, total, err := h.branchService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, branches, total, filter.Page, filter.PageSize)
}

// Update modifies branch details
func (h *BranchHandler) Update(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	var req org.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.branchService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate returns a branch to active operation
func (h *BranchHandler) Activate(c *gin.Context) {
	h.transition(c, h.branchService.Activate)
}

// Deactivate suspends a branch without closing it
func (h *BranchHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.branchService.Deactivate)
}

// Close permanently closes a branch
func (h *BranchHandler) Close(c *gin.Context) {
	h.transition(c, h.branchService.Close)
}

func (h *BranchHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, companyID, branchID uuid.UUID) (*org.BranchResponse, error),
) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	resp, err := apply(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecomputeStats recalculates the branch's cached revenue breakdown
// and employee count from the live aggregates
func (h *BranchHandler) RecomputeStats(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	// Tenant check before touching the stats pipeline
	if _, err := h.branchService.GetByID(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.statsService.UpdateBranchStats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a branch
func (h *BranchHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
