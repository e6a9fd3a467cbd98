package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/application/billing"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// QuotationHandler exposes quotation lifecycle endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *billing.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *billing.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// RegisterRoutes registers quotation routes
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	{
		quotations.POST("", h.Create)
		quotations.GET("", h.List)
		quotations.GET("/:id", h.GetByID)
		quotations.DELETE("/:id", h.Delete)
		quotations.POST("/:id/send", h.Send)
		quotations.POST("/:id/accept", h.Accept)
		quotations.POST("/:id/reject", h.Reject)
	}
}

// Create drafts a quotation for a client
func (h *QuotationHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billing.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.quotationService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single quotation
func (h *QuotationHandler) GetByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID")
		return
	}

	resp, err := h.quotationService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns quotations, scoped to the caller's branch for
// branch-level roles
func (h *QuotationHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billing.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	quotations, total, err := h.quotationService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotations, total, filter.Page, filter.PageSize)
}

// Send marks the quotation sent and dispatches the smart link to the
// client
func (h *QuotationHandler) Send(c *gin.Context) {
	h.transition(c, h.quotationService.Send)
}

// Reject marks the quotation rejected
func (h *QuotationHandler) Reject(c *gin.Context) {
	h.transition(c, h.quotationService.Reject)
}

func (h *QuotationHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, companyID, id uuid.UUID) (*billing.QuotationResponse, error),
) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID")
		return
	}

	resp, err := apply(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Accept marks the quotation accepted, which converts it into a
// booking
func (h *QuotationHandler) Accept(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req billing.AcceptQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.quotationService.Accept(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a draft quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
