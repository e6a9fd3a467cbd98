package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/application/booking"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// BookingHandler exposes booking lifecycle endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *booking.Service
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RegisterRoutes registers booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.GetByID)
		bookings.PUT("/:id", h.Update)
		bookings.DELETE("/:id", h.Delete)
		bookings.POST("/:id/confirm", h.Confirm)
		bookings.POST("/:id/complete", h.Complete)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/payments", h.RecordPayment)
		bookings.POST("/:id/equipment", h.AssignEquipment)
	}
}

// Create registers a new pending booking
func (h *BookingHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.bookingService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single booking
func (h *BookingHandler) GetByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.bookingService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns bookings, scoped to the caller's branch for
// branch-level roles
func (h *BookingHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter booking.BookingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	bookings, total, err := h.bookingService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bookings, total, filter.Page, filter.PageSize)
}

// Update modifies a pending booking's details
func (h *BookingHandler) Update(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.bookingService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm confirms a booking, which also kicks off task auto-assignment
// and the client confirmation message
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookingService.Confirm)
}

// Complete marks a booking done
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookingService.Complete)
}

func (h *BookingHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, companyID, id uuid.UUID) (*booking.BookingResponse, error),
) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := apply(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels a booking with a reason
func (h *BookingHandler) Cancel(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.bookingService.Cancel(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordPayment records a payment against the booking total
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.bookingService.RecordPayment(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignEquipment attaches equipment line items to the booking
func (h *BookingHandler) AssignEquipment(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.AssignEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.bookingService.AssignEquipment(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a booking
func (h *BookingHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
