package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/application/attendance"
	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// AttendanceHandler exposes staff attendance endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *attendance.Service
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RegisterRoutes registers attendance routes. Marking attendance on
// behalf of staff requires branch head or above; check-in and
// check-out are open to every authenticated user.
func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	att := rg.Group("/attendance")
	{
		att.GET("", h.List)
		att.POST("/check-in", h.CheckIn)
		att.POST("/check-out", h.CheckOut)
		att.POST("/mark", middleware.RequireRole(auth.RoleBranchHead), h.Mark)
	}
}

// CheckIn opens today's attendance record for a staff member
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req attendance.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.attendanceService.CheckIn(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CheckOut closes today's attendance record
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req attendance.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.attendanceService.CheckOut(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Mark records or overrides a day's attendance status for a staff
// member
func (h *AttendanceHandler) Mark(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req attendance.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.attendanceService.Mark(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns attendance records, scoped to the caller's branch for
// branch-level roles
func (h *AttendanceHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter attendance.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	records, total, err := h.attendanceService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}
