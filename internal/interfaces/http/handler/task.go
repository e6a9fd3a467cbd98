package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/application/assignment"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// TaskHandler exposes task endpoints. Auto-assignment runs on booking
// confirmation; these routes cover manual task management and the
// skip escape hatch.
type TaskHandler struct {
	BaseHandler
	taskService       *assignment.TaskService
	assignmentService *assignment.Service
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *assignment.TaskService, assignmentService *assignment.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService, assignmentService: assignmentService}
}

// RegisterRoutes registers task routes
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/:id", h.GetByID)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/assign", h.Assign)
		tasks.PATCH("/:id/status", h.UpdateStatus)
		tasks.POST("/:id/skip", h.Skip)
	}
}

// Create adds a task outside the auto-assignment pipeline
func (h *TaskHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req assignment.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.taskService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single task with its assignees
func (h *TaskHandler) GetByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	resp, err := h.taskService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns tasks, scoped to the caller's branch for branch-level
// roles
func (h *TaskHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter assignment.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	tasks, total, err := h.taskService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tasks, total, filter.Page, filter.PageSize)
}

// Assign manually attaches staff to a task
func (h *TaskHandler) Assign(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req assignment.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.taskService.Assign(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus moves a task through its lifecycle
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req assignment.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.taskService.UpdateStatus(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Skip marks a task skipped with a reason and notifies the client
func (h *TaskHandler) Skip(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req assignment.SkipTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.assignmentService.SkipTask(c.Request.Context(), companyID, id, req.Reason, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
