package assignment

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/domain/task"
)

// CreateTaskRequest represents a request to create a task manually
type CreateTaskRequest struct {
	BranchID      uuid.UUID  `json:"branch_id" binding:"required"`
	BookingID     *uuid.UUID `json:"booking_id"`
	Title         string     `json:"title" binding:"required,max=200"`
	Type          string     `json:"type" binding:"required"`
	Description   string     `json:"description" binding:"max=1000"`
	ScheduledDate time.Time  `json:"scheduled_date" binding:"required"`
	StartTime     string     `json:"start_time" binding:"required"`
	EndTime       string     `json:"end_time" binding:"required"`
	Skills        []string   `json:"skills"`
	Equipment     []string   `json:"equipment"`
}

// UpdateTaskStatusRequest moves a task through its lifecycle
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=IN_PROGRESS COMPLETED CANCELLED"`
}

// SkipTaskRequest marks a task skipped with a reason
type SkipTaskRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// AssignTaskRequest manually attaches staff to a task
type AssignTaskRequest struct {
	StaffIDs []uuid.UUID `json:"staff_ids" binding:"required,min=1"`
}

// AssigneeResponse is one staff member on a task
type AssigneeResponse struct {
	StaffID      uuid.UUID `json:"staff_id"`
	Role         string    `json:"role"`
	AssignedDate time.Time `json:"assigned_date"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID            uuid.UUID          `json:"id"`
	CompanyID     uuid.UUID          `json:"company_id"`
	BranchID      uuid.UUID          `json:"branch_id"`
	BookingID     *uuid.UUID         `json:"booking_id,omitempty"`
	Title         string             `json:"title"`
	Type          string             `json:"type"`
	Description   string             `json:"description"`
	ScheduledDate time.Time          `json:"scheduled_date"`
	StartTime     string             `json:"start_time"`
	EndTime       string             `json:"end_time"`
	Skills        []string           `json:"skills"`
	Equipment     []string           `json:"equipment"`
	AssignedTo    []AssigneeResponse `json:"assigned_to"`
	Status        string             `json:"status"`
	SkipReason    string             `json:"skip_reason,omitempty"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// TaskListFilter holds list query parameters for tasks
type TaskListFilter struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	BranchID  string `form:"branch_id"`
	BookingID string `form:"booking_id"`
	Status    string `form:"status"`
	Type      string `form:"type"`
}

// AssignmentResult is the outcome of the auto-assignment pipeline
// for one synthesized task. A failed task still appears in the batch
// with its error recorded.
type AssignmentResult struct {
	Task  *TaskResponse `json:"task,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ToTaskResponse maps a task aggregate to its response shape
func ToTaskResponse(t *task.Task) TaskResponse {
	skills := make([]string, len(t.Requirements.Skills))
	for i, skill := range t.Requirements.Skills {
		skills[i] = skill.String()
	}
	assignees := make([]AssigneeResponse, len(t.AssignedTo))
	for i, a := range t.AssignedTo {
		assignees[i] = AssigneeResponse{
			StaffID:      a.StaffID,
			Role:         string(a.Role),
			AssignedDate: a.AssignedDate,
		}
	}
	return TaskResponse{
		ID:            t.ID,
		CompanyID:     t.CompanyID,
		BranchID:      t.BranchID,
		BookingID:     t.BookingID,
		Title:         t.Title,
		Type:          t.Type.String(),
		Description:   t.Description,
		ScheduledDate: t.ScheduledDate,
		StartTime:     t.ScheduledTime.Start,
		EndTime:       t.ScheduledTime.End,
		Skills:        skills,
		Equipment:     t.Requirements.Equipment,
		AssignedTo:    assignees,
		Status:        t.Status.String(),
		SkipReason:    t.SkipReason,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTaskResponses maps a slice of tasks
func ToTaskResponses(tasks []task.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToTaskResponse(&tasks[i])
	}
	return responses
}

// parseSkills validates and converts raw skill names
func parseSkills(raw []string) ([]org.Skill, error) {
	skills := make([]org.Skill, len(raw))
	for i, name := range raw {
		skill := org.Skill(name)
		if !skill.IsValid() {
			return nil, shared.NewDomainError("INVALID_SKILL", "Unknown skill: "+name)
		}
		skills[i] = skill
	}
	return skills, nil
}
