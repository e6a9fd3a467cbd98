package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
)

// TaskType identifies one stage of the booking work pipeline
type TaskType string

const (
	TypeEquipmentPrep TaskType = "equipment_preparation"
	TypeTravel        TaskType = "travel"
	TypeMainFunction  TaskType = "main_function"
	TypeDataBackup    TaskType = "data_backup"
	TypeOther         TaskType = "other"
)

// IsValid checks if the task type is known
func (t TaskType) IsValid() bool {
	switch t {
	case TypeEquipmentPrep, TypeTravel, TypeMainFunction, TypeDataBackup, TypeOther:
		return true
	}
	return false
}

// String returns the string representation of TaskType
func (t TaskType) String() string {
	return string(t)
}

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "PENDING"
	TaskStatusAssigned TaskStatus = "ASSIGNED"
	// TaskStatusAssignmentFailed marks a task the auto-assignment engine
	// could not find any eligible staff for. It is distinct from pending
	// so that unstaffed tasks surface instead of sitting silently.
	TaskStatusAssignmentFailed TaskStatus = "ASSIGNMENT_FAILED"
	TaskStatusInProgress       TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted        TaskStatus = "COMPLETED"
	TaskStatusCancelled        TaskStatus = "CANCELLED"
	TaskStatusSkipped          TaskStatus = "SKIPPED"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusAssignmentFailed,
		TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled, TaskStatusSkipped:
		return true
	}
	return false
}

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no further transitions
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled || s == TaskStatusSkipped
}

// Requirements captures what a task needs from its assignees
type Requirements struct {
	Skills    []org.Skill `json:"skills"`
	Equipment []string    `json:"equipment"`
}

// Assignee is one staff member attached to a task
type Assignee struct {
	StaffID      uuid.UUID     `json:"staff_id"`
	Role         org.StaffRole `json:"role"`
	AssignedDate time.Time     `json:"assigned_date"`
}

// Task represents a unit of scheduled work aggregate root, generated
// by the auto-assignment engine from a confirmed booking or created
// manually.
type Task struct {
	shared.CompanyAggregateRoot
	BranchID      uuid.UUID    `json:"branch_id"`
	BookingID     *uuid.UUID   `json:"booking_id"`
	Title         string       `json:"title"`
	Type          TaskType     `json:"type"`
	Description   string       `json:"description"`
	ScheduledDate time.Time    `json:"scheduled_date"`
	ScheduledTime TimeRange    `json:"scheduled_time"`
	Requirements  Requirements `json:"requirements"`
	AssignedTo    []Assignee   `json:"assigned_to"`
	Status        TaskStatus   `json:"status"`
	SkipReason    string       `json:"skip_reason"`
	SkippedBy     *uuid.UUID   `json:"skipped_by"`
	SkippedAt     *time.Time   `json:"skipped_at"`
	CompletedAt   *time.Time   `json:"completed_at"`
}

// NewTask creates a new task in pending status
func NewTask(
	companyID, branchID uuid.UUID,
	bookingID *uuid.UUID,
	title string,
	taskType TaskType,
	scheduledDate time.Time,
	scheduledTime TimeRange,
	requirements Requirements,
) (*Task, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	if !taskType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TASK_TYPE", "Task type is not valid")
	}
	if scheduledDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Scheduled date is required")
	}

	return &Task{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		BookingID:            bookingID,
		Title:                title,
		Type:                 taskType,
		ScheduledDate:        scheduledDate,
		ScheduledTime:        scheduledTime,
		Requirements:         requirements,
		Status:               TaskStatusPending,
	}, nil
}

// Assign attaches the selected staff and flips the task to assigned.
// An empty selection marks the task assignment_failed instead.
func (t *Task) Assign(assignees []Assignee) error {
	if t.Status != TaskStatusPending && t.Status != TaskStatusAssignmentFailed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot assign task in %s status", t.Status))
	}
	if len(assignees) == 0 {
		t.Status = TaskStatusAssignmentFailed
		t.Touch()
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(assignees))
	for _, a := range assignees {
		if a.StaffID == uuid.Nil {
			return shared.NewDomainError("INVALID_STAFF", "Assignee staff ID cannot be empty")
		}
		if seen[a.StaffID] {
			return shared.NewDomainError("ALREADY_EXISTS", "Staff member assigned twice to the same task")
		}
		seen[a.StaffID] = true
	}
	t.AssignedTo = assignees
	t.Status = TaskStatusAssigned
	t.Touch()
	return nil
}

// IsAssignedTo returns true if the staff member is on this task
func (t *Task) IsAssignedTo(staffID uuid.UUID) bool {
	for _, a := range t.AssignedTo {
		if a.StaffID == staffID {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether this task blocks the given slot for
// its assignees: same calendar day and overlapping time interval.
func (t *Task) ConflictsWith(date time.Time, slot TimeRange) bool {
	if t.Status.IsTerminal() {
		return false
	}
	y1, m1, d1 := t.ScheduledDate.Date()
	y2, m2, d2 := date.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}
	return t.ScheduledTime.Overlaps(slot)
}

// Start moves the task to in progress
func (t *Task) Start() error {
	if t.Status != TaskStatusAssigned {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start task in %s status", t.Status))
	}
	t.Status = TaskStatusInProgress
	t.Touch()
	return nil
}

// Complete marks the task done
func (t *Task) Complete() error {
	if t.Status != TaskStatusAssigned && t.Status != TaskStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete task in %s status", t.Status))
	}
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// Cancel cancels the task
func (t *Task) Cancel() error {
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel task in %s status", t.Status))
	}
	t.Status = TaskStatusCancelled
	t.Touch()
	return nil
}

// Skip marks the task skipped with a reason. A manual escape hatch
// from the pipeline, not an automatic retry.
func (t *Task) Skip(reason string, skippedBy uuid.UUID) error {
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot skip task in %s status", t.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Skip reason is required")
	}
	now := time.Now()
	t.Status = TaskStatusSkipped
	t.SkipReason = reason
	if skippedBy != uuid.Nil {
		t.SkippedBy = &skippedBy
	}
	t.SkippedAt = &now
	t.UpdatedAt = now
	return nil
}
