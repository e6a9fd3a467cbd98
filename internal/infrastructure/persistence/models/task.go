package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/task"
)

// TaskModel is the persistence model for the Task aggregate root.
// Assignees are stored as jsonb so the availability check can use
// containment queries without a join table.
type TaskModel struct {
	CompanyAggregateModel
	BranchID         uuid.UUID     `gorm:"type:uuid;not null;index"`
	BookingID        *uuid.UUID    `gorm:"type:uuid;index"`
	Title            string        `gorm:"type:varchar(200);not null"`
	Type             task.TaskType `gorm:"type:varchar(30);not null;index"`
	Description      string        `gorm:"type:text"`
	ScheduledDate    time.Time     `gorm:"not null;index"`
	StartTime        string        `gorm:"type:varchar(5)"`
	EndTime          string        `gorm:"type:varchar(5)"`
	RequirementsJSON string        `gorm:"column:requirements;type:jsonb;default:'{}'"`
	AssignedToJSON   string        `gorm:"column:assigned_to;type:jsonb;default:'[]'"`
	Status           task.TaskStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SkipReason       string          `gorm:"type:varchar(500)"`
	SkippedBy        *uuid.UUID      `gorm:"type:uuid"`
	SkippedAt        *time.Time
	CompletedAt      *time.Time
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task entity.
func (m *TaskModel) ToDomain() *task.Task {
	t := &task.Task{
		BranchID:      m.BranchID,
		BookingID:     m.BookingID,
		Title:         m.Title,
		Type:          m.Type,
		Description:   m.Description,
		ScheduledDate: m.ScheduledDate,
		ScheduledTime: task.TimeRange{Start: m.StartTime, End: m.EndTime},
		Status:        m.Status,
		SkipReason:    m.SkipReason,
		SkippedBy:     m.SkippedBy,
		SkippedAt:     m.SkippedAt,
		CompletedAt:   m.CompletedAt,
	}
	fromJSON(m.RequirementsJSON, &t.Requirements)
	fromJSON(m.AssignedToJSON, &t.AssignedTo)
	m.PopulateCompanyAggregateRoot(&t.CompanyAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Task entity.
func (m *TaskModel) FromDomain(t *task.Task) {
	m.FromDomainCompanyAggregateRoot(t.CompanyAggregateRoot)
	m.BranchID = t.BranchID
	m.BookingID = t.BookingID
	m.Title = t.Title
	m.Type = t.Type
	m.Description = t.Description
	m.ScheduledDate = t.ScheduledDate
	m.StartTime = t.ScheduledTime.Start
	m.EndTime = t.ScheduledTime.End
	m.RequirementsJSON = toJSON(t.Requirements, "{}")
	m.AssignedToJSON = toJSON(t.AssignedTo, "[]")
	m.Status = t.Status
	m.SkipReason = t.SkipReason
	m.SkippedBy = t.SkippedBy
	m.SkippedAt = t.SkippedAt
	m.CompletedAt = t.CompletedAt
}

// TaskModelFromDomain creates a new persistence model from a domain Task.
func TaskModelFromDomain(t *task.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}
