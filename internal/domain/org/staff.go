package org

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// Skill represents a staff capability used for task matching
type Skill string

const (
	SkillPhotography       Skill = "photography"
	SkillVideography       Skill = "videography"
	SkillEditing           Skill = "editing"
	SkillDroneOperation    Skill = "drone_operation"
	SkillLighting          Skill = "lighting"
	SkillEquipmentHandling Skill = "equipment_handling"
	SkillDataManagement    Skill = "data_management"
	SkillDriving           Skill = "driving"
	SkillCustomerService   Skill = "customer_service"
)

// IsValid checks if the skill is a known Skill
func (s Skill) IsValid() bool {
	switch s {
	case SkillPhotography, SkillVideography, SkillEditing, SkillDroneOperation,
		SkillLighting, SkillEquipmentHandling, SkillDataManagement,
		SkillDriving, SkillCustomerService:
		return true
	}
	return false
}

// String returns the string representation of Skill
func (s Skill) String() string {
	return string(s)
}

// StaffRole is the role a staff member plays on an assignment,
// derived from their designation
type StaffRole string

const (
	RolePhotographer StaffRole = "photographer"
	RoleVideographer StaffRole = "videographer"
	RoleEditor       StaffRole = "editor"
	RoleDriver       StaffRole = "driver"
	RoleAssistant    StaffRole = "assistant"
)

// StaffStatus represents the employment status of a staff member
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "ACTIVE"
	StaffStatusInactive StaffStatus = "INACTIVE"
	StaffStatusOnLeave  StaffStatus = "ON_LEAVE"
)

// IsValid checks if the status is a valid StaffStatus
func (s StaffStatus) IsValid() bool {
	switch s {
	case StaffStatusActive, StaffStatusInactive, StaffStatusOnLeave:
		return true
	}
	return false
}

// String returns the string representation of StaffStatus
func (s StaffStatus) String() string {
	return string(s)
}

// Performance tracks a staff member's assignment history metrics
type Performance struct {
	Score          float64 `json:"score"`
	CompletedTasks int     `json:"completed_tasks"`
	LateArrivals   int     `json:"late_arrivals"`
}

// Staff represents a staff member aggregate root
type Staff struct {
	shared.CompanyAggregateRoot
	UserID      uuid.UUID   `json:"user_id"`
	BranchID    uuid.UUID   `json:"branch_id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Designation string      `json:"designation"`
	Skills      []Skill     `json:"skills"`
	Status      StaffStatus `json:"status"`
	Performance Performance `json:"performance"`
	IsDeleted   bool        `json:"is_deleted"`
	DeletedAt   *time.Time  `json:"deleted_at"`
}

// NewStaff creates a new staff member
func NewStaff(companyID, branchID, userID uuid.UUID, name, designation string, skills []Skill) (*Staff, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name cannot exceed 100 characters")
	}
	for _, skill := range skills {
		if !skill.IsValid() {
			return nil, shared.NewDomainError("INVALID_SKILL", "Unknown skill: "+skill.String())
		}
	}

	return &Staff{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		UserID:               userID,
		BranchID:             branchID,
		Name:                 name,
		Designation:          designation,
		Skills:               skills,
		Status:               StaffStatusActive,
	}, nil
}

// HasSkill returns true if the staff member has the given skill
func (s *Staff) HasSkill(skill Skill) bool {
	for _, owned := range s.Skills {
		if owned == skill {
			return true
		}
	}
	return false
}

// SkillMatchScore computes the fraction of required skills this staff
// member covers. Returns 1 when nothing is required. The result is
// always in [0, 1].
func (s *Staff) SkillMatchScore(required []Skill) float64 {
	if len(required) == 0 {
		return 1
	}
	matched := 0
	for _, skill := range required {
		if s.HasSkill(skill) {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// PrimaryRole derives the assignment role from the designation.
// The lookup is a keyword match so "Lead Photographer" and
// "photographer" both map to the photographer role.
func (s *Staff) PrimaryRole() StaffRole {
	designation := strings.ToLower(s.Designation)
	switch {
	case strings.Contains(designation, "photo"):
		return RolePhotographer
	case strings.Contains(designation, "video"), strings.Contains(designation, "cinema"):
		return RoleVideographer
	case strings.Contains(designation, "edit"):
		return RoleEditor
	case strings.Contains(designation, "driver"):
		return RoleDriver
	default:
		return RoleAssistant
	}
}

// UpdateSkills replaces the staff member's skill set
func (s *Staff) UpdateSkills(skills []Skill) error {
	for _, skill := range skills {
		if !skill.IsValid() {
			return shared.NewDomainError("INVALID_SKILL", "Unknown skill: "+skill.String())
		}
	}
	s.Skills = skills
	s.Touch()
	return nil
}

// UpdateDesignation changes the staff member's designation
func (s *Staff) UpdateDesignation(designation string) error {
	if designation == "" {
		return shared.NewDomainError("INVALID_DESIGNATION", "Designation cannot be empty")
	}
	s.Designation = designation
	s.Touch()
	return nil
}

// TransferToBranch moves the staff member to another branch
func (s *Staff) TransferToBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	s.BranchID = branchID
	s.Touch()
	return nil
}

// RecordTaskCompletion increments the completed task counter
func (s *Staff) RecordTaskCompletion() {
	s.Performance.CompletedTasks++
	s.Touch()
}

// RecordLateArrival increments the late arrival counter
func (s *Staff) RecordLateArrival() {
	s.Performance.LateArrivals++
	s.Touch()
}

// SetPerformanceScore sets the performance score
func (s *Staff) SetPerformanceScore(score float64) error {
	if score < 0 || score > 100 {
		return shared.NewDomainError("INVALID_SCORE", "Performance score must be between 0 and 100")
	}
	s.Performance.Score = score
	s.Touch()
	return nil
}

// Deactivate marks the staff member inactive
func (s *Staff) Deactivate() {
	s.Status = StaffStatusInactive
	s.Touch()
}

// Activate marks the staff member active
func (s *Staff) Activate() error {
	if s.IsDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a deleted staff member")
	}
	s.Status = StaffStatusActive
	s.Touch()
	return nil
}

// MarkDeleted soft deletes the staff member
func (s *Staff) MarkDeleted() {
	now := time.Now()
	s.IsDeleted = true
	s.DeletedAt = &now
	s.Status = StaffStatusInactive
	s.UpdatedAt = now
}

// IsAvailableForWork returns true if the staff member can take assignments
func (s *Staff) IsAvailableForWork() bool {
	return s.Status == StaffStatusActive && !s.IsDeleted
}
