package org

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/org"
)

// =============================================================================
// Branch DTOs
// =============================================================================

// CreateBranchRequest represents a request to create a new branch
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Code    string `json:"code" binding:"required,min=1,max=20"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UpdateBranchRequest represents a request to update a branch
type UpdateBranchRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// RevenueBreakdownResponse is the denormalized revenue cache in API responses
type RevenueBreakdownResponse struct {
	Invoices   decimal.Decimal `json:"invoices"`
	Bookings   decimal.Decimal `json:"bookings"`
	Quotations decimal.Decimal `json:"quotations"`
	Total      decimal.Decimal `json:"total"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID            uuid.UUID                `json:"id"`
	CompanyID     uuid.UUID                `json:"company_id"`
	Name          string                   `json:"name"`
	Code          string                   `json:"code"`
	Address       string                   `json:"address"`
	Phone         string                   `json:"phone"`
	Status        string                   `json:"status"`
	EmployeeCount int                      `json:"employee_count"`
	Revenue       RevenueBreakdownResponse `json:"revenue"`
	RevenueAsOf   *time.Time               `json:"revenue_as_of"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// BranchListFilter holds list query parameters for branches
type BranchListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// ToBranchResponse maps a branch aggregate to its response shape
func ToBranchResponse(b *org.Branch) BranchResponse {
	return BranchResponse{
		ID:            b.ID,
		CompanyID:     b.CompanyID,
		Name:          b.Name,
		Code:          b.Code,
		Address:       b.Address,
		Phone:         b.Phone,
		Status:        b.Status.String(),
		EmployeeCount: b.EmployeeCount,
		Revenue: RevenueBreakdownResponse{
			Invoices:   b.Revenue.Invoices,
			Bookings:   b.Revenue.Bookings,
			Quotations: b.Revenue.Quotations,
			Total:      b.Revenue.Total,
		},
		RevenueAsOf: b.RevenueAsOf,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBranchResponses maps a slice of branches
func ToBranchResponses(branches []org.Branch) []BranchResponse {
	responses := make([]BranchResponse, len(branches))
	for i := range branches {
		responses[i] = ToBranchResponse(&branches[i])
	}
	return responses
}

// =============================================================================
// Staff DTOs
// =============================================================================

// CreateStaffRequest represents a request to create a staff member
type CreateStaffRequest struct {
	BranchID    uuid.UUID `json:"branch_id" binding:"required"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name" binding:"required,min=1,max=100"`
	Phone       string    `json:"phone" binding:"max=50"`
	Email       string    `json:"email" binding:"omitempty,email,max=200"`
	Designation string    `json:"designation" binding:"required,max=100"`
	Skills      []string  `json:"skills"`
}

// UpdateStaffRequest represents a request to update a staff member
type UpdateStaffRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Phone       *string    `json:"phone" binding:"omitempty,max=50"`
	Email       *string    `json:"email" binding:"omitempty,email,max=200"`
	Designation *string    `json:"designation" binding:"omitempty,max=100"`
	Skills      []string   `json:"skills"`
	BranchID    *uuid.UUID `json:"branch_id"`
	Status      *string    `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE"`
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID             uuid.UUID  `json:"id"`
	CompanyID      uuid.UUID  `json:"company_id"`
	BranchID       uuid.UUID  `json:"branch_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Designation    string     `json:"designation"`
	Role           string     `json:"role"`
	Skills         []string   `json:"skills"`
	Status         string     `json:"status"`
	Score          float64    `json:"score"`
	CompletedTasks int        `json:"completed_tasks"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// StaffListFilter holds list query parameters for staff
type StaffListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	BranchID string `form:"branch_id"`
	Status   string `form:"status"`
	Skill    string `form:"skill"`
}

// ToStaffResponse maps a staff aggregate to its response shape
func ToStaffResponse(s *org.Staff) StaffResponse {
	skills := make([]string, len(s.Skills))
	for i, skill := range s.Skills {
		skills[i] = skill.String()
	}
	return StaffResponse{
		ID:             s.ID,
		CompanyID:      s.CompanyID,
		BranchID:       s.BranchID,
		UserID:         s.UserID,
		Name:           s.Name,
		Phone:          s.Phone,
		Email:          s.Email,
		Designation:    s.Designation,
		Role:           string(s.PrimaryRole()),
		Skills:         skills,
		Status:         s.Status.String(),
		Score:          s.Performance.Score,
		CompletedTasks: s.Performance.CompletedTasks,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		DeletedAt:      s.DeletedAt,
	}
}

// ToStaffResponses maps a slice of staff members
func ToStaffResponses(staff []org.Staff) []StaffResponse {
	responses := make([]StaffResponse, len(staff))
	for i := range staff {
		responses[i] = ToStaffResponse(&staff[i])
	}
	return responses
}

// parseSkills converts skill strings to the domain type
func parseSkills(raw []string) []org.Skill {
	skills := make([]org.Skill, len(raw))
	for i, s := range raw {
		skills[i] = org.Skill(s)
	}
	return skills
}
