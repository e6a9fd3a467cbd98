package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/org"
)

// BranchModel is the persistence model for the Branch aggregate root.
// The revenue breakdown is denormalized into plain columns so the
// finance views can read it without JSON extraction.
type BranchModel struct {
	CompanyAggregateModel
	Name              string          `gorm:"type:varchar(100);not null"`
	Code              string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_branch_company_code,priority:2"`
	Address           string          `gorm:"type:text"`
	Phone             string          `gorm:"type:varchar(20)"`
	EmployeeCount     int             `gorm:"not null;default:0"`
	RevenueInvoices   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RevenueBookings   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RevenueQuotations decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RevenueTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RevenueAsOf       *time.Time
	Status            org.BranchStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch entity.
func (m *BranchModel) ToDomain() *org.Branch {
	b := &org.Branch{
		Name:          m.Name,
		Code:          m.Code,
		Address:       m.Address,
		Phone:         m.Phone,
		EmployeeCount: m.EmployeeCount,
		Revenue: org.RevenueBreakdown{
			Invoices:   m.RevenueInvoices,
			Bookings:   m.RevenueBookings,
			Quotations: m.RevenueQuotations,
			Total:      m.RevenueTotal,
		},
		RevenueAsOf: m.RevenueAsOf,
		Status:      m.Status,
	}
	m.PopulateCompanyAggregateRoot(&b.CompanyAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Branch entity.
func (m *BranchModel) FromDomain(b *org.Branch) {
	m.FromDomainCompanyAggregateRoot(b.CompanyAggregateRoot)
	m.Name = b.Name
	m.Code = b.Code
	m.Address = b.Address
	m.Phone = b.Phone
	m.EmployeeCount = b.EmployeeCount
	m.RevenueInvoices = b.Revenue.Invoices
	m.RevenueBookings = b.Revenue.Bookings
	m.RevenueQuotations = b.Revenue.Quotations
	m.RevenueTotal = b.Revenue.Total
	m.RevenueAsOf = b.RevenueAsOf
	m.Status = b.Status
}

// BranchModelFromDomain creates a new persistence model from a domain Branch.
func BranchModelFromDomain(b *org.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// StaffModel is the persistence model for the Staff aggregate root.
type StaffModel struct {
	CompanyAggregateModel
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(100);not null"`
	Phone            string    `gorm:"type:varchar(20)"`
	Email            string    `gorm:"type:varchar(255)"`
	Designation      string    `gorm:"type:varchar(100)"`
	Skills           string    `gorm:"type:jsonb;default:'[]'"`
	Status           org.StaffStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	PerformanceScore float64         `gorm:"not null;default:0"`
	CompletedTasks   int             `gorm:"not null;default:0"`
	LateArrivals     int             `gorm:"not null;default:0"`
	IsDeleted        bool            `gorm:"not null;default:false;index"`
	DeletedAt        *time.Time
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff entity.
func (m *StaffModel) ToDomain() *org.Staff {
	s := &org.Staff{
		UserID:      m.UserID,
		BranchID:    m.BranchID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Designation: m.Designation,
		Status:      m.Status,
		Performance: org.Performance{
			Score:          m.PerformanceScore,
			CompletedTasks: m.CompletedTasks,
			LateArrivals:   m.LateArrivals,
		},
		IsDeleted: m.IsDeleted,
		DeletedAt: m.DeletedAt,
	}
	fromJSON(m.Skills, &s.Skills)
	m.PopulateCompanyAggregateRoot(&s.CompanyAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Staff entity.
func (m *StaffModel) FromDomain(s *org.Staff) {
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	m.UserID = s.UserID
	m.BranchID = s.BranchID
	m.Name = s.Name
	m.Phone = s.Phone
	m.Email = s.Email
	m.Designation = s.Designation
	m.Skills = toJSON(s.Skills, "[]")
	m.Status = s.Status
	m.PerformanceScore = s.Performance.Score
	m.CompletedTasks = s.Performance.CompletedTasks
	m.LateArrivals = s.Performance.LateArrivals
	m.IsDeleted = s.IsDeleted
	m.DeletedAt = s.DeletedAt
}

// StaffModelFromDomain creates a new persistence model from a domain Staff.
func StaffModelFromDomain(s *org.Staff) *StaffModel {
	m := &StaffModel{}
	m.FromDomain(s)
	return m
}
