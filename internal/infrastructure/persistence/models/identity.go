package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	CompanyAggregateModel
	Email             string              `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name              string              `gorm:"type:varchar(100);not null"`
	Phone             string              `gorm:"type:varchar(20)"`
	PasswordHash      string              `gorm:"type:varchar(100);not null"`
	Role              identity.Role       `gorm:"type:varchar(20);not null;index"`
	BranchID          *uuid.UUID          `gorm:"type:uuid;index"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Email:             m.Email,
		Name:              m.Name,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		BranchID:          m.BranchID,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
	m.PopulateCompanyAggregateRoot(&u.CompanyAggregateRoot)
	return u
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainCompanyAggregateRoot(u.CompanyAggregateRoot)
	m.Email = u.Email
	m.Name = u.Name
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.BranchID = u.BranchID
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// CompanyModel is the persistence model for the Company aggregate root.
type CompanyModel struct {
	AggregateModel
	Name    string                 `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email   string                 `gorm:"type:varchar(255);not null"`
	Phone   string                 `gorm:"type:varchar(20)"`
	Address string                 `gorm:"type:text"`
	City    string                 `gorm:"type:varchar(50)"`
	State   string                 `gorm:"type:varchar(50)"`
	GSTIN   string                 `gorm:"type:varchar(15)"`
	Status  identity.CompanyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *identity.Company {
	c := &identity.Company{
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Address: m.Address,
		City:    m.City,
		State:   m.State,
		GSTIN:   m.GSTIN,
		Status:  m.Status,
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	c.Version = m.Version
	return c
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *identity.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.City = c.City
	m.State = c.State
	m.GSTIN = c.GSTIN
	m.Status = c.Status
}

// CompanyModelFromDomain creates a new persistence model from a domain Company.
func CompanyModelFromDomain(c *identity.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
