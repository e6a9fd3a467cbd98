package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/client"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	CompanyAggregateModel
	BranchID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name          string              `gorm:"type:varchar(100);not null"`
	Phone         string              `gorm:"type:varchar(20);not null;index"`
	Email         string              `gorm:"type:varchar(255)"`
	Address       string              `gorm:"type:text"`
	Language      client.Language     `gorm:"type:varchar(5);not null;default:'hi'"`
	Status        client.ClientStatus `gorm:"type:varchar(20);not null;default:'LEAD';index"`
	LastContactAt *time.Time
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *client.Client {
	c := &client.Client{
		BranchID:      m.BranchID,
		Name:          m.Name,
		Phone:         m.Phone,
		Email:         m.Email,
		Address:       m.Address,
		Language:      m.Language,
		Status:        m.Status,
		LastContactAt: m.LastContactAt,
		Notes:         m.Notes,
	}
	m.PopulateCompanyAggregateRoot(&c.CompanyAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *client.Client) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.BranchID = c.BranchID
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Language = c.Language
	m.Status = c.Status
	m.LastContactAt = c.LastContactAt
	m.Notes = c.Notes
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *client.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}
