// Package company provides per-company query scoping for GORM.
//
// Every company-owned table carries a company_id column. Repositories pin
// their queries to a single company through CompanyScope, so rows belonging
// to other companies can never appear in a result set.
package company

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyScope restricts a query to rows owned by the given company.
// Repositories apply it before any other condition, so the company
// predicate always leads the WHERE clause.
func CompanyScope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
