package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/infrastructure/persistence/company"
)

// scopeCompany pins a query to a single company's rows. The scope is
// applied immediately rather than through db.Scopes, so the company
// predicate is added before any condition chained after it.
func scopeCompany(db *gorm.DB, companyID uuid.UUID) *gorm.DB {
	return company.CompanyScope(companyID)(db)
}
