package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*User, error)
	// FindByEmail looks up a user across companies, for login
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]User, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByName(ctx context.Context, name string) (*Company, error)
	Save(ctx context.Context, company *Company) error
}
