package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// Repository defines persistence operations for attendance records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Record, error)
	FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) (*Record, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Record, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}
