package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// Repository defines persistence operations for tasks
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Task, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Task, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByBooking returns all tasks generated for a booking
	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]Task, error)

	// FindActiveByStaffAndDate returns non-terminal tasks a staff member
	// is assigned to on the given calendar day, used for the availability
	// conflict check.
	FindActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]Task, error)
}
