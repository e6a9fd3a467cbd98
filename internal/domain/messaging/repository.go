package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// Repository defines persistence operations for notifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Notification, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Notification, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, notification *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByToken resolves a smart link token to its notification
	FindByToken(ctx context.Context, token string) (*Notification, error)

	// FindPending returns pending notifications with retry budget left
	FindPending(ctx context.Context, limit int) ([]Notification, error)

	// ExistsSameDay reports whether a notification of the given type was
	// already created for the recipient on the given calendar day. Used
	// by the reminder sweeps to stay idempotent across ticks.
	ExistsSameDay(ctx context.Context, recipientID uuid.UUID, notifType NotificationType, day time.Time) (bool, error)

	// DeactivateExpiredLinks retires active smart links whose expiry has
	// passed and returns how many were affected.
	DeactivateExpiredLinks(ctx context.Context, asOf time.Time) (int64, error)
}
