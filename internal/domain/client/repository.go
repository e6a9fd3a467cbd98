package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// Repository defines persistence operations for clients
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Client, error)
	FindByPhone(ctx context.Context, companyID uuid.UUID, phone string) (*Client, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Client, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
