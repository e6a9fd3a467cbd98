package client

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/shared"
)

// Service handles client management operations
type Service struct {
	repo client.Repository
}

// NewService creates a new client Service
func NewService(repo client.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new client
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	// Phone numbers are unique per company
	_, err := s.repo.FindByPhone(ctx, companyID, req.Phone)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this phone number already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err := client.NewClient(companyID, req.BranchID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	c.Email = req.Email
	c.Address = req.Address
	c.Notes = req.Notes
	if req.Language != "" {
		if err := c.SetLanguage(client.Language(req.Language)); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// GetByID retrieves a client scoped to the company
func (s *Service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*ClientResponse, error) {
	c, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// List retrieves clients with filtering and pagination
func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter ClientListFilter) ([]ClientResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	clients, err := s.repo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToClientResponses(clients), total, nil
}

// Update applies partial changes to a client
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	c, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
		}
		c.Name = *req.Name
		c.Touch()
	}
	if req.Phone != nil || req.Email != nil || req.Address != nil {
		phone, email, address := c.Phone, c.Email, c.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := c.UpdateContact(phone, email, address); err != nil {
			return nil, err
		}
	}
	if req.Language != nil {
		if err := c.SetLanguage(client.Language(*req.Language)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
		c.Touch()
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// Promote converts a lead into an active client
func (s *Service) Promote(ctx context.Context, companyID, id uuid.UUID) (*ClientResponse, error) {
	c, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Promote(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// Deactivate marks the client inactive
func (s *Service) Deactivate(ctx context.Context, companyID, id uuid.UUID) (*ClientResponse, error) {
	c, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	c.Deactivate()
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// Delete removes a client
func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	c, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}
