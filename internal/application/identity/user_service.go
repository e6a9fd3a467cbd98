package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/identity"
	"github.com/lensflow/backend/internal/domain/shared"
)

// UserService handles user administration within a company
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user administration service
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create adds a user to the company
func (s *UserService) Create(ctx context.Context, companyID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(companyID, req.Email, req.Name, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil {
		if err := user.AssignBranch(*req.BranchID); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))
	return ToUserResponse(user), nil
}

// GetByID fetches a user within the company
func (s *UserService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List returns users in the company with the total count
func (s *UserService) List(ctx context.Context, companyID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	f := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Role != "" {
		f.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	users, err := s.users.FindAllForCompany(ctx, companyID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.CountForCompany(ctx, companyID, f)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// Update applies a partial update to a user
func (s *UserService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
		}
		user.Name = *req.Name
		user.Touch()
		user.IncrementVersion()
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil {
		if err := user.AssignBranch(*req.BranchID); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ResetPassword sets a new password without the old one (admin reset)
func (s *UserService) ResetPassword(ctx context.Context, companyID, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.users.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

// Deactivate disables a user's account
func (s *UserService) Deactivate(ctx context.Context, companyID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Activate restores a deactivated or locked user
func (s *UserService) Activate(ctx context.Context, companyID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.users.FindByIDForCompany(ctx, companyID, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
