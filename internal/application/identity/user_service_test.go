package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/identity"
	"github.com/lensflow/backend/internal/domain/shared"
)

type userFixture struct {
	users   *MockUserRepository
	service *UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{users: new(MockUserRepository)}
	f.service = NewUserService(f.users, zap.NewNop())
	return f
}

func TestUserCreate_BranchScopedStaff(t *testing.T) {
	f := newUserFixture()
	companyID := uuid.New()
	branchID := uuid.New()

	f.users.On("FindByEmail", mock.Anything, "ravi@lenslight.in").Return(nil, shared.ErrNotFound)

	var saved *identity.User
	f.users.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*identity.User)
	}).Return(nil)

	resp, err := f.service.Create(context.Background(), companyID, CreateUserRequest{
		Name:     "Ravi Sharma",
		Email:    "ravi@lenslight.in",
		Password: "camera9876",
		Role:     "staff",
		BranchID: &branchID,
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, companyID, saved.CompanyID)
	require.NotNil(t, saved.BranchID)
	assert.Equal(t, branchID, *saved.BranchID)
	assert.Equal(t, "staff", resp.Role)
}

func TestUserCreate_CompanyAdminRejectsBranchScope(t *testing.T) {
	f := newUserFixture()
	branchID := uuid.New()

	f.users.On("FindByEmail", mock.Anything, "ravi@lenslight.in").Return(nil, shared.ErrNotFound)

	_, err := f.service.Create(context.Background(), uuid.New(), CreateUserRequest{
		Name:     "Ravi Sharma",
		Email:    "ravi@lenslight.in",
		Password: "camera9876",
		Role:     "company_admin",
		BranchID: &branchID,
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SCOPE", domainErr.Code)
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserCreate_DuplicateEmailRejected(t *testing.T) {
	f := newUserFixture()
	existing, err := identity.NewUser(uuid.New(), "ravi@lenslight.in", "Ravi Sharma", "camera9876", identity.RoleStaff)
	require.NoError(t, err)

	f.users.On("FindByEmail", mock.Anything, "ravi@lenslight.in").Return(existing, nil)

	_, err = f.service.Create(context.Background(), uuid.New(), CreateUserRequest{
		Name:     "Ravi Sharma",
		Email:    "ravi@lenslight.in",
		Password: "camera9876",
		Role:     "staff",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestUserUpdate_PromotionClearsBranch(t *testing.T) {
	f := newUserFixture()
	companyID := uuid.New()
	user, err := identity.NewUser(companyID, "ravi@lenslight.in", "Ravi Sharma", "camera9876", identity.RoleBranchHead)
	require.NoError(t, err)
	require.NoError(t, user.AssignBranch(uuid.New()))

	f.users.On("FindByIDForCompany", mock.Anything, companyID, user.ID).Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	role := "company_admin"
	resp, err := f.service.Update(context.Background(), companyID, user.ID, UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "company_admin", resp.Role)
	assert.Nil(t, resp.BranchID)
}

func TestUserResetPassword_AdminOverride(t *testing.T) {
	f := newUserFixture()
	companyID := uuid.New()
	user, err := identity.NewUser(companyID, "ravi@lenslight.in", "Ravi Sharma", "camera9876", identity.RoleStaff)
	require.NoError(t, err)

	f.users.On("FindByIDForCompany", mock.Anything, companyID, user.ID).Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	require.NoError(t, f.service.ResetPassword(context.Background(), companyID, user.ID, ResetPasswordRequest{
		NewPassword: "tripod4567",
	}))
	assert.True(t, user.VerifyPassword("tripod4567"))
	assert.False(t, user.VerifyPassword("camera9876"))
}

func TestUserDeactivate_ThenActivate(t *testing.T) {
	f := newUserFixture()
	companyID := uuid.New()
	user, err := identity.NewUser(companyID, "ravi@lenslight.in", "Ravi Sharma", "camera9876", identity.RoleStaff)
	require.NoError(t, err)

	f.users.On("FindByIDForCompany", mock.Anything, companyID, user.ID).Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	resp, err := f.service.Deactivate(context.Background(), companyID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "DEACTIVATED", resp.Status)

	resp, err = f.service.Activate(context.Background(), companyID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)
}

func TestUserList_DefaultsPaginationAndMapsFilters(t *testing.T) {
	f := newUserFixture()
	companyID := uuid.New()

	var captured shared.Filter
	f.users.On("FindAllForCompany", mock.Anything, companyID, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(2).(shared.Filter)
	}).Return([]identity.User{}, nil)
	f.users.On("CountForCompany", mock.Anything, companyID, mock.Anything).Return(int64(0), nil)

	_, _, err := f.service.List(context.Background(), companyID, UserListFilter{Role: "branch_head"})
	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PageSize)
	assert.Equal(t, "branch_head", captured.Filters["role"])
}
