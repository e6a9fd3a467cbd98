package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, role Role) *User {
	t.Helper()
	user, err := NewUser(uuid.New(), "priya@lensflow.in", "Priya Nair", "studio1234", role)
	require.NoError(t, err)
	return user
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user := newTestUser(t, RoleStaff)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Equal(t, "priya@lensflow.in", user.Email)
		assert.NotEqual(t, "studio1234", user.PasswordHash)
		assert.True(t, user.VerifyPassword("studio1234"))
		assert.False(t, user.VerifyPassword("wrong1234"))
		assert.NotNil(t, user.PasswordChangedAt)
	})

	t.Run("normalizes email casing", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "  Priya@LensFlow.IN ", "Priya Nair", "studio1234", RoleStaff)
		require.NoError(t, err)
		assert.Equal(t, "priya@lensflow.in", user.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "not-an-email", "Priya Nair", "studio1234", RoleStaff)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "priya@lensflow.in", "Priya Nair", "studio1234", Role("intern"))
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "priya@lensflow.in", "Priya Nair", "abc1", RoleStaff)
		assert.Error(t, err)
	})

	t.Run("rejects password without a number", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "priya@lensflow.in", "Priya Nair", "onlyletters", RoleStaff)
		assert.Error(t, err)
	})
}

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, RoleChairman.AtLeast(RoleCompanyAdmin))
	assert.True(t, RoleCompanyAdmin.AtLeast(RoleBranchHead))
	assert.True(t, RoleBranchHead.AtLeast(RoleStaff))
	assert.False(t, RoleStaff.AtLeast(RoleBranchHead))
	assert.True(t, RoleStaff.AtLeast(RoleStaff))
	assert.False(t, Role("intern").IsValid())
}

func TestUser_AssignBranch(t *testing.T) {
	t.Run("branch head gets branch scope", func(t *testing.T) {
		user := newTestUser(t, RoleBranchHead)
		branchID := uuid.New()
		require.NoError(t, user.AssignBranch(branchID))
		require.NotNil(t, user.BranchID)
		assert.Equal(t, branchID, *user.BranchID)
	})

	t.Run("company admin cannot be branch scoped", func(t *testing.T) {
		user := newTestUser(t, RoleCompanyAdmin)
		err := user.AssignBranch(uuid.New())
		assert.Error(t, err)
		assert.Nil(t, user.BranchID)
	})

	t.Run("promotion to company role clears branch", func(t *testing.T) {
		user := newTestUser(t, RoleBranchHead)
		require.NoError(t, user.AssignBranch(uuid.New()))
		require.NoError(t, user.ChangeRole(RoleCompanyAdmin))
		assert.Nil(t, user.BranchID)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user := newTestUser(t, RoleStaff)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := user.ChangePassword("wrong1234", "newpass123")
		assert.Error(t, err)
		assert.True(t, user.VerifyPassword("studio1234"))
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("studio1234", "newpass123"))
		assert.True(t, user.VerifyPassword("newpass123"))
		assert.False(t, user.VerifyPassword("studio1234"))
	})
}

func TestUser_LoginTracking(t *testing.T) {
	t.Run("success resets failure counter", func(t *testing.T) {
		user := newTestUser(t, RoleStaff)
		user.FailedAttempts = 3
		user.RecordLoginSuccess("10.0.0.5")
		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, "10.0.0.5", user.LastLoginIP)
		require.NotNil(t, user.LastLoginAt)
	})

	t.Run("locks after max attempts", func(t *testing.T) {
		user := newTestUser(t, RoleStaff)
		locked := false
		for i := 0; i < 5; i++ {
			locked = user.RecordLoginFailure(5, 30*time.Minute)
		}
		assert.True(t, locked)
		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock allows login again", func(t *testing.T) {
		user := newTestUser(t, RoleStaff)
		require.NoError(t, user.Lock(time.Minute))
		past := time.Now().Add(-time.Second)
		user.LockedUntil = &past
		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("unlock restores active status", func(t *testing.T) {
		user := newTestUser(t, RoleStaff)
		require.NoError(t, user.Lock(30*time.Minute))
		require.NoError(t, user.Unlock())
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.CanLogin())
	})
}

func TestUser_Deactivate(t *testing.T) {
	user := newTestUser(t, RoleStaff)
	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())

	err := user.Deactivate()
	assert.Error(t, err)

	err = user.Lock(time.Minute)
	assert.Error(t, err)

	require.NoError(t, user.Activate())
	assert.True(t, user.CanLogin())
}

func TestNewCompany(t *testing.T) {
	t.Run("creates active company", func(t *testing.T) {
		company, err := NewCompany("Lens & Light Studios", "office@lenslight.in")
		require.NoError(t, err)
		assert.Equal(t, CompanyStatusActive, company.Status)
		assert.True(t, company.IsActive())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCompany("", "office@lenslight.in")
		assert.Error(t, err)
	})

	t.Run("suspend blocks company", func(t *testing.T) {
		company, err := NewCompany("Lens & Light Studios", "")
		require.NoError(t, err)
		require.NoError(t, company.Suspend())
		assert.False(t, company.IsActive())
		assert.Error(t, company.Suspend())
		require.NoError(t, company.Reactivate())
		assert.True(t, company.IsActive())
	})

	t.Run("gstin must be 15 characters", func(t *testing.T) {
		company, err := NewCompany("Lens & Light Studios", "")
		require.NoError(t, err)
		assert.Error(t, company.SetGSTIN("SHORT"))
		require.NoError(t, company.SetGSTIN("29ABCDE1234F1Z5"))
		assert.Equal(t, "29ABCDE1234F1Z5", company.GSTIN)
	})
}
