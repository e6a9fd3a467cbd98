package org

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates branch with valid inputs", func(t *testing.T) {
		branch, err := NewBranch(companyID, "Mumbai Studio", "MUM01", "Andheri West, Mumbai")
		require.NoError(t, err)
		assert.Equal(t, companyID, branch.CompanyID)
		assert.Equal(t, "Mumbai Studio", branch.Name)
		assert.Equal(t, BranchStatusActive, branch.Status)
		assert.True(t, branch.Revenue.Total.IsZero())
		assert.True(t, branch.Revenue.IsConsistent())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBranch(companyID, "", "MUM01", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewBranch(companyID, "Mumbai Studio", "", "")
		assert.Error(t, err)
	})
}

func TestNewRevenueBreakdown(t *testing.T) {
	t.Run("total is derived from components", func(t *testing.T) {
		b := NewRevenueBreakdown(
			decimal.NewFromInt(5000),
			decimal.NewFromInt(10000),
			decimal.NewFromInt(2500),
		)
		assert.True(t, b.Total.Equal(decimal.NewFromInt(17500)))
		assert.True(t, b.IsConsistent())
	})

	t.Run("zero breakdown is consistent", func(t *testing.T) {
		b := ZeroRevenueBreakdown()
		assert.True(t, b.Total.IsZero())
		assert.True(t, b.IsConsistent())
	})
}

func TestBranch_ApplyRevenueBreakdown(t *testing.T) {
	branch, err := NewBranch(uuid.New(), "Delhi Studio", "DEL01", "")
	require.NoError(t, err)

	breakdown := NewRevenueBreakdown(
		decimal.NewFromInt(1000),
		decimal.NewFromInt(2000),
		decimal.NewFromInt(500),
	)
	branch.ApplyRevenueBreakdown(breakdown)

	assert.True(t, branch.Revenue.Total.Equal(decimal.NewFromInt(3500)))
	require.NotNil(t, branch.RevenueAsOf)

	// recompute overwrites unconditionally
	branch.ApplyRevenueBreakdown(ZeroRevenueBreakdown())
	assert.True(t, branch.Revenue.Total.IsZero())
}

func TestBranch_SetEmployeeCount(t *testing.T) {
	branch, err := NewBranch(uuid.New(), "Pune Studio", "PUN01", "")
	require.NoError(t, err)

	require.NoError(t, branch.SetEmployeeCount(12))
	assert.Equal(t, 12, branch.EmployeeCount)

	assert.Error(t, branch.SetEmployeeCount(-1))
}

func TestBranch_StatusTransitions(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		branch, _ := NewBranch(uuid.New(), "Jaipur Studio", "JAI01", "")
		require.NoError(t, branch.Deactivate())
		assert.False(t, branch.IsActive())
		require.NoError(t, branch.Activate())
		assert.True(t, branch.IsActive())
	})

	t.Run("closed branch cannot be reopened", func(t *testing.T) {
		branch, _ := NewBranch(uuid.New(), "Jaipur Studio", "JAI01", "")
		require.NoError(t, branch.Close())
		assert.Error(t, branch.Activate())
		assert.Error(t, branch.Deactivate())
		assert.Error(t, branch.Close())
	})
}
