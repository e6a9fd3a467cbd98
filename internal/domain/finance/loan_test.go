package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoan_Repayment(t *testing.T) {
	newLoan := func(t *testing.T) *Loan {
		loan, err := NewLoan(uuid.New(), uuid.New(), uuid.New(),
			decimal.NewFromInt(20000), "camera purchase", time.Now())
		require.NoError(t, err)
		return loan
	}

	t.Run("partial repayment keeps loan active", func(t *testing.T) {
		loan := newLoan(t)
		require.NoError(t, loan.RecordRepayment(decimal.NewFromInt(5000)))
		assert.Equal(t, LoanStatusActive, loan.Status)
		assert.True(t, loan.Outstanding().Equal(decimal.NewFromInt(15000)))
	})

	t.Run("full repayment closes the loan", func(t *testing.T) {
		loan := newLoan(t)
		require.NoError(t, loan.RecordRepayment(decimal.NewFromInt(20000)))
		assert.Equal(t, LoanStatusRepaid, loan.Status)
		assert.NotNil(t, loan.ClosedAt)
		assert.True(t, loan.Outstanding().IsZero())
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		loan := newLoan(t)
		assert.Error(t, loan.RecordRepayment(decimal.NewFromInt(25000)))
	})

	t.Run("cannot repay a waived loan", func(t *testing.T) {
		loan := newLoan(t)
		require.NoError(t, loan.Waive())
		assert.Error(t, loan.RecordRepayment(decimal.NewFromInt(100)))
	})
}

func TestNewLoan_Validation(t *testing.T) {
	_, err := NewLoan(uuid.New(), uuid.New(), uuid.Nil, decimal.NewFromInt(1000), "", time.Now())
	assert.Error(t, err)

	_, err = NewLoan(uuid.New(), uuid.New(), uuid.New(), decimal.Zero, "", time.Now())
	assert.Error(t, err)
}

func TestAdvance_Settle(t *testing.T) {
	advance, err := NewAdvance(uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(5000), "festival advance", time.Now())
	require.NoError(t, err)

	require.NoError(t, advance.Settle())
	assert.Equal(t, AdvanceStatusSettled, advance.Status)
	assert.NotNil(t, advance.SettledAt)
	assert.Error(t, advance.Settle())
}

func TestExpense_Validation(t *testing.T) {
	companyID, branchID := uuid.New(), uuid.New()

	t.Run("valid expense", func(t *testing.T) {
		e, err := NewExpense(companyID, branchID, ExpenseCategoryTravel,
			decimal.NewFromInt(1200), "outstation shoot fuel", time.Now())
		require.NoError(t, err)
		assert.Equal(t, ExpenseCategoryTravel, e.Category)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewExpense(companyID, branchID, "GAMBLING", decimal.NewFromInt(100), "x", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(companyID, branchID, ExpenseCategoryRent, decimal.Zero, "x", time.Now())
		assert.Error(t, err)
	})
}

func TestFixedExpense_Terminate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fixed, err := NewFixedExpense(uuid.New(), uuid.New(), ExpenseCategoryRent,
		decimal.NewFromInt(45000), RecurrenceMonthly, start)
	require.NoError(t, err)
	assert.True(t, fixed.IsActive)

	t.Run("end date before start is rejected", func(t *testing.T) {
		assert.Error(t, fixed.Terminate(start.AddDate(0, 0, -1)))
	})

	t.Run("terminates once", func(t *testing.T) {
		require.NoError(t, fixed.Terminate(start.AddDate(1, 0, 0)))
		assert.False(t, fixed.IsActive)
		assert.Error(t, fixed.Terminate(start.AddDate(2, 0, 0)))
	})
}
