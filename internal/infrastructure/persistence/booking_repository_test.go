package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/shared"
)

// newMockBookingRepository creates a GormBookingRepository with a mocked SQL connection
func newMockBookingRepository(t *testing.T) (*GormBookingRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBookingRepository(gormDB), mock, mockDB
}

func TestGormBookingRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for missing booking", func(t *testing.T) {
		repo, mock, mockDB := newMockBookingRepository(t)
		defer mockDB.Close()

		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(bookingID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		b, err := repo.FindByID(context.Background(), bookingID)

		assert.Nil(t, b)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_SumCompletedRevenueByBranch(t *testing.T) {
	t.Run("resolves the total across legacy column shapes", func(t *testing.T) {
		repo, mock, mockDB := newMockBookingRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(COALESCE\(total_amount, final_amount, total, 0\)\), 0\) AS total FROM "bookings" WHERE status = \$1 AND \(branch_id = \$2 OR booking_branch_id = \$3\)`).
			WithArgs("COMPLETED", branchID, branchID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("175000"))

		total, err := repo.SumCompletedRevenueByBranch(context.Background(), branchID)

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(175000).Equal(total))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty branch sums to zero", func(t *testing.T) {
		repo, mock, mockDB := newMockBookingRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(COALESCE\(total_amount, final_amount, total, 0\)\), 0\) AS total FROM "bookings"`).
			WithArgs("COMPLETED", branchID, branchID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

		total, err := repo.SumCompletedRevenueByBranch(context.Background(), branchID)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_RevenueByBranch(t *testing.T) {
	t.Run("groups completed revenue per branch", func(t *testing.T) {
		repo, mock, mockDB := newMockBookingRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		branchA := uuid.New()
		branchB := uuid.New()

		rows := sqlmock.NewRows([]string{"branch_id", "total_revenue", "count"}).
			AddRow(branchA, "250000", 5).
			AddRow(branchB, "90000", 2)

		mock.ExpectQuery(`SELECT branch_id, COALESCE\(SUM\(COALESCE\(total_amount, final_amount, total, 0\)\), 0\) AS total_revenue, COUNT\(\*\) AS count FROM "bookings" WHERE company_id = \$1 AND status = \$2 GROUP BY "branch_id"`).
			WithArgs(companyID, "COMPLETED").
			WillReturnRows(rows)

		result, err := repo.RevenueByBranch(context.Background(), companyID, nil, nil)

		assert.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, branchA, result[0].BranchID)
		assert.True(t, decimal.NewFromInt(250000).Equal(result[0].TotalRevenue))
		assert.Equal(t, int64(5), result[0].Count)
		assert.Equal(t, branchB, result[1].BranchID)
		assert.Equal(t, int64(2), result[1].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("date window also matches the legacy multi-event list", func(t *testing.T) {
		repo, mock, mockDB := newMockBookingRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT branch_id, .* FROM "bookings" WHERE company_id = \$1 AND status = \$2 AND \(function_date BETWEEN \$3 AND \$4\s+OR EXISTS \(\s*SELECT 1 FROM jsonb_array_elements\(function_details_list\) AS fn\s+WHERE \(fn->>'date'\)::timestamptz BETWEEN \$5 AND \$6\)\) GROUP BY "branch_id"`).
			WithArgs(companyID, "COMPLETED", start, end, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"branch_id", "total_revenue", "count"}))

		result, err := repo.RevenueByBranch(context.Background(), companyID, &start, &end)

		assert.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_FindByFunctionDate(t *testing.T) {
	t.Run("bounds the query to the calendar day", func(t *testing.T) {
		repo, mock, mockDB := newMockBookingRepository(t)
		defer mockDB.Close()

		day := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
		dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE status = \$1 AND function_date >= \$2 AND function_date < \$3 ORDER BY function_start_time ASC`).
			WithArgs("CONFIRMED", dayStart, dayEnd).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "branch_id", "client_id", "booking_number", "function_type", "function_date", "status"}))

		bookings, err := repo.FindByFunctionDate(context.Background(), day)

		assert.NoError(t, err)
		assert.Empty(t, bookings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
