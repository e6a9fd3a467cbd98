package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/identity"
	"github.com/lensflow/backend/internal/domain/shared"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("normalizes email before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "email", "name", "role", "status"}).
			AddRow(userID, companyID, "priya@lensflow.in", "Priya", "chairman", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("priya@lensflow.in", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "  Priya@LensFlow.IN ")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, identity.RoleChairman, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByEmail(context.Background(), "ghost@lensflow.in")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_FindByIDForCompany(t *testing.T) {
	t.Run("scopes by company", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "email", "name", "role", "status"}).
			AddRow(userID, companyID, "anita@lensflow.in", "Anita", "staff", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, userID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByIDForCompany(context.Background(), companyID, userID)
		require.NoError(t, err)
		assert.Equal(t, companyID, user.CompanyID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	t.Run("missing user is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCompanyRepository_FindByName(t *testing.T) {
	t.Run("trims name before lookup", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{
			Conn:       mockDB,
			DriverName: "postgres",
		}), &gorm.Config{SkipDefaultTransaction: true})
		require.NoError(t, err)

		repo := NewGormCompanyRepository(gormDB)

		companyID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "email", "status"}).
			AddRow(companyID, "Luminara Studios", "hello@luminara.in", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE name = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("Luminara Studios", 1).
			WillReturnRows(rows)

		company, err := repo.FindByName(context.Background(), "  Luminara Studios ")
		require.NoError(t, err)
		assert.Equal(t, companyID, company.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
