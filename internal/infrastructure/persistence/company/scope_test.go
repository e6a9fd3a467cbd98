package company

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestModel is a simple model for testing company scoping
type TestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100"`
}

func (TestModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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

	return gormDB, mock, mockDB
}

func TestCompanyScope(t *testing.T) {
	companyID := uuid.New()

	t.Run("applies company filter to query", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE company_id = \$1`).
			WithArgs(companyID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name"}))

		var results []TestModel
		err := CompanyScope(companyID)(db).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("company predicate leads conditions chained after it", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE company_id = \$1 AND name = \$2`).
			WithArgs(companyID.String(), "studio").
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name"}))

		var results []TestModel
		err := CompanyScope(companyID)(db).Where("name = ?", "studio").Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("different companies get isolated scopes", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		otherID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE company_id = \$1`).
			WithArgs(companyID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name"}))
		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE company_id = \$1`).
			WithArgs(otherID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name"}))

		var results []TestModel
		require.NoError(t, CompanyScope(companyID)(db.Session(&gorm.Session{})).Find(&results).Error)
		require.NoError(t, CompanyScope(otherID)(db.Session(&gorm.Session{})).Find(&results).Error)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("works with pagination and ordering", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE company_id = \$1 ORDER BY name ASC LIMIT \$2 OFFSET \$3`).
			WithArgs(companyID.String(), 10, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name"}))

		var results []TestModel
		err := CompanyScope(companyID)(db).
			Order("name ASC").
			Limit(10).
			Offset(5).
			Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
