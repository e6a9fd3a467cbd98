package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/messaging"
	"github.com/lensflow/backend/internal/domain/shared"
)

// newMockNotificationRepository creates a GormNotificationRepository with a mocked SQL connection
func newMockNotificationRepository(t *testing.T) (*GormNotificationRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormNotificationRepository(gormDB), mock, mockDB
}

func TestGormNotificationRepository_FindByToken(t *testing.T) {
	t.Run("resolves a token to its notification", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		notificationID := uuid.New()
		companyID := uuid.New()
		token := "a1b2c3d4e5f6"

		rows := sqlmock.NewRows([]string{"id", "company_id", "branch_id", "type", "recipient_type", "recipient_id", "recipient_contact", "message", "language", "link_token", "status"}).
			AddRow(notificationID, companyID, uuid.New(), "invoice_created", "CLIENT", uuid.New(), "+919876543210", "Your invoice is ready", "hi", token, "SENT")

		mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE link_token = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(token, 1).
			WillReturnRows(rows)

		n, err := repo.FindByToken(context.Background(), token)

		assert.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, notificationID, n.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty token short-circuits to not found", func(t *testing.T) {
		repo, _, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		n, err := repo.FindByToken(context.Background(), "")

		assert.Nil(t, n)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("unknown token maps to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE link_token = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		n, err := repo.FindByToken(context.Background(), "missing")

		assert.Nil(t, n)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormNotificationRepository_FindPending(t *testing.T) {
	t.Run("only picks pending rows with retry budget", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE status = \$1 AND retry_count < max_retries ORDER BY created_at ASC LIMIT .*`).
			WithArgs("PENDING", 50).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "status", "retry_count", "max_retries"}))

		notifications, err := repo.FindPending(context.Background(), 50)

		assert.NoError(t, err)
		assert.Empty(t, notifications)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormNotificationRepository_ExistsSameDay(t *testing.T) {
	t.Run("bounds the check to the calendar day", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		recipientID := uuid.New()
		day := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
		dayStart := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE recipient_id = \$1 AND type = \$2 AND created_at >= \$3 AND created_at < \$4`).
			WithArgs(recipientID, "appointment_reminder", dayStart, dayEnd).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsSameDay(context.Background(), recipientID, messaging.NotificationType("appointment_reminder"), day)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when no notification exists", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		recipientID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsSameDay(context.Background(), recipientID, messaging.NotificationType("payment_reminder"), time.Now())

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormNotificationRepository_DeactivateExpiredLinks(t *testing.T) {
	t.Run("returns the number of retired links", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "notifications" SET .* WHERE link_is_active = \$\d+ AND link_expires_at IS NOT NULL AND link_expires_at <= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		affected, err := repo.DeactivateExpiredLinks(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing expired affects zero rows", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "notifications" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.DeactivateExpiredLinks(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Zero(t, affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
