package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/messaging"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements messaging.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a notification by ID within a company
func (r *GormNotificationRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*messaging.Notification, error) {
	var model models.NotificationModel
	if err := scopeCompany(r.db.WithContext(ctx), companyID).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all notifications for a company
func (r *GormNotificationRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]messaging.Notification, error) {
	var notificationModels []models.NotificationModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.NotificationModel{}), filter)

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]messaging.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// CountForCompany counts notifications for a company
func (r *GormNotificationRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.NotificationModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, notification *messaging.Notification) error {
	model := models.NotificationModelFromDomain(notification)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.NotificationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByToken resolves a smart link token to its notification. The
// token column carries a unique index so this is a single-row lookup.
func (r *GormNotificationRepository) FindByToken(ctx context.Context, token string) (*messaging.Notification, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).
		Where("link_token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPending returns pending notifications that still have retry
// budget, oldest first
func (r *GormNotificationRepository) FindPending(ctx context.Context, limit int) ([]messaging.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND retry_count < max_retries", messaging.NotificationPending).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notificationModels []models.NotificationModel
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]messaging.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// ExistsSameDay reports whether a notification of the given type was
// already created for the recipient on the given calendar day
func (r *GormNotificationRepository) ExistsSameDay(ctx context.Context, recipientID uuid.UUID, notifType messaging.NotificationType, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND type = ? AND created_at >= ? AND created_at < ?",
			recipientID, notifType, dayStart, dayEnd).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeactivateExpiredLinks retires active smart links whose expiry has
// passed and returns how many were affected
func (r *GormNotificationRepository) DeactivateExpiredLinks(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("link_is_active = ? AND link_expires_at IS NOT NULL AND link_expires_at <= ?", true, asOf).
		Updates(map[string]interface{}{
			"link_is_active": false,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options to the query
func (r *GormNotificationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, NotificationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormNotificationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("message ILIKE ? OR recipient_contact ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "recipient_id":
			query = query.Where("recipient_id = ?", value)
		case "recipient_type":
			query = query.Where("recipient_type = ?", value)
		case "is_automated":
			query = query.Where("is_automated = ?", value)
		}
	}

	return query
}

// Ensure GormNotificationRepository implements messaging.Repository
var _ messaging.Repository = (*GormNotificationRepository)(nil)
