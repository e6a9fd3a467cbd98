package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/domain/task"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormTaskRepository implements task.Repository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a task by ID within a company
func (r *GormTaskRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*task.Task, error) {
	var model models.TaskModel
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

// FindAllForCompany finds all tasks for a company
func (r *GormTaskRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]task.Task, error) {
	var taskModels []models.TaskModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.TaskModel{}), filter)

	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]task.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks, nil
}

// CountForCompany counts tasks for a company
func (r *GormTaskRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.TaskModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, t *task.Task) error {
	model := models.TaskModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TaskModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByBooking returns all tasks generated for a booking
func (r *GormTaskRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]task.Task, error) {
	var taskModels []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("scheduled_date ASC, start_time ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]task.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks, nil
}

// FindActiveByStaffAndDate returns non-terminal tasks a staff member is
// assigned to on a calendar day. Assignees live in a jsonb array, so
// membership is a containment check.
func (r *GormTaskRepository) FindActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]task.Task, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	activeStatuses := []task.TaskStatus{
		task.TaskStatusPending,
		task.TaskStatusAssigned,
		task.TaskStatusInProgress,
	}

	var taskModels []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("assigned_to @> ?", assigneeProbe(staffID.String())).
		Where("scheduled_date >= ? AND scheduled_date < ?", dayStart, dayEnd).
		Where("status IN ?", activeStatuses).
		Order("start_time ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]task.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks, nil
}

// applyFilter applies filter options to the query
func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TaskSortFields, "scheduled_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTaskRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "booking_id":
			query = query.Where("booking_id = ?", value)
		case "assigned_to":
			if staffID, ok := value.(string); ok {
				query = query.Where("assigned_to @> ?", assigneeProbe(staffID))
			}
		case "from_date":
			query = query.Where("scheduled_date >= ?", value)
		case "to_date":
			query = query.Where("scheduled_date <= ?", value)
		}
	}

	return query
}

// assigneeProbe renders the partial assignee object used for jsonb
// membership tests. assigned_to stores Assignee objects, so containment
// must probe with the object shape; a bare ID string never matches.
func assigneeProbe(staffID string) string {
	b, _ := json.Marshal([]map[string]string{{"staff_id": staffID}})
	return string(b)
}

// Ensure GormTaskRepository implements task.Repository
var _ task.Repository = (*GormTaskRepository)(nil)
