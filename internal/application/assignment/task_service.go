package assignment

import (
	"context"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/domain/task"
)

// TaskService handles manual task management alongside the pipeline
type TaskService struct {
	taskRepo  task.Repository
	staffRepo org.StaffRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo task.Repository, staffRepo org.StaffRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		staffRepo: staffRepo,
	}
}

// Create creates a task manually
func (s *TaskService) Create(ctx context.Context, companyID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	slot, err := task.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	skills, err := parseSkills(req.Skills)
	if err != nil {
		return nil, err
	}

	t, err := task.NewTask(companyID, req.BranchID, req.BookingID, req.Title,
		task.TaskType(req.Type), req.ScheduledDate, slot,
		task.Requirements{Skills: skills, Equipment: req.Equipment})
	if err != nil {
		return nil, err
	}
	t.Description = req.Description

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaskResponse(t)
	return &response, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, companyID, taskID uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForCompany(ctx, companyID, taskID)
	if err != nil {
		return nil, err
	}

	response := ToTaskResponse(t)
	return &response, nil
}

// List retrieves tasks with filtering and pagination
func (s *TaskService) List(ctx context.Context, companyID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.BookingID != "" {
		domainFilter.Filters["booking_id"] = filter.BookingID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	tasks, err := s.taskRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.taskRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTaskResponses(tasks), total, nil
}

// ListByBooking returns all tasks generated for a booking
func (s *TaskService) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks), nil
}

// Assign manually attaches staff to a task, deriving roles from
// their designations
func (s *TaskService) Assign(ctx context.Context, companyID, taskID uuid.UUID, req AssignTaskRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForCompany(ctx, companyID, taskID)
	if err != nil {
		return nil, err
	}

	assignees := make([]task.Assignee, len(req.StaffIDs))
	for i, staffID := range req.StaffIDs {
		staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, staffID)
		if err != nil {
			return nil, err
		}
		if !staff.IsAvailableForWork() {
			return nil, shared.NewDomainError("STAFF_UNAVAILABLE", "Staff member "+staff.Name+" is not available for work")
		}
		assignees[i] = task.Assignee{
			StaffID:      staff.ID,
			Role:         staff.PrimaryRole(),
			AssignedDate: t.ScheduledDate,
		}
	}
	if err := t.Assign(assignees); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaskResponse(t)
	return &response, nil
}

// UpdateStatus moves a task through its lifecycle
func (s *TaskService) UpdateStatus(ctx context.Context, companyID, taskID uuid.UUID, req UpdateTaskStatusRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForCompany(ctx, companyID, taskID)
	if err != nil {
		return nil, err
	}

	switch task.TaskStatus(req.Status) {
	case task.TaskStatusInProgress:
		err = t.Start()
	case task.TaskStatusCompleted:
		err = t.Complete()
	case task.TaskStatusCancelled:
		err = t.Cancel()
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Unsupported status transition: "+req.Status)
	}
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaskResponse(t)
	return &response, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, companyID, taskID uuid.UUID) error {
	t, err := s.taskRepo.FindByIDForCompany(ctx, companyID, taskID)
	if err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, t.ID)
}
