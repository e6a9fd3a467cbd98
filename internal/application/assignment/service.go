package assignment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/task"
)

// Notifier sends the messages the assignment pipeline produces. The
// messaging service implements it; assignment stays decoupled from
// templates and delivery channels.
type Notifier interface {
	// NotifyTaskAssigned tells one staff member about their new task
	NotifyTaskAssigned(ctx context.Context, t *task.Task, staff *org.Staff) error
	// NotifyBookingStaffed sends the client one aggregated message
	// listing the crew and equipment arranged for their booking
	NotifyBookingStaffed(ctx context.Context, b *booking.Booking, staffNames []string, equipment []string) error
	// NotifyTaskSkipped tells the booking's client a pipeline stage
	// was skipped and why
	NotifyTaskSkipped(ctx context.Context, t *task.Task, reason string) error
}

// Static windows for the synthesized pipeline stages. Function and
// travel stages derive their windows from the event itself.
var (
	equipmentPrepWindow = task.MustTimeRange("10:00", "13:00")
	dataBackupWindow    = task.MustTimeRange("10:00", "12:00")
	defaultEventWindow  = task.MustTimeRange("09:00", "21:00")
)

const travelLeadTime = 2 * time.Hour

// Service runs the task auto-assignment pipeline for confirmed
// bookings: it synthesizes the work stages, matches staff by skill
// and availability, and records the assignments.
type Service struct {
	bookingRepo booking.Repository
	taskRepo    task.Repository
	staffRepo   org.StaffRepository
	notifier    Notifier
	logger      *zap.Logger
}

// NewService creates a new assignment Service
func NewService(
	bookingRepo booking.Repository,
	taskRepo task.Repository,
	staffRepo org.StaffRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		taskRepo:    taskRepo,
		staffRepo:   staffRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// taskDraft is one synthesized pipeline stage before persistence
type taskDraft struct {
	title        string
	taskType     task.TaskType
	date         time.Time
	slot         task.TimeRange
	requirements task.Requirements
}

// AutoAssignTasks synthesizes the pipeline tasks for a booking and
// staffs each one. A missing booking aborts the whole batch; a
// failure on an individual task is recorded in its result and does
// not roll back tasks already persisted.
func (s *Service) AutoAssignTasks(ctx context.Context, bookingID uuid.UUID) ([]AssignmentResult, error) {
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	drafts := s.synthesizeDrafts(b)
	results := make([]AssignmentResult, 0, len(drafts))
	var assignedStaff []*org.Staff

	for _, draft := range drafts {
		t, staff, err := s.assignDraft(ctx, b, draft)
		if err != nil {
			s.logger.Warn("task assignment failed",
				zap.String("booking_id", bookingID.String()),
				zap.String("task_type", draft.taskType.String()),
				zap.Error(err))
			results = append(results, AssignmentResult{Error: err.Error()})
			continue
		}
		assignedStaff = append(assignedStaff, staff...)
		response := ToTaskResponse(t)
		results = append(results, AssignmentResult{Task: &response})
	}

	s.notifyClient(ctx, b, assignedStaff)
	return results, nil
}

// synthesizeDrafts expands a booking into its pipeline stages. Every
// covered event gets a travel leg (when the venue has an address), the
// main function slot, and a data backup the day after. Equipment
// preparation runs the day before only when equipment is reserved.
func (s *Service) synthesizeDrafts(b *booking.Booking) []taskDraft {
	var drafts []taskDraft

	equipment := make([]string, 0, len(b.EquipmentAssignment))
	for _, e := range b.EquipmentAssignment {
		equipment = append(equipment, e.Equipment)
	}

	for _, fn := range b.Functions() {
		eventWindow := defaultEventWindow
		if window, err := task.NewTimeRange(fn.StartTime, fn.EndTime); err == nil {
			eventWindow = window
		}

		if b.HasEquipment() {
			drafts = append(drafts, taskDraft{
				title:    fmt.Sprintf("Equipment preparation for %s", b.BookingNumber),
				taskType: task.TypeEquipmentPrep,
				date:     fn.Date.AddDate(0, 0, -1),
				slot:     equipmentPrepWindow,
				requirements: task.Requirements{
					Skills:    []org.Skill{org.SkillEquipmentHandling},
					Equipment: equipment,
				},
			})
		}

		if fn.Venue.HasAddress() {
			if travelWindow, err := task.WindowBefore(eventWindow.Start, travelLeadTime); err == nil {
				drafts = append(drafts, taskDraft{
					title:    fmt.Sprintf("Travel to %s", fn.Venue.Name),
					taskType: task.TypeTravel,
					date:     fn.Date,
					slot:     travelWindow,
				})
			}
		}

		drafts = append(drafts, taskDraft{
			title:    fmt.Sprintf("%s coverage for %s", fn.Type, b.BookingNumber),
			taskType: task.TypeMainFunction,
			date:     fn.Date,
			slot:     eventWindow,
			requirements: task.Requirements{
				Skills: []org.Skill{org.SkillPhotography, org.SkillVideography},
			},
		})

		drafts = append(drafts, taskDraft{
			title:    fmt.Sprintf("Data backup for %s", b.BookingNumber),
			taskType: task.TypeDataBackup,
			date:     fn.Date.AddDate(0, 0, 1),
			slot:     dataBackupWindow,
			requirements: task.Requirements{
				Skills: []org.Skill{org.SkillDataManagement},
			},
		})
	}

	return drafts
}

// assignDraft persists one drafted task with its selected staff
func (s *Service) assignDraft(ctx context.Context, b *booking.Booking, draft taskDraft) (*task.Task, []*org.Staff, error) {
	t, err := task.NewTask(b.CompanyID, b.BranchID, &b.ID, draft.title, draft.taskType,
		draft.date, draft.slot, draft.requirements)
	if err != nil {
		return nil, nil, err
	}

	candidates, err := s.availableStaff(ctx, b.BranchID, draft.date, draft.slot, draft.requirements.Skills)
	if err != nil {
		return nil, nil, err
	}

	selected := selectForType(draft.taskType, candidates)
	assignees := make([]task.Assignee, len(selected))
	for i, staff := range selected {
		assignees[i] = task.Assignee{
			StaffID:      staff.ID,
			Role:         staff.PrimaryRole(),
			AssignedDate: t.ScheduledDate,
		}
	}
	if err := t.Assign(assignees); err != nil {
		return nil, nil, err
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, nil, err
	}

	for _, staff := range selected {
		if err := s.notifier.NotifyTaskAssigned(ctx, t, staff); err != nil {
			s.logger.Warn("staff assignment notification failed",
				zap.String("task_id", t.ID.String()),
				zap.String("staff_id", staff.ID.String()),
				zap.Error(err))
		}
	}

	return t, selected, nil
}

// availableStaff returns the branch's working staff who have no
// conflicting task in the slot, sorted by descending skill match.
// The sort is stable so equally scored staff keep repository order.
func (s *Service) availableStaff(ctx context.Context, branchID uuid.UUID, date time.Time, slot task.TimeRange, required []org.Skill) ([]*org.Staff, error) {
	staff, err := s.staffRepo.FindActiveByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	available := make([]*org.Staff, 0, len(staff))
	for i := range staff {
		member := &staff[i]
		if !member.IsAvailableForWork() {
			continue
		}
		existing, err := s.taskRepo.FindActiveByStaffAndDate(ctx, member.ID, date)
		if err != nil {
			return nil, err
		}
		busy := false
		for j := range existing {
			if existing[j].ConflictsWith(date, slot) {
				busy = true
				break
			}
		}
		if !busy {
			available = append(available, member)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].SkillMatchScore(required) > available[j].SkillMatchScore(required)
	})
	return available, nil
}

// selectForType applies the per-stage staffing rules to the ranked
// candidate list
func selectForType(taskType task.TaskType, candidates []*org.Staff) []*org.Staff {
	switch taskType {
	case task.TypeEquipmentPrep:
		return pickWithSkills(candidates, 2, org.SkillEquipmentHandling)
	case task.TypeDataBackup:
		return pickWithSkills(candidates, 1, org.SkillDataManagement, org.SkillEditing)
	case task.TypeMainFunction, task.TypeTravel:
		return pickCrew(candidates)
	default:
		if len(candidates) == 0 {
			return nil
		}
		return candidates[:1]
	}
}

// pickWithSkills takes up to limit candidates holding any of the skills
func pickWithSkills(candidates []*org.Staff, limit int, skills ...org.Skill) []*org.Staff {
	var picked []*org.Staff
	for _, staff := range candidates {
		for _, skill := range skills {
			if staff.HasSkill(skill) {
				picked = append(picked, staff)
				break
			}
		}
		if len(picked) == limit {
			break
		}
	}
	return picked
}

// pickCrew staffs an event leg: one photographer, one videographer
// and one assistant by derived role, padded from the remaining ranked
// candidates so the crew is never smaller than two when staff exist.
func pickCrew(candidates []*org.Staff) []*org.Staff {
	const minCrew = 2

	var picked []*org.Staff
	taken := make(map[uuid.UUID]bool)
	for _, want := range []org.StaffRole{org.RolePhotographer, org.RoleVideographer, org.RoleAssistant} {
		for _, staff := range candidates {
			if taken[staff.ID] {
				continue
			}
			if staff.PrimaryRole() == want {
				picked = append(picked, staff)
				taken[staff.ID] = true
				break
			}
		}
	}
	for _, staff := range candidates {
		if len(picked) >= minCrew {
			break
		}
		if !taken[staff.ID] {
			picked = append(picked, staff)
			taken[staff.ID] = true
		}
	}
	return picked
}

// notifyClient sends the booking's client one aggregated message
// listing the distinct crew members and the reserved equipment
func (s *Service) notifyClient(ctx context.Context, b *booking.Booking, assigned []*org.Staff) {
	if len(assigned) == 0 {
		return
	}

	seen := make(map[uuid.UUID]bool, len(assigned))
	var names []string
	for _, staff := range assigned {
		if !seen[staff.ID] {
			seen[staff.ID] = true
			names = append(names, staff.Name)
		}
	}
	equipment := make([]string, 0, len(b.EquipmentAssignment))
	for _, e := range b.EquipmentAssignment {
		equipment = append(equipment, e.Equipment)
	}

	if err := s.notifier.NotifyBookingStaffed(ctx, b, names, equipment); err != nil {
		s.logger.Warn("client staffing notification failed",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
	}
}

// SkipTask marks a task skipped and tells the client
func (s *Service) SkipTask(ctx context.Context, companyID, taskID uuid.UUID, reason string, skippedBy uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByIDForCompany(ctx, companyID, taskID)
	if err != nil {
		return nil, err
	}
	if err := t.Skip(reason, skippedBy); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyTaskSkipped(ctx, t, reason); err != nil {
		s.logger.Warn("skip notification failed",
			zap.String("task_id", t.ID.String()),
			zap.Error(err))
	}

	response := ToTaskResponse(t)
	return &response, nil
}
