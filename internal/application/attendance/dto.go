package attendance

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/attendance"
)

// CheckInRequest records a staff member's arrival
type CheckInRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
}

// CheckOutRequest records a staff member's departure
type CheckOutRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
}

// MarkRequest records a non-working day for a staff member
type MarkRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
	Date    time.Time `json:"date" binding:"required"`
	Status  string    `json:"status" binding:"required,oneof=ABSENT HALF_DAY LEAVE"`
	Remark  string    `json:"remark"`
}

// RecordResponse is the API representation of an attendance record
type RecordResponse struct {
	ID           uuid.UUID  `json:"id"`
	BranchID     uuid.UUID  `json:"branch_id"`
	StaffID      uuid.UUID  `json:"staff_id"`
	Date         time.Time  `json:"date"`
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Remark       string     `json:"remark,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RecordListFilter holds query parameters for listing attendance
type RecordListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	BranchID string `form:"branch_id"`
	StaffID  string `form:"staff_id"`
	Status   string `form:"status"`
}

// ToRecordResponse converts a domain record to its API representation
func ToRecordResponse(r *attendance.Record) *RecordResponse {
	return &RecordResponse{
		ID:           r.ID,
		BranchID:     r.BranchID,
		StaffID:      r.StaffID,
		Date:         r.Date,
		Status:       string(r.Status),
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
		Remark:       r.Remark,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToRecordResponses converts a slice of domain records
func ToRecordResponses(records []attendance.Record) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *ToRecordResponse(&records[i]))
	}
	return responses
}
