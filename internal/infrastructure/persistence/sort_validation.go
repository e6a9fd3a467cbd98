package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BranchSortFields contains allowed sort fields for branches
var BranchSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"city":           true,
	"status":         true,
	"employee_count": true,
	"revenue_total":  true,
	"revenue_as_of":  true,
}

// StaffSortFields contains allowed sort fields for staff
var StaffSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"phone":             true,
	"role":              true,
	"branch_id":         true,
	"status":            true,
	"performance_score": true,
	"completed_tasks":   true,
	"late_arrivals":     true,
	"joined_at":         true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
	"email":      true,
	"city":       true,
	"status":     true,
	"source":     true,
}

// BookingSortFields contains allowed sort fields for bookings
var BookingSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"booking_number": true,
	"client_id":      true,
	"branch_id":      true,
	"function_type":  true,
	"function_date":  true,
	"total_amount":   true,
	"advance_amount": true,
	"status":         true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"client_id":      true,
	"booking_id":     true,
	"total_amount":   true,
	"paid_amount":    true,
	"due_date":       true,
	"status":         true,
}

// QuotationSortFields contains allowed sort fields for quotations
var QuotationSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"quotation_number": true,
	"client_id":        true,
	"total_amount":     true,
	"valid_until":      true,
	"status":           true,
	"follow_up_count":  true,
}

// TaskSortFields contains allowed sort fields for tasks
var TaskSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"booking_id":     true,
	"type":           true,
	"title":          true,
	"scheduled_date": true,
	"start_time":     true,
	"status":         true,
}

// NotificationSortFields contains allowed sort fields for notifications
var NotificationSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"recipient_type": true,
	"channel":        true,
	"trigger":        true,
	"status":         true,
	"sent_at":        true,
	"retry_count":    true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"branch_id":   true,
	"category":    true,
	"amount":      true,
	"incurred_at": true,
}

// LoanSortFields contains allowed sort fields for loans
var LoanSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"branch_id":    true,
	"lender":       true,
	"principal":    true,
	"repaid_total": true,
	"status":       true,
}

// AttendanceSortFields contains allowed sort fields for attendance records
var AttendanceSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"branch_id":     true,
	"staff_id":      true,
	"date":          true,
	"status":        true,
	"check_in_time": true,
}
