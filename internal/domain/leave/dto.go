package leave

import (
	"time"

	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitRequestRequest struct {
	EmployeeID   string   `json:"employee_id"`
	LeaveTypeID  string   `json:"leave_type_id"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	IsPartialDay bool     `json:"is_partial_day"`
	PartialHours *float64 `json:"partial_hours,omitempty"`
	Reason       *string  `json:"reason,omitempty"`
}

func (r *SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.PartialHours != nil && (*r.PartialHours < 1 || *r.PartialHours > 7) {
		errs = append(errs, validator.ValidationError{
			Field:   "partial_hours",
			Message: "partial_hours must be between 1 and 7",
		})
	}

	if r.IsPartialDay && r.PartialHours == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "partial_hours",
			Message: "partial_hours is required for a partial day request",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"rejection_reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "rejection_reason",
			Message: "rejection_reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustBalanceRequest struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

func (r *AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RequestFilter narrows request listings. Zero values mean no filtering;
// results are always ordered by created_at descending.
type RequestFilter struct {
	Status      string `json:"status,omitempty"`
	LeaveTypeID string `json:"leave_type_id,omitempty"`
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !RequestStatus(f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, cancelled",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveTypeResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	AccrualMethod        string          `json:"accrual_method"`
	DaysPerYear          decimal.Decimal `json:"days_per_year"`
	CarryOverDays        decimal.Decimal `json:"carry_over_days"`
	AllowNegativeBalance bool            `json:"allow_negative_balance"`
	RequiresAttachment   bool            `json:"requires_attachment"`
}

type BalanceResponse struct {
	EmployeeID    string          `json:"employee_id"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name,omitempty"`
	Accrued       decimal.Decimal `json:"accrued"`
	Taken         decimal.Decimal `json:"taken"`
	Pending       decimal.Decimal `json:"pending"`
	Available     decimal.Decimal `json:"available"`
	IsNegative    bool            `json:"is_negative"`
}

type RequestResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	LeaveTypeID     string          `json:"leave_type_id"`
	LeaveTypeName   string          `json:"leave_type_name,omitempty"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	IsPartialDay    bool            `json:"is_partial_day"`
	PartialHours    *float64        `json:"partial_hours,omitempty"`
	Days            decimal.Decimal `json:"days"`
	Status          string          `json:"status"`
	Reason          *string         `json:"reason,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedBy      *string         `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CancelledBy     *string         `json:"cancelled_by,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type AdjustmentResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`
}
