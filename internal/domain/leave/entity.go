package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemActor marks ledger entries posted by the accrual scheduler rather
// than a person.
const SystemActor = "system"

// LeaveCategory classifies a leave type.
type LeaveCategory string

const (
	CategoryAnnual LeaveCategory = "annual"
	CategorySick   LeaveCategory = "sick"
	CategoryFamily LeaveCategory = "family"
	CategoryUnpaid LeaveCategory = "unpaid"
	CategoryCustom LeaveCategory = "custom"
)

// AccrualMethod describes how entitlement accumulates for a leave type.
type AccrualMethod string

const (
	AccrualMonthly AccrualMethod = "monthly"
	AccrualPerHour AccrualMethod = "per_hour"
	AccrualUpfront AccrualMethod = "upfront"
)

// LeaveType is per-category leave policy. It is owned by the external
// configuration collaborator and read-only to this service.
type LeaveType struct {
	ID                   string
	Name                 string
	Category             LeaveCategory
	AccrualMethod        AccrualMethod
	DaysPerYear          decimal.Decimal
	CarryOverDays        decimal.Decimal
	AllowNegativeBalance bool
	RequiresAttachment   bool
	IsActive             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance holds the authoritative accrued/taken/pending figures for one
// employee and one leave type. Available is always derived, never stored.
type Balance struct {
	EmployeeID  string
	LeaveTypeID string

	Accrued decimal.Decimal
	Taken   decimal.Decimal
	Pending decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	LeaveTypeName *string
}

// Available returns accrued - taken - pending.
func (b Balance) Available() decimal.Decimal {
	return b.Accrued.Sub(b.Taken).Sub(b.Pending)
}

// IsNegative reports whether the balance has been driven below zero.
func (b Balance) IsNegative() bool {
	return b.Available().IsNegative()
}

// RequestStatus is the closed set of leave request states.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s permits no further transition. Only pending
// requests can move; approved, rejected and cancelled are final.
func (s RequestStatus) IsTerminal() bool {
	return s.Valid() && s != RequestStatusPending
}

// CanTransitionTo reports whether the transition from s to next is allowed.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == RequestStatusPending && next.IsTerminal()
}

// Request is a leave request. Days is computed once at submission and frozen;
// after creation only the status and the terminal actor/timestamp/reason
// fields ever change. Cancellation is a status, not a deletion.
type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate    time.Time
	EndDate      time.Time
	IsPartialDay bool
	PartialHours *float64

	Days   decimal.Decimal
	Status RequestStatus
	Reason *string

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	LeaveTypeName *string
}

// Adjustment is one append-only ledger entry. The sum of all entries for an
// employee/leave type pair reconstructs the accrued figure at any point in
// time; entries are never edited or removed.
type Adjustment struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Amount      decimal.Decimal
	Reason      string
	Actor       string
	CreatedAt   time.Time
}

// BalanceKey identifies one employee/leave type balance resource.
type BalanceKey struct {
	EmployeeID  string
	LeaveTypeID string
}
