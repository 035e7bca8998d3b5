package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository - read-only view of the leave_types table, which is
// owned by the external configuration collaborator.
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	ListActive(ctx context.Context) ([]LeaveType, error)
}

// BalanceRepository - interface for the leave_balances table. Balance rows
// are created implicitly on the first accrual entry and never deleted;
// taken/pending/accrued are only ever written through these operations.
type BalanceRepository interface {
	Get(ctx context.Context, employeeID, leaveTypeID string) (Balance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	ListKeys(ctx context.Context, leaveTypeID string) ([]BalanceKey, error)

	// ApplyAccrual adds amount (signed) to accrued, creating the row if
	// absent. Fails with ErrAccruedBelowZero when the result would be
	// negative.
	ApplyAccrual(ctx context.Context, employeeID, leaveTypeID string, amount decimal.Decimal) error

	// Reserve adds days to pending. Unless allowNegative, the write is
	// guarded: it fails with ErrInsufficientBalance when the projected
	// available would go below zero, and nothing is mutated.
	Reserve(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, allowNegative bool) error

	// Release removes days from pending; when credit is set the days are
	// moved to taken instead of returning to available. Never fails on
	// balance grounds.
	Release(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, credit bool) error
}

// AdjustmentRepository - interface for the append-only balance_adjustments
// ledger. No update or delete operations exist.
type AdjustmentRepository interface {
	Append(ctx context.Context, adj Adjustment) (Adjustment, error)
	History(ctx context.Context, employeeID, leaveTypeID string) ([]Adjustment, error)

	// HasEntry reports whether an entry by actor with reason already exists
	// for the pair. The accrual scheduler uses it to keep posting idempotent.
	HasEntry(ctx context.Context, employeeID, leaveTypeID, actor, reason string) (bool, error)
}

// FinalizeRequest carries the terminal fields for a compare-and-set status
// transition. Exactly one of the approved/rejected/cancelled field groups is
// populated, matching Status.
type FinalizeRequest struct {
	ID     string
	Status RequestStatus

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time
}

// RequestRepository - interface for the leave_requests table.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string, filter RequestFilter) ([]Request, error)

	// Finalize commits a terminal transition with a compare-and-set on
	// status: the update applies only while the request is still pending.
	// A second concurrent decision fails with ErrRequestAlreadyProcessed
	// and leaves the row untouched.
	Finalize(ctx context.Context, req FinalizeRequest) error
}
