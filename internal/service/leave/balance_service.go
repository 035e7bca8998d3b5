package leave

import (
	"fmt"

	"context"

	"github.com/google/uuid"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// BalanceService is the single authority over leave balances. All writes to
// accrued/taken/pending flow through Adjust, Reserve and Release; nothing
// else touches the figures. Per-pair serialization is enforced by the
// repository's guarded updates, so a losing concurrent reservation fails
// with ErrInsufficientBalance instead of committing past zero.
type BalanceService struct {
	leave.BalanceRepository
	leave.AdjustmentRepository
}

func NewBalanceService(balanceRepository leave.BalanceRepository, adjustmentRepository leave.AdjustmentRepository) *BalanceService {
	return &BalanceService{
		BalanceRepository:    balanceRepository,
		AdjustmentRepository: adjustmentRepository,
	}
}

// GetBalance returns the balance for the pair. A pair without any ledger
// entry yet reads as all zeros rather than an error.
func (s *BalanceService) GetBalance(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	balance, err := s.BalanceRepository.Get(ctx, employeeID, leaveTypeID)
	if err != nil {
		if err == leave.ErrBalanceNotFound {
			return leave.Balance{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}, nil
		}
		return leave.Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Adjust appends a ledger entry and applies the amount to accrued. It never
// touches taken or pending. The ledger append and the balance write happen
// in the caller's transaction, so a failure in either leaves both untouched.
func (s *BalanceService) Adjust(ctx context.Context, employeeID, leaveTypeID string, amount decimal.Decimal, reason, actor string) (leave.Balance, error) {
	if validator.IsEmpty(reason) {
		return leave.Balance{}, validator.ValidationErrors{{
			Field:   "reason",
			Message: "reason is required",
		}}
	}
	if validator.IsEmpty(actor) {
		return leave.Balance{}, validator.ValidationErrors{{
			Field:   "actor",
			Message: "actor is required",
		}}
	}

	adj := leave.Adjustment{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Amount:      amount,
		Reason:      reason,
		Actor:       actor,
	}

	if _, err := s.AdjustmentRepository.Append(ctx, adj); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to append adjustment: %w", err)
	}

	if err := s.BalanceRepository.ApplyAccrual(ctx, employeeID, leaveTypeID, amount); err != nil {
		return leave.Balance{}, err
	}

	return s.GetBalance(ctx, employeeID, leaveTypeID)
}

// Reserve places a hold of days against pending while a request awaits a
// decision. The repository guard rejects the reservation when the projected
// available would go negative and the leave type disallows it.
func (s *BalanceService) Reserve(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, allowNegative bool) error {
	return s.BalanceRepository.Reserve(ctx, employeeID, leaveTypeID, days, allowNegative)
}

// Release removes a hold on a terminal transition. A request that was
// validly reserved can always be released; credit moves the days to taken
// (approval), otherwise they simply return to available.
func (s *BalanceService) Release(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, credit bool) error {
	return s.BalanceRepository.Release(ctx, employeeID, leaveTypeID, days, credit)
}
