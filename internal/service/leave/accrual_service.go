package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// AccrualService posts scheduled accrual entries to the adjustment ledger
// with actor "system". Per-hour accrual is externally driven (hours reports
// arrive through the adjust API) and has no scheduled posting here.
//
// Posting is idempotent per period: each entry carries a period-stamped
// reason and is skipped when the ledger already holds it, so a rerun of the
// same period changes nothing.
type AccrualService struct {
	leave.LeaveTypeRepository
	leave.BalanceRepository
	leave.AdjustmentRepository
	balanceService *BalanceService
}

func NewAccrualService(
	leaveTypeRepository leave.LeaveTypeRepository,
	balanceRepository leave.BalanceRepository,
	adjustmentRepository leave.AdjustmentRepository,
	balanceService *BalanceService,
) *AccrualService {
	return &AccrualService{
		LeaveTypeRepository:  leaveTypeRepository,
		BalanceRepository:    balanceRepository,
		AdjustmentRepository: adjustmentRepository,
		balanceService:       balanceService,
	}
}

// PostMonthlyAccruals credits one month of entitlement (daysPerYear/12) to
// every existing balance pair of each active monthly-accrual leave type.
func (s *AccrualService) PostMonthlyAccruals(ctx context.Context, period time.Time) error {
	leaveTypes, err := s.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active leave types: %w", err)
	}

	reason := fmt.Sprintf("monthly accrual %s", period.Format("2006-01"))

	for _, leaveType := range leaveTypes {
		if leaveType.AccrualMethod != leave.AccrualMonthly {
			continue
		}
		amount := leaveType.DaysPerYear.Div(monthsPerYear)
		if err := s.postForType(ctx, leaveType, amount, reason); err != nil {
			return err
		}
	}

	return nil
}

// PostUpfrontGrants credits the full annual entitlement to every existing
// balance pair of each active upfront-accrual leave type.
func (s *AccrualService) PostUpfrontGrants(ctx context.Context, year int) error {
	leaveTypes, err := s.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active leave types: %w", err)
	}

	reason := fmt.Sprintf("annual grant %d", year)

	for _, leaveType := range leaveTypes {
		if leaveType.AccrualMethod != leave.AccrualUpfront {
			continue
		}
		if err := s.postForType(ctx, leaveType, leaveType.DaysPerYear, reason); err != nil {
			return err
		}
	}

	return nil
}

// ApplyCarryOver forfeits, at the start of a year, whatever part of each
// balance exceeds the leave type's carry-over allowance. The forfeiture is a
// compensating negative ledger entry; the ledger itself is never rewritten.
func (s *AccrualService) ApplyCarryOver(ctx context.Context, year int) error {
	leaveTypes, err := s.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active leave types: %w", err)
	}

	reason := fmt.Sprintf("carry-over forfeiture %d", year)

	for _, leaveType := range leaveTypes {
		keys, err := s.BalanceRepository.ListKeys(ctx, leaveType.ID)
		if err != nil {
			return fmt.Errorf("failed to list balances for leave type %s: %w", leaveType.ID, err)
		}

		for _, key := range keys {
			exists, err := s.AdjustmentRepository.HasEntry(ctx, key.EmployeeID, key.LeaveTypeID, leave.SystemActor, reason)
			if err != nil {
				return fmt.Errorf("failed to check ledger for %s/%s: %w", key.EmployeeID, key.LeaveTypeID, err)
			}
			if exists {
				continue
			}

			balance, err := s.BalanceRepository.Get(ctx, key.EmployeeID, key.LeaveTypeID)
			if err != nil {
				return fmt.Errorf("failed to get balance for %s/%s: %w", key.EmployeeID, key.LeaveTypeID, err)
			}

			excess := balance.Available().Sub(leaveType.CarryOverDays)
			if !excess.IsPositive() {
				continue
			}

			if _, err := s.balanceService.Adjust(ctx, key.EmployeeID, key.LeaveTypeID, excess.Neg(), reason, leave.SystemActor); err != nil {
				return fmt.Errorf("failed to forfeit excess for %s/%s: %w", key.EmployeeID, key.LeaveTypeID, err)
			}

			slog.Info("Carry-over excess forfeited",
				"employee_id", key.EmployeeID,
				"leave_type_id", key.LeaveTypeID,
				"forfeited", excess.String(),
				"year", year,
			)
		}
	}

	return nil
}

func (s *AccrualService) postForType(ctx context.Context, leaveType leave.LeaveType, amount decimal.Decimal, reason string) error {
	keys, err := s.BalanceRepository.ListKeys(ctx, leaveType.ID)
	if err != nil {
		return fmt.Errorf("failed to list balances for leave type %s: %w", leaveType.ID, err)
	}

	for _, key := range keys {
		exists, err := s.AdjustmentRepository.HasEntry(ctx, key.EmployeeID, key.LeaveTypeID, leave.SystemActor, reason)
		if err != nil {
			return fmt.Errorf("failed to check ledger for %s/%s: %w", key.EmployeeID, key.LeaveTypeID, err)
		}
		if exists {
			continue
		}

		if _, err := s.balanceService.Adjust(ctx, key.EmployeeID, key.LeaveTypeID, amount, reason, leave.SystemActor); err != nil {
			return fmt.Errorf("failed to post accrual for %s/%s: %w", key.EmployeeID, key.LeaveTypeID, err)
		}

		slog.Debug("Accrual posted",
			"employee_id", key.EmployeeID,
			"leave_type_id", key.LeaveTypeID,
			"amount", amount.String(),
			"reason", reason,
		)
	}

	return nil
}
