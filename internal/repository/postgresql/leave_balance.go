package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

// Get implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) Get(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, leave_type_id, accrued, taken, pending, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&balance.EmployeeID, &balance.LeaveTypeID,
		&balance.Accrued, &balance.Taken, &balance.Pending,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return balance, nil
}

// ListByEmployee implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.employee_id, lb.leave_type_id, lb.accrued, lb.taken, lb.pending,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var balance leave.Balance
		if err := rows.Scan(
			&balance.EmployeeID, &balance.LeaveTypeID,
			&balance.Accrued, &balance.Taken, &balance.Pending,
			&balance.CreatedAt, &balance.UpdatedAt,
			&balance.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, nil
}

// ListKeys implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) ListKeys(ctx context.Context, leaveTypeID string) ([]leave.BalanceKey, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, leave_type_id
		FROM leave_balances
		WHERE leave_type_id = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, leaveTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]leave.BalanceKey, 0)
	for rows.Next() {
		var key leave.BalanceKey
		if err := rows.Scan(&key.EmployeeID, &key.LeaveTypeID); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// ApplyAccrual implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) ApplyAccrual(ctx context.Context, employeeID, leaveTypeID string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	if amount.IsNegative() {
		// A debit can never create the row, so a plain guarded update suffices.
		query := `
			UPDATE leave_balances
			SET accrued = accrued + $3,
				updated_at = NOW()
			WHERE employee_id = $1 AND leave_type_id = $2
			AND accrued + $3 >= 0
		`
		result, err := q.Exec(ctx, query, employeeID, leaveTypeID, amount)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return leave.ErrAccruedBelowZero
		}
		return nil
	}

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, accrued, taken, pending, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type_id)
		DO UPDATE SET accrued = leave_balances.accrued + $3, updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, employeeID, leaveTypeID, amount)
	return err
}

// Reserve implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) Reserve(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, allowNegative bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET pending = pending + $3,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2
		AND ($4 OR accrued - taken - pending - $3 >= 0)
	`

	result, err := q.Exec(ctx, query, employeeID, leaveTypeID, days, allowNegative)
	if err != nil {
		return err
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	if !allowNegative {
		return leave.ErrInsufficientBalance
	}

	// No row yet for this pair; negative-friendly types reserve against an
	// implicitly created zero balance.
	insert := `
		INSERT INTO leave_balances (employee_id, leave_type_id, accrued, taken, pending, created_at, updated_at)
		VALUES ($1, $2, 0, 0, $3, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type_id)
		DO UPDATE SET pending = leave_balances.pending + $3, updated_at = NOW()
	`
	_, err = q.Exec(ctx, insert, employeeID, leaveTypeID, days)
	return err
}

// Release implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) Release(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, credit bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET pending = pending - $3,
			taken = taken + (CASE WHEN $4 THEN $3 ELSE 0 END),
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	_, err := q.Exec(ctx, query, employeeID, leaveTypeID, days, credit)
	return err
}
