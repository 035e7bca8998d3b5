package postgresql

import (
	"context"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
)

type adjustmentRepositoryImpl struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) leave.AdjustmentRepository {
	return &adjustmentRepositoryImpl{db: db}
}

// Append implements leave.AdjustmentRepository. The ledger is insert-only;
// there is no update or delete counterpart anywhere in this package.
func (r *adjustmentRepositoryImpl) Append(ctx context.Context, adj leave.Adjustment) (leave.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balance_adjustments (id, employee_id, leave_type_id, amount, reason, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		adj.ID, adj.EmployeeID, adj.LeaveTypeID, adj.Amount, adj.Reason, adj.Actor,
	).Scan(&adj.CreatedAt)
	if err != nil {
		return leave.Adjustment{}, err
	}

	return adj, nil
}

// History implements leave.AdjustmentRepository. Entries come back oldest
// first so the running sum reads like a statement.
func (r *adjustmentRepositoryImpl) History(ctx context.Context, employeeID, leaveTypeID string) ([]leave.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, amount, reason, actor, created_at
		FROM balance_adjustments
		WHERE employee_id = $1 AND leave_type_id = $2
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, employeeID, leaveTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]leave.Adjustment, 0)
	for rows.Next() {
		var adj leave.Adjustment
		if err := rows.Scan(
			&adj.ID, &adj.EmployeeID, &adj.LeaveTypeID,
			&adj.Amount, &adj.Reason, &adj.Actor, &adj.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, adj)
	}

	return entries, nil
}

// HasEntry implements leave.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) HasEntry(ctx context.Context, employeeID, leaveTypeID, actor, reason string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM balance_adjustments
			WHERE employee_id = $1 AND leave_type_id = $2 AND actor = $3 AND reason = $4
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, leaveTypeID, actor, reason).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
