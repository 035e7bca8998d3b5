package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, category, accrual_method, days_per_year, carry_over_days,
			   allow_negative_balance, requires_attachment, is_active,
			   created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&leaveType.ID, &leaveType.Name, &leaveType.Category, &leaveType.AccrualMethod,
		&leaveType.DaysPerYear, &leaveType.CarryOverDays,
		&leaveType.AllowNegativeBalance, &leaveType.RequiresAttachment, &leaveType.IsActive,
		&leaveType.CreatedAt, &leaveType.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return leaveType, nil
}

// ListActive implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, category, accrual_method, days_per_year, carry_over_days,
			   allow_negative_balance, requires_attachment, is_active,
			   created_at, updated_at
		FROM leave_types
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaveTypes := make([]leave.LeaveType, 0)
	for rows.Next() {
		var leaveType leave.LeaveType
		if err := rows.Scan(
			&leaveType.ID, &leaveType.Name, &leaveType.Category, &leaveType.AccrualMethod,
			&leaveType.DaysPerYear, &leaveType.CarryOverDays,
			&leaveType.AllowNegativeBalance, &leaveType.RequiresAttachment, &leaveType.IsActive,
			&leaveType.CreatedAt, &leaveType.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, leaveType)
	}

	return leaveTypes, nil
}
