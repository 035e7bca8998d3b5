package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) leave.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

// Create implements leave.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, is_partial_day, partial_hours,
			days, status, reason,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			$7, $8, $9,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveTypeID,
		req.StartDate, req.EndDate, req.IsPartialDay, req.PartialHours,
		req.Days, req.Status, req.Reason,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return req, nil
}

// GetByID implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.is_partial_day, lr.partial_hours,
			   lr.days, lr.status, lr.reason,
			   lr.approved_by, lr.approved_at,
			   lr.rejected_by, lr.rejected_at, lr.rejection_reason,
			   lr.cancelled_by, lr.cancelled_at,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.id = $1
	`

	var request leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.LeaveTypeID,
		&request.StartDate, &request.EndDate, &request.IsPartialDay, &request.PartialHours,
		&request.Days, &request.Status, &request.Reason,
		&request.ApprovedBy, &request.ApprovedAt,
		&request.RejectedBy, &request.RejectedAt, &request.RejectionReason,
		&request.CancelledBy, &request.CancelledAt,
		&request.CreatedAt, &request.UpdatedAt,
		&request.LeaveTypeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, err
	}
	return request, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *requestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.is_partial_day, lr.partial_hours,
			   lr.days, lr.status, lr.reason,
			   lr.approved_by, lr.approved_at,
			   lr.rejected_by, lr.rejected_at, lr.rejection_reason,
			   lr.cancelled_by, lr.cancelled_at,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		AND ($2 = '' OR lr.status = $2)
		AND ($3 = '' OR lr.leave_type_id::text = $3)
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, filter.Status, filter.LeaveTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		var request leave.Request
		if err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.LeaveTypeID,
			&request.StartDate, &request.EndDate, &request.IsPartialDay, &request.PartialHours,
			&request.Days, &request.Status, &request.Reason,
			&request.ApprovedBy, &request.ApprovedAt,
			&request.RejectedBy, &request.RejectedAt, &request.RejectionReason,
			&request.CancelledBy, &request.CancelledAt,
			&request.CreatedAt, &request.UpdatedAt,
			&request.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// Finalize implements leave.RequestRepository. The WHERE status = 'pending'
// clause is the compare-and-set: of two racing decisions exactly one update
// lands, the other sees zero rows and fails.
func (r *requestRepositoryImpl) Finalize(ctx context.Context, req leave.FinalizeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = $3, approved_at = $4,
			rejected_by = $5, rejected_at = $6, rejection_reason = $7,
			cancelled_by = $8, cancelled_at = $9,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := q.Exec(ctx, query,
		req.ID, req.Status,
		req.ApprovedBy, req.ApprovedAt,
		req.RejectedBy, req.RejectedAt, req.RejectionReason,
		req.CancelledBy, req.CancelledAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrRequestAlreadyProcessed
	}
	return nil
}
