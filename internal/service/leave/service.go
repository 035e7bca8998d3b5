package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/audit"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/domain/notification"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
	"github.com/nafeesnawab/payroll-backend-go/internal/repository/postgresql"
)

// LeaveServiceImpl is the transactional facade over the balance store and the
// request workflow. Every operation is an all-or-nothing unit: balance
// mutation and status mutation commit in one transaction, and audit and
// notification events are emitted only after the commit, so a failed
// operation is never observable anywhere.
type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.RequestRepository
	leave.AdjustmentRepository
	balanceService *BalanceService
	requestService *RequestService
	auditPublisher audit.Publisher
	notifier       notification.Dispatcher
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepository leave.LeaveTypeRepository,
	requestRepository leave.RequestRepository,
	adjustmentRepository leave.AdjustmentRepository,
	balanceService *BalanceService,
	requestService *RequestService,
	auditPublisher audit.Publisher,
	notifier notification.Dispatcher,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                   db,
		LeaveTypeRepository:  leaveTypeRepository,
		RequestRepository:    requestRepository,
		AdjustmentRepository: adjustmentRepository,
		balanceService:       balanceService,
		requestService:       requestService,
		auditPublisher:       auditPublisher,
		notifier:             notifier,
	}
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	leaveTypes, err := l.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(leaveTypes))
	for _, leaveType := range leaveTypes {
		responses = append(responses, leave.LeaveTypeResponse{
			ID:                   leaveType.ID,
			Name:                 leaveType.Name,
			Category:             string(leaveType.Category),
			AccrualMethod:        string(leaveType.AccrualMethod),
			DaysPerYear:          leaveType.DaysPerYear,
			CarryOverDays:        leaveType.CarryOverDays,
			AllowNegativeBalance: leaveType.AllowNegativeBalance,
			RequiresAttachment:   leaveType.RequiresAttachment,
		})
	}
	return responses, nil
}

// SubmitRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) SubmitRequest(ctx context.Context, req leave.SubmitRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var created leave.Request
	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		var err error
		created, err = l.requestService.Submit(txCtx, req)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.emitAudit(ctx, audit.Event{
		RequestID:    created.ID,
		EmployeeID:   created.EmployeeID,
		Action:       audit.ActionSubmit,
		Actor:        created.EmployeeID,
		Timestamp:    time.Now(),
		AfterStatus:  string(leave.RequestStatusPending),
	})
	l.emitNotification(ctx, notification.Trigger{
		Type:       notification.TypeLeaveSubmitted,
		EmployeeID: created.EmployeeID,
		RequestID:  created.ID,
	})

	return l.toRequestResponse(ctx, created), nil
}

// ApproveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveRequest(ctx context.Context, requestID, approverID string) (leave.RequestResponse, error) {
	var request leave.Request
	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		var err error
		request, err = l.requestService.Approve(txCtx, requestID, approverID)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.emitAudit(ctx, audit.Event{
		RequestID:    request.ID,
		EmployeeID:   request.EmployeeID,
		Action:       audit.ActionApprove,
		Actor:        approverID,
		Timestamp:    time.Now(),
		BeforeStatus: string(leave.RequestStatusPending),
		AfterStatus:  string(leave.RequestStatusApproved),
	})
	l.emitNotification(ctx, notification.Trigger{
		Type:       notification.TypeLeaveApproved,
		EmployeeID: request.EmployeeID,
		RequestID:  request.ID,
		Recipients: []string{request.EmployeeID},
	})

	return l.toRequestResponse(ctx, request), nil
}

// RejectRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectRequest(ctx context.Context, requestID, approverID, reason string) (leave.RequestResponse, error) {
	var request leave.Request
	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		var err error
		request, err = l.requestService.Reject(txCtx, requestID, approverID, reason)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.emitAudit(ctx, audit.Event{
		RequestID:    request.ID,
		EmployeeID:   request.EmployeeID,
		Action:       audit.ActionReject,
		Actor:        approverID,
		Timestamp:    time.Now(),
		BeforeStatus: string(leave.RequestStatusPending),
		AfterStatus:  string(leave.RequestStatusRejected),
	})
	l.emitNotification(ctx, notification.Trigger{
		Type:       notification.TypeLeaveRejected,
		EmployeeID: request.EmployeeID,
		RequestID:  request.ID,
		Recipients: []string{request.EmployeeID},
	})

	return l.toRequestResponse(ctx, request), nil
}

// CancelRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelRequest(ctx context.Context, requestID, actorID string) (leave.RequestResponse, error) {
	var request leave.Request
	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		var err error
		request, err = l.requestService.Cancel(txCtx, requestID, actorID)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.emitAudit(ctx, audit.Event{
		RequestID:    request.ID,
		EmployeeID:   request.EmployeeID,
		Action:       audit.ActionCancel,
		Actor:        actorID,
		Timestamp:    time.Now(),
		BeforeStatus: string(leave.RequestStatusPending),
		AfterStatus:  string(leave.RequestStatusCancelled),
	})

	return l.toRequestResponse(ctx, request), nil
}

// GetRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	request, err := l.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return l.toRequestResponse(ctx, request), nil
}

// ListRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.RequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := l.RequestRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, l.toRequestResponse(ctx, request))
	}
	return responses, nil
}

// GetBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	balances, err := l.balanceService.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		responses = append(responses, toBalanceResponse(balance))
	}
	return responses, nil
}

// AdjustBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest, actor string) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	var balance leave.Balance
	err := postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		var err error
		balance, err = l.balanceService.Adjust(txCtx, req.EmployeeID, req.LeaveTypeID, req.Amount, req.Reason, actor)
		return err
	})
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	l.emitAudit(ctx, audit.Event{
		EmployeeID: req.EmployeeID,
		Action:     audit.ActionAdjust,
		Actor:      actor,
		Timestamp:  time.Now(),
	})

	return toBalanceResponse(balance), nil
}

// BalanceHistory implements leave.LeaveService.
func (l *LeaveServiceImpl) BalanceHistory(ctx context.Context, employeeID, leaveTypeID string) ([]leave.AdjustmentResponse, error) {
	entries, err := l.AdjustmentRepository.History(ctx, employeeID, leaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read adjustment history: %w", err)
	}

	responses := make([]leave.AdjustmentResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, leave.AdjustmentResponse{
			ID:          entry.ID,
			EmployeeID:  entry.EmployeeID,
			LeaveTypeID: entry.LeaveTypeID,
			Amount:      entry.Amount,
			Reason:      entry.Reason,
			Actor:       entry.Actor,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return responses, nil
}

func (l *LeaveServiceImpl) emitAudit(ctx context.Context, event audit.Event) {
	if err := l.auditPublisher.Publish(ctx, event); err != nil {
		slog.Error("Failed to publish audit event", "action", event.Action, "request_id", event.RequestID, "error", err)
	}
}

func (l *LeaveServiceImpl) emitNotification(ctx context.Context, trigger notification.Trigger) {
	if err := l.notifier.Dispatch(ctx, trigger); err != nil {
		slog.Error("Failed to dispatch notification", "type", trigger.Type, "request_id", trigger.RequestID, "error", err)
	}
}

func (l *LeaveServiceImpl) toRequestResponse(ctx context.Context, request leave.Request) leave.RequestResponse {
	response := leave.RequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		LeaveTypeID:     request.LeaveTypeID,
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		IsPartialDay:    request.IsPartialDay,
		PartialHours:    request.PartialHours,
		Days:            request.Days,
		Status:          string(request.Status),
		Reason:          request.Reason,
		ApprovedBy:      request.ApprovedBy,
		ApprovedAt:      request.ApprovedAt,
		RejectedBy:      request.RejectedBy,
		RejectedAt:      request.RejectedAt,
		RejectionReason: request.RejectionReason,
		CancelledBy:     request.CancelledBy,
		CancelledAt:     request.CancelledAt,
		CreatedAt:       request.CreatedAt,
	}

	if request.LeaveTypeName != nil {
		response.LeaveTypeName = *request.LeaveTypeName
	} else if leaveType, err := l.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID); err == nil {
		response.LeaveTypeName = leaveType.Name
	}

	return response
}

func toBalanceResponse(balance leave.Balance) leave.BalanceResponse {
	response := leave.BalanceResponse{
		EmployeeID:  balance.EmployeeID,
		LeaveTypeID: balance.LeaveTypeID,
		Accrued:     balance.Accrued,
		Taken:       balance.Taken,
		Pending:     balance.Pending,
		Available:   balance.Available(),
		IsNegative:  balance.IsNegative(),
	}
	if balance.LeaveTypeName != nil {
		response.LeaveTypeName = *balance.LeaveTypeName
	}
	return response
}
