package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/validator"
)

// RequestService drives a single request through its lifecycle: submission
// creates a Pending request holding a balance reservation; approve, reject
// and cancel are the only transitions out, all terminal. Each method expects
// to run inside the caller's transaction so balance and status mutations
// commit or roll back together.
type RequestService struct {
	leave.LeaveTypeRepository
	leave.RequestRepository
	balanceService *BalanceService
	calculator     *DayCalculator
}

func NewRequestService(
	leaveTypeRepository leave.LeaveTypeRepository,
	requestRepository leave.RequestRepository,
	balanceService *BalanceService,
	calculator *DayCalculator,
) *RequestService {
	return &RequestService{
		LeaveTypeRepository: leaveTypeRepository,
		RequestRepository:   requestRepository,
		balanceService:      balanceService,
		calculator:          calculator,
	}
}

// Submit validates the request against leave type policy, computes and
// freezes its day quantity, reserves the days and persists the request as
// Pending.
func (r *RequestService) Submit(ctx context.Context, req leave.SubmitRequestRequest) (leave.Request, error) {
	leaveType, err := r.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.Request{}, err
	}
	if !leaveType.IsActive {
		return leave.Request{}, leave.ErrLeaveTypeInactive
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.Request{}, validator.ValidationErrors{{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		}}
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.Request{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		}}
	}

	days, err := r.calculator.ComputeDays(startDate, endDate, req.IsPartialDay, req.PartialHours)
	if err != nil {
		return leave.Request{}, err
	}

	if err := r.balanceService.Reserve(ctx, req.EmployeeID, req.LeaveTypeID, days, leaveType.AllowNegativeBalance); err != nil {
		return leave.Request{}, err
	}

	request := leave.Request{
		EmployeeID:   req.EmployeeID,
		LeaveTypeID:  leaveType.ID,
		StartDate:    startDate,
		EndDate:      endDate,
		IsPartialDay: req.IsPartialDay,
		PartialHours: req.PartialHours,
		Days:         days,
		Status:       leave.RequestStatusPending,
		Reason:       req.Reason,
	}

	created, err := r.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// Approve transitions a pending request to Approved and credits the reserved
// days to taken. The status write is a compare-and-set: a request already
// decided by a concurrent call fails with ErrRequestAlreadyProcessed and no
// balance is touched.
func (r *RequestService) Approve(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	request, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	if !request.Status.CanTransitionTo(leave.RequestStatusApproved) {
		return leave.Request{}, leave.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	if err := r.RequestRepository.Finalize(ctx, leave.FinalizeRequest{
		ID:         request.ID,
		Status:     leave.RequestStatusApproved,
		ApprovedBy: &approverID,
		ApprovedAt: &now,
	}); err != nil {
		return leave.Request{}, err
	}

	if err := r.balanceService.Release(ctx, request.EmployeeID, request.LeaveTypeID, request.Days, true); err != nil {
		return leave.Request{}, fmt.Errorf("failed to release reservation: %w", err)
	}

	request.Status = leave.RequestStatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now

	return request, nil
}

// Reject transitions a pending request to Rejected, requiring a non-empty
// reason, and returns the reserved days to available.
func (r *RequestService) Reject(ctx context.Context, requestID, approverID, reason string) (leave.Request, error) {
	if validator.IsEmpty(reason) {
		return leave.Request{}, validator.ValidationErrors{{
			Field:   "rejection_reason",
			Message: "rejection_reason is required",
		}}
	}

	request, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	if !request.Status.CanTransitionTo(leave.RequestStatusRejected) {
		return leave.Request{}, leave.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	if err := r.RequestRepository.Finalize(ctx, leave.FinalizeRequest{
		ID:              request.ID,
		Status:          leave.RequestStatusRejected,
		RejectedBy:      &approverID,
		RejectedAt:      &now,
		RejectionReason: &reason,
	}); err != nil {
		return leave.Request{}, err
	}

	if err := r.balanceService.Release(ctx, request.EmployeeID, request.LeaveTypeID, request.Days, false); err != nil {
		return leave.Request{}, fmt.Errorf("failed to release reservation: %w", err)
	}

	request.Status = leave.RequestStatusRejected
	request.RejectedBy = &approverID
	request.RejectedAt = &now
	request.RejectionReason = &reason

	return request, nil
}

// Cancel transitions a pending request to Cancelled and returns the reserved
// days to available. Whether the actor may cancel is the caller's concern.
func (r *RequestService) Cancel(ctx context.Context, requestID, actorID string) (leave.Request, error) {
	request, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	if !request.Status.CanTransitionTo(leave.RequestStatusCancelled) {
		return leave.Request{}, leave.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	if err := r.RequestRepository.Finalize(ctx, leave.FinalizeRequest{
		ID:          request.ID,
		Status:      leave.RequestStatusCancelled,
		CancelledBy: &actorID,
		CancelledAt: &now,
	}); err != nil {
		return leave.Request{}, err
	}

	if err := r.balanceService.Release(ctx, request.EmployeeID, request.LeaveTypeID, request.Days, false); err != nil {
		return leave.Request{}, fmt.Errorf("failed to release reservation: %w", err)
	}

	request.Status = leave.RequestStatusCancelled
	request.CancelledBy = &actorID
	request.CancelledAt = &now

	return request, nil
}
