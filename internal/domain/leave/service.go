package leave

import (
	"context"
)

type LeaveService interface {
	// Configuration (read-only; leave types are owned elsewhere)
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)

	// Requests
	SubmitRequest(ctx context.Context, req SubmitRequestRequest) (RequestResponse, error)
	ApproveRequest(ctx context.Context, requestID, approverID string) (RequestResponse, error)
	RejectRequest(ctx context.Context, requestID, approverID, reason string) (RequestResponse, error)
	CancelRequest(ctx context.Context, requestID, actorID string) (RequestResponse, error)
	GetRequest(ctx context.Context, requestID string) (RequestResponse, error)
	ListRequests(ctx context.Context, employeeID string, filter RequestFilter) ([]RequestResponse, error)

	// Balances
	GetBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest, actor string) (BalanceResponse, error)
	BalanceHistory(ctx context.Context, employeeID, leaveTypeID string) ([]AdjustmentResponse, error)
}
