package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

// In-memory repository implementations mirroring the PostgreSQL guard
// semantics, so the services can be exercised without a database.

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func newFakeLeaveTypeRepo(types ...leave.LeaveType) *fakeLeaveTypeRepo {
	repo := &fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)}
	for _, t := range types {
		repo.types[t.ID] = t
	}
	return repo
}

func (r *fakeLeaveTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	leaveType, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return leaveType, nil
}

func (r *fakeLeaveTypeRepo) ListActive(_ context.Context) ([]leave.LeaveType, error) {
	active := make([]leave.LeaveType, 0)
	for _, leaveType := range r.types {
		if leaveType.IsActive {
			active = append(active, leaveType)
		}
	}
	return active, nil
}

type fakeBalanceRepo struct {
	balances map[leave.BalanceKey]*leave.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[leave.BalanceKey]*leave.Balance)}
}

func (r *fakeBalanceRepo) seed(employeeID, leaveTypeID string, accrued decimal.Decimal) {
	key := leave.BalanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}
	r.balances[key] = &leave.Balance{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Accrued:     accrued,
	}
}

func (r *fakeBalanceRepo) Get(_ context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	key := leave.BalanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}
	balance, ok := r.balances[key]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *balance, nil
}

func (r *fakeBalanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Balance, error) {
	balances := make([]leave.Balance, 0)
	for _, balance := range r.balances {
		if balance.EmployeeID == employeeID {
			balances = append(balances, *balance)
		}
	}
	return balances, nil
}

func (r *fakeBalanceRepo) ListKeys(_ context.Context, leaveTypeID string) ([]leave.BalanceKey, error) {
	keys := make([]leave.BalanceKey, 0)
	for key := range r.balances {
		if key.LeaveTypeID == leaveTypeID {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (r *fakeBalanceRepo) ApplyAccrual(_ context.Context, employeeID, leaveTypeID string, amount decimal.Decimal) error {
	key := leave.BalanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}
	balance, ok := r.balances[key]
	if !ok {
		if amount.IsNegative() {
			return leave.ErrAccruedBelowZero
		}
		r.balances[key] = &leave.Balance{EmployeeID: employeeID, LeaveTypeID: leaveTypeID, Accrued: amount}
		return nil
	}
	if balance.Accrued.Add(amount).IsNegative() {
		return leave.ErrAccruedBelowZero
	}
	balance.Accrued = balance.Accrued.Add(amount)
	return nil
}

func (r *fakeBalanceRepo) Reserve(_ context.Context, employeeID, leaveTypeID string, days decimal.Decimal, allowNegative bool) error {
	key := leave.BalanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}
	balance, ok := r.balances[key]
	if !ok {
		if !allowNegative {
			return leave.ErrInsufficientBalance
		}
		r.balances[key] = &leave.Balance{EmployeeID: employeeID, LeaveTypeID: leaveTypeID, Pending: days}
		return nil
	}
	if !allowNegative && balance.Available().Sub(days).IsNegative() {
		return leave.ErrInsufficientBalance
	}
	balance.Pending = balance.Pending.Add(days)
	return nil
}

func (r *fakeBalanceRepo) Release(_ context.Context, employeeID, leaveTypeID string, days decimal.Decimal, credit bool) error {
	key := leave.BalanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}
	balance, ok := r.balances[key]
	if !ok {
		return nil
	}
	balance.Pending = balance.Pending.Sub(days)
	if credit {
		balance.Taken = balance.Taken.Add(days)
	}
	return nil
}

type fakeAdjustmentRepo struct {
	entries []leave.Adjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{entries: make([]leave.Adjustment, 0)}
}

func (r *fakeAdjustmentRepo) Append(_ context.Context, adj leave.Adjustment) (leave.Adjustment, error) {
	adj.CreatedAt = time.Now()
	r.entries = append(r.entries, adj)
	return adj, nil
}

func (r *fakeAdjustmentRepo) History(_ context.Context, employeeID, leaveTypeID string) ([]leave.Adjustment, error) {
	history := make([]leave.Adjustment, 0)
	for _, entry := range r.entries {
		if entry.EmployeeID == employeeID && entry.LeaveTypeID == leaveTypeID {
			history = append(history, entry)
		}
	}
	return history, nil
}

func (r *fakeAdjustmentRepo) HasEntry(_ context.Context, employeeID, leaveTypeID, actor, reason string) (bool, error) {
	for _, entry := range r.entries {
		if entry.EmployeeID == employeeID && entry.LeaveTypeID == leaveTypeID &&
			entry.Actor == actor && entry.Reason == reason {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo struct {
	requests map[string]*leave.Request
	order    []string
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.Request)}
}

func (r *fakeRequestRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	r.nextID++
	req.ID = fmt.Sprintf("request-%d", r.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	stored := req
	r.requests[req.ID] = &stored
	r.order = append(r.order, req.ID)
	return req, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	request, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return *request, nil
}

func (r *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string, filter leave.RequestFilter) ([]leave.Request, error) {
	requests := make([]leave.Request, 0)
	// newest first
	for i := len(r.order) - 1; i >= 0; i-- {
		request := r.requests[r.order[i]]
		if request.EmployeeID != employeeID {
			continue
		}
		if filter.Status != "" && string(request.Status) != filter.Status {
			continue
		}
		if filter.LeaveTypeID != "" && request.LeaveTypeID != filter.LeaveTypeID {
			continue
		}
		requests = append(requests, *request)
	}
	return requests, nil
}

func (r *fakeRequestRepo) Finalize(_ context.Context, req leave.FinalizeRequest) error {
	request, ok := r.requests[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ErrRequestAlreadyProcessed
	}
	request.Status = req.Status
	request.ApprovedBy = req.ApprovedBy
	request.ApprovedAt = req.ApprovedAt
	request.RejectedBy = req.RejectedBy
	request.RejectedAt = req.RejectedAt
	request.RejectionReason = req.RejectionReason
	request.CancelledBy = req.CancelledBy
	request.CancelledAt = req.CancelledAt
	request.UpdatedAt = time.Now()
	return nil
}

// sumPendingDays totals the days held by pending requests for the pair; the
// tests use it to check the reservation accounting against the request store.
func (r *fakeRequestRepo) sumPendingDays(employeeID, leaveTypeID string) decimal.Decimal {
	sum := decimal.Zero
	for _, request := range r.requests {
		if request.EmployeeID == employeeID && request.LeaveTypeID == leaveTypeID &&
			request.Status == leave.RequestStatusPending {
			sum = sum.Add(request.Days)
		}
	}
	return sum
}
