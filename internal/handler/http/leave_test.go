package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
)

// stubLeaveService records GetRequest calls; the remaining methods exist only
// to satisfy the interface.
type stubLeaveService struct {
	getRequestCalls []string
	response        leave.RequestResponse
}

func (s *stubLeaveService) ListLeaveTypes(context.Context) ([]leave.LeaveTypeResponse, error) {
	return nil, nil
}

func (s *stubLeaveService) SubmitRequest(context.Context, leave.SubmitRequestRequest) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) ApproveRequest(context.Context, string, string) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) RejectRequest(context.Context, string, string, string) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) CancelRequest(context.Context, string, string) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) GetRequest(_ context.Context, requestID string) (leave.RequestResponse, error) {
	s.getRequestCalls = append(s.getRequestCalls, requestID)
	return s.response, nil
}

func (s *stubLeaveService) ListRequests(context.Context, string, leave.RequestFilter) ([]leave.RequestResponse, error) {
	return nil, nil
}

func (s *stubLeaveService) GetBalances(context.Context, string) ([]leave.BalanceResponse, error) {
	return nil, nil
}

func (s *stubLeaveService) AdjustBalance(context.Context, leave.AdjustBalanceRequest, string) (leave.BalanceResponse, error) {
	return leave.BalanceResponse{}, nil
}

func (s *stubLeaveService) BalanceHistory(context.Context, string, string) ([]leave.AdjustmentResponse, error) {
	return nil, nil
}

func newRequestRouter(service leave.LeaveService) *chi.Mux {
	handler := NewLeaveHandler(service)
	router := chi.NewRouter()
	router.Get("/leaves/requests/{id}", handler.GetRequest)
	return router
}

func TestGetRequestMalformedIDReturnsNotFound(t *testing.T) {
	stub := &stubLeaveService{}
	router := newRequestRouter(stub)

	for _, id := range []string{"not-a-uuid", "123", "123e4567-e89b-12d3-a456-426614174000"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/leaves/requests/"+id, nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code, "id %q", id)
	}

	// Garbage IDs never reach the service.
	assert.Empty(t, stub.getRequestCalls)
}

func TestGetRequestWellFormedIDReachesService(t *testing.T) {
	const requestID = "0195d3fe-1a2b-7cde-8f00-123456789abc"
	stub := &stubLeaveService{response: leave.RequestResponse{ID: requestID}}
	router := newRequestRouter(stub)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/leaves/requests/"+requestID, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, stub.getRequestCalls, 1)
	assert.Equal(t, requestID, stub.getRequestCalls[0])
}
