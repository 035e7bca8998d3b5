package leave

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequestStatusTransitions(t *testing.T) {
	terminal := []RequestStatus{RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled}

	for _, next := range terminal {
		assert.True(t, RequestStatusPending.CanTransitionTo(next), "pending -> %s", next)
	}

	// Terminal states permit nothing further, pending included.
	for _, from := range terminal {
		assert.True(t, from.IsTerminal())
		for _, next := range append(terminal, RequestStatusPending) {
			assert.False(t, from.CanTransitionTo(next), "%s -> %s", from, next)
		}
	}

	assert.False(t, RequestStatusPending.CanTransitionTo(RequestStatusPending))
	assert.False(t, RequestStatusPending.CanTransitionTo(RequestStatus("archived")))
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, RequestStatusPending.Valid())
	assert.False(t, RequestStatus("unknown").Valid())
	assert.False(t, RequestStatus("").Valid())
}

func TestBalanceAvailableDerived(t *testing.T) {
	balance := Balance{
		Accrued: decimal.NewFromInt(10),
		Taken:   decimal.NewFromInt(3),
		Pending: decimal.NewFromInt(2),
	}

	assert.True(t, balance.Available().Equal(decimal.NewFromInt(5)))
	assert.False(t, balance.IsNegative())

	balance.Pending = decimal.NewFromInt(8)
	assert.True(t, balance.Available().Equal(decimal.NewFromInt(-1)))
	assert.True(t, balance.IsNegative())
}
