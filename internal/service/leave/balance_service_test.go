package leave

import (
	"context"
	"testing"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBalanceFixture() (*BalanceService, *fakeBalanceRepo, *fakeAdjustmentRepo) {
	balances := newFakeBalanceRepo()
	adjustments := newFakeAdjustmentRepo()
	return NewBalanceService(balances, adjustments), balances, adjustments
}

func TestGetBalanceUnknownPairReadsAsZero(t *testing.T) {
	service, _, _ := newBalanceFixture()

	balance, err := service.GetBalance(context.Background(), testEmployeeID, "type-annual")
	require.NoError(t, err)
	assert.True(t, balance.Accrued.IsZero())
	assert.True(t, balance.Taken.IsZero())
	assert.True(t, balance.Pending.IsZero())
	assert.True(t, balance.Available().IsZero())
}

func TestAdjustAppendsLedgerAndAccrues(t *testing.T) {
	ctx := context.Background()
	service, _, adjustments := newBalanceFixture()

	balance, err := service.Adjust(ctx, testEmployeeID, "type-annual", decimal.NewFromInt(5), "opening grant", "admin-1")
	require.NoError(t, err)
	assert.True(t, balance.Accrued.Equal(decimal.NewFromInt(5)))
	assert.True(t, balance.Available().Equal(decimal.NewFromInt(5)))

	history, err := adjustments.History(ctx, testEmployeeID, "type-annual")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "opening grant", history[0].Reason)
	assert.Equal(t, "admin-1", history[0].Actor)
	assert.NotEmpty(t, history[0].ID)
	assert.False(t, history[0].CreatedAt.IsZero())
}

func TestAdjustNegativeAmount(t *testing.T) {
	ctx := context.Background()
	service, balances, adjustments := newBalanceFixture()
	balances.seed(testEmployeeID, "type-annual", decimal.NewFromInt(5))

	balance, err := service.Adjust(ctx, testEmployeeID, "type-annual", decimal.NewFromInt(-2), "correction", "admin-1")
	require.NoError(t, err)
	assert.True(t, balance.Accrued.Equal(decimal.NewFromInt(3)))

	history, err := adjustments.History(ctx, testEmployeeID, "type-annual")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Amount.Equal(decimal.NewFromInt(-2)))
}

func TestAdjustBelowZeroFails(t *testing.T) {
	ctx := context.Background()
	service, balances, _ := newBalanceFixture()
	balances.seed(testEmployeeID, "type-annual", decimal.NewFromInt(2))

	_, err := service.Adjust(ctx, testEmployeeID, "type-annual", decimal.NewFromInt(-5), "correction", "admin-1")
	assert.ErrorIs(t, err, leave.ErrAccruedBelowZero)
}

func TestAdjustRequiresReasonAndActor(t *testing.T) {
	ctx := context.Background()
	service, _, adjustments := newBalanceFixture()

	_, err := service.Adjust(ctx, testEmployeeID, "type-annual", decimal.NewFromInt(1), "", "admin-1")
	assert.Error(t, err)

	_, err = service.Adjust(ctx, testEmployeeID, "type-annual", decimal.NewFromInt(1), "grant", "")
	assert.Error(t, err)

	history, err := adjustments.History(ctx, testEmployeeID, "type-annual")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLedgerSumMatchesAccrued(t *testing.T) {
	ctx := context.Background()
	service, _, adjustments := newBalanceFixture()

	amounts := []string{"5", "-2", "1.5", "0.25"}
	for _, amount := range amounts {
		_, err := service.Adjust(ctx, testEmployeeID, "type-annual", mustDecimal(t, amount), "entry "+amount, "admin-1")
		require.NoError(t, err)
	}

	history, err := adjustments.History(ctx, testEmployeeID, "type-annual")
	require.NoError(t, err)

	sum := decimal.Zero
	for _, entry := range history {
		sum = sum.Add(entry.Amount)
	}

	balance, err := service.GetBalance(ctx, testEmployeeID, "type-annual")
	require.NoError(t, err)
	assert.True(t, sum.Equal(balance.Accrued), "ledger sum %s, accrued %s", sum, balance.Accrued)
}
