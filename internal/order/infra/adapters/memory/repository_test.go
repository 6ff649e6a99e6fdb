package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderhub/internal/order/core/domain"
)

func testOrder(t *testing.T, owner string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(owner, []domain.OrderLine{
		domain.NewOrderLine("P1", 2, decimal.NewFromInt(10)),
	})
	require.NoError(t, err)
	return order
}

func TestSaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := New()

	order := testOrder(t, "alice")
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(20)))

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListingsAreCreationOrdered(t *testing.T) {
	ctx := context.Background()
	repo := New()

	a1 := testOrder(t, "alice")
	b1 := testOrder(t, "bob")
	a2 := testOrder(t, "alice")
	for _, o := range []*domain.Order{a1, b1, a2} {
		require.NoError(t, repo.Save(ctx, o))
	}

	mine, err := repo.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, a1.ID, mine[0].ID)
	assert.Equal(t, a2.ID, mine[1].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, repo.Len())
}

func TestStoredOrdersAreIsolatedFromCallerMutation(t *testing.T) {
	ctx := context.Background()
	repo := New()

	order := testOrder(t, "alice")
	require.NoError(t, repo.Save(ctx, order))

	// Mutating the caller's copy after Save must not affect stored state.
	order.Lines[0].Quantity = 999

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}
