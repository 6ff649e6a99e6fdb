package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderhub/internal/order/core/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testOrder(t *testing.T, owner string, lines ...domain.OrderLine) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(owner, lines)
	require.NoError(t, err)
	return order
}

func TestSaveAndFindByIDRoundTripsExactly(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	order := testOrder(t, "alice",
		domain.NewOrderLine("P1", 2, money("10.00")),
		domain.NewOrderLine("P2", 3, money("0.10")),
	)
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, "alice", got.OwnerID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.TotalAmount.Equal(money("20.30")), "got %s", got.TotalAmount)
	assert.True(t, got.CreatedAt.Equal(order.CreatedAt), "got %s want %s", got.CreatedAt, order.CreatedAt)

	require.Len(t, got.Lines, 2)
	assert.Equal(t, "P1", got.Lines[0].ProductID)
	assert.True(t, got.Lines[0].UnitPrice.Equal(money("10.00")))
	assert.True(t, got.Lines[0].LineTotal.Equal(money("20.00")))
	assert.Equal(t, "P2", got.Lines[1].ProductID)
	assert.True(t, got.Lines[1].LineTotal.Equal(money("0.30")))
}

func TestFindByIDUnknownOrder(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestFindByOwnerFiltersAndPreservesCreationOrder(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first := testOrder(t, "alice", domain.NewOrderLine("P1", 1, money("1")))
	second := testOrder(t, "alice", domain.NewOrderLine("P1", 2, money("1")))
	// Force distinct creation times; SQLite ordering is by created_at.
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other := testOrder(t, "bob", domain.NewOrderLine("P1", 3, money("1")))

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	mine, err := repo.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)
	assert.Equal(t, second.ID, mine[1].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindByOwnerEmptyResult(t *testing.T) {
	repo := openTestRepo(t)
	orders, err := repo.FindByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestLinePositionsSurviveManyLines(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	var lines []domain.OrderLine
	for _, id := range []string{"P9", "P1", "P5", "P3", "P7"} {
		lines = append(lines, domain.NewOrderLine(id, 1, money("1.00")))
	}
	order := testOrder(t, "alice", lines...)
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 5)
	for i, id := range []string{"P9", "P1", "P5", "P3", "P7"} {
		assert.Equal(t, id, got.Lines[i].ProductID)
	}
}
