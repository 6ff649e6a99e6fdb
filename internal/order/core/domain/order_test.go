package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewOrderLinePricesExactly(t *testing.T) {
	line := NewOrderLine("p1", 3, money("19.99"))

	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(money("19.99")))
	assert.True(t, line.LineTotal.Equal(money("59.97")), "got %s", line.LineTotal)
}

func TestNewOrderTotalEqualsSumOfLineTotals(t *testing.T) {
	// Prices chosen to drift under binary floating point accumulation.
	lines := []OrderLine{
		NewOrderLine("p1", 3, money("0.10")),
		NewOrderLine("p2", 7, money("0.20")),
		NewOrderLine("p3", 1, money("1234.56")),
	}

	order, err := NewOrder("user-1", lines)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "user-1", order.OwnerID)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.True(t, order.TotalAmount.Equal(money("1236.26")), "got %s", order.TotalAmount)
}

func TestNewOrderRejectsEmptyLineList(t *testing.T) {
	_, err := NewOrder("user-1", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestNewOrderRejectsMissingOwner(t *testing.T) {
	_, err := NewOrder("", []OrderLine{NewOrderLine("p1", 1, money("1"))})
	assert.ErrorIs(t, err, ErrMissingOwner)
}

func TestNewOrderPreservesLineOrder(t *testing.T) {
	lines := []OrderLine{
		NewOrderLine("p3", 1, money("1")),
		NewOrderLine("p1", 1, money("1")),
		NewOrderLine("p2", 1, money("1")),
	}
	order, err := NewOrder("user-1", lines)
	require.NoError(t, err)

	ids := []string{order.Lines[0].ProductID, order.Lines[1].ProductID, order.Lines[2].ProductID}
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
}
