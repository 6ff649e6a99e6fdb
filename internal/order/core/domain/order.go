package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order.
// Placed orders are immutable in this service, so PENDING is the only
// state an order ever reaches here; fulfillment transitions live elsewhere.
type Status string

const StatusPending Status = "PENDING"

// LineRequest is a single (product, quantity) pair as submitted by the
// caller. It carries no price: prices are always resolved against the
// catalog at order time, never trusted from the client.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// OrderLine is a priced line item inside an order aggregate.
// UnitPrice is the catalog price captured at purchase time; it is never
// recomputed after the order is created.
type OrderLine struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// NewOrderLine prices a line from a catalog snapshot price.
func NewOrderLine(productID string, quantity int, unitPrice decimal.Decimal) OrderLine {
	return OrderLine{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Order is the aggregate root. Lines have no identity outside their order
// and the whole aggregate is read-only once persisted.
type Order struct {
	ID          string
	OwnerID     string
	Status      Status
	TotalAmount decimal.Decimal
	Lines       []OrderLine
	CreatedAt   time.Time
}

// NewOrder builds an order aggregate from already-priced lines.
// The total is computed here, exactly once, as the decimal sum of the line
// totals; it is stored with the order and never derived again.
func NewOrder(ownerID string, lines []OrderLine) (*Order, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}

	return &Order{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Status:      StatusPending,
		TotalAmount: total,
		Lines:       lines,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
