package httpx

import "github.com/shopspring/decimal"

// CreateOrderRequest is the inbound payload for order placement.
// No prices are accepted from the caller: the catalog is authoritative.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse is the order view returned to callers. Money fields are
// serialized as exact decimal strings.
type OrderResponse struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"owner_id"`
	OrderDate   string              `json:"order_date"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Items       []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
