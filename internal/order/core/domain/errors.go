package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder is returned when a create request carries no line items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrMissingOwner guards against constructing an aggregate without an owner.
	ErrMissingOwner = errors.New("order owner is required")

	// ErrOrderNotFound is returned when the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrAccessDenied is returned when the actor is not allowed to perform
	// the operation. Distinct from ErrOrderNotFound: an existing order that
	// belongs to someone else must surface as denied, not missing.
	ErrAccessDenied = errors.New("access denied")
)

// InvalidQuantityError names the line whose quantity is zero or negative.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be positive for product %s, got %d", e.ProductID, e.Quantity)
}

// ProductNotFoundError names the product the catalog does not know.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// CatalogUnavailableError wraps a transport-level failure reaching the
// catalog. Kept distinct from ProductNotFoundError so operators can tell
// "catalog is down" from "bad request" in logs and monitoring.
type CatalogUnavailableError struct {
	ProductID string
	Err       error
}

func (e *CatalogUnavailableError) Error() string {
	return fmt.Sprintf("catalog unavailable while resolving product %s: %v", e.ProductID, e.Err)
}

func (e *CatalogUnavailableError) Unwrap() error { return e.Err }

// InsufficientStockError carries the exact requested/available numbers so
// the caller sees why the line was rejected.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
