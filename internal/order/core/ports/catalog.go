package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Catalog client failure modes. The pricing engine translates these into
// the order-level error taxonomy, naming the offending product.
var (
	// ErrProductNotFound means the catalog authoritatively answered that
	// the product does not exist (remote 404).
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogUnavailable means the catalog could not be reached or
	// answered with a non-business failure. Not the caller's fault.
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
)

// Snapshot is a point-in-time read of one product's catalog facts.
// It is fetched fresh per order line and never cached across requests:
// the price and stock it reports are only as current as the moment of the
// lookup.
type Snapshot struct {
	ProductID         string
	Name              string
	Description       string
	UnitPrice         decimal.Decimal
	AvailableQuantity int
}

// CatalogClient fetches current product facts from the catalog service.
//
// bearerToken is the original caller's credential (without scheme) and is
// forwarded unchanged so the catalog's own authorization sees the real
// caller. Implementations are read-only: a lookup never mutates remote
// state, so retrying it is always safe.
type CatalogClient interface {
	Product(ctx context.Context, bearerToken, productID string) (*Snapshot, error)
}
