package service

import (
	"context"
	"errors"

	"orderhub/internal/order/core/domain"
	"orderhub/internal/order/core/ports"
)

// pricer is the pricing and validation engine: it reconciles each requested
// line against a fresh catalog snapshot and produces the priced line list.
type pricer struct {
	catalog ports.CatalogClient
}

// priceLines validates and prices the requested lines in request order,
// short-circuiting on the first failure. On any error nothing is returned:
// there is no partially priced order.
//
// The catalog lookups are issued sequentially, one per line. Each lookup is
// independent and read-only, so they could be parallelized, but line order
// in the result always matches the submitted order.
func (p pricer) priceLines(ctx context.Context, bearerToken string, items []domain.LineRequest) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(items))

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &domain.InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}

		snapshot, err := p.catalog.Product(ctx, bearerToken, item.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrProductNotFound) {
				return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, &domain.CatalogUnavailableError{ProductID: item.ProductID, Err: err}
		}

		// Read-only stock check: stock is not reserved, so a concurrent
		// order can still deplete it between this check and the commit.
		if snapshot.AvailableQuantity < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: snapshot.AvailableQuantity,
			}
		}

		lines = append(lines, domain.NewOrderLine(item.ProductID, item.Quantity, snapshot.UnitPrice))
	}

	return lines, nil
}
