package ports

import (
	"context"

	"orderhub/internal/order/core/domain"
)

// OrderRepository is the port for persisting and reading order aggregates.
// It lives in the core but is implemented by the infrastructure layer, so
// the orchestrator can be tested against an in-memory implementation.
//
// Listings are returned in creation order. FindByID returns
// domain.ErrOrderNotFound for an unknown id.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
}
