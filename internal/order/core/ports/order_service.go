package ports

import (
	"context"

	"orderhub/internal/order/core/domain"
	"orderhub/internal/pkg/auth"
)

// OrderService is the inbound port for order placement and retrieval.
// Every operation takes the Actor explicitly — there is no ambient
// security context to consult.
type OrderService interface {
	// Create validates and prices the requested lines against the live
	// catalog, then durably commits the resulting aggregate. Nothing is
	// persisted unless every line validates.
	Create(ctx context.Context, actor auth.Actor, items []domain.LineRequest) (*domain.Order, error)

	// ListOwn returns the actor's own orders in creation order.
	ListOwn(ctx context.Context, actor auth.Actor) ([]*domain.Order, error)

	// ListAll returns every order. Admin only.
	ListAll(ctx context.Context, actor auth.Actor) ([]*domain.Order, error)

	// GetByID returns one order, subject to the read policy:
	// domain.ErrOrderNotFound if absent, domain.ErrAccessDenied if it
	// exists but the actor may not read it.
	GetByID(ctx context.Context, actor auth.Actor, id string) (*domain.Order, error)
}
