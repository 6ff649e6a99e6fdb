// Package memory implements an in-memory order repository, used by tests
// and local development without a database file.
package memory

import (
	"context"
	"sync"

	"orderhub/internal/order/core/domain"
	"orderhub/internal/order/core/ports"
)

// Repository provides an in-memory implementation of ports.OrderRepository.
// Orders are kept in insertion order so listings match creation order, the
// same contract the SQLite implementation provides.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	byID   map[string]*domain.Order
}

var _ ports.OrderRepository = (*Repository)(nil)

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{byID: make(map[string]*domain.Order)}
}

// Save stores the aggregate.
func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneOrder(order)
	r.orders = append(r.orders, stored)
	r.byID[order.ID] = stored
	return nil
}

// FindByID retrieves an order by id.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// FindByOwner returns the owner's orders in creation order.
func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.OwnerID == ownerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

// FindAll returns every order in creation order.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

// Len reports how many orders are stored. Test helper.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// cloneOrder copies the aggregate so callers cannot mutate stored state.
func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Lines = make([]domain.OrderLine, len(o.Lines))
	copy(clone.Lines, o.Lines)
	return &clone
}
