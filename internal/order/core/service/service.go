// Package service implements the order orchestrator: it composes the
// catalog client, the pricing engine, the access policy and the repository
// into the order placement and retrieval operations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"orderhub/internal/order/core/domain"
	"orderhub/internal/order/core/ports"
	"orderhub/internal/pkg/auth"
)

// Service is the concrete OrderService.
type Service struct {
	repo   ports.OrderRepository
	pricer pricer
	policy Policy
}

var _ ports.OrderService = (*Service)(nil)

// New wires the orchestrator with its repository and catalog client.
func New(repo ports.OrderRepository, catalog ports.CatalogClient) *Service {
	return &Service{
		repo:   repo,
		pricer: pricer{catalog: catalog},
	}
}

// Create validates the request, prices every line against the live catalog
// and commits the aggregate. Validation is strictly before persistence:
// any failure on any line aborts the whole operation with no store write.
func (s *Service) Create(ctx context.Context, actor auth.Actor, items []domain.LineRequest) (*domain.Order, error) {
	if !s.policy.CanCreate(actor) {
		return nil, domain.ErrAccessDenied
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	lines, err := s.pricer.priceLines(ctx, actor.Token, items)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(actor.SubjectID, lines)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"owner_id", order.OwnerID,
		"lines", len(order.Lines),
		"total", order.TotalAmount.String(),
	)
	return order, nil
}

// ListOwn returns the actor's orders in creation order.
func (s *Service) ListOwn(ctx context.Context, actor auth.Actor) ([]*domain.Order, error) {
	if !s.policy.CanReadOwn(actor) {
		return nil, domain.ErrAccessDenied
	}
	return s.repo.FindByOwner(ctx, actor.SubjectID)
}

// ListAll returns every order. Admin only.
func (s *Service) ListAll(ctx context.Context, actor auth.Actor) ([]*domain.Order, error) {
	if !s.policy.CanListAll(actor) {
		return nil, domain.ErrAccessDenied
	}
	return s.repo.FindAll(ctx)
}

// GetByID fetches one order and applies the read policy. A missing order is
// ErrOrderNotFound for any actor; an existing order the actor does not own
// is ErrAccessDenied, never not-found, so existence is not leaked through
// the error kind and admins keep full visibility.
func (s *Service) GetByID(ctx context.Context, actor auth.Actor, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanRead(actor, order) {
		return nil, domain.ErrAccessDenied
	}
	return order, nil
}
