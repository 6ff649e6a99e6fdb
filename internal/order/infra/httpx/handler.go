package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"orderhub/internal/order/core/domain"
	"orderhub/internal/order/core/ports"
	"orderhub/internal/order/infra/httpx/middlewares"
	"orderhub/internal/pkg/auth"
	"orderhub/internal/pkg/cache"
)

// idempotencyTTL bounds how long a create-order key is replayable.
const idempotencyTTL = 24 * time.Hour

// Handler handles incoming HTTP requests for the order domain.
type Handler struct {
	orders ports.OrderService
	idem   cache.IdempotencyStore // nil-safe: replay protection skipped if nil
}

// NewHandler initializes the handler with the order service.
// idem may be nil — in that case create requests are never deduplicated.
func NewHandler(orders ports.OrderService, idem cache.IdempotencyStore) *Handler {
	return &Handler{orders: orders, idem: idem}
}

// CreateOrder validates and places an order for the authenticated actor.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	// A replayed idempotency key returns the originally created order
	// instead of placing a duplicate.
	idemKey := middlewares.IdempotencyKey(r.Context())
	if existing := h.replayedOrder(r, actor, idemKey); existing != nil {
		writeJSON(w, http.StatusCreated, mapOrderToResponse(existing))
		return
	}

	items := make([]domain.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.orders.Create(r.Context(), actor, items)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if h.idem != nil && idemKey != "" {
		if err := h.idem.Remember(r.Context(), idemKey, order.ID, idempotencyTTL); err != nil {
			// The order is already committed; losing the replay record only
			// weakens dedup, so log and keep going.
			slog.ErrorContext(r.Context(), "failed to record idempotency key", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

// replayedOrder resolves an idempotency key to the order it created, if any.
func (h *Handler) replayedOrder(r *http.Request, actor auth.Actor, idemKey string) *domain.Order {
	if h.idem == nil || idemKey == "" {
		return nil
	}
	orderID, err := h.idem.Lookup(r.Context(), idemKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "idempotency lookup failed", "error", err)
		return nil
	}
	if orderID == "" {
		return nil
	}
	order, err := h.orders.GetByID(r.Context(), actor, orderID)
	if err != nil {
		// Key from another actor or a vanished order: fall through and
		// treat the request as fresh.
		return nil
	}
	return order
}

// MyOrders lists the authenticated actor's own orders.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	orders, err := h.orders.ListOwn(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

// AllOrders lists every order. Admin only.
func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	orders, err := h.orders.ListAll(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

// OrderByID returns a single order, subject to the read policy.
func (h *Handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	id := chi.URLParam(r, "id")
	order, err := h.orders.GetByID(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// writeDomainError maps the core error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		invalidQty   *domain.InvalidQuantityError
		notFound     *domain.ProductNotFoundError
		unavailable  *domain.CatalogUnavailableError
		insufficient *domain.InsufficientStockError
	)

	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, "empty_order", err.Error())
	case errors.As(err, &invalidQty):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.As(err, &insufficient):
		writeError(w, http.StatusBadRequest, "insufficient_stock", err.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.As(err, &unavailable):
		writeError(w, http.StatusBadGateway, "catalog_unavailable", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access_denied", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

// mapOrderToResponse converts the aggregate to the HTTP response format.
func mapOrderToResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Lines))
	for i, line := range order.Lines {
		items[i] = OrderItemResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}
	}
	return OrderResponse{
		ID:          order.ID,
		OwnerID:     order.OwnerID,
		OrderDate:   order.CreatedAt.UTC().Format(time.RFC3339Nano),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Items:       items,
	}
}

func mapOrdersToResponse(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrderToResponse(o)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
