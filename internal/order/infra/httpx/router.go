package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"orderhub/internal/order/infra/httpx/middlewares"
	"orderhub/internal/pkg/auth"
)

// NewRouter assembles the HTTP surface. Every order route requires a valid
// bearer token; role and ownership checks happen in the core policy.
func NewRouter(handler *Handler, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/orders", func(r chi.Router) {
		r.Use(middlewares.RequireAuth(verifier))
		r.Post("/", handler.CreateOrder)
		r.Get("/", handler.AllOrders)
		r.Get("/me", handler.MyOrders)
		r.Get("/{id}", handler.OrderByID)
	})

	return r
}
