package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderhub/internal/order/core/service"
	"orderhub/internal/order/infra/adapters/catalog"
	"orderhub/internal/order/infra/adapters/sqlite"
	"orderhub/internal/order/infra/httpx"
	"orderhub/internal/pkg/auth"
	"orderhub/internal/pkg/cache"
	"orderhub/internal/pkg/config"
	"orderhub/internal/pkg/telemetry"
)

const serviceName = "order-service"

func main() {
	cfg := config.Load()
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, serviceName)
	if err != nil {
		log.Fatalf("tracer setup failed: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(flushCtx)
	}()

	repo, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open order store: %v", err)
	}
	defer repo.Close()

	verifier, err := buildVerifier(cfg)
	if err != nil {
		log.Fatalf("auth setup failed: %v", err)
	}

	var idem cache.IdempotencyStore
	if cfg.RedisAddr != "" {
		idem = cache.NewRedisStore(cfg.RedisAddr, serviceName)
	}

	catalogClient := catalog.New(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	orders := service.New(repo, catalogClient)
	handler := httpx.NewHandler(orders, idem)
	router := httpx.NewRouter(handler, verifier)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", serviceName, cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

// buildVerifier prefers the identity provider's RS256 public key; the HMAC
// secret is a dev fallback.
func buildVerifier(cfg config.Config) (*auth.Verifier, error) {
	if cfg.JWTPublicKeyFile != "" {
		pem, err := os.ReadFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		return auth.NewRSAVerifier(pem, cfg.AuthClientID)
	}
	if cfg.JWTSecret != "" {
		return auth.NewHMACVerifier([]byte(cfg.JWTSecret), cfg.AuthClientID), nil
	}
	return nil, errors.New("either JWT_PUBLIC_KEY_FILE or JWT_SECRET must be set")
}
