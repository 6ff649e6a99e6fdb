package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderhub/internal/order/core/ports"
)

func TestProductReturnsFreshSnapshot(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"name":"Widget","description":"a widget","price":10.50,"quantity":5}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	snap, err := client.Product(context.Background(), "caller-token", "42")
	require.NoError(t, err)

	assert.Equal(t, "/api/products/42", gotPath)
	// The original caller's credential is forwarded, not a service identity.
	assert.Equal(t, "Bearer caller-token", gotAuth)

	assert.Equal(t, "42", snap.ProductID)
	assert.Equal(t, "Widget", snap.Name)
	assert.Equal(t, 5, snap.AvailableQuantity)
	assert.Equal(t, "10.5", snap.UnitPrice.String())
}

func TestProductNotFoundIsDistinctFromUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Product(context.Background(), "tok", "missing")

	assert.ErrorIs(t, err, ports.ErrProductNotFound)
	assert.NotErrorIs(t, err, ports.ErrCatalogUnavailable)
}

func TestProductServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Product(context.Background(), "tok", "42")
	assert.ErrorIs(t, err, ports.ErrCatalogUnavailable)
}

func TestProductUnreachableCatalogIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := New(srv.URL, time.Second)
	_, err := client.Product(context.Background(), "tok", "42")
	assert.ErrorIs(t, err, ports.ErrCatalogUnavailable)
}

func TestProductLookupIsBoundedByTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	client := New(srv.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := client.Product(context.Background(), "tok", "42")
	assert.ErrorIs(t, err, ports.ErrCatalogUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestProductEscapesIDInPath(t *testing.T) {
	var gotRawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawPath = r.URL.EscapedPath()
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, _ = client.Product(context.Background(), "tok", "a/b")
	assert.Equal(t, "/api/products/a%2Fb", gotRawPath)
}
