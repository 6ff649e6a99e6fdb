// Package catalog implements the outbound HTTP adapter for the catalog
// service's lookup-by-id endpoint.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"orderhub/internal/order/core/ports"
)

// Client calls GET {baseURL}/api/products/{id} on the catalog service.
//
// The caller's bearer credential is forwarded unchanged on every request,
// so the catalog's authorization sees the original caller. Every call is
// bounded by the client timeout on top of whatever deadline the request
// context carries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

var _ ports.CatalogClient = (*Client)(nil)

// New builds a catalog client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		tracer: otel.Tracer("orderhub/catalog-client"),
	}
}

// productResponse mirrors the catalog's product payload. The id is not
// read back: the snapshot is keyed by the id we asked for.
type productResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Product fetches a fresh snapshot of one product's price and stock.
func (c *Client) Product(ctx context.Context, bearerToken, productID string) (*ports.Snapshot, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.get-product", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("catalog.product_id", productID))

	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ports.ErrCatalogUnavailable, err)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ports.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// 404 is the catalog's authoritative "no such product", not an
		// availability problem.
		return nil, ports.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		err := fmt.Errorf("%w: catalog returned status %s", ports.ErrCatalogUnavailable, resp.Status)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: decode product %s: %w", ports.ErrCatalogUnavailable, productID, err)
	}

	return &ports.Snapshot{
		ProductID:         productID,
		Name:              body.Name,
		Description:       body.Description,
		UnitPrice:         body.Price,
		AvailableQuantity: body.Quantity,
	}, nil
}
