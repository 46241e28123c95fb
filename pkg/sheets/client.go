// Package sheets posts order rows to the external sheet collector the
// storefront forwards checkouts to.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/orlecare/storefront-backend/pkg/config"
	"github.com/orlecare/storefront-backend/pkg/logger"
)

var errEndpointRequired = errors.New("sheet endpoint url is required")

// Doer is the transport surface the client depends on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client delivers order payloads to the configured collector endpoint.
// Delivery is fire-and-forget: the response body is never parsed and a
// completed request counts as success.
type Client struct {
	endpoint string
	http     Doer
	logg     *logger.Logger
}

// NewClient wires the collector endpoint from config. The underlying
// http.Client deliberately carries no timeout; the transport's own failure
// signaling is the only abort path.
func NewClient(cfg config.CheckoutConfig, logg *logger.Logger) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.SheetURL)
	if endpoint == "" {
		return nil, errEndpointRequired
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{},
		logg:     logg,
	}, nil
}

// WithDoer swaps the transport, for tests.
func (c *Client) WithDoer(doer Doer) *Client {
	if c == nil || doer == nil {
		return c
	}
	c.http = doer
	return c
}

// Submit posts the payload as a JSON document. The returned error is nil
// once the request completes, regardless of the collector's status code.
func (c *Client) Submit(ctx context.Context, payload any) error {
	if c == nil || c.http == nil {
		return errors.New("sheets client not initialized")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting order to collector: %w", err)
	}
	defer resp.Body.Close()

	// Write-only collector: drain so the connection can be reused, but the
	// body content and status code carry no meaning for the caller.
	_, _ = io.Copy(io.Discard, resp.Body)

	if c.logg != nil {
		c.logg.Info(c.logg.WithField(ctx, "collector_status", resp.StatusCode), "order forwarded to collector")
	}
	return nil
}
