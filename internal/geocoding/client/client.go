// Package client implements the HTTP client for the upstream geocoding service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"geogateway/internal/geocoding/transport"
	"geogateway/platform/apperr"
	"geogateway/platform/config"
	"geogateway/platform/logger"
)

// Client issues one-shot lookups against the upstream geocoding service.
// No retries: a failed attempt surfaces immediately so callers see upstream
// health as it is.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New creates a Client against the configured upstream base URL. The HTTP
// client carries no timeout of its own; the gateway inherits whatever the
// underlying transport enforces.
func New(cfg config.GeocodingConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.GetGeocodingServiceURL(),
		http:    &http.Client{},
		log:     log,
	}
}

// Fetch resolves text against the upstream /geocoding endpoint. The optional
// k hint is forwarded verbatim as the k query parameter, and omitted entirely
// when empty. Any failure mode collapses into a KindUpstream error carrying
// the transport detail for server-side logging only.
func (c *Client) Fetch(ctx context.Context, text, k string) ([]transport.GeocodeResult, error) {
	params := url.Values{}
	params.Add("text", text)
	if k != "" {
		params.Add("k", k)
	}

	reqURL := fmt.Sprintf("%s/geocoding?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.UpstreamError("build_request", err)
		return nil, apperr.Upstream("failed to build upstream request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("geocoding_request", err)
		return nil, apperr.Upstream("geocoding service unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		c.log.UpstreamError("geocoding_status", err)
		return nil, apperr.Upstream("geocoding service returned an error status", err)
	}

	var results []transport.GeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.log.UpstreamError("geocoding_decode", err)
		return nil, apperr.Upstream("failed to decode geocoding payload", err)
	}

	return results, nil
}
