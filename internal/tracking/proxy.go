package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrProxyNotConfigured = errors.New("clika service not configured")
	ErrUpstream           = errors.New("clika service error")
)

// ProxyClient forwards tracking payloads to the Clika backend. A
// token bucket smooths the outbound request rate so a traffic spike
// on our side never hammers the upstream.
type ProxyClient struct {
	apiURL  string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewProxyClient(apiURL, apiKey string) *ProxyClient {
	return &ProxyClient{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
		// 5 rps outbound with room for small bursts
		limiter: rate.NewLimiter(5, 10),
	}
}

// Configured reports whether the upstream URL and key are both set.
func (p *ProxyClient) Configured() bool {
	return p.apiURL != "" && p.apiKey != ""
}

// Forward relays a JSON payload to the Clika proxy endpoint and
// returns the upstream's JSON response. The caller's forwarded-for
// chain is preserved for upstream analytics.
func (p *ProxyClient) Forward(ctx context.Context, payload json.RawMessage, forwardedFor string) (json.RawMessage, error) {
	if !p.Configured() {
		return nil, ErrProxyNotConfigured
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiURL+"/api/proxy", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", p.apiKey)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracking: clika request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	return body, nil
}
