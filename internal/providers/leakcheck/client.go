// File: internal/providers/leakcheck/client.go
// HTTP client for the LeakCheck public breach lookup API. The API is
// rate-limited and its response shape has drifted over time (list of strings,
// list of objects, field renames), so the client returns the raw decoded
// payload and leaves shape coercion to the normalizer.
package leakcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/exposcan/internal/config"
	"github.com/xkilldash9x/exposcan/internal/network"
)

// sourceKeys are the top-level response fields, in priority order, under
// which the API has shipped its breach list.
var sourceKeys = []string{"sources", "breaches", "result"}

// Client talks to the LeakCheck API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	// resilience: rate limiter for the upstream service. gotta be a good net citizen.
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a breach lookup client. A nil httpClient gets the default
// tuned client; a zero rate limit falls back to one request per second.
func New(cfg config.LeakCheckConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		clientCfg := network.NewDefaultClientConfig()
		if cfg.Timeout > 0 {
			clientCfg.RequestTimeout = cfg.Timeout
		}
		httpClient = network.NewClient(clientCfg)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 1
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
		logger:     logger.Named("leakcheck"),
	}
}

// Lookup queries the API for breach sources containing the given email and
// returns the raw breach list. The caller normalizes the shape; this method
// only guarantees valid JSON was decoded.
func (c *Client) Lookup(ctx context.Context, email string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	query := url.Values{}
	query.Set("check", email)
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build breach lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("breach lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 404 means the provider has nothing on this email; everything else
		// is a degradation the orchestrator will log.
		if resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("breach lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read breach lookup response: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("parse breach lookup response: %w", err)
	}

	c.logger.Debug("Breach lookup completed", zap.Int("status", resp.StatusCode))
	return extractBreachList(decoded), nil
}

// extractBreachList digs the breach list out of an envelope response. A
// payload that is already a list passes through untouched; an object without
// a recognized list field yields nil, which normalizes to no breaches.
func extractBreachList(decoded any) any {
	envelope, ok := decoded.(map[string]any)
	if !ok {
		return decoded
	}
	for _, key := range sourceKeys {
		if list, ok := envelope[key]; ok {
			return list
		}
	}
	return nil
}
