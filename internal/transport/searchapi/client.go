package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/failure"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/request"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/result"
)

const searchPath = "/search"

// Client calls the external review search service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the search service settings.
type Config struct {
	BaseURL string
	// Timeout bounds a whole call. Zero waits indefinitely.
	Timeout time.Duration
	// HTTPClient overrides the transport (tests, proxies). Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// searchRequest is the POST /search body.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// searchHit is one element of the POST /search response array.
type searchHit struct {
	Comment    string  `json:"comment"`
	Rating     float64 `json:"rating"`
	ProductID  int64   `json:"product_id"`
	Similarity float64 `json:"similarity"`
}

// NewClient creates a search service client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// Search posts the query and returns hits in the order the service ranked them.
// Every error is a *failure.Error.
func (c *Client) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	body, err := json.Marshal(searchRequest{Query: req.Query(), Limit: req.Limit()})
	if err != nil {
		return nil, failure.Network(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, failure.Network(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, failure.Network(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// body is not surfaced; drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, failure.HTTPStatus(resp.StatusCode)
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, failure.Parse(err)
	}

	c.logger.Debug("search api call",
		zap.Int("status", resp.StatusCode),
		zap.Int("hits", len(hits)),
		zap.Duration("latency", time.Since(start)),
	)

	results := make([]result.Result, len(hits))
	for i, h := range hits {
		results[i] = result.New(h.Comment, h.Rating, h.ProductID, h.Similarity)
	}
	return results, nil
}

// HealthCheck reports whether the service answers HTTP at all. Any status counts.
func (c *Client) HealthCheck(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("search api unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
	return nil
}
