// Package backend is the HTTP client for the external schools API: auth,
// tenant directory and competitions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/schoolsapp/schools-web/internal/core/ports"
	"github.com/schoolsapp/schools-web/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Config captures the settings for reaching the external API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the base round tripper. http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Client issues JSON requests against the external API. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	base    http.RoundTripper
	// cache sits over base and keeps cacheable responses in memory.
	cache http.RoundTripper
}

// New returns a Client for cfg. A default timeout is applied when none is
// provided.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	cacheTransport := httpcache.NewTransport(httpcache.NewMemoryCache())
	cacheTransport.Transport = base

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		base:    base,
		cache:   cacheTransport,
	}
}

// httpClient returns a client over rt that attaches the bearer credential
// carried by ctx, if any.
func (c *Client) httpClient(ctx context.Context, rt http.RoundTripper) *http.Client {
	if token, ok := ports.AccessTokenFrom(ctx); ok {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   rt,
		}
	}
	return &http.Client{Transport: rt, Timeout: c.timeout}
}

// call describes one outbound request.
type call struct {
	op     string
	method string
	path   string
	in     any
	out    any
	// cached routes the call through the in-memory HTTP cache.
	cached bool
}

// do sends the call and decodes a 2xx JSON body into call.out. Any other
// status becomes an *APIError.
func (c *Client) do(ctx context.Context, req call) error {
	var body io.Reader
	if req.in != nil {
		payload, err := json.Marshal(req.in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", req.op, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	rt := c.base
	if req.cached {
		rt = c.cache
	}
	hc := c.httpClient(ctx, rt)

	start := time.Now()
	resp, err := hc.Do(httpReq)
	metrics.BackendRequestDuration.WithLabelValues(req.op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.op, "error").Inc()
		return fmt.Errorf("%s: %w", req.op, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues(req.op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, raw)
	}

	if req.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil && err != io.EOF {
		return fmt.Errorf("%s: decode response: %w", req.op, err)
	}
	// The cache transport stores a response only once its body hits EOF.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
