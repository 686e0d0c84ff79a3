// Package httpclient provides the HTTP prober used by the scan engine: a
// client with per-request timeouts, optional retries, rate limiting and
// proxy support that turns every round trip into a classified outcome.
package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
	"subprobe/internal/platform/errors"
	"subprobe/internal/platform/logx"
)

// Client probes candidate URLs with GET requests.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

var _ ports.Prober = (*Client)(nil)

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the hard per-request timeout, covering connect, TLS,
	// headers and body drain.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxRetries is the number of extra attempts after a connection or
	// protocol failure. Timeouts and HTTP statuses are never retried.
	// Default: 0
	MaxRetries int

	// RetryBackoff is the initial backoff duration for retries.
	// Backoff increases exponentially with each retry.
	// Default: 200 milliseconds
	RetryBackoff time.Duration

	// MaxRetryBackoff is the maximum backoff duration between retries.
	// Default: 5 seconds
	MaxRetryBackoff time.Duration

	// UserAgent is the User-Agent header value.
	// Default: "subprobe/1.0"
	UserAgent string

	// RateLimit is the maximum requests per second across all workers.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// ProxyURL routes every request through an HTTP or SOCKS5 proxy.
	// Empty means the environment proxy settings are used.
	ProxyURL string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// MaxRedirects is the number of redirects followed before the attempt
	// is reported as a protocol error. The final status decides the outcome.
	// Default: 10
	MaxRedirects int

	// MaxDrainBytes caps how much of a response body is read before the
	// connection is released.
	// Default: 64 KiB
	MaxDrainBytes int64

	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         domain.DefaultRequestTimeout,
		MaxRetries:      0,
		RetryBackoff:    200 * time.Millisecond,
		MaxRetryBackoff: 5 * time.Second,
		UserAgent:       "subprobe/1.0",
		RateLimit:       0,
		RateLimitBurst:  1,
		MaxRedirects:    10,
		MaxDrainBytes:   64 << 10,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) (*Client, error) {
	// Apply defaults for zero values
	def := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = def.RetryBackoff
	}
	if config.MaxRetryBackoff <= 0 {
		config.MaxRetryBackoff = def.MaxRetryBackoff
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = def.RateLimitBurst
	}
	if config.MaxRedirects <= 0 {
		config.MaxRedirects = def.MaxRedirects
	}
	if config.MaxDrainBytes <= 0 {
		config.MaxDrainBytes = def.MaxDrainBytes
	}
	if logger == nil {
		logger = logx.New()
	}

	transport := config.Transport
	if transport == nil {
		t, err := newTransport(config)
		if err != nil {
			return nil, err
		}
		transport = t
	}

	maxRedirects := config.MaxRedirects
	httpClient := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return errors.Wrapf(errors.ErrProtocol, "stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	// An infinite limit lets every request through without waiting
	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}
	rateLimiter := rate.NewLimiter(limit, config.RateLimitBurst)

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}, nil
}

func newTransport(config Config) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 2
	t.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: config.InsecureSkipVerify, //nolint:gosec // opt-in flag
		MinVersion:         tls.VersionTLS12,
	}

	if config.ProxyURL != "" {
		proxy, err := url.Parse(config.ProxyURL)
		if err != nil || proxy.Scheme == "" || proxy.Host == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid proxy url %q", config.ProxyURL)
		}
		t.Proxy = http.ProxyURL(proxy)
	}
	return t, nil
}

// Probe performs a GET against req's URL and classifies the result.
//
// The rate limiter is waited on first; the per-request timeout starts after
// the wait. Connection and protocol failures are retried up to MaxRetries.
func (c *Client) Probe(ctx context.Context, req ports.ProbeRequest) domain.Outcome {
	target := req.URL()
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}

	start := time.Now()
	var outcome domain.Outcome

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		outcome = c.probeOnce(ctx, target, req.Scheme, timeout, attempt)

		if !c.shouldRetry(attempt, outcome) {
			break
		}
		if err := c.backoff(ctx, attempt); err != nil {
			break
		}
	}

	outcome.Duration = time.Since(start)
	return outcome
}

func (c *Client) probeOnce(ctx context.Context, target, scheme string, timeout time.Duration, attempt int) domain.Outcome {
	// Rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.Inconclusive(target, scheme, 0, errors.Wrap(err, "rate limit wait failed"))
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Inconclusive(target, scheme, 0, errors.Wrapf(err, "failed to create request for %s", target))
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "*/*")

	c.logger.Debug("HTTP probe",
		"url", target,
		"attempt", attempt+1,
		"max_attempts", c.config.MaxRetries+1,
	)

	reqStart := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		outcome := classifyError(ctx, target, scheme, err)
		c.logger.Debug("HTTP probe failed",
			"url", target,
			"attempt", attempt+1,
			"kind", outcome.Kind.String(),
			"error", err,
			"duration_ms", time.Since(reqStart).Milliseconds(),
		)
		return outcome
	}

	// The connection is only reusable once the body is drained
	_, drainErr := io.CopyN(io.Discard, resp.Body, c.config.MaxDrainBytes)
	resp.Body.Close()

	c.logger.Debug("HTTP response received",
		"url", target,
		"status", resp.StatusCode,
		"duration_ms", time.Since(reqStart).Milliseconds(),
	)

	if drainErr != nil && drainErr != io.EOF && errors.IsTimeout(drainErr) {
		return domain.TimedOut(target, scheme)
	}

	return ClassifyStatus(target, scheme, resp.StatusCode)
}

// ClassifyStatus maps an HTTP status to an outcome. Only 200, 403 and 404
// are classified; everything else is inconclusive.
func ClassifyStatus(target, scheme string, status int) domain.Outcome {
	switch status {
	case http.StatusOK:
		return domain.Live(target, scheme, status)
	case http.StatusNotFound:
		return domain.NotFound(target, scheme)
	case http.StatusForbidden:
		return domain.Forbidden(target, scheme)
	default:
		return domain.Inconclusive(target, scheme, status, nil)
	}
}

func classifyError(ctx context.Context, target, scheme string, err error) domain.Outcome {
	// Caller cancellation is not a property of the host
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return domain.Inconclusive(target, scheme, 0, err)
	}

	switch errors.ClassifyTransport(err) {
	case errors.ClassTimeout:
		return domain.TimedOut(target, scheme)
	case errors.ClassConnection:
		return domain.ConnectionFailed(target, scheme, err)
	case errors.ClassProtocol:
		return domain.ProtocolError(target, scheme, err)
	default:
		return domain.Inconclusive(target, scheme, 0, err)
	}
}

// shouldRetry determines if an attempt should be retried.
func (c *Client) shouldRetry(attempt int, outcome domain.Outcome) bool {
	// No more retries if max attempts reached
	if attempt >= c.config.MaxRetries {
		return false
	}

	switch outcome.Kind {
	case domain.OutcomeConnectionFailed, domain.OutcomeProtocolError:
		return true
	default:
		return false
	}
}

// backoff implements exponential backoff.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))

	// Cap at max backoff
	if backoff > c.config.MaxRetryBackoff {
		backoff = c.config.MaxRetryBackoff
	}

	c.logger.Debug("Backing off before retry",
		"attempt", attempt+1,
		"backoff_ms", backoff.Milliseconds(),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SetRateLimit updates the rate limit dynamically. It is safe to call while
// probes are running; rps <= 0 removes the limit.
func (c *Client) SetRateLimit(rps float64, burst int) {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	c.rateLimiter.SetLimit(limit)
	c.rateLimiter.SetBurst(burst)

	c.logger.Info("Rate limit updated",
		"rps", rps,
		"burst", burst,
	)
}

// RateLimit returns the current requests-per-second limit (0 = unlimited).
func (c *Client) RateLimit() float64 {
	limit := c.rateLimiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s, proxy=%t}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.RateLimit(),
		c.config.ProxyURL != "",
	)
}
