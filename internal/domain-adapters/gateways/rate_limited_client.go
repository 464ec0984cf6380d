package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
)

const (
	// Retries after the first attempt (about 8.5 minutes of cumulative backoff)
	maxRetryAttempts = 8
	// Backoff is backoffBase^attempt seconds
	backoffBase = 2
	// Requests allowed per rate-limit window
	rateLimitCeiling = 5000
	// Longest pre-emptive pause near the ceiling
	maxPacingDelay = 2 * time.Second

	headerRateLimitUsed      = "X-RateLimit-Used"
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
)

// ErrRetriesExhausted is returned when every attempt of a request failed
var ErrRetriesExhausted = errors.New("retries exhausted")

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the response body into v
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RetryState tracks one in-flight request
type RetryState struct {
	Attempt   int
	Delay     time.Duration
	QuotaUsed int
}

// next advances the state after a failed attempt
func (s *RetryState) next() {
	s.Attempt++
	s.Delay = calculateBackoff(s.Attempt)
}

// RateLimitedClient performs GET requests with exponential backoff on failures and
// pre-emptive pacing as the rate-limit quota is consumed.
//
// The client mutates its pacing state on every call and must not be shared between
// goroutines.
type RateLimitedClient struct {
	client      *http.Client
	maxAttempts int
	sleep       func(time.Duration)
	logger      interfaces.Logger

	pacing    time.Duration
	quotaUsed int
}

// RateLimitedClientOption configures a RateLimitedClient
type RateLimitedClientOption func(*RateLimitedClient)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) RateLimitedClientOption {
	return func(c *RateLimitedClient) {
		c.client = client
	}
}

// WithSleeper replaces time.Sleep, mainly for tests
func WithSleeper(sleep func(time.Duration)) RateLimitedClientOption {
	return func(c *RateLimitedClient) {
		c.sleep = sleep
	}
}

// WithMaxAttempts overrides the number of retries
func WithMaxAttempts(attempts int) RateLimitedClientOption {
	return func(c *RateLimitedClient) {
		c.maxAttempts = attempts
	}
}

// WithLogger sets the logger
func WithLogger(logger interfaces.Logger) RateLimitedClientOption {
	return func(c *RateLimitedClient) {
		c.logger = logger
	}
}

// NewRateLimitedClient creates a new client
func NewRateLimitedClient(opts ...RateLimitedClientOption) *RateLimitedClient {
	c := &RateLimitedClient{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		maxAttempts: maxRetryAttempts,
		sleep:       time.Sleep,
		logger:      &interfaces.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = interfaces.OrNoOp(c.logger)
	return c
}

// Pacing returns the delay applied after the last successful request
func (c *RateLimitedClient) Pacing() time.Duration {
	return c.pacing
}

// QuotaUsed returns the last observed rate-limit usage
func (c *RateLimitedClient) QuotaUsed() int {
	return c.quotaUsed
}

// Get issues a GET request.
//
// 200 responses are returned after the pacing delay. 409 responses are returned
// immediately. Transport errors and any other status are retried with a
// 2^attempt second backoff. When retries run out the last response (possibly nil)
// is returned together with ErrRetriesExhausted.
func (c *RateLimitedClient) Get(ctx context.Context, rawURL string, headers map[string]string, params url.Values) (*Response, error) {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	state := RetryState{}
	var last *Response
	var lastErr error

	for {
		c.logger.Debug("Sending request", interfaces.F("url", target), interfaces.F("attempt", state.Attempt))

		resp, err := c.do(ctx, target, headers)
		switch {
		case err != nil:
			lastErr = err
			c.logger.Warn("Request failed", interfaces.F("url", target), interfaces.F("error", err))
		case resp.StatusCode == http.StatusConflict:
			return resp, nil
		case resp.StatusCode == http.StatusOK:
			state.QuotaUsed = quotaUsed(resp.Header)
			c.applyPacing(state)
			return resp, nil
		default:
			last = resp
			lastErr = nil
		}

		if state.Attempt >= c.maxAttempts {
			break
		}

		state.next()
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		c.logger.Warn("The previous attempt failed, retrying",
			interfaces.F("status", status),
			interfaces.F("attempt", fmt.Sprintf("%d/%d", state.Attempt, c.maxAttempts)),
			interfaces.F("sleep", state.Delay))
		c.sleep(state.Delay)
	}

	if lastErr != nil {
		return last, fmt.Errorf("GET %s: %w: %w", target, ErrRetriesExhausted, lastErr)
	}
	return last, fmt.Errorf("GET %s: %w (status %d)", target, ErrRetriesExhausted, last.StatusCode)
}

// do performs a single request and reads the whole body
func (c *RateLimitedClient) do(ctx context.Context, target string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// applyPacing stores the observed usage and sleeps the derived delay
func (c *RateLimitedClient) applyPacing(state RetryState) {
	if state.QuotaUsed < 0 {
		c.pacing = 0
		return
	}
	c.quotaUsed = state.QuotaUsed
	c.pacing = pacingDelay(state.QuotaUsed)

	if c.quotaUsed >= rateLimitCeiling-500 {
		c.logger.Warn("Rate limit almost exhausted", interfaces.F("used", c.quotaUsed), interfaces.F("limit", rateLimitCeiling))
	}

	if c.pacing > 0 {
		c.logger.Debug("Pacing requests", interfaces.F("used", c.quotaUsed), interfaces.F("delay", c.pacing))
		c.sleep(c.pacing)
	}
}

// pacingDelay maps rate-limit usage to a pre-emptive delay
func pacingDelay(used int) time.Duration {
	switch {
	case used < 2000:
		return 0
	case used < 3000:
		return 100 * time.Millisecond
	case used < 4000:
		return 500 * time.Millisecond
	case used < 4500:
		return 700 * time.Millisecond
	case used < rateLimitCeiling:
		// 1s at 4500 growing linearly to 2s at the ceiling
		extra := time.Duration(used-4500) * time.Second / 500
		return time.Second + extra
	default:
		return maxPacingDelay
	}
}

// quotaUsed reads the usage counter from response headers, -1 when unknown
func quotaUsed(header http.Header) int {
	if used := header.Get(headerRateLimitUsed); used != "" {
		if n, err := strconv.Atoi(used); err == nil {
			return n
		}
	}

	limit, errLimit := strconv.Atoi(header.Get(headerRateLimitLimit))
	remaining, errRemaining := strconv.Atoi(header.Get(headerRateLimitRemaining))
	if errLimit != nil || errRemaining != nil {
		return -1
	}
	return limit - remaining
}

// calculateBackoff returns the backoff duration for a retry attempt
func calculateBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(backoffBase, float64(attempt))) * time.Second
}

func buildURL(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		query := u.Query()
		for key, values := range params {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
