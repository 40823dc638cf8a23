package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
)

// maxBodyBytes caps a single response.
const maxBodyBytes = 32 << 20

// HTTP fetches documents with a rate-limited, retrying http.Client.
type HTTP struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	limiter    *rate.Limiter
	// initialInterval is the first backoff delay.
	initialInterval time.Duration
}

// NewHTTP creates an HTTP fetcher. A RequestsPerMinute of zero disables
// pacing.
func NewHTTP(opts Options) *HTTP {
	opts = opts.withDefaults()

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	}
	return &HTTP{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent:       opts.UserAgent,
		maxRetries:      opts.MaxRetries,
		limiter:         rate.NewLimiter(limit, 1),
		initialInterval: 500 * time.Millisecond,
	}
}

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// FetchPage fetches an HTML page.
func (h *HTTP) FetchPage(ctx context.Context, url string) ([]byte, error) {
	return h.get(ctx, url, "text/html,application/xhtml+xml")
}

// FetchFile fetches a linked document.
func (h *HTTP) FetchFile(ctx context.Context, url string) ([]byte, error) {
	return h.get(ctx, url, "*/*")
}

func (h *HTTP) get(ctx context.Context, url, accept string) ([]byte, error) {
	start := time.Now()
	defer func() { logger.RecordTiming("fetch.http", time.Since(start)) }()

	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		if err := h.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limit wait: %w", err))
		}
		b, err := h.do(ctx, url, accept)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			logger.Debug("fetch attempt failed", logger.Fields{"url": url, "attempt": attempt, "error": err.Error()})
			return err
		}
		body = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = h.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(h.maxRetries)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		logger.IncrCounter("fetch.failures")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	logger.IncrCounter("fetch.requests")
	return body, nil
}

func (h *HTTP) do(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting page: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
