// Package httpx holds the outbound-call resilience policy shared by every
// fetcher: bounded retries with linearly increasing delay, a retryable-status
// predicate, and a circuit breaker per remote endpoint.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// RetryConfig controls the retry behaviour. Delay before attempt n+1 is
// BaseDelay * n, capped at MaxDelay when MaxDelay > 0.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// ClientConfig bundles the HTTP client and retry settings.
type ClientConfig struct {
	Client *http.Client
	Retry  RetryConfig
}

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid retry configuration")
)

// NewBreaker returns a circuit breaker with the settings used for all
// outbound endpoints.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// Retryable reports whether a response status is worth another attempt.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Do executes the request built by buildRequest with retries, linear backoff,
// and the given circuit breaker. Each failed attempt is logged by the caller
// through the returned error chain; only the final failure is surfaced.
func Do(
	ctx context.Context,
	cfg ClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Retry.MaxAttempts < 1 || cfg.Retry.BaseDelay <= 0 {
		return nil, errInvalidConfig
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.Retry.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if Retryable(resp.StatusCode) {
				resp.Body.Close()
				if resp.StatusCode == http.StatusTooManyRequests {
					return nil, errRateLimited
				}
				return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// An open circuit will not recover within this run; stop early.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		// A non-retryable status will not change on another attempt.
		if errors.Is(err, errUnexpected) {
			return nil, err
		}

		lastErr = err
		if attempt == cfg.Retry.MaxAttempts {
			break
		}

		delay := cfg.Retry.BaseDelay * time.Duration(attempt)
		if cfg.Retry.MaxDelay > 0 && delay > cfg.Retry.MaxDelay {
			delay = cfg.Retry.MaxDelay
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
