package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"readingrabbit/internal/config"
)

// RetryConfig configures retry behavior for HTTP requests.
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	BackoffFactor   float64
	RetryableStatus []int
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   config.DefaultMaxRetries,
		InitialDelay:  config.DefaultRetryDelayBase,
		BackoffFactor: 2.0,
		RetryableStatus: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

func isRetryableStatus(status int, retryable []int) bool {
	for _, s := range retryable {
		if s == status {
			return true
		}
	}
	return false
}

// DoWithRetry executes an HTTP request with exponential backoff retry.
// The request body must be resettable (use bytes.NewReader or similar).
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, cfg RetryConfig) (*http.Response, error) {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		reqClone := req.Clone(ctx)

		if req.Body != nil {
			if seeker, ok := req.Body.(io.Seeker); ok {
				seeker.Seek(0, io.SeekStart)
			}
		}

		resp, err := client.Do(reqClone)
		if err != nil {
			lastErr = err
			if attempt < cfg.MaxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				delay = time.Duration(float64(delay) * cfg.BackoffFactor)
			}
			continue
		}

		if isRetryableStatus(resp.StatusCode, cfg.RetryableStatus) && attempt < cfg.MaxAttempts {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * cfg.BackoffFactor)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("failed after %d retries: %w", cfg.MaxAttempts, lastErr)
}
