// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retrying HTTP transport used by remote
// inference backends.
package httputil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the first backoff delay; it doubles on every retry.
// Tests shrink it to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-provided Retry-After delay.
var MaxRetryAfter = time.Minute

const defaultMaxRetries = 5

// Retryable reports whether a status code is worth retrying: 429 when the
// inference server throttles and 503 while it is still loading a model.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry sends req and retries retryable responses with exponential
// backoff, honoring a Retry-After header given in seconds. maxRetries <= 0
// uses the default of 5. The body of a retried response is drained and
// closed before waiting. Cancelling ctx during a wait returns ctx.Err().
// Once retries are exhausted the last response is returned unchanged.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	return DoWithRetryLogged(ctx, client, req, maxRetries, nil)
}

// DoWithRetryLogged is DoWithRetry with each backoff reported to logger.
func DoWithRetryLogged(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, logger *slog.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if client == nil {
		client = http.DefaultClient
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if logger != nil {
			logger.Warn("inference request throttled",
				"url", req.URL.String(),
				"status", resp.StatusCode,
				"retry_in", wait,
				"attempt", attempt+1,
				"max_retries", maxRetries)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, MaxRetryAfter)
	}
	return RetryBaseDelay << attempt
}
