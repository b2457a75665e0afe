// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package httputil provides HTTP helpers for language pack downloads.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 4

// retryable reports whether the status is worth another attempt. GitHub's
// raw endpoint throttles with 429 and occasionally answers 502/503 under
// load; anything else is a hard answer.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// DoWithRetry executes an HTTP request, retrying throttled and transient
// upstream failures with exponential backoff (2 s, 4 s, 8 s, 16 s).
//
// When maxRetries is 0 the default (4) is used. The response body is
// drained and closed before each retry. A context cancelled during a
// backoff wait returns ctx.Err(). After exhausting retries the last
// response is returned so the caller can report the status.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
