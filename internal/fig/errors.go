// Package fig implements the HTTP client for the external governing-body
// registry (FIG licensing database). It fetches raw athlete, coach and
// judge arrays and classifies every failure into one of four sentinel
// errors so that callers never need to inspect transport details.
//
// The client performs no retries: retry or backoff policy, if any, belongs
// to the caller. The synchronizer deliberately propagates these errors
// unchanged rather than masking an upstream outage as success.
package fig

import "errors"

var (
	// ErrUpstreamFormat is returned when the registry responds with a body
	// that is not the expected JSON array.
	ErrUpstreamFormat = errors.New("upstream response is not an array")

	// ErrRateLimited is returned when the registry reports HTTP 429.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamTimeout is returned when the request times out or the
	// connection is aborted mid-flight.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUpstreamUnavailable covers every other upstream failure
	// (connection refused, 5xx, unexpected status).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
