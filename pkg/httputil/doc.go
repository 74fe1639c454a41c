// Package httputil provides HTTP utilities shared by the icon API client
// and the image-serving handlers.
//
// # Overview
//
//   - [Cache]: file-based JSON response caching for the remote icon API
//   - [Retry]: automatic retry with exponential backoff for transient failures
//   - [Policy]: HTTP cache-header policy (ETag, Last-Modified, 304 decisions)
//
// # Caching
//
// [Cache] stores icon API responses in the filesystem (~/.cache/imgx/) with
// configurable TTL. Icon glyphs are immutable in practice, so long TTLs are
// safe and repeated renders of the same icon never re-fetch.
//
// # Retry
//
// [Retry] retries only errors wrapped with [RetryableError] (network
// failures, 5xx responses), up to 3 attempts with doubling delay. Icon
// lookups that exhaust their retries degrade to plain-text rendering
// upstream; they never fail the image request.
//
// # Response caching
//
// [Policy] derives a deterministic validator from the full resolved
// parameter set of a render and decides between 200 and 304. In development
// mode caching is disabled entirely (no-store); in production responses are
// long-lived and immutable.
package httputil
