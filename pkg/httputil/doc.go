// Package httputil provides retry support for HTTP-backed clients.
//
// [Retry] re-runs an operation with exponential backoff when it fails with a
// transient error. Callers mark such errors explicitly with [Retryable];
// [errors.HTTPError] values with status 429 or 5xx are treated as transient
// without wrapping.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// Defaults for [RetryWithBackoff]: 3 attempts, 1 second initial delay,
// doubling after each failure.
//
// The raw-content path of a scan does not retry: a failed file is recorded
// and the scan moves on. Retries are used for repository discovery calls.
package httputil
