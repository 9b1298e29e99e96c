// Package httputil provides HTTP utilities for the layout store client.
//
// # Retry
//
// [Retry] wraps a request with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped in [RetryableError] are retried; [CheckResponse]
// classifies a response accordingly. The delay doubles after each attempt:
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckResponse(resp)
//	})
//
// Layout writes from the CLI use a single attempt by default; the debounced
// write that follows the next change supersedes a failed one anyway.
package httputil
