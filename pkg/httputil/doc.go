// Package httputil provides HTTP utilities for fetching remote assets.
//
// # Overview
//
//   - [NewClient]: a resty client with timeouts, a user agent and
//     observability hooks attached
//   - [Retry]: automatic retry with exponential backoff
//   - [CheckStatus]: maps response codes to retryable or terminal errors
//
// # Retry
//
// [Retry] only repeats operations whose error is wrapped in
// [RetryableError]. Network failures, 5xx responses and 429 rate limits
// are retryable; 404 and other 4xx responses are not:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.R().SetContext(ctx).Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return httputil.CheckStatus(resp.StatusCode())
//	})
package httputil
