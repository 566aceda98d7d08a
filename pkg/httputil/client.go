package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matzehuels/moverboard/pkg/buildinfo"
	"github.com/matzehuels/moverboard/pkg/observability"
)

// DefaultTimeout bounds a single asset download.
const DefaultTimeout = 10 * time.Second

// ErrNotFound is returned by [CheckStatus] for 404 responses.
var ErrNotFound = errors.New("not found")

// ErrStatus is wrapped by [CheckStatus] for any other non-2xx response.
var ErrStatus = errors.New("unexpected status")

// ClientOption configures [NewClient].
type ClientOption func(*resty.Client)

// WithTimeout overrides [DefaultTimeout].
func WithTimeout(d time.Duration) ClientOption {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) ClientOption {
	return func(c *resty.Client) { c.SetHeader(key, value) }
}

// WithTransport replaces the underlying transport, mainly for tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *resty.Client) { c.SetTransport(rt) }
}

// NewClient returns a resty client that reports every request to the
// observability HTTP hooks. Retries are left to [Retry] so callers decide
// which failures are transient.
func NewClient(opts ...ClientOption) *resty.Client {
	c := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", buildinfo.UserAgent()).
		SetHeader("Accept", "image/*,*/*;q=0.8")

	c.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		host, path := splitURL(r.URL)
		observability.HTTP().OnRequest(r.Context(), r.Method, host, path)
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		host, path := splitURL(resp.Request.URL)
		observability.HTTP().OnResponse(resp.Request.Context(), resp.Request.Method, host, path, resp.StatusCode(), resp.Time())
		return nil
	})
	c.OnError(func(r *resty.Request, err error) {
		host, path := splitURL(r.URL)
		observability.HTTP().OnError(r.Context(), r.Method, host, path, err)
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckStatus classifies an HTTP status code. Server errors and rate
// limits are wrapped in [RetryableError].
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: %d", ErrStatus, code)}
	default:
		return fmt.Errorf("%w: %d", ErrStatus, code)
	}
}

// CheckResponse is [CheckStatus] for a resty response. A Retry-After
// header in seconds on a retryable response becomes RetryableError.After.
func CheckResponse(resp *resty.Response) error {
	err := CheckStatus(resp.StatusCode())
	var re *RetryableError
	if errors.As(err, &re) {
		re.After = retryAfter(resp.Header().Get("Retry-After"))
	}
	return err
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
