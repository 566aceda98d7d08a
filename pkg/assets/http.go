package assets

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/httputil"
)

// Retry defaults for remote assets.
const (
	DefaultRetries    = httputil.DefaultAttempts
	DefaultRetryDelay = httputil.DefaultDelay
)

// HTTPResolver downloads remote images. Without [WithRetries] it uses
// [httputil.RetryWithBackoff].
type HTTPResolver struct {
	client  *resty.Client
	retries int
	delay   time.Duration
}

// HTTPOption configures an [HTTPResolver].
type HTTPOption func(*HTTPResolver)

// WithClient replaces the resty client.
func WithClient(c *resty.Client) HTTPOption {
	return func(r *HTTPResolver) { r.client = c }
}

// WithRetries sets the attempt count and initial backoff.
func WithRetries(n int, delay time.Duration) HTTPOption {
	return func(r *HTTPResolver) {
		r.retries = n
		r.delay = delay
	}
}

// NewHTTPResolver creates a resolver using [httputil.NewClient].
func NewHTTPResolver(opts ...HTTPOption) *HTTPResolver {
	r := &HTTPResolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = httputil.NewClient()
	}
	return r
}

// Resolve fetches url. A 404 yields ErrCodeNotFound; exhausted retries
// and other failures yield ErrCodeNetwork.
func (r *HTTPResolver) Resolve(ctx context.Context, url string) (*Image, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	var img *Image
	err := r.retry(ctx, func() error {
		resp, err := r.client.R().SetContext(ctx).Get(url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: err}
		}
		if err := httputil.CheckResponse(resp); err != nil {
			return err
		}

		data := resp.Body()
		mt := detectMIME(resp.Header().Get("Content-Type"), data)
		if !isImageMIME(mt) {
			return errors.New(errors.ErrCodeAsset, "%s is %s, not an image", url, mt)
		}
		img = &Image{MIME: mt, Data: data}
		return nil
	})

	switch {
	case err == nil:
		return img, nil
	case stderrors.Is(err, httputil.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "fetch %s", url)
	case errors.GetCode(err) != "":
		return nil, err
	default:
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
}

func (r *HTTPResolver) retry(ctx context.Context, fn func() error) error {
	if r.retries <= 0 {
		return httputil.RetryWithBackoff(ctx, fn)
	}
	return httputil.Retry(ctx, r.retries, r.delay, fn)
}
