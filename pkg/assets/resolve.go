package assets

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/observability"
)

// DefaultLimit bounds concurrent logo downloads per page.
const DefaultLimit = 8

// Option configures [Resolve] and [ResolvePage].
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger receives a warning for every reference that fails.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Resolve resolves ref and never fails: an empty reference or any error
// yields nil, and the error is logged and reported to the asset hooks.
func Resolve(ctx context.Context, r Resolver, ref string, opts ...Option) *Image {
	return resolve(ctx, r, ref, buildOptions(opts))
}

func resolve(ctx context.Context, r Resolver, ref string, o options) *Image {
	if ref == "" || r == nil {
		return nil
	}
	start := time.Now()
	img, err := r.Resolve(ctx, ref)
	observability.Assets().OnResolve(ctx, Kind(ref), img != nil && img.cached, time.Since(start), err)
	if err != nil {
		o.logger.Warn("asset unavailable, using fallback", "ref", shortRef(ref), "err", err)
		return nil
	}
	return img
}

// ResolvePage resolves the logo of every record in parallel, at most
// limit at a time. The result is aligned with records; records without
// a usable logo get nil.
func ResolvePage(ctx context.Context, r Resolver, records []chart.Record, limit int, opts ...Option) []*Image {
	o := buildOptions(opts)
	out := make([]*Image, len(records))
	if limit < 1 {
		limit = DefaultLimit
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rec := range records {
		if !rec.HasLogo() {
			continue
		}
		g.Go(func() error {
			out[i] = resolve(gctx, r, rec.Logo, o)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// shortRef keeps data URIs out of log lines.
func shortRef(ref string) string {
	if Kind(ref) == KindData && len(ref) > 32 {
		return ref[:32] + "..."
	}
	return ref
}
