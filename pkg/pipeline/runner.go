package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/moverboard/pkg/assets"
	"github.com/matzehuels/moverboard/pkg/cache"
	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/observability"
	"github.com/matzehuels/moverboard/pkg/render/board/compose"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Resolver assets.Resolver
	Logger   *log.Logger

	// ArtifactTTL is how long rendered pages stay cached.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner. A nil cache disables artifact caching, a
// nil keyer uses the default, and a nil resolver draws every page with
// fallback badges and no background image.
func NewRunner(c cache.Cache, keyer cache.Keyer, resolver assets.Resolver, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       cache.Instrument(c, cache.KeyTypeArtifact),
		Keyer:       keyer,
		Resolver:    resolver,
		Logger:      logger,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute paginates req, then resolves, composes and renders every page.
// Asset failures degrade to fallbacks; only invalid options, layout
// errors, render errors and cancellation fail the run.
func (r *Runner) Execute(ctx context.Context, req *chart.Request, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	pages, rows, err := Plan(req, opts)
	if err != nil {
		return nil, err
	}
	observability.Pipeline().OnPaginate(ctx, len(req.Records), len(pages))
	opts.Logger.Info("paginated records", "records", len(req.Records), "pages", len(pages), "capacity", opts.Capacity)

	result := &Result{
		Request:   req,
		Formats:   append([]string(nil), opts.Formats...),
		Pages:     pages,
		Rows:      rows,
		Documents: make([]*scene.Document, len(pages)),
		Artifacts: make([]Artifacts, len(pages)),
	}
	result.Stats.Records = len(req.Records)
	result.Stats.Pages = len(pages)

	resolveOpts := []assets.Option{assets.WithLogger(opts.Logger)}
	background := assets.Resolve(ctx, r.Resolver, opts.Background, resolveOpts...).Asset()

	var resolveNS, composeNS, renderNS atomic.Int64
	var hits atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, pageRows := pages[i], rows[i]

			t := time.Now()
			logos := assets.ResolvePage(gctx, r.Resolver, page.Records, opts.FetchLimit, resolveOpts...)
			resolveNS.Add(int64(time.Since(t)))

			t = time.Now()
			doc, err := r.compose(gctx, page, pageRows, compose.Bundle{Background: background, Logos: assets.Assets(logos)}, opts)
			composeNS.Add(int64(time.Since(t)))
			if err != nil {
				return err
			}
			result.Documents[i] = doc

			t = time.Now()
			arts, n, err := r.renderPage(gctx, page.Index, doc, opts)
			renderNS.Add(int64(time.Since(t)))
			if err != nil {
				return err
			}
			result.Artifacts[i] = arts
			hits.Add(int32(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Stats.ResolveTime = time.Duration(resolveNS.Load())
	result.Stats.ComposeTime = time.Duration(composeNS.Load())
	result.Stats.RenderTime = time.Duration(renderNS.Load())
	result.Stats.ArtifactHits = int(hits.Load())
	result.Stats.TotalTime = time.Since(start)

	opts.Logger.Info("rendered pages",
		"pages", len(pages),
		"formats", opts.Formats,
		"cached", result.Stats.ArtifactHits,
		"duration", result.Stats.TotalTime)

	return result, nil
}

func (r *Runner) compose(ctx context.Context, page layout.Page, rows layout.Rows, bundle compose.Bundle, opts Options) (*scene.Document, error) {
	observability.Pipeline().OnComposeStart(ctx, page.Index, len(page.Records))
	start := time.Now()
	doc, err := compose.Compose(page, rows, bundle,
		compose.WithTheme(opts.Theme),
		compose.WithCapacity(opts.Capacity),
	)
	observability.Pipeline().OnComposeComplete(ctx, page.Index, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("composed page", "page", page.Index, "rows", len(page.Records), "elements", doc.Len())
	return doc, nil
}

// renderPage renders every requested format, serving artifacts from the
// cache when the same document was rendered with the same options.
func (r *Runner) renderPage(ctx context.Context, index int, doc *scene.Document, opts Options) (Artifacts, int, error) {
	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("page %d: %w", index, err)
	}

	arts := make(Artifacts, len(opts.Formats))
	hits := 0
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			arts[format] = data
			hits++
			continue
		}

		start := time.Now()
		data, err := Render(ctx, doc, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, index, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, 0, fmt.Errorf("render page %d as %s: %w", index, format, err)
		}
		arts[format] = data
		_ = r.Cache.Set(ctx, key, data, r.ArtifactTTL)
	}
	return arts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
