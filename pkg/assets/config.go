package assets

import (
	"time"

	"github.com/matzehuels/moverboard/pkg/cache"
	"github.com/matzehuels/moverboard/pkg/httputil"
)

// Config describes the standard resolver chain built by [New].
type Config struct {
	// BaseDir anchors relative file references.
	BaseDir string
	// Confined rejects absolute and traversing file references.
	Confined bool
	// DisableFiles turns off file references entirely.
	DisableFiles bool
	// Timeout bounds each HTTP attempt; zero uses the client default.
	Timeout time.Duration
	// Retries is the HTTP attempt count; zero uses DefaultRetries.
	Retries int
	// UserAgent overrides the default client user agent.
	UserAgent string
	// LogoSize is the square pixel size raster images are cropped to.
	// Zero keeps images as fetched.
	LogoSize int
}

// New builds Mux → Normalized → Cached. c may be nil to disable caching.
func New(cfg Config, c cache.Cache, keyer cache.Keyer) Resolver {
	var clientOpts []httputil.ClientOption
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, httputil.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, httputil.WithHeader("User-Agent", cfg.UserAgent))
	}
	httpOpts := []HTTPOption{WithClient(httputil.NewClient(clientOpts...))}
	if cfg.Retries > 0 {
		httpOpts = append(httpOpts, WithRetries(cfg.Retries, DefaultRetryDelay))
	}

	mux := &Mux{
		HTTP: NewHTTPResolver(httpOpts...),
		Data: DataResolver{},
	}
	switch {
	case cfg.DisableFiles:
	case cfg.Confined:
		mux.File = NewConfinedFileResolver(cfg.BaseDir)
	default:
		mux.File = NewFileResolver(cfg.BaseDir)
	}

	var r Resolver = mux
	if cfg.LogoSize > 0 {
		r = Normalized(r, cfg.LogoSize)
	}
	if c == nil {
		return r
	}
	return Cached(r, cache.Instrument(c, cache.KeyTypeAsset), keyer, cfg.LogoSize)
}
