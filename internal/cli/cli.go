// Package cli implements the moverboard command-line interface.
//
// Commands:
//   - render: paginate a movers file and write SVG, PNG, PDF or JSON pages
//   - validate: report every problem in an input file
//   - example: print the built-in example request
//   - preview: page through the computed layout in the terminal
//   - serve: run the HTTP API
//   - cache: manage the asset and artifact cache
//
// All commands support --verbose (-v) for debug logging and --config for a
// TOML settings file (see pkg/config).
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/assets"
	"github.com/matzehuels/moverboard/pkg/buildinfo"
	"github.com/matzehuels/moverboard/pkg/cache"
	"github.com/matzehuels/moverboard/pkg/config"
	"github.com/matzehuels/moverboard/pkg/pipeline"
	"github.com/matzehuels/moverboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "moverboard"

	// memoryCleanup is the sweep interval for in-process caches and stores.
	memoryCleanup = 10 * time.Minute
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Moverboard renders daily market movers as paginated chart images",
		Long:          `Moverboard turns a list of stock movers (ticker, company, logo, driver, percent change) into fixed-size chart pages, seven rows per page, as SVG, PNG, PDF or JSON.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default $"+config.EnvPath+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.exampleCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, $MOVERBOARD_CONFIG or the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner. ac carries the file reference
// policy; fetch settings come from cfg. The caller must Close it.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, ac assets.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	ac.Timeout = cfg.Assets.FetchTimeout.Duration
	ac.Retries = cfg.Assets.Retries
	ac.UserAgent = cfg.Assets.UserAgent
	ac.LogoSize = pipeline.LogoPixels(cfg.Render.Scale)

	keyer := newKeyer(cfg.Server.KeyPrefix)
	runner := pipeline.NewRunner(ch, keyer, assets.New(ac, ch, keyer), c.Logger)
	if ttl := cfg.Cache.TTL.Duration; ttl > 0 {
		runner.ArtifactTTL = ttl
	}
	return runner, nil
}

func newKeyer(prefix string) cache.Keyer {
	if prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix+":")
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(memoryCleanup), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL, redisPrefix(cfg.Server.KeyPrefix, "cache"))
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured render store.
func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return store.NewFileStore(cfg.Store.Dir)
	case config.BackendRedis:
		return store.NewRedisStore(ctx, cfg.Store.RedisURL, redisPrefix(cfg.Server.KeyPrefix, "render"))
	case config.BackendMongo:
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
	case config.BackendMemory:
		return store.NewMemoryStore(memoryCleanup), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func redisPrefix(scope, kind string) string {
	if scope == "" {
		return appName + ":" + kind + ":"
	}
	return appName + ":" + scope + ":" + kind + ":"
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/moverboard/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
