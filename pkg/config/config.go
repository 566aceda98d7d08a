// Package config loads moverboard settings from TOML.
//
// Settings are layered: [Default] values, then the file named by --config
// or $MOVERBOARD_CONFIG, then command-line flags. A minimal file:
//
//	[layout]
//	capacity = 6
//
//	[render]
//	formats = ["svg", "png"]
//	backend = "rsvg"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/pipeline"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
	"github.com/matzehuels/moverboard/pkg/render/board/sink"
	"github.com/matzehuels/moverboard/pkg/render/board/styles"
	"github.com/matzehuels/moverboard/pkg/render/board/text"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "MOVERBOARD_CONFIG"

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Duration is a time.Duration written as "10s" or "24h" in TOML.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Config is the full settings tree.
type Config struct {
	Layout Layout       `toml:"layout"`
	Render Render       `toml:"render"`
	Assets Assets       `toml:"assets"`
	Cache  Cache        `toml:"cache"`
	Store  Store        `toml:"store"`
	Server Server       `toml:"server"`
	Theme  styles.Theme `toml:"theme"`
}

type Layout struct {
	Capacity int `toml:"capacity"`
	text.Options
}

type Render struct {
	Formats     []string `toml:"formats"`
	Scale       float64  `toml:"scale"`
	Backend     string   `toml:"backend"`
	Concurrency int      `toml:"concurrency"`
}

type Assets struct {
	Background   string   `toml:"background"`
	FetchTimeout Duration `toml:"fetch_timeout"`
	Retries      int      `toml:"retries"`
	UserAgent    string   `toml:"user_agent"`
	OptionalLogo bool     `toml:"optional_logo"`
}

type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

type Store struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisURL      string   `toml:"redis_url"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

type Server struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	KeyPrefix    string   `toml:"key_prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: Layout{Capacity: layout.DefaultCapacity, Options: text.DefaultOptions()},
		Render: Render{
			Formats:     []string{pipeline.FormatSVG},
			Scale:       sink.DefaultScale,
			Backend:     string(sink.BackendNative),
			Concurrency: pipeline.DefaultConcurrency,
		},
		Assets: Assets{
			FetchTimeout: Duration{10 * time.Second},
			Retries:      3,
		},
		Cache: Cache{Backend: BackendFile, TTL: Duration{24 * time.Hour}},
		Store: Store{Backend: BackendMemory, MongoDatabase: "moverboard", TTL: Duration{24 * time.Hour}},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
		},
		Theme: styles.Default,
	}
}

// Load overlays the file at path on [Default]. An empty path falls back
// to $MOVERBOARD_CONFIG, and when that is unset too the defaults are
// returned as is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
	}
	cfg.Theme = cfg.Theme.Merge()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enums and ranges.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Layout.Capacity > 0, "layout.capacity must be positive")
	check(c.Layout.MaxLineLength >= 0 && c.Layout.MaxLines >= 0 && c.Layout.MaxTotalLength >= 0, "layout limits must not be negative")
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		problems = append(problems, "render.formats: "+errors.UserMessage(err))
	}
	check(c.Render.Scale > 0, "render.scale must be positive")
	_, err := sink.ParseBackend(c.Render.Backend)
	check(err == nil, "render.backend must be native or rsvg")
	check(c.Render.Concurrency >= 0, "render.concurrency must not be negative")
	check(c.Assets.Retries >= 0, "assets.retries must not be negative")
	check(c.Assets.FetchTimeout.Duration >= 0, "assets.fetch_timeout must not be negative")
	if c.Assets.Background != "" {
		check(errors.ValidateRef(c.Assets.Background) == nil, "assets.background is not a valid reference")
	}

	check(slices.Contains([]string{BackendNone, BackendFile, BackendMemory, BackendRedis}, c.Cache.Backend),
		"cache.backend must be none, file, memory or redis")
	check(c.Cache.Backend != BackendRedis || c.Cache.RedisURL != "", "cache.redis_url is required for the redis backend")

	check(slices.Contains([]string{BackendMemory, BackendFile, BackendRedis, BackendMongo}, c.Store.Backend),
		"store.backend must be memory, file, redis or mongo")
	check(c.Store.Backend != BackendRedis || c.Store.RedisURL != "", "store.redis_url is required for the redis backend")
	check(c.Store.Backend != BackendMongo || c.Store.MongoURI != "", "store.mongo_uri is required for the mongo backend")

	check(c.Server.MaxBodyBytes > 0, "server.max_body_bytes must be positive")

	if len(problems) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, errors.NewInputError(problems), "invalid configuration")
	}
	return nil
}

// PipelineOptions maps the settings onto pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Formats:     append([]string(nil), c.Render.Formats...),
		Capacity:    c.Layout.Capacity,
		Wrap:        c.Layout.Options,
		Background:  c.Assets.Background,
		Scale:       c.Render.Scale,
		Backend:     c.Render.Backend,
		Concurrency: c.Render.Concurrency,
		Theme:       c.Theme,
	}
}
