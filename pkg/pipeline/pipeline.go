// Package pipeline runs the movers chart pipeline for the CLI and the API.
//
// # Architecture
//
// A run moves through four stages, each producing an immutable value:
//
//  1. Validate: raw JSON → [chart.Request] (see [ParseRequest])
//  2. Plan: request → pages → row layouts (see [Plan])
//  3. Compose: page + rows + resolved assets → [scene.Document]
//  4. Render: document → bytes per output format
//
// Pages are composed and rendered in parallel, and the [Result] keeps
// them in page order. Navigating pages is an index into the result.
//
// # Usage
//
//	req, err := pipeline.ParseRequest(data, false)
//	if err != nil {
//	    return err // *errors.InputError listing every problem
//	}
//	runner := pipeline.NewRunner(c, nil, resolver, logger)
//	result, err := runner.Execute(ctx, req, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts[0]["svg"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moverboard/pkg/cache"
	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
	"github.com/matzehuels/moverboard/pkg/render/board/sink"
	"github.com/matzehuels/moverboard/pkg/render/board/styles"
	"github.com/matzehuels/moverboard/pkg/render/board/text"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultConcurrency bounds pages composed and rendered at once.
	DefaultConcurrency = 4

	// DefaultFetchLimit bounds concurrent logo downloads per page.
	DefaultFetchLimit = 8
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// AllFormats lists the supported formats in archive order.
var AllFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats     []string     `json:"formats,omitempty"`
	Capacity    int          `json:"capacity,omitempty"`
	Wrap        text.Options `json:"wrap,omitempty"`
	Background  string       `json:"background,omitempty"`
	Scale       float64      `json:"scale,omitempty"`
	Backend     string       `json:"backend,omitempty"`
	Concurrency int          `json:"concurrency,omitempty"`
	FetchLimit  int          `json:"fetch_limit,omitempty"`
	Theme       styles.Theme `json:"theme,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(AllFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated list, dropping blanks and duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and fills defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	switch {
	case o.Capacity == 0:
		o.Capacity = layout.DefaultCapacity
	case o.Capacity < 0:
		return errors.New(errors.ErrCodeInvalidCapacity, "capacity must be positive, got %d", o.Capacity)
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	backend, err := sink.ParseBackend(o.Backend)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid backend")
	}
	o.Backend = string(backend)
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.FetchLimit <= 0 {
		o.FetchLimit = DefaultFetchLimit
	}
	if err := errors.ValidateRef(o.Background); err != nil {
		return err
	}
	o.Theme = o.Theme.Merge()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutOptions returns the row layout options for this run.
func (o *Options) LayoutOptions() layout.Options {
	lo := layout.DefaultOptions()
	lo.Wrap = o.Wrap
	return lo
}

// LogoPixels returns the square pixel size logos are normalized to so
// they stay sharp at the given scale.
func LogoPixels(scale float64) int {
	if scale <= 0 {
		scale = sink.DefaultScale
	}
	return int(math.Ceil(styles.LogoSize * scale))
}

// ArtifactKeyOpts returns cache key options for one format. Options that
// do not affect a format are left out so they never split its cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		k.Backend = o.Backend
	case FormatPDF:
		k.Backend = o.Backend
	}
	return k
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Artifacts holds the rendered bytes of one page keyed by format.
type Artifacts map[string][]byte

// Result contains the outputs of a pipeline run. Every slice is indexed
// by page position (page n lives at n-1).
type Result struct {
	Request   *chart.Request
	Formats   []string
	Pages     []layout.Page
	Rows      []layout.Rows
	Documents []*scene.Document
	Artifacts []Artifacts
	Stats     Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records      int
	Pages        int
	ArtifactHits int
	ResolveTime  time.Duration
	ComposeTime  time.Duration
	RenderTime   time.Duration
	TotalTime    time.Duration
}

// PageCount returns the number of pages.
func (r *Result) PageCount() int { return len(r.Pages) }

// Artifact returns the bytes for 1-based page n in format.
func (r *Result) Artifact(n int, format string) ([]byte, error) {
	if err := errors.ValidatePageNumber(n, len(r.Artifacts)); err != nil {
		return nil, err
	}
	data, ok := r.Artifacts[n-1][format]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "format %s was not rendered", format)
	}
	return data, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("%d records, %d pages in %s", s.Records, s.Pages, s.TotalTime.Round(time.Millisecond))
}
