package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/moverboard/pkg/assets"
	"github.com/matzehuels/moverboard/pkg/cache"
	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "svg", want: "svg"},
		{in: "svg, PNG ,svg", want: "svg,png"},
		{in: "", want: ""},
		{in: "svg,gif", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && strings.Join(got, ",") != tt.want {
			t.Errorf("ParseFormats(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if strings.Join(o.Formats, ",") != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Capacity != 7 {
		t.Errorf("Capacity = %d, want 7", o.Capacity)
	}
	if o.Scale != 2 {
		t.Errorf("Scale = %v, want 2", o.Scale)
	}
	if o.Backend != "native" {
		t.Errorf("Backend = %q, want native", o.Backend)
	}
	if o.Concurrency != DefaultConcurrency || o.FetchLimit != DefaultFetchLimit {
		t.Errorf("Concurrency/FetchLimit = %d/%d, want defaults", o.Concurrency, o.FetchLimit)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if o.Theme.Background == "" {
		t.Error("Theme should be merged with the default")
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{name: "capacity", opts: Options{Capacity: -1}, code: errors.ErrCodeInvalidCapacity},
		{name: "format", opts: Options{Formats: []string{"gif"}}, code: errors.ErrCodeInvalidFormat},
		{name: "backend", opts: Options{Backend: "cairo"}, code: errors.ErrCodeInvalidInput},
		{name: "scale", opts: Options{Scale: -2}, code: errors.ErrCodeInvalidInput},
		{name: "background", opts: Options{Background: "ftp://x/bg.png"}, code: errors.ErrCodeInvalidRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 3, Backend: "rsvg"}
	if k := o.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || k.Backend != "" {
		t.Errorf("svg key opts = %+v, want format only", k)
	}
	if k := o.ArtifactKeyOpts(FormatPNG); k.Scale != 3 || k.Backend != "rsvg" {
		t.Errorf("png key opts = %+v, want scale and backend", k)
	}
	if k := o.ArtifactKeyOpts(FormatPDF); k.Scale != 0 || k.Backend != "rsvg" {
		t.Errorf("pdf key opts = %+v, want backend only", k)
	}
}

func TestLogoPixels(t *testing.T) {
	tests := []struct {
		scale float64
		want  int
	}{
		{1, 96},
		{2, 192},
		{1.5, 144},
		{0, 192},
	}
	for _, tt := range tests {
		if got := LogoPixels(tt.scale); got != tt.want {
			t.Errorf("LogoPixels(%v) = %d, want %d", tt.scale, got, tt.want)
		}
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(chart.ExampleJSON(), false)
	if err != nil {
		t.Fatalf("ParseRequest(example) error: %v", err)
	}
	if len(req.Records) != 8 {
		t.Errorf("records = %d, want 8", len(req.Records))
	}

	_, err = ParseRequest([]byte("{not json"), false)
	if _, ok := errors.AsInput(err); !ok {
		t.Errorf("ParseRequest(malformed) error = %v, want InputError", err)
	}

	_, err = ParseRequest([]byte(`{"title_main":"x","data":[{"ticker":"A"}]}`), true)
	ie, ok := errors.AsInput(err)
	if !ok {
		t.Fatalf("ParseRequest(incomplete) error = %v, want InputError", err)
	}
	want := []string{
		"missing title_sub field",
		"item 1 is missing name field",
		"item 1 is missing driver field",
		"item 1 is missing change_pct field",
	}
	if strings.Join(ie.Messages, "|") != strings.Join(want, "|") {
		t.Errorf("messages = %q, want %q", ie.Messages, want)
	}
}

func TestPlan(t *testing.T) {
	pages, rows, err := Plan(chart.Example(), Options{})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(pages) != 2 || len(rows) != 2 {
		t.Fatalf("pages/rows = %d/%d, want 2/2", len(pages), len(rows))
	}
	if len(pages[0].Records) != 7 || len(pages[1].Records) != 1 {
		t.Errorf("page sizes = %d,%d, want 7,1", len(pages[0].Records), len(pages[1].Records))
	}
	if len(rows[1].Rows) != 1 {
		t.Errorf("page 2 rows = %d, want 1", len(rows[1].Rows))
	}

	if _, _, err := Plan(chart.Example(), Options{Capacity: 3}); err != nil {
		t.Errorf("Plan(capacity 3) error: %v", err)
	}
	if _, _, err := Plan(&chart.Request{}, Options{}); err == nil {
		t.Error("Plan(empty) should fail")
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	result, err := runner.Execute(context.Background(), chart.Example(), Options{
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", result.PageCount())
	}
	if result.Stats.Records != 8 || result.Stats.Pages != 2 {
		t.Errorf("Stats = %+v, want 8 records, 2 pages", result.Stats)
	}
	for i := range 2 {
		if result.Documents[i] == nil {
			t.Fatalf("Documents[%d] is nil", i)
		}
		svg, err := result.Artifact(i+1, FormatSVG)
		if err != nil {
			t.Fatalf("Artifact(%d, svg) error: %v", i+1, err)
		}
		if !bytes.HasPrefix(svg, []byte("<svg")) {
			t.Errorf("page %d svg starts with %q", i+1, svg[:min(20, len(svg))])
		}
		if _, err := result.Artifact(i+1, FormatJSON); err != nil {
			t.Errorf("Artifact(%d, json) error: %v", i+1, err)
		}
	}

	// no resolver: every badge is a fallback
	if n := result.Documents[0].Count(scene.KindImage); n != 0 {
		t.Errorf("page 1 images = %d, want 0", n)
	}
	if !bytes.Contains(result.Artifacts[0][FormatSVG], []byte("CHEK")) {
		t.Error("page 1 svg should contain the first ticker")
	}
	if !bytes.Contains(result.Artifacts[1][FormatSVG], []byte("GPUS")) {
		t.Error("page 2 svg should contain the last ticker")
	}

	if _, err := result.Artifact(3, FormatSVG); !errors.Is(err, errors.ErrCodePageNotFound) {
		t.Errorf("Artifact(3) error = %v, want PAGE_NOT_FOUND", err)
	}
	if _, err := result.Artifact(1, FormatPDF); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Artifact(1, pdf) error = %v, want NOT_FOUND", err)
	}
}

func testLogo(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExecuteResolvesLogos(t *testing.T) {
	logo := testLogo(t)
	resolver := assets.ResolverFunc(func(_ context.Context, ref string) (*assets.Image, error) {
		if strings.Contains(ref, "WOLF") {
			return nil, errors.New(errors.ErrCodeNotFound, "gone")
		}
		return &assets.Image{MIME: assets.MIMEPNG, Data: logo}, nil
	})

	runner := NewRunner(nil, nil, resolver, nil)
	result, err := runner.Execute(context.Background(), chart.Example(), Options{Background: "bg.png"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	// page 1: seven records, WOLF falls back; plus the background image
	if n := result.Documents[0].Count(scene.KindImage); n != 7 {
		t.Errorf("page 1 images = %d, want 7 (6 logos + background)", n)
	}
	if n := result.Documents[1].Count(scene.KindImage); n != 2 {
		t.Errorf("page 2 images = %d, want 2 (1 logo + background)", n)
	}
}

func TestExecuteCachesArtifacts(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	runner := NewRunner(c, nil, nil, nil)
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := runner.Execute(context.Background(), chart.Example(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.ArtifactHits != 0 {
		t.Errorf("first run hits = %d, want 0", first.Stats.ArtifactHits)
	}

	second, err := runner.Execute(context.Background(), chart.Example(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.Stats.ArtifactHits != 4 {
		t.Errorf("second run hits = %d, want 4", second.Stats.ArtifactHits)
	}
	if !bytes.Equal(first.Artifacts[1][FormatSVG], second.Artifacts[1][FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestExecuteErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Execute(ctx, chart.Example(), Options{}); err == nil {
		t.Error("Execute(cancelled) should fail")
	}

	if _, err := runner.Execute(context.Background(), chart.Example(), Options{Capacity: -1}); !errors.Is(err, errors.ErrCodeInvalidCapacity) {
		t.Errorf("Execute(capacity -1) error = %v, want INVALID_CAPACITY", err)
	}

	_, err := runner.Execute(context.Background(), &chart.Request{TitleMain: "a", TitleSub: "b"}, Options{})
	if _, ok := errors.AsInput(err); !ok {
		t.Errorf("Execute(no records) error = %v, want InputError", err)
	}
}
