package sink

import (
	"bytes"
	"context"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/moverboard/pkg/render"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

// DefaultScale is the PNG pixel density relative to layout units.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	ctx     context.Context
	backend Backend
	svgOpts []SVGOption
	scale   float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGBackend selects the native or rsvg backend.
func WithPNGBackend(b Backend) PNGOption {
	return func(r *pngRenderer) { r.backend = b }
}

// WithPNGSVGOptions passes options through to the SVG renderer used by the rsvg backend.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithPNGContext bounds the rsvg-convert subprocess.
func WithPNGContext(ctx context.Context) PNGOption {
	return func(r *pngRenderer) { r.ctx = ctx }
}

// RenderPNG rasterizes doc. A 1180x2080 page at the default scale
// produces a 2360x4160 image.
func RenderPNG(doc *scene.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{ctx: context.Background(), backend: BackendNative, scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	if r.backend == BackendRSVG {
		return render.ToPNG(r.ctx, RenderSVG(doc, r.svgOpts...), r.scale)
	}

	c, err := drawCanvas(doc, r.scale)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(r.scale), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
