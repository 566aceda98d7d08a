package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/moverboard/pkg/render"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

// pdfImageDensity is the resampling density for images embedded in PDFs.
const pdfImageDensity = 2.0

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	ctx     context.Context
	backend Backend
	svgOpts []SVGOption
}

// WithPDFBackend selects the native or rsvg backend.
func WithPDFBackend(b Backend) PDFOption {
	return func(r *pdfRenderer) { r.backend = b }
}

// WithPDFSVGOptions passes options through to the SVG renderer used by the rsvg backend.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// WithPDFContext bounds the rsvg-convert subprocess.
func WithPDFContext(ctx context.Context) PDFOption {
	return func(r *pdfRenderer) { r.ctx = ctx }
}

// RenderPDF renders doc as a single-page PDF.
func RenderPDF(doc *scene.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{ctx: context.Background(), backend: BackendNative}
	for _, opt := range opts {
		opt(&r)
	}

	if r.backend == BackendRSVG {
		return render.ToPDF(r.ctx, RenderSVG(doc, r.svgOpts...))
	}

	c, err := drawCanvas(doc, pdfImageDensity)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
