package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/moverboard/pkg/render/board/scene"
	"github.com/matzehuels/moverboard/pkg/render/board/sink"
)

// Render generates one output artifact for doc.
func Render(ctx context.Context, doc *scene.Document, format string, opts Options) ([]byte, error) {
	backend := sink.Backend(opts.Backend)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(doc), nil
	case FormatJSON:
		return sink.RenderJSON(doc)
	case FormatPNG:
		return sink.RenderPNG(doc,
			sink.WithScale(opts.Scale),
			sink.WithPNGBackend(backend),
			sink.WithPNGContext(ctx),
		)
	case FormatPDF:
		return sink.RenderPDF(doc,
			sink.WithPDFBackend(backend),
			sink.WithPDFContext(ctx),
		)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
