// Package sink serializes page documents into output formats.
//
// # Overview
//
// A "sink" transforms a composed [scene.Document] into a final format:
//
//   - SVG: markup matching the browser-rendered board
//   - JSON: the primitive tree, for tooling and visual diffing
//   - PNG: a raster image, 2x scale by default
//   - PDF: a single-page vector document
//
// # Backends
//
// PNG and PDF support two backends. The native backend draws every
// primitive with tdewolff/canvas using the embedded Latin Modern Sans
// faces and needs nothing installed. The rsvg backend renders SVG first
// and converts it with rsvg-convert, which honors the CSS font stack:
//
//	png, err := sink.RenderPNG(doc, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(doc, sink.WithPDFBackend(sink.BackendRSVG))
//
// # Escaping
//
// Scene text is raw. [RenderSVG] escapes every string it writes into
// markup with text.EscapeXML, so user input can never inject elements.
//
// [scene.Document]: github.com/matzehuels/moverboard/pkg/render/board/scene.Document
package sink
