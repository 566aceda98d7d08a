// Package render turns movers charts into page artifacts.
//
// # Overview
//
// Rendering is split into small packages under [board], leaves first:
//
//   - [board/text]: word wrapping, name truncation and markup escaping
//   - [board/layout]: row geometry and pagination
//   - [board/scene]: the immutable primitive tree of one page
//   - [board/styles]: color tokens, fonts and fixed geometry
//   - [board/compose]: builds a scene from a page, its rows and assets
//   - [board/sink]: SVG, JSON, PNG and PDF output
//
// Only the sinks know about concrete formats. Everything above them is
// pure and deterministic, so identical input yields identical documents.
//
// # Format Conversion
//
// PNG and PDF are drawn natively with tdewolff/canvas by default. The
// [ToPDF] and [ToPNG] functions in this package provide the alternative
// "rsvg" backend, which converts the SVG output using the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(doc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [board]: github.com/matzehuels/moverboard/pkg/render/board
// [board/text]: github.com/matzehuels/moverboard/pkg/render/board/text
// [board/layout]: github.com/matzehuels/moverboard/pkg/render/board/layout
// [board/scene]: github.com/matzehuels/moverboard/pkg/render/board/scene
// [board/styles]: github.com/matzehuels/moverboard/pkg/render/board/styles
// [board/compose]: github.com/matzehuels/moverboard/pkg/render/board/compose
// [board/sink]: github.com/matzehuels/moverboard/pkg/render/board/sink
package render
