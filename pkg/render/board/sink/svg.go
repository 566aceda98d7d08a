package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/matzehuels/moverboard/pkg/render/board/scene"
	"github.com/matzehuels/moverboard/pkg/render/board/styles"
	"github.com/matzehuels/moverboard/pkg/render/board/text"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	xlink      bool
}

// WithFontFamily replaces the CSS font stack.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithXLink writes image references as xlink:href for older SVG consumers.
func WithXLink() SVGOption { return func(r *svgRenderer) { r.xlink = true } }

// RenderSVG serializes doc as a standalone SVG document.
func RenderSVG(doc *scene.Document, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: styles.FontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	ns := ""
	if r.xlink {
		ns = ` xmlns:xlink="http://www.w3.org/1999/xlink"`
	}
	w, h := num(doc.Width()), num(doc.Height())
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg"%s width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		ns, w, h, w, h)

	for _, el := range doc.Elements() {
		switch e := el.(type) {
		case scene.Rect:
			r.writeRect(&buf, e)
		case scene.Path:
			fmt.Fprintf(&buf, `  <path d="%s" fill="%s"/>`+"\n", e.D(), esc(e.Fill))
		case scene.Circle:
			fmt.Fprintf(&buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				num(e.CX), num(e.CY), num(e.R), esc(e.Fill))
		case scene.Text:
			r.writeText(&buf, e)
		case scene.Image:
			r.writeImage(&buf, e)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) writeRect(buf *bytes.Buffer, e scene.Rect) {
	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s"`, num(e.X), num(e.Y), num(e.W), num(e.H))
	if e.RX > 0 {
		fmt.Fprintf(buf, ` rx="%s"`, num(e.RX))
	}
	fmt.Fprintf(buf, ` fill="%s"`, esc(e.Fill))
	if e.Stroke != "" && e.StrokeWidth > 0 {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, esc(e.Stroke), num(e.StrokeWidth))
	}
	buf.WriteString("/>\n")
}

func (r *svgRenderer) writeText(buf *bytes.Buffer, e scene.Text) {
	weight := e.Weight
	if weight == "" {
		weight = scene.WeightNormal
	}
	fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%s" fill="%s"`,
		num(e.X), num(e.Y), esc(r.fontFamily), num(e.FontSize), weight, esc(e.Fill))
	if e.Anchor != "" && e.Anchor != scene.AnchorStart {
		fmt.Fprintf(buf, ` text-anchor="%s"`, e.Anchor)
	}
	if e.Baseline != scene.BaselineAuto {
		fmt.Fprintf(buf, ` dominant-baseline="%s"`, e.Baseline)
	}
	buf.WriteString(">")

	if !e.Multiline && len(e.Lines) <= 1 {
		if len(e.Lines) == 1 {
			buf.WriteString(esc(e.Lines[0]))
		}
		buf.WriteString("</text>\n")
		return
	}

	buf.WriteString("\n")
	for i, line := range e.Lines {
		dy := 0.0
		if i > 0 {
			dy = e.LinePitch
		}
		fmt.Fprintf(buf, `    <tspan x="%s" dy="%s">%s</tspan>`+"\n", num(e.X), num(dy), esc(line))
	}
	buf.WriteString("  </text>\n")
}

func (r *svgRenderer) writeImage(buf *bytes.Buffer, e scene.Image) {
	if e.Clip != nil {
		c := e.Clip.Circle
		fmt.Fprintf(buf, `  <defs><clipPath id="%s"><circle cx="%s" cy="%s" r="%s"/></clipPath></defs>`+"\n",
			esc(e.Clip.ID), num(c.CX), num(c.CY), num(c.R))
	}
	href := "href"
	if r.xlink {
		href = "xlink:href"
	}
	fmt.Fprintf(buf, `  <image x="%s" y="%s" width="%s" height="%s" %s="%s"`,
		num(e.X), num(e.Y), num(e.W), num(e.H), href, esc(DataURI(e.MIME, e.Data)))
	if e.Aspect != "" {
		fmt.Fprintf(buf, ` preserveAspectRatio="%s"`, e.Aspect)
	}
	if e.Clip != nil {
		fmt.Fprintf(buf, ` clip-path="url(#%s)"`, esc(e.Clip.ID))
	}
	buf.WriteString("/>\n")
}

// DataURI encodes data as a base64 data: URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func num(v float64) string { return scene.FormatNumber(v) }

func esc(s string) string { return text.EscapeXML(s) }
