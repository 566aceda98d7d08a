package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/moverboard/pkg/fonts"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

// One layout unit maps to one canvas millimetre; font sizes are in points.
const ptPerUnit = 72 / 25.4

// Backend selects how PNG and PDF output is produced.
type Backend string

const (
	BackendNative Backend = "native"
	BackendRSVG   Backend = "rsvg"
)

// ParseBackend validates a backend name. The empty string selects native.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendNative:
		return BackendNative, nil
	case BackendRSVG:
		return BackendRSVG, nil
	}
	return "", fmt.Errorf("unknown render backend %q (want native or rsvg)", s)
}

type canvasPainter struct {
	ctx    *canvas.Context
	family *canvas.FontFamily
	dpmm   float64 // pixel density used when resampling embedded images
}

// drawCanvas paints doc onto a new canvas whose y axis grows downward.
func drawCanvas(doc *scene.Document, dpmm float64) (*canvas.Canvas, error) {
	family, err := fonts.NewSans()
	if err != nil {
		return nil, err
	}

	c := canvas.New(doc.Width(), doc.Height())
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	p := canvasPainter{ctx: ctx, family: family, dpmm: dpmm}
	for _, el := range doc.Elements() {
		switch e := el.(type) {
		case scene.Rect:
			p.rect(e)
		case scene.Path:
			p.path(e)
		case scene.Circle:
			p.fill(e.Fill)
			ctx.DrawPath(e.CX, e.CY, canvas.Circle(e.R))
		case scene.Text:
			p.text(e)
		case scene.Image:
			p.image(e)
		}
	}
	return c, nil
}

func (p *canvasPainter) fill(col string) {
	p.ctx.SetFillColor(parseColor(col))
	p.ctx.SetStrokeColor(canvas.Transparent)
	p.ctx.SetStrokeWidth(0)
}

func (p *canvasPainter) rect(e scene.Rect) {
	p.fill(e.Fill)
	if e.Stroke != "" && e.StrokeWidth > 0 {
		p.ctx.SetStrokeColor(parseColor(e.Stroke))
		p.ctx.SetStrokeWidth(e.StrokeWidth)
	}
	shape := canvas.Rectangle(e.W, e.H)
	if e.RX > 0 {
		shape = canvas.RoundedRectangle(e.W, e.H, e.RX)
	}
	p.ctx.DrawPath(e.X, e.Y, shape)
}

func (p *canvasPainter) path(e scene.Path) {
	p.fill(e.Fill)
	path := &canvas.Path{}
	var x, y float64
	for _, cmd := range e.Cmds {
		a := cmd.Args
		switch cmd.Op {
		case scene.MoveTo:
			x, y = a[0], a[1]
			path.MoveTo(x, y)
		case scene.HLineTo:
			x = a[0]
			path.LineTo(x, y)
		case scene.VLineTo:
			y = a[0]
			path.LineTo(x, y)
		case scene.QuadTo:
			x, y = a[2], a[3]
			path.QuadTo(a[0], a[1], x, y)
		case scene.ClosePath:
			path.Close()
		}
	}
	p.ctx.DrawPath(0, 0, path)
}

func (p *canvasPainter) text(e scene.Text) {
	style := canvas.FontRegular
	if e.Weight == scene.WeightBold {
		style = canvas.FontBold
	}
	face := p.family.Face(e.FontSize*ptPerUnit, parseColor(e.Fill), style, canvas.FontNormal)

	align := canvas.Left
	switch e.Anchor {
	case scene.AnchorMiddle:
		align = canvas.Center
	case scene.AnchorEnd:
		align = canvas.Right
	}

	y := e.Y
	if e.Baseline == scene.BaselineMiddle {
		y += face.Metrics().CapHeight / 2
	}
	for i, line := range e.Lines {
		p.ctx.DrawText(e.X, y+float64(i)*e.LinePitch, canvas.NewTextLine(face, line, align))
	}
}

// image draws an embedded raster. Undecodable data is skipped so the
// backdrop drawn before it stays visible.
func (p *canvasPainter) image(e scene.Image) {
	src, _, err := image.Decode(bytes.NewReader(e.Data))
	if err != nil || e.W <= 0 || e.H <= 0 {
		return
	}
	pw := max(1, int(math.Round(e.W*p.dpmm)))
	ph := max(1, int(math.Round(e.H*p.dpmm)))

	var img image.Image
	if e.Aspect == scene.AspectSlice {
		img = imaging.Fill(src, pw, ph, imaging.Center, imaging.Lanczos)
	} else {
		img = imaging.Fit(src, pw, ph, imaging.Lanczos)
	}
	if e.Clip != nil {
		c := e.Clip.Circle
		img = clipCircle(img, (c.CX-e.X)*p.dpmm, (c.CY-e.Y)*p.dpmm, c.R*p.dpmm)
	}
	p.ctx.DrawImage(e.X, e.Y, img, canvas.DPMM(float64(img.Bounds().Dx())/e.W))
}

// clipCircle makes every pixel outside the circle transparent.
func clipCircle(src image.Image, cx, cy, r float64) image.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, circleMask{cx: cx, cy: cy, r: r, bounds: dst.Bounds()}, image.Point{}, draw.Over)
	return dst
}

type circleMask struct {
	cx, cy, r float64
	bounds    image.Rectangle
}

func (m circleMask) ColorModel() color.Model { return color.AlphaModel }
func (m circleMask) Bounds() image.Rectangle { return m.bounds }

func (m circleMask) At(x, y int) color.Color {
	dx, dy := float64(x)+0.5-m.cx, float64(y)+0.5-m.cy
	if dx*dx+dy*dy <= m.r*m.r {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

func parseColor(s string) color.Color {
	if s == "" || s == "none" {
		return canvas.Transparent
	}
	return canvas.Hex(s)
}
