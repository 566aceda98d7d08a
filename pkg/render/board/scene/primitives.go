package scene

import (
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle with optional rounded corners.
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	W           float64 `json:"w"`
	H           float64 `json:"h"`
	RX          float64 `json:"rx,omitempty"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
}

func (Rect) Kind() Kind { return KindRect }
func (Rect) element() {}

// Op is a path command letter.
type Op byte

// Supported path commands, all absolute.
const (
	MoveTo    Op = 'M' // x y
	HLineTo   Op = 'H' // x
	VLineTo   Op = 'V' // y
	QuadTo    Op = 'Q' // cx cy x y
	ClosePath Op = 'Z'
)

// MarshalText encodes the command as its letter.
func (o Op) MarshalText() ([]byte, error) { return []byte{byte(o)}, nil }

// Cmd is one path command with its arguments.
type Cmd struct {
	Op   Op        `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// Path is a filled outline built from absolute commands.
type Path struct {
	Cmds []Cmd  `json:"cmds"`
	Fill string `json:"fill"`
}

func (Path) Kind() Kind { return KindPath }
func (Path) element() {}

// D renders the commands in SVG path data syntax.
func (p Path) D() string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(FormatNumber(a))
		}
	}
	return b.String()
}

// RoundedBottomRect returns a rectangle whose two bottom corners are
// rounded with radius r and whose top corners are square.
func RoundedBottomRect(x, y, w, h, r float64, fill string) Path {
	return Path{
		Fill: fill,
		Cmds: []Cmd{
			{MoveTo, []float64{x, y}},
			{HLineTo, []float64{x + w}},
			{VLineTo, []float64{y + h - r}},
			{QuadTo, []float64{x + w, y + h, x + w - r, y + h}},
			{HLineTo, []float64{x + r}},
			{QuadTo, []float64{x, y + h, x, y + h - r}},
			{VLineTo, []float64{y}},
			{ClosePath, nil},
		},
	}
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Baseline is the vertical text alignment relative to Y.
type Baseline string

const (
	BaselineAuto   Baseline = ""
	BaselineMiddle Baseline = "middle"
)

// Weight is the font weight.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
)

// Text is one or more lines of text. Lines after the first are placed
// LinePitch below the previous one. With Multiline set, sinks keep the
// per-line structure even for a single line.
type Text struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Lines     []string `json:"lines"`
	Multiline bool     `json:"multiline,omitempty"`
	LinePitch float64  `json:"line_pitch,omitempty"`
	Anchor    Anchor   `json:"anchor,omitempty"`
	Baseline  Baseline `json:"baseline,omitempty"`
	FontSize  float64  `json:"font_size"`
	Weight    Weight   `json:"weight,omitempty"`
	Fill      string   `json:"fill"`
}

func (Text) Kind() Kind { return KindText }
func (Text) element() {}

// Content returns the lines joined with newlines.
func (t Text) Content() string { return strings.Join(t.Lines, "\n") }

// Circle is a filled circle.
type Circle struct {
	CX   float64 `json:"cx"`
	CY   float64 `json:"cy"`
	R    float64 `json:"r"`
	Fill string  `json:"fill"`
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) element() {}

// Aspect is an SVG preserveAspectRatio value.
type Aspect string

const (
	AspectMeet  Aspect = "xMidYMid meet"
	AspectSlice Aspect = "xMidYMid slice"
)

// Clip restricts an image to a circle.
type Clip struct {
	ID     string `json:"id"`
	Circle Circle `json:"circle"`
}

// Image is an embedded raster image.
type Image struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	MIME   string  `json:"mime"`
	Data   []byte  `json:"data"`
	Aspect Aspect  `json:"aspect,omitempty"`
	Clip   *Clip   `json:"clip,omitempty"`
}

func (Image) Kind() Kind { return KindImage }
func (Image) element() {}

// FormatNumber prints v with the fewest digits that round-trip.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
