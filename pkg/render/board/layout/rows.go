package layout

import (
	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/render/board/text"
)

// Default row geometry in page units.
const (
	DefaultFirstRowY      = 556.0
	DefaultBaseRowHeight  = 142.0
	DefaultExtraLinePitch = text.LinePitch

	// baseLines is the number of driver lines that fit in a base-height row.
	baseLines = 2
)

// Options controls row geometry.
type Options struct {
	FirstRowY      float64      `json:"first_row_y"`
	BaseRowHeight  float64      `json:"base_row_height"`
	ExtraLinePitch float64      `json:"extra_line_pitch"`
	Wrap           text.Options `json:"wrap"`
}

// DefaultOptions returns the standard table geometry.
func DefaultOptions() Options {
	return Options{
		FirstRowY:      DefaultFirstRowY,
		BaseRowHeight:  DefaultBaseRowHeight,
		ExtraLinePitch: DefaultExtraLinePitch,
		Wrap:           text.DefaultOptions(),
	}
}

// Row is the computed geometry of one table row.
type Row struct {
	OriginY   float64  `json:"origin_y"`
	Height    float64  `json:"height"`
	LineCount int      `json:"line_count"`
	Lines     []string `json:"lines"`
	Truncated bool     `json:"truncated,omitempty"`
}

// CenterY returns the vertical midpoint of the row.
func (r Row) CenterY() float64 { return r.OriginY + r.Height/2 }

// Bottom returns the y coordinate where the next row starts.
func (r Row) Bottom() float64 { return r.OriginY + r.Height }

// Rows is the stacked layout of one page.
type Rows struct {
	Rows  []Row   `json:"rows"`
	Total float64 `json:"total"`
}

// RowHeight returns the height of a row whose driver wraps to lines lines.
func RowHeight(lines int, opts Options) float64 {
	return opts.BaseRowHeight + float64(max(0, lines-baseLines))*opts.ExtraLinePitch
}

// LayoutRows wraps each record's driver text and stacks the rows
// top to bottom starting at opts.FirstRowY.
func LayoutRows(records []chart.Record, opts Options) (Rows, error) {
	if len(records) == 0 {
		return Rows{}, errors.Layout("cannot lay out a page with zero records")
	}

	out := Rows{Rows: make([]Row, len(records))}
	y := opts.FirstRowY
	for i, rec := range records {
		w := text.Wrap(rec.Driver, opts.Wrap)
		h := RowHeight(w.Count(), opts)
		out.Rows[i] = Row{
			OriginY:   y,
			Height:    h,
			LineCount: w.Count(),
			Lines:     w.Lines,
			Truncated: w.Truncated,
		}
		y += h
		out.Total += h
	}
	return out, nil
}
