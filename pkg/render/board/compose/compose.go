// Package compose builds the primitive tree of one movers page.
//
// [Compose] takes a paginated page, its row layout and a fully resolved
// asset bundle and returns an immutable [scene.Document]. It performs no
// I/O: logos and the background image must be fetched beforehand, and an
// absent asset simply selects the documented fallback.
//
// Elements are emitted back to front:
//
//  1. page background, then the optional background image
//  2. both title lines
//  3. table frame, header bar and column labels
//  4. per row: stripe, logo badge, ticker, name, driver lines, change
//
// The last row's stripe is a path with rounded bottom corners so it fits
// inside the frame.
package compose

import (
	"fmt"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
	"github.com/matzehuels/moverboard/pkg/render/board/styles"
	"github.com/matzehuels/moverboard/pkg/render/board/text"
)

// Asset is a resolved image ready to embed.
type Asset struct {
	MIME string
	Data []byte
}

// Bundle carries the resolved images for one page. Logos is aligned with
// the page's records; a nil entry (or a missing tail) means no logo.
type Bundle struct {
	Background *Asset
	Logos      []*Asset
}

func (b Bundle) logo(i int) *Asset {
	if i < len(b.Logos) {
		return b.Logos[i]
	}
	return nil
}

// Option configures [Compose].
type Option func(*config)

type config struct {
	theme      styles.Theme
	capacity   int
	nameLength int
}

// WithTheme overrides color tokens. Empty tokens keep their defaults.
func WithTheme(t styles.Theme) Option {
	return func(c *config) { c.theme = t.Merge() }
}

// WithCapacity sets the maximum number of rows a page may carry.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithNameLength sets the rune cap for company names.
func WithNameLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.nameLength = n
		}
	}
}

// Compose returns the document for page. rows must come from
// [layout.LayoutRows] on the same records.
func Compose(page layout.Page, rows layout.Rows, assets Bundle, opts ...Option) (*scene.Document, error) {
	cfg := config{
		theme:      styles.Default,
		capacity:   layout.DefaultCapacity,
		nameLength: styles.NameLength,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch n := len(page.Records); {
	case n == 0:
		return nil, errors.Layout("page %d has no records", page.Index)
	case n > cfg.capacity:
		return nil, errors.Layout("page %d has %d records, capacity is %d", page.Index, n, cfg.capacity)
	case len(rows.Rows) != n:
		return nil, errors.Layout("page %d has %d records but %d row layouts", page.Index, n, len(rows.Rows))
	}

	th := cfg.theme
	b := scene.NewBuilder(styles.PageWidth, styles.PageHeight)

	b.Add(scene.Rect{W: styles.PageWidth, H: styles.PageHeight, Fill: th.Background})
	if bg := assets.Background; bg != nil {
		b.Add(scene.Image{
			W: styles.PageWidth, H: styles.PageHeight,
			MIME: bg.MIME, Data: bg.Data,
			Aspect: scene.AspectSlice,
		})
	}

	b.Add(
		title(page.TitleMain, styles.TitleMainY, th.TitleText),
		title(page.TitleSub, styles.TitleSubY, th.Accent),
	)

	b.Add(
		scene.Rect{
			X: styles.TableX, Y: styles.TableY,
			W: styles.TableWidth, H: styles.HeaderHeight + rows.Total,
			RX:          styles.FrameRadius,
			Fill:        th.Row,
			Stroke:      th.FrameBorder,
			StrokeWidth: 1,
		},
		scene.Rect{
			X: styles.TableX, Y: styles.TableY,
			W: styles.TableWidth, H: styles.HeaderHeight,
			RX:   styles.HeaderRadius,
			Fill: th.Accent,
		},
		headerLabel(styles.LabelTicker, styles.TickerColX, scene.AnchorStart, th),
		headerLabel(styles.LabelDriver, styles.DriverColX, scene.AnchorStart, th),
		headerLabel(styles.LabelChange, styles.ChangeColX, scene.AnchorEnd, th),
	)

	last := len(rows.Rows) - 1
	for i, row := range rows.Rows {
		b.Add(stripe(i, row, i == last, th))
	}
	for i, row := range rows.Rows {
		b.Add(rowElements(i, page.Records[i], row, assets.logo(i), cfg)...)
	}

	return b.Build(), nil
}

func title(s string, y float64, fill string) scene.Text {
	return scene.Text{
		X: styles.TitleX, Y: y,
		Lines:    []string{s},
		Anchor:   scene.AnchorStart,
		FontSize: styles.TitleSize,
		Weight:   scene.WeightBold,
		Fill:     fill,
	}
}

func headerLabel(s string, x float64, anchor scene.Anchor, th styles.Theme) scene.Text {
	return scene.Text{
		X: x, Y: styles.HeaderLabelY,
		Lines:    []string{s},
		Anchor:   anchor,
		FontSize: styles.HeaderSize,
		Weight:   scene.WeightBold,
		Fill:     th.HeaderText,
	}
}

func stripe(i int, row layout.Row, last bool, th styles.Theme) scene.Element {
	fill := th.StripeFill(i)
	if last {
		return scene.RoundedBottomRect(styles.TableX, row.OriginY, styles.TableWidth, row.Height, styles.RowRadius, fill)
	}
	return scene.Rect{X: styles.TableX, Y: row.OriginY, W: styles.TableWidth, H: row.Height, Fill: fill}
}

// ClipID returns the clip-path identifier of the logo in row i.
func ClipID(i int) string { return fmt.Sprintf("logoClip%d", i) }

func rowElements(i int, rec chart.Record, row layout.Row, logo *Asset, cfg config) []scene.Element {
	th := cfg.theme
	cy := row.CenterY()
	tickerY := cy + styles.TickerOffset
	nameY := cy + styles.NameOffset

	var els []scene.Element
	badge := scene.Circle{CX: styles.LogoCenterX, CY: cy, R: styles.LogoRadius}
	if logo != nil {
		badge.Fill = th.LogoBackdrop
		els = append(els, badge, scene.Image{
			X: styles.LogoCenterX - styles.LogoRadius, Y: cy - styles.LogoRadius,
			W: styles.LogoSize, H: styles.LogoSize,
			MIME: logo.MIME, Data: logo.Data,
			Aspect: scene.AspectSlice,
			Clip:   &scene.Clip{ID: ClipID(i), Circle: scene.Circle{CX: badge.CX, CY: badge.CY, R: badge.R}},
		})
	} else {
		badge.Fill = th.LogoFallback
		els = append(els, badge, scene.Text{
			X: styles.LogoCenterX, Y: cy,
			Lines:    []string{rec.Ticker},
			Anchor:   scene.AnchorMiddle,
			Baseline: scene.BaselineMiddle,
			FontSize: styles.LogoTickerSize,
			Weight:   scene.WeightBold,
			Fill:     th.LogoText,
		})
	}

	els = append(els,
		scene.Text{
			X: styles.TextX, Y: tickerY,
			Lines:    []string{rec.Ticker},
			FontSize: styles.TickerSize,
			Weight:   scene.WeightBold,
			Fill:     th.PrimaryText,
		},
		scene.Text{
			X: styles.TextX, Y: nameY,
			Lines:    []string{text.Truncate(rec.Name, cfg.nameLength)},
			FontSize: styles.NameSize,
			Weight:   scene.WeightNormal,
			Fill:     th.SecondaryText,
		},
	)

	if n := len(row.Lines); n > 0 {
		startY := (tickerY+nameY)/2 - float64(n-1)*text.LinePitch/2
		els = append(els, scene.Text{
			X: styles.DriverColX, Y: startY,
			Lines:     append([]string(nil), row.Lines...),
			Multiline: true,
			LinePitch: text.LinePitch,
			FontSize:  styles.DriverSize,
			Weight:    scene.WeightNormal,
			Fill:      th.PrimaryText,
		})
	}

	els = append(els, scene.Text{
		X: styles.ChangeColX, Y: tickerY,
		Lines:    []string{rec.ChangePct},
		Anchor:   scene.AnchorEnd,
		FontSize: styles.ChangeSize,
		Weight:   scene.WeightBold,
		Fill:     th.ChangeFill(rec.IsNegative()),
	})
	return els
}
