// Package styles holds the colors, fonts and fixed geometry of the movers board.
package styles

// Page size in layout units.
const (
	PageWidth  = 1180.0
	PageHeight = 2080.0
)

// FontFamily is the CSS font stack used by the SVG sink.
const FontFamily = "Arial, sans-serif"

// Theme is the set of color tokens used by the composer.
type Theme struct {
	Background    string `json:"background" toml:"background"`
	Accent        string `json:"accent" toml:"accent"`
	HeaderText    string `json:"header_text" toml:"header_text"`
	TitleText     string `json:"title_text" toml:"title_text"`
	PrimaryText   string `json:"primary_text" toml:"primary_text"`
	SecondaryText string `json:"secondary_text" toml:"secondary_text"`
	Row           string `json:"row" toml:"row"`
	RowAlt        string `json:"row_alt" toml:"row_alt"`
	Positive      string `json:"positive" toml:"positive"`
	Negative      string `json:"negative" toml:"negative"`
	LogoFallback  string `json:"logo_fallback" toml:"logo_fallback"`
	LogoBackdrop  string `json:"logo_backdrop" toml:"logo_backdrop"`
	LogoText      string `json:"logo_text" toml:"logo_text"`
	FrameBorder   string `json:"frame_border" toml:"frame_border"`
}

// Default is the board's standard theme.
var Default = Theme{
	Background:    "#1a1d21",
	Accent:        "#7FF9C1",
	HeaderText:    "#002C18",
	TitleText:     "#FFFFFF",
	PrimaryText:   "#111827",
	SecondaryText: "#6B7280",
	Row:           "#FFFFFF",
	RowAlt:        "#F3F4F6",
	Positive:      "#1FBB73",
	Negative:      "#FF6B6B",
	LogoFallback:  "#1E90FF",
	LogoBackdrop:  "#D9D9D9",
	LogoText:      "#FFFFFF",
	FrameBorder:   "#E5E7EB",
}

// Merge returns t with every empty token taken from Default.
func (t Theme) Merge() Theme {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Background, Default.Background)
	fill(&t.Accent, Default.Accent)
	fill(&t.HeaderText, Default.HeaderText)
	fill(&t.TitleText, Default.TitleText)
	fill(&t.PrimaryText, Default.PrimaryText)
	fill(&t.SecondaryText, Default.SecondaryText)
	fill(&t.Row, Default.Row)
	fill(&t.RowAlt, Default.RowAlt)
	fill(&t.Positive, Default.Positive)
	fill(&t.Negative, Default.Negative)
	fill(&t.LogoFallback, Default.LogoFallback)
	fill(&t.LogoBackdrop, Default.LogoBackdrop)
	fill(&t.LogoText, Default.LogoText)
	fill(&t.FrameBorder, Default.FrameBorder)
	return t
}

// StripeFill returns the row background for the zero-based row index i.
func (t Theme) StripeFill(i int) string {
	if i%2 == 1 {
		return t.RowAlt
	}
	return t.Row
}

// ChangeFill returns the color for a change value by sign.
func (t Theme) ChangeFill(negative bool) string {
	if negative {
		return t.Negative
	}
	return t.Positive
}

// Font sizes.
const (
	TitleSize      = 90.0
	HeaderSize     = 32.0
	TickerSize     = 32.0
	NameSize       = 28.0
	DriverSize     = 31.0
	ChangeSize     = 32.0
	LogoTickerSize = 28.0
)

// Table geometry.
const (
	TitleX     = 92.0
	TitleMainY = 345.0
	TitleSubY  = 455.0

	TableX       = (PageWidth - TableWidth) / 2
	TableY       = 501.0
	TableWidth   = 1040.0
	HeaderHeight = 55.0
	HeaderLabelY = 540.0
	FrameRadius  = 16.0
	HeaderRadius = 10.0
	RowRadius    = 10.0

	TickerColX = 101.0
	DriverColX = 435.0
	ChangeColX = 1070.0

	LogoCenterX = 142.0
	LogoRadius  = 48.0
	LogoSize    = 2 * LogoRadius

	TextX        = 205.0
	TickerOffset = -7.0
	NameOffset   = 29.0

	NameLength = 12
)

// Header labels.
const (
	LabelTicker = "Ticker"
	LabelDriver = "Driver"
	LabelChange = "Intraday %"
)
