package text

import "strings"

// Ellipsis marks text that was cut.
const Ellipsis = "..."

// LinePitch is the vertical distance between stacked wrapped lines.
const LinePitch = 41.0

// Default wrapping limits.
const (
	DefaultMaxLineLength  = 30
	DefaultMaxLines       = 4
	DefaultMaxTotalLength = 200
)

// Options bounds the output of [Wrap].
type Options struct {
	MaxLineLength  int `json:"max_line_length" toml:"max_line_length"`
	MaxLines       int `json:"max_lines" toml:"max_lines"`
	MaxTotalLength int `json:"max_total_length" toml:"max_total_length"`
}

// DefaultOptions returns the standard 30/4/200 limits.
func DefaultOptions() Options {
	return Options{
		MaxLineLength:  DefaultMaxLineLength,
		MaxLines:       DefaultMaxLines,
		MaxTotalLength: DefaultMaxTotalLength,
	}
}

// withDefaults fills zero or negative limits with defaults.
func (o Options) withDefaults() Options {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
	if o.MaxTotalLength <= 0 {
		o.MaxTotalLength = DefaultMaxTotalLength
	}
	return o
}

// Wrapped is the result of wrapping one string.
type Wrapped struct {
	Lines     []string
	Truncated bool // set when the source was cut by either limit
}

// Count returns the number of lines.
func (w Wrapped) Count() int { return len(w.Lines) }

// Wrap splits s into at most opts.MaxLines lines of roughly
// opts.MaxLineLength runes, breaking at spaces.
//
// Text longer than MaxTotalLength is cut and marked with an ellipsis
// before wrapping. A break is searched backward from MaxLineLength, then
// forward; a single token with no space at all is broken hard at
// MaxLineLength. When the line limit is reached with text remaining, the
// last three runes of the final line are replaced with an ellipsis.
func Wrap(s string, opts Options) Wrapped {
	opts = opts.withDefaults()

	var out Wrapped
	src := []rune(s)
	if len(src) > opts.MaxTotalLength {
		src = append(src[:opts.MaxTotalLength:opts.MaxTotalLength], []rune(Ellipsis)...)
		out.Truncated = true
	}

	rest := src
	for len(rest) > 0 {
		if len(rest) <= opts.MaxLineLength {
			out.Lines = append(out.Lines, string(rest))
			break
		}

		split := breakIndex(rest, opts.MaxLineLength)
		out.Lines = append(out.Lines, strings.TrimSpace(string(rest[:split])))
		rest = []rune(strings.TrimSpace(string(rest[split:])))

		if len(out.Lines) >= opts.MaxLines && len(rest) > 0 {
			last := len(out.Lines) - 1
			out.Lines[last] = markCut(out.Lines[last])
			out.Truncated = true
			break
		}
	}
	return out
}

// breakIndex finds the split position for a line of at most max runes.
func breakIndex(r []rune, max int) int {
	i := max
	for i > 0 && r[i] != ' ' {
		i--
	}
	if i > 0 {
		return i
	}
	for i = max; i < len(r) && r[i] != ' '; i++ {
	}
	if i >= len(r) {
		return max
	}
	return i
}

// markCut replaces the last three runes of line with an ellipsis.
func markCut(line string) string {
	r := []rune(line)
	keep := max(0, len(r)-len(Ellipsis))
	return string(r[:keep]) + Ellipsis
}
