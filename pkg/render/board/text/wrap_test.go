package text

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []string
		truncated bool
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "short text is one line",
			input: "Novartis drug partnership",
			want:  []string{"Novartis drug partnership"},
		},
		{
			name:  "one rune over the limit breaks",
			input: "$5.7B Novartis drug partnership",
			want:  []string{"$5.7B Novartis drug", "partnership"},
		},
		{
			name:  "exactly max length",
			input: strings.Repeat("a", 30),
			want:  []string{strings.Repeat("a", 30)},
		},
		{
			name:  "breaks at last space before limit",
			input: "Merger deal with MBody AI; cancer diagnostics focus",
			want:  []string{"Merger deal with MBody AI;", "cancer diagnostics focus"},
		},
		{
			name:  "space exactly at limit",
			input: strings.Repeat("a", 30) + " tail",
			want:  []string{strings.Repeat("a", 30), "tail"},
		},
		{
			name:  "long token followed by space scans forward",
			input: strings.Repeat("x", 35) + " end",
			want:  []string{strings.Repeat("x", 35), "end"},
		},
		{
			name:  "single very long token breaks hard",
			input: strings.Repeat("y", 45),
			want:  []string{strings.Repeat("y", 30), strings.Repeat("y", 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.input, DefaultOptions())
			if !reflect.DeepEqual(got.Lines, tt.want) {
				t.Errorf("Wrap() lines = %q, want %q", got.Lines, tt.want)
			}
			if got.Truncated != tt.truncated {
				t.Errorf("Wrap() truncated = %v, want %v", got.Truncated, tt.truncated)
			}
		})
	}
}

func TestWrapShortTextIsIdentity(t *testing.T) {
	for _, s := range []string{"a", "ABS issuance surged", "RECELL GO gained EU CE mark", "  padded  "} {
		got := Wrap(s, DefaultOptions())
		if len(got.Lines) != 1 || got.Lines[0] != s {
			t.Errorf("Wrap(%q) = %q, want single identical line", s, got.Lines)
		}
	}
}

func TestWrapLineLimit(t *testing.T) {
	// Twenty 9-rune words fit three per line, so four lines cannot hold them.
	words := make([]string, 20)
	for i := range words {
		words[i] = fmt.Sprintf("word%05d", i)
	}
	got := Wrap(strings.Join(words, " "), DefaultOptions())

	if got.Count() != DefaultMaxLines {
		t.Fatalf("Count() = %d, want %d", got.Count(), DefaultMaxLines)
	}
	if !got.Truncated {
		t.Error("Truncated = false, want true")
	}
	last := got.Lines[len(got.Lines)-1]
	if !strings.HasSuffix(last, Ellipsis) {
		t.Errorf("last line %q does not end with ellipsis", last)
	}
	// The marker replaces three runes rather than extending the line.
	if want := "word00009 word00010 word00..."; last != want {
		t.Errorf("last line = %q, want %q", last, want)
	}
}

// A 200-rune driver of distinct words wraps to at most four lines.
func TestWrapTwoHundredRunes(t *testing.T) {
	var b strings.Builder
	for i := 0; b.Len() < 200; i++ {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "w%d", i)
	}
	s := b.String()[:200]
	if utf8.RuneCountInString(s) != 200 {
		t.Fatalf("fixture length = %d", utf8.RuneCountInString(s))
	}

	got := Wrap(s, DefaultOptions())
	if got.Count() > DefaultMaxLines {
		t.Fatalf("Count() = %d, want <= %d", got.Count(), DefaultMaxLines)
	}
	if got.Truncated && !strings.HasSuffix(got.Lines[got.Count()-1], Ellipsis) {
		t.Errorf("truncated output lacks ellipsis: %q", got.Lines)
	}
	if !got.Truncated {
		t.Error("200 runes cannot fit in 4x30; want Truncated")
	}
}

func TestWrapTotalLengthCut(t *testing.T) {
	s := strings.Repeat("ab ", 80) // 240 runes
	got := Wrap(s, Options{MaxLineLength: 1000, MaxLines: 1, MaxTotalLength: 10})
	want := []string{"ab ab ab a..."}
	if !reflect.DeepEqual(got.Lines, want) {
		t.Errorf("Wrap() = %q, want %q", got.Lines, want)
	}
	if !got.Truncated {
		t.Error("Truncated = false, want true")
	}
}

func TestWrapBounds(t *testing.T) {
	inputs := []string{
		"PIPE financing; launched Sol Treasury with $500M",
		"Restructuring cut debt 70%; SiC semiconductor focus",
		strings.Repeat("lorem ipsum dolor sit amet ", 12),
		strings.Repeat("z", 250),
		"short",
	}
	opts := DefaultOptions()
	for _, s := range inputs {
		got := Wrap(s, opts)
		if got.Count() > opts.MaxLines {
			t.Errorf("Wrap(%q) produced %d lines", s, got.Count())
		}
		for _, line := range got.Lines {
			n := utf8.RuneCountInString(line)
			if n > opts.MaxLineLength && strings.Contains(strings.TrimSuffix(line, Ellipsis), " ") {
				t.Errorf("Wrap(%q) overlong line %q is not a single token", s, line)
			}
		}
	}
}

func TestWrapDeterministic(t *testing.T) {
	s := "NVIDIA GPU expansion; $100M Bitcoin fund and a much longer tail of words"
	a := Wrap(s, DefaultOptions())
	b := Wrap(s, DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Wrap() not deterministic: %q vs %q", a.Lines, b.Lines)
	}
}

func TestWrapCountsRunes(t *testing.T) {
	// 20 CJK runes are 60 bytes but fit on one 30-rune line.
	s := strings.Repeat("股", 20)
	got := Wrap(s, DefaultOptions())
	if got.Count() != 1 {
		t.Errorf("Count() = %d, want 1", got.Count())
	}
}

func TestWrapZeroOptionsUseDefaults(t *testing.T) {
	s := "Merger deal with MBody AI; cancer diagnostics focus"
	if a, b := Wrap(s, Options{}), Wrap(s, DefaultOptions()); !reflect.DeepEqual(a, b) {
		t.Errorf("Wrap(Options{}) = %q, want %q", a.Lines, b.Lines)
	}
}
