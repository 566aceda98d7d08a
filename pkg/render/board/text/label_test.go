package text

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"Wolfspeed", 12, "Wolfspeed"},
		{"Check-cap Ltd", 12, "Check-cap Lt..."},
		{"Office Properties", 12, "Office Prope..."},
		{"exactly12chr", 12, "exactly12chr"},
		{"", 12, ""},
		{"日本電信電話株式会社ホールディングス", 12, "日本電信電話株式会社ホー..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Truncate(tt.input, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Big Movers & Drivers", "Big Movers &amp; Drivers"},
		{"<script>", "&lt;script&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&#39;s"},
		{"plain", "plain"},
		{"&amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EscapeXML(tt.input); got != tt.want {
				t.Errorf("EscapeXML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeXMLRemovesReservedCharacters(t *testing.T) {
	got := EscapeXML(`<a href="x">Tom & Jerry's</a>`)
	for _, c := range []string{"<", ">", `"`, "'"} {
		if strings.Contains(got, c) {
			t.Errorf("EscapeXML output %q contains raw %q", got, c)
		}
	}
	stripped := strings.NewReplacer("&amp;", "", "&lt;", "", "&gt;", "", "&quot;", "", "&#39;", "").Replace(got)
	if strings.Contains(stripped, "&") {
		t.Errorf("EscapeXML output %q contains a raw ampersand", got)
	}
}
