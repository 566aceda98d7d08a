package sink

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/render/board/compose"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
	"github.com/matzehuels/moverboard/pkg/render/board/scene"
)

func examplePage(t *testing.T, logos ...*compose.Asset) *scene.Document {
	t.Helper()
	pages, err := layout.Paginate(chart.Example(), layout.DefaultCapacity)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	rows, err := layout.LayoutRows(pages[0].Records, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("LayoutRows() error = %v", err)
	}
	doc, err := compose.Compose(pages[0], rows, compose.Bundle{Logos: logos})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return doc
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(examplePage(t, &compose.Asset{MIME: "image/png", Data: []byte{0x89, 'P'}}))

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v", err)
		}
	}

	s := string(svg)
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="1180" height="2080" viewBox="0 0 1180 2080">`,
		`<rect x="0" y="0" width="1180" height="2080" fill="#1a1d21"/>`,
		`Big Movers &amp; Drivers`,
		`<rect x="70" y="501" width="1040" height="55" rx="10" fill="#7FF9C1"/>`,
		`text-anchor="end">Intraday %</text>`,
		`<clipPath id="logoClip0"><circle cx="142" cy=`,
		`clip-path="url(#logoClip0)"`,
		`preserveAspectRatio="xMidYMid slice"`,
		`href="data:image/png;base64,`,
		`<tspan x="435" dy="0">`,
		`font-family="Arial, sans-serif"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(s, "logoClip1") {
		t.Error("row 1 has no logo but got a clip path")
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	doc := scene.NewBuilder(100, 100).Add(
		scene.Text{X: 1, Y: 2, Lines: []string{`<b>"A&B's"</b>`}, FontSize: 10, Fill: "#000"},
		scene.Text{X: 1, Y: 2, Lines: []string{"x<y", "a&b"}, Multiline: true, LinePitch: 41, FontSize: 10, Fill: "#000"},
	).Build()
	s := string(RenderSVG(doc))

	if !strings.Contains(s, `&lt;b&gt;&quot;A&amp;B&#39;s&quot;&lt;/b&gt;`) {
		t.Errorf("text not escaped:\n%s", s)
	}
	if !strings.Contains(s, `<tspan x="1" dy="0">x&lt;y</tspan>`) || !strings.Contains(s, `<tspan x="1" dy="41">a&amp;b</tspan>`) {
		t.Errorf("tspans wrong:\n%s", s)
	}
	if strings.Contains(s, "<b>") {
		t.Error("raw markup leaked into SVG")
	}
}

func TestRenderSVGMultilineSingleLine(t *testing.T) {
	doc := scene.NewBuilder(10, 10).Add(
		scene.Text{X: 435, Y: 5, Lines: []string{"only"}, Multiline: true, LinePitch: 41, FontSize: 31},
	).Build()
	if s := string(RenderSVG(doc)); !strings.Contains(s, `<tspan x="435" dy="0">only</tspan>`) {
		t.Errorf("single driver line not in tspan:\n%s", s)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	doc := scene.NewBuilder(10, 10).Add(
		scene.Text{Lines: []string{"a"}, FontSize: 10},
		scene.Image{W: 1, H: 1, MIME: "image/png", Data: []byte{1}},
	).Build()
	s := string(RenderSVG(doc, WithFontFamily("Inter"), WithXLink()))

	if !strings.Contains(s, `font-family="Inter"`) {
		t.Error("font family option ignored")
	}
	if !strings.Contains(s, `xmlns:xlink="http://www.w3.org/1999/xlink"`) || !strings.Contains(s, `xlink:href="data:image/png;base64,AQ=="`) {
		t.Errorf("xlink option ignored:\n%s", s)
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(examplePage(t))
	b := RenderSVG(examplePage(t))
	if string(a) != string(b) {
		t.Error("RenderSVG() output differs between identical runs")
	}
}

func TestDataURI(t *testing.T) {
	if got := DataURI("image/jpeg", []byte("hi")); got != "data:image/jpeg;base64,aGk=" {
		t.Errorf("DataURI() = %q", got)
	}
}
