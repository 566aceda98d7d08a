package sink

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	doc := examplePage(t)
	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Width    float64 `json:"width"`
		Height   float64 `json:"height"`
		Elements []struct {
			Type string `json:"type"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 1180 || out.Height != 2080 {
		t.Errorf("size = %vx%v, want 1180x2080", out.Width, out.Height)
	}
	if len(out.Elements) != doc.Len() {
		t.Errorf("len(Elements) = %d, want %d", len(out.Elements), doc.Len())
	}
	if out.Elements[0].Type != "rect" {
		t.Errorf("Elements[0].Type = %q, want rect", out.Elements[0].Type)
	}
	if data[len(data)-1] != '\n' {
		t.Error("RenderJSON() output lacks trailing newline")
	}
}
