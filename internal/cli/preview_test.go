package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/pipeline"
)

func plannedExample(t *testing.T) PreviewModel {
	t.Helper()
	pages, rows, err := pipeline.Plan(chart.Example(), pipeline.Options{})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	return NewPreviewModel(pages, rows)
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestPreviewNavigation(t *testing.T) {
	var m tea.Model = plannedExample(t)

	tests := []struct {
		key  string
		want int
	}{
		{"left", 0},
		{"right", 1},
		{"right", 1},
		{"left", 0},
		{"G", 1},
		{"g", 0},
		{"l", 1},
		{"h", 0},
	}
	for _, tt := range tests {
		m = press(m, tt.key)
		if got := m.(PreviewModel).Index; got != tt.want {
			t.Errorf("after %q Index = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestPreviewQuit(t *testing.T) {
	m := plannedExample(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := plannedExample(t)

	view := m.View()
	for _, want := range []string{"Sep 15", "Big Movers & Drivers", "CHEK", "+184.18%", "page 1/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("page 1 view missing %q", want)
		}
	}
	if strings.Contains(view, "GPUS") {
		t.Error("page 1 view should not contain the eighth record")
	}

	m.Index = 1
	view = m.View()
	if !strings.Contains(view, "GPUS") || !strings.Contains(view, "page 2/2") {
		t.Errorf("page 2 view = %q", view)
	}

	if empty := NewPreviewModel(nil, nil).View(); !strings.Contains(empty, "no pages") {
		t.Errorf("empty view = %q", empty)
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name  string
		stats pipeline.Stats
		want  string
	}{
		{"fresh", pipeline.Stats{Records: 8, Pages: 2}, "fresh"},
		{"all cached", pipeline.Stats{Records: 8, Pages: 2, ArtifactHits: 4}, "cached"},
		{"partly cached", pipeline.Stats{Records: 8, Pages: 2, ArtifactHits: 1, TotalTime: 1500 * time.Millisecond}, "1/4 cached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.stats, 2)
			if !strings.Contains(line, tt.want) || !strings.Contains(line, "8 records") || !strings.Contains(line, "2 pages") {
				t.Errorf("statsLine() = %q, want it to mention %q", line, tt.want)
			}
		})
	}
}
