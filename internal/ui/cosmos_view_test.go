package ui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/scene"
)

func TestCosmosModelEmpty(t *testing.T) {
	m := NewCosmosModel()
	if got := m.View(); got != "" {
		t.Errorf("View() without size = %q, want empty", got)
	}
	if m.SunTooltipBounds() != nil || m.BodyTooltipBounds() != nil {
		t.Error("tooltip bounds without a frame")
	}
}

func TestTooltipLayout(t *testing.T) {
	m := NewCosmosModel().SetSize(40, 20)
	tip := &scene.Tooltip{Kind: "body", ID: "b", Title: "Project", Lines: []string{"one", "two"}}

	tests := []struct {
		name   string
		x, y   float64
		wantAt [2]int // col, row
	}{
		{"right of anchor", 40, 160, [2]int{6, 8}},
		{"flips left at the edge", 300, 160, [2]int{25, 8}},
		{"clamped to the top", 40, 0, [2]int{6, 0}},
		{"clamped to the bottom", 40, 319, [2]int{6, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip.X, tip.Y = tt.x, tt.y
			box := m.layoutTooltip(tip)
			if box == nil {
				t.Fatal("layoutTooltip returned nil")
			}
			if box.cols != 11 || box.rows != 5 {
				t.Errorf("box size = %dx%d, want 11x5", box.cols, box.rows)
			}
			if got := [2]int{box.col, box.row}; got != tt.wantAt {
				t.Errorf("box at %v, want %v", got, tt.wantAt)
			}
		})
	}
}

func TestTooltipBoundsArePixels(t *testing.T) {
	box := tooltipBox{col: 2, row: 3, cols: 10, rows: 4}
	want := &hover.Rect{Left: 16, Top: 48, Right: 96, Bottom: 112}
	if diff := cmp.Diff(want, box.bounds()); diff != "" {
		t.Errorf("bounds() mismatch (-want +got):\n%s", diff)
	}
}

func TestCosmosModelDrawsSprites(t *testing.T) {
	m := NewCosmosModel().SetSize(40, 12)
	f := scene.Frame{
		Width: 320, Height: 192,
		Nav: cosmos.NavState{Level: cosmos.LevelUniverse},
		Objects: []scene.ObjectSprite{
			{ID: "g", Name: "Gal", Level: cosmos.LevelGalaxy, X: 44, Y: 24, Radius: 4},
		},
		Suns: []scene.SunSprite{
			{ID: "s", Name: "Sol", X: 164, Y: 88, Radius: 4, Hovered: true},
		},
		Bodies: []scene.BodySprite{
			{ID: "b", Name: "Body", Initials: "BD", X: 244, Y: 152, Scale: 1},
		},
		BodyTooltip: &scene.Tooltip{Kind: "body", ID: "b", Title: "Body", Lines: []string{"ai"}, X: 20, Y: 150},
	}
	m = m.SetFrame(f)

	lines := strings.Split(m.Plain(), "\n")
	if len(lines) != 12 {
		t.Fatalf("rows = %d, want 12", len(lines))
	}
	cellAt := func(col, row int) rune { return []rune(lines[row])[col] }

	if got := cellAt(5, 1); got != '§' {
		t.Errorf("galaxy glyph = %q, want §", got)
	}
	if !strings.Contains(lines[2], "Gal") {
		t.Errorf("galaxy label missing: %q", lines[2])
	}
	if got := cellAt(20, 5); got != '◉' {
		t.Errorf("hovered sun glyph = %q, want ◉", got)
	}
	if got := cellAt(30, 9); got != '•' {
		t.Errorf("body glyph = %q, want •", got)
	}
	if !strings.Contains(lines[9], "BD") {
		t.Errorf("body initials missing: %q", lines[9])
	}

	if m.BodyTooltipBounds() == nil {
		t.Fatal("body tooltip not laid out")
	}
	if !strings.Contains(m.Plain(), "╭") || !strings.Contains(m.Plain(), "Body") {
		t.Error("tooltip box not drawn")
	}

	m = m.ToggleLabels().SetFrame(f)
	if strings.Contains(m.Plain(), "Gal") {
		t.Error("labels drawn after toggle")
	}
}

func TestCanvasRenderKeepsRows(t *testing.T) {
	c := newCanvas(5, 3)
	c.set(1, 1, 'x', styleSun, "#ff0000")
	c.set(9, 9, 'y', styleSun, "") // clipped

	if got := c.plain(); got != "     \n x   \n     " {
		t.Errorf("plain() = %q", got)
	}
	if n := strings.Count(c.render(), "\n"); n != 2 {
		t.Errorf("render() newlines = %d, want 2", n)
	}
}
