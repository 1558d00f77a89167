package scene

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/orbit"
	"github.com/litescript/ls-cosmos/internal/state"
)

// TextSink keeps the latest frame for headless output.
type TextSink struct {
	Last   Frame
	Frames int
}

// Draw implements Sink.
func (s *TextSink) Draw(f Frame) {
	s.Last = f
	s.Frames++
}

// Simulate drives v for n frames spaced dt ms apart, pointer(i) giving the
// pointer of frame i, and draws every frame to sink. It returns the last
// frame.
func Simulate(v *View, sink Sink, n int, dt float64, pointer func(i int) hover.Pointer) Frame {
	var f Frame
	for i := 0; i < n; i++ {
		in := Input{FrameTime: float64(i) * dt}
		if pointer != nil {
			in.Pointer = pointer(i)
		}
		f = v.Frame(in)
		sink.Draw(f)
	}
	return f
}

// LinearPath moves the pointer from (x0, y0) to (x1, y1) over n frames
// and then rests there.
func LinearPath(x0, y0, x1, y1 float64, n int) func(int) hover.Pointer {
	return func(i int) hover.Pointer {
		t := 1.0
		if n > 1 && i < n-1 {
			t = float64(i) / float64(n-1)
		}
		return hover.Pointer{X: x0 + (x1-x0)*t, Y: y0 + (y1-y0)*t, OnScreen: true}
	}
}

// WriteSummaryTable writes the navigation state and every sprite of f.
func WriteSummaryTable(w io.Writer, f Frame, frames int) {
	fmt.Fprintf(w, "Cosmos @ frame %d (%.0f ms)  level=%s  camera=(%.3f, %.3f) x%.2f\n",
		frames, f.FrameTime, f.Nav, f.Camera.CX, f.Camera.CY, f.Camera.Zoom)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if f.Empty() {
		fmt.Fprintln(w, "Nothing to draw")
		return
	}

	fmt.Fprintf(w, "%-6s %-28s %-10s %8s %8s %-8s\n", "Kind", "Name", "Detail", "X", "Y", "State")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, o := range f.Objects {
		st := ""
		if o.Focused {
			st = "focus"
		}
		fmt.Fprintf(w, "%-6s %-28s %-10s %8.1f %8.1f %-8s\n",
			"object", truncateStr(o.Name, 28), o.Level, o.X, o.Y, st)
	}
	for _, s := range f.Suns {
		st := ""
		switch {
		case s.Hovered:
			st = "hover"
		case s.Propelling:
			st = "propel"
		}
		fmt.Fprintf(w, "%-6s %-28s %-10s %8.1f %8.1f %-8s\n",
			"sun", truncateStr(s.Name, 28), fmt.Sprintf("r=%.0f", s.Radius), s.X, s.Y, st)
	}
	for _, b := range f.Bodies {
		st := ""
		switch {
		case b.Hovered:
			st = "hover"
		case b.Paused:
			st = "paused"
		}
		fmt.Fprintf(w, "%-6s %-28s %-10s %8.1f %8.1f %-8s\n",
			"body", truncateStr(b.Name, 28), b.Path, b.X, b.Y, st)
	}

	fmt.Fprintf(w, "\nTotal: %d objects, %d suns, %d bodies, %d satellites\n",
		len(f.Objects), len(f.Suns), len(f.Bodies), len(f.Satellites))

	for _, tip := range []*Tooltip{f.SunTooltip, f.BodyTooltip} {
		if tip == nil {
			continue
		}
		fmt.Fprintf(w, "Tooltip [%s] %s: %s\n", tip.Kind, tip.Title, strings.Join(tip.Lines, " | "))
	}
}

// MiniMapConfig sizes the ASCII mini map.
type MiniMapConfig struct {
	Cols int
	Rows int
}

// DefaultMiniMapConfig returns a map that fits an 80 column terminal.
func DefaultMiniMapConfig() MiniMapConfig {
	return MiniMapConfig{Cols: 64, Rows: 20}
}

// WriteMiniMap draws f onto a small character grid. Later layers overwrite
// earlier ones: satellites, objects, suns, bodies.
func WriteMiniMap(w io.Writer, f Frame, cfg MiniMapConfig) {
	if cfg.Cols <= 0 || cfg.Rows <= 0 || f.Width <= 0 || f.Height <= 0 {
		return
	}
	grid := make([][]rune, cfg.Rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cfg.Cols))
	}
	plot := func(x, y float64, r rune) {
		cx := int(math.Floor(x / f.Width * float64(cfg.Cols)))
		cy := int(math.Floor(y / f.Height * float64(cfg.Rows)))
		if cx >= 0 && cx < cfg.Cols && cy >= 0 && cy < cfg.Rows {
			grid[cy][cx] = r
		}
	}

	for _, s := range f.Satellites {
		plot(s.X, s.Y, '·')
	}
	for _, o := range f.Objects {
		plot(o.X, o.Y, objectGlyph(o))
	}
	for _, s := range f.Suns {
		g := '☼'
		if s.Hovered {
			g = '◉'
		}
		plot(s.X, s.Y, g)
	}
	for _, b := range f.Bodies {
		plot(b.X, b.Y, bodyGlyph(b))
	}

	border := "+" + strings.Repeat("-", cfg.Cols) + "+"
	fmt.Fprintln(w, border)
	for _, row := range grid {
		fmt.Fprintf(w, "|%s|\n", string(row))
	}
	fmt.Fprintln(w, border)
}

func objectGlyph(o ObjectSprite) rune {
	switch o.Level {
	case cosmos.LevelGalaxy:
		if o.Focused {
			return '@'
		}
		return '§'
	case cosmos.LevelSun:
		return '*'
	case cosmos.LevelPlanet:
		return 'o'
	}
	return '◇'
}

func bodyGlyph(b BodySprite) rune {
	if b.Hovered {
		return '●'
	}
	switch b.Path {
	case orbit.PathComet:
		return '~'
	case orbit.PathStar:
		return '+'
	}
	return '•'
}

// WriteEvents writes the last n events, oldest first.
func WriteEvents(w io.Writer, events []state.Event, n int) {
	fmt.Fprintln(w, "Recent events")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		detail := e.ObjectID
		switch {
		case e.From != "" || e.To != "":
			detail = fmt.Sprintf("%s -> %s", e.From, e.To)
		case e.Detail != "" && e.ObjectID != "":
			detail = fmt.Sprintf("%s %s", e.Detail, e.ObjectID)
		case e.Detail != "":
			detail = e.Detail
		}
		fmt.Fprintf(w, "%s  %-15s %s\n", e.Timestamp.Format("15:04:05.000"), e.Type, detail)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
