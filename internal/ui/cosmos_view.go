package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/orbit"
	"github.com/litescript/ls-cosmos/internal/scene"
)

// tooltipBox is a tooltip laid out in cells.
type tooltipBox struct {
	tip        *scene.Tooltip
	col, row   int
	cols, rows int
}

// bounds returns the box as a scene pixel rectangle.
func (b tooltipBox) bounds() *hover.Rect {
	return &hover.Rect{
		Left:   float64(b.col) * CellWidth,
		Top:    float64(b.row) * CellHeight,
		Right:  float64(b.col+b.cols) * CellWidth,
		Bottom: float64(b.row+b.rows) * CellHeight,
	}
}

// CosmosModel renders scene frames onto the terminal grid.
type CosmosModel struct {
	cols, rows int
	frame      scene.Frame
	showLabels bool

	sunTip  *tooltipBox
	bodyTip *tooltipBox
}

// NewCosmosModel creates a canvas model with labels on.
func NewCosmosModel() CosmosModel {
	return CosmosModel{showLabels: true}
}

// SetSize sets the canvas size in cells.
func (m CosmosModel) SetSize(cols, rows int) CosmosModel {
	m.cols, m.rows = cols, rows
	return m
}

// ScreenSize returns the canvas size in scene pixels.
func (m CosmosModel) ScreenSize() (width, height float64) {
	return float64(m.cols) * CellWidth, float64(m.rows) * CellHeight
}

// Contains reports whether a cell lies on the canvas.
func (m CosmosModel) Contains(col, row int) bool {
	return col >= 0 && col < m.cols && row >= 0 && row < m.rows
}

// ToggleLabels flips object labels on or off.
func (m CosmosModel) ToggleLabels() CosmosModel {
	m.showLabels = !m.showLabels
	return m
}

// SetFrame stores f and lays out its tooltips.
func (m CosmosModel) SetFrame(f scene.Frame) CosmosModel {
	m.frame = f
	m.sunTip = m.layoutTooltip(f.SunTooltip)
	m.bodyTip = m.layoutTooltip(f.BodyTooltip)
	return m
}

// SunTooltipBounds returns where the sun tooltip was drawn, or nil.
func (m CosmosModel) SunTooltipBounds() *hover.Rect {
	if m.sunTip == nil {
		return nil
	}
	return m.sunTip.bounds()
}

// BodyTooltipBounds returns where the body tooltip was drawn, or nil.
func (m CosmosModel) BodyTooltipBounds() *hover.Rect {
	if m.bodyTip == nil {
		return nil
	}
	return m.bodyTip.bounds()
}

// layoutTooltip places a box to the right of the anchor, flipping left and
// clamping so it stays on the canvas.
func (m CosmosModel) layoutTooltip(tip *scene.Tooltip) *tooltipBox {
	if tip == nil || m.cols <= 0 || m.rows <= 0 {
		return nil
	}
	width := len([]rune(tip.Title))
	for _, l := range tip.Lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	b := &tooltipBox{tip: tip, cols: width + 4, rows: len(tip.Lines) + 3}
	if b.cols > m.cols {
		b.cols = m.cols
	}
	if b.rows > m.rows {
		b.rows = m.rows
	}

	col, row := ScreenToCell(tip.X, tip.Y)
	b.col, b.row = col+1, row-b.rows/2
	if b.col+b.cols > m.cols {
		b.col = col - b.cols - 1
	}
	b.col = clampInt(b.col, 0, m.cols-b.cols)
	b.row = clampInt(b.row, 0, m.rows-b.rows)
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the canvas.
func (m CosmosModel) View() string {
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}
	return m.buildCanvas().render()
}

// Plain renders the canvas without styling.
func (m CosmosModel) Plain() string {
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}
	return m.buildCanvas().plain()
}

func (m CosmosModel) buildCanvas() *canvas {
	c := newCanvas(m.cols, m.rows)
	c.starfield()
	f := m.frame

	// Orbit paths first so everything else overwrites them.
	for _, s := range f.Satellites {
		c.plot(s.X, s.Y, '·', styleSatellite, "")
	}

	for _, o := range f.Objects {
		kind := styleObject
		if o.Focused {
			kind = styleFocus
		}
		c.ring(o.X, o.Y, o.Radius, ringGlyph(o.Level), styleDim, o.Color)
		c.plot(o.X, o.Y, objectGlyph(o), kind, o.Color)
		if m.showLabels {
			m.label(c, o.X, o.Y, o.Name, styleLabel)
		}
	}

	for _, s := range f.Suns {
		kind := styleSun
		glyph := '☼'
		if s.Hovered {
			kind, glyph = styleSunHover, '◉'
		}
		c.ring(s.X, s.Y, s.Radius, '∙', styleSun, s.Color)
		if s.Propelling {
			c.plot(s.X, s.Y+CellHeight, '⌄', styleSun, s.Color)
		}
		c.plot(s.X, s.Y, glyph, kind, s.Color)
		if m.showLabels {
			m.label(c, s.X, s.Y, s.Name, styleLabel)
		}
	}

	for _, b := range f.Bodies {
		kind := styleBody
		if b.Hovered {
			kind = styleBodyHover
		}
		c.plot(b.X, b.Y, bodyGlyph(b), kind, b.Color)
		if m.showLabels && b.Initials != "" {
			col, row := ScreenToCell(b.X, b.Y)
			c.text(col+1, row, b.Initials, styleDim, "")
		}
	}

	for _, box := range []*tooltipBox{m.sunTip, m.bodyTip} {
		if box != nil {
			drawTooltip(c, box)
		}
	}
	return c
}

// label centers a name under a scene point.
func (m CosmosModel) label(c *canvas, x, y float64, name string, kind styleKind) {
	col, row := ScreenToCell(x, y)
	name = truncateStr(name, 24)
	c.text(col-len([]rune(name))/2, row+1, name, kind, "")
}

func drawTooltip(c *canvas, b *tooltipBox) {
	right, bottom := b.col+b.cols-1, b.row+b.rows-1
	for col := b.col; col <= right; col++ {
		for row := b.row; row <= bottom; row++ {
			c.set(col, row, ' ', styleTipText, "")
		}
	}
	for col := b.col + 1; col < right; col++ {
		c.set(col, b.row, '─', styleTipBorder, "")
		c.set(col, bottom, '─', styleTipBorder, "")
	}
	for row := b.row + 1; row < bottom; row++ {
		c.set(b.col, row, '│', styleTipBorder, "")
		c.set(right, row, '│', styleTipBorder, "")
	}
	c.set(b.col, b.row, '╭', styleTipBorder, "")
	c.set(right, b.row, '╮', styleTipBorder, "")
	c.set(b.col, bottom, '╰', styleTipBorder, "")
	c.set(right, bottom, '╯', styleTipBorder, "")

	inner := b.cols - 4
	c.text(b.col+2, b.row+1, truncateStr(b.tip.Title, inner), styleTipTitle, "")
	for i, l := range b.tip.Lines {
		row := b.row + 2 + i
		if row >= bottom {
			break
		}
		c.text(b.col+2, row, truncateStr(l, inner), styleTipText, "")
	}
}

func ringGlyph(l cosmos.Level) rune {
	if l == cosmos.LevelGalaxy {
		return '∙'
	}
	return '·'
}

func objectGlyph(o scene.ObjectSprite) rune {
	switch o.Level {
	case cosmos.LevelGalaxy:
		if o.Focused {
			return '◎'
		}
		return '§'
	case cosmos.LevelSun:
		return '✶'
	case cosmos.LevelPlanet:
		return '●'
	}
	return '◆'
}

func bodyGlyph(b scene.BodySprite) rune {
	if b.Hovered {
		return '◉'
	}
	switch b.Path {
	case orbit.PathComet:
		return '☄'
	case orbit.PathStar:
		return '✦'
	}
	if b.Scale > 1.05 {
		return '●'
	}
	return '•'
}

// renderHUD returns a one line summary of the camera and navigation.
func (m CosmosModel) renderHUD() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	f := m.frame
	parts := []string{
		accent.Render(strings.ToUpper(string(f.Nav.Level))),
		dim.Render(fmt.Sprintf("zoom x%.2f", f.Camera.Zoom)),
		dim.Render(fmt.Sprintf("bodies %d", len(f.Bodies))),
	}
	if f.Nav.Transitioning {
		parts = append(parts, accent.Render("moving"))
	}
	if f.Previewing != "" {
		parts = append(parts, dim.Render("preview "+f.Previewing))
	}
	return strings.Join(parts, dim.Render(" · "))
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
