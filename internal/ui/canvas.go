package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// A terminal cell stands for a CellWidth x CellHeight block of scene pixels.
// The 1:2 ratio matches the usual glyph shape, so circles stay round.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// CellToScreen returns the scene pixel at the center of a cell.
func CellToScreen(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

// ScreenToCell returns the cell containing a scene pixel.
func ScreenToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

type styleKind int

const (
	styleNone styleKind = iota
	styleStar
	styleDim
	styleObject
	styleFocus
	styleSun
	styleSunHover
	styleBody
	styleBodyHover
	styleSatellite
	styleLabel
	styleTipBorder
	styleTipTitle
	styleTipText
)

type cell struct {
	r     rune
	kind  styleKind
	color string // optional foreground override
}

// canvas is a rune grid with a style per cell.
type canvas struct {
	cols, rows int
	cells      [][]cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range c.cells {
		c.cells[y] = make([]cell, cols)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *canvas) set(col, row int, r rune, kind styleKind, color string) {
	if c.inside(col, row) {
		c.cells[row][col] = cell{r: r, kind: kind, color: color}
	}
}

func (c *canvas) setIfEmpty(col, row int, r rune, kind styleKind, color string) {
	if c.inside(col, row) && c.cells[row][col].r == ' ' {
		c.cells[row][col] = cell{r: r, kind: kind, color: color}
	}
}

// plot sets the cell under a scene pixel.
func (c *canvas) plot(x, y float64, r rune, kind styleKind, color string) {
	col, row := ScreenToCell(x, y)
	c.set(col, row, r, kind, color)
}

// ring draws a circle of radius r scene pixels around (x, y) into empty
// cells only.
func (c *canvas) ring(x, y, r float64, glyph rune, kind styleKind, color string) {
	if r < CellWidth {
		return
	}
	steps := int(2 * math.Pi * r / CellWidth)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		col, row := ScreenToCell(x+r*math.Cos(theta), y-r*math.Sin(theta))
		c.setIfEmpty(col, row, glyph, kind, color)
	}
}

// text writes s starting at a cell, clipped to the grid.
func (c *canvas) text(col, row int, s string, kind styleKind, color string) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r, kind, color)
	}
}

// starfield sprinkles a fixed, sparse background.
func (c *canvas) starfield() {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			h := uint32(col*73856093) ^ uint32(row*19349663)
			switch h % 97 {
			case 0:
				c.set(col, row, '.', styleStar, "")
			case 1:
				c.set(col, row, '˙', styleStar, "")
			}
		}
	}
}

var canvasStyles = map[styleKind]lipgloss.Style{
	styleStar:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	styleDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	styleObject:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	styleFocus:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	styleSun:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	styleSunHover:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	styleBody:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	styleBodyHover: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	styleSatellite: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	styleLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	styleTipBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF")),
	styleTipTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	styleTipText:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
}

func cellStyle(c cell) lipgloss.Style {
	st := canvasStyles[c.kind]
	if c.color != "" {
		st = st.Foreground(lipgloss.Color(c.color))
	}
	return st
}

// render joins the grid into a string, styling runs of equal cells once.
func (c *canvas) render() string {
	var b strings.Builder
	for y, row := range c.cells {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].kind == row[start].kind && row[x].color == row[start].color {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			if row[start].kind == styleNone {
				b.WriteString(string(run))
			} else {
				b.WriteString(cellStyle(row[start]).Render(string(run)))
			}
			start = x
		}
		if y < len(c.cells)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// plain returns the grid without styling.
func (c *canvas) plain() string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		rs := make([]rune, len(row))
		for x, cl := range row {
			rs[x] = cl.r
		}
		lines[y] = string(rs)
	}
	return strings.Join(lines, "\n")
}
