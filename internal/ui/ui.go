// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
	"github.com/litescript/ls-cosmos/internal/version"
)

// Rows taken by the header and footer around the canvas.
const (
	headerLines = 2
	footerLines = 2
)

// Msg types for Bubble Tea
type (
	// FrameMsg drives one scene frame.
	FrameMsg time.Time

	// ReloadMsg carries a re-parsed universe file.
	ReloadMsg hierarchy.Reload
)

// Options configures the root model.
type Options struct {
	FPS     int
	Reloads <-chan hierarchy.Reload
	Logger  *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state   *state.Manager
	view    *scene.View
	logger  *logging.Logger
	reloads <-chan hierarchy.Reload
	fps     int

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	start     time.Time
	frameTime float64
	pointer   hover.Pointer

	cosmos CosmosModel
}

// New creates the root UI model around a view. The view is initialized on
// the first window size message.
func New(view *scene.View, stateMgr *state.Manager, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return Model{
		state:   stateMgr,
		view:    view,
		logger:  opts.Logger.With("ui"),
		reloads: opts.Reloads,
		fps:     opts.FPS,
		pointer: hover.Pointer{X: -1, Y: -1},
		cosmos:  NewCosmosModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(m.fps),
		WaitForReload(m.reloads),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.view.Dispose()
			return m, tea.Quit
		case "esc", "backspace", "b":
			if !m.view.Back() {
				m.statusMsg = "Already at the universe"
			}
		case "h", "home":
			m.view.Home()
		case "l":
			m.cosmos = m.cosmos.ToggleLabels()
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case tea.BlurMsg:
		m.pointer.OnScreen = false

	case tea.FocusMsg:
		m.pointer.OnScreen = m.pointer.X >= 0

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		rows := msg.Height - headerLines - footerLines
		if rows < 1 {
			rows = 1
		}
		m.cosmos = m.cosmos.SetSize(msg.Width, rows)
		w, h := m.cosmos.ScreenSize()
		if m.view.Initialized() {
			m.view.Resize(w, h)
		} else {
			m.view.Init(w, h)
		}

	case FrameMsg:
		cmds = append(cmds, frameCmd(m.fps))
		m = m.step(time.Time(msg))

	case ReloadMsg:
		cmds = append(cmds, WaitForReload(m.reloads))
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Reload failed: %v", msg.Err)
			m.logger.Warn("reload failed: %v", msg.Err)
			if m.state != nil {
				m.state.RecordReload("", msg.Err)
			}
			break
		}
		m.view.Swap(msg.Universe)
		m.statusMsg = fmt.Sprintf("Reloaded %s", msg.Universe.Source)
	}

	return m, tea.Batch(cmds...)
}

// step runs one scene frame at wall time now.
func (m Model) step(now time.Time) Model {
	if m.start.IsZero() {
		m.start = now
	}
	m.frameTime = float64(now.Sub(m.start)) / float64(time.Millisecond)
	m.animTick++

	f := m.view.Frame(scene.Input{
		FrameTime:         m.frameTime,
		Pointer:           m.pointer,
		SunTooltipBounds:  m.cosmos.SunTooltipBounds(),
		BodyTooltipBounds: m.cosmos.BodyTooltipBounds(),
	})
	m.cosmos = m.cosmos.SetFrame(f)
	return m
}

// handleMouse maps a terminal cell to the scene pixel at its center. Rows
// outside the canvas count as the content card.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	col, row := msg.X, msg.Y-headerLines
	x, y := CellToScreen(col, row)
	p := hover.Pointer{X: x, Y: y, OnScreen: true}
	if !m.cosmos.Contains(col, row) {
		p.OverContentCard = true
	}
	for _, r := range []*hover.Rect{m.cosmos.SunTooltipBounds(), m.cosmos.BodyTooltipBounds()} {
		if r != nil && r.Contains(x, y) {
			p.OverTooltip = true
		}
	}
	m.pointer = p

	if msg.Action != tea.MouseActionPress || p.OverContentCard {
		return m
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if obj, ok := m.view.Click(x, y); ok {
			m.statusMsg = fmt.Sprintf("%s: %s", obj.Level, obj.Name)
		}
	case tea.MouseButtonRight:
		m.view.Back()
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.cosmos.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + "\n" + m.renderBreadcrumb()
}

func (m Model) renderLogo() string {
	title := []rune("  ✦ LS-COSMOS")
	var b strings.Builder
	for col, r := range title {
		color := gradientColor(col, 0, len(title), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s", version.Version)))
	return b.String()
}

// renderBreadcrumb shows the path from the universe to the focused object.
func (m Model) renderBreadcrumb() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	crumbs := m.breadcrumbs()
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = active.Render(c)
		} else {
			parts[i] = dim.Render(c)
		}
	}
	return "  " + strings.Join(parts, dim.Render(" › "))
}

func (m Model) breadcrumbs() []string {
	crumbs := []string{"Universe"}
	u := m.view.Universe()
	if u == nil {
		return crumbs
	}
	nav := m.view.Navigator().State()
	ids := []string{nav.GalaxyID, nav.SunID, nav.PlanetID}
	if nav.Level == cosmos.LevelSpecial {
		ids = []string{nav.SpecialID}
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if obj, ok := u.Tree.ObjectByID(id); ok {
			crumbs = append(crumbs, obj.Name)
		}
	}
	return crumbs
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue -> purple -> magenta -> pink, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X",
		clampInt(int(r*brightness), 0, 255),
		clampInt(int(g*brightness), 0, 255),
		clampInt(int(b*brightness), 0, 255))
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	status := accentStyle.Render(spinner) + " " + m.cosmos.renderHUD()
	help := dimStyle.Render("click: enter | esc: back | h: home | l: labels | q: quit")
	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	} else if m.state != nil {
		if events := m.state.RecentEvents(1); len(events) > 0 {
			e := events[0]
			footer += "\n  " + dimStyle.Render(fmt.Sprintf("%s %s", e.Type, strings.TrimSpace(e.From+" "+e.To+" "+e.ObjectID)))
		}
	}
	return footer
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// WaitForReload waits for the next universe reload. A nil or closed channel
// yields no message.
func WaitForReload(ch <-chan hierarchy.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg(r)
	}
}
