package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
)

func newModel(t *testing.T, reloads <-chan hierarchy.Reload) (Model, *state.Manager) {
	t.Helper()
	u, err := hierarchy.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	mgr := state.NewManager(state.DefaultConfig())
	v := scene.New(config.Default(), u, nil, mgr)
	m := New(v, mgr, Options{FPS: 30, Reloads: reloads})

	// 100x34 leaves a 100x30 canvas: 800x480 scene pixels.
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 34})
	return next.(Model), mgr
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func frames(m Model, start time.Time, n int) Model {
	for i := 0; i < n; i++ {
		m = update(m, FrameMsg(start.Add(time.Duration(i)*33*time.Millisecond)))
	}
	return m
}

func TestCellMapping(t *testing.T) {
	x, y := CellToScreen(3, 2)
	if x != 28 || y != 40 {
		t.Errorf("CellToScreen(3, 2) = (%v, %v), want (28, 40)", x, y)
	}
	col, row := ScreenToCell(x, y)
	if col != 3 || row != 2 {
		t.Errorf("ScreenToCell(%v, %v) = (%d, %d), want (3, 2)", x, y, col, row)
	}
	if col, _ := ScreenToCell(-1, 0); col != -1 {
		t.Errorf("ScreenToCell(-1, 0) col = %d, want -1", col)
	}
}

func TestWindowSizeInitializesView(t *testing.T) {
	m, mgr := newModel(t, nil)

	if !m.ready {
		t.Error("model not ready after WindowSizeMsg")
	}
	if !m.view.Initialized() {
		t.Fatal("view not initialized")
	}
	if w, h := m.view.Size(); w != 800 || h != 480 {
		t.Errorf("view size = %vx%v, want 800x480", w, h)
	}

	m = update(m, tea.WindowSizeMsg{Width: 60, Height: 24})
	if w, h := m.view.Size(); w != 480 || h != 320 {
		t.Errorf("view size after resize = %vx%v, want 480x320", w, h)
	}
	inits := 0
	for _, e := range mgr.RecentEvents(50) {
		if e.Type == state.EventViewInit {
			inits++
		}
	}
	if inits != 1 {
		t.Errorf("VIEW_INIT events = %d, want 1", inits)
	}
}

func TestViewBeforeReady(t *testing.T) {
	u, err := hierarchy.Default()
	if err != nil {
		t.Fatal(err)
	}
	m := New(scene.New(config.Default(), u, nil, nil), nil, Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
	if m.fps != 30 {
		t.Errorf("default fps = %d, want 30", m.fps)
	}
}

func TestFrameMsgDrawsCanvas(t *testing.T) {
	m, _ := newModel(t, nil)
	m = frames(m, time.Now(), 3)

	if m.frameTime < 60 {
		t.Errorf("frameTime = %v, want ~66ms after three frames", m.frameTime)
	}
	if m.cosmos.frame.Empty() {
		t.Fatal("no frame drawn")
	}

	plain := m.cosmos.Plain()
	lines := strings.Split(plain, "\n")
	if len(lines) != 30 {
		t.Errorf("canvas rows = %d, want 30", len(lines))
	}
	if !strings.Contains(plain, "Portfolio Galaxy") {
		t.Error("galaxy label missing from canvas")
	}

	view := m.View()
	if !strings.Contains(view, "Universe") {
		t.Error("breadcrumb missing from view")
	}
}

func TestClickDrillsDownAndEscGoesBack(t *testing.T) {
	m, _ := newModel(t, nil)
	start := time.Now()
	m = frames(m, start, 1)

	// Cell (30, 12) covers world (0.3, 0.4), the focus areas galaxy.
	m = update(m, tea.MouseMsg{X: 30, Y: 12 + headerLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	nav := m.view.Navigator().State()
	if nav.Level != cosmos.LevelGalaxy || nav.GalaxyID != "focus-areas-galaxy" {
		t.Fatalf("nav after click = %s, want galaxy:focus-areas-galaxy", nav)
	}
	if !strings.Contains(m.statusMsg, "Focus Areas Galaxy") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if crumbs := m.breadcrumbs(); len(crumbs) != 2 || crumbs[1] != "Focus Areas Galaxy" {
		t.Errorf("breadcrumbs = %v", crumbs)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if lvl := m.view.Navigator().State().Level; lvl != cosmos.LevelUniverse {
		t.Errorf("level after esc = %s, want universe", lvl)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.statusMsg != "Already at the universe" {
		t.Errorf("statusMsg at universe = %q", m.statusMsg)
	}
}

func TestHomeKey(t *testing.T) {
	m, _ := newModel(t, nil)
	m.view.Select("ai-ml-sun")
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if lvl := m.view.Navigator().State().Level; lvl != cosmos.LevelUniverse {
		t.Errorf("level after h = %s, want universe", lvl)
	}
}

func TestMouseOutsideCanvasIsContentCard(t *testing.T) {
	m, _ := newModel(t, nil)

	m = update(m, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionMotion})
	if !m.pointer.OnScreen || !m.pointer.OverContentCard {
		t.Errorf("pointer over header = %+v, want on screen over content card", m.pointer)
	}

	// Clicks on the header never navigate.
	m = update(m, tea.MouseMsg{X: 30, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if lvl := m.view.Navigator().State().Level; lvl != cosmos.LevelUniverse {
		t.Errorf("level after header click = %s", lvl)
	}

	m = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion})
	if m.pointer.OverContentCard {
		t.Error("canvas cell reported as content card")
	}
	if m.pointer.X != 84 || m.pointer.Y != 136 {
		t.Errorf("pointer = (%v, %v), want (84, 136)", m.pointer.X, m.pointer.Y)
	}
}

func TestBlurAndFocus(t *testing.T) {
	m, _ := newModel(t, nil)
	m = update(m, tea.FocusMsg{})
	if m.pointer.OnScreen {
		t.Error("focus before any mouse event should not put the pointer on screen")
	}

	m = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion})
	m = update(m, tea.BlurMsg{})
	if m.pointer.OnScreen {
		t.Error("pointer still on screen after blur")
	}
	m = update(m, tea.FocusMsg{})
	if !m.pointer.OnScreen {
		t.Error("pointer not restored after focus")
	}
}

func TestHoverBodyShowsTooltip(t *testing.T) {
	m, _ := newModel(t, nil)
	start := time.Now()
	m = frames(m, start, 1)

	b := m.cosmos.frame.Bodies[0]
	col, row := ScreenToCell(b.X, b.Y)
	m = update(m, tea.MouseMsg{X: col, Y: row + headerLines, Action: tea.MouseActionMotion})
	m = update(m, FrameMsg(start.Add(33*time.Millisecond)))

	if m.cosmos.frame.BodyHoverID == "" {
		t.Fatal("no body hovered")
	}
	bounds := m.cosmos.BodyTooltipBounds()
	if bounds == nil {
		t.Fatal("no body tooltip laid out")
	}
	w, h := m.cosmos.ScreenSize()
	if bounds.Left < 0 || bounds.Top < 0 || bounds.Right > w || bounds.Bottom > h {
		t.Errorf("tooltip bounds %+v outside %vx%v", *bounds, w, h)
	}
}

func TestReloadMsg(t *testing.T) {
	ch := make(chan hierarchy.Reload, 1)
	m, mgr := newModel(t, ch)

	next, cmd := m.Update(ReloadMsg{Err: errors.New("bad toml")})
	m = next.(Model)
	if !strings.Contains(m.statusMsg, "bad toml") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if cmd == nil {
		t.Error("reload should re-arm the wait command")
	}
	if snap := mgr.Snapshot(); snap.LastError == nil {
		t.Error("reload error not recorded")
	}

	u, err := hierarchy.Default()
	if err != nil {
		t.Fatal(err)
	}
	u.Source = "universe.toml"
	m.view.Select("ai-ml-sun")
	m = update(m, ReloadMsg{Universe: u})
	if m.view.Universe() != u {
		t.Error("universe not swapped")
	}
	if lvl := m.view.Navigator().State().Level; lvl != cosmos.LevelUniverse {
		t.Errorf("level after reload = %s, want universe", lvl)
	}
}

func TestWaitForReload(t *testing.T) {
	if WaitForReload(nil) != nil {
		t.Error("nil channel should give a nil command")
	}

	ch := make(chan hierarchy.Reload, 1)
	ch <- hierarchy.Reload{Err: errors.New("x")}
	msg := WaitForReload(ch)()
	if r, ok := msg.(ReloadMsg); !ok || r.Err == nil {
		t.Errorf("msg = %#v, want ReloadMsg with error", msg)
	}

	close(ch)
	if msg := WaitForReload(ch)(); msg != nil {
		t.Errorf("closed channel msg = %#v, want nil", msg)
	}
}

func TestQuitDisposesView(t *testing.T) {
	m, _ := newModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
	if m.view.Initialized() {
		t.Error("view still initialized after quit")
	}
}

func TestLabelsToggle(t *testing.T) {
	m, _ := newModel(t, nil)
	m = frames(m, time.Now(), 1)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = m.step(time.Now())
	if strings.Contains(m.cosmos.Plain(), "Portfolio Galaxy") {
		t.Error("labels still drawn after toggling off")
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 1); got != "#3B82F6" {
		t.Errorf("gradientColor start = %s, want #3B82F6", got)
	}
	if got := gradientColor(5, 0, 10, 1); !strings.HasPrefix(got, "#") || len(got) != 7 {
		t.Errorf("gradientColor mid = %s", got)
	}
}
