package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/state"
)

const (
	testW = 800.0
	testH = 600.0
	dt    = 16.0
)

var offScreen = hover.Pointer{X: -500, Y: -500, OnScreen: false}

func newView(t *testing.T) (*View, *state.Manager) {
	t.Helper()
	u, err := hierarchy.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	mgr := state.NewManager(state.DefaultConfig())
	v := New(config.Default(), u, nil, mgr)
	v.Init(testW, testH)
	return v, mgr
}

func eventTypes(events []state.Event) []state.EventType {
	out := make([]state.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func hasEvent(events []state.Event, typ state.EventType) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestFrameBeforeInitIsEmpty(t *testing.T) {
	u, err := hierarchy.Default()
	if err != nil {
		t.Fatal(err)
	}
	v := New(config.Default(), u, nil, nil)
	if f := v.Frame(Input{FrameTime: 0}); !f.Empty() {
		t.Errorf("Frame before Init = %+v, want empty", f)
	}
}

func TestInitOnlyOnce(t *testing.T) {
	v, mgr := newView(t)
	v.Init(100, 100)

	if w, h := v.Size(); w != testW || h != testH {
		t.Errorf("Size = %vx%v, want %vx%v", w, h, testW, testH)
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

func TestUniverseFrameDrawsGalaxiesSunsBodies(t *testing.T) {
	v, mgr := newView(t)
	f := v.Frame(Input{FrameTime: 0, Pointer: offScreen})

	for _, o := range f.Objects {
		if o.Level != cosmos.LevelGalaxy {
			t.Errorf("object %s at level %s on the universe frame", o.ID, o.Level)
		}
	}
	if len(f.Objects) != 3 {
		t.Errorf("objects = %d, want 3 galaxies", len(f.Objects))
	}
	if len(f.Suns) != 4 {
		t.Errorf("suns = %d, want 4", len(f.Suns))
	}
	if len(f.Bodies) != len(v.Universe().Projects) {
		t.Errorf("bodies = %d, want %d", len(f.Bodies), len(v.Universe().Projects))
	}
	if len(f.Satellites) == 0 {
		t.Error("full mode should draw satellites")
	}

	if !mgr.HasData() {
		t.Error("frame stats not recorded")
	}
}

func TestSunSystemSunsAreNotDrawnTwice(t *testing.T) {
	v, _ := newView(t)
	v.Select(v.Universe().OrbitGalaxyID)
	f := v.Frame(Input{FrameTime: 0, Pointer: offScreen})

	if f.Nav.Level != cosmos.LevelGalaxy {
		t.Fatalf("level = %s, want galaxy", f.Nav.Level)
	}
	suns := map[string]bool{}
	for _, s := range f.Suns {
		suns[s.ID] = true
	}
	for _, o := range f.Objects {
		if suns[o.ID] {
			t.Errorf("%s drawn as object and sun", o.ID)
		}
	}
}

func TestClickGalaxyDrillsDownAndArrives(t *testing.T) {
	v, mgr := newView(t)
	v.Frame(Input{FrameTime: 0, Pointer: offScreen})

	obj, ok := v.Click(0.3*testW, 0.4*testH)
	if !ok || obj.ID != "focus-areas-galaxy" {
		t.Fatalf("Click = %v, %v, want focus-areas-galaxy", obj.ID, ok)
	}

	f := v.Frame(Input{FrameTime: dt, Pointer: offScreen})
	if !f.Nav.Transitioning || f.Nav.GalaxyID != "focus-areas-galaxy" {
		t.Errorf("nav = %+v, want transitioning into the galaxy", f.Nav)
	}

	for i := 2; i < 200; i++ {
		f = v.Frame(Input{FrameTime: float64(i) * dt, Pointer: offScreen})
	}
	if f.Nav.Transitioning {
		t.Error("still transitioning after 200 frames")
	}
	if f.Camera.Zoom < 2.4 {
		t.Errorf("zoom = %v, want ~2.5", f.Camera.Zoom)
	}

	events := mgr.RecentEvents(50)
	if !hasEvent(events, state.EventDrillDown) || !hasEvent(events, state.EventArrived) {
		t.Errorf("events = %v, want DRILL_DOWN and ARRIVED", eventTypes(events))
	}

	if !v.Back() {
		t.Fatal("Back returned false below the universe")
	}
	if v.Navigator().State().Level != cosmos.LevelUniverse {
		t.Errorf("level after back = %s", v.Navigator().State().Level)
	}
}

func TestHoveringBodyPausesIt(t *testing.T) {
	v, _ := newView(t)
	f := v.Frame(Input{FrameTime: 0, Pointer: offScreen})
	target := f.Bodies[0]

	p := hover.Pointer{X: target.X, Y: target.Y, OnScreen: true}
	f = v.Frame(Input{FrameTime: dt, Pointer: p})
	if f.BodyHoverID == "" {
		t.Fatal("no body hovered with the pointer on a body")
	}

	var hovered BodySprite
	for _, b := range f.Bodies {
		if b.ID == f.BodyHoverID {
			hovered = b
		}
	}
	if !hovered.Paused || !hovered.Hovered {
		t.Errorf("hovered body = %+v, want paused and hovered", hovered)
	}
	if f.BodyTooltip == nil || f.BodyTooltip.ID != f.BodyHoverID {
		t.Errorf("body tooltip = %+v, want %s", f.BodyTooltip, f.BodyHoverID)
	}

	// Paused bodies stay put.
	next := v.Frame(Input{FrameTime: 2 * dt, Pointer: p})
	for _, b := range next.Bodies {
		if b.ID == hovered.ID && (b.X != hovered.X || b.Y != hovered.Y) {
			t.Errorf("paused body moved from (%v,%v) to (%v,%v)", hovered.X, hovered.Y, b.X, b.Y)
		}
	}
}

func TestHoveringSunReportsIt(t *testing.T) {
	v, _ := newView(t)
	f := v.Frame(Input{FrameTime: 0, Pointer: offScreen})
	sun := f.Suns[0]

	f = v.Frame(Input{FrameTime: dt, Pointer: hover.Pointer{X: sun.X, Y: sun.Y, OnScreen: true}})
	if f.SunHoverID != sun.ID {
		t.Errorf("SunHoverID = %q, want %q", f.SunHoverID, sun.ID)
	}
}

func TestPointerLeavingClearsTooltips(t *testing.T) {
	v, _ := newView(t)
	f := v.Frame(Input{FrameTime: 0, Pointer: offScreen})
	target := f.Bodies[0]

	v.Frame(Input{FrameTime: dt, Pointer: hover.Pointer{X: target.X, Y: target.Y, OnScreen: true}})
	f = v.Frame(Input{FrameTime: 2 * dt, Pointer: offScreen})

	if f.BodyTooltip != nil || f.SunTooltip != nil {
		t.Error("tooltips should clear at once when the pointer leaves")
	}
	for _, b := range f.Bodies {
		if b.Paused {
			t.Errorf("body %s still paused", b.ID)
		}
	}
}

func TestSwapResetsView(t *testing.T) {
	v, mgr := newView(t)
	v.Select(v.Universe().OrbitGalaxyID)

	u, err := hierarchy.Parse([]byte(`
orbit_galaxy = "g"

[[galaxy]]
id = "g"
name = "G"
position = { x = 0.5, y = 0.5 }
size = 0.1

[[sun]]
id = "s"
name = "S"
parent = "g"
position = { x = 0.5, y = 0.5 }
size = 0.05

[[project]]
id = "p"
name = "P"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u.Source = "test"
	v.Swap(u)

	f := v.Frame(Input{FrameTime: 0, Pointer: offScreen})
	if f.Nav.Level != cosmos.LevelUniverse {
		t.Errorf("level after swap = %s, want universe", f.Nav.Level)
	}
	if len(f.Bodies) != 1 || f.Bodies[0].ID != "p" {
		t.Errorf("bodies after swap = %+v, want only p", f.Bodies)
	}
	if snap := mgr.Snapshot(); snap.Source != "test" {
		t.Errorf("Source = %q, want test", snap.Source)
	}
}

func TestDispose(t *testing.T) {
	v, mgr := newView(t)
	v.Frame(Input{FrameTime: 0, Pointer: offScreen})
	v.Dispose()
	v.Dispose()

	if f := v.Frame(Input{FrameTime: dt}); !f.Empty() {
		t.Error("frame after Dispose should be empty")
	}
	if _, ok := v.Click(240, 240); ok {
		t.Error("Click after Dispose should miss")
	}

	n := 0
	for _, e := range mgr.RecentEvents(50) {
		if e.Type == state.EventViewDispose {
			n++
		}
	}
	if n != 1 {
		t.Errorf("VIEW_DISPOSE events = %d, want 1", n)
	}
}

func TestResizeRebuildsBodies(t *testing.T) {
	v, _ := newView(t)
	before := v.Engine().Bodies()[0].OrbitRadius
	v.Resize(testW/2, testH/2)
	after := v.Engine().Bodies()[0].OrbitRadius
	if after >= before {
		t.Errorf("orbit radius %v -> %v, want smaller after shrinking", before, after)
	}
}

func TestSimulateAndWriters(t *testing.T) {
	v, mgr := newView(t)
	sink := &TextSink{}
	path := LinearPath(0, 0, 0.3*testW, 0.4*testH, 10)

	last := Simulate(v, sink, 30, dt, path)
	if sink.Frames != 30 {
		t.Errorf("Frames = %d, want 30", sink.Frames)
	}
	if last.FrameTime != 29*dt {
		t.Errorf("last FrameTime = %v, want %v", last.FrameTime, 29*dt)
	}
	if p := path(100); p.X != 0.3*testW || p.Y != 0.4*testH {
		t.Errorf("path rests at (%v,%v)", p.X, p.Y)
	}

	var buf bytes.Buffer
	WriteSummaryTable(&buf, sink.Last, sink.Frames)
	if !strings.Contains(buf.String(), "Total:") {
		t.Errorf("summary missing totals:\n%s", buf.String())
	}

	buf.Reset()
	cfg := MiniMapConfig{Cols: 40, Rows: 10}
	WriteMiniMap(&buf, sink.Last, cfg)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != cfg.Rows+2 {
		t.Errorf("mini map lines = %d, want %d", len(lines), cfg.Rows+2)
	}

	buf.Reset()
	WriteEvents(&buf, mgr.RecentEvents(50), 50)
	if !strings.Contains(buf.String(), string(state.EventViewInit)) {
		t.Errorf("events missing VIEW_INIT:\n%s", buf.String())
	}

	buf.Reset()
	WriteEvents(&buf, nil, 5)
	if !strings.Contains(buf.String(), "No events") {
		t.Errorf("empty events output:\n%s", buf.String())
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a much longer name", 10, "a much ..."},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
