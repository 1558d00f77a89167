package hierarchy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/litescript/ls-cosmos/internal/cosmos"
)

const miniUniverse = `
orbit_galaxy = "g"

[[focus_area]]
id = "ai"
sun = "s"

[[galaxy]]
id = "g"
name = "Galaxy"
position = { x = 0.3, y = 0.4 }
size = 0.15

[[sun]]
id = "s"
name = "Sun"
position = { x = 0.25, y = 0.35 }
size = 0.06
parent = "g"

[[planet]]
id = "p"
name = "Planet"
position = { x = 0.26, y = 0.36 }
size = 0.02
parent = "s"

[[project]]
id = "alpha"
name = "Alpha"
focus_area = "ai"
mass = 80.0
`

func TestDefaultUniverse(t *testing.T) {
	u, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if u.Source != "embedded" {
		t.Errorf("Source = %q, want embedded", u.Source)
	}
	if got := len(u.Tree.ObjectsByLevel(cosmos.LevelGalaxy)); got != 3 {
		t.Errorf("galaxies = %d, want 3", got)
	}
	if got := len(u.OrbitSuns()); got != 4 {
		t.Errorf("OrbitSuns() = %d, want 4", got)
	}
	if sun, ok := u.SunForFocusArea("ai-ml"); !ok || sun != "ai-ml-sun" {
		t.Errorf("SunForFocusArea(ai-ml) = %q, %v", sun, ok)
	}
	if len(u.Projects) == 0 {
		t.Error("expected embedded projects")
	}

	founder, ok := u.Tree.ObjectByID("em-founder")
	if !ok || founder.ParentID != "team-sun-system" || founder.Level != cosmos.LevelSpecial {
		t.Errorf("em-founder = %+v, %v", founder, ok)
	}
}

func TestParse(t *testing.T) {
	u, err := Parse([]byte(miniUniverse))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if u.OrbitGalaxyID != "g" {
		t.Errorf("OrbitGalaxyID = %q, want g", u.OrbitGalaxyID)
	}
	p, ok := u.Tree.ObjectByID("p")
	if !ok || p.Level != cosmos.LevelPlanet || p.Position.X != 0.26 {
		t.Errorf("planet = %+v, %v", p, ok)
	}
	if len(u.Projects) != 1 || u.Projects[0].Mass != 80 {
		t.Errorf("Projects = %+v", u.Projects)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "focus area to missing sun",
			doc:     "[[focus_area]]\nid = \"x\"\nsun = \"nope\"\n",
			wantErr: ErrUnknownParent,
		},
		{
			name:    "orbit galaxy missing",
			doc:     "orbit_galaxy = \"nope\"\n",
			wantErr: ErrUnknownParent,
		},
		{
			name:    "duplicate project",
			doc:     "[[project]]\nid = \"a\"\n[[project]]\nid = \"a\"\n",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "negative mass",
			doc:     "[[project]]\nid = \"a\"\nmass = -1.0\n",
			wantErr: ErrInvalidObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Parse([]byte("not = [valid")); err == nil {
		t.Error("Parse() should fail on malformed TOML")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.toml")
	if err := os.WriteFile(path, []byte(miniUniverse), 0o644); err != nil {
		t.Fatal(err)
	}

	u, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault(%s): %v", path, err)
	}
	if u.Source != path || u.Tree.Len() != 3 {
		t.Errorf("Source = %q, Len = %d", u.Source, u.Tree.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.toml")
	if err := os.WriteFile(path, []byte(miniUniverse), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	updated := miniUniverse + "\n[[project]]\nid = \"beta\"\nname = \"Beta\"\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if len(r.Universe.Projects) != 2 {
			t.Errorf("reloaded projects = %d, want 2", len(r.Universe.Projects))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
