package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/version"
)

// execute runs the root command with args and returns stdout. Flags are
// reset first since the command tree is global.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
	v = newViper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const smallUniverse = `
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
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"snapshot": false, "validate": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "universe", "log-level", "log-file", "watch", "fps"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, version.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestSnapshotText(t *testing.T) {
	out, err := execute(t, "snapshot", "--frames", "10")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, want := range []string{"Total:", "+----", "Recent events", "VIEW_INIT"} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot output missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshotSelectJSON(t *testing.T) {
	out, err := execute(t, "snapshot", "--frames", "200", "--select", "focus-areas-galaxy", "--json")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	var report snapshotReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, out)
	}
	if report.Frames != 200 {
		t.Errorf("Frames = %d, want 200", report.Frames)
	}
	if report.Frame.Nav.Level != cosmos.LevelGalaxy || report.Frame.Nav.GalaxyID != "focus-areas-galaxy" {
		t.Errorf("Nav = %+v, want the focus areas galaxy", report.Frame.Nav)
	}
	if report.Frame.Nav.Transitioning {
		t.Error("still transitioning after 200 frames")
	}
}

func TestSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown object", []string{"snapshot", "--select", "nope"}, "unknown object"},
		{"bad hover", []string{"snapshot", "--hover", "1"}, "--hover"},
		{"bad move", []string{"snapshot", "--move", "1,2,x,4"}, "--move"},
		{"zero frames", []string{"snapshot", "--frames", "0"}, "positive"},
		{"missing universe", []string{"snapshot", "--universe", "/nonexistent/universe.toml"}, "reading universe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateUniverseFile(t *testing.T) {
	path := writeFile(t, "universe.toml", smallUniverse)
	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	for _, want := range []string{"✓ config valid", "2 objects, 1 projects", "galaxy", "! project p"} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	bad := writeFile(t, "bad.toml", "[[galaxy]]\nid = \"g\"\nsize = -1\n")
	if _, err := execute(t, "validate", bad); err == nil {
		t.Error("validate accepted a bad universe")
	}

	t.Setenv("LS_COSMOS_FPS", "0")
	out, err := execute(t, "validate")
	if err == nil {
		t.Error("validate accepted fps=0 from the environment")
	}
	if !strings.Contains(out, "fps") {
		t.Errorf("validate output should name fps:\n%s", out)
	}
}

func TestConfigFileFlag(t *testing.T) {
	path := writeFile(t, "cosmos.toml", "[navigation]\neasing = \"bounce\"\n")
	_, err := execute(t, "--config", path, "validate")
	if err == nil {
		t.Error("validate accepted an unknown easing from the config file")
	}
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    []float64
		wantErr bool
	}{
		{"1,2", 2, []float64{1, 2}, false},
		{" 10.5 , -3 ", 2, []float64{10.5, -3}, false},
		{"0,0,100,50", 4, []float64{0, 0, 100, 50}, false},
		{"1", 2, nil, true},
		{"a,b", 2, nil, true},
	}
	for _, tt := range tests {
		got, err := parsePoints(tt.in, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoints(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parsePoints(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
