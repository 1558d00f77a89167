package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run the scene headless and print the last frame",
	Long: `Run a number of frames without a terminal UI and print a summary
table, an ASCII mini map and the event log. The pointer can hover or move
across the scene, and an object can be selected before the run.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.Int("frames", 120, "frames to simulate")
	f.Float64("dt", 16, "milliseconds between frames")
	f.Float64("width", 800, "viewport width in pixels")
	f.Float64("height", 600, "viewport height in pixels")
	f.String("select", "", "object id to drill into before the run")
	f.String("click", "", "screen point x,y to click before the run")
	f.String("hover", "", "screen point x,y the pointer rests on")
	f.String("move", "", "screen segment x0,y0,x1,y1 the pointer moves along")
	f.Bool("map", true, "print the mini map")
	f.Int("events", 10, "number of events to print (0 to skip)")
	f.Bool("json", false, "print the last frame as JSON instead")
	rootCmd.AddCommand(snapshotCmd)
}

// snapshotReport is the JSON shape of the snapshot command.
type snapshotReport struct {
	Frame  scene.Frame   `json:"frame"`
	Frames int           `json:"frames"`
	Events []state.Event `json:"events"`
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.closeLog()

	f := cmd.Flags()
	frames := intFlag(cmd, "frames", 120)
	dt := floatFlag(cmd, "dt", 16)
	width := floatFlag(cmd, "width", 800)
	height := floatFlag(cmd, "height", 600)
	if frames <= 0 || dt <= 0 || width <= 0 || height <= 0 {
		return fmt.Errorf("frames, dt, width and height must be positive")
	}

	pointer, err := pointerPath(cmd, frames)
	if err != nil {
		return err
	}

	stateMgr := state.NewManager(state.DefaultConfig())
	stateMgr.RecordReload(rt.universe.Source, nil)
	view := scene.New(rt.cfg, rt.universe, rt.logger, stateMgr)
	view.Init(width, height)
	defer view.Dispose()

	if id, _ := f.GetString("select"); id != "" {
		if !view.Select(id) {
			return fmt.Errorf("unknown object %q", id)
		}
	}
	if s, _ := f.GetString("click"); s != "" {
		pts, err := parsePoints(s, 2)
		if err != nil {
			return fmt.Errorf("--click: %w", err)
		}
		view.Frame(scene.Input{FrameTime: 0, Pointer: hover.Pointer{X: pts[0], Y: pts[1], OnScreen: true}})
		if _, ok := view.Click(pts[0], pts[1]); !ok {
			rt.logger.Warn("click at %.0f,%.0f hit nothing", pts[0], pts[1])
		}
	}

	sink := &scene.TextSink{}
	last := scene.Simulate(view, sink, frames, dt, pointer)

	out := cmd.OutOrStdout()
	n := intFlag(cmd, "events", 10)
	if boolFlag(cmd, "json", false) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshotReport{Frame: last, Frames: sink.Frames, Events: stateMgr.RecentEvents(n)})
	}

	scene.WriteSummaryTable(out, last, sink.Frames)
	if boolFlag(cmd, "map", true) {
		fmt.Fprintln(out)
		scene.WriteMiniMap(out, last, scene.DefaultMiniMapConfig())
	}
	if n > 0 {
		fmt.Fprintln(out)
		scene.WriteEvents(out, stateMgr.RecentEvents(n), n)
	}
	return nil
}

// pointerPath builds the per-frame pointer from --hover or --move. With
// neither the pointer stays off screen.
func pointerPath(cmd *cobra.Command, frames int) (func(int) hover.Pointer, error) {
	if s, _ := cmd.Flags().GetString("move"); s != "" {
		pts, err := parsePoints(s, 4)
		if err != nil {
			return nil, fmt.Errorf("--move: %w", err)
		}
		return scene.LinearPath(pts[0], pts[1], pts[2], pts[3], frames), nil
	}
	if s, _ := cmd.Flags().GetString("hover"); s != "" {
		pts, err := parsePoints(s, 2)
		if err != nil {
			return nil, fmt.Errorf("--hover: %w", err)
		}
		p := hover.Pointer{X: pts[0], Y: pts[1], OnScreen: true}
		return func(int) hover.Pointer { return p }, nil
	}
	return func(int) hover.Pointer { return hover.Pointer{X: -1, Y: -1} }, nil
}

// parsePoints parses exactly n comma-separated numbers.
func parsePoints(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		out[i] = f
	}
	return out, nil
}

// intFlag, floatFlag and boolFlag read a flag that may be missing when the
// root command falls back to a snapshot.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if got, err := cmd.Flags().GetInt(name); err == nil {
		return got
	}
	return fallback
}

func floatFlag(cmd *cobra.Command, name string, fallback float64) float64 {
	if got, err := cmd.Flags().GetFloat64(name); err == nil {
		return got
	}
	return fallback
}

func boolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	if got, err := cmd.Flags().GetBool(name); err == nil {
		return got
	}
	return fallback
}
