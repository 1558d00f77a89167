// Command ls-cosmos is a terminal UI for exploring a zoomable cosmic map of
// galaxies, suns, planets and the projects orbiting them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
	"github.com/litescript/ls-cosmos/internal/ui"
)

// v holds flags, environment and the optional config file.
var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "ls-cosmos",
	Short: "Zoomable cosmic navigation in the terminal",
	Long: `ls-cosmos draws a hierarchy of galaxies, suns and planets with
projects orbiting their focus-area suns. Click to drill down, esc to go
back. Without a terminal on stdout it prints a headless snapshot instead.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .ls-cosmos.toml)")
	pf.String("universe", "", "universe TOML file (default: embedded)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file")
	pf.Bool("watch", false, "reload the universe file when it changes")
	pf.Int("fps", 30, "frames per second")

	v = newViper()
}

// newViper returns a viper instance bound to the persistent flags.
func newViper() *viper.Viper {
	nv := viper.New()
	pf := rootCmd.PersistentFlags()
	_ = nv.BindPFlag("universe_file", pf.Lookup("universe"))
	_ = nv.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = nv.BindPFlag("watch", pf.Lookup("watch"))
	_ = nv.BindPFlag("fps", pf.Lookup("fps"))
	return nv
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".ls-cosmos")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	config.BindEnv(v)

	// No config file is fine; defaults apply.
	_ = v.ReadInConfig()
}

// app is everything a command needs after flags and config resolve.
type app struct {
	cfg      config.Config
	logger   *logging.Logger
	universe *hierarchy.Universe
	closeLog func()
}

// setup loads config, opens the log and loads the universe. Logs go to
// logOut unless --log-file is set.
func setup(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rt := &app{cfg: cfg, closeLog: func() {}}
	rt.logger = logging.New(logging.ParseLevel(cfg.LogLevel))
	rt.logger.SetOutput(logOut)
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		rt.logger.SetOutput(f)
		rt.closeLog = func() { f.Close() }
	}

	rt.universe, err = hierarchy.LoadOrDefault(cfg.UniverseFile)
	if err != nil {
		rt.closeLog()
		return nil, err
	}
	rt.logger.Debug("loaded universe from %s: %d objects, %d projects",
		rt.universe.Source, rt.universe.Tree.Len(), len(rt.universe.Projects))
	return rt, nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(), "stdout is not a terminal, printing a snapshot")
		return runSnapshot(cmd, nil)
	}

	// The alt screen owns stderr, so logs are dropped unless --log-file.
	rt, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer rt.closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reloads <-chan hierarchy.Reload
	if rt.cfg.Watch {
		if rt.cfg.UniverseFile == "" {
			return fmt.Errorf("--watch needs --universe")
		}
		w, err := hierarchy.NewWatcher(rt.cfg.UniverseFile)
		if err != nil {
			return fmt.Errorf("watching universe: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watching universe: %w", err)
		}
		defer w.Stop()
		reloads = w.Reloads
		rt.logger.Info("watching %s", w.Path)
	}

	stateMgr := state.NewManager(state.DefaultConfig())
	stateMgr.RecordReload(rt.universe.Source, nil)
	view := scene.New(rt.cfg, rt.universe, rt.logger, stateMgr)
	defer view.Dispose()

	model := ui.New(view, stateMgr, ui.Options{FPS: rt.cfg.FPS, Reloads: reloads, Logger: rt.logger})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
