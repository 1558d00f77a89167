package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/version"
)

var validateCmd = &cobra.Command{
	Use:   "validate [universe.toml]",
	Short: "Check the config and a universe file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ls-cosmos v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(out, "✗ config: %v\n", err)
		return fmt.Errorf("invalid config")
	}
	fmt.Fprintln(out, "✓ config valid")

	path := cfg.UniverseFile
	if len(args) == 1 {
		path = args[0]
	}
	u, err := hierarchy.LoadOrDefault(path)
	if err != nil {
		fmt.Fprintf(out, "✗ universe: %v\n", err)
		return fmt.Errorf("invalid universe")
	}

	fmt.Fprintf(out, "✓ universe %s: %d objects, %d projects\n", u.Source, u.Tree.Len(), len(u.Projects))
	for _, c := range u.Tree.Counts() {
		fmt.Fprintf(out, "    %-8s %d\n", c.Level, c.Count)
	}

	// Projects without a focus-area sun are spread across the orbit suns.
	var unmapped []string
	for _, p := range u.Projects {
		if _, ok := u.SunForFocusArea(p.FocusArea); !ok {
			unmapped = append(unmapped, p.ID)
		}
	}
	sort.Strings(unmapped)
	for _, id := range unmapped {
		fmt.Fprintf(out, "! project %s has no focus-area sun\n", id)
	}
	return nil
}
