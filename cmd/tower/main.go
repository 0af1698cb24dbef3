// Command tower renders a rotating stack of wireframe cubes with colored half-cube prisms.
package main

import (
	"log"
	"os"

	"github.com/Carmen-Shannon/prism-tower/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "tower",
		Short:        "Rotating prism tower",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "config file (yaml, json or toml)")
	d := config.Defaults()
	flags.Int("width", d.Width, "window width in pixels")
	flags.Int("height", d.Height, "window height in pixels")
	flags.Float64("rate", d.Rate, "rotation speed in radians per second")
	flags.Float32("zoom", d.Zoom, "pixels per world unit")
	flags.Bool("profile", d.Profile, "log frame and memory stats every second")
	flags.Bool("vsync", d.VSync, "synchronize presentation with the display")
	flags.Int("msaa", d.MSAA, "MSAA sample count (1, 4, 8 or 16)")

	load := func(cmd *cobra.Command) (config.Config, error) {
		return config.Load(cfgPath, cmd.Flags())
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Open the window and animate the tower",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			return runTower(cfg)
		},
	}
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Write the generated meshes and layout as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			return writeDump(cmd.OutOrStdout(), cfg)
		},
	}
	root.AddCommand(run, dump)
	root.RunE = run.RunE

	root.PersistentPreRun = func(*cobra.Command, []string) {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	return root
}
