package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beamview/beamview/internal/backend"
	"github.com/beamview/beamview/internal/config"
	"github.com/beamview/beamview/internal/gui"
	"github.com/beamview/beamview/internal/logging"
	"github.com/beamview/beamview/pkg/util"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beamview",
	Short: "beamview - presentation viewer overlays",
	Long:  "Embeddable presentation overlays: video playback over the current slide and a software laser pointer.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

var (
	showControls bool
	startAt      string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./beamview.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	presentCmd.Flags().BoolVar(&showControls, "controls", true, "show the transport toolbar on media overlays")
	presentCmd.Flags().StringVar(&startAt, "start", "", "seek media to this position (MM:SS or seconds)")

	rootCmd.AddCommand(presentCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configCmd)
}

var presentCmd = &cobra.Command{
	Use:   "present [media file...]",
	Short: "Open the viewer window with the given media as slide overlays",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		opts := gui.Options{Files: args}
		if cmd.Flags().Changed("controls") {
			opts.ShowControls = &showControls
		}
		if startAt != "" {
			d, err := util.ParseTimestamp(startAt)
			if err != nil {
				return err
			}
			opts.StartAt = d.Seconds()
		}

		return gui.Run(cfg, opts, logging.NewLogger())
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [media file]",
	Short: "Print the duration of a media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		dur, err := backend.ProbeDuration(ctx, cfg.Media.FFprobePath, args[0])
		if err != nil {
			return err
		}

		probeLog := logging.WithComponent("probe")
		probeLog.Info().
			Str("file", args[0]).Float64("seconds", dur).Msg("probed media")
		fmt.Println(util.FormatDuration(time.Duration(dur * float64(time.Second))))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		if cfg.Path() == "" {
			fmt.Println("(built-in defaults, no config file found)")
			return nil
		}
		fmt.Println(cfg.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
