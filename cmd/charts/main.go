package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/midbel/charts/v2/config"
	"github.com/midbel/charts/v2/load"
	"github.com/midbel/charts/v2/logx"
)

var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "charts",
	Short:         "Compute the geometry of interactive charts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var (
			file, _  = cmd.Flags().GetString("config")
			level, _ = cmd.Flags().GetString("log-level")
			err      error
		)
		if file != "" {
			cfg, err = config.LoadFromFile(file)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level != "" {
			cfg.Logging.Level = level
		}
		logx.Setup(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/charts.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(stackCmd)
	rootCmd.AddCommand(zoomCmd)
	rootCmd.AddCommand(hoverCmd)
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "charts %s (%s)\n", version, commit)
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runWatch runs once then again each time one of files changes when watch is
// set. Errors of later runs are logged and do not stop the watch.
func runWatch(ctx context.Context, watch bool, files []string, run func() error) error {
	if err := run(); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	log.Info().Strs("files", files).Msg("watching files")
	err := load.Watch(ctx, files, func(file string) {
		if err := run(); err != nil {
			log.Error().Err(err).Str("file", file).Msg("run failed")
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
