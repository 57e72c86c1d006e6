package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/midbel/charts/v2"
	"github.com/midbel/charts/v2/api"
	"github.com/midbel/charts/v2/load"
)

var stackCmd = &cobra.Command{
	Use:   "stack FILE...",
	Short: "Stack the values of categories at each x",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			watch, _ = cmd.Flags().GetBool("watch")
			cats, _  = cmd.Flags().GetStringSlice("categories")
			hide, _  = cmd.Flags().GetStringSlice("hide")
			opts     = cfg.Loader()
		)
		return runWatch(cmd.Context(), watch, args, func() error {
			sets, err := load.All(cmd.Context(), args, opts.Concurrency, func(file string) ([]charts.Row[string], error) {
				return load.Rows(file, opts)
			})
			if err != nil {
				return err
			}
			view := api.Stacked(cfg.Options(), cfg.Chart.Inner, cfg.Chart.Outer, load.Merge(sets), cats, hide)
			log.Debug().Int("x", len(view.Stacks)).Int("categories", len(view.Categories)).Msg("stacked")
			return writeJSON(cmd.OutOrStdout(), view)
		})
	},
}

var zoomCmd = &cobra.Command{
	Use:   "zoom FILE",
	Short: "Zoom a candlestick chart on a window of its rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			watch, _ = cmd.Flags().GetBool("watch")
			start, _ = cmd.Flags().GetInt("start")
			end, _   = cmd.Flags().GetInt("end")
			brush, _ = cmd.Flags().GetFloat64Slice("brush")
			opts     = cfg.Loader()
		)
		if cmd.Flags().Changed("rescale-y") {
			cfg.Chart.RescaleY, _ = cmd.Flags().GetBool("rescale-y")
		}
		return runWatch(cmd.Context(), watch, args, func() error {
			rows, err := load.Candles(args[0], opts)
			if err != nil {
				return err
			}
			var (
				options = cfg.Options()
				kind    = charts.Candlestick(rows)
			)
			kind.RescaleY = options.RescaleY
			kind.Duration = options.Duration
			kind.Padding(cfg.Chart.Inner, cfg.Chart.Outer)
			chart := charts.New(options, charts.Kind[time.Time](kind))

			switch {
			case len(brush) == 2:
				err = kind.Brush(brush[0], brush[1])
			case len(brush) != 0:
				err = fmt.Errorf("brush expects two positions, got %d", len(brush))
			case cmd.Flags().Changed("start") || cmd.Flags().Changed("end"):
				if !cmd.Flags().Changed("end") {
					end = len(rows) - 1
				}
				err = kind.Zoom(charts.Window{Start: start, End: end})
			}
			if err != nil {
				return err
			}
			view, err := api.Zoom(chart, kind)
			if err != nil {
				return err
			}
			log.Debug().Str("state", view.State).Ints("window", view.Window[:]).Msg("zoomed")
			return writeJSON(cmd.OutOrStdout(), view)
		})
	},
}

var hoverCmd = &cobra.Command{
	Use:   "hover FILE",
	Short: "Resolve a pointer position to the closest point of a time serie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			x, _    = cmd.Flags().GetFloat64("x")
			y, _    = cmd.Flags().GetFloat64("y")
			hide, _ = cmd.Flags().GetStringSlice("hide")
			opts    = cfg.Loader()
		)
		rows, err := load.TimeRows(args[0], opts)
		if err != nil {
			return err
		}
		kind := charts.TimeLine(rows)
		kind.Hide(hide...)

		chart := charts.New(cfg.Options(), charts.Kind[time.Time](kind))
		chart.OnMove = func(h charts.Hover[time.Time]) {
			log.Debug().Int("index", h.Index).Str("z", h.Z).Msg("hover")
		}
		h, ok := chart.Move(x, y)
		if !ok {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"found": false})
		}
		return writeJSON(cmd.OutOrStdout(), api.Hover(h))
	},
}

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Compute the dash array and offsets drawing a line",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			pattern, _ = cmd.Flags().GetString("pattern")
			length, _  = cmd.Flags().GetFloat64("length")
			steps, _   = cmd.Flags().GetInt("steps")
		)
		if err := api.CheckDash(length, steps); err != nil {
			return err
		}
		dash, err := parsePattern(pattern)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("pattern") {
			dash = cfg.Chart.Dash
		}
		return writeJSON(cmd.OutOrStdout(), api.Dash(dash, length, steps))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart geometry over HTTP and websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.API.Port, _ = cmd.Flags().GetInt("port")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return api.NewServer(cfg).ListenAndServe(cmd.Context())
	},
}

func parsePattern(str string) ([]int, error) {
	var list []int
	for _, s := range strings.FieldsFunc(str, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid dash pattern %q: %w", str, err)
		}
		list = append(list, n)
	}
	return list, nil
}

func init() {
	stackCmd.Flags().Bool("watch", false, "run again when files change")
	stackCmd.Flags().StringSlice("categories", nil, "order of categories in stacks")
	stackCmd.Flags().StringSlice("hide", nil, "categories to hide")

	zoomCmd.Flags().Bool("watch", false, "run again when the file changes")
	zoomCmd.Flags().Int("start", 0, "first visible row")
	zoomCmd.Flags().Int("end", 0, "last visible row")
	zoomCmd.Flags().Float64Slice("brush", nil, "pixel selection x0,x1")
	zoomCmd.Flags().Bool("rescale-y", true, "compute y domain from visible rows")

	hoverCmd.Flags().Float64("x", 0, "pointer x")
	hoverCmd.Flags().Float64("y", 0, "pointer y")
	hoverCmd.Flags().StringSlice("hide", nil, "categories to hide")

	dashCmd.Flags().String("pattern", "", "dash pattern, e.g. 4,2")
	dashCmd.Flags().Float64("length", 100, "length of the line")
	dashCmd.Flags().Int("steps", 4, "number of animation steps")

	serveCmd.Flags().Int("port", 8080, "port of the api server")
}
