package cmd

import (
	"github.com/huangsam/spendchart/core"
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/payload"
	"github.com/spf13/cobra"
)

// runChart loads the configured payload and hands it to an executor.
func runChart(name string, exec core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		loader := payload.NewFileLoader(cfg.PayloadPath, cfg.PayloadFormat)
		if err := exec(rootCtx, cfg, loader, stateManager); err != nil {
			contract.LogFatal("Cannot build "+name, err)
		}
	}
}

// pieCmd lays out the spending pie chart.
var pieCmd = &cobra.Command{
	Use:   "pie <payload>",
	Short: "Show spending per category as a pie chart.",
	Long: `Aggregate transactions by category and lay them out as a ring of sectors.

Each category becomes one sector whose sweep is proportional to its share of
all spending. Sectors start at 3 o'clock and run clockwise in the order the
categories first appear in the payload.

Use "-" as the payload to read JSON from standard input.

Examples:
  # Print the sector table
  spendchart pie payload.json

  # Render a half-revealed pie to PNG
  spendchart pie payload.json --progress 0.5 --output png --output-file pie.png

  # Export sectors for analysis
  spendchart pie payload.csv --output parquet --output-file sectors.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runChart("pie chart", core.ExecutePie),
}

// lineCmd lays out the per-day line chart.
var lineCmd = &cobra.Command{
	Use:   "line <payload>",
	Short: "Show spending per category over the days of the month.",
	Long: `Plot one polyline per category with the day of month on the horizontal axis
and the amount on the vertical axis.

The vertical maximum is the largest category total by default, or the largest
single record with --amount-scale record-max.

Examples:
  # Print a per-series summary
  spendchart line payload.json

  # Render in Moscow time with sorted points
  spendchart line payload.json --timezone Europe/Moscow --sort-points --output png --output-file line.png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runChart("line chart", core.ExecuteLine),
}

// tapCmd hit-tests a pointer against the pie chart.
var tapCmd = &cobra.Command{
	Use:   "tap <payload>",
	Short: "Show the records of the pie sector under a pointer.",
	Long: `Simulate a tap on the pie chart and list the records of the selected category.

Coordinates are surface pixels with the origin at the top-left corner. Taps in
the hole of the ring or outside it select nothing.

Examples:
  # Tap just below the center of an 800px pie
  spendchart tap payload.json --x 400 --y 750`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runChart("hit-test", core.ExecuteTap),
}

// animateCmd plays the pie reveal animation.
var animateCmd = &cobra.Command{
	Use:   "animate <payload>",
	Short: "Play the pie reveal animation and report its frames.",
	Long: `Reveal the pie from nothing to a full rotation over --animation-duration.

With --frames-dir every observed frame is rendered as a PNG file, ready to be
stitched into a video or GIF.

Examples:
  # Watch the frame timings
  spendchart animate payload.json --animation-duration 500ms

  # Render 60 frames
  spendchart animate payload.json --frames 60 --frames-dir frames/`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runChart("animation", core.ExecuteAnimate),
}
