// Package cmd defines the command-line interface for spendchart.
package cmd

import (
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(pieCmd)
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(tapCmd)
	rootCmd.AddCommand(animateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the state subcommands to the parent state command
	stateCmd.AddCommand(stateClearCmd)
	stateCmd.AddCommand(stateStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("format", "", "Payload format: json or csv (inferred from the extension when empty)")
	rootCmd.PersistentFlags().Int("width", contract.DefaultWidth, "Surface width in pixels")
	rootCmd.PersistentFlags().Int("height", 0, "Surface height in pixels (0 = square pie, half-height line chart)")
	rootCmd.PersistentFlags().String("text-color", "", "Label color as #RRGGBB (default black)")
	rootCmd.PersistentFlags().Float64("item-text-size", contract.DefaultItemTextSize, "Label text size in pixels")
	rootCmd.PersistentFlags().String("item-font-family", "", "Path to a TrueType font for labels")
	rootCmd.PersistentFlags().Float64("stroke-width", contract.DefaultStrokeWidth, "Pie ring thickness in pixels")
	rootCmd.PersistentFlags().String("animation-duration", "", "Reveal duration as milliseconds or a Go duration (default 1s)")
	rootCmd.PersistentFlags().String("grid-color", "", "Line chart grid color as #RRGGBB (default gray)")
	rootCmd.PersistentFlags().Float64("line-stroke-width", contract.DefaultLineStrokeWidth, "Line chart polyline thickness in pixels")
	rootCmd.PersistentFlags().Float64("corner-radius", contract.DefaultCornerRadius, "Rounding radius of polyline joins")
	rootCmd.PersistentFlags().Float64("padding", contract.DefaultPadding, "Line chart padding in pixels")
	rootCmd.PersistentFlags().Int("grid-lines", contract.DefaultGridLines, "Number of horizontal grid intervals")
	rootCmd.PersistentFlags().String("currency-suffix", "", "Suffix appended to amounts (e.g. ' ₽')")
	rootCmd.PersistentFlags().StringSlice("palette", nil, "Comma-separated list of sector colors")
	rootCmd.PersistentFlags().String("seed", "", "Seed for a reproducible color order")
	rootCmd.PersistentFlags().String("timezone", "", "Time zone for day-of-month bucketing: utc, local or an IANA name")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or png")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("term-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("state-backend", string(schema.SQLiteBackend), "View state backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("state-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("run-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for run tracking (must differ from state-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored swatches in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of pieCmd to Viper
	pieCmd.Flags().Float64("progress", 1, "Reveal progress between 0 and 1")
	if err := viper.BindPFlags(pieCmd.Flags()); err != nil {
		contract.LogFatal("Error binding pie flags", err)
	}

	// Bind all flags of lineCmd to Viper
	lineCmd.Flags().String("amount-scale", string(schema.CategoryTotalScale), "Vertical maximum: category-total or record-max")
	lineCmd.Flags().Bool("sort-points", false, "Plot each series in time order instead of input order")
	if err := viper.BindPFlags(lineCmd.Flags()); err != nil {
		contract.LogFatal("Error binding line flags", err)
	}

	// Bind all flags of tapCmd to Viper
	tapCmd.Flags().Float64("x", 0, "Pointer x in surface pixels")
	tapCmd.Flags().Float64("y", 0, "Pointer y in surface pixels")
	if err := viper.BindPFlags(tapCmd.Flags()); err != nil {
		contract.LogFatal("Error binding tap flags", err)
	}

	// Bind all flags of animateCmd to Viper
	animateCmd.Flags().Int("frames", contract.DefaultFrames, "Number of frames to sample during the reveal")
	animateCmd.Flags().String("frames-dir", "", "Directory to render each frame into as PNG")
	if err := viper.BindPFlags(animateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding animate flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
