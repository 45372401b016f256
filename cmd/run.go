package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run [theme]",
	Short: "Score and refine the idea pool for a theme",
	Long: `Loads the idea dataset (or the built-in sample set), scores every idea,
and runs the refinement loop: killed and critic-vetoed ideas are evicted
and replaced with research candidates targeting the weakest scoring
dimension, until a green_build idea appears or the iteration budget is
spent.

Examples:
  # Rank the built-in sample ideas
  run

  # Score a dataset for a theme, print a table
  run "bookkeeping automation" --dataset ideas.json

  # Top 10 as CSV
  run --dataset ideas.json --format csv --output scored.csv --limit 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.String("dataset", "", "path to a JSON idea dataset (default: built-in sample ideas)")
	f.String("feedback", "", "path to the user feedback file (overrides config)")
	f.String("format", "table", "output format: table, csv, or markdown")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("limit", 0, "maximum number of results (0=all)")
	f.Float64("low-max", 0, "upper bound of the low price band (overrides config)")
	f.Float64("mid-max", 0, "upper bound of the mid price band (overrides config)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	theme := cfg.Theme
	if len(args) > 0 {
		theme = args[0]
	}

	datasetPath, _ := cmd.Flags().GetString("dataset")
	feedbackPath, _ := cmd.Flags().GetString("feedback")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	limit, _ := cmd.Flags().GetInt("limit")

	if lowMax, _ := cmd.Flags().GetFloat64("low-max"); lowMax > 0 {
		cfg.Scoring.LowMaxPrice = lowMax
	}
	if midMax, _ := cmd.Flags().GetFloat64("mid-max"); midMax > 0 {
		cfg.Scoring.MidMaxPrice = midMax
	}

	pool, err := loadPool(datasetPath)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, cfg, feedbackPath)
	if err != nil {
		return err
	}
	defer p.close()

	log := zap.L().With(zap.String("command", "run"))
	log.Info("scoring idea pool",
		zap.String("theme", theme), zap.Int("ideas", len(pool)))

	results := p.engine.Run(ctx, theme, pool)
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	log.Info("run complete", zap.Int("results", len(results)))
	return outputResults(results, format, outputPath)
}
