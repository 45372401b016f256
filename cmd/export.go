package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scored ideas to a file",
	Long: `Scores the idea pool and writes the full ranked results to a file.
Supports csv, markdown, and xlsx formats.

Examples:
  export --output scored.csv
  export --dataset ideas.json --format xlsx --output scored.xlsx`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("dataset", "", "path to a JSON idea dataset (default: built-in sample ideas)")
	f.String("format", "csv", "export format: csv, markdown, or xlsx")
	f.String("output", "", "output file path (required)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	datasetPath, _ := cmd.Flags().GetString("dataset")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		return eris.New("export: --output is required")
	}
	if format == "table" {
		return eris.New("export: use the run command for table output")
	}

	pool, err := loadPool(datasetPath)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cmd.Context(), cfg, "")
	if err != nil {
		return err
	}
	defer p.close()

	results := p.engine.Run(cmd.Context(), cfg.Theme, pool)
	if err := outputResults(results, format, outputPath); err != nil {
		return err
	}

	zap.L().Info("exported scored ideas",
		zap.String("path", outputPath), zap.Int("ideas", len(results)))
	return nil
}
