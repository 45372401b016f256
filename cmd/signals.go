package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/opportunity-cli/pkg/seo"
)

var signalsCmd = &cobra.Command{
	Use:   "signals <keyword>",
	Short: "Show keyword metrics for a term",
	Long: `Fetches search volume, keyword difficulty, and trend direction for a
keyword from the configured metrics API. Without an API key the command
prints the deterministic fallback metrics used during scoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignals,
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	provider := seo.New(cfg.SEO.Key, cfg.SEO.BaseURL)
	m := provider.Fetch(cmd.Context(), args[0])

	fmt.Printf("Keyword:            %s\n", args[0])
	fmt.Printf("Search volume:      %s\n", formatCount(m.SearchVolume))
	fmt.Printf("Keyword difficulty: %.1f\n", m.KeywordDifficulty)
	fmt.Printf("Trend direction:    %s\n", m.TrendDirection)
	fmt.Printf("Source:             %s\n", m.Source)
	return nil
}
