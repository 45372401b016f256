package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Rate top ideas interactively",
	Long: `Scores the idea pool, shows the top ideas one at a time, and reads a
0-5 rating for each from stdin. Ratings feed the feedback adjustment on
future runs: 2.5 is neutral, 5 adds +5 points, 0 subtracts 5.

Press enter without a value to skip an idea.`,
	RunE: runRate,
}

func init() {
	f := rateCmd.Flags()
	f.String("dataset", "", "path to a JSON idea dataset (default: built-in sample ideas)")
	f.String("feedback", "", "path to the user feedback file (overrides config)")
	f.Int("top", 5, "number of top-ranked ideas to rate")

	rootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, _ []string) error {
	datasetPath, _ := cmd.Flags().GetString("dataset")
	feedbackPath, _ := cmd.Flags().GetString("feedback")
	top, _ := cmd.Flags().GetInt("top")

	pool, err := loadPool(datasetPath)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cmd.Context(), cfg, feedbackPath)
	if err != nil {
		return err
	}
	defer p.close()

	results := p.engine.Run(cmd.Context(), cfg.Theme, pool)
	if top > 0 && top < len(results) {
		results = results[:top]
	}
	if len(results) == 0 {
		return eris.New("rate: no ideas to rate")
	}

	reader := bufio.NewReader(os.Stdin)
	rated := 0
	for i, r := range results {
		fmt.Printf("\n%d. %s (%.1f/100, %s)\n", i+1, r.Title, r.FinalTotal, r.Recommendation)
		fmt.Printf("   ICP:  %s\n   Pain: %s\n", r.ICP, r.Pain)
		fmt.Print("   Rating 0-5 (enter to skip): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rating, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Println("   not a number, skipping")
			continue
		}
		if err := p.feedback.Record(r.Title, rating); err != nil {
			fmt.Printf("   %v\n", err)
			continue
		}
		rated++
	}

	if rated == 0 {
		fmt.Println("\nNo ratings recorded.")
		return nil
	}

	if err := p.feedback.Persist(""); err != nil {
		return err
	}
	zap.L().Info("saved feedback", zap.Int("ratings", rated))
	fmt.Printf("\nSaved %d rating(s).\n", rated)
	return nil
}
