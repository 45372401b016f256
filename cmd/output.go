package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/opportunity-cli/internal/model"
)

func outputResults(results []model.ScoredIdea, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "output: create file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "table":
		return writeTable(w, results)
	case "csv":
		return writeCSV(w, results)
	case "markdown":
		return writeMarkdown(w, results)
	case "xlsx":
		if outputPath == "" {
			return eris.New("output: xlsx format requires --output")
		}
		return writeXLSX(outputPath, results)
	default:
		return eris.Errorf("output: unsupported format %q", format)
	}
}

func writeTable(w *os.File, results []model.ScoredIdea) error {
	header := fmt.Sprintf("%-4s %-45s %7s %7s %7s %8s %-16s\n",
		"Rank", "Title", "Score", "Critic", "Fdbk", "Volume", "Recommendation")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "output: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 100)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}

	for i, r := range results {
		title := r.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		line := fmt.Sprintf("%-4d %-45s %7.1f %+7.1f %+7.1f %8s %-16s\n",
			i+1, title, r.FinalTotal, r.CriticAdjustment, r.FeedbackAdjustment,
			formatCount(r.Signals.SearchVolume), r.Recommendation)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "output: write table row")
		}
	}
	return nil
}

var csvHeader = []string{
	"rank", "title", "icp", "final_total", "demand", "acquisition",
	"mvp_complexity", "competition", "revenue_velocity",
	"critic_adjustment", "feedback_adjustment",
	"search_volume", "keyword_difficulty", "trend_direction",
	"recommendation", "critic_rationale",
}

func resultRow(rank int, r model.ScoredIdea) []string {
	return []string{
		fmt.Sprintf("%d", rank),
		r.Title,
		r.ICP,
		fmt.Sprintf("%.1f", r.FinalTotal),
		fmt.Sprintf("%d", r.Scores.Demand.Value),
		fmt.Sprintf("%d", r.Scores.Acquisition.Value),
		fmt.Sprintf("%d", r.Scores.MVPComplexity.Value),
		fmt.Sprintf("%d", r.Scores.Competition.Value),
		fmt.Sprintf("%d", r.Scores.RevenueVelocity.Value),
		fmt.Sprintf("%.1f", r.CriticAdjustment),
		fmt.Sprintf("%.1f", r.FeedbackAdjustment),
		fmt.Sprintf("%d", r.Signals.SearchVolume),
		fmt.Sprintf("%.1f", r.Signals.KeywordDifficulty),
		r.Signals.TrendDirection,
		string(r.Recommendation),
		r.CriticRationale,
	}
}

func writeCSV(w *os.File, results []model.ScoredIdea) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for i, r := range results {
		if err := cw.Write(resultRow(i+1, r)); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func writeMarkdown(w *os.File, results []model.ScoredIdea) error {
	if _, err := fmt.Fprintln(w, "| Rank | Title | Score | Critic | Feedback | Recommendation |"); err != nil {
		return eris.Wrap(err, "output: write markdown header")
	}
	if _, err := fmt.Fprintln(w, "| --- | --- | --- | --- | --- | --- |"); err != nil {
		return eris.Wrap(err, "output: write markdown separator")
	}
	for i, r := range results {
		if _, err := fmt.Fprintf(w, "| %d | %s | %.1f | %+.1f | %+.1f | %s |\n",
			i+1, escapeMarkdown(r.Title), r.FinalTotal,
			r.CriticAdjustment, r.FeedbackAdjustment, r.Recommendation); err != nil {
			return eris.Wrap(err, "output: write markdown row")
		}
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "\n### %s\n\n- Demand: %d/%d (%s)\n- Acquisition: %d/%d (%s)\n- MVP complexity: %d/%d (%s)\n- Competition: %d/%d (%s)\n- Revenue velocity: %d/%d (%s)\n- Critic: %s\n",
			escapeMarkdown(r.Title),
			r.Scores.Demand.Value, r.Scores.Demand.Max, r.Scores.Demand.Rationale,
			r.Scores.Acquisition.Value, r.Scores.Acquisition.Max, r.Scores.Acquisition.Rationale,
			r.Scores.MVPComplexity.Value, r.Scores.MVPComplexity.Max, r.Scores.MVPComplexity.Rationale,
			r.Scores.Competition.Value, r.Scores.Competition.Max, r.Scores.Competition.Rationale,
			r.Scores.RevenueVelocity.Value, r.Scores.RevenueVelocity.Max, r.Scores.RevenueVelocity.Rationale,
			r.CriticRationale); err != nil {
			return eris.Wrap(err, "output: write markdown detail")
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func writeXLSX(path string, results []model.ScoredIdea) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Scored Ideas")
	if err != nil {
		return eris.Wrap(err, "output: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range csvHeader {
		header.AddCell().SetString(col)
	}
	for i, r := range results {
		row := sheet.AddRow()
		for _, cell := range resultRow(i+1, r) {
			row.AddCell().SetString(cell)
		}
	}

	return eris.Wrapf(f.Save(path), "output: save xlsx %s", path)
}

// formatCount adds thousands separators for table display.
func formatCount(n int) string {
	if n == 0 {
		return "0"
	}
	s := fmt.Sprintf("%d", n)
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
