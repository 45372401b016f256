package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/opportunity-cli/internal/model"
)

func sampleResults() []model.ScoredIdea {
	return []model.ScoredIdea{
		{
			Idea: model.Idea{
				Title: "Invoice chaser | automation",
				ICP:   "Freelancers",
				Pain:  "Chasing late invoices",
			},
			Scores: model.IdeaScores{
				Demand:          model.ScoreDetail{Value: 28, Max: 30, Rationale: "acute"},
				Acquisition:     model.ScoreDetail{Value: 16, Max: 20, Rationale: "niche"},
				MVPComplexity:   model.ScoreDetail{Value: 18, Max: 20, Rationale: "low"},
				Competition:     model.ScoreDetail{Value: 15, Max: 20, Rationale: "single price"},
				RevenueVelocity: model.ScoreDetail{Value: 9, Max: 10, Rationale: "low price"},
			},
			CriticAdjustment:   3,
			CriticRationale:    "trusted domain (indiehackers.com)",
			FeedbackAdjustment: -1,
			Signals: model.KeywordSignals{
				SearchVolume: 1200, KeywordDifficulty: 35.5, TrendDirection: "upward", Source: "test",
			},
			FinalTotal:     88,
			Recommendation: model.RecommendationGreenBuild,
		},
	}
}

func TestOutputResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, outputResults(sampleResults(), "csv", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "rank,title,icp,final_total")
	assert.Contains(t, content, "Invoice chaser | automation")
	assert.Contains(t, content, "green_build")
	assert.Contains(t, content, "88.0")
}

func TestOutputResultsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, outputResults(sampleResults(), "table", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Rank")
	assert.Contains(t, content, "1,200")
	assert.Contains(t, content, "green_build")
}

func TestOutputResultsMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, outputResults(sampleResults(), "markdown", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "| Rank | Title |")
	assert.Contains(t, content, `Invoice chaser \| automation`)
	assert.Contains(t, content, "- Demand: 28/30 (acute)")
}

func TestOutputResultsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, outputResults(sampleResults(), "xlsx", path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	assert.Equal(t, "Scored Ideas", sheet.Name)
	require.GreaterOrEqual(t, len(sheet.Rows), 2)
	assert.Equal(t, "rank", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Invoice chaser | automation", sheet.Rows[1].Cells[1].String())
}

func TestOutputResultsUnknownFormat(t *testing.T) {
	err := outputResults(sampleResults(), "yaml", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestXLSXRequiresOutputPath(t *testing.T) {
	err := outputResults(sampleResults(), "xlsx", "")
	require.Error(t, err)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", formatCount(0))
	assert.Equal(t, "950", formatCount(950))
	assert.Equal(t, "1,200", formatCount(1200))
	assert.Equal(t, "1,234,567", formatCount(1234567))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a \| b`, escapeMarkdown("a | b"))
	assert.False(t, strings.Contains(escapeMarkdown("plain"), "\\"))
}
