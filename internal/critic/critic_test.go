package critic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/model"
)

func testConfig() config.CriticConfig {
	return config.CriticConfig{
		TrustedDomains:  []string{"trusted.com"},
		BlockedDomains:  []string{"spam.com"},
		NoveltyKeywords: []string{"wrapper"},
		TrustedBonus:    3,
		BlockedPenalty:  -10,
		NoveltyPenalty:  -5,
		StalePenalty:    -2,
		RecentBonus:     1,
	}
}

func TestDomainAuthority(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2026))

	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"trusted domain", "https://trusted.com/article", 3},
		{"trusted without scheme", "trusted.com", 3},
		{"trusted with www", "https://www.trusted.com/list", 3},
		{"blocked domain", "http://spam.com/list", -10},
		{"neutral domain", "https://unknown.com", 0},
		{"no source", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, _ := c.Evaluate(model.Idea{Source: tt.source, Credibility: model.CredibilityMedium})
			assert.Equal(t, tt.want, adj)
		})
	}
}

func TestLegacyCredibilityLabels(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2026))

	high, _ := c.Evaluate(model.Idea{Credibility: model.CredibilityHigh})
	low, _ := c.Evaluate(model.Idea{Credibility: model.CredibilityLow})
	medium, _ := c.Evaluate(model.Idea{Credibility: model.CredibilityMedium})

	assert.Equal(t, 2.0, high)
	assert.Equal(t, -2.0, low)
	assert.Equal(t, 0.0, medium)
}

func TestNoveltyPenalty(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2026))

	inTitle, _ := c.Evaluate(model.Idea{Title: "ChatGPT Wrapper App", Solution: "foo", Credibility: model.CredibilityMedium})
	inSolution, _ := c.Evaluate(model.Idea{Title: "App", Solution: "Just a wrapper around an API", Credibility: model.CredibilityMedium})
	clean, _ := c.Evaluate(model.Idea{Title: "App", Solution: "Original tooling", Credibility: model.CredibilityMedium})

	assert.Equal(t, -5.0, inTitle)
	assert.Equal(t, -5.0, inSolution)
	assert.Equal(t, 0.0, clean)
}

func TestRecency(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2025))

	tests := []struct {
		name string
		date string
		want float64
	}{
		{"same year is recent", "2025-01-01", 1},
		{"one year old is recent", "2024-06-01", 1},
		{"neutral gap", "2023-01-01", 0},
		{"stale beyond three years", "2021-01-01", -2},
		{"invalid date ignored", "20XX-13-40", 0},
		{"missing date ignored", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, _ := c.Evaluate(model.Idea{SourceDate: tt.date, Credibility: model.CredibilityMedium})
			assert.Equal(t, tt.want, adj)
		})
	}
}

func TestCombinedSignals(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2025))

	trustedRecent, rationale := c.Evaluate(model.Idea{
		Source:      "https://trusted.com",
		SourceDate:  "2025-01-01",
		Credibility: model.CredibilityMedium,
	})
	assert.Equal(t, 4.0, trustedRecent)
	assert.Contains(t, rationale, "trusted domain")
	assert.Contains(t, rationale, "recent")

	blockedNovelty, rationale := c.Evaluate(model.Idea{
		Source:      "https://spam.com",
		Title:       "Wrapper",
		Credibility: model.CredibilityMedium,
	})
	assert.Equal(t, -15.0, blockedNovelty)
	assert.Contains(t, rationale, "blocked domain")
	assert.Contains(t, rationale, "novelty")
}

func TestStaleLowCredibilityTriggersEviction(t *testing.T) {
	// Default config: low label -2 plus stale -5 lands at -7, below the
	// refinement loop's -5 retention veto.
	c := New(config.CriticConfig{}, WithCurrentYear(2026))

	adj, rationale := c.Evaluate(model.Idea{
		Credibility: model.CredibilityLow,
		SourceDate:  "2021-03-01",
	})
	assert.Equal(t, -7.0, adj)
	assert.Contains(t, rationale, "low source credibility")
	assert.Contains(t, rationale, "stale")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2025))
	idea := model.Idea{
		Source:      "https://trusted.com/path",
		SourceDate:  "2024-12-12",
		Title:       "Not novel",
		Solution:    "Original product",
		Credibility: model.CredibilityHigh,
	}

	adj1, rat1 := c.Evaluate(idea)
	adj2, rat2 := c.Evaluate(idea)
	assert.Equal(t, adj1, adj2)
	assert.Equal(t, rat1, rat2)
}

func TestNoSignalsRationale(t *testing.T) {
	c := New(testConfig(), WithCurrentYear(2025))
	adj, rationale := c.Evaluate(model.Idea{Credibility: model.CredibilityMedium})
	assert.Zero(t, adj)
	assert.Equal(t, "no credibility signals", rationale)
}

func TestPartialConfigMergesDefaults(t *testing.T) {
	// Only the blocked list is customized; the novelty penalty must still
	// carry the default magnitude.
	c := New(config.CriticConfig{BlockedDomains: []string{"junk.example"}}, WithCurrentYear(2026))

	adj, _ := c.Evaluate(model.Idea{
		Title:       "Yet another wrapper",
		Credibility: model.CredibilityMedium,
	})
	assert.Equal(t, -5.0, adj)
}
