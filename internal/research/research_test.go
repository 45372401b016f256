package research

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/store"
	"github.com/sells-group/opportunity-cli/pkg/ideasearch"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "one two three", CleanText("  one\t two \n three  "))
	assert.Equal(t, "", CleanText("   \n\t "))
}

func TestNormalizeFillsDefaults(t *testing.T) {
	idea := Normalize(model.Idea{Title: "  Invoice  tool "})

	assert.Equal(t, "Invoice tool", idea.Title)
	assert.Equal(t, "unspecified", idea.ICP)
	assert.Equal(t, "unspecified", idea.Pain)
	assert.Equal(t, "pricing not stated", idea.RevenueModel)
	assert.Equal(t, model.CredibilityMedium, idea.Credibility)
}

func TestNormalizeKeepsProvidedFields(t *testing.T) {
	idea := Normalize(model.Idea{
		Title:        "A",
		ICP:          "bookkeepers",
		Pain:         "manual work",
		RevenueModel: "$49/month",
		Credibility:  model.CredibilityHigh,
		KeyRisks:     []string{" risk  one "},
	})

	assert.Equal(t, "bookkeepers", idea.ICP)
	assert.Equal(t, model.CredibilityHigh, idea.Credibility)
	assert.Equal(t, []string{"risk one"}, idea.KeyRisks)
}

func TestCuratedSource(t *testing.T) {
	ideas := CuratedSource{}.Search(context.Background(), "anything")

	require.Len(t, ideas, 5)
	for _, idea := range ideas {
		assert.Equal(t, "curated:upsilon-2025", idea.Source)
		assert.Equal(t, "2025-01-01", idea.SourceDate)
		assert.Equal(t, model.CredibilityHigh, idea.Credibility)
		assert.NotEmpty(t, idea.Title)
		assert.NotEmpty(t, idea.Pain)
	}
}

func TestParseBulletLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		wantTitle string
		wantPain  string
		wantPrice string
	}{
		{
			name:      "dash separated with price",
			line:      "- Timesheet tracker - Teams lose hours to manual timesheets. Automated tracking from calendar events. $29/month",
			wantOK:    true,
			wantTitle: "Timesheet tracker",
			wantPain:  "Teams lose hours to manual timesheets",
			wantPrice: "$29/month",
		},
		{
			name:      "colon separated",
			line:      "* Contract summarizer: Lawyers skim long contracts; AI highlights key clauses",
			wantOK:    true,
			wantTitle: "Contract summarizer",
			wantPain:  "Lawyers skim long contracts",
		},
		{
			name:   "too short",
			line:   "- tiny",
			wantOK: false,
		},
		{
			name:   "no separator",
			line:   "- just a sentence with no structure at all here",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idea, ok := ParseBulletLine(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantTitle, idea.Title)
			assert.Equal(t, tt.wantPain, idea.Pain)
			if tt.wantPrice != "" {
				assert.Equal(t, tt.wantPrice, idea.RevenueModel)
			}
		})
	}
}

func TestFileSourceBulletFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.txt")
	content := `Some heading that is ignored
- Timesheet tracker - Teams lose hours to manual timesheets. Automated tracking. $29/month
* Contract summarizer: Lawyers skim long contracts; AI highlights key clauses
not a bullet line
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ideas := FileSource{Paths: []string{path}}.Search(context.Background(), "ops")

	require.Len(t, ideas, 2)
	assert.Equal(t, "Timesheet tracker", ideas[0].Title)
	assert.Equal(t, "ideas.txt", ideas[0].Source)
	assert.Equal(t, model.CredibilityMedium, ideas[0].Credibility)
}

func TestFileSourceYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.yaml")
	content := `- title: Churn predictor
  icp: SaaS founders
  pain: Cancellations arrive without warning
  solution: Model flags at-risk accounts weekly
  revenue_model: $99/month
  credibility: high
  key_risks:
    - Needs usage data access
- title: ""
  pain: skipped because untitled
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ideas := FileSource{Paths: []string{path}}.Search(context.Background(), "ops")

	require.Len(t, ideas, 1)
	assert.Equal(t, "Churn predictor", ideas[0].Title)
	assert.Equal(t, model.CredibilityHigh, ideas[0].Credibility)
	assert.Equal(t, "ideas.yaml", ideas[0].Source)
}

func TestFileSourceSkipsMissingFiles(t *testing.T) {
	ideas := FileSource{Paths: []string{"/nonexistent/ideas.txt"}}.Search(context.Background(), "ops")
	assert.Empty(t, ideas)
}

type stubSearchClient struct {
	results []ideasearch.Result
	err     error
	calls   int
}

func (s *stubSearchClient) Search(_ context.Context, _ string) ([]ideasearch.Result, error) {
	s.calls++
	return s.results, s.err
}

func TestWebSourceMapsRelevantResults(t *testing.T) {
	client := &stubSearchClient{results: []ideasearch.Result{
		{
			Title:   "Bookkeeping automation tools",
			URL:     "https://example.com/post",
			Snippet: "Manual bookkeeping is a problem for small firms. New software fixes it.",
		},
		{
			Title:   "Cooking recipes",
			Snippet: "Great pasta dishes for the weekend.",
		},
	}}
	src := NewWebSource(client)
	src.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	ideas := src.Search(context.Background(), "bookkeeping")

	// One relevant result per query variant, irrelevant one dropped.
	require.NotEmpty(t, ideas)
	assert.Equal(t, 6, client.calls)
	idea := ideas[0]
	assert.Equal(t, "Bookkeeping automation tools", idea.Title)
	assert.Equal(t, "https://example.com/post", idea.Source)
	assert.Equal(t, "2026-03-01", idea.SourceDate)
	assert.Equal(t, model.CredibilityMedium, idea.Credibility)
	assert.Contains(t, idea.Pain, "Manual bookkeeping is a problem")
}

func TestWebSourceEmptyThemeOrErrors(t *testing.T) {
	client := &stubSearchClient{err: assert.AnError}
	src := NewWebSource(client)

	assert.Empty(t, src.Search(context.Background(), "   "))
	assert.Empty(t, src.Search(context.Background(), "fintech"))
}

func TestSemanticRelevance(t *testing.T) {
	assert.True(t, semanticRelevance("bookkeeping software is a manual problem", "bookkeeping"))
	assert.False(t, semanticRelevance("bookkeeping basics explained", "bookkeeping"))
	assert.False(t, semanticRelevance("software fixes manual problems", "bookkeeping"))
}

func TestExtractPainSentence(t *testing.T) {
	got := extractPainSentence("The market is big. Teams struggle with manual entry. Pricing varies.", "ops")
	assert.Equal(t, "Teams struggle with manual entry", got)

	got = extractPainSentence("Nothing notable here at all", "ops")
	assert.Equal(t, "Nothing notable here at all", got)
}

type staticSource []model.Idea

func (s staticSource) Search(context.Context, string) []model.Idea { return s }

func TestMultiFiltersAndDedupes(t *testing.T) {
	a := staticSource{
		{Title: "Shared Idea", Credibility: model.CredibilityLow},
		{Title: "Low only", Credibility: model.CredibilityLow},
	}
	b := staticSource{
		{Title: "shared idea", Credibility: model.CredibilityHigh},
		{Title: "Another", Credibility: model.CredibilityMedium},
	}

	m := Multi{Sources: []Source{a, b}, MinCredibility: model.CredibilityMedium}
	ideas := m.Search(context.Background(), "ops")

	require.Len(t, ideas, 2)
	assert.Equal(t, "shared idea", ideas[0].Title)
	assert.Equal(t, model.CredibilityHigh, ideas[0].Credibility)
	assert.Equal(t, "Another", ideas[1].Title)
}

func TestMultiDedupeKeepsFirstOnTie(t *testing.T) {
	a := staticSource{{Title: "Idea", Pain: "first", Credibility: model.CredibilityMedium}}
	b := staticSource{{Title: "idea", Pain: "second", Credibility: model.CredibilityMedium}}

	ideas := Multi{Sources: []Source{a, b}}.Search(context.Background(), "ops")

	require.Len(t, ideas, 1)
	assert.Equal(t, "first", ideas[0].Pain)
}

type countingSource struct {
	calls int
	ideas []model.Idea
}

func (c *countingSource) Search(context.Context, string) []model.Idea {
	c.calls++
	return c.ideas
}

func TestCachedSourceHitsCacheOnSecondCall(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, cache.Migrate(context.Background()))
	defer cache.Close()

	inner := &countingSource{ideas: []model.Idea{{Title: "A"}}}
	src := CachedSource{Inner: inner, Cache: cache, TTL: time.Hour}

	first := src.Search(context.Background(), "fintech")
	second := src.Search(context.Background(), "fintech")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSourceNilCachePassesThrough(t *testing.T) {
	inner := &countingSource{ideas: []model.Idea{{Title: "A"}}}
	src := CachedSource{Inner: inner}

	src.Search(context.Background(), "fintech")
	src.Search(context.Background(), "fintech")

	assert.Equal(t, 2, inner.calls)
}
