// Package research discovers candidate ideas for a theme from curated
// datasets, local files, and web search, and normalizes them into a
// consistent shape for scoring.
package research

import (
	"strings"
	"unicode"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// CleanText collapses runs of whitespace into single spaces and trims
// the ends. Control characters are treated as whitespace.
func CleanText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	return strings.Join(fields, " ")
}

// Normalize cleans an idea's text fields and fills the fields a source
// may legitimately omit. Ideas without a title are dropped by sources,
// so Normalize assumes one is present.
func Normalize(idea model.Idea) model.Idea {
	idea.Title = CleanText(idea.Title)
	idea.ICP = CleanText(idea.ICP)
	idea.Pain = CleanText(idea.Pain)
	idea.Solution = CleanText(idea.Solution)
	idea.RevenueModel = CleanText(idea.RevenueModel)
	idea.Source = CleanText(idea.Source)
	idea.SourceDate = CleanText(idea.SourceDate)

	for i, risk := range idea.KeyRisks {
		idea.KeyRisks[i] = CleanText(risk)
	}

	if idea.ICP == "" {
		idea.ICP = "unspecified"
	}
	if idea.Pain == "" {
		idea.Pain = "unspecified"
	}
	if idea.RevenueModel == "" {
		idea.RevenueModel = "pricing not stated"
	}
	if idea.Credibility == "" {
		idea.Credibility = model.CredibilityMedium
	}
	return idea
}
