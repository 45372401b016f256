package research

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/pkg/ideasearch"
)

// WebSource turns live web search results into candidate ideas. Each
// themed query variant runs concurrently; failed queries are logged and
// skipped so a flaky search API degrades the pool instead of the run.
type WebSource struct {
	client ideasearch.Client
	now    func() time.Time
}

// NewWebSource builds a WebSource around a search client.
func NewWebSource(client ideasearch.Client) *WebSource {
	return &WebSource{client: client, now: time.Now}
}

func buildQueries(theme string) []string {
	base := strings.TrimSpace(theme)
	if base == "" {
		return nil
	}
	variants := []string{
		base + " pain points",
		base + " alternatives",
		base + " automation tools",
		base + " SaaS solutions",
		base + " software ideas",
		base + " workflow bottlenecks",
	}
	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Search fans the query variants out against the search API and maps
// relevant results into ideas.
func (s *WebSource) Search(ctx context.Context, theme string) []model.Idea {
	queries := buildQueries(theme)
	if len(queries) == 0 || s.client == nil {
		return nil
	}

	var mu sync.Mutex
	var ideas []model.Idea
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, query := range queries {
		query := query
		g.Go(func() error {
			results, err := s.client.Search(gctx, query)
			if err != nil {
				zap.L().Warn("web search query failed",
					zap.String("query", query), zap.Error(err))
				return nil
			}
			for _, res := range results {
				idea, ok := s.resultToIdea(res, theme)
				if !ok {
					continue
				}
				mu.Lock()
				ideas = append(ideas, idea)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck
	return ideas
}

var (
	wordRe     = regexp.MustCompile(`\W+`)
	sentenceRe = regexp.MustCompile(`(?:[.!?])\s+`)

	saasMarkers = []string{
		"saas", "software", "platform", "tool", "automation", "app", "solution", "service",
	}
	painMarkers = []string{
		"pain", "problem", "challenge", "struggle", "manual",
		"time-consuming", "inefficient", "expensive", "alternatives",
	}
	painSentenceCues = []string{"challenge", "struggle", "problem", "pain", "costly", "manual"}
)

// semanticRelevance keeps results that mention the theme alongside both
// a SaaS marker and a pain marker.
func semanticRelevance(text, theme string) bool {
	lowered := strings.ToLower(text)

	themeMatch := false
	for _, tok := range wordRe.Split(strings.ToLower(theme), -1) {
		if tok != "" && strings.Contains(lowered, tok) {
			themeMatch = true
			break
		}
	}
	if !themeMatch {
		return false
	}
	return containsAny(lowered, saasMarkers) && containsAny(lowered, painMarkers)
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// extractPainSentence picks the first sentence that names a struggle,
// falling back to the first sentence.
func extractPainSentence(text, theme string) string {
	sentences := sentenceRe.Split(text, -1)
	for _, sentence := range sentences {
		lowered := strings.ToLower(sentence)
		if containsAny(lowered, painSentenceCues) {
			return CleanText(sentence)
		}
	}
	if len(sentences) > 0 && CleanText(sentences[0]) != "" {
		return CleanText(sentences[0])
	}
	return fmt.Sprintf("%s users face unresolved challenges.", theme)
}

func (s *WebSource) resultToIdea(res ideasearch.Result, theme string) (model.Idea, bool) {
	title := CleanText(res.Title)
	snippet := CleanText(res.Snippet)
	if title == "" && snippet == "" {
		return model.Idea{}, false
	}
	blob := strings.TrimSpace(title + ". " + snippet)
	if !semanticRelevance(blob, theme) {
		return model.Idea{}, false
	}

	body := snippet
	if body == "" {
		body = title
	}
	pain := extractPainSentence(body, theme)
	if title == "" {
		title = cases.Title(language.English).String(theme) + " micro-SaaS opportunity"
	}
	origin := res.URL
	if origin == "" {
		origin = "search:web"
	}

	return Normalize(model.Idea{
		Title:        title,
		ICP:          "Teams focused on " + theme,
		Pain:         pain,
		Solution:     fmt.Sprintf("Micro-SaaS automation that addresses '%s' with a lightweight %s tool.", pain, theme),
		RevenueModel: "$29-199/month subscription",
		KeyRisks: []string{
			"Requires validation of real-world demand",
			"Competition from existing software",
		},
		Source:      origin,
		SourceDate:  s.now().UTC().Format(time.DateOnly),
		Credibility: model.CredibilityMedium,
	}), true
}
