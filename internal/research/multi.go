package research

import (
	"context"
	"strings"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// Multi combines several sources, drops ideas below a minimum
// credibility, and deduplicates by title keeping the most credible
// entry for each.
type Multi struct {
	Sources        []Source
	MinCredibility model.Credibility
}

// Search queries every source in order and returns the filtered,
// deduplicated pool.
func (m Multi) Search(ctx context.Context, theme string) []model.Idea {
	var combined []model.Idea
	for _, src := range m.Sources {
		combined = append(combined, src.Search(ctx, theme)...)
	}

	minLevel := m.MinCredibility.Level()
	filtered := combined[:0]
	for _, idea := range combined {
		if idea.Credibility.Level() >= minLevel {
			filtered = append(filtered, idea)
		}
	}
	return dedupeByTitle(filtered)
}

// dedupeByTitle keeps one idea per lowercased title, preferring the
// higher-credibility entry and otherwise the one seen first. Output
// order follows first appearance.
func dedupeByTitle(ideas []model.Idea) []model.Idea {
	type slot struct {
		idea  model.Idea
		index int
	}
	byTitle := make(map[string]slot, len(ideas))
	order := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		key := strings.ToLower(idea.Title)
		if key == "" {
			continue
		}
		current, ok := byTitle[key]
		if !ok {
			byTitle[key] = slot{idea: idea, index: len(order)}
			order = append(order, key)
			continue
		}
		if idea.Credibility.Level() > current.idea.Credibility.Level() {
			byTitle[key] = slot{idea: idea, index: current.index}
		}
	}

	out := make([]model.Idea, len(order))
	for _, key := range order {
		s := byTitle[key]
		out[s.index] = s.idea
	}
	return out
}
