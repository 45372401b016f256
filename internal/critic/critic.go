// Package critic adjusts idea scores for source credibility, novelty, and
// recency.
package critic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/model"
)

// Recency cutoffs are fixed; only the magnitudes are configurable.
const (
	staleAfterYears = 3
	recentWithin    = 1
)

// Critic evaluates an idea's provenance and returns a bounded additive
// adjustment with a human-readable rationale.
type Critic struct {
	cfg         config.CriticConfig
	currentYear int
}

// Option configures a Critic.
type Option func(*Critic)

// WithCurrentYear pins the year used for recency checks, for tests.
func WithCurrentYear(year int) Option {
	return func(c *Critic) {
		c.currentYear = year
	}
}

// New creates a critic. Zero-valued config fields fall back to defaults
// field by field, so a partially specified config never disables a signal
// class by accident.
func New(cfg config.CriticConfig, opts ...Option) *Critic {
	def := DefaultConfig()
	if len(cfg.TrustedDomains) == 0 {
		cfg.TrustedDomains = def.TrustedDomains
	}
	if len(cfg.BlockedDomains) == 0 {
		cfg.BlockedDomains = def.BlockedDomains
	}
	if len(cfg.NoveltyKeywords) == 0 {
		cfg.NoveltyKeywords = def.NoveltyKeywords
	}
	if cfg.TrustedBonus == 0 {
		cfg.TrustedBonus = def.TrustedBonus
	}
	if cfg.BlockedPenalty == 0 {
		cfg.BlockedPenalty = def.BlockedPenalty
	}
	if cfg.NoveltyPenalty == 0 {
		cfg.NoveltyPenalty = def.NoveltyPenalty
	}
	if cfg.StalePenalty == 0 {
		cfg.StalePenalty = def.StalePenalty
	}
	if cfg.RecentBonus == 0 {
		cfg.RecentBonus = def.RecentBonus
	}

	c := &Critic{cfg: cfg, currentYear: time.Now().Year()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConfig returns the documented critic defaults.
func DefaultConfig() config.CriticConfig {
	return config.CriticConfig{
		TrustedDomains:  []string{"ycombinator.com", "indiehackers.com", "techcrunch.com", "a16z.com"},
		BlockedDomains:  []string{"quora.com", "pinterest.com", "slideshare.net"},
		NoveltyKeywords: []string{"wrapper", "clone", "yet another", "boilerplate"},
		TrustedBonus:    3,
		BlockedPenalty:  -10,
		NoveltyPenalty:  -5,
		StalePenalty:    -5,
		RecentBonus:     1,
	}
}

// Evaluate returns the additive adjustment for an idea plus a rationale
// naming the signals that fired. It is deterministic for a given idea and
// config, and never fails: malformed sources and dates contribute nothing.
func (c *Critic) Evaluate(idea model.Idea) (float64, string) {
	var adjustment float64
	var reasons []string

	// Domain authority: trusted and blocked lists may both fire.
	if domain := extractDomain(idea.Source); domain != "" {
		for _, trusted := range c.cfg.TrustedDomains {
			if strings.Contains(domain, strings.ToLower(trusted)) {
				adjustment += c.cfg.TrustedBonus
				reasons = append(reasons, fmt.Sprintf("trusted domain (%s)", trusted))
				break
			}
		}
		for _, blocked := range c.cfg.BlockedDomains {
			if strings.Contains(domain, strings.ToLower(blocked)) {
				adjustment += c.cfg.BlockedPenalty
				reasons = append(reasons, fmt.Sprintf("blocked domain (%s)", blocked))
				break
			}
		}
	}

	// Legacy credibility label.
	switch idea.Credibility {
	case model.CredibilityHigh:
		adjustment += 2
		reasons = append(reasons, "high source credibility")
	case model.CredibilityLow:
		adjustment -= 2
		reasons = append(reasons, "low source credibility")
	}

	// Novelty penalty over title and solution.
	haystack := strings.ToLower(idea.Title + " " + idea.Solution)
	for _, kw := range c.cfg.NoveltyKeywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			adjustment += c.cfg.NoveltyPenalty
			reasons = append(reasons, fmt.Sprintf("novelty keyword %q", kw))
			break
		}
	}

	// Recency from the leading year of YYYY-MM-DD.
	if year, ok := leadingYear(idea.SourceDate); ok {
		switch gap := c.currentYear - year; {
		case gap > staleAfterYears:
			adjustment += c.cfg.StalePenalty
			reasons = append(reasons, fmt.Sprintf("stale source (%d)", year))
		case gap <= recentWithin:
			adjustment += c.cfg.RecentBonus
			reasons = append(reasons, "recent source")
		}
	}

	if len(reasons) == 0 {
		return adjustment, "no credibility signals"
	}
	return adjustment, strings.Join(reasons, "; ")
}

// extractDomain strips the scheme, leading www., and any path from a source
// reference. Non-URL sources pass through lowercased so curated tags like
// "curated:upsilon-2025" still match substring lists.
func extractDomain(source string) string {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// leadingYear parses the year component of an ISO date. Invalid or missing
// dates report false and never error.
func leadingYear(date string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(date), "-", 2)
	if parts[0] == "" {
		return 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}
