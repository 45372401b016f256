// Package scoring computes the five-dimension heuristic scores for ideas.
package scoring

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/pricing"
)

// Engine assigns scores to ideas from keyword-table heuristics plus
// price-band adjustments. Score is a pure function of the idea and the
// engine config; no state is carried between calls.
type Engine struct {
	cfg config.ScoringConfig
}

// New creates a scoring engine with the given config.
func New(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// DefaultConfig returns the standard maxima, band thresholds, and per-band
// adjustment tables.
func DefaultConfig() config.ScoringConfig {
	return config.ScoringConfig{
		DemandMax:      30,
		AcquisitionMax: 20,
		ComplexityMax:  20,
		CompetitionMax: 20,
		VelocityMax:    10,

		LowMaxPrice: 100,
		MidMaxPrice: 500,

		DemandBand:      config.BandAdjustments{Low: 2, Mid: 0, High: -1},
		AcquisitionBand: config.BandAdjustments{Low: 1, Mid: 0, High: -1},
		ComplexityBand:  config.BandAdjustments{Low: 1, Mid: 0, High: -1},
	}
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	maxima := map[string]int{
		"demand_max":      c.DemandMax,
		"acquisition_max": c.AcquisitionMax,
		"complexity_max":  c.ComplexityMax,
		"competition_max": c.CompetitionMax,
		"velocity_max":    c.VelocityMax,
	}
	for name, m := range maxima {
		if m <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be > 0", name))
		}
	}

	if c.LowMaxPrice <= 0 {
		errs = append(errs, "low_max_price must be > 0")
	}
	if c.MidMaxPrice <= c.LowMaxPrice {
		errs = append(errs, "mid_max_price must be > low_max_price")
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Score computes all five dimensions for an idea.
func (e *Engine) Score(idea model.Idea) model.IdeaScores {
	info := pricing.Parse(idea.RevenueModel)
	band := info.Band(e.thresholds())

	return model.IdeaScores{
		Demand:          e.scoreDemand(idea, band),
		Acquisition:     e.scoreAcquisition(idea, band),
		MVPComplexity:   e.scoreComplexity(idea, band),
		Competition:     e.scoreCompetition(idea, info),
		RevenueVelocity: e.scoreVelocity(info),
	}
}

func (e *Engine) thresholds() pricing.Thresholds {
	return pricing.Thresholds{LowMax: e.cfg.LowMaxPrice, MidMax: e.cfg.MidMaxPrice}
}

// classify finds the first rule whose keyword list matches text. The last
// rule of every table is keywordless and always matches.
func classify(text string, rules []textRule) (textRule, string) {
	lowered := strings.ToLower(text)
	for _, rule := range rules {
		if len(rule.keywords) == 0 {
			return rule, ""
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule, kw
			}
		}
	}
	// Unreachable as long as tables end with a fallback row.
	return textRule{}, ""
}

func bandDelta(adj config.BandAdjustments, band pricing.Band) int {
	switch band {
	case pricing.BandLow:
		return adj.Low
	case pricing.BandHigh:
		return adj.High
	default:
		return adj.Mid
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// detail assembles a ScoreDetail from a base rationale plus the band
// adjustment that fired.
func detail(base int, max int, rationale string, delta int, band pricing.Band) model.ScoreDetail {
	value := clamp(base+delta, max)
	if delta != 0 {
		rationale = fmt.Sprintf("%s; %s price band %+d", rationale, band, delta)
	}
	return model.ScoreDetail{Value: value, Max: max, Rationale: rationale}
}

func (e *Engine) scoreDemand(idea model.Idea, band pricing.Band) model.ScoreDetail {
	rule, kw := classify(idea.Pain, painRules)
	rationale := rule.rationale
	if kw != "" {
		rationale = fmt.Sprintf("%s (keyword %q)", rule.rationale, kw)
	}
	return detail(rule.base, e.cfg.DemandMax, rationale, bandDelta(e.cfg.DemandBand, band), band)
}

func (e *Engine) scoreAcquisition(idea model.Idea, band pricing.Band) model.ScoreDetail {
	rule, kw := classify(idea.ICP, icpReachRules)
	rationale := rule.rationale
	if kw != "" {
		rationale = fmt.Sprintf("%s (keyword %q)", rule.rationale, kw)
	}
	return detail(rule.base, e.cfg.AcquisitionMax, rationale, bandDelta(e.cfg.AcquisitionBand, band), band)
}

func (e *Engine) scoreComplexity(idea model.Idea, band pricing.Band) model.ScoreDetail {
	rule, kw := classify(idea.Solution, complexityRules)
	rationale := rule.rationale
	if kw != "" {
		rationale = fmt.Sprintf("%s (keyword %q)", rule.rationale, kw)
	}
	return detail(rule.base, e.cfg.ComplexityMax, rationale, bandDelta(e.cfg.ComplexityBand, band), band)
}

// scoreCompetition adjusts the market-breadth base by the shape of the
// revenue model: open-ended ranges and unknown pricing read as messier
// competitive landscapes, a single fixed price as a clearer niche.
func (e *Engine) scoreCompetition(idea model.Idea, info pricing.Info) model.ScoreDetail {
	rule, kw := classify(idea.ICP, marketRules)
	rationale := rule.rationale
	if kw != "" {
		rationale = fmt.Sprintf("%s (keyword %q)", rule.rationale, kw)
	}

	const floor = 12
	max := e.cfg.CompetitionMax
	value := rule.base

	hasCurrency := strings.ContainsAny(idea.RevenueModel, "$€£")
	switch {
	case hasCurrency && info.OpenEnded:
		if value-1 > floor {
			value--
		} else {
			value = floor
		}
		rationale += "; open-ended pricing indicates varied competitors"
	case hasCurrency && len(info.Prices) >= 2:
		rationale += "; bounded pricing range"
	case hasCurrency:
		if value+1 < max {
			value++
		} else {
			value = max
		}
		rationale += "; single price point suggests a clearer niche"
	default:
		if value-2 > floor {
			value -= 2
		} else {
			value = floor
		}
		rationale += "; unknown pricing increases uncertainty"
	}

	return model.ScoreDetail{Value: clamp(value, max), Max: max, Rationale: rationale}
}

func (e *Engine) scoreVelocity(info pricing.Info) model.ScoreDetail {
	max := e.cfg.VelocityMax
	var value int
	var rationale string

	switch {
	case info.Freemium && len(info.Prices) == 0:
		value, rationale = 9, "Freemium entry point enables fast adoption"
	case info.ContactSales && len(info.Prices) == 0:
		value, rationale = 6, "Negotiated pricing slows the sales cycle"
	case len(info.Prices) == 0:
		value, rationale = 7, "Unknown pricing, assume moderate velocity"
	default:
		avg := info.Average()
		switch {
		case avg < 100:
			value, rationale = 9, "Low average price implies faster adoption"
		case avg < 500:
			value, rationale = 8, "Moderate pricing supports good revenue velocity"
		default:
			value, rationale = 6, "High average price suggests slower acquisition"
		}
	}

	return model.ScoreDetail{Value: clamp(value, max), Max: max, Rationale: rationale}
}
