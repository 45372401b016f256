// Package model defines the idea records and score aggregates shared by the
// scoring, critic, and engine packages.
package model

import "strings"

// Credibility classifies how trustworthy an idea's source is.
type Credibility string

// Credibility levels, ordered low < medium < high.
const (
	CredibilityLow    Credibility = "low"
	CredibilityMedium Credibility = "medium"
	CredibilityHigh   Credibility = "high"
)

// ParseCredibility normalizes a credibility label. Unknown or empty labels
// default to medium.
func ParseCredibility(s string) Credibility {
	switch Credibility(strings.ToLower(strings.TrimSpace(s))) {
	case CredibilityLow:
		return CredibilityLow
	case CredibilityHigh:
		return CredibilityHigh
	default:
		return CredibilityMedium
	}
}

// Level returns the ordinal rank of a credibility label for threshold
// comparisons.
func (c Credibility) Level() int {
	switch c {
	case CredibilityHigh:
		return 2
	case CredibilityMedium:
		return 1
	default:
		return 0
	}
}

// Recommendation is the terminal verdict assigned to a scored idea.
type Recommendation string

const (
	RecommendationGreenBuild     Recommendation = "green_build"
	RecommendationYellowValidate Recommendation = "yellow_validate"
	RecommendationRedKill        Recommendation = "red_kill"
)

// Idea is a raw micro-SaaS opportunity candidate before scoring.
//
// Title, ICP, Pain, Solution, RevenueModel, and KeyRisks are required for
// dataset-loaded ideas; research sources may return ideas with only a title,
// and everything else defaults to empty with medium credibility.
type Idea struct {
	Title        string      `json:"title" yaml:"title"`
	ICP          string      `json:"icp" yaml:"icp"`
	Pain         string      `json:"pain" yaml:"pain"`
	Solution     string      `json:"solution" yaml:"solution"`
	RevenueModel string      `json:"revenue_model" yaml:"revenue_model"`
	KeyRisks     []string    `json:"key_risks" yaml:"key_risks"`
	Credibility  Credibility `json:"credibility,omitempty" yaml:"credibility,omitempty"`
	Source       string      `json:"source,omitempty" yaml:"source,omitempty"`
	SourceDate   string      `json:"source_date,omitempty" yaml:"source_date,omitempty"`

	// Optional keyword metrics attached by upstream research. When present
	// they take precedence over provider-fetched signals for gating.
	SearchVolume      *int     `json:"search_volume,omitempty" yaml:"search_volume,omitempty"`
	KeywordDifficulty *float64 `json:"keyword_difficulty,omitempty" yaml:"keyword_difficulty,omitempty"`
	TrendStatus       string   `json:"trend_status,omitempty" yaml:"trend_status,omitempty"`
}

// ScoreDetail is a single dimension's score with its ceiling and the
// rationale for the branch that produced it. Invariant: 0 <= Value <= Max.
type ScoreDetail struct {
	Value     int    `json:"value"`
	Max       int    `json:"max"`
	Rationale string `json:"rationale"`
}

// IdeaScores aggregates the five scoring dimensions for an idea.
type IdeaScores struct {
	Demand          ScoreDetail `json:"demand"`
	Acquisition     ScoreDetail `json:"acquisition"`
	MVPComplexity   ScoreDetail `json:"mvp_complexity"`
	Competition     ScoreDetail `json:"competition"`
	RevenueVelocity ScoreDetail `json:"revenue_velocity"`
}

// Total recomputes the componentwise sum. It is never stored so it cannot
// drift from the components.
func (s IdeaScores) Total() ScoreDetail {
	return ScoreDetail{
		Value: s.Demand.Value + s.Acquisition.Value + s.MVPComplexity.Value +
			s.Competition.Value + s.RevenueVelocity.Value,
		Max: s.Demand.Max + s.Acquisition.Max + s.MVPComplexity.Max +
			s.Competition.Max + s.RevenueVelocity.Max,
		Rationale: "Sum of component scores",
	}
}

// KeywordSignals holds the external keyword metrics attached to a scored
// idea for transparency alongside the recommendation gate.
type KeywordSignals struct {
	SearchVolume      int     `json:"search_volume"`
	KeywordDifficulty float64 `json:"keyword_difficulty"`
	TrendDirection    string  `json:"trend_direction"`
	Source            string  `json:"source"`
}

// ScoredIdea is the output of one scoring pass. Instances are created fresh
// each pass and never mutated afterwards.
type ScoredIdea struct {
	Idea

	Scores             IdeaScores     `json:"scores"`
	CriticAdjustment   float64        `json:"critic_adjustment"`
	CriticRationale    string         `json:"critic_rationale"`
	FeedbackAdjustment float64        `json:"feedback_adjustment"`
	Signals            KeywordSignals `json:"signals"`
	FinalTotal         float64        `json:"final_total"`
	Recommendation     Recommendation `json:"recommendation"`
}
