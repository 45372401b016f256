// Package engine orchestrates scoring, critic and feedback adjustments,
// external keyword signals, and the iterative refinement loop that turns
// a raw idea pool into a ranked recommendation list.
package engine

import (
	"context"
	"sort"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/critic"
	"github.com/sells-group/opportunity-cli/internal/feedback"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/research"
	"github.com/sells-group/opportunity-cli/internal/scoring"
	"github.com/sells-group/opportunity-cli/pkg/seo"
)

// Recommendation gate thresholds, expressed as fractions of each maximum.
const (
	greenFinalRatio  = 0.75
	greenDemandRatio = 0.80
	greenAcqRatio    = 0.75
	yellowFinalRatio = 0.65

	gateMinVolume      = 1000
	gateMaxDifficulty  = 50.0
	gateTrendStatus    = "rising"
	gateTrendDirection = seo.TrendUpward
)

// evictionThreshold is the critic adjustment at or below which an idea is
// dropped during refinement. Deliberately a fixed literal rather than a
// config knob: a strong trust or novelty veto should not be tunable away.
const evictionThreshold = -5.0

// Engine owns the idea pool for one run. Not safe for concurrent use.
type Engine struct {
	scorer   *scoring.Engine
	critic   *critic.Critic
	feedback *feedback.Store
	signals  seo.Provider
	source   research.Source
	cfg      config.EngineConfig

	pool []model.Idea
}

// New assembles an engine. The source and signals collaborators may be nil;
// a nil source disables refinement candidates and nil signals fall back to
// deterministic metrics.
func New(
	scorer *scoring.Engine,
	cr *critic.Critic,
	fb *feedback.Store,
	signals seo.Provider,
	source research.Source,
	cfg config.EngineConfig,
) *Engine {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 3
	}
	if cfg.CandidatesPerRound <= 0 {
		cfg.CandidatesPerRound = 3
	}
	return &Engine{
		scorer:   scorer,
		critic:   cr,
		feedback: fb,
		signals:  signals,
		source:   source,
		cfg:      cfg,
	}
}

// ScoreIdea runs one idea through the full adjustment pipeline.
func (e *Engine) ScoreIdea(ctx context.Context, idea model.Idea) model.ScoredIdea {
	scores := e.scorer.Score(idea)
	total := scores.Total()

	criticAdj, rationale := e.critic.Evaluate(idea)

	var feedbackAdj float64
	if e.feedback != nil {
		feedbackAdj = e.feedback.Adjustment(idea.Title)
	}

	signals := e.fetchSignals(ctx, idea)

	final := float64(total.Value) + criticAdj + feedbackAdj
	if final < 0 {
		final = 0
	}
	if max := float64(total.Max); final > max {
		final = max
	}

	scored := model.ScoredIdea{
		Idea:               idea,
		Scores:             scores,
		CriticAdjustment:   criticAdj,
		CriticRationale:    rationale,
		FeedbackAdjustment: feedbackAdj,
		Signals:            signals,
		FinalTotal:         final,
	}
	scored.Recommendation = e.recommend(scored)
	return scored
}

// fetchSignals resolves keyword metrics for an idea. Metrics carried on the
// idea itself win over provider-fetched values.
func (e *Engine) fetchSignals(ctx context.Context, idea model.Idea) model.KeywordSignals {
	var m seo.Metrics
	if e.signals != nil {
		m = e.signals.Fetch(ctx, idea.Title)
	} else {
		m = seo.Fallback(idea.Title, "no-provider")
	}

	out := model.KeywordSignals{
		SearchVolume:      m.SearchVolume,
		KeywordDifficulty: m.KeywordDifficulty,
		TrendDirection:    m.TrendDirection,
		Source:            m.Source,
	}
	if idea.SearchVolume != nil {
		out.SearchVolume = *idea.SearchVolume
		out.Source = "idea"
	}
	if idea.KeywordDifficulty != nil {
		out.KeywordDifficulty = *idea.KeywordDifficulty
		out.Source = "idea"
	}
	return out
}

// recommend applies the three-tier state machine. Green requires the final
// total, demand, and acquisition thresholds plus one positive keyword signal;
// failing any single condition drops the idea to yellow at best.
func (e *Engine) recommend(s model.ScoredIdea) model.Recommendation {
	total := s.Scores.Total()
	maxTotal := float64(total.Max)

	positiveSignal := s.Signals.SearchVolume >= gateMinVolume ||
		s.Signals.KeywordDifficulty <= gateMaxDifficulty ||
		s.TrendStatus == gateTrendStatus ||
		s.Signals.TrendDirection == gateTrendDirection

	green := s.FinalTotal >= greenFinalRatio*maxTotal &&
		float64(s.Scores.Demand.Value) >= greenDemandRatio*float64(s.Scores.Demand.Max) &&
		float64(s.Scores.Acquisition.Value) >= greenAcqRatio*float64(s.Scores.Acquisition.Max) &&
		positiveSignal
	if green {
		return model.RecommendationGreenBuild
	}
	if s.FinalTotal >= yellowFinalRatio*maxTotal {
		return model.RecommendationYellowValidate
	}
	return model.RecommendationRedKill
}

// ScorePool scores every idea in order.
func (e *Engine) ScorePool(ctx context.Context, pool []model.Idea) []model.ScoredIdea {
	scored := make([]model.ScoredIdea, 0, len(pool))
	for _, idea := range pool {
		scored = append(scored, e.ScoreIdea(ctx, idea))
	}
	return scored
}

// Run scores the seed pool and refines it for up to the configured number of
// iterations, stopping early once any idea reaches green_build. The returned
// list is always scored against the latest pool and sorted by final total
// descending.
func (e *Engine) Run(ctx context.Context, theme string, seed []model.Idea) []model.ScoredIdea {
	e.pool = append([]model.Idea(nil), seed...)

	var scored []model.ScoredIdea
	for iteration := 1; iteration <= e.cfg.MaxIterations; iteration++ {
		scored = e.ScorePool(ctx, e.pool)
		if anyGreen(scored) {
			zap.L().Info("found green idea, stopping refinement",
				zap.Int("iteration", iteration))
			break
		}
		e.refine(ctx, theme, scored)
		zap.L().Debug("refined idea pool",
			zap.Int("iteration", iteration), zap.Int("pool", len(e.pool)))
		scored = nil
	}
	if scored == nil {
		scored = e.ScorePool(ctx, e.pool)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalTotal > scored[j].FinalTotal
	})
	return scored
}

func anyGreen(scored []model.ScoredIdea) bool {
	for _, s := range scored {
		if s.Recommendation == model.RecommendationGreenBuild {
			return true
		}
	}
	return false
}

// refine mutates the pool between iterations: evict killed and vetoed ideas,
// then pull in fresh candidates targeting the weakest dimension.
func (e *Engine) refine(ctx context.Context, theme string, scored []model.ScoredIdea) {
	weakest := weakestDimension(scored)

	kept := e.pool[:0]
	for _, s := range scored {
		if s.Recommendation == model.RecommendationRedKill {
			continue
		}
		if s.CriticAdjustment <= evictionThreshold {
			zap.L().Debug("evicting idea on critic veto",
				zap.String("title", s.Title),
				zap.Float64("adjustment", s.CriticAdjustment))
			continue
		}
		kept = append(kept, s.Idea)
	}
	e.pool = kept

	if e.source == nil {
		return
	}
	candidates := e.source.Search(ctx, theme)

	titles := make(map[string]struct{}, len(e.pool))
	for _, idea := range e.pool {
		titles[idea.Title] = struct{}{}
	}
	fresh := candidates[:0]
	for _, c := range candidates {
		if _, exists := titles[c.Title]; exists {
			continue
		}
		titles[c.Title] = struct{}{}
		fresh = append(fresh, c)
	}

	ranked := e.ScorePool(ctx, fresh)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := dimensionValue(ranked[i], weakest), dimensionValue(ranked[j], weakest)
		if a != b {
			return a > b
		}
		return ranked[i].Scores.Total().Value > ranked[j].Scores.Total().Value
	})

	limit := e.cfg.CandidatesPerRound
	if limit > len(ranked) {
		limit = len(ranked)
	}
	for _, r := range ranked[:limit] {
		e.pool = append(e.pool, r.Idea)
	}
}

// dimension identifies one of the two refinement-relevant score dimensions.
type dimension int

const (
	dimensionDemand dimension = iota
	dimensionAcquisition
)

// weakestDimension picks whichever of demand and acquisition has the lower
// mean value/max ratio across the scored pool. Ties and empty pools default
// to demand.
func weakestDimension(scored []model.ScoredIdea) dimension {
	if len(scored) == 0 {
		return dimensionDemand
	}

	demandRatios := make([]float64, 0, len(scored))
	acqRatios := make([]float64, 0, len(scored))
	for _, s := range scored {
		demandRatios = append(demandRatios, ratio(s.Scores.Demand))
		acqRatios = append(acqRatios, ratio(s.Scores.Acquisition))
	}

	demandMean, err := stats.Mean(demandRatios)
	if err != nil {
		return dimensionDemand
	}
	acqMean, err := stats.Mean(acqRatios)
	if err != nil {
		return dimensionDemand
	}
	if acqMean < demandMean {
		return dimensionAcquisition
	}
	return dimensionDemand
}

func ratio(d model.ScoreDetail) float64 {
	if d.Max == 0 {
		return 0
	}
	return float64(d.Value) / float64(d.Max)
}

func dimensionValue(s model.ScoredIdea, dim dimension) int {
	if dim == dimensionAcquisition {
		return s.Scores.Acquisition.Value
	}
	return s.Scores.Demand.Value
}
