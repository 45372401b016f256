package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/critic"
	"github.com/sells-group/opportunity-cli/internal/engine"
	"github.com/sells-group/opportunity-cli/internal/feedback"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/research"
	"github.com/sells-group/opportunity-cli/internal/scoring"
	"github.com/sells-group/opportunity-cli/internal/store"
	"github.com/sells-group/opportunity-cli/pkg/ideasearch"
	"github.com/sells-group/opportunity-cli/pkg/seo"
)

// pipeline bundles the assembled collaborators for one invocation.
type pipeline struct {
	engine   *engine.Engine
	feedback *feedback.Store
	cache    *store.Cache
}

func (p *pipeline) close() {
	if p.cache != nil {
		_ = p.cache.Close()
	}
}

// buildPipeline wires the scoring engine, critic, feedback store, signal
// provider, and research sources from configuration.
func buildPipeline(ctx context.Context, c *config.Config, feedbackPath string) (*pipeline, error) {
	if err := scoring.ValidateConfig(c.Scoring); err != nil {
		return nil, err
	}

	if feedbackPath == "" {
		feedbackPath = c.Feedback.Path
	}
	fb := feedback.Load(feedbackPath)

	sources := []research.Source{research.CuratedSource{}}
	if len(c.Research.SourceFiles) > 0 {
		sources = append(sources, research.FileSource{Paths: c.Research.SourceFiles})
	}
	if c.Research.SearchKey != "" {
		client := ideasearch.NewClient(c.Research.SearchKey,
			ideasearch.WithBaseURL(c.Research.SearchBaseURL))
		sources = append(sources, research.NewWebSource(client))
	}

	var source research.Source = research.Multi{
		Sources:        sources,
		MinCredibility: model.ParseCredibility(c.Research.MinCredibility),
	}

	p := &pipeline{feedback: fb}
	if c.Store.Path != "" {
		cache, err := openCache(ctx, c.Store.Path)
		if err != nil {
			zap.L().Warn("research cache unavailable, continuing without it", zap.Error(err))
		} else {
			p.cache = cache
			source = research.CachedSource{
				Inner: source,
				Cache: cache,
				TTL:   time.Duration(c.Research.CacheTTLHours) * time.Hour,
			}
		}
	}

	p.engine = engine.New(
		scoring.New(c.Scoring),
		critic.New(c.Critic),
		fb,
		seo.New(c.SEO.Key, c.SEO.BaseURL),
		source,
		c.Engine,
	)
	return p, nil
}

func openCache(ctx context.Context, path string) (*store.Cache, error) {
	cache, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := cache.Migrate(ctx); err != nil {
		_ = cache.Close()
		return nil, err
	}
	return cache, nil
}

// loadPool reads the dataset file, or the built-in sample set when no path
// is given.
func loadPool(path string) ([]model.Idea, error) {
	if path == "" {
		zap.L().Debug("no dataset supplied, using built-in sample ideas")
		return model.DefaultDataset(), nil
	}
	ideas, err := model.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	if len(ideas) == 0 {
		return nil, eris.Errorf("dataset %s contains no ideas", path)
	}
	return ideas, nil
}
