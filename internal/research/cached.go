package research

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/store"
)

// CachedSource wraps a source with a SQLite-backed TTL cache keyed by
// theme. Cache failures fall through to the inner source.
type CachedSource struct {
	Inner Source
	Cache *store.Cache
	TTL   time.Duration
}

func (c CachedSource) Search(ctx context.Context, theme string) []model.Idea {
	if c.Cache == nil {
		return c.Inner.Search(ctx, theme)
	}

	cached, ok, err := c.Cache.GetSearch(ctx, theme)
	if err != nil {
		zap.L().Warn("research cache read failed", zap.Error(err))
	} else if ok {
		zap.L().Debug("research cache hit",
			zap.String("theme", theme), zap.Int("ideas", len(cached)))
		return cached
	}

	ideas := c.Inner.Search(ctx, theme)
	if err := c.Cache.SetSearch(ctx, theme, ideas, c.TTL); err != nil {
		zap.L().Warn("research cache write failed", zap.Error(err))
	}
	return ideas
}
