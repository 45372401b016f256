package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, c.Migrate(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	ideas := []model.Idea{
		{Title: "Invoice reconciliation tool", ICP: "bookkeepers", Pain: "manual matching"},
		{Title: "Churn alert dashboard", ICP: "SaaS founders", Pain: "silent cancellations"},
	}
	require.NoError(t, c.SetSearch(ctx, "fintech", ideas, time.Hour))

	got, ok, err := c.GetSearch(ctx, "fintech")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ideas, got)
}

func TestCacheMissUnknownTheme(t *testing.T) {
	c := openTestCache(t)

	got, ok, err := c.GetSearch(context.Background(), "healthcare")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheExpiredEntryIsMiss(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSearch(ctx, "fintech", []model.Idea{{Title: "A"}}, -time.Minute))

	_, ok, err := c.GetSearch(ctx, "fintech")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheSetReplacesPriorEntry(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSearch(ctx, "fintech", []model.Idea{{Title: "Old"}}, time.Hour))
	require.NoError(t, c.SetSearch(ctx, "fintech", []model.Idea{{Title: "New"}}, time.Hour))

	got, ok, err := c.GetSearch(ctx, "fintech")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Title)
}

func TestCacheDeleteExpired(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSearch(ctx, "stale", []model.Idea{{Title: "A"}}, -time.Minute))
	require.NoError(t, c.SetSearch(ctx, "fresh", []model.Idea{{Title: "B"}}, time.Hour))

	n, err := c.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, err := c.GetSearch(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}
