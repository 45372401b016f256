// Package store persists research results in a local SQLite cache so
// repeated runs against the same theme do not refetch external sources.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// Cache is a TTL cache for research source results.
type Cache struct {
	db *sql.DB
}

// Open opens a SQLite cache at the given path and configures WAL mode.
func Open(dsn string) (*Cache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Cache{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS search_cache (
	id         TEXT PRIMARY KEY,
	theme      TEXT NOT NULL,
	ideas      TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_cache_theme ON search_cache(theme);
CREATE INDEX IF NOT EXISTS idx_search_cache_expires_at ON search_cache(expires_at);
`

// Migrate creates the cache schema.
func (c *Cache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetSearch returns the cached ideas for a theme, if present and fresh.
func (c *Cache) GetSearch(ctx context.Context, theme string) ([]model.Idea, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT ideas FROM search_cache
		 WHERE theme = ? AND expires_at > datetime('now')
		 ORDER BY fetched_at DESC LIMIT 1`,
		theme,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrapf(err, "store: get search %q", theme)
	}

	var ideas []model.Idea
	if err := json.Unmarshal([]byte(payload), &ideas); err != nil {
		return nil, false, eris.Wrap(err, "store: unmarshal cached ideas")
	}
	return ideas, true, nil
}

// SetSearch caches the ideas for a theme with the given TTL, replacing any
// prior entry for that theme.
func (c *Cache) SetSearch(ctx context.Context, theme string, ideas []model.Idea, ttl time.Duration) error {
	payload, err := json.Marshal(ideas)
	if err != nil {
		return eris.Wrap(err, "store: marshal ideas")
	}

	now := time.Now().UTC()
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "store: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_cache WHERE theme = ?`, theme); err != nil {
		return eris.Wrapf(err, "store: clear search %q", theme)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO search_cache (id, theme, ideas, fetched_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), theme, string(payload),
		now.Format(time.DateTime), now.Add(ttl).Format(time.DateTime),
	); err != nil {
		return eris.Wrapf(err, "store: insert search %q", theme)
	}

	return eris.Wrap(tx.Commit(), "store: commit")
}

// DeleteExpired removes stale cache rows and reports how many were dropped.
func (c *Cache) DeleteExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM search_cache WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, eris.Wrap(err, "store: delete expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "store: rows affected")
	}
	return int(n), nil
}
