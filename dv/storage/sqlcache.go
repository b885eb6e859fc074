package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/db"
	"github.com/teranos/semval/errors"
)

// SQLCache is a cache.Store over the cache_containers table. Containers
// are stored JSON-encoded.
type SQLCache struct {
	db    *sql.DB
	stats *cache.Statistics
}

var _ cache.Store = (*SQLCache)(nil)

// NewSQLCache wraps db, which must carry the cache migration.
func NewSQLCache(db *sql.DB) *SQLCache {
	return &SQLCache{db: db, stats: cache.NewStatistics()}
}

func (c *SQLCache) Read(ctx context.Context, hash string) (*cache.Container, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM cache_containers WHERE hash = ?`, hash).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		c.stats.Miss()
		return cache.NewContainer(hash), nil
	}
	if err != nil {
		return nil, errors.Wrapf(db.MarkClosed(err), "read container %s", hash)
	}
	c.stats.Hit()

	var out cache.Container
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, errors.Wrapf(err, "decode container %s", hash)
	}
	return &out, nil
}

func (c *SQLCache) Save(ctx context.Context, container *cache.Container) error {
	if container == nil || container.Hash == "" {
		return errors.Wrap(errors.ErrInvalidRequest, "save container without hash")
	}
	payload, err := json.Marshal(container)
	if err != nil {
		return errors.Wrapf(err, "encode container %s", container.Hash)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO cache_containers (hash, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(hash) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		container.Hash, string(payload))
	if err != nil {
		return errors.Wrapf(db.MarkClosed(err), "save container %s", container.Hash)
	}
	c.stats.Set()
	return nil
}

func (c *SQLCache) Delete(ctx context.Context, hash string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM cache_containers WHERE hash = ?`, hash)
	if err != nil {
		return errors.Wrapf(db.MarkClosed(err), "delete container %s", hash)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		c.stats.Delete()
	}
	return nil
}

// Stats exposes hit and miss counts.
func (c *SQLCache) Stats() *cache.Statistics {
	return c.stats
}
