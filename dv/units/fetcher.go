package units

import (
	"context"

	"go.uber.org/zap"

	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/errors"
	"github.com/teranos/semval/logger"
)

// Source builds the conversion table of a property.
type Source interface {
	Fetch(ctx context.Context, p *property.Property) (*Table, error)
}

// Fetcher reads _CONV declarations from the fact store.
type Fetcher struct {
	store  property.Store
	logger *zap.SugaredLogger
}

// NewFetcher creates a Fetcher. A nil logger falls back to the global one.
func NewFetcher(store property.Store, log *zap.SugaredLogger) *Fetcher {
	if log == nil {
		log = logger.Logger
	}
	return &Fetcher{store: store, logger: log}
}

// Fetch builds the table for p. Malformed declarations are skipped and
// logged, never reported.
func (f *Fetcher) Fetch(ctx context.Context, p *property.Property) (*Table, error) {
	lines, err := property.Texts(ctx, f.store, p, property.ConversionMeta)
	if err != nil {
		return nil, errors.Wrap(err, "fetch conversion factors")
	}
	t, skipped := BuildTable(lines)
	for _, line := range skipped {
		logger.FromContext(ctx, f.logger).Debugw("skipped conversion line",
			logger.FieldProperty, p.Key,
			"line", line)
	}
	return t, nil
}

// DisplayUnits fetches the _PDU declarations of p.
func (f *Fetcher) DisplayUnits(ctx context.Context, p *property.Property) ([]string, error) {
	return property.Texts(ctx, f.store, p, property.DisplayUnitsMeta)
}

const tableEntry = "units"

// CachedFetcher memoizes tables in a cache container keyed by the
// property's root entity.
type CachedFetcher struct {
	source Source
	cache  cache.Store
	logger *zap.SugaredLogger
}

// NewCachedFetcher wraps source with store.
func NewCachedFetcher(source Source, store cache.Store, log *zap.SugaredLogger) *CachedFetcher {
	if log == nil {
		log = logger.Logger
	}
	return &CachedFetcher{source: source, cache: store, logger: log}
}

// CacheKey is the container hash used for p.
func CacheKey(p *property.Property) string {
	return cache.Key("units", p.Entity().Root().Hash())
}

func (c *CachedFetcher) Fetch(ctx context.Context, p *property.Property) (*Table, error) {
	log := logger.FromContext(ctx, c.logger)
	key := CacheKey(p)

	container, err := c.cache.Read(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "read unit cache")
	}
	var t Table
	if ok, err := container.Get(tableEntry, &t); err == nil && ok {
		log.Debugw("unit table", logger.FieldProperty, p.Key, logger.FieldCacheHit, true)
		return &t, nil
	} else if err != nil {
		log.Warnw("discarding unreadable unit table", logger.FieldProperty, p.Key, logger.FieldError, err)
	}

	fresh, err := c.source.Fetch(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := container.Set(tableEntry, fresh); err != nil {
		return nil, err
	}
	if err := c.cache.Save(ctx, container); err != nil {
		return nil, errors.Wrap(err, "save unit cache")
	}
	if err := c.link(ctx, p, key); err != nil {
		return nil, err
	}
	log.Debugw("unit table", logger.FieldProperty, p.Key, logger.FieldCacheHit, false)
	return fresh, nil
}

// link records the table on the invalidation list of p's entity, so
// purging the entity also drops the table.
func (c *CachedFetcher) link(ctx context.Context, p *property.Property, hash string) error {
	entity, err := c.cache.Read(ctx, cache.EntityKey(p.Entity().Root().Hash()))
	if err != nil {
		return errors.Wrapf(err, "read links of %s", p.Key)
	}
	entity.Link(hash)
	if err := c.cache.Save(ctx, entity); err != nil {
		return errors.Wrapf(err, "save links of %s", p.Key)
	}
	return nil
}

// Invalidate drops the cached table of p. Call it when p's declarations
// change.
func (c *CachedFetcher) Invalidate(ctx context.Context, p *property.Property) error {
	if err := c.cache.Delete(ctx, CacheKey(p)); err != nil {
		return errors.Wrapf(err, "invalidate units of %s", p.Key)
	}
	return nil
}
