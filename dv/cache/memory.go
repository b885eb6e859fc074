package cache

import (
	"context"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teranos/semval/errors"
)

// DefaultMemorySize bounds a Memory store built without WithSize.
const DefaultMemorySize = 4096

// Option configures a Memory store.
type Option func(*memoryOptions)

type memoryOptions struct {
	size      int
	registry  prometheus.Registerer
	component string
}

// WithSize bounds the number of containers kept. Sizes <= 0 are ignored.
func WithSize(size int) Option {
	return func(o *memoryOptions) {
		if size > 0 {
			o.size = size
		}
	}
}

// WithMetrics exports the store's statistics to reg. A nil registry or
// empty component is ignored.
func WithMetrics(reg prometheus.Registerer, component string) Option {
	return func(o *memoryOptions) {
		if reg != nil && component != "" {
			o.registry = reg
			o.component = component
		}
	}
}

// Memory is an LRU-bounded Store. Containers are stored encoded so callers
// never share state through it.
type Memory struct {
	lru     *lru.Cache
	stats   *Statistics
	metrics *cacheMetrics
}

// NewMemory creates a Memory store.
func NewMemory(opts ...Option) (*Memory, error) {
	o := memoryOptions{size: DefaultMemorySize}
	for _, opt := range opts {
		opt(&o)
	}

	l, err := lru.New(o.size)
	if err != nil {
		return nil, errors.Wrap(err, "create lru")
	}
	m := &Memory{lru: l, stats: NewStatistics()}
	if o.registry != nil {
		m.metrics, err = newCacheMetrics(o.registry, o.component)
		if err != nil {
			return nil, errors.Wrap(err, "register cache metrics")
		}
	}
	return m, nil
}

func (m *Memory) Read(_ context.Context, hash string) (*Container, error) {
	v, ok := m.lru.Get(hash)
	if !ok {
		m.stats.Miss()
		if m.metrics != nil {
			m.metrics.misses.Inc()
		}
		return NewContainer(hash), nil
	}
	m.stats.Hit()
	if m.metrics != nil {
		m.metrics.hits.Inc()
	}

	var c Container
	if err := json.Unmarshal(v.([]byte), &c); err != nil {
		return nil, errors.Wrapf(err, "decode container %s", hash)
	}
	return &c, nil
}

func (m *Memory) Save(_ context.Context, c *Container) error {
	if c == nil || c.Hash == "" {
		return errors.Wrap(errors.ErrInvalidRequest, "save container without hash")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "encode container %s", c.Hash)
	}
	evicted := m.lru.Add(c.Hash, data)

	m.stats.Set()
	if evicted {
		m.stats.Eviction()
	}
	m.stats.UpdateSize(int64(m.lru.Len()))
	if m.metrics != nil {
		m.metrics.sets.Inc()
		if evicted {
			m.metrics.evictions.Inc()
		}
		m.metrics.size.Set(float64(m.lru.Len()))
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, hash string) error {
	if m.lru.Remove(hash) {
		m.stats.Delete()
		if m.metrics != nil {
			m.metrics.deletes.Inc()
		}
	}
	m.stats.UpdateSize(int64(m.lru.Len()))
	if m.metrics != nil {
		m.metrics.size.Set(float64(m.lru.Len()))
	}
	return nil
}

// Stats exposes the store's statistics.
func (m *Memory) Stats() *Statistics {
	return m.stats
}

// Len is the number of containers currently held.
func (m *Memory) Len() int {
	return m.lru.Len()
}
