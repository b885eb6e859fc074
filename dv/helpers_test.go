package dv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/dv/storage"
)

// countingStore counts value queries.
type countingStore struct {
	*storage.MemoryStore
	queries int
}

func (s *countingStore) QueryValues(ctx context.Context, p *property.Property, cond property.Condition, limit int) ([]item.EntityRef, error) {
	s.queries++
	return s.MemoryStore.QueryValues(ctx, p, cond, limit)
}

func newTestEnv(t *testing.T, opts ...EnvOption) (*Env, *countingStore) {
	t.Helper()
	store := &countingStore{MemoryStore: storage.NewMemoryStore()}
	mem, err := cache.NewMemory()
	require.NoError(t, err)
	return NewEnv(store, mem, opts...), store
}

// declareProperty creates a property whose type is declared in store.
func declareProperty(store *countingStore, label, typeID string) *property.Property {
	p := property.New(label, "")
	store.DeclareText(p, property.TypeMeta, typeID)
	p.TypeID = typeID
	return p
}
