// Package storage holds reference implementations of the stores the type
// system reads from: an in-memory fact store for tests and tools, and
// SQLite-backed fact and cache stores.
package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
)

// Fact is one property value of a subject.
type Fact struct {
	Subject  item.EntityRef
	Property string
	Item     item.Item
}

// MemoryStore keeps facts in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	facts []Fact
}

var _ property.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add records that subject carries propertyKey=it.
func (s *MemoryStore) Add(subject item.EntityRef, propertyKey string, it item.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts = append(s.facts, Fact{Subject: subject, Property: propertyKey, Item: it})
}

// Declare adds meta declarations to the property page of p.
func (s *MemoryStore) Declare(p *property.Property, meta string, items ...item.Item) {
	for _, it := range items {
		s.Add(p.Entity(), meta, it)
	}
}

// DeclareText declares each text as a Blob.
func (s *MemoryStore) DeclareText(p *property.Property, meta string, texts ...string) {
	for _, t := range texts {
		s.Add(p.Entity(), meta, item.Blob{Text: t})
	}
}

// Remove drops every fact of subject's root entity and returns how many
// were removed.
func (s *MemoryStore) Remove(subject item.EntityRef) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	root := subject.Root()
	before := len(s.facts)
	s.facts = slices.DeleteFunc(s.facts, func(f Fact) bool { return f.Subject.Root() == root })
	return before - len(s.facts)
}

// Facts returns the facts of subject.
func (s *MemoryStore) Facts(subject item.EntityRef) []Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Fact
	for _, f := range s.facts {
		if f.Subject == subject {
			out = append(out, f)
		}
	}
	return out
}

func (s *MemoryStore) QueryValues(_ context.Context, p *property.Property, cond property.Condition, limit int) ([]item.EntityRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exclude := cond.ExcludeSubject.Root()
	var out []item.EntityRef
	for _, f := range s.facts {
		if limit > 0 && len(out) >= limit {
			break
		}
		if f.Property != p.Key || !item.Equal(f.Item, cond.Value) {
			continue
		}
		root := f.Subject.Root()
		if (!exclude.IsZero() && root == exclude) || slices.Contains(out, root) {
			continue
		}
		out = append(out, root)
	}
	return out, nil
}

func (s *MemoryStore) FetchSpecification(_ context.Context, subject item.EntityRef, meta string) ([]item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []item.Item
	for _, f := range s.facts {
		if f.Subject == subject && f.Property == meta {
			out = append(out, f.Item)
		}
	}
	return out, nil
}
