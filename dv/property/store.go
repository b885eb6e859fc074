package property

import (
	"context"
	"strings"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/errors"
)

// Condition restricts a value query to entities carrying Value, other than
// ExcludeSubject.
type Condition struct {
	Value          item.Item
	ExcludeSubject item.EntityRef
}

// Store is the fact store values consult. Implementations own their
// consistency and retry policy.
type Store interface {
	// QueryValues returns up to limit entities that carry property=cond.Value.
	QueryValues(ctx context.Context, p *Property, cond Condition, limit int) ([]item.EntityRef, error)
	// FetchSpecification returns the items subject declares for meta.
	FetchSpecification(ctx context.Context, subject item.EntityRef, meta string) ([]item.Item, error)
}

// Lookup resolves label and fills in its declared type. Predefined
// properties keep their built-in type.
func Lookup(ctx context.Context, store Store, label string) (*Property, error) {
	p, err := Resolve(label)
	if err != nil {
		return nil, err
	}
	if p.TypeID != "" {
		return p, nil
	}
	typeID, err := DeclaredType(ctx, store, p)
	if err != nil {
		return nil, err
	}
	p.TypeID = typeID
	return p, nil
}

// DeclaredType reads the _TYPE declaration of p, falling back to
// DefaultTypeID.
func DeclaredType(ctx context.Context, store Store, p *Property) (string, error) {
	items, err := store.FetchSpecification(ctx, p.Entity(), TypeMeta)
	if err != nil {
		return "", errors.Wrapf(err, "fetch type of %s", p.Key)
	}
	for _, it := range items {
		if b, ok := it.(item.Blob); ok && strings.TrimSpace(b.Text) != "" {
			return strings.TrimSpace(b.Text), nil
		}
	}
	return DefaultTypeID, nil
}

// Texts fetches meta for p and returns the text of every Blob item. Other
// item kinds are skipped.
func Texts(ctx context.Context, store Store, p *Property, meta string) ([]string, error) {
	items, err := store.FetchSpecification(ctx, p.Entity(), meta)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s of %s", meta, p.Key)
	}
	texts := make([]string, 0, len(items))
	for _, it := range items {
		if b, ok := it.(item.Blob); ok {
			texts = append(texts, b.Text)
		}
	}
	return texts, nil
}

// Flag reports whether p declares meta as a true Boolean.
func Flag(ctx context.Context, store Store, p *Property, meta string) (bool, error) {
	items, err := store.FetchSpecification(ctx, p.Entity(), meta)
	if err != nil {
		return false, errors.Wrapf(err, "fetch %s of %s", meta, p.Key)
	}
	for _, it := range items {
		if b, ok := it.(item.Boolean); ok && b.Value {
			return true, nil
		}
	}
	return false, nil
}
