package dv

import (
	"context"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/options"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/errors"
	"github.com/teranos/semval/logger"
)

// Builder creates parsed values for a property. Composite values build
// their fields through it.
type Builder interface {
	NewValueByProperty(ctx context.Context, p *property.Property, raw, caption string, subject item.EntityRef) Value
}

// Factory creates values bound to an Env.
type Factory struct {
	env *Env
}

var _ Builder = (*Factory)(nil)

// NewValueByType returns an empty value of typeID. Unknown ids produce an
// error value.
func (f *Factory) NewValueByType(typeID string, opts ...options.Bag) Value {
	var bag options.Bag
	if len(opts) > 0 {
		bag = opts[0].Clone()
	}
	return f.newValue(typeID, nil, item.EntityRef{}, bag)
}

// NewValueByProperty builds a value of p's type and parses raw into it. A
// property without a type gets its declared type from the store.
func (f *Factory) NewValueByProperty(ctx context.Context, p *property.Property, raw, caption string, subject item.EntityRef) Value {
	typeID := p.TypeID
	if typeID == "" {
		declared, err := property.DeclaredType(ctx, f.env.Store, p)
		if err != nil {
			logger.FromContext(ctx, f.env.Logger).Warnw("type lookup failed",
				logger.FieldProperty, p.Key,
				logger.FieldError, err)
			declared = property.DefaultTypeID
		}
		typeID = declared
	}

	v := f.newValue(typeID, p, subject, options.Bag{})
	if caption != "" {
		v.SetCaption(caption)
	}
	v.Parse(ctx, raw)
	return v
}

// NewValueByItem rehydrates a value of p's type from a stored item.
func (f *Factory) NewValueByItem(p *property.Property, it item.Item) (Value, error) {
	typeID := property.DefaultTypeID
	if p != nil && p.TypeID != "" {
		typeID = p.TypeID
	}
	v := f.newValue(typeID, p, item.EntityRef{}, options.Bag{})
	if err := f.load(v, it); err != nil {
		return nil, err
	}
	return v, nil
}

// MustLoad loads it into a fresh value of typeID, failing on a kind
// mismatch.
func (f *Factory) MustLoad(typeID string, it item.Item) (Value, error) {
	v := f.newValue(typeID, nil, item.EntityRef{}, options.Bag{})
	if err := f.load(v, it); err != nil {
		return nil, err
	}
	return v, nil
}

func (f *Factory) load(v Value, it item.Item) error {
	if v.Load(it) {
		return nil
	}
	got := "<nil>"
	if it != nil {
		got = it.Kind().String()
	}
	return errors.NewTypeMismatchError(v.TypeID(), v.base().entry.Kind.String(), got)
}

func (f *Factory) newValue(typeID string, p *property.Property, subject item.EntityRef, opts options.Bag) Value {
	entry := f.env.Registry.Lookup(typeID)
	b := &valueBase{
		entry:   entry,
		typeID:  typeID,
		prop:    p,
		subject: subject,
		opts:    opts,
		env:     f.env,
	}
	return entry.build(b)
}
