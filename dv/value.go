// Package dv is the DataValue type system: typed values built from user
// text or rehydrated from stored items, validated against the constraints
// their property declares, and rendered in one of five output modes.
//
// Values are created through a Factory bound to an Env:
//
//	env := dv.NewEnv(store, cacheStore)
//	v := env.Factory().NewValueByProperty(ctx, prop, "100 °C", "", subject)
//	if !v.IsValid() {
//	    // render v.Errors()
//	}
//	out := env.Dispatcher().Format(ctx, v, dv.ShortPlain)
package dv

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/options"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/logger"
)

// Value is a DataValue. The set of implementations is closed; use a type
// switch over the concrete variants for type specific operations.
type Value interface {
	TypeID() string
	Property() *property.Property
	// Subject is the context entity, zero when the value is free-standing.
	Subject() item.EntityRef
	Caption() string
	SetCaption(caption string)
	Options() *options.Bag
	SetOutputFormat(format string)
	Errors() msg.List
	AddError(e msg.Error)
	// Item is nil unless the value parsed or loaded successfully.
	Item() item.Item
	IsValid() bool

	// Parse builds the item from user text. Errors are recorded on the
	// value; check IsValid afterwards.
	Parse(ctx context.Context, raw string)
	// Load rehydrates the value from a stored item, skipping validation.
	// It returns false, leaving the value untouched, on a kind mismatch.
	Load(it item.Item) bool

	// String is the round-trippable text form of a valid value.
	String() string

	base() *valueBase
}

// grammar is what each variant contributes to the shared lifecycle.
type grammar interface {
	// parseText turns trimmed, possibly empty text into an item, recording
	// errors on the value. A nil item means failure.
	parseText(ctx context.Context, text string) item.Item
	// acceptsEmpty reports whether empty text goes to parseText.
	acceptsEmpty() bool
	// loaded is called after Load stored it.
	loaded(it item.Item)
	String() string
}

type valueBase struct {
	entry      *TypeEntry
	typeID     string
	prop       *property.Property
	subject    item.EntityRef
	caption    string
	hasCaption bool
	opts       options.Bag
	errs       msg.List
	it         item.Item
	env        *Env

	self grammar
}

func (b *valueBase) base() *valueBase { return b }

func (b *valueBase) TypeID() string { return b.typeID }

func (b *valueBase) Property() *property.Property { return b.prop }

func (b *valueBase) Subject() item.EntityRef { return b.subject }

// Caption is the display text of the value: the pre-set caption, else the
// text it was parsed from, else its String form.
func (b *valueBase) Caption() string {
	if b.hasCaption || b.caption != "" {
		return b.caption
	}
	if b.it == nil {
		return ""
	}
	return b.self.String()
}

func (b *valueBase) SetCaption(caption string) {
	b.caption = caption
	b.hasCaption = true
}

func (b *valueBase) Options() *options.Bag { return &b.opts }

func (b *valueBase) SetOutputFormat(format string) {
	b.opts.Set(options.OutputFormat, format)
}

func (b *valueBase) Errors() msg.List { return b.errs }

func (b *valueBase) AddError(e msg.Error) {
	b.errs = append(b.errs, e)
}

func (b *valueBase) Item() item.Item { return b.it }

func (b *valueBase) IsValid() bool {
	return len(b.errs) == 0 && b.it != nil && b.it.Kind() == b.entry.Kind
}

func (b *valueBase) Parse(ctx context.Context, raw string) {
	b.errs = nil
	b.it = nil
	if !b.hasCaption {
		b.caption = ""
	}

	text := strings.TrimSpace(raw)
	if text == "" && !b.self.acceptsEmpty() {
		b.AddError(msg.New(msg.MissingValue))
		return
	}

	it := b.self.parseText(ctx, text)
	if len(b.errs) > 0 || it == nil {
		if len(b.errs) == 0 {
			b.AddError(msg.New(msg.InternalError, "no item for "+b.typeID))
		}
		return
	}
	b.it = it
	if !b.hasCaption {
		b.caption = text
	}

	if b.prop != nil && !b.opts.Bool(options.SkipConstraints) && b.env != nil {
		b.env.pipeline.Check(ctx, b.outer())
		if len(b.errs) > 0 {
			b.it = nil
		}
	}
}

func (b *valueBase) Load(it item.Item) bool {
	if it == nil || it.Kind() != b.entry.Kind {
		return false
	}
	b.errs = nil
	b.it = it
	b.self.loaded(it)
	return true
}

// outer returns the concrete value embedding b.
func (b *valueBase) outer() Value {
	return b.self.(Value)
}

func (b *valueBase) acceptsEmpty() bool { return false }

func (b *valueBase) loaded(item.Item) {}

func (b *valueBase) logger(ctx context.Context) *zap.SugaredLogger {
	if b.env == nil {
		return logger.FromContext(ctx, nil)
	}
	return logger.FromContext(ctx, b.env.Logger)
}

func (b *valueBase) config() Config {
	if b.env == nil {
		return DefaultConfig()
	}
	return b.env.Config
}

// language is the content language for this value.
func (b *valueBase) language() string {
	if l := b.opts.String(options.Language); l != "" {
		return l
	}
	return b.config().Language
}
