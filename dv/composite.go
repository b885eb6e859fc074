package dv

import (
	"context"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mr-tron/base58"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/parser"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/errors"
	"github.com/teranos/semval/logger"
)

const escapedSemicolon = "\x00esc-semicolon\x00"

var semicolonEscapes = strings.NewReplacer(
	`\;`, escapedSemicolon,
	"&#59;", escapedSemicolon,
	"&#x3B;", escapedSemicolon,
	"&#x3b;", escapedSemicolon,
)

var entityDecoder = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// splitComposite splits raw on unescaped semicolons. "\;" and the
// semicolon character entity are literal content. Tokens are trimmed.
func splitComposite(raw string) []string {
	s := semicolonEscapes.Replace(raw)
	s = entityDecoder.Replace(s)
	parts := strings.Split(s, ";")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(p), escapedSemicolon, ";")
	}
	return parts
}

func isOmission(token string) bool {
	return token == "" || token == "?"
}

// subobjectName derives the stable sub-object name of a composite from its
// raw text.
func subobjectName(raw string) string {
	sum := xxhash.Sum64String(raw)
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(sum)
		sum >>= 8
	}
	return "_" + base58.Encode(buf[:])
}

// FieldValue is one populated field of a composite.
type FieldValue struct {
	Property *property.Property
	Value    Value
}

// CompositeValue backs record, reference and monolingual text types. Its
// item is a container of the field items under a synthetic subject.
type CompositeValue struct {
	valueBase

	fields    []*property.Property
	subValues []FieldValue
	built     bool
	sortKey   string
}

func newComposite(b *valueBase) Value {
	v := &CompositeValue{valueBase: *b}
	v.self = v
	return v
}

// Fields returns the field properties in declaration order. They are
// fetched once per value.
func (v *CompositeValue) Fields(ctx context.Context) ([]*property.Property, error) {
	if v.fields != nil {
		return v.fields, nil
	}
	if v.typeID == TypeMonolingual {
		v.fields = v.env.Registry.MonolingualFields()
		return v.fields, nil
	}
	if v.prop == nil {
		return nil, nil
	}
	decls, err := property.Texts(ctx, v.env.Store, v.prop, property.FieldListMeta)
	if err != nil {
		return nil, err
	}
	var fields []*property.Property
	for _, decl := range decls {
		for _, label := range strings.Split(decl, ";") {
			if strings.TrimSpace(label) == "" {
				continue
			}
			p, err := property.Lookup(ctx, v.env.Store, label)
			if err != nil {
				var rerr *property.ResolutionError
				if errors.As(err, &rerr) {
					continue
				}
				return nil, err
			}
			fields = append(fields, p)
		}
	}
	v.fields = fields
	return fields, nil
}

func (v *CompositeValue) parseText(ctx context.Context, text string) item.Item {
	v.subValues = nil
	v.sortKey = ""
	v.built = true

	fields, err := v.Fields(ctx)
	if err != nil {
		v.logger(ctx).Warnw("field list unavailable", logger.FieldTypeID, v.typeID, logger.FieldError, err)
		v.AddError(msg.New(msg.InternalError, err.Error()))
		return nil
	}
	if len(fields) == 0 {
		v.AddError(msg.New(msg.NoFieldList, v.propertyLabel()))
		return nil
	}

	var tokens []string
	if v.typeID == TypeMonolingual {
		txt, lang, errs := parser.ParseMonolingual(text, v.config().StrictLanguageCode)
		if len(errs) > 0 {
			v.errs = append(v.errs, errs...)
			return nil
		}
		tokens = []string{txt, lang}
	} else {
		tokens = splitComposite(text)
	}

	v.build(ctx, fields, tokens)
	if len(v.errs) > 0 {
		return nil
	}
	if len(v.subValues) == 0 {
		v.AddError(msg.New(msg.NoValues, v.propertyLabel()))
		return nil
	}
	return v.container(text)
}

// build walks the field list consuming tokens. A failing token is retried
// on the next field unless it sits in the first field or the remaining
// tokens exactly cover the remaining fields.
func (v *CompositeValue) build(ctx context.Context, fields []*property.Property, tokens []string) {
	var parts []item.SortKeyPart

	for i, p := range fields {
		if len(tokens) == 0 {
			break
		}
		tok := tokens[0]
		if isOmission(tok) {
			tokens = tokens[1:]
			continue
		}

		sub := v.env.factory.NewValueByProperty(ctx, p, tok, "", v.subject)
		switch {
		case sub.IsValid():
			v.subValues = append(v.subValues, FieldValue{Property: p, Value: sub})
			parts = append(parts, item.SortKeyPart{
				Key:   sub.Item().SortKey(),
				First: sub.Item().Kind() == item.KindTime,
			})
			tokens = tokens[1:]
		case i == 0 || len(tokens) == len(fields)-i:
			v.errs = append(v.errs, sub.Errors()...)
			tokens = tokens[1:]
		}
		if len(v.errs) > 0 {
			break
		}
	}

	v.sortKey = item.FoldSortKey(parts)
}

func (v *CompositeValue) containerSubject(raw string) item.EntityRef {
	if v.subject.IsZero() {
		return item.EntityRef{}
	}
	return v.subject.Root().WithSubobject(subobjectName(raw))
}

func (v *CompositeValue) container(raw string) item.Container {
	c := item.Container{Subject: v.containerSubject(raw)}
	for _, fv := range v.subValues {
		c.Fields = append(c.Fields, item.Field{Property: fv.Property.Key, Item: fv.Value.Item()})
	}
	return c
}

func (v *CompositeValue) loaded(it item.Item) {
	v.subValues = nil
	v.built = false
	v.sortKey = it.SortKey()
}

// values rebuilds sub-values of a loaded container on first access.
func (v *CompositeValue) values(ctx context.Context) []FieldValue {
	if v.built || v.it == nil {
		return v.subValues
	}
	v.built = true
	c := v.it.(item.Container)
	fields, err := v.Fields(ctx)
	if err != nil {
		v.logger(ctx).Warnw("field list unavailable", logger.FieldTypeID, v.typeID, logger.FieldError, err)
	}
	for _, f := range c.Fields {
		p := fieldByKey(fields, f.Property)
		if p == nil {
			if p, err = property.Lookup(ctx, v.env.Store, f.Property); err != nil {
				continue
			}
		}
		sub, err := v.env.factory.NewValueByItem(p, f.Item)
		if err != nil {
			v.logger(ctx).Debugw("dropping unreadable field", logger.FieldProperty, f.Property, logger.FieldError, err)
			continue
		}
		v.subValues = append(v.subValues, FieldValue{Property: p, Value: sub})
	}
	return v.subValues
}

func fieldByKey(fields []*property.Property, key string) *property.Property {
	for _, p := range fields {
		if p.Key == key {
			return p
		}
	}
	return nil
}

func (v *CompositeValue) propertyLabel() string {
	if v.prop == nil {
		return v.typeID
	}
	return v.prop.String()
}

// Values returns the populated fields in field order.
func (v *CompositeValue) Values(ctx context.Context) []FieldValue {
	return v.values(ctx)
}

// ValueAt returns the sub-value of the i-th declared field, nil when the
// field is empty or out of range.
func (v *CompositeValue) ValueAt(ctx context.Context, i int) Value {
	fields, err := v.Fields(ctx)
	if err != nil || i < 0 || i >= len(fields) {
		return nil
	}
	return v.ValueFor(ctx, fields[i])
}

// ValueFor returns the sub-value stored for p.
func (v *CompositeValue) ValueFor(ctx context.Context, p *property.Property) Value {
	for _, fv := range v.values(ctx) {
		if fv.Property.Key == p.Key {
			return fv.Value
		}
	}
	return nil
}

// ValueByLabel returns the sub-value of the field with the given label.
func (v *CompositeValue) ValueByLabel(ctx context.Context, label string) Value {
	want, err := property.Resolve(label)
	if err != nil {
		return nil
	}
	return v.ValueFor(ctx, want)
}

// SortKey orders composites: date fields first, then the rest in field
// order.
func (v *CompositeValue) SortKey() string { return v.sortKey }

// ContainerSubject is the synthetic sub-object the fields are stored under.
func (v *CompositeValue) ContainerSubject() item.EntityRef {
	c, _ := v.it.(item.Container)
	return c.Subject
}

// IsMonolingual reports whether v is language-tagged text.
func (v *CompositeValue) IsMonolingual() bool { return v.typeID == TypeMonolingual }

// TextAndLanguage returns the parts of a monolingual value.
func (v *CompositeValue) TextAndLanguage(ctx context.Context) (text, lang string) {
	for _, fv := range v.values(ctx) {
		switch fv.Property.Key {
		case property.TextKey:
			text = fv.Value.String()
		case property.LanguageCodeKey:
			lang = fv.Value.String()
		}
	}
	return text, lang
}

// String writes the fields separated by ';', empty fields as "?".
// Semicolons inside field text are escaped.
func (v *CompositeValue) String() string {
	if v.it == nil {
		return ""
	}
	ctx := context.Background()
	if v.IsMonolingual() {
		text, lang := v.TextAndLanguage(ctx)
		if lang == "" {
			return text
		}
		return text + "@" + lang
	}

	fields, _ := v.Fields(ctx)
	parts := make([]string, 0, len(fields))
	last := -1
	for i, p := range fields {
		sub := v.ValueFor(ctx, p)
		if sub == nil {
			parts = append(parts, "?")
			continue
		}
		parts = append(parts, strings.ReplaceAll(sub.String(), ";", `\;`))
		last = i
	}
	return strings.Join(parts[:last+1], ";")
}
