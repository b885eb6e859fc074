package dv

import (
	"context"
	"strings"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/parser"
)

// StringValue backs text, code and keyword types.
type StringValue struct {
	valueBase
}

func newString(b *valueBase) Value {
	v := &StringValue{valueBase: *b}
	v.self = v
	return v
}

func (v *StringValue) parseText(_ context.Context, text string) item.Item {
	if v.typeID == TypeKeyword {
		text = normalizeKeyword(text)
	}
	return item.Blob{Text: text}
}

func (v *StringValue) String() string {
	if b, ok := v.it.(item.Blob); ok {
		return b.Text
	}
	return ""
}

// IsCode reports whether the value is preformatted code.
func (v *StringValue) IsCode() bool { return v.typeID == TypeCode }

func normalizeKeyword(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// PatternValue names a published regular expression.
type PatternValue struct {
	valueBase
}

func newPattern(b *valueBase) Value {
	v := &PatternValue{valueBase: *b}
	v.self = v
	return v
}

func (v *PatternValue) parseText(_ context.Context, text string) item.Item {
	var catalog parser.PatternCatalog = parser.Patterns{}
	if v.env != nil && v.env.Patterns != nil {
		catalog = v.env.Patterns
	}
	if _, errs := parser.ResolvePattern(text, catalog, v.config().AllowsPattern); len(errs) > 0 {
		v.errs = append(v.errs, errs...)
		return nil
	}
	return item.Blob{Text: text}
}

func (v *PatternValue) String() string {
	if b, ok := v.it.(item.Blob); ok {
		return b.Text
	}
	return ""
}

// ImportValue is a term imported from a declared vocabulary, written
// "namespace:term".
type ImportValue struct {
	valueBase
	res parser.ImportResult
}

func newImport(b *valueBase) Value {
	v := &ImportValue{valueBase: *b}
	v.self = v
	return v
}

func (v *ImportValue) parseText(_ context.Context, text string) item.Item {
	res, errs := parser.ParseImport(text, v.vocabularies())
	if len(errs) > 0 {
		v.errs = append(v.errs, errs...)
		return nil
	}
	v.res = res
	return item.Blob{Text: res.Namespace + ":" + res.Term}
}

// loaded re-resolves the stored reference. A vocabulary that changed since
// the value was written leaves only namespace and term known.
func (v *ImportValue) loaded(it item.Item) {
	text := it.(item.Blob).Text
	if res, errs := parser.ParseImport(text, v.vocabularies()); len(errs) == 0 {
		v.res = res
		return
	}
	ns, term, _ := strings.Cut(text, ":")
	v.res = parser.ImportResult{Namespace: ns, Term: term}
}

func (v *ImportValue) vocabularies() parser.VocabularyLookup {
	if v.env != nil && v.env.Vocabularies != nil {
		return v.env.Vocabularies
	}
	return parser.Vocabularies{}
}

// Import returns the resolved reference.
func (v *ImportValue) Import() parser.ImportResult { return v.res }

// TermURI is the full URI of the imported term.
func (v *ImportValue) TermURI() string { return v.res.URI + v.res.Term }

func (v *ImportValue) String() string {
	if b, ok := v.it.(item.Blob); ok {
		return b.Text
	}
	return ""
}

// ErrorValue stands in for values of unknown type. It never parses.
type ErrorValue struct {
	valueBase
}

func newError(b *valueBase) Value {
	v := &ErrorValue{valueBase: *b}
	v.self = v
	return v
}

func (v *ErrorValue) acceptsEmpty() bool { return true }

func (v *ErrorValue) parseText(context.Context, string) item.Item {
	v.AddError(msg.New(msg.UnknownType, v.typeID))
	return nil
}

func (v *ErrorValue) String() string {
	if e, ok := v.it.(item.Error); ok {
		return e.Marker
	}
	return ""
}
