package dv

import (
	"slices"
	"strings"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
)

// Type ids of the built-in types.
const (
	TypeText        = "_txt"
	TypeCode        = "_cod"
	TypeKeyword     = "_keyw"
	TypeImport      = "__imp"
	TypePattern     = "__pvap"
	TypeNumber      = "_num"
	TypeQuantity    = "_qty"
	TypeTemperature = "_tem"
	TypeBoolean     = "_boo"
	TypeURL         = "_uri"
	TypeEmail       = "_ema"
	TypeTelephone   = "_tel"
	TypePage        = "_wpg"
	TypeDate        = "_dat"
	TypeRecord      = "_rec"
	TypeReference   = "_ref_rec"
	TypeMonolingual = "_mlt_rec"
	TypeError       = "__err"
)

// TypeEntry describes one registered type.
type TypeEntry struct {
	ID         string
	Label      string
	Aliases    []string
	Kind       item.Kind
	MultiField bool

	build func(b *valueBase) Value
}

// Registry maps type ids to their implementation. It is read-only after
// NewRegistry returns.
type Registry struct {
	entries     map[string]*TypeEntry
	order       []string
	monolingual []*property.Property
}

// NewRegistry builds the registry of built-in types.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*TypeEntry)}

	r.add(TypeText, "Text", item.KindBlob, false, newString, "String")
	r.add(TypeCode, "Code", item.KindBlob, false, newString)
	r.add(TypeKeyword, "Keyword", item.KindBlob, false, newString)
	r.add(TypeImport, "Import", item.KindBlob, false, newImport)
	r.add(TypePattern, "Allows pattern", item.KindBlob, false, newPattern)
	r.add(TypeNumber, "Number", item.KindNumber, false, newNumber)
	r.add(TypeQuantity, "Quantity", item.KindNumber, false, newNumber)
	r.add(TypeTemperature, "Temperature", item.KindNumber, false, newNumber)
	r.add(TypeBoolean, "Boolean", item.KindBoolean, false, newBoolean)
	r.add(TypeURL, "URL", item.KindURI, false, newURI, "URI")
	r.add(TypeEmail, "Email", item.KindURI, false, newURI)
	r.add(TypeTelephone, "Telephone number", item.KindURI, false, newURI)
	r.add(TypePage, "Page", item.KindEntity, false, newPage)
	r.add(TypeDate, "Date", item.KindTime, false, newTime)
	r.add(TypeRecord, "Record", item.KindContainer, true, newComposite)
	r.add(TypeReference, "Reference", item.KindContainer, true, newComposite)
	r.add(TypeMonolingual, "Monolingual text", item.KindContainer, true, newComposite)
	r.add(TypeError, "Error", item.KindError, false, newError)

	for _, key := range []string{property.TextKey, property.LanguageCodeKey} {
		p, _ := property.Predefined(key)
		r.monolingual = append(r.monolingual, p)
	}
	return r
}

func (r *Registry) add(id, label string, kind item.Kind, multi bool, build func(*valueBase) Value, aliases ...string) {
	r.entries[id] = &TypeEntry{
		ID:         id,
		Label:      label,
		Aliases:    aliases,
		Kind:       kind,
		MultiField: multi,
		build:      build,
	}
	r.order = append(r.order, id)
}

// Lookup is total: unknown ids resolve to the error type.
func (r *Registry) Lookup(id string) *TypeEntry {
	if e, ok := r.entries[id]; ok {
		return e
	}
	return r.entries[TypeError]
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// ByLabel finds a type by label or alias, case-insensitively. A "Type:"
// prefix is accepted.
func (r *Registry) ByLabel(label string) (*TypeEntry, bool) {
	label = strings.TrimSpace(label)
	if prefix, rest, ok := strings.Cut(label, ":"); ok && strings.EqualFold(prefix, "Type") {
		label = strings.TrimSpace(rest)
	}
	for _, id := range r.order {
		e := r.entries[id]
		if strings.EqualFold(e.Label, label) || slices.ContainsFunc(e.Aliases, func(a string) bool {
			return strings.EqualFold(a, label)
		}) {
			return e, true
		}
	}
	return nil, false
}

// IDs lists the registered ids in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// MonolingualFields returns the field properties of monolingual text:
// text first, then language code.
func (r *Registry) MonolingualFields() []*property.Property {
	return slices.Clone(r.monolingual)
}
