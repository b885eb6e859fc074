// Package property models the properties values are annotated with, how a
// user-supplied label resolves to one, and the store contract used to read
// their declarations.
package property

import (
	"fmt"
	"strings"

	"github.com/teranos/semval/dv/item"
)

// Meta properties that declare how another property behaves.
const (
	TypeMeta          = "_TYPE"
	ConversionMeta    = "_CONV"
	FieldListMeta     = "_LIST"
	AllowsValueMeta   = "_PVAL"
	AllowsPatternMeta = "_PVAP"
	UniquenessMeta    = "_PVUC"
	DisplayUnitsMeta  = "_PDU"
	ImportedFromMeta  = "_IMPO"
)

// Field properties of monolingual text.
const (
	TextKey         = "_TEXT"
	LanguageCodeKey = "_LCODE"
)

// DefaultTypeID is assumed for properties without a type declaration.
const DefaultTypeID = "_wpg"

// Property is a named, typed attribute.
type Property struct {
	// Key is the database key; predefined properties start with '_'.
	Key    string
	Label  string
	TypeID string
}

// New builds a user-defined property from its label.
func New(label, typeID string) *Property {
	return &Property{Key: item.DBKey(label), Label: strings.TrimSpace(label), TypeID: typeID}
}

// Entity is the page that carries the property's declarations.
func (p *Property) Entity() item.EntityRef {
	return item.EntityRef{DBKey: p.Key, Namespace: item.NSProperty}
}

// IsPredefined reports whether p is a built-in property.
func (p *Property) IsPredefined() bool {
	return strings.HasPrefix(p.Key, "_")
}

func (p *Property) String() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Key
}

var predefined = map[string]Property{
	TypeMeta:          {Key: TypeMeta, Label: "Has type", TypeID: "_txt"},
	ConversionMeta:    {Key: ConversionMeta, Label: "Corresponds to", TypeID: "_txt"},
	FieldListMeta:     {Key: FieldListMeta, Label: "Has fields", TypeID: "_txt"},
	AllowsValueMeta:   {Key: AllowsValueMeta, Label: "Allows value", TypeID: "_txt"},
	AllowsPatternMeta: {Key: AllowsPatternMeta, Label: "Allows pattern", TypeID: "__pvap"},
	UniquenessMeta:    {Key: UniquenessMeta, Label: "Has uniqueness constraint", TypeID: "_boo"},
	DisplayUnitsMeta:  {Key: DisplayUnitsMeta, Label: "Display units", TypeID: "_txt"},
	ImportedFromMeta:  {Key: ImportedFromMeta, Label: "Imported from", TypeID: "__imp"},
	TextKey:           {Key: TextKey, Label: "Text", TypeID: "_txt"},
	LanguageCodeKey:   {Key: LanguageCodeKey, Label: "Language code", TypeID: "_txt"},
}

// Predefined returns the built-in property stored under key.
func Predefined(key string) (*Property, bool) {
	p, ok := predefined[key]
	if !ok {
		return nil, false
	}
	return &p, true
}

// ResolutionError explains why a label does not name a property.
type ResolutionError struct {
	Label  string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve property %q: %s", e.Label, e.Reason)
}

const illegalTitleChars = "[]{}|#<>"

// Resolve turns a user-supplied label into a property. The label may carry a
// "Property:" prefix and may name a predefined property by label or key.
// The returned property has no type yet; see Lookup.
func Resolve(label string) (*Property, error) {
	raw := label
	label = strings.TrimSpace(label)
	if prefix, rest, ok := strings.Cut(label, ":"); ok && strings.EqualFold(strings.TrimSpace(prefix), "Property") {
		label = strings.TrimSpace(rest)
	}
	if label == "" {
		return nil, &ResolutionError{Label: raw, Reason: "empty label"}
	}
	if strings.ContainsAny(label, illegalTitleChars) {
		return nil, &ResolutionError{Label: raw, Reason: "label contains one of " + illegalTitleChars}
	}
	if p, ok := Predefined(label); ok {
		return p, nil
	}
	for _, p := range predefined {
		if strings.EqualFold(p.Label, label) {
			return &p, nil
		}
	}
	if strings.HasPrefix(label, "_") {
		return nil, &ResolutionError{Label: raw, Reason: "unknown predefined property"}
	}
	return New(label, ""), nil
}
