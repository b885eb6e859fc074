package item

import (
	"encoding/json"
	"strings"

	"github.com/teranos/semval/errors"
)

// Field is one (property, item) pair of a Container.
type Field struct {
	Property string
	Item     Item
}

// Container is the item behind multi-field values: a synthetic subject plus
// ordered field items.
type Container struct {
	Subject EntityRef
	Fields  []Field
}

func (Container) Kind() Kind { return KindContainer }

// Hash covers field content only. Two containers holding the same fields
// under different synthetic subjects are the same value.
func (c Container) Hash() string {
	var b strings.Builder
	for i, f := range c.Fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(escapeField(f.Property, ';'))
		b.WriteByte('=')
		if f.Item != nil {
			b.WriteString(f.Item.Kind().String())
			b.WriteByte(':')
			b.WriteString(escapeField(f.Item.Hash(), ';'))
		}
	}
	return b.String()
}

func (c Container) SortKey() string {
	keys := make([]SortKeyPart, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f.Item == nil {
			continue
		}
		keys = append(keys, SortKeyPart{Key: f.Item.SortKey(), First: f.Item.Kind() == KindTime})
	}
	return FoldSortKey(keys)
}

// Get returns the item stored for property, if any.
func (c Container) Get(property string) (Item, bool) {
	for _, f := range c.Fields {
		if f.Property == property {
			return f.Item, f.Item != nil
		}
	}
	return nil, false
}

type wireField struct {
	Property string `json:"p"`
	Kind     string `json:"k"`
	Value    string `json:"v"`
}

type wireContainer struct {
	Subject string      `json:"s"`
	Fields  []wireField `json:"f"`
}

func (c Container) Serialize() string {
	w := wireContainer{Subject: c.Subject.Serialize(), Fields: make([]wireField, 0, len(c.Fields))}
	for _, f := range c.Fields {
		if f.Item == nil {
			continue
		}
		w.Fields = append(w.Fields, wireField{Property: f.Property, Kind: f.Item.Kind().String(), Value: f.Item.Serialize()})
	}
	data, err := json.Marshal(w)
	if err != nil {
		// only strings are marshalled
		panic(errors.AssertionFailedf("container serialization: %v", err))
	}
	return string(data)
}

func (Container) sealed() {}

func deserializeContainer(s string) (Item, error) {
	var w wireContainer
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidRequest, "container item: "+err.Error())
	}
	subject, err := deserializeEntity(w.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "container subject")
	}
	c := Container{Subject: subject.(EntityRef)}
	for _, wf := range w.Fields {
		kind, err := ParseKind(wf.Kind)
		if err != nil {
			return nil, err
		}
		it, err := Deserialize(kind, wf.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "container field %s", wf.Property)
		}
		c.Fields = append(c.Fields, Field{Property: wf.Property, Item: it})
	}
	return c, nil
}

// SortKeyPart is one field contribution to a composite sort key. First parts
// go in front of everything folded so far.
type SortKeyPart struct {
	Key   string
	First bool
}

// FoldSortKey joins field sort keys with ';'.
func FoldSortKey(parts []SortKeyPart) string {
	key := ""
	for i, p := range parts {
		switch {
		case i == 0:
			key = p.Key
		case p.First:
			key = p.Key + ";" + key
		default:
			key = key + ";" + p.Key
		}
	}
	return key
}
