// Package item defines the Primitive Items: the small closed set of
// storage-level typed values a DataValue is reduced to.
//
// Items are immutable value types. Hash() is structural and is used as the
// fingerprint of a value for caching and uniqueness checks. Serialize() is
// lossless and Deserialize(kind, s) is its inverse, which is what storage
// adapters persist.
package item

import (
	"strconv"
	"strings"

	"github.com/teranos/semval/errors"
)

// Kind tags the variant of an Item.
type Kind int

const (
	KindBlob Kind = iota
	KindNumber
	KindBoolean
	KindURI
	KindEntity
	KindTime
	KindContainer
	KindError
)

var kindNames = map[Kind]string{
	KindBlob:      "blob",
	KindNumber:    "number",
	KindBoolean:   "boolean",
	KindURI:       "uri",
	KindEntity:    "entity",
	KindTime:      "time",
	KindContainer: "container",
	KindError:     "error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindError, errors.Wrapf(errors.ErrInvalidRequest, "unknown item kind %q", s)
}

// Item is a Primitive Item. The set of implementations is closed.
type Item interface {
	Kind() Kind
	// Hash is a structural fingerprint; equal items have equal hashes.
	Hash() string
	// SortKey orders items of the same kind.
	SortKey() string
	// Serialize is lossless; see Deserialize.
	Serialize() string

	sealed()
}

// Equal reports whether two items are structurally equal.
func Equal(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.Hash() == b.Hash()
}

// Deserialize rebuilds an item from its Serialize form.
func Deserialize(kind Kind, s string) (Item, error) {
	switch kind {
	case KindBlob:
		return Blob{Text: s}, nil
	case KindNumber:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidRequest, "number item %q", s)
		}
		return Number{Value: f}, nil
	case KindBoolean:
		switch s {
		case "t":
			return Boolean{Value: true}, nil
		case "f":
			return Boolean{Value: false}, nil
		}
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "boolean item %q", s)
	case KindURI:
		return deserializeURI(s)
	case KindEntity:
		return deserializeEntity(s)
	case KindTime:
		return deserializeTime(s)
	case KindContainer:
		return deserializeContainer(s)
	case KindError:
		return Error{Marker: s}, nil
	}
	return nil, errors.Wrapf(errors.ErrInvalidRequest, "cannot deserialize kind %s", kind)
}

// Blob is a text value.
type Blob struct {
	Text string
}

func (Blob) Kind() Kind { return KindBlob }

func (b Blob) Hash() string { return b.Text }

func (b Blob) SortKey() string { return b.Text }

func (b Blob) Serialize() string { return b.Text }

func (b Blob) String() string { return b.Text }

func (Blob) sealed() {}

// Number is a numeric value in canonical (main) units.
type Number struct {
	Value float64
}

func (Number) Kind() Kind { return KindNumber }

func (n Number) Hash() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

func (n Number) SortKey() string { return strconv.FormatFloat(n.Value, 'f', -1, 64) }

func (n Number) Serialize() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

func (Number) sealed() {}

// Boolean is a truth value.
type Boolean struct {
	Value bool
}

func (Boolean) Kind() Kind { return KindBoolean }

func (b Boolean) Hash() string { return b.Serialize() }

func (b Boolean) SortKey() string {
	if b.Value {
		return "1"
	}
	return "0"
}

func (b Boolean) Serialize() string {
	if b.Value {
		return "t"
	}
	return "f"
}

func (Boolean) sealed() {}

// Error marks a value that could not be built. It carries no data beyond a
// marker string.
type Error struct {
	Marker string
}

func (Error) Kind() Kind { return KindError }

func (e Error) Hash() string { return e.Marker }

func (e Error) SortKey() string { return e.Marker }

func (e Error) Serialize() string { return e.Marker }

func (Error) sealed() {}

// escapeField protects the field separator used by composite serializations.
func escapeField(s string, sep byte) string {
	if !strings.ContainsRune(s, rune(sep)) && !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == sep || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// splitEscaped is the inverse of joining escapeField'ed parts with sep.
func splitEscaped(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case s[i] == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	return append(parts, cur.String())
}
