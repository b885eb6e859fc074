package item

import (
	"strconv"
	"strings"

	"github.com/teranos/semval/errors"
)

// Namespace numbers understood by EntityRef.
const (
	NSMain     = 0
	NSFile     = 6
	NSTemplate = 10
	NSHelp     = 12
	NSCategory = 14
	NSProperty = 102
)

var namespaceNames = map[int]string{
	NSMain:     "",
	NSFile:     "File",
	NSTemplate: "Template",
	NSHelp:     "Help",
	NSCategory: "Category",
	NSProperty: "Property",
}

// NamespaceByName returns the namespace number for a prefix such as
// "Property". Matching is case-insensitive.
func NamespaceByName(name string) (int, bool) {
	for ns, n := range namespaceNames {
		if n != "" && strings.EqualFold(n, name) {
			return ns, true
		}
	}
	return 0, false
}

// NamespaceName is the display prefix of ns, empty for the main namespace.
func NamespaceName(ns int) string {
	return namespaceNames[ns]
}

// EntityRef points at an entity: a page, or a named sub-object of one.
type EntityRef struct {
	DBKey     string
	Namespace int
	Interwiki string
	Subobject string
}

// NewEntityRef builds a reference from a human title, normalizing it to a
// database key.
func NewEntityRef(title string, ns int) EntityRef {
	return EntityRef{DBKey: DBKey(title), Namespace: ns}
}

// DBKey normalizes a title: trimmed, spaces to underscores, first letter
// upper-cased.
func DBKey(title string) string {
	title = strings.Join(strings.Fields(strings.ReplaceAll(title, "_", " ")), "_")
	if title == "" {
		return ""
	}
	r := []rune(title)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

func (EntityRef) Kind() Kind { return KindEntity }

func (e EntityRef) Hash() string { return e.Serialize() }

func (e EntityRef) SortKey() string { return strings.ReplaceAll(e.DBKey, "_", " ") }

// Serialize writes "dbkey#ns#interwiki#subobject" with '#' escaped in parts.
func (e EntityRef) Serialize() string {
	return strings.Join([]string{
		escapeField(e.DBKey, '#'),
		strconv.Itoa(e.Namespace),
		escapeField(e.Interwiki, '#'),
		escapeField(e.Subobject, '#'),
	}, "#")
}

func (EntityRef) sealed() {}

// Root drops the sub-object part.
func (e EntityRef) Root() EntityRef {
	e.Subobject = ""
	return e
}

// WithSubobject returns a reference to the named sub-object of e's root.
func (e EntityRef) WithSubobject(name string) EntityRef {
	e.Subobject = name
	return e
}

// IsZero reports whether the reference points nowhere.
func (e EntityRef) IsZero() bool {
	return e.DBKey == "" && e.Subobject == ""
}

// Title is the human-readable form, including namespace prefix.
func (e EntityRef) Title() string {
	t := strings.ReplaceAll(e.DBKey, "_", " ")
	if prefix := NamespaceName(e.Namespace); prefix != "" {
		t = prefix + ":" + t
	}
	if e.Interwiki != "" {
		t = e.Interwiki + ":" + t
	}
	return t
}

// String is Title plus "#subobject" when present.
func (e EntityRef) String() string {
	if e.Subobject == "" {
		return e.Title()
	}
	return e.Title() + "#" + e.Subobject
}

func deserializeEntity(s string) (Item, error) {
	parts := splitEscaped(s, '#')
	if len(parts) != 4 {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "entity item %q: want 4 parts, got %d", s, len(parts))
	}
	ns, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "entity item %q: namespace", s)
	}
	return EntityRef{DBKey: parts[0], Namespace: ns, Interwiki: parts[2], Subobject: parts[3]}, nil
}
