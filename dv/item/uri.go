package item

import (
	"strings"

	"github.com/teranos/semval/errors"
)

// URI is a split resource identifier. Hierpart is everything between the
// scheme separator and the query.
type URI struct {
	Scheme   string
	Hierpart string
	Query    string
	Fragment string
}

func (URI) Kind() Kind { return KindURI }

func (u URI) Hash() string { return u.String() }

func (u URI) SortKey() string { return u.String() }

func (u URI) Serialize() string { return u.String() }

// String reassembles the identifier. Schemes without an authority part
// (mailto, tel, urn) are written with a bare colon.
func (u URI) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteByte(':')
	if !opaqueScheme(u.Scheme) {
		b.WriteString("//")
	}
	b.WriteString(u.Hierpart)
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

func (URI) sealed() {}

// ParseURI splits a serialized URI into its parts. The scheme is required.
func ParseURI(s string) (URI, error) {
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return URI{}, errors.Wrapf(errors.ErrInvalidRequest, "uri %q has no scheme", s)
	}
	u := URI{Scheme: strings.ToLower(scheme)}
	rest = strings.TrimPrefix(rest, "//")
	if before, frag, found := strings.Cut(rest, "#"); found {
		rest, u.Fragment = before, frag
	}
	if before, query, found := strings.Cut(rest, "?"); found {
		rest, u.Query = before, query
	}
	u.Hierpart = rest
	return u, nil
}

func deserializeURI(s string) (Item, error) {
	u, err := ParseURI(s)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func opaqueScheme(scheme string) bool {
	switch scheme {
	case "mailto", "tel", "urn", "news", "sip":
		return true
	}
	return false
}
