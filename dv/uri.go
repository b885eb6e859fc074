package dv

import (
	"context"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
)

var telephoneRe = regexp.MustCompile(`^\+?[0-9]{3,}$`)

// URIValue backs URL, email and telephone types.
type URIValue struct {
	valueBase
}

func newURI(b *valueBase) Value {
	v := &URIValue{valueBase: *b}
	v.self = v
	return v
}

func (v *URIValue) parseText(_ context.Context, text string) item.Item {
	switch v.typeID {
	case TypeEmail:
		return v.parseEmail(text)
	case TypeTelephone:
		return v.parseTelephone(text)
	}
	return v.parseURL(text)
}

func (v *URIValue) parseURL(text string) item.Item {
	u, err := item.ParseURI(text)
	if err != nil || (u.Hierpart == "" && u.Query == "") {
		v.AddError(msg.New(msg.InvalidURI, text))
		return nil
	}
	if !slices.Contains(v.config().URISchemes, u.Scheme) {
		v.AddError(msg.New(msg.SchemeNotAllowed, u.Scheme))
		return nil
	}
	if _, err := url.Parse(u.String()); err != nil || strings.ContainsAny(text, " \t<>\"") {
		v.AddError(msg.New(msg.InvalidURI, text))
		return nil
	}
	return u
}

func (v *URIValue) parseEmail(text string) item.Item {
	addr, err := mail.ParseAddress(strings.TrimPrefix(text, "mailto:"))
	if err != nil || addr.Name != "" {
		v.AddError(msg.New(msg.InvalidEmail, text))
		return nil
	}
	return item.URI{Scheme: "mailto", Hierpart: addr.Address}
}

func (v *URIValue) parseTelephone(text string) item.Item {
	n := strings.TrimPrefix(text, "tel:")
	n = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')', '/':
			return -1
		}
		return r
	}, n)
	if strings.HasPrefix(n, "00") {
		n = "+" + n[2:]
	}
	if !telephoneRe.MatchString(n) {
		v.AddError(msg.New(msg.InvalidTelephone, text))
		return nil
	}
	return item.URI{Scheme: "tel", Hierpart: n}
}

// URI is the stored identifier.
func (v *URIValue) URI() item.URI {
	u, _ := v.it.(item.URI)
	return u
}

// String is the URI for URLs, the bare address for email and the number for
// telephone values.
func (v *URIValue) String() string {
	if v.it == nil {
		return ""
	}
	u := v.URI()
	switch v.typeID {
	case TypeEmail, TypeTelephone:
		return u.Hierpart
	}
	return u.String()
}
