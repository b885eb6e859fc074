package dv

import (
	"context"
	"strings"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
)

const illegalTitleChars = "[]{}|<>"

// PageValue points at an entity.
type PageValue struct {
	valueBase
}

func newPage(b *valueBase) Value {
	v := &PageValue{valueBase: *b}
	v.self = v
	return v
}

// parseText accepts "[Namespace:]Title[#subobject]".
func (v *PageValue) parseText(_ context.Context, text string) item.Item {
	title, sub, _ := strings.Cut(strings.Trim(text, "[]"), "#")
	if strings.ContainsAny(title, illegalTitleChars) || strings.ContainsAny(sub, illegalTitleChars) {
		v.AddError(msg.New(msg.InvalidTitle, text))
		return nil
	}

	ns := item.NSMain
	if prefix, rest, ok := strings.Cut(title, ":"); ok {
		if n, known := item.NamespaceByName(strings.TrimSpace(prefix)); known {
			ns, title = n, rest
		}
	}
	ref := item.NewEntityRef(title, ns)
	if ref.DBKey == "" {
		v.AddError(msg.New(msg.InvalidTitle, text))
		return nil
	}
	ref.Subobject = strings.TrimSpace(sub)
	return ref
}

// Entity is the referenced entity.
func (v *PageValue) Entity() item.EntityRef {
	e, _ := v.it.(item.EntityRef)
	return e
}

func (v *PageValue) String() string {
	if v.it == nil {
		return ""
	}
	return v.Entity().String()
}
