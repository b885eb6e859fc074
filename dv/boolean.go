package dv

import (
	"context"
	"slices"
	"strings"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
)

var (
	trueWords  = []string{"true", "yes", "1", "t", "y"}
	falseWords = []string{"false", "no", "0", "f", "n"}
)

// BooleanValue is a yes/no value.
type BooleanValue struct {
	valueBase
}

func newBoolean(b *valueBase) Value {
	v := &BooleanValue{valueBase: *b}
	v.self = v
	return v
}

func (v *BooleanValue) parseText(_ context.Context, text string) item.Item {
	word := strings.ToLower(text)
	cfg := v.config()
	switch {
	case slices.Contains(trueWords, word) || containsFold(cfg.TrueWords, word):
		return item.Boolean{Value: true}
	case slices.Contains(falseWords, word) || containsFold(cfg.FalseWords, word):
		return item.Boolean{Value: false}
	}
	v.AddError(msg.New(msg.NotABoolean, text))
	return nil
}

// Bool is the truth value.
func (v *BooleanValue) Bool() bool {
	b, _ := v.it.(item.Boolean)
	return b.Value
}

func (v *BooleanValue) String() string {
	if v.it == nil {
		return ""
	}
	if v.Bool() {
		return "true"
	}
	return "false"
}

func containsFold(words []string, w string) bool {
	return slices.ContainsFunc(words, func(s string) bool { return strings.EqualFold(s, w) })
}
