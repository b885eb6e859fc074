package parser

import (
	"regexp"
	"strings"

	"github.com/teranos/semval/dv/msg"
)

// PatternCatalog returns the published regular expression for a reference.
type PatternCatalog interface {
	Pattern(ref string) (string, bool)
}

// Patterns is an in-memory PatternCatalog.
type Patterns map[string]string

func (p Patterns) Pattern(ref string) (string, bool) {
	expr, ok := p[ref]
	return expr, ok
}

// ParsePatternCatalog reads "name|regex" lines. Lines without a separator
// and blank names are ignored; later lines win.
func ParsePatternCatalog(text string) Patterns {
	out := make(Patterns)
	for _, line := range strings.Split(text, "\n") {
		name, expr, ok := strings.Cut(line, "|")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		out[name] = strings.TrimSpace(expr)
	}
	return out
}

// ResolvePattern compiles the expression published under ref. The
// expression must match the whole value.
func ResolvePattern(ref string, catalog PatternCatalog, enabled bool) (*regexp.Regexp, msg.List) {
	if !enabled {
		return nil, msg.List{msg.New(msg.PatternDisabled)}
	}
	ref = strings.TrimSpace(ref)
	expr, ok := catalog.Pattern(ref)
	if !ok || expr == "" {
		return nil, msg.List{msg.New(msg.PatternUnknown, ref)}
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, msg.List{msg.New(msg.PatternInvalid, ref)}
	}
	return re, nil
}
