// Package parser holds the pure value parsers: functions over raw text and
// injected lookup data that never look at other values.
package parser

import (
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/errors"
)

// ImportResult is a resolved "namespace:term" reference.
type ImportResult struct {
	Namespace string
	Term      string
	URI       string
	Name      string
	// TermType is the declared kind of the term, e.g. "Type:Text" or
	// "Category". Empty when the declaration does not say.
	TermType string
}

// VocabularyLookup returns the declaration text of a vocabulary namespace.
//
// The first line is "uri|declarative name"; every following line declares
// one term as " term|Type:X" or " term".
type VocabularyLookup interface {
	Vocabulary(ns string) (string, bool)
}

// Vocabularies is an in-memory VocabularyLookup.
type Vocabularies map[string]string

func (v Vocabularies) Vocabulary(ns string) (string, bool) {
	text, ok := v[ns]
	return text, ok
}

// ParseImport resolves raw against lookup.
func ParseImport(raw string, lookup VocabularyLookup) (ImportResult, msg.List) {
	raw = strings.TrimSpace(raw)
	ns, term, ok := strings.Cut(raw, ":")
	ns, term = strings.TrimSpace(ns), strings.TrimSpace(term)
	if !ok || ns == "" || term == "" {
		return ImportResult{}, msg.List{msg.New(msg.ImportNoColon, raw)}
	}

	text, ok := lookup.Vocabulary(ns)
	if !ok {
		return ImportResult{}, msg.List{msg.New(msg.ImportUnknownNS, ns)}
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if strings.TrimSpace(lines[0]) == "" {
		return ImportResult{}, msg.List{msg.New(msg.ImportEmptyRef, ns)}
	}

	uri, name, _ := strings.Cut(lines[0], "|")
	res := ImportResult{
		Namespace: ns,
		Term:      term,
		URI:       strings.TrimSpace(uri),
		Name:      strings.TrimSpace(name),
	}
	for _, line := range lines[1:] {
		declared, termType, _ := strings.Cut(line, "|")
		if strings.TrimSpace(declared) == term {
			res.TermType = strings.TrimSpace(termType)
			return res, nil
		}
	}
	return ImportResult{}, msg.List{msg.New(msg.ImportUnknownTerm, ns, term)}
}

type vocabularyFile struct {
	URI   string            `yaml:"uri"`
	Name  string            `yaml:"name"`
	Terms map[string]string `yaml:"terms"`
}

// LoadVocabularies reads vocabularies from YAML of the form
//
//	foaf:
//	  uri: http://xmlns.com/foaf/0.1/
//	  name: Friend of a Friend
//	  terms:
//	    name: Type:Text
//	    knows: Type:Page
func LoadVocabularies(r io.Reader) (Vocabularies, error) {
	var files map[string]vocabularyFile
	if err := yaml.NewDecoder(r).Decode(&files); err != nil {
		if errors.Is(err, io.EOF) {
			return Vocabularies{}, nil
		}
		return nil, errors.Wrap(err, "decode vocabularies")
	}

	out := make(Vocabularies, len(files))
	for ns, f := range files {
		if f.URI == "" {
			return nil, errors.Newf("vocabulary %q has no uri", ns)
		}
		var b strings.Builder
		b.WriteString(f.URI + "|" + f.Name)
		terms := make([]string, 0, len(f.Terms))
		for term := range f.Terms {
			terms = append(terms, term)
		}
		slices.Sort(terms)
		for _, term := range terms {
			b.WriteString("\n " + term)
			if t := f.Terms[term]; t != "" {
				b.WriteString("|" + t)
			}
		}
		out[ns] = b.String()
	}
	return out, nil
}
