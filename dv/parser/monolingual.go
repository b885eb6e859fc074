package parser

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/teranos/semval/dv/msg"
)

// ParseMonolingual splits "text@lang" on the last '@'. A missing language
// code is legal unless strict is set; in strict mode the code must also be
// a well-formed BCP 47 tag. Codes are returned lower-cased.
func ParseMonolingual(raw string, strict bool) (text, lang string, errs msg.List) {
	raw = strings.TrimSpace(raw)
	text = raw
	if i := strings.LastIndex(raw, "@"); i >= 0 {
		text = strings.TrimSpace(raw[:i])
		lang = strings.ToLower(strings.TrimSpace(raw[i+1:]))
	}

	if text == "" {
		errs = append(errs, msg.New(msg.MissingValue))
	}
	if lang == "" {
		if strict {
			errs = append(errs, msg.New(msg.MissingLanguageCode, raw))
		}
		return text, lang, errs
	}
	if strict {
		if _, err := language.Parse(lang); err != nil {
			errs = append(errs, msg.New(msg.InvalidLanguageCode, lang))
		}
	}
	return text, lang, errs
}
