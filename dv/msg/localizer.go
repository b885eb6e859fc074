package msg

import (
	"html"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Mode selects how message arguments are embedded.
type Mode int

const (
	// Plain leaves arguments as they are.
	Plain Mode = iota
	// Escaped HTML-escapes arguments for rich output.
	Escaped
)

// Localizer turns a message key and its arguments into text.
type Localizer interface {
	Message(key string, args []string, mode Mode, lang string) string
}

var english = map[string]string{
	MissingValue:        "No value was supplied.",
	NoValues:            "No values were supplied for any of the fields of %[1]s.",
	NotANumber:          "%[1]q is not a number.",
	UnitNotAllowed:      "The unit %[1]q is not declared for this property.",
	NotABoolean:         "%[1]q is not a yes/no value.",
	InvalidURI:          "%[1]q is not a valid URL.",
	SchemeNotAllowed:    "The URL scheme %[1]q is not allowed.",
	InvalidEmail:        "%[1]q is not a valid email address.",
	InvalidTelephone:    "%[1]q is not a valid telephone number.",
	InvalidTitle:        "%[1]q cannot be used as a page name.",
	InvalidDate:         "%[1]q is not a date.",
	MissingLanguageCode: "%[1]q has no language code.",
	InvalidLanguageCode: "%[1]q is not a valid language code.",
	ImportNoColon:       "%[1]q does not have the form namespace:term.",
	ImportUnknownNS:     "The vocabulary %[1]q is not declared.",
	ImportEmptyRef:      "The vocabulary %[1]q has no declaration.",
	ImportUnknownTerm:   "The term %[2]q is not part of vocabulary %[1]q.",
	UnknownType:         "The type %[1]q is not known.",
	TooManyValues:       "%[1]q has more values than fields.",
	PatternDisabled:     "Allowed patterns are disabled.",
	PatternUnknown:      "The pattern reference %[1]q is not declared.",
	PatternInvalid:      "The pattern %[1]q is not a valid regular expression.",
	AllowsListInvalid:   "The allowed values of %[1]q are not a list of literals.",
	NoFieldList:         "The property %[1]q declares no fields.",
	UniquenessViolation: "%[1]q can only be assigned once; it is already used by %[2]s.",
	PatternMismatch:     "%[1]q does not match the pattern %[2]q.",
	NotInAllowsList:     "%[1]q is not in the list of allowed values: %[2]s.",
	InternalError:       "An internal error occurred: %[1]s.",
}

// Catalog is a Localizer backed by an x/text message catalog.
type Catalog struct {
	builder  *catalog.Builder
	fallback language.Tag
}

// NewCatalog returns a Localizer preloaded with English messages.
func NewCatalog() *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range english {
		_ = b.SetString(language.English, key, text)
	}
	return &Catalog{builder: b, fallback: language.English}
}

// Set adds or replaces a message for lang.
func (c *Catalog) Set(lang language.Tag, key, text string) error {
	return c.builder.SetString(lang, key, text)
}

func (c *Catalog) Message(key string, args []string, mode Mode, lang string) string {
	tag := c.fallback
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	vals := make([]interface{}, len(args))
	for i, a := range args {
		if mode == Escaped {
			a = html.EscapeString(a)
		}
		vals[i] = a
	}
	p := message.NewPrinter(tag, message.Catalog(c.builder))
	return p.Sprintf(key, vals...)
}

// Render localizes every error of l.
func Render(l Localizer, errs List, mode Mode, lang string) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = l.Message(e.Code, e.Args, mode, lang)
	}
	return out
}
