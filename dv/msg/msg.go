// Package msg defines the error list element carried by values and the
// boundary to message localization.
//
// Codes are opaque keys. Values never format prose themselves; callers hand
// an Error to a Localizer at the edge.
package msg

import "strings"

// Codes for input errors.
const (
	MissingValue        = "semval-missing-value"
	NoValues            = "semval-no-values"
	NotANumber          = "semval-not-a-number"
	UnitNotAllowed      = "semval-unit-not-allowed"
	NotABoolean         = "semval-not-a-boolean"
	InvalidURI          = "semval-invalid-uri"
	SchemeNotAllowed    = "semval-scheme-not-allowed"
	InvalidEmail        = "semval-invalid-email"
	InvalidTelephone    = "semval-invalid-telephone"
	InvalidTitle        = "semval-invalid-title"
	InvalidDate         = "semval-invalid-date"
	MissingLanguageCode = "semval-missing-language-code"
	InvalidLanguageCode = "semval-invalid-language-code"
	ImportNoColon       = "semval-import-no-colon"
	ImportUnknownNS     = "semval-import-unknown-namespace"
	ImportEmptyRef      = "semval-import-empty-reference"
	ImportUnknownTerm   = "semval-import-unknown-term"
	UnknownType         = "semval-unknown-type"
	TooManyValues       = "semval-too-many-values"
)

// Codes for declaration errors.
const (
	PatternDisabled   = "semval-pattern-disabled"
	PatternUnknown    = "semval-pattern-unknown"
	PatternInvalid    = "semval-pattern-invalid"
	AllowsListInvalid = "semval-allows-list-invalid"
	NoFieldList       = "semval-no-field-list"
)

// Codes for constraint violations and internal failures.
const (
	UniquenessViolation = "semval-uniqueness-violation"
	PatternMismatch     = "semval-pattern-mismatch"
	NotInAllowsList     = "semval-not-in-allows-list"
	InternalError       = "semval-internal-error"
)

// Error is one element of a value's error list.
type Error struct {
	Code string   `json:"code"`
	Args []string `json:"args,omitempty"`
}

// New builds an Error.
func New(code string, args ...string) Error {
	return Error{Code: code, Args: args}
}

// String is a locale-free rendering, "code: arg, arg".
func (e Error) String() string {
	if len(e.Args) == 0 {
		return e.Code
	}
	return e.Code + ": " + strings.Join(e.Args, ", ")
}

// List is an ordered error list.
type List []Error

// Has reports whether code occurs in l.
func (l List) Has(code string) bool {
	for _, e := range l {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the codes of l in order.
func (l List) Codes() []string {
	codes := make([]string, len(l))
	for i, e := range l {
		codes[i] = e.Code
	}
	return codes
}
