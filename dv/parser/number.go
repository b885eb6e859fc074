package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// NumberLiteral is a lexed number with its optional unit.
type NumberLiteral struct {
	Value float64
	// Unit is the raw unit text, "" when none was given.
	Unit string
	// UnitPrefix is set when the unit preceded the number.
	UnitPrefix bool
}

var numberRe = regexp.MustCompile(`[+-]?\s*(?:(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber lexes raw as a number optionally preceded or followed by a
// unit. Thousands separators are ',' and the decimal mark is '.'.
func ParseNumber(raw string) (NumberLiteral, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "−", "-"))
	loc := numberRe.FindStringIndex(raw)
	if loc == nil {
		return NumberLiteral{}, false
	}

	before := strings.TrimSpace(raw[:loc[0]])
	after := strings.TrimSpace(raw[loc[1]:])
	if before != "" && after != "" {
		return NumberLiteral{}, false
	}

	digits := strings.ReplaceAll(raw[loc[0]:loc[1]], ",", "")
	digits = strings.Join(strings.Fields(digits), "")
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return NumberLiteral{}, false
	}

	lit := NumberLiteral{Value: v, Unit: after}
	if before != "" {
		lit.Unit, lit.UnitPrefix = before, true
	}
	if lit.Unit != "" && !validUnitStart(lit.Unit, lit.UnitPrefix) {
		return NumberLiteral{}, false
	}
	return lit, true
}

// validUnitStart rejects leftovers of a malformed number such as "1,5" or
// "1.2.3".
func validUnitStart(unit string, prefix bool) bool {
	r := []rune(unit)
	edge := r[0]
	if prefix {
		edge = r[len(r)-1]
	}
	return !unicode.IsDigit(edge) && edge != ',' && edge != '.'
}

// NormalizeUnit collapses inner whitespace and underscores to single spaces.
func NormalizeUnit(unit string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(unit, "_", " ")), " ")
}
