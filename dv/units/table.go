// Package units builds and applies unit conversion tables for numeric
// values.
//
// A property declares conversion lines of the form
//
//	<factor> <alias>[, <alias> ...]
//
// meaning one main unit equals factor of the line's unit. The first alias
// of a line is its canonical unit id.
package units

import (
	"slices"
	"strings"

	"github.com/teranos/semval/dv/parser"
)

// Converter maps numbers between a unit and the main unit.
type Converter interface {
	// Canonical resolves an alias to a unit id.
	Canonical(alias string) (string, bool)
	// ToMain converts v given in unit to the main unit.
	ToMain(v float64, unit string) (float64, bool)
	// FromMain converts v given in the main unit to unit.
	FromMain(v float64, unit string) (float64, bool)
	MainUnit() string
	// Units lists canonical unit ids in display order.
	Units() []string
	IsPrefix(unit string) bool
}

// Factor is one row of a conversion table.
type Factor struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// Table is the conversion table of one property.
type Table struct {
	// UnitIDs resolves raw and normalized aliases to canonical unit ids.
	UnitIDs map[string]string `json:"ids"`
	// Factors is ordered: main unit first, "" last.
	Factors []Factor        `json:"factors"`
	Main    string          `json:"main"`
	Prefix  map[string]bool `json:"prefix,omitempty"`
}

// BuildTable applies the conversion lines in order. Lines that do not
// parse, carry no unit or a zero factor are returned as skipped.
func BuildTable(lines []string) (*Table, []string) {
	t := &Table{UnitIDs: make(map[string]string), Prefix: make(map[string]bool)}
	var skipped []string
	hasMain := false

	for _, line := range lines {
		lit, ok := parser.ParseNumber(line)
		if !ok || lit.Value == 0 || lit.Unit == "" {
			skipped = append(skipped, line)
			continue
		}
		var aliases []string
		for _, a := range strings.Split(lit.Unit, ",") {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		if len(aliases) == 0 {
			skipped = append(skipped, line)
			continue
		}

		unit := aliases[0]
		if !t.hasFactor(unit) {
			row := Factor{Unit: unit, Value: lit.Value}
			if lit.Value == 1 && !hasMain {
				t.Factors = slices.Insert(t.Factors, 0, row)
				t.Main = unit
				hasMain = true
			} else {
				t.Factors = append(t.Factors, row)
			}
		}
		for _, a := range aliases {
			t.UnitIDs[a] = unit
			t.UnitIDs[parser.NormalizeUnit(a)] = unit
			t.Prefix[a] = lit.UnitPrefix
		}
	}

	if !hasMain {
		t.Main = ""
	}
	t.UnitIDs[""] = ""
	t.Factors = append(t.Factors, Factor{Unit: "", Value: 1})
	return t, skipped
}

func (t *Table) hasFactor(unit string) bool {
	_, ok := t.factor(unit)
	return ok
}

func (t *Table) factor(unit string) (float64, bool) {
	for i := len(t.Factors) - 1; i >= 0; i-- {
		if t.Factors[i].Unit == unit {
			return t.Factors[i].Value, true
		}
	}
	return 0, false
}

// Factor returns the factor of a canonical unit. The last row for a unit
// wins, so "" always has factor 1.
func (t *Table) Factor(unit string) (float64, bool) {
	return t.factor(unit)
}

// HasUnits reports whether any unit besides "" was declared.
func (t *Table) HasUnits() bool {
	return len(t.Factors) > 1
}

func (t *Table) Canonical(alias string) (string, bool) {
	if id, ok := t.UnitIDs[alias]; ok {
		return id, true
	}
	id, ok := t.UnitIDs[parser.NormalizeUnit(alias)]
	return id, ok
}

func (t *Table) ToMain(v float64, unit string) (float64, bool) {
	id, ok := t.Canonical(unit)
	if !ok {
		return 0, false
	}
	f, ok := t.factor(id)
	if !ok {
		return 0, false
	}
	return v / f, true
}

func (t *Table) FromMain(v float64, unit string) (float64, bool) {
	id, ok := t.Canonical(unit)
	if !ok {
		return 0, false
	}
	f, ok := t.factor(id)
	if !ok {
		return 0, false
	}
	return v * f, true
}

func (t *Table) MainUnit() string { return t.Main }

// Units returns the declared units in table order, without "" unless it is
// the main unit.
func (t *Table) Units() []string {
	out := make([]string, 0, len(t.Factors))
	for _, f := range t.Factors {
		if (f.Unit != "" || t.Main == "") && !slices.Contains(out, f.Unit) {
			out = append(out, f.Unit)
		}
	}
	return out
}

func (t *Table) IsPrefix(unit string) bool { return t.Prefix[unit] }

// DisplayUnits resolves the declared display units against conv, keeping
// their order. Unknown units are dropped; when none remain every unit of
// conv is returned.
func DisplayUnits(conv Converter, declared []string) []string {
	var out []string
	for _, d := range declared {
		for _, part := range strings.Split(d, ",") {
			id, ok := conv.Canonical(strings.TrimSpace(part))
			if ok && strings.TrimSpace(part) != "" && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	if len(out) == 0 {
		return conv.Units()
	}
	return out
}
