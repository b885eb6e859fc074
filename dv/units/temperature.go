package units

import "github.com/teranos/semval/dv/parser"

type tempUnit struct {
	id      string
	factor  float64
	offset  float64
	aliases []string
}

// value_in_unit = main*factor + offset
var temperatureUnits = []tempUnit{
	{id: "K", factor: 1, aliases: []string{"K", "Kelvin", "kelvin", "kelvins"}},
	{id: "°C", factor: 1, offset: -273.15, aliases: []string{"°C", "ºC", "C", "Celsius", "celsius"}},
	{id: "°F", factor: 1.8, offset: -459.67, aliases: []string{"°F", "ºF", "F", "Fahrenheit", "fahrenheit"}},
	{id: "°R", factor: 1.8, aliases: []string{"°R", "ºR", "R", "Rankine", "rankine"}},
}

// TemperatureScale converts between Kelvin and the other fixed temperature
// scales. Unlike Table it needs offsets, so it is not declared per property.
type TemperatureScale struct{}

func (TemperatureScale) unit(alias string) (tempUnit, bool) {
	norm := parser.NormalizeUnit(alias)
	if norm == "" {
		return temperatureUnits[0], true
	}
	for _, u := range temperatureUnits {
		for _, a := range u.aliases {
			if a == alias || a == norm {
				return u, true
			}
		}
	}
	return tempUnit{}, false
}

func (s TemperatureScale) Canonical(alias string) (string, bool) {
	u, ok := s.unit(alias)
	return u.id, ok
}

func (s TemperatureScale) ToMain(v float64, unit string) (float64, bool) {
	u, ok := s.unit(unit)
	if !ok {
		return 0, false
	}
	return (v - u.offset) / u.factor, true
}

func (s TemperatureScale) FromMain(v float64, unit string) (float64, bool) {
	u, ok := s.unit(unit)
	if !ok {
		return 0, false
	}
	return v*u.factor + u.offset, true
}

func (TemperatureScale) MainUnit() string { return "K" }

func (TemperatureScale) Units() []string {
	out := make([]string, len(temperatureUnits))
	for i, u := range temperatureUnits {
		out[i] = u.id
	}
	return out
}

func (TemperatureScale) IsPrefix(string) bool { return false }
