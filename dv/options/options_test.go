package options

import (
	"testing"
)

type numberOpts struct {
	Format    string   `opt:"output.format,omitempty"`
	Precision int      `opt:"number.precision"`
	Scale     float64  `opt:"number.scale,omitempty"`
	Skip      bool     `opt:"constraints.skip,omitempty"`
	Units     []string `opt:"units,omitempty"`
	Ignored   string
}

func TestScanBasic(t *testing.T) {
	b := New(map[string]any{
		OutputFormat:       "°F",
		"number.precision": float64(3), // JSON numbers are float64
		SkipConstraints:    true,
		"units":            []any{"K", 1, "°C"},
	})

	var o numberOpts
	b.Scan(&o)

	if o.Format != "°F" {
		t.Errorf("Format = %q, want %q", o.Format, "°F")
	}
	if o.Precision != 3 {
		t.Errorf("Precision = %d, want 3", o.Precision)
	}
	if !o.Skip {
		t.Errorf("Skip = false, want true")
	}
	if len(o.Units) != 2 || o.Units[1] != "°C" {
		t.Errorf("Units = %v, want [K °C]", o.Units)
	}
}

func TestScanNilAndNonPointer(t *testing.T) {
	var o numberOpts
	Scan(nil, &o) // should not panic
	Scan(map[string]any{OutputFormat: "x"}, o)
	if o.Format != "" {
		t.Errorf("expected zero value, got %q", o.Format)
	}
}

func TestFromOmitEmpty(t *testing.T) {
	b := From(numberOpts{Precision: 2, Ignored: "nope"})

	if b.Has(OutputFormat) {
		t.Errorf("omitempty field should be skipped")
	}
	if v, _ := b.Get("number.precision"); v != 2 {
		t.Errorf("number.precision = %v, want 2", v)
	}
	if len(b.Map()) != 1 {
		t.Errorf("unexpected keys: %v", b.Map())
	}
}

func TestBagAccessorsAndClone(t *testing.T) {
	var b Bag
	if b.String(OutputFormat) != "" || b.Bool(SkipConstraints) {
		t.Fatalf("zero bag should be empty")
	}

	b.Set(OutputFormat, "-n")
	c := b.Clone()
	c.Set(OutputFormat, "-u")

	if b.String(OutputFormat) != "-n" {
		t.Errorf("clone leaked into original: %q", b.String(OutputFormat))
	}
	if c.String(OutputFormat) != "-u" {
		t.Errorf("clone = %q, want -u", c.String(OutputFormat))
	}
}
