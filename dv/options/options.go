// Package options provides the option bag attached to every value.
//
// Options are stored as map[string]any so hosts can pass through whatever
// they read from markup or JSON. Typed access goes through struct tags:
//
//	type numberOpts struct {
//	    Format    string `opt:"output.format,omitempty"`
//	    Precision int    `opt:"number.precision"`
//	}
//
//	var o numberOpts
//	bag.Scan(&o)
package options

import (
	"maps"
	"reflect"
	"strings"
)

// Well-known keys.
const (
	// OutputFormat selects the unit or rendering variant used by formatters.
	OutputFormat = "output.format"
	// Language is the content language used for messages and number grouping.
	Language = "content.language"
	// SkipConstraints disables the constraint pipeline on Parse.
	SkipConstraints = "constraints.skip"
	// Compact asks formatters for the shortest rendering.
	Compact = "output.compact"
)

// Bag is a value's option set. The zero value is ready to use.
type Bag struct {
	m map[string]any
}

// New builds a bag from key/value pairs.
func New(kv map[string]any) Bag {
	return Bag{m: maps.Clone(kv)}
}

// Set stores key.
func (b *Bag) Set(key string, val any) {
	if b.m == nil {
		b.m = make(map[string]any)
	}
	b.m[key] = val
}

// Has reports whether key is set.
func (b Bag) Has(key string) bool {
	_, ok := b.m[key]
	return ok
}

// Get returns the raw value of key.
func (b Bag) Get(key string) (any, bool) {
	v, ok := b.m[key]
	return v, ok
}

// String returns key as a string, or "" when unset or not a string.
func (b Bag) String(key string) string {
	s, _ := b.m[key].(string)
	return s
}

// Bool returns key as a bool, or false when unset or not a bool.
func (b Bag) Bool(key string) bool {
	v, _ := b.m[key].(bool)
	return v
}

// Clone returns an independent copy.
func (b Bag) Clone() Bag {
	return Bag{m: maps.Clone(b.m)}
}

// Map exposes the underlying map. Callers must not modify it.
func (b Bag) Map() map[string]any {
	return b.m
}

// Scan reads the bag into a struct using `opt` tags.
func (b Bag) Scan(dst any) {
	Scan(b.m, dst)
}

// Scan reads values from m into a struct using `opt` tags.
// Fields without a matching key are left at their zero value.
// JSON numbers (float64) are coerced to int fields.
func Scan(m map[string]any, dst any) {
	if m == nil {
		return
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := tagKey(t.Field(i))
		if key == "" {
			continue
		}
		val, ok := m[key]
		if !ok || val == nil {
			continue
		}
		setField(v.Field(i), val)
	}
}

// From converts a struct into a Bag using `opt` tags.
// Fields tagged with "omitempty" are skipped when at their zero value.
func From(src any) Bag {
	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Bag{}
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return Bag{}
	}

	t := v.Type()
	m := make(map[string]any)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("opt")
		if tag == "" || tag == "-" {
			continue
		}
		key, omitempty := parseTag(tag)
		fv := v.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		m[key] = fv.Interface()
	}
	return Bag{m: m}
}

func tagKey(f reflect.StructField) string {
	tag := f.Tag.Get("opt")
	if tag == "" || tag == "-" {
		return ""
	}
	key, _ := parseTag(tag)
	return key
}

func parseTag(tag string) (key string, omitempty bool) {
	key, rest, _ := strings.Cut(tag, ",")
	return key, rest == "omitempty"
}

func setField(fv reflect.Value, val any) {
	switch fv.Kind() {
	case reflect.String:
		if s, ok := val.(string); ok {
			fv.SetString(s)
		}

	case reflect.Int, reflect.Int64:
		switch n := val.(type) {
		case float64:
			fv.SetInt(int64(n))
		case int:
			fv.SetInt(int64(n))
		case int64:
			fv.SetInt(n)
		}

	case reflect.Float64:
		switch n := val.(type) {
		case float64:
			fv.SetFloat(n)
		case int:
			fv.SetFloat(float64(n))
		}

	case reflect.Bool:
		if b, ok := val.(bool); ok {
			fv.SetBool(b)
		}

	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return
		}
		switch items := val.(type) {
		case []string:
			fv.Set(reflect.ValueOf(items))
		case []any:
			strs := make([]string, 0, len(items))
			for _, it := range items {
				if s, ok := it.(string); ok {
					strs = append(strs, s)
				}
			}
			fv.Set(reflect.ValueOf(strs))
		}
	}
}
