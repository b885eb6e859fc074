package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/semval/dv/msg"
)

var foaf = Vocabularies{
	"foaf":  "http://xmlns.com/foaf/0.1/|Friend of a Friend\n name|Type:Text\n knows|Type:Page\n Person|Category",
	"empty": "",
}

func TestParseImport(t *testing.T) {
	res, errs := ParseImport(" foaf:knows ", foaf)
	require.Empty(t, errs)
	assert.Equal(t, ImportResult{
		Namespace: "foaf",
		Term:      "knows",
		URI:       "http://xmlns.com/foaf/0.1/",
		Name:      "Friend of a Friend",
		TermType:  "Type:Page",
	}, res)

	res, errs = ParseImport("foaf:Person", foaf)
	require.Empty(t, errs)
	assert.Equal(t, "Category", res.TermType)
}

func TestParseImportErrors(t *testing.T) {
	tests := []struct {
		raw  string
		code string
	}{
		{raw: "knows", code: msg.ImportNoColon},
		{raw: "foaf:", code: msg.ImportNoColon},
		{raw: "dc:title", code: msg.ImportUnknownNS},
		{raw: "empty:thing", code: msg.ImportEmptyRef},
		{raw: "foaf:mbox", code: msg.ImportUnknownTerm},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, errs := ParseImport(tt.raw, foaf)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
		})
	}
}

func TestLoadVocabularies(t *testing.T) {
	doc := `
foaf:
  uri: http://xmlns.com/foaf/0.1/
  name: Friend of a Friend
  terms:
    name: Type:Text
    knows: Type:Page
    mbox: ""
`
	vocab, err := LoadVocabularies(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/|Friend of a Friend\n knows|Type:Page\n mbox\n name|Type:Text", vocab["foaf"])

	res, errs := ParseImport("foaf:mbox", vocab)
	require.Empty(t, errs)
	assert.Equal(t, "", res.TermType)

	_, err = LoadVocabularies(strings.NewReader("x:\n  name: no uri\n"))
	assert.Error(t, err)

	vocab, err = LoadVocabularies(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, vocab)
}

func TestParseMonolingual(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		strict   bool
		wantText string
		wantLang string
		wantCode string
	}{
		{name: "tagged", raw: "Hello@EN", wantText: "Hello", wantLang: "en"},
		{name: "last at wins", raw: "me@example.org@de", wantText: "me@example.org", wantLang: "de"},
		{name: "untagged lenient", raw: "Hello", wantText: "Hello"},
		{name: "untagged strict", raw: "Hello", strict: true, wantText: "Hello", wantCode: msg.MissingLanguageCode},
		{name: "bad tag strict", raw: "Hello@not a tag", strict: true, wantText: "Hello", wantLang: "not a tag", wantCode: msg.InvalidLanguageCode},
		{name: "bad tag lenient", raw: "Hello@not a tag", wantText: "Hello", wantLang: "not a tag"},
		{name: "region", raw: "Colour@en-GB", strict: true, wantText: "Colour", wantLang: "en-gb"},
		{name: "no text", raw: "@en", wantLang: "en", wantCode: msg.MissingValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, lang, errs := ParseMonolingual(tt.raw, tt.strict)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantLang, lang)
			if tt.wantCode == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantCode, errs[0].Code)
		})
	}
}

func TestResolvePattern(t *testing.T) {
	catalog := ParsePatternCatalog("isbn|\\d{3}-\\d{10}\n\nbroken|([a-z\nnoseparator\n zip | [0-9]{5}")

	re, errs := ResolvePattern("isbn", catalog, true)
	require.Empty(t, errs)
	assert.True(t, re.MatchString("978-3161484100"))
	assert.False(t, re.MatchString("x978-3161484100"))

	re, errs = ResolvePattern(" zip ", catalog, true)
	require.Empty(t, errs)
	assert.True(t, re.MatchString("10115"))

	_, errs = ResolvePattern("isbn", catalog, false)
	assert.Equal(t, []string{msg.PatternDisabled}, errs.Codes())

	_, errs = ResolvePattern("phone", catalog, true)
	assert.Equal(t, []string{msg.PatternUnknown}, errs.Codes())

	_, errs = ResolvePattern("broken", catalog, true)
	assert.Equal(t, []string{msg.PatternInvalid}, errs.Codes())
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw    string
		ok     bool
		value  float64
		unit   string
		prefix bool
	}{
		{raw: "42", ok: true, value: 42},
		{raw: "100 °C", ok: true, value: 100, unit: "°C"},
		{raw: "-40°F", ok: true, value: -40, unit: "°F"},
		{raw: "1,234,567.5 km", ok: true, value: 1234567.5, unit: "km"},
		{raw: "$ 12.50", ok: true, value: 12.5, unit: "$", prefix: true},
		{raw: "6.022e23", ok: true, value: 6.022e23},
		{raw: "5 eV", ok: true, value: 5, unit: "eV"},
		{raw: "−3 K", ok: true, value: -3, unit: "K"},
		{raw: ".5", ok: true, value: 0.5},
		{raw: "1.8 °F, F", ok: true, value: 1.8, unit: "°F, F"},
		{raw: "abc"},
		{raw: ""},
		{raw: "1,5"},
		{raw: "1.2.3"},
		{raw: "$ 5 km"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			lit, ok := ParseNumber(tt.raw)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.value, lit.Value, 1e-9*max(1, tt.value))
			assert.Equal(t, tt.unit, lit.Unit)
			assert.Equal(t, tt.prefix, lit.UnitPrefix)
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	assert.Equal(t, "square km", NormalizeUnit("  square_ \t km "))
}

func TestParseNumberProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("plain integers lex to themselves", prop.ForAll(
		func(n int) bool {
			lit, ok := ParseNumber(strconv.Itoa(n))
			return ok && lit.Value == float64(n) && lit.Unit == ""
		},
		gen.IntRange(-1_000_000, 1_000_000),
	))

	properties.Property("a suffix unit is split off", prop.ForAll(
		func(n int, unit string) bool {
			lit, ok := ParseNumber(strconv.Itoa(n) + " " + unit)
			return ok && lit.Value == float64(n) && lit.Unit == unit && !lit.UnitPrefix
		},
		gen.IntRange(0, 100000),
		gen.OneConstOf("K", "°C", "km", "m/s", "kg m"),
	))

	properties.TestingRun(t)
}
