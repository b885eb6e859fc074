package item

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := KindBlob; k <= KindError; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("bogus")
	assert.Error(t, err)
}

func TestDeserializeRoundTrip(t *testing.T) {
	items := []Item{
		Blob{Text: "hello; world#1"},
		Number{Value: 373.15},
		Number{Value: -1e-9},
		Boolean{Value: true},
		Boolean{Value: false},
		URI{Scheme: "https", Hierpart: "example.org/a", Query: "x=1", Fragment: "top"},
		URI{Scheme: "mailto", Hierpart: "someone@example.org"},
		EntityRef{DBKey: "Berlin", Namespace: NSMain},
		EntityRef{DBKey: "A#B", Namespace: NSProperty, Subobject: "_abc"},
		Time{Model: Gregorian, Year: 2024, Month: 2, Day: 29, Precision: PrecisionDay},
		Time{Model: Gregorian, Year: -44, Precision: PrecisionYear},
		Time{Model: Julian, Year: 1582, Month: 10, Day: 4, Hour: 23, Minute: 5, Second: 9, Precision: PrecisionTime},
		Container{
			Subject: EntityRef{DBKey: "Berlin", Subobject: "_x"},
			Fields: []Field{
				{Property: "Text", Item: Blob{Text: "Hallo"}},
				{Property: "Language_code", Item: Blob{Text: "de"}},
			},
		},
		Error{Marker: "broken"},
	}

	for _, it := range items {
		t.Run(it.Kind().String()+"/"+it.Serialize(), func(t *testing.T) {
			back, err := Deserialize(it.Kind(), it.Serialize())
			require.NoError(t, err)
			assert.True(t, Equal(it, back), "got %#v", back)
		})
	}
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	cases := []struct {
		kind Kind
		in   string
	}{
		{KindNumber, "abc"},
		{KindBoolean, "yes"},
		{KindURI, "no-scheme"},
		{KindEntity, "only#two"},
		{KindTime, "1"},
		{KindTime, "1/2020/1/1/1"},
		{KindContainer, "{not json"},
	}
	for _, tc := range cases {
		_, err := Deserialize(tc.kind, tc.in)
		assert.Error(t, err, "%s %q", tc.kind, tc.in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Blob{Text: "1"}, nil))
	assert.False(t, Equal(Blob{Text: "1"}, Number{Value: 1}))
	assert.True(t, Equal(Number{Value: 1}, Number{Value: 1.0}))
}

func TestEntityRef(t *testing.T) {
	e := NewEntityRef("  new   york city ", NSMain)
	assert.Equal(t, "New_york_city", e.DBKey)
	assert.Equal(t, "New york city", e.Title())

	sub := e.WithSubobject("_abc")
	assert.Equal(t, "New york city#_abc", sub.String())
	assert.Equal(t, e, sub.Root())

	p := NewEntityRef("temperature", NSProperty)
	assert.Equal(t, "Property:Temperature", p.Title())

	ns, ok := NamespaceByName("category")
	assert.True(t, ok)
	assert.Equal(t, NSCategory, ns)
}

func TestTimeJulianDay(t *testing.T) {
	// J2000.0 epoch
	j2000 := Time{Model: Gregorian, Year: 2000, Month: 1, Day: 1, Hour: 12, Precision: PrecisionTime}
	assert.InDelta(t, 2451545.0, j2000.JulianDay(), 1e-6)

	// The day after the last Julian date is the first Gregorian one.
	lastJulian := Time{Model: Julian, Year: 1582, Month: 10, Day: 4, Precision: PrecisionDay}
	firstGregorian := Time{Model: Gregorian, Year: 1582, Month: 10, Day: 15, Precision: PrecisionDay}
	assert.InDelta(t, 1.0, firstGregorian.JulianDay()-lastJulian.JulianDay(), 1e-6)

	assert.Equal(t, "2024-03", Time{Model: Gregorian, Year: 2024, Month: 3, Precision: PrecisionMonth}.ISO())
}

func TestContainerHashIgnoresSubject(t *testing.T) {
	fields := []Field{{Property: "A", Item: Number{Value: 1}}, {Property: "B", Item: Blob{Text: "x;y"}}}
	a := Container{Subject: EntityRef{DBKey: "One", Subobject: "_1"}, Fields: fields}
	b := Container{Subject: EntityRef{DBKey: "Two", Subobject: "_2"}, Fields: fields}
	assert.Equal(t, a.Hash(), b.Hash())

	got, ok := a.Get("B")
	require.True(t, ok)
	assert.Equal(t, Blob{Text: "x;y"}, got)
}

func TestFoldSortKey(t *testing.T) {
	key := FoldSortKey([]SortKeyPart{
		{Key: "alpha"},
		{Key: "2451545", First: true},
		{Key: "beta"},
	})
	assert.Equal(t, "2451545;alpha;beta", key)
	assert.Equal(t, "", FoldSortKey(nil))
}

func TestSplitEscapedInvertsEscapeField(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("escape then split yields the original parts", prop.ForAll(
		func(a, b string) bool {
			joined := escapeField(a, '#') + "#" + escapeField(b, '#')
			parts := splitEscaped(joined, '#')
			return len(parts) == 2 && parts[0] == a && parts[1] == b
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("number items survive serialization", prop.ForAll(
		func(f float64) bool {
			back, err := Deserialize(KindNumber, Number{Value: f}.Serialize())
			return err == nil && Equal(Number{Value: f}, back)
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
