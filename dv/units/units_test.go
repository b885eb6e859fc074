package units

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
)

func TestBuildTable(t *testing.T) {
	table, skipped := BuildTable([]string{
		"1000 m, meter, metre",
		"1 km, kilometre, square_ kilometre",
		"0.621371 mi, mile",
		"0 furlong",
		"abc",
		"5",
		"$ 2",
	})

	assert.Equal(t, []string{"0 furlong", "abc", "5"}, skipped)
	assert.Equal(t, "km", table.MainUnit())
	assert.Equal(t, []Factor{
		{Unit: "km", Value: 1},
		{Unit: "m", Value: 1000},
		{Unit: "mi", Value: 0.621371},
		{Unit: "$", Value: 2},
		{Unit: "", Value: 1},
	}, table.Factors)

	id, ok := table.Canonical("metre")
	require.True(t, ok)
	assert.Equal(t, "m", id)

	id, ok = table.Canonical("square   kilometre")
	require.True(t, ok)
	assert.Equal(t, "km", id)

	assert.True(t, table.IsPrefix("$"))
	assert.False(t, table.IsPrefix("km"))
	assert.Equal(t, []string{"km", "m", "mi", "$"}, table.Units())

	v, ok := table.ToMain(2500, "meter")
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-9)

	v, ok = table.FromMain(2.5, "m")
	require.True(t, ok)
	assert.InDelta(t, 2500, v, 1e-9)

	_, ok = table.ToMain(1, "parsec")
	assert.False(t, ok)
}

func TestBuildTableWithoutMainUnit(t *testing.T) {
	table, _ := BuildTable([]string{"100 cm", "1000 mm"})
	assert.Equal(t, "", table.MainUnit())
	assert.Equal(t, []string{"cm", "mm", ""}, table.Units())

	f, ok := table.Factor("")
	require.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestBuildTableEmpty(t *testing.T) {
	table, skipped := BuildTable(nil)
	assert.Empty(t, skipped)
	assert.False(t, table.HasUnits())
	assert.Equal(t, []Factor{{Unit: "", Value: 1}}, table.Factors)
}

func TestBuildTableSecondUnitFactorIsNotMain(t *testing.T) {
	table, _ := BuildTable([]string{"2 half", "1 whole", "1 unit"})
	assert.Equal(t, "whole", table.MainUnit())
	assert.Equal(t, "whole", table.Factors[0].Unit)
	assert.Equal(t, "unit", table.Factors[2].Unit)
}

func TestBuildTableProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("empty unit has factor 1 and main is the first unit with factor 1", prop.ForAll(
		func(factors []int) bool {
			lines := make([]string, len(factors))
			wantMain := ""
			for i, f := range factors {
				unit := fmt.Sprintf("u%d", i)
				lines[i] = fmt.Sprintf("%d %s", f, unit)
				if f == 1 && wantMain == "" {
					wantMain = unit
				}
			}
			table, _ := BuildTable(lines)

			f, ok := table.Factor("")
			if !ok || f != 1 {
				return false
			}
			if _, ok := table.UnitIDs[""]; !ok {
				return false
			}
			if table.Factors[len(table.Factors)-1].Unit != "" {
				return false
			}
			if wantMain != "" && table.Factors[0].Unit != wantMain {
				return false
			}
			return table.MainUnit() == wantMain
		},
		gen.SliceOfN(6, gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}

func TestTemperatureScale(t *testing.T) {
	var s TemperatureScale

	k, ok := s.ToMain(100, "°C")
	require.True(t, ok)
	assert.InDelta(t, 373.15, k, 1e-9)

	f, ok := s.FromMain(k, "°F")
	require.True(t, ok)
	assert.InDelta(t, 212, f, 1e-9)

	r, ok := s.FromMain(0, "Rankine")
	require.True(t, ok)
	assert.Equal(t, 0.0, r)

	id, ok := s.Canonical("")
	require.True(t, ok)
	assert.Equal(t, "K", id)

	_, ok = s.Canonical("furlong")
	assert.False(t, ok)
	assert.Equal(t, []string{"K", "°C", "°F", "°R"}, s.Units())
}

func TestDisplayUnits(t *testing.T) {
	table, _ := BuildTable([]string{"1 km", "1000 m, metre", "0.621371 mi"})
	assert.Equal(t, []string{"mi", "m"}, DisplayUnits(table, []string{"mi, metre", "parsec"}))
	assert.Equal(t, []string{"km", "m", "mi"}, DisplayUnits(table, nil))
}

type specStore struct {
	lines   []string
	fetches int
}

func (s *specStore) QueryValues(context.Context, *property.Property, property.Condition, int) ([]item.EntityRef, error) {
	return nil, nil
}

func (s *specStore) FetchSpecification(_ context.Context, _ item.EntityRef, meta string) ([]item.Item, error) {
	if meta != property.ConversionMeta {
		return nil, nil
	}
	s.fetches++
	out := make([]item.Item, len(s.lines))
	for i, l := range s.lines {
		out[i] = item.Blob{Text: l}
	}
	return out, nil
}

func TestCachedFetcher(t *testing.T) {
	ctx := context.Background()
	store := &specStore{lines: []string{"1 km", "1000 m"}}
	mem, err := cache.NewMemory()
	require.NoError(t, err)

	cached := NewCachedFetcher(NewFetcher(store, nil), mem, nil)
	p := property.New("Distance", "_qty")

	first, err := cached.Fetch(ctx, p)
	require.NoError(t, err)
	second, err := cached.Fetch(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 1, store.fetches)
	assert.Equal(t, first, second)

	store.lines = []string{"1 m"}
	require.NoError(t, cached.Invalidate(ctx, p))

	third, err := cached.Fetch(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, store.fetches)
	assert.Equal(t, "m", third.MainUnit())
}

func TestCachedFetcher_PurgedWithEntity(t *testing.T) {
	ctx := context.Background()
	store := &specStore{lines: []string{"1 km", "1000 m"}}
	mem, err := cache.NewMemory()
	require.NoError(t, err)

	cached := NewCachedFetcher(NewFetcher(store, nil), mem, nil)
	p := property.New("Distance", "_qty")

	_, err = cached.Fetch(ctx, p)
	require.NoError(t, err)

	n, err := cache.Purge(ctx, mem, cache.EntityKey(p.Entity().Root().Hash()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	store.lines = []string{"1 m"}
	fresh, err := cached.Fetch(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, store.fetches)
	assert.Equal(t, "m", fresh.MainUnit())
}
