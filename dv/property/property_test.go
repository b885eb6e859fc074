package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/errors"
)

type specStore map[string][]item.Item

func (s specStore) QueryValues(context.Context, *Property, Condition, int) ([]item.EntityRef, error) {
	return nil, nil
}

func (s specStore) FetchSpecification(_ context.Context, subject item.EntityRef, meta string) ([]item.Item, error) {
	if subject.DBKey == "Broken" {
		return nil, errors.New("store offline")
	}
	return s[subject.DBKey+"/"+meta], nil
}

func TestResolve(t *testing.T) {
	tests := []struct {
		label   string
		wantKey string
		wantErr bool
	}{
		{label: "population", wantKey: "Population"},
		{label: "Property: has  area", wantKey: "Has_area"},
		{label: "Has type", wantKey: TypeMeta},
		{label: "_PVUC", wantKey: UniquenessMeta},
		{label: "   ", wantErr: true},
		{label: "Property:", wantErr: true},
		{label: "a|b", wantErr: true},
		{label: "_NOPE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			p, err := Resolve(tt.label)
			if tt.wantErr {
				var rerr *ResolutionError
				require.ErrorAs(t, err, &rerr)
				assert.Equal(t, tt.label, rerr.Label)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, p.Key)
		})
	}
}

func TestPredefinedCopies(t *testing.T) {
	p, ok := Predefined(TextKey)
	require.True(t, ok)
	p.Label = "changed"

	again, _ := Predefined(TextKey)
	assert.Equal(t, "Text", again.Label)
	assert.True(t, again.IsPredefined())
}

func TestLookupReadsDeclaredType(t *testing.T) {
	store := specStore{
		"Temperature/" + TypeMeta: {item.Blob{Text: " _tem "}},
	}
	ctx := context.Background()

	p, err := Lookup(ctx, store, "temperature")
	require.NoError(t, err)
	assert.Equal(t, "_tem", p.TypeID)
	assert.Equal(t, item.EntityRef{DBKey: "Temperature", Namespace: item.NSProperty}, p.Entity())

	p, err = Lookup(ctx, store, "Located in")
	require.NoError(t, err)
	assert.Equal(t, DefaultTypeID, p.TypeID)

	_, err = Lookup(ctx, store, "Broken")
	assert.ErrorContains(t, err, "store offline")
}

func TestTextsAndFlag(t *testing.T) {
	store := specStore{
		"Code/" + AllowsValueMeta: {item.Blob{Text: "A"}, item.Number{Value: 1}, item.Blob{Text: "B"}},
		"Code/" + UniquenessMeta:  {item.Boolean{Value: true}},
	}
	ctx := context.Background()
	p := New("Code", "_txt")

	texts, err := Texts(ctx, store, p, AllowsValueMeta)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, texts)

	unique, err := Flag(ctx, store, p, UniquenessMeta)
	require.NoError(t, err)
	assert.True(t, unique)

	unique, err = Flag(ctx, store, New("Other", "_txt"), UniquenessMeta)
	require.NoError(t, err)
	assert.False(t, unique)
}
