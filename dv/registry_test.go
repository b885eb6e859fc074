package dv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/property"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Len(t, r.IDs(), 18)
	assert.Equal(t, TypeText, r.IDs()[0])
	assert.True(t, r.Has(TypeMonolingual))
	assert.False(t, r.Has("_nope"))

	e := r.Lookup("_nope")
	assert.Equal(t, TypeError, e.ID)
	assert.Equal(t, item.KindError, e.Kind)

	for _, label := range []string{"Text", "type:text", "String", " Type: string "} {
		e, ok := r.ByLabel(label)
		require.True(t, ok, label)
		assert.Equal(t, TypeText, e.ID, label)
	}
	e, ok := r.ByLabel("uri")
	require.True(t, ok)
	assert.Equal(t, TypeURL, e.ID)
	_, ok = r.ByLabel("Colour")
	assert.False(t, ok)

	assert.True(t, r.Lookup(TypeRecord).MultiField)
	assert.False(t, r.Lookup(TypeNumber).MultiField)

	fields := r.MonolingualFields()
	require.Len(t, fields, 2)
	assert.Equal(t, property.TextKey, fields[0].Key)
	fields[0] = nil
	assert.NotNil(t, r.MonolingualFields()[0])
}

func TestFactory(t *testing.T) {
	ctx := context.Background()
	env, store := newTestEnv(t)
	f := env.Factory()

	t.Run("unknown type", func(t *testing.T) {
		v := f.NewValueByType("_nope")
		assert.IsType(t, &ErrorValue{}, v)
		v.Parse(ctx, "anything")
		assert.Equal(t, []msg.Error{msg.New(msg.UnknownType, "_nope")}, []msg.Error(v.Errors()))
	})

	t.Run("undeclared property type defaults to page", func(t *testing.T) {
		p := property.New("Author", "")
		v := f.NewValueByProperty(ctx, p, "Douglas Adams", "", alice)
		assert.Equal(t, TypePage, v.TypeID())
		assert.Equal(t, item.NewEntityRef("Douglas Adams", item.NSMain), v.Item())
	})

	t.Run("declared type and caption", func(t *testing.T) {
		p := property.New("Height", "")
		store.DeclareText(p, property.TypeMeta, TypeNumber)
		v := f.NewValueByProperty(ctx, p, "42", "forty-two", alice)
		assert.Equal(t, TypeNumber, v.TypeID())
		assert.Equal(t, "forty-two", v.Caption())
		assert.Equal(t, item.Number{Value: 42}, v.Item())
	})

	t.Run("rehydrate", func(t *testing.T) {
		v, err := f.NewValueByItem(property.New("Height", TypeNumber), item.Number{Value: 7})
		require.NoError(t, err)
		assert.Equal(t, "7", v.String())

		v, err = f.NewValueByItem(nil, item.NewEntityRef("Bob", item.NSMain))
		require.NoError(t, err)
		assert.Equal(t, TypePage, v.TypeID())

		_, err = f.NewValueByItem(property.New("Height", TypeNumber), item.Blob{Text: "7"})
		require.Error(t, err)
	})
}
