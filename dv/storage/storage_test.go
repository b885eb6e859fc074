package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	semvaldb "github.com/teranos/semval/db"
	"github.com/teranos/semval/dv/cache"
	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
	semvaltest "github.com/teranos/semval/internal/testing"
)

var (
	alice = item.NewEntityRef("Alice", item.NSMain)
	bob   = item.NewEntityRef("Bob", item.NSMain)
	carol = item.NewEntityRef("Carol", item.NSMain)
	email = property.New("Email address", "_ema")
)

// seed writes the same fixture through either store's add method.
func seed(t *testing.T, add func(item.EntityRef, string, item.Item)) {
	t.Helper()
	shared := item.URI{Scheme: "mailto", Hierpart: "team@example.org"}
	add(alice, email.Key, shared)
	add(bob.WithSubobject("_contact"), email.Key, shared)
	add(carol, email.Key, item.URI{Scheme: "mailto", Hierpart: "carol@example.org"})
	add(email.Entity(), property.TypeMeta, item.Blob{Text: "_ema"})
	add(email.Entity(), property.DisplayUnitsMeta, item.Blob{Text: "first"})
	add(email.Entity(), property.DisplayUnitsMeta, item.Blob{Text: "second"})
}

func exerciseStore(t *testing.T, s property.Store) {
	ctx := context.Background()
	shared := item.URI{Scheme: "mailto", Hierpart: "team@example.org"}

	t.Run("query finds root subjects in insertion order", func(t *testing.T) {
		got, err := s.QueryValues(ctx, email, property.Condition{Value: shared}, 0)
		require.NoError(t, err)
		assert.Equal(t, []item.EntityRef{alice, bob}, got)
	})

	t.Run("query honours limit and exclusion", func(t *testing.T) {
		got, err := s.QueryValues(ctx, email, property.Condition{Value: shared, ExcludeSubject: alice}, 1)
		require.NoError(t, err)
		assert.Equal(t, []item.EntityRef{bob}, got)

		got, err = s.QueryValues(ctx, email, property.Condition{Value: shared}, 1)
		require.NoError(t, err)
		assert.Equal(t, []item.EntityRef{alice}, got)
	})

	t.Run("query with no holder is empty", func(t *testing.T) {
		got, err := s.QueryValues(ctx, email, property.Condition{Value: item.URI{Scheme: "mailto", Hierpart: "nobody@example.org"}}, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("specification keeps declaration order", func(t *testing.T) {
		got, err := s.FetchSpecification(ctx, email.Entity(), property.DisplayUnitsMeta)
		require.NoError(t, err)
		assert.Equal(t, []item.Item{item.Blob{Text: "first"}, item.Blob{Text: "second"}}, got)

		typeID, err := property.DeclaredType(ctx, s, email)
		require.NoError(t, err)
		assert.Equal(t, "_ema", typeID)
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s.Add)
	exerciseStore(t, s)

	assert.Len(t, s.Facts(alice), 1)
	assert.Equal(t, 1, s.Remove(bob))
	assert.Empty(t, s.Facts(bob.WithSubobject("_contact")))
}

func TestSQLStore(t *testing.T) {
	s := NewSQLStore(semvaltest.CreateTestDB(t), nil)
	seed(t, func(subject item.EntityRef, key string, it item.Item) {
		id, err := s.Add(context.Background(), subject, key, it)
		require.NoError(t, err)
		assert.Len(t, id, 36)
	})
	exerciseStore(t, s)

	t.Run("composite items survive storage", func(t *testing.T) {
		ctx := context.Background()
		c := item.Container{
			Subject: alice.WithSubobject("_x"),
			Fields: []item.Field{
				{Property: "Street", Item: item.Blob{Text: "Main St; 4"}},
				{Property: "Built", Item: item.Time{Model: item.Gregorian, Year: 1901, Precision: item.PrecisionYear}},
			},
		}
		p := property.New("Address", "_rec")
		require.NoError(t, s.Declare(ctx, p, "Sample", c))

		got, err := s.FetchSpecification(ctx, p.Entity(), "Sample")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, item.Equal(c, got[0]))
	})

	t.Run("remove drops sub-objects", func(t *testing.T) {
		n, err := s.Remove(context.Background(), bob)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}

func TestSQLStore_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewSQLStore(db, nil)
	ctx := context.Background()

	mock.ExpectQuery("SELECT subject_root FROM facts").
		WillReturnError(errors.New("disk I/O error"))
	_, err = s.QueryValues(ctx, email, property.Condition{Value: item.Blob{Text: "x"}}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query values of Email_address")

	mock.ExpectQuery("SELECT kind, item FROM facts").
		WillReturnRows(sqlmock.NewRows([]string{"kind", "item"}).AddRow("nonsense", "x"))
	_, err = s.FetchSpecification(ctx, email.Entity(), property.TypeMeta)
	require.Error(t, err)

	mock.ExpectExec("INSERT INTO facts").
		WithArgs(sqlmock.AnyArg(), alice.Serialize(), alice.Serialize(), email.Key, "blob", "x", "x").
		WillReturnError(errors.New("constraint failed"))
	_, err = s.Add(ctx, alice, email.Key, item.Blob{Text: "x"})
	require.Error(t, err)

	_, err = s.QueryValues(ctx, email, property.Condition{}, 1)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCache(t *testing.T) {
	ctx := context.Background()
	c := NewSQLCache(semvaltest.CreateTestDB(t))

	empty, err := c.Read(ctx, "entity:1")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "entity:1", empty.Hash)

	require.NoError(t, empty.Set("PVUC", "Alice#0##"))
	empty.Link("pvuc:2")
	require.NoError(t, c.Save(ctx, empty))
	require.NoError(t, c.Save(ctx, cache.NewContainer("pvuc:2")))

	got, err := c.Read(ctx, "entity:1")
	require.NoError(t, err)
	var auth string
	ok, err := got.Get("PVUC", &auth)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Alice#0##", auth)
	assert.Equal(t, []string{"pvuc:2"}, got.Linked)

	n, err := cache.Purge(ctx, c, "entity:1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err = c.Read(ctx, "entity:1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.EqualValues(t, 2, c.Stats().Hits())
	assert.EqualValues(t, 2, c.Stats().Misses())

	assert.Error(t, c.Save(ctx, &cache.Container{}))
}

func TestSQLCache_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c := NewSQLCache(db)

	mock.ExpectQuery("SELECT payload FROM cache_containers").
		WithArgs("h").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow("{not json"))
	_, err = c.Read(context.Background(), "h")
	require.Error(t, err)

	mock.ExpectExec("DELETE FROM cache_containers").
		WithArgs("h").
		WillReturnError(errors.New("locked"))
	require.Error(t, c.Delete(context.Background(), "h"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClosedDatabase(t *testing.T) {
	ctx := context.Background()
	conn := semvaltest.CreateTestDB(t)
	s := NewSQLStore(conn, nil)
	c := NewSQLCache(conn)
	require.NoError(t, conn.Close())

	_, err := s.Add(ctx, alice, email.Key, item.Blob{Text: "x"})
	assert.ErrorIs(t, err, semvaldb.ErrDatabaseClosed)

	_, err = s.QueryValues(ctx, email, property.Condition{Value: item.Blob{Text: "x"}}, 1)
	assert.ErrorIs(t, err, semvaldb.ErrDatabaseClosed)

	_, err = c.Read(ctx, "entity:1")
	assert.ErrorIs(t, err, semvaldb.ErrDatabaseClosed)

	err = c.Save(ctx, cache.NewContainer("entity:1"))
	assert.ErrorIs(t, err, semvaldb.ErrDatabaseClosed)
	assert.True(t, semvaldb.IsDatabaseClosed(err))
}
