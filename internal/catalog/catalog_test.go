package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerail/tablerail/internal/errors"
	"github.com/tablerail/tablerail/internal/registry"
	"github.com/tablerail/tablerail/internal/store"
	"github.com/tablerail/tablerail/internal/testutil"
)

func TestLoad(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	assert.Equal(t, "students", table.Name)
	assert.Len(t, table.Data, 2)
	assert.NoError(t, table.Err)
	assert.NotEmpty(t, table.Fields)
	assert.Equal(t, 1, mem.CallCount("SelectAll.students"))
}

func TestLoadUnknownTableFailsFast(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	_, err := c.Load(context.Background(), "users")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	assert.Equal(t, 0, mem.CallCount("SelectAll"))
}

func TestLoadFetchFailureYieldsEmptyTable(t *testing.T) {
	mem := testutil.SchoolStore(
		testutil.WithError("SelectAll.students", errors.New(errors.ErrTypeDatabase, "connection reset")),
	)
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	assert.Error(t, table.Err)
	assert.NotNil(t, table.Data)
	assert.Empty(t, table.Data)
	// the table still carries its registered shape
	assert.NotEmpty(t, table.Fields)
}

func TestLoadCachesAcrossCalls(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	first, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	second, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, mem.CallCount("SelectAll.students"))
}

func TestLoadAllDeduplicates(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	tables, err := c.LoadAll(context.Background(), []string{"students", "bookings", "students"})
	require.NoError(t, err)

	require.Len(t, tables, 2)
	assert.Equal(t, 1, mem.CallCount("SelectAll.students"))
	assert.Equal(t, 1, mem.CallCount("SelectAll.bookings"))

	// a second batch over loaded tables issues no new fetches
	_, err = c.LoadAll(context.Background(), []string{"students", "bookings"})
	require.NoError(t, err)
	assert.Equal(t, 2, mem.CallCount("SelectAll"))
}

func TestLoadAllUnknownNameFailsWholeBatch(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	_, err := c.LoadAll(context.Background(), []string{"students", "users"})
	require.Error(t, err)
	assert.Equal(t, 0, mem.CallCount("SelectAll"))
}

func TestRefresh(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	_, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	_, err = mem.Insert(context.Background(), "students", store.Row{"name": "Dana"})
	require.NoError(t, err)

	table, err := c.Refresh(context.Background(), "students")
	require.NoError(t, err)

	assert.Len(t, table.Data, 3)
	assert.Equal(t, 2, mem.CallCount("SelectAll.students"))
}

func TestTableLookupCoercesIDs(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	row, ok := table.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "Alice", row["name"])

	row, ok = table.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "Bob", row["name"])

	_, ok = table.Lookup(999)
	assert.False(t, ok)
}

func TestTableInsertPatchesCache(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	created, err := table.Insert(context.Background(), store.Row{"name": "Dana", "age": 30})
	require.NoError(t, err)

	assert.NotNil(t, created.ID())
	assert.Len(t, table.Data, 3)

	row, ok := table.Lookup(created.ID())
	require.True(t, ok)
	assert.Equal(t, "Dana", row["name"])
}

func TestTableInsertFailureLeavesCacheUntouched(t *testing.T) {
	mem := testutil.SchoolStore(
		testutil.WithError("Insert", errors.New(errors.ErrTypeDatabase, "constraint violation")),
	)
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	_, err = table.Insert(context.Background(), store.Row{"name": "Dana"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeDatabase))
	assert.Len(t, table.Data, 2)
}

func TestTableUpdatePatchesCache(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	updated, err := table.UpdateByID(context.Background(), 1, store.Row{"age": 23})
	require.NoError(t, err)
	assert.Equal(t, 23, updated["age"])

	row, ok := table.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 23, row["age"])
	assert.Equal(t, "Alice", row["name"])
}

func TestTableUpdateFailureLeavesCacheUntouched(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	_, err = table.UpdateByID(context.Background(), 999, store.Row{"age": 23})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
	assert.Len(t, table.Data, 2)
}

func TestTableDeletePatchesCache(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	require.NoError(t, table.DeleteByID(context.Background(), "2"))

	assert.Len(t, table.Data, 1)
	_, ok := table.Lookup(2)
	assert.False(t, ok)
}

func TestTableGetByIDIsLive(t *testing.T) {
	mem := testutil.SchoolStore()
	c := New(mem, registry.Default())

	table, err := c.Load(context.Background(), "students")
	require.NoError(t, err)

	_, err = mem.UpdateByID(context.Background(), "students", 1, store.Row{"age": 99})
	require.NoError(t, err)

	// the cache still has the old value, the live fetch sees the new one
	cached, ok := table.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 22, cached["age"])

	live, err := table.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 99, live["age"])
}

func TestInferFields(t *testing.T) {
	rows := []store.Row{{
		"id":     5,
		"name":   "Alice",
		"active": true,
		"scores": []any{1, 2},
		"age":    22,
	}}

	fields := inferFields(rows)

	require.Equal(t, "id", fields[0].Name)
	assert.True(t, fields[0].PrimaryKey)
	assert.Equal(t, registry.KindNumber, fields[0].Kind)

	byName := make(map[string]registry.FieldKind)
	for _, f := range fields {
		byName[f.Name] = f.Kind
	}

	assert.Equal(t, registry.KindString, byName["name"])
	assert.Equal(t, registry.KindBool, byName["active"])
	assert.Equal(t, registry.KindArray, byName["scores"])
	assert.Equal(t, registry.KindNumber, byName["age"])
}

func TestInferFieldsEmpty(t *testing.T) {
	fields := inferFields(nil)

	require.Len(t, fields, 1)
	assert.Equal(t, "id", fields[0].Name)
	assert.True(t, fields[0].PrimaryKey)
}
