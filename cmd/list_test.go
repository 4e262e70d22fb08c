package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerail/tablerail/internal/errors"
	"github.com/tablerail/tablerail/internal/testutil"
)

func TestRunList(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	require.NoError(t, runList(context.Background(), &buf, rt, listOptions{table: "students"}))

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "2 of 2 rows")
}

func TestRunListSearch(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	opts := listOptions{table: "students", search: "alice"}
	require.NoError(t, runList(context.Background(), &buf, rt, opts))

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "Bob")
	assert.Contains(t, out, "1 of 2 rows")
}

func TestRunListFilter(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	opts := listOptions{table: "students", filters: []string{"age=36+"}}
	require.NoError(t, runList(context.Background(), &buf, rt, opts))

	out := buf.String()
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Alice")
}

func TestRunListSort(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	opts := listOptions{table: "students", sort: "age", desc: true}
	require.NoError(t, runList(context.Background(), &buf, rt, opts))

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Bob")), bytes.Index(buf.Bytes(), []byte("Alice")))
	assert.Contains(t, out, "2 of 2 rows")
}

func TestRunListResolve(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	opts := listOptions{table: "bookings", resolve: true}
	require.NoError(t, runList(context.Background(), &buf, rt, opts))

	out := buf.String()
	assert.Contains(t, out, "Student: Alice")
	assert.Contains(t, out, "Package: 6hrs, 2 ppl")
}

func TestRunListResolveSessions(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	opts := listOptions{table: "sessions", resolve: true}
	require.NoError(t, runList(context.Background(), &buf, rt, opts))

	assert.Contains(t, buf.String(), "Equipment: Kite: Rebel (9), Board: Dart (140)")
}

func TestRunListSearchWithoutSearchFields(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	err := runList(context.Background(), &buf, rt, listOptions{table: "bookings", search: "alice"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no searchable fields")
}

func TestRunListUnknownTable(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	var buf bytes.Buffer
	err := runList(context.Background(), &buf, rt, listOptions{table: "users"})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestRunListFetchFailure(t *testing.T) {
	mem := testutil.SchoolStore(
		testutil.WithError("SelectAll.students", errors.New(errors.ErrTypeDatabase, "connection reset")),
	)
	rt := testRuntime(mem)

	var buf bytes.Buffer
	err := runList(context.Background(), &buf, rt, listOptions{table: "students"})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeDatabase))
}

func TestRunListRefresh(t *testing.T) {
	mem := testutil.SchoolStore()
	rt := testRuntime(mem)

	var buf bytes.Buffer
	require.NoError(t, runList(context.Background(), &buf, rt, listOptions{table: "students"}))
	require.NoError(t, runList(context.Background(), &buf, rt, listOptions{table: "students"}))
	assert.Equal(t, 1, mem.CallCount("SelectAll.students"))

	require.NoError(t, runList(context.Background(), &buf, rt, listOptions{table: "students", refresh: true}))
	assert.Equal(t, 2, mem.CallCount("SelectAll.students"))
}

func TestBuildCriteria(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	opts := listOptions{
		search:  "ali",
		filters: []string{"languages=English,French", "age=18-25"},
		sort:    "name",
		desc:    true,
	}

	crit, err := buildCriteria(rt, opts)
	require.NoError(t, err)

	assert.Equal(t, "ali", crit.Search)
	require.Len(t, crit.Filters, 2)
	assert.Equal(t, []string{"English", "French"}, crit.Filters[0].Values)
	assert.Equal(t, []string{"18-25"}, crit.Filters[1].Values)
	require.NotNil(t, crit.Sort)
	assert.Equal(t, "desc", crit.Sort.Direction)
}

func TestBuildCriteriaInvalidFilter(t *testing.T) {
	rt := testRuntime(testutil.SchoolStore())

	_, err := buildCriteria(rt, listOptions{filters: []string{"age"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected field=value")
}
