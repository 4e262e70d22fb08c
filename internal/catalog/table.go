package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tablerail/tablerail/internal/registry"
	"github.com/tablerail/tablerail/internal/store"
)

// Table is one loaded table: its metadata, its cached rows, and the error
// from the last fetch if that fetch failed. A table with Err set still has
// usable (empty) Data so callers can render without nil checks.
type Table struct {
	Name          string
	Description   string
	Fields        []registry.Field
	FilterOptions []registry.FilterOption
	SortOptions   []registry.SortOption
	Relationships []string
	SearchFields  []string
	Data          []store.Row
	Err           error

	store store.Store
}

// Get returns the cached rows
func (t *Table) Get() []store.Row {
	return t.Data
}

// Lookup scans the cached rows for a matching id. Ids compare stringified,
// so a numeric 1 matches a string "1".
func (t *Table) Lookup(id any) (store.Row, bool) {
	want := fmt.Sprint(id)

	for _, row := range t.Data {
		if row.IDString() == want {
			return row, true
		}
	}

	return nil, false
}

// GetByID fetches a single row live from the backing store, bypassing the
// cache
func (t *Table) GetByID(ctx context.Context, id any) (store.Row, error) {
	return t.store.SelectByID(ctx, t.Name, id)
}

// Insert stores a new row. On success the cache is patched with the row the
// database materialized; on failure the cache is untouched.
func (t *Table) Insert(ctx context.Context, row store.Row) (store.Row, error) {
	created, err := t.store.Insert(ctx, t.Name, row)
	if err != nil {
		return nil, err
	}

	t.Data = ApplyInsert(t.Data, created)

	return created, nil
}

// UpdateByID patches a row. On success the cache reflects the updated row;
// on failure the cache is untouched.
func (t *Table) UpdateByID(ctx context.Context, id any, patch store.Row) (store.Row, error) {
	updated, err := t.store.UpdateByID(ctx, t.Name, id, patch)
	if err != nil {
		return nil, err
	}

	t.Data = ApplyUpdate(t.Data, id, updated)

	return updated, nil
}

// DeleteByID removes a row. On success the cached row is dropped; on failure
// the cache is untouched.
func (t *Table) DeleteByID(ctx context.Context, id any) error {
	if err := t.store.DeleteByID(ctx, t.Name, id); err != nil {
		return err
	}

	t.Data = ApplyDelete(t.Data, id)

	return nil
}

// inferFields derives field metadata from the first row of data when the
// registry carries no shape for the table. With no data either, the table
// still gets a synthetic primary key so downstream code has a shape to work
// with.
func inferFields(rows []store.Row) []registry.Field {
	if len(rows) == 0 {
		return []registry.Field{{Name: "id", Kind: registry.KindNumber, Required: true, PrimaryKey: true}}
	}

	first := rows[0]
	names := make([]string, 0, len(first))

	for name := range first {
		if name == "id" {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	fields := make([]registry.Field, 0, len(first))
	fields = append(fields, registry.Field{Name: "id", Kind: inferKind(first["id"]), Required: true, PrimaryKey: true})

	for _, name := range names {
		fields = append(fields, registry.Field{Name: name, Kind: inferKind(first[name])})
	}

	return fields
}

func inferKind(value any) registry.FieldKind {
	switch value.(type) {
	case bool:
		return registry.KindBool
	case int, int32, int64, float32, float64:
		return registry.KindNumber
	case time.Time:
		return registry.KindDate
	case []any, []string:
		return registry.KindArray
	default:
		return registry.KindString
	}
}
