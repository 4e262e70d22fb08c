package store

import (
	"context"
	"fmt"
)

// Row is one record of a table as an open key-value map. Known tables get
// their shape from the registry; the store itself makes no shape guarantees.
type Row map[string]any

// ID returns the row's primary key value, or nil when absent
func (r Row) ID() any {
	return r["id"]
}

// IDString returns the row's primary key stringified, so numeric and string
// ids compare equal ("1" == 1)
func (r Row) IDString() string {
	id, ok := r["id"]
	if !ok || id == nil {
		return ""
	}

	return fmt.Sprint(id)
}

// Store is the capability the loader is handed for talking to the backing
// database. Each operation is independently fallible; none retries or
// synthesizes timeouts beyond honoring ctx.
type Store interface {
	SelectAll(ctx context.Context, table string) ([]Row, error)
	SelectByID(ctx context.Context, table string, id any) (Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	UpdateByID(ctx context.Context, table string, id any, patch Row) (Row, error)
	DeleteByID(ctx context.Context, table string, id any) error
	Close()
}
