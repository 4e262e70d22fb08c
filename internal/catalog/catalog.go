package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tablerail/tablerail/internal/errors"
	"github.com/tablerail/tablerail/internal/logging"
	"github.com/tablerail/tablerail/internal/registry"
	"github.com/tablerail/tablerail/internal/store"
)

// Catalog loads tables from the backing store and keeps one in-memory
// snapshot per table. A table is fetched at most once per session unless
// explicitly refreshed.
type Catalog struct {
	store    store.Store
	registry *registry.Registry
	logger   *logging.Logger

	mu     sync.Mutex
	tables map[string]*Table
}

// New creates a catalog over a store and a table registry
func New(st store.Store, reg *registry.Registry) *Catalog {
	return &Catalog{
		store:    st,
		registry: reg,
		logger: logging.GetLogger().WithFields(map[string]any{
			"component":  "catalog",
			"session_id": uuid.NewString(),
		}),
		tables: make(map[string]*Table),
	}
}

// Load returns the table, fetching its rows on first use. An unregistered
// table name fails fast before any fetch. A failed fetch still yields a
// table, with empty data and Err set, so the caller can render the failure
// in place.
func (c *Catalog) Load(ctx context.Context, name string) (*Table, error) {
	if !c.registry.Allowed(name) {
		return nil, errors.NewTableError(name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if table, loaded := c.tables[name]; loaded {
		return table, nil
	}

	table := c.fetch(ctx, name)
	c.tables[name] = table

	return table, nil
}

// LoadAll loads a batch of tables, skipping duplicates within the batch and
// tables already loaded. Any unregistered name fails the whole batch before
// a single fetch.
func (c *Catalog) LoadAll(ctx context.Context, names []string) ([]*Table, error) {
	for _, name := range names {
		if !c.registry.Allowed(name) {
			return nil, errors.NewTableError(name)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]*Table, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}

		seen[name] = true

		table, loaded := c.tables[name]
		if !loaded {
			table = c.fetch(ctx, name)
			c.tables[name] = table
		}

		result = append(result, table)
	}

	return result, nil
}

// Refresh drops the cached snapshot and fetches the table again
func (c *Catalog) Refresh(ctx context.Context, name string) (*Table, error) {
	if !c.registry.Allowed(name) {
		return nil, errors.NewTableError(name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	table := c.fetch(ctx, name)
	c.tables[name] = table

	return table, nil
}

// Get returns an already-loaded table without touching the store
func (c *Catalog) Get(name string) (*Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, ok := c.tables[name]

	return table, ok
}

// Loaded reports the names of all tables with a cached snapshot
func (c *Catalog) Loaded() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}

	return names
}

// fetch pulls the rows and assembles the table entity. Caller holds c.mu.
func (c *Catalog) fetch(ctx context.Context, name string) *Table {
	table := &Table{Name: name, store: c.store}

	if meta, ok := c.registry.Lookup(name); ok {
		table.Description = meta.Description
		table.Fields = meta.Fields
		table.FilterOptions = meta.FilterOptions
		table.SortOptions = meta.SortOptions
		table.Relationships = meta.Relationships
		table.SearchFields = meta.SearchFields
	}

	rows, err := c.store.SelectAll(ctx, name)
	if err != nil {
		c.logger.WithField("table", name).ErrorWithErr("failed to load table", err)

		table.Data = []store.Row{}
		table.Err = err
	} else {
		c.logger.WithFields(map[string]any{"table": name, "rows": len(rows)}).Debug("loaded table")

		table.Data = rows
	}

	if len(table.Fields) == 0 {
		table.Fields = inferFields(table.Data)
	}

	return table
}
