package relation

import (
	"context"
	"fmt"

	"github.com/tablerail/tablerail/internal/catalog"
	"github.com/tablerail/tablerail/internal/logging"
)

// Formatter turns a foreign key value into a display string using whatever
// loaded tables it needs
type Formatter func(id any, c *catalog.Catalog) string

// FieldMapping declares how one foreign key field of a table renders. Either
// DisplayField names the column to show from the target table, or Formatter
// composes the string itself.
type FieldMapping struct {
	SourceField  string
	TargetTable  string
	DisplayField string
	Label        string
	UseAPI       bool
	Formatter    Formatter
}

// Resolve maps a foreign key to a display value by scanning the target
// table's cached rows. Ids compare stringified. Misses return the fallback,
// never an error; a broken reference still renders.
func Resolve(id any, table *catalog.Table, displayField, fallback string) string {
	if id == nil || table == nil {
		return fallback
	}

	row, ok := table.Lookup(id)
	if !ok {
		return fallback
	}

	value, ok := row[displayField]
	if !ok || value == nil || value == "" {
		return fallback
	}

	return fmt.Sprint(value)
}

// Resolver resolves foreign keys against a catalog, live or cached
type Resolver struct {
	catalog *catalog.Catalog
	logger  *logging.Logger
}

// NewResolver creates a resolver over a catalog
func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{
		catalog: c,
		logger:  logging.GetLogger().WithField("component", "resolver"),
	}
}

// Resolve maps a foreign key using the catalog's cached snapshot of the
// target table
func (r *Resolver) Resolve(id any, targetTable, displayField, fallback string) string {
	table, ok := r.catalog.Get(targetTable)
	if !ok {
		return fallback
	}

	return Resolve(id, table, displayField, fallback)
}

// ResolveLive maps a foreign key with a point query against the backing
// store, bypassing the cache. Errors degrade to the fallback string.
func (r *Resolver) ResolveLive(ctx context.Context, id any, targetTable, displayField, fallback string) string {
	if id == nil {
		return fallback
	}

	table, err := r.catalog.Load(ctx, targetTable)
	if err != nil {
		return fallback
	}

	row, err := table.GetByID(ctx, id)
	if err != nil {
		r.logger.WithFields(map[string]any{"table": targetTable, "id": id}).
			ErrorWithErr("failed to resolve relation", err)

		return fallback
	}

	value, ok := row[displayField]
	if !ok || value == nil || value == "" {
		return fallback
	}

	return fmt.Sprint(value)
}

// MapFields renders every mapped foreign key of a row against the cached
// tables, keyed by the source field. Labels prefix their value.
func (r *Resolver) MapFields(row map[string]any, mappings []FieldMapping) map[string]string {
	result := make(map[string]string, len(mappings))

	for _, m := range mappings {
		value := row[m.SourceField]

		var display string

		if m.Formatter != nil {
			display = m.Formatter(value, r.catalog)
		} else {
			display = r.Resolve(value, m.TargetTable, m.DisplayField, "Unknown")
		}

		if m.Label != "" {
			display = m.Label + ": " + display
		}

		result[m.SourceField] = display
	}

	return result
}

// MapFieldsLive is MapFields with live point queries for the mappings that
// ask for them
func (r *Resolver) MapFieldsLive(ctx context.Context, row map[string]any, mappings []FieldMapping) map[string]string {
	result := make(map[string]string, len(mappings))

	for _, m := range mappings {
		value := row[m.SourceField]

		var display string

		switch {
		case m.Formatter != nil:
			display = m.Formatter(value, r.catalog)
		case m.UseAPI:
			display = r.ResolveLive(ctx, value, m.TargetTable, m.DisplayField, "Unknown")
		default:
			display = r.Resolve(value, m.TargetTable, m.DisplayField, "Unknown")
		}

		if m.Label != "" {
			display = m.Label + ": " + display
		}

		result[m.SourceField] = display
	}

	return result
}
