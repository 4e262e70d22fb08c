package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/relation"
	"github.com/tablerail/tablerail/internal/store"
	"github.com/tablerail/tablerail/internal/view"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List the rows of a table",
		ArgsUsage:   " <table>",
		Description: `Load a table and print its rows. Rows can be narrowed with a search term and field filters, and ordered by any sortable field. Foreign keys resolve to readable labels with --resolve.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Case-insensitive search over the table's search fields",
			},
			&cli.StringSliceFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Filter as field=value; repeat for more fields, comma-separate alternatives",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Field to sort by",
			},
			&cli.BoolFlag{
				Name:  "desc",
				Usage: "Sort descending",
			},
			&cli.BoolFlag{
				Name:  "resolve",
				Usage: "Resolve foreign keys to display labels",
			},
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Bypass the session cache and fetch fresh rows",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", cmd.Args().Len())
			}

			rt, err := initializeRuntime(ctx, cmd)
			if err != nil {
				return err
			}

			defer rt.Close()

			opts := listOptions{
				table:   cmd.Args().First(),
				search:  cmd.String("search"),
				filters: cmd.StringSlice("filter"),
				sort:    cmd.String("sort"),
				desc:    cmd.Bool("desc"),
				resolve: cmd.Bool("resolve"),
				refresh: cmd.Bool("refresh"),
			}

			return withSpinner(rt.cfg.Output, "Loading "+opts.table+"...", func() error {
				return runList(ctx, os.Stdout, rt, opts)
			})
		},
	}
}

type listOptions struct {
	table   string
	search  string
	filters []string
	sort    string
	desc    bool
	resolve bool
	refresh bool
}

func runList(ctx context.Context, w io.Writer, rt *runtime, opts listOptions) error {
	crit, err := buildCriteria(rt, opts)
	if err != nil {
		return err
	}

	load := rt.catalog.Load
	if opts.refresh {
		load = rt.catalog.Refresh
	}

	table, err := load(ctx, opts.table)
	if err != nil {
		return err
	}

	if table.Err != nil {
		return table.Err
	}

	rows := view.Apply(table.Data, crit, table.SearchFields)

	mappings := relation.MappingsFor(opts.table, "table")
	if opts.resolve && len(mappings) > 0 {
		if _, err := rt.catalog.LoadAll(ctx, relation.ReferencedTables(mappings)); err != nil {
			return err
		}

		rows = resolveRows(rt, rows, mappings)
	}

	if err := rt.formatter.RenderTable(w, table.Fields, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d of %d rows\n", len(rows), len(table.Data))

	return nil
}

// buildCriteria validates the flags against the table's registered catalogs
// and assembles the view criteria
func buildCriteria(rt *runtime, opts listOptions) (view.Criteria, error) {
	var crit view.Criteria

	meta, registered := rt.registry.Lookup(opts.table)

	if opts.search != "" && registered && len(meta.SearchFields) == 0 {
		return crit, fmt.Errorf("table %s has no searchable fields", opts.table)
	}

	crit.Search = opts.search

	known := make(map[string]bool)

	if registered {
		for _, field := range meta.Fields {
			known[field.Name] = true
		}
	}

	for _, raw := range opts.filters {
		field, value, found := strings.Cut(raw, "=")
		if !found || field == "" || value == "" {
			return crit, fmt.Errorf("invalid filter %q: expected field=value", raw)
		}

		if len(known) > 0 && !known[field] {
			return crit, fmt.Errorf("unknown filter field %q for table %s", field, opts.table)
		}

		for _, alternative := range strings.Split(value, ",") {
			crit.ToggleFilter(field, alternative)
		}
	}

	if opts.sort != "" {
		direction := "asc"
		if opts.desc {
			direction = "desc"
		}

		crit.SetSort(opts.sort, direction)
	}

	return crit, nil
}

// resolveRows swaps mapped foreign key values for their display strings
func resolveRows(rt *runtime, rows []store.Row, mappings []relation.FieldMapping) []store.Row {
	out := make([]store.Row, len(rows))

	for i, row := range rows {
		mapped := rt.resolver.MapFields(row, mappings)

		clone := make(store.Row, len(row))
		for k, v := range row {
			clone[k] = v
		}

		for field, display := range mapped {
			clone[field] = display
		}

		out[i] = clone
	}

	return out
}
