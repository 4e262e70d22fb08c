package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/relation"
)

func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:        "info",
		Usage:       "Display one row in detail",
		ArgsUsage:   " <table> <id>",
		Description: `Fetch a single row live from the database and print every field. Foreign keys resolve to their detailed display form.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected exactly 2 arguments, got %d", cmd.Args().Len())
			}

			rt, err := initializeRuntime(ctx, cmd)
			if err != nil {
				return err
			}

			defer rt.Close()

			table := cmd.Args().First()
			id := cmd.Args().Get(1)

			return withSpinner(rt.cfg.Output, "Fetching row...", func() error {
				return runInfo(ctx, os.Stdout, rt, table, id)
			})
		},
	}
}

func runInfo(ctx context.Context, w io.Writer, rt *runtime, tableName, id string) error {
	table, err := rt.catalog.Load(ctx, tableName)
	if err != nil {
		return err
	}

	row, err := table.GetByID(ctx, id)
	if err != nil {
		return err
	}

	mappings := relation.MappingsFor(tableName, "detail")

	var mapped map[string]string

	if len(mappings) > 0 {
		if _, err := rt.catalog.LoadAll(ctx, relation.ReferencedTables(mappings)); err != nil {
			return err
		}

		mapped = rt.resolver.MapFieldsLive(ctx, row, mappings)
	}

	fmt.Fprintf(w, "%s #%s\n\n", tableName, id)
	rt.formatter.RenderDetail(w, table.Fields, row, mapped)

	return nil
}
