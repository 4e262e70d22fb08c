package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/catalog"
	"github.com/tablerail/tablerail/internal/errors"
	"github.com/tablerail/tablerail/internal/store"
)

func AddCommand() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Insert a row into a table",
		ArgsUsage:   " <table>",
		Description: `Insert a new row. Field values are given as repeated --set field=value flags; the database fills defaults and the generated id.`,
		Flags:       []cli.Flag{setFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", cmd.Args().Len())
			}

			rt, err := initializeRuntime(ctx, cmd)
			if err != nil {
				return err
			}

			defer rt.Close()

			return runAdd(ctx, os.Stdout, rt, cmd.Args().First(), cmd.StringSlice("set"))
		},
	}
}

func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:        "update",
		Usage:       "Update fields of a row",
		ArgsUsage:   " <table> <id>",
		Description: `Patch an existing row by id. Only the fields named in --set flags change.`,
		Flags:       []cli.Flag{setFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected exactly 2 arguments, got %d", cmd.Args().Len())
			}

			rt, err := initializeRuntime(ctx, cmd)
			if err != nil {
				return err
			}

			defer rt.Close()

			return runUpdate(ctx, os.Stdout, rt, cmd.Args().First(), cmd.Args().Get(1), cmd.StringSlice("set"))
		},
	}
}

func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:        "delete",
		Usage:       "Delete a row from a table",
		ArgsUsage:   " <table> <id>",
		Description: `Delete a row by id. Asks for confirmation unless --yes is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected exactly 2 arguments, got %d", cmd.Args().Len())
			}

			rt, err := initializeRuntime(ctx, cmd)
			if err != nil {
				return err
			}

			defer rt.Close()

			return runDelete(ctx, os.Stdout, os.Stdin, rt,
				cmd.Args().First(), cmd.Args().Get(1), cmd.Bool("yes"))
		},
	}
}

func setFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "set",
		Aliases: []string{"S"},
		Usage:   "Field assignment as field=value; repeat for more fields",
	}
}

func runAdd(ctx context.Context, w io.Writer, rt *runtime, tableName string, assignments []string) error {
	table, err := rt.catalog.Load(ctx, tableName)
	if err != nil {
		return err
	}

	row, err := parseAssignments(assignments, table)
	if err != nil {
		return err
	}

	if len(row) == 0 {
		return errors.New(errors.ErrTypeValidation, "nothing to insert: no --set flags given")
	}

	created, err := table.Insert(ctx, row)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Inserted %s #%s\n", tableName, created.IDString())

	return nil
}

func runUpdate(ctx context.Context, w io.Writer, rt *runtime, tableName, id string, assignments []string) error {
	table, err := rt.catalog.Load(ctx, tableName)
	if err != nil {
		return err
	}

	patch, err := parseAssignments(assignments, table)
	if err != nil {
		return err
	}

	if len(patch) == 0 {
		return errors.New(errors.ErrTypeValidation, "nothing to update: no --set flags given")
	}

	if _, err := table.UpdateByID(ctx, id, patch); err != nil {
		return err
	}

	fmt.Fprintf(w, "Updated %s #%s\n", tableName, id)

	return nil
}

func runDelete(ctx context.Context, w io.Writer, in io.Reader, rt *runtime, tableName, id string, confirmed bool) error {
	table, err := rt.catalog.Load(ctx, tableName)
	if err != nil {
		return err
	}

	if !confirmed {
		fmt.Fprintf(w, "Delete %s #%s? [y/N] ", tableName, id)

		answer, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(w, "Aborted")

			return nil
		}
	}

	if err := table.DeleteByID(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(w, "Deleted %s #%s\n", tableName, id)

	return nil
}

// parseAssignments turns repeated field=value pairs into a row. Values are
// decoded as JSON when they parse as such, so numbers, booleans, and arrays
// keep their types; anything else stays a string.
func parseAssignments(assignments []string, table *catalog.Table) (store.Row, error) {
	row := make(store.Row, len(assignments))

	known := make(map[string]bool, len(table.Fields))
	for _, field := range table.Fields {
		known[field.Name] = true
	}

	for _, raw := range assignments {
		field, value, found := strings.Cut(raw, "=")
		if !found || field == "" {
			return nil, errors.Newf(errors.ErrTypeValidation, "invalid assignment %q: expected field=value", raw)
		}

		if field == "id" {
			return nil, errors.New(errors.ErrTypeValidation, "the id field cannot be set directly")
		}

		if len(known) > 0 && !known[field] {
			return nil, errors.Newf(errors.ErrTypeValidation, "unknown field %q for table %s", field, table.Name)
		}

		row[field] = parseValue(value)
	}

	return row, nil
}

func parseValue(raw string) any {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}

	return raw
}
