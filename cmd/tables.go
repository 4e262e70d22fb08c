package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/registry"
)

func TablesCommand() *cli.Command {
	return &cli.Command{
		Name:        "tables",
		Usage:       "List the registered tables",
		Description: `Show every table the tool is allowed to touch, with its description. Unregistered tables are rejected by every other command.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "role",
				Usage: "Limit to a role's tables: admin, student, teacher",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := registry.Default()

			if path := cmd.String("registry"); path != "" {
				if err := reg.LoadFile(path); err != nil {
					return err
				}
			}

			return runTables(os.Stdout, reg, cmd.String("role"))
		},
	}
}

func runTables(w io.Writer, reg *registry.Registry, role string) error {
	names, err := tablesForRole(reg, role)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "TABLE\tDESCRIPTION")

	for _, name := range names {
		meta, ok := reg.Lookup(name)
		if !ok {
			continue
		}

		fmt.Fprintf(tw, "%s\t%s\n", meta.Name, meta.Description)
	}

	return tw.Flush()
}

func tablesForRole(reg *registry.Registry, role string) ([]string, error) {
	switch role {
	case "":
		return reg.TableNames(), nil
	case "admin":
		return registry.AdminTables, nil
	case "student":
		return registry.StudentTables, nil
	case "teacher":
		return registry.TeacherTables, nil
	default:
		return nil, fmt.Errorf("unknown role %q: expected admin, student, or teacher", role)
	}
}
