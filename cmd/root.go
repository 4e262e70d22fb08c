package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/errors"
)

// Execute runs the CLI and reports the outcome to stderr
func Execute() error {
	err := RootCommand().Run(context.Background(), os.Args)
	if err != nil {
		printError(err)
	}

	return err
}

// RootCommand assembles the full command tree
func RootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tablerail",
		Usage: "Inspect and edit the school's operational tables",
		Description: `tablerail is an admin tool for a lesson-booking school. It loads the
registered database tables, resolves foreign keys into readable labels,
and supports searching, filtering, sorting, and row-level edits.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "Postgres connection string (overrides configuration)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "YAML file with additional table definitions",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "no-spinner",
				Usage: "Disable the progress spinner",
			},
		},
		Commands: []*cli.Command{
			TablesCommand(),
			ListCommand(),
			InfoCommand(),
			AddCommand(),
			UpdateCommand(),
			DeleteCommand(),
			ConfigCommand(),
		},
	}
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)

	for _, suggestion := range errors.Suggestions(err) {
		fmt.Fprintln(os.Stderr, "  hint:", suggestion)
	}
}
