package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/config"
)

func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Display the active configuration",
		Description: `Show the current active configuration including all settings from file, environment variables, and command-line flags.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadActiveConfig(ctx, cmd)
			if err != nil {
				return err
			}

			return runConfig(os.Stdout, cfg)
		},
	}
}

func runConfig(w io.Writer, cfg *config.Config) error {
	fmt.Fprintln(w, "Active Configuration:")

	fmt.Fprintln(w, "\nDatabase:")
	fmt.Fprintf(w, "  URL: %s\n", redactURL(cfg.Database.URL))
	fmt.Fprintf(w, "  Max Connections: %d\n", cfg.Database.MaxConnections)
	fmt.Fprintf(w, "  Min Connections: %d\n", cfg.Database.MinConnections)
	fmt.Fprintf(w, "  Conn Max Lifetime: %s\n", cfg.Database.ConnMaxLifetime)
	fmt.Fprintf(w, "  Conn Max Idle Time: %s\n", cfg.Database.ConnMaxIdleTime)

	fmt.Fprintln(w, "\nLogging:")
	fmt.Fprintf(w, "  Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  Format: %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  Output: %s\n", cfg.Logging.Output)

	if cfg.Logging.Output == "file" {
		fmt.Fprintf(w, "  File: %s\n", cfg.Logging.File)
	}

	fmt.Fprintln(w, "\nOutput:")
	fmt.Fprintf(w, "  Currency: %s\n", cfg.Output.Currency)
	fmt.Fprintf(w, "  Color: %t\n", cfg.Output.Color)
	fmt.Fprintf(w, "  Spinner: %t\n", cfg.Output.Spinner)

	return nil
}

// redactURL hides the password portion of a connection string
func redactURL(url string) string {
	if url == "" {
		return "(not set)"
	}

	parsed, err := config.RedactDatabaseURL(url)
	if err != nil {
		return "(set)"
	}

	return parsed
}
