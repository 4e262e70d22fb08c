package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/config"
	"github.com/tablerail/tablerail/internal/logging"
)

type contextKey string

const configContextKey contextKey = "config"

// withConfig stores an already-loaded configuration in the context, mainly
// so tests can pin one
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configContextKey).(*config.Config); ok {
		return cfg
	}

	return nil
}

// loadActiveConfig resolves the configuration for a command invocation:
// the context-pinned config when present, otherwise a fresh load with the
// root flags applied. Logging and color state follow the result.
func loadActiveConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	if cfg := getConfigFromContext(ctx); cfg != nil {
		return cfg, nil
	}

	cfg, err := config.LoadConfigWithOverrides(map[string]interface{}{
		"database-url": cmd.String("database-url"),
		"log-level":    cmd.String("log-level"),
		"no-color":     cmd.Bool("no-color"),
		"no-spinner":   cmd.Bool("no-spinner"),
	})
	if err != nil {
		return nil, err
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, err
	}

	if !cfg.Output.Color {
		color.NoColor = true
	}

	return cfg, nil
}
