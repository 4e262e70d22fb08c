package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tablerail/tablerail/internal/catalog"
	"github.com/tablerail/tablerail/internal/config"
	"github.com/tablerail/tablerail/internal/formatter"
	"github.com/tablerail/tablerail/internal/registry"
	"github.com/tablerail/tablerail/internal/relation"
	"github.com/tablerail/tablerail/internal/store"
)

// runtime bundles everything a command needs: the registry, the catalog over
// the backing store, the relation resolver, and the output formatter
type runtime struct {
	cfg       *config.Config
	registry  *registry.Registry
	store     store.Store
	catalog   *catalog.Catalog
	resolver  *relation.Resolver
	formatter *formatter.Formatter
}

// initializeRuntime connects to the database and wires the runtime from the
// active configuration
func initializeRuntime(ctx context.Context, cmd *cli.Command) (*runtime, error) {
	cfg, err := loadActiveConfig(ctx, cmd)
	if err != nil {
		return nil, err
	}

	reg := registry.Default()

	if path := cmd.String("registry"); path != "" {
		if err := reg.LoadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load registry file: %w", err)
		}
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return newRuntime(cfg, reg, st), nil
}

// newRuntime wires a runtime over an already-open store
func newRuntime(cfg *config.Config, reg *registry.Registry, st store.Store) *runtime {
	cat := catalog.New(st, reg)

	return &runtime{
		cfg:       cfg,
		registry:  reg,
		store:     st,
		catalog:   cat,
		resolver:  relation.NewResolver(cat),
		formatter: formatter.New(cfg.Output),
	}
}

func (r *runtime) Close() {
	r.store.Close()
}
