package cmd

import (
	"github.com/tablerail/tablerail/internal/config"
	"github.com/tablerail/tablerail/internal/registry"
	"github.com/tablerail/tablerail/internal/testutil"
)

func testRuntime(mem *testutil.MemoryStore) *runtime {
	cfg := &config.Config{
		Output: config.OutputConfig{Currency: "EUR", Color: false, Spinner: false},
	}

	return newRuntime(cfg, registry.Default(), mem)
}
