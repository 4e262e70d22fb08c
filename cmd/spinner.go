package cmd

import (
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/tablerail/tablerail/internal/config"
)

// withSpinner runs fn behind a terminal spinner when spinners are enabled
func withSpinner(cfg config.OutputConfig, message string, fn func() error) error {
	if !cfg.Spinner {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()

	defer s.Stop()

	return fn()
}
