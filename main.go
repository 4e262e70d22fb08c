package main

import (
	"os"

	"github.com/tablerail/tablerail/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
