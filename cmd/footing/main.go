package main

import (
	"os"

	"github.com/geolab/footing/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
