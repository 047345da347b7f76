package main

import (
	"os"

	"github.com/martijn/clubhouse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
