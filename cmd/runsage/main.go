package main

import (
	"os"

	"github.com/runsage/runsage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
