package main

import (
	"os"

	"github.com/itemhub-dev/itemhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
