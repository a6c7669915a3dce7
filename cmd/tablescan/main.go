// Package main provides the tablescan command-line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/tablescan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
