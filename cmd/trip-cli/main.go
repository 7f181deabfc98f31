// Package main provides the TripEngine CLI entrypoint.
package main

import (
	"os"

	"github.com/jembertrip/trip-engine/cmd/trip-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
