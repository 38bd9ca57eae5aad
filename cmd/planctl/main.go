package main

import (
	"os"

	"github.com/mkrawiec/netplanner/cmd/planctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
