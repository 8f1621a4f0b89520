package main

import (
	"os"

	"github.com/karim/itqan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
