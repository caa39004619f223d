package main

import (
	"os"

	"github.com/kilianc/hlx/cmd/hlx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
