package main

import (
	"os"

	"github.com/dgallion1/heatsheet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
