package main

import (
	"os"

	"github.com/usleep/usleep-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
