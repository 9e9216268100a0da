package main

import (
	"os"

	"github.com/msto63/fnc/cmd/fnc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
