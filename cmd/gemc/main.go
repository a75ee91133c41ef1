package main

import (
	"os"

	"github.com/caesar0301/wizagent/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
