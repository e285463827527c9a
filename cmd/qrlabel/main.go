package main

import (
	"os"

	"github.com/aki/qrlabel/internal/cli/commands"
	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/mcp"
)

func main() {
	os.Exit(run())
}

func run() int {
	mcp.Version = commands.Version

	if err := commands.Execute(); err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
		return 1
	}
	return 0
}
