// Package main implements the entry point of the AVR firmware disassembler
package main

import (
	"context"
	"os"

	"github.com/charlie-x/simget/internal/cli"
	"github.com/charmbracelet/fang"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	rootCmd := cli.NewRootCommand(version, commit, date)
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
