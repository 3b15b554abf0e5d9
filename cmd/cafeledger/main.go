package main

import (
	"os"

	"github.com/jcjr031064/cafe-ledger-flow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
