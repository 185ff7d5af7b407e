package main

import (
	"fmt"
	"os"

	"ledger/internal/cli"
)

func main() {
	app := cli.NewApp()
	if err := cli.Execute(app, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
