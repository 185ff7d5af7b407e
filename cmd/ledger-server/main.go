package main

import (
	"fmt"
	"os"

	"ledger/internal/cli"
)

// ledger-server is "ledger serve" with logs on stdout, for running under a
// process supervisor or in a container.
func main() {
	app := cli.NewApp()
	app.LogOutput = os.Stdout

	args := append([]string{"serve"}, os.Args[1:]...)
	if err := cli.Execute(app, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
