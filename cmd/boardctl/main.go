// Package main is the entry point for boardctl, the command line client of
// the project board service.
package main

import (
	"io"
	"os"

	"github.com/jsamuelsen11/projectboard/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		_, _ = io.WriteString(stderr, cli.FormatError(err)+"\n")
	}
	return cli.ExitCode(err)
}
