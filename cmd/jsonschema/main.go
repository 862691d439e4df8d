package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonshape/internal/cli"
	"github.com/mcncl/jsonshape/internal/errors"
)

func main() {
	var c cli.SchemaCLI

	// Parse CLI arguments with Kong
	parser, err := cli.NewSchemaParser(&c, kong.Exit(exit))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	_, err = parser.Parse(os.Args[1:])
	// Prints the error and the usage, then exits
	parser.FatalIfErrorf(err)

	if err := c.Run(cli.StdStreams()); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonschema --help\n")
		os.Exit(1)
	}
}

// exit maps every failure, usage errors included, to status 1
func exit(code int) {
	if code != 0 {
		code = 1
	}
	os.Exit(code)
}
