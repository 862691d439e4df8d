package cli

import (
	"bufio"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/lookup"
	"github.com/mcncl/jsonshape/internal/parser"
)

// ParseCLI is the jsonparse command line
type ParseCLI struct {
	Globals

	// Input is matched against loc.file as given, so it is not a path flag
	Input   string `help:"Source file whose declarations are listed. <input>.json is read." short:"i"`
	Element string `help:"Print the JSON of every declaration with this name." short:"e"`
	Groups  bool   `help:"Print the number of declarations per kind after the listing." short:"g"`
}

// NewParseParser builds the jsonparse argument parser around c
func NewParseParser(c *ParseCLI, options ...kong.Option) (*kong.Kong, error) {
	return newParser("jsonparse", "List the declarations of a clang JSON AST dump that belong to one source file.", c, options)
}

// Run reads the dump that belongs to the input file and lists the
// declarations located in it.
func (c *ParseCLI) Run(streams Streams) error {
	if c.Version {
		fmt.Fprintf(streams.Out, "jsonparse version %s\n", Version)
		return nil
	}
	if c.Input == "" {
		return errors.NewInputError("missing source filename", errors.ErrMissingSource)
	}

	cfg, logger, err := c.setup(streams.Err, -1)
	if err != nil {
		return err
	}

	dump := cfg.SidecarPath(c.Input)
	ir, err := parser.ParseFile(dump)
	if err != nil {
		return err
	}
	logger.Debug("parsed dump", "file", dump)

	out := bufio.NewWriter(streams.Out)
	finder := lookup.NewFinder(out, cfg, lookup.Options{Source: c.Input, Element: c.Element})
	defer finder.Groups().Release()

	if err := finder.Run(ir); err != nil {
		return err
	}
	if c.Groups {
		if err := finder.WriteGroups(); err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}

	logger.Debug("lookup finished",
		"source", c.Input,
		"matched", finder.Matched(),
		"printed", finder.Printed(),
		"kinds", finder.Groups().GetCount(),
	)
	return nil
}
