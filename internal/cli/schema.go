package cli

import (
	"bufio"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonshape/internal/analyzer"
	"github.com/mcncl/jsonshape/internal/catalogue"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/mcncl/jsonshape/internal/parser"
)

// SchemaCLI is the jsonschema command line
type SchemaCLI struct {
	Globals

	Indent   int    `help:"Indentation step for nested values. Negative uses the configured step." default:"-1"`
	Filename string `arg:"" optional:"" help:"JSON document to describe, or - for stdin."`
}

// NewSchemaParser builds the jsonschema argument parser around c
func NewSchemaParser(c *SchemaCLI, options ...kong.Option) (*kong.Kong, error) {
	return newParser("jsonschema", "Describe the shape of a JSON document and list the kinds it contains.", c, options)
}

// Run prints the shape of the document followed by the numbered list of
// kinds found in it.
func (c *SchemaCLI) Run(streams Streams) error {
	if c.Version {
		fmt.Fprintf(streams.Out, "jsonschema version %s\n", Version)
		return nil
	}
	if c.Filename == "" {
		return errors.NewInputError("missing filename", errors.ErrInvalidFilePath)
	}

	cfg, logger, err := c.setup(streams.Err, c.Indent)
	if err != nil {
		return err
	}

	var ir models.IntermediateRepresentation
	if c.Filename == "-" {
		ir, err = parser.Parse(streams.In)
	} else {
		ir, err = parser.ParseFile(c.Filename)
	}
	if err != nil {
		return err
	}
	logger.Debug("parsed document", "file", c.Filename, "root", ir.Root.Kind().String(), "rootIsArray", ir.RootIsArray)

	out := bufio.NewWriter(streams.Out)
	walker := analyzer.NewAnalyzerWithConfig(out, catalogue.New(), cfg)
	if err := walker.Analyze(ir); err != nil {
		return errors.NewOutputError("failed to write the shape", err)
	}
	if _, err := walker.Kinds().WriteTo(out); err != nil {
		return errors.NewOutputError("failed to write the kinds", err)
	}
	if err := out.Flush(); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}

	visited := walker.Visited()
	attrs := []any{"kinds", walker.Kinds().Count()}
	for kind := models.KindInt; kind <= models.KindObject; kind++ {
		if n := visited[kind]; n > 0 {
			attrs = append(attrs, kind.String(), n)
		}
	}
	logger.Debug("walk finished", attrs...)

	return nil
}
