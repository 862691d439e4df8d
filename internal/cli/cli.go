// Package cli holds the command lines of jsonschema and jsonparse and the
// code that runs them against a set of process streams.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
)

// Version information
const (
	Version = "0.1.0"
)

// Streams are the process streams a command reads from and writes to
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the streams of the current process
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Globals are the flags both tools accept
type Globals struct {
	Config  string `help:"Path to a config file. Defaults to the nearest .jsonshape.yml." type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// NewLogger returns a text logger writing to w. Records below level are
// dropped; the level can be raised or lowered after creation.
func NewLogger(w io.Writer, level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup creates the logger and loads the configuration. A negative indent
// leaves the configured indent alone.
func (g Globals) setup(stderr io.Writer, indent int) (*config.Config, *slog.Logger, error) {
	level := new(slog.LevelVar)
	if g.Debug {
		level.Set(slog.LevelDebug)
	}
	logger := NewLogger(stderr, level)

	path := g.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(path, indent, g.Debug)
	if err != nil {
		return nil, nil, errors.NewConfigError(fmt.Sprintf("could not load '%s'", path), err)
	}
	if cfg.Dev.Debug {
		level.Set(slog.LevelDebug)
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	return cfg, logger, nil
}

func newParser(name, description string, grammar any, options []kong.Option) (*kong.Kong, error) {
	return kong.New(grammar, append([]kong.Option{
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
	}, options...)...)
}
