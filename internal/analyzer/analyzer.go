package analyzer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/jsonshape/internal/catalogue"
	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/models"
)

// Analyzer walks a JSON value tree and writes an indented description of its
// shape: one line per scalar, a bracketed block per array or object.
// String values under kind keys are collected in a catalogue as a side effect.
//
// An Analyzer holds per-walk state and must not be shared between goroutines.
type Analyzer struct {
	out   io.Writer
	kinds *catalogue.Catalogue
	// config holds the key sets and indent step
	config *config.Config
	// visited counts described nodes by kind
	visited map[models.Kind]int
	// err is the first write error; later writes are skipped
	err error
}

// NewAnalyzer creates an Analyzer with the default configuration.
// A nil catalogue is replaced by an empty one.
func NewAnalyzer(out io.Writer, kinds *catalogue.Catalogue) *Analyzer {
	return NewAnalyzerWithConfig(out, kinds, config.NewConfig())
}

// NewAnalyzerWithConfig creates an Analyzer with custom configuration.
func NewAnalyzerWithConfig(out io.Writer, kinds *catalogue.Catalogue, cfg *config.Config) *Analyzer {
	if kinds == nil {
		kinds = catalogue.New()
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Analyzer{
		out:     out,
		kinds:   kinds,
		config:  cfg,
		visited: make(map[models.Kind]int),
	}
}

// Analyze describes the document root at indent 0. The walk itself cannot
// fail; the returned error is the first error from the output writer.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation) error {
	a.Describe(ir.Root, 0)
	return a.err
}

// Kinds returns the catalogue the Analyzer feeds.
func (a *Analyzer) Kinds() *catalogue.Catalogue {
	return a.kinds
}

// Visited returns how many nodes of each kind have been described so far.
func (a *Analyzer) Visited() map[models.Kind]int {
	out := make(map[models.Kind]int, len(a.visited))
	for k, n := range a.visited {
		out[k] = n
	}
	return out
}

// Describe writes the shape of v and its descendants, left-padded by indent
// spaces. A nil value or a value of kind None produces no output.
func (a *Analyzer) Describe(v *models.Value, indent int) {
	if indent < 0 {
		indent = 0
	}

	kind := v.Kind()
	switch {
	case kind == models.KindString:
		a.visited[kind]++
		a.describeString(v, indent)
	case kind.IsScalar():
		a.visited[kind]++
		a.describeScalar(v, indent)
	case kind == models.KindArray:
		a.visited[kind]++
		a.describeArray(v, indent)
	case kind == models.KindObject:
		a.visited[kind]++
		a.describeObject(v, indent)
	}
}

func (a *Analyzer) describeScalar(v *models.Value, indent int) {
	tag, _ := v.Tag()
	a.printf("%s%s : %s\n", pad(indent), tag, v.Kind())
}

// describeString prints the value itself only for value keys, and records
// it in the catalogue for kind keys.
func (a *Analyzer) describeString(v *models.Value, indent int) {
	tag, hasTag := v.Tag()
	a.printf("%s%s : String ", pad(indent), tag)
	if hasTag && a.config.IsKindKey(tag) {
		a.kinds.Append(v.Str())
	}
	if hasTag && a.config.IsValueKey(tag) {
		a.printf("%s", v.Str())
	}
	a.printf("\n")
}

func (a *Analyzer) describeArray(v *models.Value, indent int) {
	a.printf("%s%s [\n", pad(indent), tagPrefix(v))
	for _, child := range v.Children() {
		a.Describe(child, indent+a.config.Indent)
	}
	a.printf("%s]\n", pad(indent))
}

func (a *Analyzer) describeObject(v *models.Value, indent int) {
	if v.Len() == 0 {
		a.printf("%s%s{ }\n", pad(indent), tagPrefix(v))
		return
	}
	a.printf("%s%s{\n", pad(indent), tagPrefix(v))
	for _, member := range v.Members() {
		a.Describe(member, indent+a.config.Indent)
	}
	a.printf("%s}\n", pad(indent))
}

func (a *Analyzer) printf(format string, args ...any) {
	if a.err != nil || a.out == nil {
		return
	}
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		a.err = err
	}
}

// tagPrefix returns the tag followed by a space, or "" for untagged values.
func tagPrefix(v *models.Value) string {
	tag, ok := v.Tag()
	if !ok {
		return ""
	}
	return tag + " "
}

func pad(indent int) string {
	return strings.Repeat(" ", indent)
}
