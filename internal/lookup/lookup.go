// Package lookup lists the top-level declarations of a clang-style AST dump
// that belong to one source file, or prints the full JSON of the ones with a
// given name.
package lookup

import (
	"fmt"
	"io"

	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/formatter"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/mcncl/jsonshape/internal/registry"
)

// Options selects what a Finder reports
type Options struct {
	// Source is compared with the loc.file of every entry.
	Source string
	// Element, when set, switches from the summary table to printing the
	// JSON of every in-file entry with this name.
	Element string
}

// Finder scans the inner arrays of a document and writes its report to out.
// In-file entries are grouped by kind as they are found.
type Finder struct {
	out       io.Writer
	config    *config.Config
	opts      Options
	formatter *formatter.Formatter
	groups    *registry.InfoList
	matched   int
	printed   int
	err       error
}

// NewFinder creates a Finder. A nil config means the defaults.
func NewFinder(out io.Writer, cfg *config.Config, opts Options) *Finder {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Finder{
		out:       out,
		config:    cfg,
		opts:      opts,
		formatter: formatter.NewFormatter(cfg.Lookup.TextIndent),
		groups:    registry.NewInfoList(),
	}
}

// Run scans every root member tagged with the inner key. The root must be an
// object; entries with missing kind, name or loc are reported as far as
// possible and never stop the scan.
func (f *Finder) Run(ir models.IntermediateRepresentation) error {
	if ir.Root.Kind() != models.KindObject {
		return errors.NewDocumentError(
			fmt.Sprintf("expected an object at the root, found %s", ir.Root.Kind()),
			errors.ErrNotObject,
		)
	}

	for _, member := range ir.Root.Members() {
		if member.TagIs(f.config.Lookup.InnerKey) && member.Kind() == models.KindArray {
			f.scanInner(member)
		}
	}

	if f.err != nil {
		return errors.NewOutputError("failed to write lookup results", f.err)
	}
	return nil
}

// scanInner writes one bracketed block for an inner array. clang only writes
// loc.file when it differs from the previous entry, so entries without one
// stay in whichever file was seen last.
func (f *Finder) scanInner(inner *models.Value) {
	inTarget := false
	haveElement := false

	f.printf("[")
	for i, entry := range inner.Children() {
		kind := entry.Find("kind").Str()
		name := entry.Find("name").Str()

		if file, ok := locationFile(entry); ok {
			inTarget = file == f.opts.Source
			if inTarget && f.opts.Element == "" {
				f.printf("---- %s---- \n", file)
			}
		}
		if !inTarget {
			continue
		}

		f.matched++
		f.groups.Group(kind, entry)

		if f.opts.Element == "" {
			f.printf("%4d : %30s %40s\n", i, kind, name)
			continue
		}
		if name == f.opts.Element {
			if haveElement {
				f.printf(",")
			}
			f.printf("\n%s", f.formatter.Format(entry, f.config.Lookup.TextIndent))
			haveElement = true
			f.printed++
		}
	}
	f.printf("\n]\n")
}

// locationFile returns the file an entry was declared in. Macro expansions
// keep it under loc.expansionLoc instead of loc.
func locationFile(entry *models.Value) (string, bool) {
	loc := entry.Find("loc")
	for _, candidate := range []*models.Value{loc, loc.Find("expansionLoc")} {
		if file := candidate.Find("file"); file.Kind() == models.KindString {
			return file.Str(), true
		}
	}
	return "", false
}

// Groups returns the in-file entries grouped by kind, in first-seen order.
// Entries without a kind are counted by Matched but not grouped.
func (f *Finder) Groups() *registry.InfoList {
	return f.groups
}

// Matched returns the number of entries found in the source file.
func (f *Finder) Matched() int {
	return f.matched
}

// Printed returns the number of elements written in element mode.
func (f *Finder) Printed() int {
	return f.printed
}

// WriteGroups writes one line per kind with the number of in-file entries.
func (f *Finder) WriteGroups() error {
	f.printf("---- kinds ----\n")
	for i := 0; i < f.groups.GetCount(); i++ {
		info := f.groups.FindInfoElementByIndex(i)
		f.printf("%4d : %30s %6d\n", i+1, info.GetName(), info.GetCount())
	}
	if f.err != nil {
		return errors.NewOutputError("failed to write kind groups", f.err)
	}
	return nil
}

func (f *Finder) printf(format string, args ...any) {
	if f.err != nil {
		return
	}
	if _, err := fmt.Fprintf(f.out, format, args...); err != nil {
		f.err = err
	}
}
