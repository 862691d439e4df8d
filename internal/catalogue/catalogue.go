// Package catalogue keeps the ordered set of distinct "kind" values seen
// while walking a document.
package catalogue

import (
	"fmt"
	"io"
)

// Catalogue is an insertion-ordered set of strings. Entries are never removed.
// A Catalogue is not safe for concurrent use; give each walk its own.
type Catalogue struct {
	entries []string
	seen    map[string]struct{}
}

// New creates an empty Catalogue.
func New() *Catalogue {
	return &Catalogue{
		entries: make([]string, 0),
		seen:    make(map[string]struct{}),
	}
}

// Contains reports whether s has been appended before.
func (c *Catalogue) Contains(s string) bool {
	_, ok := c.seen[s]
	return ok
}

// Append adds s unless it is already present. It reports whether s was added.
func (c *Catalogue) Append(s string) bool {
	if c.Contains(s) {
		return false
	}
	c.seen[s] = struct{}{}
	c.entries = append(c.entries, s)
	return true
}

// Count returns the number of distinct entries.
func (c *Catalogue) Count() int {
	return len(c.entries)
}

// Get returns the i-th entry in first-seen order.
func (c *Catalogue) Get(i int) (string, bool) {
	if i < 0 || i >= len(c.entries) {
		return "", false
	}
	return c.entries[i], true
}

// Entries returns a copy of the entries in first-seen order.
func (c *Catalogue) Entries() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// WriteTo writes one numbered line per entry, starting at 1.
func (c *Catalogue) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, entry := range c.entries {
		n, err := fmt.Fprintf(w, "%2d : %s\n", i+1, entry)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
