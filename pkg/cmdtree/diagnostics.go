// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"slices"
	"strings"
)

// Category classifies a validation failure. Reports list categories in
// this order.
type Category int

const (
	CategoryMissingRequired Category = iota
	CategoryInvalidArity
	CategoryUnrecognized
	CategoryInternal
	categoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryMissingRequired:
		return "missing-required-argument"
	case CategoryInvalidArity:
		return "invalid-arity"
	case CategoryUnrecognized:
		return "unrecognized-argument"
	case CategoryInternal:
		return "internal"
	}
	return "unknown"
}

// ArgKind is the kind of argument a diagnostic is about.
type ArgKind int

const (
	KindNone ArgKind = iota
	KindOption
	KindPositional
	KindSubcommand
)

func (k ArgKind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindPositional:
		return "positional"
	case KindSubcommand:
		return "subcommand"
	}
	return "argument"
}

// Diagnostic is a single validation failure.
//
// Category, Kind, Short and Name together identify a diagnostic.
type Diagnostic struct {
	Category Category
	Kind     ArgKind
	Short    rune
	// Name is the option long name, the positional or subcommand name, the
	// offending raw argument for unrecognized input, or the detail of an
	// internal error.
	Name string
	// Arity is the declared arity for option diagnostics.
	Arity Arity
}

func (d Diagnostic) sameKey(o Diagnostic) bool {
	return d.Category == o.Category && d.Kind == o.Kind && d.Short == o.Short && d.Name == o.Name
}

// Diagnostics collects the validation failures of one parse. Entries are
// stored in no particular order.
type Diagnostics struct {
	entries []Diagnostic
	limit   int
	dropped int
}

func newDiagnostics(limit int) *Diagnostics {
	return &Diagnostics{entries: make([]Diagnostic, 0, limit), limit: limit}
}

// Add records d. When the collector is full the entry is dropped, counted and
// false is returned.
func (ds *Diagnostics) Add(d Diagnostic) bool {
	if ds.limit > 0 && len(ds.entries) >= ds.limit {
		ds.dropped++
		return false
	}
	ds.entries = append(ds.entries, d)
	return true
}

// seed records a missing-required entry for a newly entered level. Seeds
// are not subject to the limit: their number is bounded by the command tree
// and each one is removed again once its argument shows up.
func (ds *Diagnostics) seed(d Diagnostic) {
	ds.entries = append(ds.entries, d)
}

// Remove deletes the first entry with the same key as d by moving the last
// entry into its slot. It reports whether an entry was removed.
func (ds *Diagnostics) Remove(d Diagnostic) bool {
	for i := range ds.entries {
		if !ds.entries[i].sameKey(d) {
			continue
		}
		last := len(ds.entries) - 1
		ds.entries[i] = ds.entries[last]
		ds.entries = ds.entries[:last]
		return true
	}
	return false
}

// Len returns the number of stored diagnostics.
func (ds *Diagnostics) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.entries)
}

// Dropped returns how many diagnostics did not fit.
func (ds *Diagnostics) Dropped() int {
	if ds == nil {
		return 0
	}
	return ds.dropped
}

// All returns a copy of the stored diagnostics in storage order.
func (ds *Diagnostics) All() []Diagnostic {
	if ds == nil {
		return nil
	}
	return slices.Clone(ds.entries)
}

// Sorted returns a copy of the diagnostics grouped by category. Order within
// a category is unspecified.
func (ds *Diagnostics) Sorted() []Diagnostic {
	out := ds.All()
	slices.SortFunc(out, func(a, b Diagnostic) int {
		return int(a.Category) - int(b.Category)
	})
	return out
}

// Has reports whether a diagnostic with the given category and name is
// stored.
func (ds *Diagnostics) Has(cat Category, name string) bool {
	if ds == nil {
		return false
	}
	return slices.ContainsFunc(ds.entries, func(d Diagnostic) bool {
		return d.Category == cat && d.Name == name
	})
}

// Render writes the report for the stored diagnostics to f, one line per
// category entry except missing arguments, which share a single line. It
// returns the number of bytes written.
func (ds *Diagnostics) Render(f *Formatter, program string) int {
	return renderReport(f, program, ds.Sorted(), ds.Dropped())
}

func renderReport(f *Formatter, program string, sorted []Diagnostic, dropped int) int {
	var counts [categoryCount]int
	for _, d := range sorted {
		if d.Category >= 0 && d.Category < categoryCount {
			counts[d.Category]++
		}
	}

	n := 0
	var seen [categoryCount]int
	for _, d := range sorted {
		if d.Category < 0 || d.Category >= categoryCount {
			continue
		}
		idx := seen[d.Category]
		seen[d.Category]++

		switch d.Category {
		case CategoryMissingRequired:
			if idx == 0 {
				n += f.Appendf("%s: error: the following arguments are required: ", program)
			}
			if d.Kind == KindOption {
				n += f.Append(optionName(d.Short, d.Name))
			} else {
				n += f.Append(d.Name)
			}
			if idx < counts[d.Category]-1 {
				n += f.Append(", ")
			} else {
				n += f.AppendRune('\n')
			}
		case CategoryInvalidArity:
			n += f.Appendf("%s: error: option %s expected ", program, optionName(d.Short, d.Name))
			if d.Arity.Variadic() {
				n += f.Append("at least ")
			}
			n += f.Appendf("%d argument", d.Arity.Min())
			if d.Arity.Min() > 1 {
				n += f.AppendRune('s')
			}
			n += f.AppendRune('\n')
		case CategoryUnrecognized:
			n += f.Appendf("%s: error: unrecognized %s: %s\n", program, d.Kind, d.Name)
		case CategoryInternal:
			n += f.Appendf("%s: error: internal error - %s\n", program, d.Name)
		}
	}
	if dropped > 0 {
		n += f.Appendf("%s: error: too many errors were generated\n", program)
	}
	return n
}

// optionName formats an option as "-x/--long" or "--long".
func optionName(short rune, long string) string {
	var b strings.Builder
	if short != 0 {
		b.WriteByte('-')
		b.WriteRune(short)
	}
	if short != 0 && long != "" {
		b.WriteByte('/')
	}
	if long != "" {
		b.WriteString("--")
		b.WriteString(long)
	}
	return b.String()
}
