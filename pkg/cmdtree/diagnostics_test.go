// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiagnosticsAddRemove(t *testing.T) {
	ds := newDiagnostics(4)
	a := Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "a"}
	b := Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "b"}
	out := Diagnostic{Category: CategoryMissingRequired, Kind: KindOption, Short: 'o', Name: "out", Arity: Exactly(1)}
	for _, d := range []Diagnostic{a, b, out} {
		if !ds.Add(d) {
			t.Fatalf("Add(%v) = false", d)
		}
	}

	if !ds.Remove(a) {
		t.Fatal("Remove(a) = false")
	}
	// The last entry takes the removed slot.
	if diff := cmp.Diff([]Diagnostic{out, b}, ds.All(), cmp.AllowUnexported(Arity{})); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if ds.Remove(a) {
		t.Error("second Remove(a) = true")
	}

	// Arity is not part of the key.
	if !ds.Remove(Diagnostic{Category: CategoryMissingRequired, Kind: KindOption, Short: 'o', Name: "out"}) {
		t.Error("Remove ignoring arity = false")
	}
	// Kind is.
	if ds.Remove(Diagnostic{Category: CategoryMissingRequired, Kind: KindOption, Name: "b"}) {
		t.Error("Remove with wrong kind = true")
	}
	if ds.Len() != 1 || !ds.Has(CategoryMissingRequired, "b") {
		t.Errorf("remaining = %v", ds.All())
	}
}

func TestDiagnosticsOverflow(t *testing.T) {
	ds := newDiagnostics(2)
	for i := range 5 {
		ds.Add(Diagnostic{Category: CategoryInternal, Name: strings.Repeat("x", i+1)})
	}
	if ds.Len() != 2 {
		t.Errorf("Len = %d, want 2", ds.Len())
	}
	if ds.Dropped() != 3 {
		t.Errorf("Dropped = %d, want 3", ds.Dropped())
	}
}

func TestDiagnosticsSeedIgnoresLimit(t *testing.T) {
	ds := newDiagnostics(1)
	for _, name := range []string{"a", "b", "c"} {
		ds.seed(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: name})
	}
	if ds.Len() != 3 || ds.Dropped() != 0 {
		t.Fatalf("Len = %d, Dropped = %d; want 3, 0", ds.Len(), ds.Dropped())
	}
	for _, name := range []string{"a", "b", "c"} {
		if !ds.Remove(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: name}) {
			t.Errorf("Remove(%q) = false", name)
		}
	}
	if ds.Len() != 0 || ds.Dropped() != 0 {
		t.Errorf("after removal Len = %d, Dropped = %d; want 0, 0", ds.Len(), ds.Dropped())
	}
	if !ds.Add(Diagnostic{Category: CategoryUnrecognized, Kind: KindOption, Name: "--x"}) {
		t.Error("Add into an emptied list was dropped")
	}
}

func TestDiagnosticsSorted(t *testing.T) {
	ds := newDiagnostics(8)
	ds.Add(Diagnostic{Category: CategoryInternal, Name: "i"})
	ds.Add(Diagnostic{Category: CategoryUnrecognized, Kind: KindOption, Name: "--x"})
	ds.Add(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "a"})
	ds.Add(Diagnostic{Category: CategoryInvalidArity, Kind: KindOption, Name: "n", Arity: Exactly(2)})
	ds.Add(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "b"})

	var cats []Category
	for _, d := range ds.Sorted() {
		cats = append(cats, d.Category)
	}
	want := []Category{CategoryMissingRequired, CategoryMissingRequired, CategoryInvalidArity, CategoryUnrecognized, CategoryInternal}
	if diff := cmp.Diff(want, cats); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	// Sorting works on a copy.
	if ds.All()[0].Category != CategoryInternal {
		t.Error("Sorted reordered the collector")
	}
}

func TestRenderReport(t *testing.T) {
	tests := []struct {
		name  string
		diags []Diagnostic
		want  string
	}{
		{
			name: "missing joined on one line",
			diags: []Diagnostic{
				{Category: CategoryMissingRequired, Kind: KindPositional, Name: "src"},
				{Category: CategoryMissingRequired, Kind: KindOption, Short: 'o', Name: "out"},
				{Category: CategoryMissingRequired, Kind: KindOption, Name: "level"},
			},
			want: "prog: error: the following arguments are required: src, -o/--out, --level\n",
		},
		{
			name:  "exact arity singular",
			diags: []Diagnostic{{Category: CategoryInvalidArity, Kind: KindOption, Short: 'o', Name: "out", Arity: Exactly(1)}},
			want:  "prog: error: option -o/--out expected 1 argument\n",
		},
		{
			name:  "exact arity plural",
			diags: []Diagnostic{{Category: CategoryInvalidArity, Kind: KindOption, Name: "pair", Arity: Exactly(2)}},
			want:  "prog: error: option --pair expected 2 arguments\n",
		},
		{
			name:  "minimum arity",
			diags: []Diagnostic{{Category: CategoryInvalidArity, Kind: KindOption, Short: 'f', Name: "file", Arity: AtLeast(3)}},
			want:  "prog: error: option -f/--file expected at least 3 arguments\n",
		},
		{
			name: "unrecognized kinds",
			diags: []Diagnostic{
				{Category: CategoryUnrecognized, Kind: KindSubcommand, Name: "bogus"},
			},
			want: "prog: error: unrecognized subcommand: bogus\n",
		},
		{
			name:  "internal",
			diags: []Diagnostic{{Category: CategoryInternal, Name: "invalid argument string detected"}},
			want:  "prog: error: internal error - invalid argument string detected\n",
		},
		{
			name:  "none",
			diags: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := newDiagnostics(16)
			for _, d := range tt.diags {
				ds.Add(d)
			}
			f := NewFormatter(1024)
			n := ds.Render(f, "prog")
			if diff := cmp.Diff(tt.want, f.String()); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
			if n != len(tt.want) {
				t.Errorf("Render returned %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestRenderReportOrdersCategories(t *testing.T) {
	ds := newDiagnostics(16)
	ds.Add(Diagnostic{Category: CategoryUnrecognized, Kind: KindOption, Name: "--bad"})
	ds.Add(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "src"})
	f := NewFormatter(1024)
	ds.Render(f, "prog")
	want := "prog: error: the following arguments are required: src\n" +
		"prog: error: unrecognized option: --bad\n"
	if got := f.String(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderReportDropped(t *testing.T) {
	ds := newDiagnostics(1)
	ds.Add(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "a"})
	ds.Add(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "b"})
	f := NewFormatter(1024)
	ds.Render(f, "prog")
	if !strings.HasSuffix(f.String(), "prog: error: too many errors were generated\n") {
		t.Errorf("Render = %q", f.String())
	}
}

func TestRenderReportTruncates(t *testing.T) {
	ds := newDiagnostics(4)
	ds.Add(Diagnostic{Category: CategoryMissingRequired, Kind: KindPositional, Name: "a-very-long-positional-name"})
	f := NewFormatter(20)
	n := ds.Render(f, "prog")
	if n != 20 || !f.Truncated() {
		t.Errorf("Render = %d, Truncated = %v", n, f.Truncated())
	}
}
