// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		st        levelState
		arg       string
		wantKind  tokenKind
		wantValue string
	}{
		{"empty", levelState{}, "", tokenInvalid, ""},
		{"short", levelState{}, "-v", tokenShortOption, "v"},
		{"short keeps first char only", levelState{}, "-abc", tokenShortOption, "a"},
		{"short multibyte", levelState{}, "-é", tokenShortOption, "é"},
		{"lone dash", levelState{}, "-", tokenShortOption, ""},
		{"delimiter", levelState{}, "--", tokenDelimiter, ""},
		{"long", levelState{}, "--out", tokenLongOption, "out"},
		{"long with value text", levelState{}, "--out=x", tokenLongOption, "out=x"},
		{"three dashes is plain", levelState{}, "---x", tokenSubcommand, "---x"},
		{"positional slot open", levelState{declared: 2, bound: 1}, "file", tokenPositional, "file"},
		{"positionals bound", levelState{declared: 1, bound: 1}, "build", tokenSubcommand, "build"},
		{"no positionals", levelState{}, "build", tokenSubcommand, "build"},
		{"after dispatch", levelState{dispatched: true}, "build", tokenPositional, "build"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.st
			got := classify(tt.st, tt.arg)
			if got.kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.kind, tt.wantKind)
			}
			if got.value != tt.wantValue {
				t.Errorf("value = %q, want %q", got.value, tt.wantValue)
			}
			if got.raw != tt.arg {
				t.Errorf("raw = %q, want %q", got.raw, tt.arg)
			}
			if tt.st != before {
				t.Errorf("classify modified state: %+v", tt.st)
			}
		})
	}
}

func TestTokenMatches(t *testing.T) {
	tests := []struct {
		arg   string
		short rune
		long  string
		want  bool
	}{
		{"-o", 'o', "out", true},
		{"-o", 0, "out", true},
		{"-x", 'o', "out", false},
		{"--out", 'o', "out", true},
		{"--ou", 'o', "out", true},
		{"--output", 'o', "out", false},
		{"--o", 'o', "out", true},
		{"-", 'o', "out", false},
		{"out", 'o', "out", false},
	}
	for _, tt := range tests {
		tok := classify(levelState{}, tt.arg)
		if got := tok.matches(tt.short, tt.long); got != tt.want {
			t.Errorf("classify(%q).matches(%q, %q) = %v, want %v", tt.arg, tt.short, tt.long, got, tt.want)
		}
	}
}

func TestTokenIsHelp(t *testing.T) {
	for arg, want := range map[string]bool{
		"-h":       true,
		"--help":   true,
		"--he":     true,
		"--hel":    true,
		"-H":       false,
		"--helpme": false,
		"help":     false,
		"--":       false,
	} {
		if got := classify(levelState{}, arg).isHelp(); got != want {
			t.Errorf("isHelp(%q) = %v, want %v", arg, got, want)
		}
	}
}
