// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

var ansiRE = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func withEnv(t *testing.T, env map[string]string, tty bool) {
	t.Helper()
	oldGetenv, oldIsTerminal := getenv, isTerminalFn
	t.Cleanup(func() {
		getenv, isTerminalFn = oldGetenv, oldIsTerminal
	})
	getenv = func(k string) string { return env[k] }
	isTerminalFn = func(int) bool { return tty }
}

func TestNewColorizer(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		env  map[string]string
		tty  bool
		want bool
	}{
		{"always ignores env", ModeAlways, map[string]string{"NO_COLOR": "1"}, false, true},
		{"never", ModeNever, map[string]string{"TERM": "xterm"}, true, false},
		{"auto on terminal", ModeAuto, map[string]string{"TERM": "xterm"}, true, true},
		{"auto not a terminal", ModeAuto, map[string]string{"TERM": "xterm"}, false, false},
		{"auto NO_COLOR", ModeAuto, map[string]string{"TERM": "xterm", "NO_COLOR": "1"}, true, false},
		{"auto dumb", ModeAuto, map[string]string{"TERM": "dumb"}, true, false},
		{"auto no TERM", ModeAuto, nil, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env, tt.tty)
			if got := NewColorizer(tt.mode, os.Stdout).Enabled; got != tt.want {
				t.Errorf("Enabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "auto": ModeAuto, "ALWAYS": ModeAlways, "never": ModeNever} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("ParseMode(sometimes) succeeded")
	}
}

const usageText = "usage: prog src [options...]\n\nCopies files\n\nArguments:\n  src             Source\n\nOptions:\n  -h, --help      Returns this help message\n"

func TestColorizerUsage(t *testing.T) {
	if got := (Colorizer{}).Usage(usageText); got != usageText {
		t.Errorf("disabled Usage changed text: %q", got)
	}

	got := Colorizer{Enabled: true}.Usage(usageText)
	if got == usageText {
		t.Fatal("enabled Usage did not style anything")
	}
	if stripANSI(got) != usageText {
		t.Errorf("styled text differs once escapes are removed:\n%q", stripANSI(got))
	}
	for _, line := range strings.Split(got, "\n") {
		plain := stripANSI(line)
		styled := line != plain
		heading := plain == "Arguments:" || plain == "Options:" || strings.HasPrefix(plain, "usage:")
		if styled != heading {
			t.Errorf("line %q styled = %v", plain, styled)
		}
	}
}

func TestColorizerErrors(t *testing.T) {
	text := "prog: error: unrecognized option: --x\nprog: error: internal error - y\n"
	if got := (Colorizer{}).Errors(text); got != text {
		t.Errorf("disabled Errors changed text: %q", got)
	}
	got := Colorizer{Enabled: true}.Errors(text)
	if stripANSI(got) != text {
		t.Errorf("styled text differs once escapes are removed: %q", stripANSI(got))
	}
	if n := len(ansiRE.FindAllString(got, -1)); n != 4 {
		t.Errorf("found %d escapes, want 4 (one pair per line)", n)
	}
}

func TestColorizerFailure(t *testing.T) {
	if got := (Colorizer{}).Failure("FAIL"); got != "FAIL" {
		t.Errorf("disabled Failure = %q", got)
	}
	got := Colorizer{Enabled: true}.Failure("FAIL")
	if got == "FAIL" || stripANSI(got) != "FAIL" {
		t.Errorf("enabled Failure = %q", got)
	}
}
