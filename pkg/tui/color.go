// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Mode selects when output is colored.
type Mode int

const (
	ModeAuto Mode = iota
	ModeAlways
	ModeNever
)

func (m Mode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	}
	return "auto"
}

// ParseMode parses "auto", "always" or "never". The empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	}
	return ModeAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

var (
	getenv         = os.Getenv
	isTerminalFn   = term.IsTerminal
	headingAttrs   = []color.Attribute{color.Bold}
	errorAttrs     = []color.Attribute{color.FgRed, color.Bold}
	highlightAttrs = []color.Attribute{color.FgCyan}
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer decides whether output written to f is colored. In auto
// mode color is used only for terminals, and never when NO_COLOR is set or
// TERM is empty or "dumb".
func NewColorizer(mode Mode, f *os.File) Colorizer {
	switch mode {
	case ModeAlways:
		return Colorizer{Enabled: true}
	case ModeNever:
		return Colorizer{}
	}
	if getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	if t := getenv("TERM"); t == "" || t == "dumb" {
		return Colorizer{}
	}
	if f == nil || !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// Wrap colors text with attrs when c is enabled.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 || text == "" {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

// Usage highlights the usage line prefix and the block headings of a
// rendered usage text.
func (c Colorizer) Usage(text string) string {
	if !c.Enabled {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "usage: "):
			lines[i] = c.Wrap("usage:", headingAttrs...) + c.Wrap(strings.TrimPrefix(line, "usage:"), highlightAttrs...)
		case line != "" && !strings.HasPrefix(line, " ") && strings.HasSuffix(line, ":"):
			lines[i] = c.Wrap(line, headingAttrs...)
		}
	}
	return strings.Join(lines, "\n")
}

// Errors highlights the "error:" marker of every line of a rendered error
// report.
func (c Colorizer) Errors(text string) string {
	if !c.Enabled {
		return text
	}
	const marker = "error:"
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		prog, rest, ok := strings.Cut(line, ": "+marker)
		if !ok {
			continue
		}
		lines[i] = prog + ": " + c.Wrap(marker, errorAttrs...) + rest
	}
	return strings.Join(lines, "\n")
}

// Failure styles a short failure marker such as "FAIL".
func (c Colorizer) Failure(text string) string {
	return c.Wrap(text, errorAttrs...)
}
