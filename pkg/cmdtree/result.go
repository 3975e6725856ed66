// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrHelp is returned by Result.Err when help was requested.
var ErrHelp = errors.New("cmdtree: help requested")

// ParsedOption is one occurrence of an option in the input.
type ParsedOption struct {
	Short rune
	Long  string
	// Args are the arguments the option consumed. The slice aliases the
	// argument vector passed to Parse.
	Args []string
}

// CommandResult is one level of the resolved command chain.
type CommandResult struct {
	Name string
	// Positionals holds the bound positional arguments in declaration
	// order. It is never longer than Spec.Positionals.
	Positionals []string
	// Options are the options parsed at this level, in input order.
	Options []ParsedOption
	Run     RunFunc
	Spec    *Command
}

// Positional returns the i-th bound positional argument.
func (c *CommandResult) Positional(i int) (string, bool) {
	if c == nil || i < 0 || i >= len(c.Positionals) {
		return "", false
	}
	return c.Positionals[i], true
}

// HasPositional reports whether the i-th positional argument was bound.
func (c *CommandResult) HasPositional(i int) bool {
	_, ok := c.Positional(i)
	return ok
}

// Option returns the first parsed option called name. A one-character name
// is compared against short names, anything longer against long names.
func (c *CommandResult) Option(name string) (ParsedOption, bool) {
	if c == nil || name == "" {
		return ParsedOption{}, false
	}
	r, size := utf8.DecodeRuneInString(name)
	short := size == len(name)
	for _, o := range c.Options {
		if (short && o.Short == r) || (!short && o.Long == name) {
			return o, true
		}
	}
	return ParsedOption{}, false
}

// HasOption reports whether an option called name was parsed.
func (c *CommandResult) HasOption(name string) bool {
	_, ok := c.Option(name)
	return ok
}

// Result is the outcome of Parse.
type Result struct {
	// ProgramPath is the first argument as given.
	ProgramPath string
	// ProgramName is Config.ProgramName or the base name of ProgramPath
	// without its extension.
	ProgramName string
	// Options holds the parsed options of every level in input order.
	// Each CommandResult.Options is a part of it.
	Options []ParsedOption
	// Commands holds one entry per level of the resolved chain; index 0 is
	// the root.
	Commands    []CommandResult
	Diagnostics *Diagnostics
	Status      Status
	// Rest holds the arguments after a "--" delimiter. They are not parsed.
	Rest []string

	chain []*Command
	cfg   Config
}

// Program returns the root level.
func (r *Result) Program() *CommandResult {
	if len(r.Commands) == 0 {
		return nil
	}
	return &r.Commands[0]
}

// Leaf returns the deepest resolved level.
func (r *Result) Leaf() *CommandResult {
	if len(r.Commands) == 0 {
		return nil
	}
	return &r.Commands[len(r.Commands)-1]
}

// Path returns the names of the resolved chain, root first.
func (r *Result) Path() []string {
	names := make([]string, len(r.Commands))
	for i := range r.Commands {
		names[i] = r.Commands[i].Name
	}
	return names
}

// displayName is the name used to prefix error lines.
func (r *Result) displayName() string {
	if r.ProgramName != "" {
		return r.ProgramName
	}
	if p := r.Program(); p != nil {
		return p.Name
	}
	return ""
}

// Usage renders the usage text of the deepest resolved command.
func (r *Result) Usage() string {
	f := NewFormatter(r.cfg.UsageCapacity)
	renderUsage(f, r.Path(), r.chain)
	return f.String()
}

// ErrorText renders the diagnostics report. It is empty when the parse
// produced no diagnostics.
func (r *Result) ErrorText() string {
	f := NewFormatter(r.cfg.ErrorCapacity)
	r.Diagnostics.Render(f, r.displayName())
	return f.String()
}

// Err returns nil on success, ErrHelp when help was requested and a
// *ParseError otherwise.
func (r *Result) Err() error {
	switch r.Status {
	case StatusSuccess:
		return nil
	case StatusHelp:
		return ErrHelp
	}
	return &ParseError{Program: r.displayName(), Diagnostics: r.Diagnostics.Sorted(), Dropped: r.Diagnostics.Dropped()}
}

// Run invokes the callback of the deepest resolved command. A nil callback
// does nothing.
func (r *Result) Run(ctx context.Context) error {
	leaf := r.Leaf()
	if leaf == nil || leaf.Run == nil {
		return nil
	}
	return leaf.Run(ctx, r.Program(), leaf)
}

// RunAll invokes the callbacks of every resolved level, root first, and
// stops at the first error.
func (r *Result) RunAll(ctx context.Context) error {
	prog := r.Program()
	for i := range r.Commands {
		c := &r.Commands[i]
		if c.Run == nil {
			continue
		}
		if err := c.Run(ctx, prog, c); err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
	}
	return nil
}

// ParseError reports the diagnostics of a failed parse.
type ParseError struct {
	Program     string
	Diagnostics []Diagnostic
	Dropped     int
}

func (e *ParseError) Error() string {
	f := NewFormatter(DefaultErrorCapacity)
	renderReport(f, e.Program, e.Diagnostics, e.Dropped)
	return strings.TrimSuffix(f.String(), "\n")
}
