// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Arity is the number of arguments an option consumes after its own token.
// It is either an exact count or a minimum with no upper bound.
type Arity struct {
	n       uint32
	atLeast bool
}

// Exactly returns an Arity consuming exactly n arguments.
func Exactly(n uint32) Arity { return Arity{n: n} }

// AtLeast returns an Arity consuming n or more arguments. Consumption stops
// at the first argument starting with "-" or at the end of input.
func AtLeast(n uint32) Arity { return Arity{n: n, atLeast: true} }

// Min returns the minimum number of arguments.
func (a Arity) Min() int { return int(a.n) }

// Variadic reports whether the arity has no upper bound.
func (a Arity) Variadic() bool { return a.atLeast }

// IsZero reports whether the option takes no arguments at all.
func (a Arity) IsZero() bool { return a.n == 0 && !a.atLeast }

// String returns the textual form accepted by ParseArity.
func (a Arity) String() string {
	if a.atLeast {
		return strconv.FormatUint(uint64(a.n), 10) + "+"
	}
	return strconv.FormatUint(uint64(a.n), 10)
}

// ParseArity parses an arity from text. Accepted forms are "N" (exactly N),
// "N+" (N or more), "*" (zero or more), "+" (one or more) and the empty
// string (no arguments).
func ParseArity(s string) (Arity, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return Exactly(0), nil
	case "*":
		return AtLeast(0), nil
	case "+":
		return AtLeast(1), nil
	}
	atLeast := strings.HasSuffix(s, "+")
	n, err := strconv.ParseUint(strings.TrimSuffix(s, "+"), 10, 32)
	if err != nil {
		return Arity{}, fmt.Errorf("cmdtree: invalid arity %q", s)
	}
	if atLeast {
		return AtLeast(uint32(n)), nil
	}
	return Exactly(uint32(n)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Arity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Arity) UnmarshalText(text []byte) error {
	v, err := ParseArity(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Positional declares an argument bound by position. Every declared
// positional is required.
type Positional struct {
	Name string
	Help string
}

// Option declares a flag. Long is required; Short is optional and zero when
// absent.
type Option struct {
	Short    rune
	Long     string
	Help     string
	Arity    Arity
	Required bool
}

// RunFunc is invoked by Result.Run and Result.RunAll. program is the root
// level of the resolved chain and command the level the callback belongs to.
type RunFunc func(ctx context.Context, program, command *CommandResult) error

// Command is one node of the specification tree. The tree is owned by the
// caller, is never modified by the parser and must outlive the Result.
type Command struct {
	// Name is the command name. The root may leave it empty, in which case
	// the program name derived from the first argument is used.
	Name        string
	Help        string
	Positionals []Positional
	Options     []Option
	Subcommands []Command
	Run         RunFunc
}

// Depth returns the number of levels in the deepest branch of the tree,
// counting c itself.
func (c *Command) Depth() int {
	deepest := 0
	for i := range c.Subcommands {
		deepest = max(deepest, c.Subcommands[i].Depth())
	}
	return 1 + deepest
}

// Subcommand returns the first direct subcommand whose name starts with
// name. Declaration order decides between several candidates.
func (c *Command) Subcommand(name string) (*Command, bool) {
	if name == "" {
		return nil, false
	}
	for i := range c.Subcommands {
		if strings.HasPrefix(c.Subcommands[i].Name, name) {
			return &c.Subcommands[i], true
		}
	}
	return nil, false
}

// Lookup follows path through the subcommand tree and returns the chain of
// commands from c to the last element of path.
func (c *Command) Lookup(path ...string) ([]*Command, error) {
	chain := []*Command{c}
	cur := c
	for _, name := range path {
		next, ok := cur.Subcommand(name)
		if !ok {
			return nil, fmt.Errorf("cmdtree: unknown subcommand %q", name)
		}
		chain = append(chain, next)
		cur = next
	}
	return chain, nil
}
