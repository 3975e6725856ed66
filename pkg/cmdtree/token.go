// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"strings"
	"unicode/utf8"
)

const (
	helpShort = 'h'
	helpLong  = "help"
	delimiter = "--"
)

// tokenKind classifies a single raw argument.
type tokenKind int

const (
	tokenInvalid tokenKind = iota
	tokenShortOption
	tokenLongOption
	tokenPositional
	tokenSubcommand
	tokenDelimiter
)

func (k tokenKind) String() string {
	switch k {
	case tokenShortOption:
		return "short option"
	case tokenLongOption:
		return "long option"
	case tokenPositional:
		return "positional"
	case tokenSubcommand:
		return "subcommand"
	case tokenDelimiter:
		return "delimiter"
	}
	return "invalid"
}

type token struct {
	kind tokenKind
	// value is the argument without its leading dashes. For short options
	// it holds only the first character after the dash.
	value string
	raw   string
}

// levelState is the part of the parser position that classification
// depends on.
type levelState struct {
	declared   int  // positionals declared on the current command
	bound      int  // positionals bound so far
	dispatched bool // a subcommand was dispatched from this level
}

// classify turns a raw argument into a token. It does not modify st.
func classify(st levelState, arg string) token {
	if arg == "" {
		return token{kind: tokenInvalid, raw: arg}
	}
	dashes := len(arg) - len(strings.TrimLeft(arg, "-"))
	switch {
	case dashes == 1:
		// Combined short flags like -abc are not split.
		rest := arg[1:]
		_, size := utf8.DecodeRuneInString(rest)
		return token{kind: tokenShortOption, value: rest[:size], raw: arg}
	case dashes == 2 && len(arg) == 2:
		return token{kind: tokenDelimiter, raw: arg}
	case dashes == 2:
		return token{kind: tokenLongOption, value: arg[2:], raw: arg}
	}
	if st.bound >= st.declared && !st.dispatched {
		return token{kind: tokenSubcommand, value: arg, raw: arg}
	}
	return token{kind: tokenPositional, value: arg, raw: arg}
}

// isOption reports whether t is a short or long option token.
func (t token) isOption() bool {
	return t.kind == tokenShortOption || t.kind == tokenLongOption
}

// matches compares an option token against a short and long name. A single
// character matches the short name; otherwise the token must be a leading
// part of the long name.
func (t token) matches(short rune, long string) bool {
	if !t.isOption() || t.value == "" {
		return false
	}
	if r, size := utf8.DecodeRuneInString(t.value); size == len(t.value) && short != 0 && r == short {
		return true
	}
	return strings.HasPrefix(long, t.value)
}

// isHelp reports whether t requests help.
func (t token) isHelp() bool {
	return t.matches(helpShort, helpLong)
}
