// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"fmt"

	"tailscale.com/types/logger"
)

// Default capacities used when the matching Config field is zero.
const (
	DefaultMaxDepth       = 8
	DefaultMaxOptions     = 64
	DefaultMaxDiagnostics = 64
	DefaultUsageCapacity  = 4096
	DefaultErrorCapacity  = 4096
)

// maxProgramName bounds the program name derived from the first argument.
const maxProgramName = 256

// Config bounds the storage a parse may use. The zero value is ready to use.
type Config struct {
	// MaxDepth is the deepest command chain accepted. A tree deeper than
	// this is a programming error and makes Parse panic.
	MaxDepth int
	// MaxOptions is the number of parsed options stored across all levels.
	// Further options fail the parse with an internal diagnostic.
	MaxOptions int
	// MaxDiagnostics is the number of diagnostics stored. Further ones are
	// counted and dropped. The missing-required entries of each level are
	// always stored and do not count against the limit.
	MaxDiagnostics int
	// UsageCapacity and ErrorCapacity bound the rendered usage and error
	// text in bytes.
	UsageCapacity int
	ErrorCapacity int

	// ProgramName overrides the name derived from the first argument.
	ProgramName string

	// Logf, if non-nil, receives a trace of the parse.
	Logf logger.Logf
}

// withDefaults returns c with zero fields replaced by their defaults. It
// panics on negative capacities.
func (c Config) withDefaults() Config {
	fields := []struct {
		name string
		v    *int
		def  int
	}{
		{"MaxDepth", &c.MaxDepth, DefaultMaxDepth},
		{"MaxOptions", &c.MaxOptions, DefaultMaxOptions},
		{"MaxDiagnostics", &c.MaxDiagnostics, DefaultMaxDiagnostics},
		{"UsageCapacity", &c.UsageCapacity, DefaultUsageCapacity},
		{"ErrorCapacity", &c.ErrorCapacity, DefaultErrorCapacity},
	}
	for _, f := range fields {
		switch {
		case *f.v < 0:
			panic(fmt.Sprintf("cmdtree: negative Config.%s %d", f.name, *f.v))
		case *f.v == 0:
			*f.v = f.def
		}
	}
	if c.Logf == nil {
		c.Logf = logger.Discard
	}
	return c
}
