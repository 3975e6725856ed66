// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeetrun/cmdtree/pkg/cmdtree"
	"tailscale.com/util/set"
)

// Validate checks every level of cmd for declarations the parser cannot
// tell apart or never reaches. All problems are reported together.
func Validate(cmd *cmdtree.Command) error {
	var errs []error
	validate(cmd, cmd.Name, &errs)
	return errors.Join(errs...)
}

func validate(cmd *cmdtree.Command, path string, errs *[]error) {
	at := label(path)
	fail := func(format string, args ...any) {
		*errs = append(*errs, fmt.Errorf("%s: "+format, append([]any{at}, args...)...))
	}

	positionals := make(set.Set[string])
	for i, p := range cmd.Positionals {
		switch {
		case p.Name == "":
			fail("positional %d has no name", i)
		case positionals.Contains(p.Name):
			fail("duplicate positional %q", p.Name)
		}
		positionals.Add(p.Name)
	}

	shorts := make(set.Set[rune])
	longs := make(set.Set[string])
	var longOrder []string
	for i, o := range cmd.Options {
		switch {
		case o.Long == "":
			fail("option %d has no long name", i)
		case strings.HasPrefix(o.Long, "-"):
			fail("option --%s: long name must not start with a dash", o.Long)
		case strings.HasPrefix("help", o.Long):
			fail("option --%s is shadowed by --help", o.Long)
		case longs.Contains(o.Long):
			fail("duplicate option --%s", o.Long)
		default:
			if prev, ok := shadowedBy(longOrder, o.Long); ok {
				fail("option --%s is shadowed by --%s", o.Long, prev)
			}
		}
		longs.Add(o.Long)
		longOrder = append(longOrder, o.Long)

		switch {
		case o.Short == 0:
		case o.Short == 'h':
			fail("option --%s: -h is reserved for help", o.Long)
		case o.Short == '-':
			fail("option --%s: short name must not be a dash", o.Long)
		case shorts.Contains(o.Short):
			fail("duplicate short option -%c", o.Short)
		}
		shorts.Add(o.Short)
	}

	names := make(set.Set[string])
	var nameOrder []string
	for i := range cmd.Subcommands {
		sub := &cmd.Subcommands[i]
		switch {
		case sub.Name == "":
			fail("subcommand %d has no name", i)
		case strings.HasPrefix(sub.Name, "-"):
			fail("subcommand %q must not start with a dash", sub.Name)
		case names.Contains(sub.Name):
			fail("duplicate subcommand %q", sub.Name)
		default:
			if prev, ok := shadowedBy(nameOrder, sub.Name); ok {
				fail("subcommand %q is shadowed by %q", sub.Name, prev)
			}
		}
		names.Add(sub.Name)
		nameOrder = append(nameOrder, sub.Name)
		validate(sub, joinPath(path, sub.Name), errs)
	}
}

// shadowedBy returns the first of the earlier declared names that name is a
// leading part of. The parser resolves abbreviations to the first match, so
// such a name can never be selected.
func shadowedBy(earlier []string, name string) (string, bool) {
	for _, prev := range earlier {
		if strings.HasPrefix(prev, name) {
			return prev, true
		}
	}
	return "", false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + " " + name
}

func label(path string) string {
	if path == "" {
		return "root command"
	}
	return fmt.Sprintf("command %q", path)
}
