// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import "strings"

// minHelpColumn is the smallest column help text starts at.
const minHelpColumn = 16

const helpLabel = "-h, --help"

// optionLabel returns "-x, --long" or "--long".
func optionLabel(o *Option) string {
	if o.Short != 0 {
		return "-" + string(o.Short) + ", --" + o.Long
	}
	return "--" + o.Long
}

// helpColumn returns the column at which help text of cmd's entries starts.
func helpColumn(cmd *Command) int {
	widest := 0
	for i := range cmd.Positionals {
		widest = max(widest, displayWidth(cmd.Positionals[i].Name))
	}
	for i := range cmd.Options {
		widest = max(widest, displayWidth(optionLabel(&cmd.Options[i])))
	}
	for i := range cmd.Subcommands {
		widest = max(widest, displayWidth(cmd.Subcommands[i].Name))
	}
	return max(minHelpColumn, widest+4)
}

// usageLine returns the "usage: ..." line, without the newline, for the
// chain of commands. names holds the resolved name of every level.
func usageLine(names []string, chain []*Command) string {
	parts := []string{"usage:"}
	for i, cmd := range chain {
		if i < len(names) && names[i] != "" {
			parts = append(parts, names[i])
		}
		for j := range cmd.Options {
			o := &cmd.Options[j]
			if !o.Required {
				continue
			}
			if o.Arity.IsZero() {
				parts = append(parts, "--"+o.Long)
			} else {
				parts = append(parts, "--"+o.Long+" ARGS")
			}
		}
		for j := range cmd.Positionals {
			parts = append(parts, cmd.Positionals[j].Name)
		}
	}
	leaf := chain[len(chain)-1]
	if len(leaf.Options) > 0 {
		parts = append(parts, "[options...]")
	}
	if len(leaf.Subcommands) > 0 {
		parts = append(parts, "<command>")
	}
	return strings.Join(parts, " ")
}

// renderUsage writes the usage text of the last command in chain to f and
// returns the number of bytes written.
func renderUsage(f *Formatter, names []string, chain []*Command) int {
	if len(chain) == 0 {
		return 0
	}
	leaf := chain[len(chain)-1]
	col := helpColumn(leaf)

	n := f.Append(usageLine(names, chain))
	n += f.AppendRune('\n')
	if leaf.Help != "" {
		n += f.Appendf("\n%s\n", leaf.Help)
	}

	if len(leaf.Positionals) > 0 {
		n += f.Append("\nArguments:\n")
		for i := range leaf.Positionals {
			p := &leaf.Positionals[i]
			n += entry(f, col, p.Name, p.Help)
		}
	}

	n += f.Append("\nOptions:\n")
	n += entry(f, col, helpLabel, "Returns this help message")
	for i := range leaf.Options {
		o := &leaf.Options[i]
		n += entry(f, col, optionLabel(o), o.Help)
	}

	if len(leaf.Subcommands) > 0 {
		n += f.Append("\nCommands:\n")
		for i := range leaf.Subcommands {
			sc := &leaf.Subcommands[i]
			n += entry(f, col, sc.Name, sc.Help)
		}
	}
	return n
}

// entry writes one indented "label  help" line.
func entry(f *Formatter, col int, label, help string) int {
	n := f.Append("  ")
	n += f.Append(label)
	if help != "" {
		n += f.Pad(col, displayWidth(label))
		n += f.Append(help)
	}
	n += f.AppendRune('\n')
	return n
}

// Usage renders the usage text of the command reached by following path
// from root, without parsing any input. The root is named by
// cfg.ProgramName, falling back to root.Name.
func Usage(root *Command, cfg Config, path ...string) (string, error) {
	cfg = cfg.withDefaults()
	chain, err := root.Lookup(path...)
	if err != nil {
		return "", err
	}
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	if cfg.ProgramName != "" {
		names[0] = cfg.ProgramName
	}
	f := NewFormatter(cfg.UsageCapacity)
	renderUsage(f, names, chain)
	return f.String(), nil
}
