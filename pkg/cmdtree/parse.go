// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"fmt"
	"os"
	"strings"

	"tailscale.com/types/logger"
)

// Status is the outcome of a parse.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusHelp
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusHelp:
		return "help"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ExitCode returns the conventional process exit code for s. Help is not a
// failure.
func (s Status) ExitCode() int {
	if s == StatusError {
		return 1
	}
	return 0
}

// Parse parses args against root. args[0], if present, is the program path
// and is not parsed.
//
// Parse panics if root is nil, if cfg holds a negative capacity or if root
// is deeper than cfg.MaxDepth. Those are mistakes in the program, not in its
// input.
func Parse(args []string, root *Command, cfg Config) (*Result, Status) {
	if root == nil {
		panic("cmdtree: Parse called with nil root command")
	}
	cfg = cfg.withDefaults()
	if d := root.Depth(); d > cfg.MaxDepth {
		panic(fmt.Sprintf("cmdtree: command tree depth %d exceeds Config.MaxDepth %d", d, cfg.MaxDepth))
	}

	res := &Result{
		Options:     make([]ParsedOption, 0, cfg.MaxOptions),
		Commands:    make([]CommandResult, 0, cfg.MaxDepth),
		Diagnostics: newDiagnostics(cfg.MaxDiagnostics),
		chain:       make([]*Command, 0, cfg.MaxDepth),
		cfg:         cfg,
	}
	var rest []string
	if len(args) > 0 {
		res.ProgramPath = args[0]
		rest = args[1:]
	}
	res.ProgramName = cfg.ProgramName
	if res.ProgramName == "" {
		res.ProgramName = programName(res.ProgramPath)
	}

	p := &parser{args: rest, res: res, logf: cfg.Logf}
	res.Status = p.parseLevel(root, res.ProgramName)
	cfg.Logf("cmdtree: %s: status %v, %d level(s), %d diagnostic(s)", res.ProgramName, res.Status, len(res.Commands), res.Diagnostics.Len())
	return res, res.Status
}

// programName derives a display name from a program path: the directory
// part and the final extension are removed.
func programName(path string) string {
	name := path
	if i := strings.LastIndexByte(name, os.PathSeparator); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	name = cutRunes(name, maxProgramName)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

type parser struct {
	args []string
	pos  int
	res  *Result
	logf logger.Logf
}

func (p *parser) diags() *Diagnostics { return p.res.Diagnostics }

// settle returns the status for a level that stopped without a fatal
// diagnostic.
func (p *parser) settle() Status {
	if p.diags().Len() > 0 || p.diags().Dropped() > 0 {
		return StatusError
	}
	return StatusSuccess
}

func (p *parser) internal(detail string) Status {
	p.diags().Add(Diagnostic{Category: CategoryInternal, Name: detail})
	return StatusError
}

// parseLevel parses the remaining arguments against cmd, which becomes the
// next level of the result. fallbackName names the level when cmd has no
// name of its own.
func (p *parser) parseLevel(cmd *Command, fallbackName string) Status {
	res := p.res
	level := len(res.Commands)
	name := cmd.Name
	if name == "" {
		name = fallbackName
	}
	res.Commands = append(res.Commands, CommandResult{
		Name:        name,
		Positionals: make([]string, 0, len(cmd.Positionals)),
		Run:         cmd.Run,
		Spec:        cmd,
	})
	res.chain = append(res.chain, cmd)
	optStart := len(res.Options)

	for i := range cmd.Positionals {
		p.diags().seed(Diagnostic{
			Category: CategoryMissingRequired,
			Kind:     KindPositional,
			Name:     cmd.Positionals[i].Name,
		})
	}
	for i := range cmd.Options {
		o := &cmd.Options[i]
		if o.Required {
			p.diags().seed(missingOption(o))
		}
	}

	st := levelState{declared: len(cmd.Positionals)}
	for p.pos < len(p.args) {
		arg := p.args[p.pos]
		p.pos++
		tok := classify(st, arg)
		p.logf("cmdtree: %s: %q is a %v", name, arg, tok.kind)

		switch tok.kind {
		case tokenInvalid:
			return p.internal("invalid argument string detected")

		case tokenDelimiter:
			res.Rest = p.args[p.pos:len(p.args):len(p.args)]
			p.pos = len(p.args)
			return p.settle()

		case tokenShortOption, tokenLongOption:
			if tok.isHelp() {
				return StatusHelp
			}
			o := findOption(cmd, tok)
			if o == nil {
				p.diags().Add(Diagnostic{Category: CategoryUnrecognized, Kind: KindOption, Name: tok.raw})
				return StatusError
			}
			if o.Required {
				p.diags().Remove(missingOption(o))
			}
			vals, ok := p.consume(o.Arity)
			if !ok {
				p.diags().Add(Diagnostic{
					Category: CategoryInvalidArity,
					Kind:     KindOption,
					Short:    o.Short,
					Name:     o.Long,
					Arity:    o.Arity,
				})
				return StatusError
			}
			if len(res.Options) >= cap(res.Options) {
				return p.internal(fmt.Sprintf("more than %d options", cap(res.Options)))
			}
			p.logf("cmdtree: %s: option --%s took %d argument(s)", name, o.Long, len(vals))
			res.Options = append(res.Options, ParsedOption{Short: o.Short, Long: o.Long, Args: vals})
			end := len(res.Options)
			res.Commands[level].Options = res.Options[optStart:end:end]

		case tokenPositional:
			if st.bound >= st.declared {
				// classify only yields positionals while one is unbound.
				return p.internal("positional token with no positional left to bind")
			}
			cr := &res.Commands[level]
			cr.Positionals = append(cr.Positionals, arg)
			p.diags().Remove(Diagnostic{
				Category: CategoryMissingRequired,
				Kind:     KindPositional,
				Name:     cmd.Positionals[st.bound].Name,
			})
			st.bound++

		case tokenSubcommand:
			sub, ok := cmd.Subcommand(tok.value)
			if !ok {
				p.diags().Add(Diagnostic{Category: CategoryUnrecognized, Kind: KindSubcommand, Name: tok.raw})
			}
			if p.diags().Len() > 0 || p.diags().Dropped() > 0 {
				return StatusError
			}
			st.dispatched = true
			p.logf("cmdtree: %s: dispatching to %s", name, sub.Name)
			return p.parseLevel(sub, sub.Name)
		}
	}
	return p.settle()
}

// consume takes the arguments of an option with the given arity. Exact
// arities take the next n arguments whatever they look like, stopping only
// at a delimiter. Minimum arities take arguments up to the next one that
// starts with a dash.
func (p *parser) consume(a Arity) ([]string, bool) {
	start := p.pos
	end := start
	if a.Variadic() {
		for end < len(p.args) && !strings.HasPrefix(p.args[end], "-") {
			end++
		}
	} else {
		for end-start < a.Min() && end < len(p.args) && p.args[end] != delimiter {
			end++
		}
	}
	if end-start < a.Min() {
		return nil, false
	}
	p.pos = end
	return p.args[start:end:end], true
}

// findOption returns the first option of cmd matching tok.
func findOption(cmd *Command, tok token) *Option {
	for i := range cmd.Options {
		o := &cmd.Options[i]
		if tok.matches(o.Short, o.Long) {
			return o
		}
	}
	return nil
}

func missingOption(o *Option) Diagnostic {
	return Diagnostic{
		Category: CategoryMissingRequired,
		Kind:     KindOption,
		Short:    o.Short,
		Name:     o.Long,
		Arity:    o.Arity,
	}
}
