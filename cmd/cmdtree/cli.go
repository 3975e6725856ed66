// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cmdtree/pkg/cmdtree"
	"github.com/yeetrun/cmdtree/pkg/specfile"
	"github.com/yeetrun/cmdtree/pkg/tui"
	"golang.org/x/sync/errgroup"
	"tailscale.com/types/logger"
)

type globalFlagsParsed struct {
	Color   string `flag:"color" help:"Colorize output: auto, always or never"`
	Verbose bool   `flag:"verbose" help:"Trace argument parsing"`
}

// parseGlobalFlags removes the global flags from args wherever they appear
// before the first "--".
func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// exitError ends the process with code without printing anything more.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type app struct {
	stdout io.Writer
	out    tui.Colorizer
	errOut tui.Colorizer
	log    *log.Logger
	logf   logger.Logf

	// rest holds the arguments following "--" on the command line.
	rest []string
}

func (a *app) commands() *cmdtree.Command {
	spec := cmdtree.Positional{Name: "spec", Help: "Specification file"}
	return &cmdtree.Command{
		Name: "cmdtree",
		Help: "Checks command tree specification files",
		Options: []cmdtree.Option{
			{Long: "color", Help: "Colorize output: auto, always or never", Arity: cmdtree.Exactly(1)},
			{Long: "verbose", Help: "Trace argument parsing"},
		},
		Subcommands: []cmdtree.Command{
			{
				Name:        "check",
				Help:        "Parse the arguments after -- against a specification",
				Positionals: []cmdtree.Positional{spec},
				Options: []cmdtree.Option{
					{Short: 'j', Long: "json", Help: "Print the result as JSON"},
					{Short: 'p', Long: "program", Help: "Program name used in messages", Arity: cmdtree.Exactly(1)},
				},
				Run: a.check,
			},
			{
				Name:        "usage",
				Help:        "Print the usage of a specified command",
				Positionals: []cmdtree.Positional{spec},
				Options: []cmdtree.Option{
					{Short: 'c', Long: "command", Help: "Subcommand path", Arity: cmdtree.AtLeast(1)},
				},
				Run: a.usage,
			},
			{
				Name: "lint",
				Help: "Validate specification files",
				Options: []cmdtree.Option{
					{Short: 'f', Long: "file", Help: "Files to validate", Arity: cmdtree.AtLeast(1), Required: true},
				},
				Run: a.lint,
			},
			{
				Name:        "convert",
				Help:        "Rewrite a specification in another format",
				Positionals: []cmdtree.Positional{spec},
				Options: []cmdtree.Option{
					{Short: 't', Long: "to", Help: "toml, yaml or json", Arity: cmdtree.Exactly(1), Required: true},
					{Short: 'o', Long: "output", Help: "Write to a file instead of stdout", Arity: cmdtree.Exactly(1)},
				},
				Run: a.convert,
			},
		},
	}
}

func fileOf(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

// run executes the tool and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		log:    log.New(stderr, log.Prefix(), log.Flags()),
		logf:   logger.Discard,
	}
	if len(args) == 0 {
		args = []string{"cmdtree"}
	}
	globals, rest, err := parseGlobalFlags(args[1:])
	if err != nil {
		a.log.Print(err)
		return 1
	}
	mode, err := tui.ParseMode(globals.Color)
	if err != nil {
		a.log.Print(err)
		return 1
	}
	a.out = tui.NewColorizer(mode, fileOf(stdout))
	a.errOut = tui.NewColorizer(mode, fileOf(stderr))
	if globals.Verbose {
		a.logf = a.log.Printf
	}

	argv := append([]string{args[0]}, rest...)
	res, status := cmdtree.Parse(argv, a.commands(), cmdtree.Config{Logf: a.logf})
	switch status {
	case cmdtree.StatusHelp:
		fmt.Fprint(stdout, a.out.Usage(res.Usage()))
		return status.ExitCode()
	case cmdtree.StatusError:
		fmt.Fprint(stderr, a.errOut.Errors(res.ErrorText()))
		return status.ExitCode()
	}
	if len(res.Commands) < 2 {
		fmt.Fprint(stderr, a.errOut.Usage(res.Usage()))
		return 1
	}

	a.rest = res.Rest
	if err := res.Run(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		a.log.Print(err)
		return 1
	}
	return 0
}

func (a *app) check(_ context.Context, _, cmd *cmdtree.CommandResult) error {
	path, _ := cmd.Positional(0)
	root, _, err := specfile.Load(path)
	if err != nil {
		return err
	}
	name := root.Name
	if o, ok := cmd.Option("program"); ok {
		name = o.Args[0]
	}
	cfg := cmdtree.Config{
		ProgramName: name,
		MaxDepth:    max(cmdtree.DefaultMaxDepth, root.Depth()),
		Logf:        a.logf,
	}
	res, status := cmdtree.Parse(append([]string{name}, a.rest...), root, cfg)
	if cmd.HasOption("json") {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newCheckReport(res)); err != nil {
			return err
		}
	} else {
		a.printCheck(res)
	}
	if code := status.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

type checkReport struct {
	Status   string        `json:"status"`
	ExitCode int           `json:"exitCode"`
	Commands []levelReport `json:"commands"`
	Rest     []string      `json:"rest,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
	Usage    string        `json:"usage,omitempty"`
}

type levelReport struct {
	Name        string            `json:"name"`
	Positionals map[string]string `json:"positionals,omitempty"`
	Options     []optionReport    `json:"options,omitempty"`
}

type optionReport struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

func newCheckReport(res *cmdtree.Result) checkReport {
	r := checkReport{
		Status:   res.Status.String(),
		ExitCode: res.Status.ExitCode(),
		Rest:     res.Rest,
	}
	for i := range res.Commands {
		c := &res.Commands[i]
		lr := levelReport{Name: c.Name}
		for j, v := range c.Positionals {
			if lr.Positionals == nil {
				lr.Positionals = make(map[string]string)
			}
			lr.Positionals[c.Spec.Positionals[j].Name] = v
		}
		for _, o := range c.Options {
			lr.Options = append(lr.Options, optionReport{Name: "--" + o.Long, Args: o.Args})
		}
		r.Commands = append(r.Commands, lr)
	}
	if text := res.ErrorText(); text != "" {
		r.Errors = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	}
	if res.Status == cmdtree.StatusHelp {
		r.Usage = res.Usage()
	}
	return r
}

func (a *app) printCheck(res *cmdtree.Result) {
	w := a.stdout
	fmt.Fprintf(w, "status: %v\n", res.Status)
	for i := range res.Commands {
		c := &res.Commands[i]
		fmt.Fprintln(w, c.Name)
		for j, v := range c.Positionals {
			fmt.Fprintf(w, "  %s = %s\n", c.Spec.Positionals[j].Name, v)
		}
		for _, o := range c.Options {
			fmt.Fprintf(w, "  %s\n", strings.Join(append([]string{"--" + o.Long}, o.Args...), " "))
		}
	}
	if len(res.Rest) > 0 {
		fmt.Fprintf(w, "rest: %s\n", strings.Join(res.Rest, " "))
	}
	switch res.Status {
	case cmdtree.StatusHelp:
		fmt.Fprint(w, "\n", a.out.Usage(res.Usage()))
	case cmdtree.StatusError:
		fmt.Fprint(w, "\n", a.out.Errors(res.ErrorText()))
	}
}

func (a *app) usage(_ context.Context, _, cmd *cmdtree.CommandResult) error {
	path, _ := cmd.Positional(0)
	root, meta, err := specfile.Load(path)
	if err != nil {
		return err
	}
	var names []string
	if o, ok := cmd.Option("command"); ok {
		names = o.Args
	}
	text, err := cmdtree.Usage(root, cmdtree.Config{}, names...)
	if err != nil {
		return err
	}
	if meta.Version != nil {
		fmt.Fprintf(a.stdout, "%s version %s\n\n", root.Name, meta.Version)
	}
	fmt.Fprint(a.stdout, a.out.Usage(text))
	return nil
}

// lint loads every file concurrently. A failing file does not stop the
// others.
func (a *app) lint(ctx context.Context, _, cmd *cmdtree.CommandResult) error {
	o, _ := cmd.Option("file")
	files := o.Args
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _, errs[i] = specfile.Load(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, path := range files {
		if errs[i] == nil {
			fmt.Fprintf(a.stdout, "ok   %s\n", path)
			continue
		}
		failed++
		fmt.Fprintf(a.stdout, "%s %s\n", a.out.Failure("FAIL"), path)
		msg := strings.TrimPrefix(errs[i].Error(), path+": ")
		for _, line := range strings.Split(msg, "\n") {
			fmt.Fprintf(a.stdout, "    %s\n", line)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func (a *app) convert(_ context.Context, _, cmd *cmdtree.CommandResult) error {
	path, _ := cmd.Positional(0)
	to, _ := cmd.Option("to")
	format, err := specfile.ParseFormat(to.Args[0])
	if err != nil {
		return err
	}
	root, meta, err := specfile.Load(path)
	if err != nil {
		return err
	}
	doc := specfile.FromCommand(root)
	if meta.Version != nil {
		doc.Version = meta.Version.Original()
	}
	if o, ok := cmd.Option("output"); ok {
		return doc.Save(o.Args[0], format)
	}
	return doc.Encode(a.stdout, format)
}
