// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdtree parses command-line arguments against a declarative tree of
// commands, options and positional arguments.
//
// The caller declares the tree once and hands it to Parse together with the
// raw argument vector. The parser walks the arguments depth-first through the
// subcommand tree and produces a Result holding one CommandResult per level of
// the resolved command chain, the parsed options, the collected diagnostics and
// an overall Status.
//
// # Declaring Commands
//
//	root := &cmdtree.Command{
//	    Name: "tool",
//	    Help: "Does things",
//	    Options: []cmdtree.Option{
//	        {Short: 'v', Long: "verbose", Help: "Verbose output"},
//	    },
//	    Subcommands: []cmdtree.Command{
//	        {
//	            Name: "build",
//	            Options: []cmdtree.Option{
//	                {Short: 't', Long: "target", Arity: cmdtree.Exactly(1), Required: true},
//	            },
//	            Run: runBuild,
//	        },
//	    },
//	}
//
// # Parsing
//
//	res, status := cmdtree.Parse(os.Args, root, cmdtree.Config{})
//	switch status {
//	case cmdtree.StatusHelp:
//	    fmt.Println(res.Usage())
//	case cmdtree.StatusError:
//	    fmt.Fprint(os.Stderr, res.ErrorText())
//	default:
//	    err = res.Run(ctx)
//	}
//	os.Exit(status.ExitCode())
//
// # Argument Syntax
//
//   - "-x" is a short option; only the first character after the dash counts.
//   - "--name" is a long option; a leading part of the name is enough and the
//     first declared option it matches wins.
//   - "--" stops parsing; everything after it is left in Result.Rest.
//   - Anything else binds to the next declared positional of the current
//     command. Once every positional is bound it names a subcommand.
//   - "-h" and "--help" request help at any level and always win.
//
// Options take a fixed number of arguments (Exactly) or a minimum that is
// extended greedily up to the next dash-prefixed argument (AtLeast).
package cmdtree
