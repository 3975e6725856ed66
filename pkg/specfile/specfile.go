// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package specfile loads command trees for cmdtree from TOML, YAML or JSON
// documents.
//
// A document describes the root command; subcommands nest:
//
//	name = "tool"
//	version = "1.2.0"
//
//	[[options]]
//	short = "v"
//	long = "verbose"
//
//	[[subcommands]]
//	name = "build"
//	positionals = [{ name = "target", help = "What to build" }]
//
//	[[subcommands.options]]
//	long = "jobs"
//	nargs = 1
//	required = true
//
// nargs accepts an exact count ("2"), a minimum ("1+"), "*" or "+".
package specfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/cmdtree/pkg/cmdtree"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a command.
type Document struct {
	Name        string          `toml:"name" yaml:"name" json:"name"`
	Help        string          `toml:"help,omitempty" yaml:"help,omitempty" json:"help,omitempty"`
	Version     string          `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
	Positionals []PositionalDoc `toml:"positionals,omitempty" yaml:"positionals,omitempty" json:"positionals,omitempty"`
	Options     []OptionDoc     `toml:"options,omitempty" yaml:"options,omitempty" json:"options,omitempty"`
	Subcommands []Document      `toml:"subcommands,omitempty" yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
}

type PositionalDoc struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Help string `toml:"help,omitempty" yaml:"help,omitempty" json:"help,omitempty"`
}

type OptionDoc struct {
	Short    string        `toml:"short,omitempty" yaml:"short,omitempty" json:"short,omitempty"`
	Long     string        `toml:"long" yaml:"long" json:"long"`
	Help     string        `toml:"help,omitempty" yaml:"help,omitempty" json:"help,omitempty"`
	Nargs    cmdtree.Arity `toml:"nargs,omitempty" yaml:"nargs,omitempty" json:"nargs,omitzero"`
	Required bool          `toml:"required,omitempty" yaml:"required,omitempty" json:"required,omitempty"`
}

// Meta describes where a command tree came from.
type Meta struct {
	Path   string
	Format Format
	// Version is the parsed root version, or nil if the document has none.
	Version *semver.Version
}

// Load reads, converts and validates the document at path.
func Load(path string) (*cmdtree.Command, *Meta, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cmd, meta, err := doc.Command()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	meta.Path = path
	meta.Format = format
	return cmd, meta, nil
}

// Decode reads a Document in the given format from r.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, err
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("unknown key %q", keys[0].String())
		}
	case YAML, JSON:
		bs, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(bs))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, ErrUnknownFormat
	}
	return &doc, nil
}

// Encode writes d to w in the given format.
func (d *Document) Encode(w io.Writer, format Format) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(d)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	return fmt.Errorf("%w: cannot encode %v", ErrUnknownFormat, format)
}

// Save writes d to path in the given format. The document goes to a
// temporary file next to path first and is renamed into place once complete.
func (d *Document) Save(path string, format Format) (err error) {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if err := d.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Command converts d into a validated command tree.
func (d *Document) Command() (*cmdtree.Command, *Meta, error) {
	meta := &Meta{}
	if d.Version != "" {
		v, err := semver.NewVersion(d.Version)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid version %q: %w", d.Version, err)
		}
		meta.Version = v
	}
	cmd, err := d.convert(d.Name)
	if err != nil {
		return nil, nil, err
	}
	if err := Validate(cmd); err != nil {
		return nil, nil, err
	}
	return cmd, meta, nil
}

func (d *Document) convert(path string) (*cmdtree.Command, error) {
	cmd := &cmdtree.Command{Name: d.Name, Help: d.Help}
	for _, p := range d.Positionals {
		cmd.Positionals = append(cmd.Positionals, cmdtree.Positional{Name: p.Name, Help: p.Help})
	}
	for _, o := range d.Options {
		var short rune
		if o.Short != "" {
			r, size := utf8.DecodeRuneInString(o.Short)
			if size != len(o.Short) {
				return nil, fmt.Errorf("%s: option --%s: short name %q must be a single character", label(path), o.Long, o.Short)
			}
			short = r
		}
		cmd.Options = append(cmd.Options, cmdtree.Option{
			Short:    short,
			Long:     o.Long,
			Help:     o.Help,
			Arity:    o.Nargs,
			Required: o.Required,
		})
	}
	for i := range d.Subcommands {
		sub, err := d.Subcommands[i].convert(joinPath(path, d.Subcommands[i].Name))
		if err != nil {
			return nil, err
		}
		cmd.Subcommands = append(cmd.Subcommands, *sub)
	}
	return cmd, nil
}

// FromCommand returns the Document form of cmd. Callbacks are not kept.
func FromCommand(cmd *cmdtree.Command) *Document {
	d := &Document{Name: cmd.Name, Help: cmd.Help}
	for _, p := range cmd.Positionals {
		d.Positionals = append(d.Positionals, PositionalDoc{Name: p.Name, Help: p.Help})
	}
	for _, o := range cmd.Options {
		od := OptionDoc{Long: o.Long, Help: o.Help, Nargs: o.Arity, Required: o.Required}
		if o.Short != 0 {
			od.Short = string(o.Short)
		}
		d.Options = append(d.Options, od)
	}
	for i := range cmd.Subcommands {
		d.Subcommands = append(d.Subcommands, *FromCommand(&cmd.Subcommands[i]))
	}
	return d
}
