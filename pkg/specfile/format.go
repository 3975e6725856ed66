// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when the format of a document cannot be
// determined.
var ErrUnknownFormat = errors.New("specfile: unknown document format")

type Format int

const (
	Unknown Format = iota
	TOML
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return "unknown"
}

// ParseFormat returns the Format named s ("toml", "yaml", "yml" or "json").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat determines the format of the file at path, first by its
// extension and then by its contents.
func DetectFormat(path string) (Format, error) {
	if f, ok := detectByName(path); ok {
		return f, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return Unknown, fmt.Errorf("failed to read file: %w", err)
	}
	if f, ok := detectByContents(bs); ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

func detectByName(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, true
	case ".yaml", ".yml":
		return YAML, true
	case ".json":
		return JSON, true
	}
	return Unknown, false
}

// detectByContents checks for a top-level table with at least one key.
// JSON is tried first as it is also valid YAML.
func detectByContents(bs []byte) (Format, bool) {
	if trimmed := bytes.TrimSpace(bs); len(trimmed) > 0 && trimmed[0] == '{' {
		var m map[string]any
		if json.Unmarshal(trimmed, &m) == nil {
			return JSON, true
		}
	}
	var tm map[string]any
	if _, err := toml.Decode(string(bs), &tm); err == nil && len(tm) > 0 {
		return TOML, true
	}
	var ym map[string]any
	if err := yaml.Unmarshal(bs, &ym); err == nil && len(ym) > 0 {
		return YAML, true
	}
	return Unknown, false
}
