// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdtree

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Formatter is a bounded append-only text buffer. Writes that do not fit are
// cut at a rune boundary; every append reports how many bytes it actually
// stored so callers can notice truncation without failing on it.
type Formatter struct {
	buf       []byte
	capacity  int
	truncated bool
}

// NewFormatter returns a Formatter holding at most capacity bytes.
func NewFormatter(capacity int) *Formatter {
	if capacity < 0 {
		panic(fmt.Sprintf("cmdtree: negative formatter capacity %d", capacity))
	}
	return &Formatter{buf: make([]byte, 0, capacity), capacity: capacity}
}

// Appendf appends according to a format specifier.
func (f *Formatter) Appendf(format string, args ...any) int {
	return f.Append(fmt.Sprintf(format, args...))
}

// Append appends s.
func (f *Formatter) Append(s string) int {
	room := f.capacity - len(f.buf)
	if len(s) > room {
		f.truncated = true
		s = cutRunes(s, room)
	}
	f.buf = append(f.buf, s...)
	return len(s)
}

// AppendRune appends a single character.
func (f *Formatter) AppendRune(r rune) int {
	return f.Append(string(r))
}

// Pad appends spaces so that a label of display width labelWidth, already
// written, is followed by text starting at column. At least one space is
// written.
func (f *Formatter) Pad(column, labelWidth int) int {
	return f.Append(strings.Repeat(" ", max(1, column-labelWidth)))
}

// Len returns the number of bytes stored.
func (f *Formatter) Len() int { return len(f.buf) }

// Cap returns the capacity in bytes.
func (f *Formatter) Cap() int { return f.capacity }

// Truncated reports whether any append was cut short.
func (f *Formatter) Truncated() bool { return f.truncated }

// String returns the stored text.
func (f *Formatter) String() string { return string(f.buf) }

// Reset empties the buffer and clears the truncation flag.
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
	f.truncated = false
}

// cutRunes returns the longest prefix of s that is at most n bytes and does
// not split a rune.
func cutRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// displayWidth returns the number of terminal columns s occupies. East Asian
// wide and fullwidth characters take two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}
