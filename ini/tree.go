// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Document is the concrete syntax tree of an INI file. Writing every field
// of every node in order reproduces the text the Document was parsed from.
// The zero value is an empty document.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	// Leading is text before the first section. Parse leaves it empty:
	// text before the first header belongs to that section's Leading.
	Leading  string
	Sections []*Section
	// Trailing is text after the last entry or section header that was not
	// attached to any node, typically blank lines and final comments.
	Trailing string
}

// A Section is a bracketed header line and the entries that follow it.
type Section struct {
	// Leading holds the blank lines, comments, and indentation before the
	// header.
	Leading      string
	OpenBracket  string
	Name         string
	CloseBracket string
	// Trailing holds whatever follows the closing bracket on the header line,
	// excluding the line terminator.
	Trailing string
	Newline  string
	Entries  []*Entry
}

// An Entry is a key and its value, which may span several physical lines.
type Entry struct {
	// Leading holds the blank lines, comments, and indentation before the
	// key.
	Leading         string
	Key             string
	BeforeDelimiter string
	// Delimiter is empty for a bare key parsed with AllowNoValue.
	Delimiter      string
	AfterDelimiter string
	// Lines is never empty for a well-formed entry. The first line is the
	// remainder of the key line.
	Lines    []ValueLine
	Trailing string
}

// A ValueLine is one physical line of an entry's value.
type ValueLine struct {
	Leading  string
	Text     string
	Trailing string
	Newline  string
	// Comment is set for a whole-line comment inside a continuation block.
	// The comment is stored in Trailing and Text is empty; the line does not
	// contribute to the entry's value.
	Comment bool
}

// WriteTo writes the document's text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// String returns the document's text.
func (d *Document) String() string {
	if d == nil {
		return ""
	}
	sb := new(strings.Builder)
	sb.WriteString(d.Leading)
	for _, s := range d.Sections {
		s.build(sb)
	}
	sb.WriteString(d.Trailing)
	return sb.String()
}

// MarshalText returns the document's text.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText parses the INI data with default options, replacing the
// contents of d.
func (d *Document) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data), nil)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func (s *Section) build(sb *strings.Builder) {
	sb.WriteString(s.Leading)
	sb.WriteString(s.OpenBracket)
	sb.WriteString(s.Name)
	sb.WriteString(s.CloseBracket)
	sb.WriteString(s.Trailing)
	sb.WriteString(s.Newline)
	for _, e := range s.Entries {
		e.build(sb)
	}
}

func (e *Entry) build(sb *strings.Builder) {
	sb.WriteString(e.Leading)
	sb.WriteString(e.Key)
	sb.WriteString(e.BeforeDelimiter)
	sb.WriteString(e.Delimiter)
	sb.WriteString(e.AfterDelimiter)
	for _, v := range e.Lines {
		sb.WriteString(v.Leading)
		sb.WriteString(v.Text)
		sb.WriteString(v.Trailing)
		sb.WriteString(v.Newline)
	}
	sb.WriteString(e.Trailing)
}

// Value returns the interpreted value: the text of each value line joined by
// that line's terminator. Empty lines at the end of the value and the final
// terminator are not included.
func (e *Entry) Value() string {
	if len(e.Lines) == 0 {
		return ""
	}
	last := 0
	for i := range e.Lines {
		if !e.Lines[i].Comment && e.Lines[i].Text != "" {
			last = i
		}
	}
	sb := new(strings.Builder)
	for i := 0; i <= last; i++ {
		v := &e.Lines[i]
		if v.Comment {
			continue
		}
		sb.WriteString(v.Text)
		if i < last {
			sb.WriteString(v.Newline)
		}
	}
	return sb.String()
}

// HasValue reports whether the entry has a delimiter. Only bare keys parsed
// with AllowNoValue have no value.
func (e *Entry) HasValue() bool {
	return e.Delimiter != ""
}

// Section returns the first section with the given name. Section names are
// compared exactly.
func (d *Document) Section(name string) (*Section, error) {
	if d != nil {
		for _, s := range d.Sections {
			if s.Name == name {
				return s, nil
			}
		}
	}
	return nil, sectionNotFound(name)
}

// HasSection reports whether the document has a section with the given name.
func (d *Document) HasSection(name string) bool {
	_, err := d.Section(name)
	return err == nil
}

// SectionNames returns the names of the document's sections in order.
// Repeated names are repeated.
func (d *Document) SectionNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// Get returns the interpreted value of key in the named section.
func (d *Document) Get(section, key string) (string, error) {
	s, err := d.Section(section)
	if err != nil {
		return "", err
	}
	return s.Get(key)
}

// Has reports whether the named section has the given key.
func (d *Document) Has(section, key string) bool {
	s, err := d.Section(section)
	return err == nil && s.Has(key)
}

// Entry returns the first entry whose key matches key case-insensitively.
func (s *Section) Entry(key string) (*Entry, error) {
	if i := s.index(key); i >= 0 {
		return s.Entries[i], nil
	}
	return nil, keyNotFound(s.Name, key)
}

// Get returns the interpreted value of key.
func (s *Section) Get(key string) (string, error) {
	e, err := s.Entry(key)
	if err != nil {
		return "", err
	}
	return e.Value(), nil
}

// Has reports whether the section has an entry for key.
func (s *Section) Has(key string) bool {
	return s.index(key) >= 0
}

// Keys returns the section's keys in order, lower-cased the same way lookups
// compare them.
func (s *Section) Keys() []string {
	keys := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		keys = append(keys, foldKey(e.Key))
	}
	return keys
}

func (s *Section) index(key string) int {
	want := foldKey(key)
	for i, e := range s.Entries {
		if foldKey(e.Key) == want {
			return i
		}
	}
	return -1
}

// foldKey lower-cases a key with full Unicode case mapping. A Caser is
// stateful, so one is created per call.
func foldKey(key string) string {
	return cases.Lower(language.Und).String(key)
}
