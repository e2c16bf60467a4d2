// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// continuationIndent is added to an entry's key indentation for the second
// and later lines of a value written by SetValue.
const continuationIndent = "  "

// NewSection returns a section header with conventional formatting and no
// entries.
func NewSection(name string) *Section {
	return &Section{
		OpenBracket:  "[",
		Name:         name,
		CloseBracket: "]",
		Newline:      "\n",
	}
}

// NewEntry returns an entry formatted as "key = value". Multi-line values are
// written as indented continuation lines. An empty value is written as
// "key =" without a trailing space.
func NewEntry(key, value string) *Entry {
	e := &Entry{
		Key:             key,
		BeforeDelimiter: " ",
		Delimiter:       "=",
	}
	e.Lines = newValueLines(value, "")
	if !emptyValue(e.Lines) {
		e.AfterDelimiter = " "
	}
	return e
}

func emptyValue(lines []ValueLine) bool {
	return len(lines) == 1 && lines[0].Text == ""
}

// newValueLines splits value into lines. A final empty line is dropped, so
// "a\n" produces the same lines as "a". Every line but the first is indented
// by indent plus continuationIndent.
func newValueLines(value, indent string) []ValueLine {
	texts := strings.Split(value, "\n")
	if len(texts) > 1 && texts[len(texts)-1] == "" {
		texts = texts[:len(texts)-1]
	}
	lines := make([]ValueLine, 0, len(texts))
	for i, text := range texts {
		v := ValueLine{Text: text, Newline: "\n"}
		if i > 0 {
			v.Leading = indent + continuationIndent
		}
		lines = append(lines, v)
	}
	return lines
}

// SetValue sets key in the named section to value, creating the section
// and the entry as needed. A new section is appended to the end of the
// document, separated from the previous section by a blank line.
//
// If the entry already exists, only its value lines are replaced: the key's
// spelling, the delimiter, and the whitespace around the delimiter are kept.
//
// A new entry goes after the section's last entry. If the text following it
// has lines indented deep enough to continue the new value, that text is
// placed before the new entry instead, and the entry takes the indentation
// of an indented header that follows.
func (d *Document) SetValue(section, key, value string) {
	i := d.sectionIndex(section)
	if i < 0 {
		s := NewSection(section)
		if len(d.Sections) > 0 {
			d.Sections[len(d.Sections)-1].terminate()
			s.Leading = "\n"
		} else if d.Trailing != "" {
			// Keep a file's opening comments above its first section.
			d.Leading += d.Trailing
			d.Trailing = ""
			if !strings.HasSuffix(d.Leading, "\n") {
				d.Leading += "\n"
			}
		}
		d.Sections = append(d.Sections, s)
		i = len(d.Sections) - 1
	}
	s := d.Sections[i]
	if s.Has(key) {
		s.SetValue(key, value)
		return
	}
	s.terminate()
	e := NewEntry(key, value)
	d.closeEntry(i, e)
	e.SetValue(value)
	s.Entries = append(s.Entries, e)
}

func (d *Document) sectionIndex(name string) int {
	if d == nil {
		return -1
	}
	for i, s := range d.Sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// closeEntry sets the Leading of e, about to be appended to section i, so
// that the text after it does not parse as continuation lines of e.
func (d *Document) closeEntry(i int, e *Entry) {
	follow := &d.Trailing
	if i+1 < len(d.Sections) {
		follow = &d.Sections[i+1].Leading
	}
	body, indent := *follow, ""
	if i+1 < len(d.Sections) {
		n := strings.LastIndexByte(body, '\n') + 1
		body, indent = body[:n], body[n:]
	}
	// The header's indentation is only safe for the key when the key is
	// preceded by the same lines as the header was.
	move := indent != ""
	for _, line := range splitLines(body) {
		if p := splitLine(line); !p.blank() && indentWidth(p.indent) > indentWidth(indent) {
			move = true
		}
	}
	if !move {
		return
	}
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	e.Leading = body + indent
	*follow = indent
}

// SetValue sets key to value. Keys are matched case-insensitively. If no
// entry matches, a new entry is appended to the section. Unlike
// Document.SetValue, it cannot see the text after the section, so an
// indented line there may read back as part of the new value.
func (s *Section) SetValue(key, value string) {
	if i := s.index(key); i >= 0 {
		s.Entries[i].SetValue(value)
		return
	}
	s.terminate()
	s.Entries = append(s.Entries, NewEntry(key, value))
}

// SetValue replaces the entry's value lines. Continuation lines are indented
// deeper than the key so that the value parses back the same way. A bare key
// gains a " = " delimiter.
func (e *Entry) SetValue(value string) {
	bare := !e.HasValue()
	e.Lines = newValueLines(value, e.indent())
	if bare {
		if e.BeforeDelimiter == "" {
			e.BeforeDelimiter = " "
		}
		e.Delimiter = "="
		if !emptyValue(e.Lines) {
			e.AfterDelimiter = " "
		}
	}
}

// indent returns the indentation of the entry's key line.
func (e *Entry) indent() string {
	lead := e.Leading
	if i := strings.LastIndexByte(lead, '\n'); i >= 0 {
		lead = lead[i+1:]
	}
	return lead
}

// terminate makes sure the section's last physical line ends in a newline so
// that text appended after it starts on a line of its own.
func (s *Section) terminate() {
	if len(s.Entries) == 0 {
		if s.Newline == "" {
			s.Newline = "\n"
		}
		return
	}
	e := s.Entries[len(s.Entries)-1]
	if e.Trailing != "" || len(e.Lines) == 0 {
		if !strings.HasSuffix(e.Trailing, "\n") {
			e.Trailing += "\n"
		}
		return
	}
	if last := &e.Lines[len(e.Lines)-1]; last.Newline == "" {
		last.Newline = "\n"
	}
}

// DeleteSection removes the first section with the given name, along with
// its entries and the comments before its header.
func (d *Document) DeleteSection(name string) error {
	if d != nil {
		for i, s := range d.Sections {
			if s.Name == name {
				d.Sections = append(d.Sections[:i:i], d.Sections[i+1:]...)
				return nil
			}
		}
	}
	return sectionNotFound(name)
}

// DeleteEntry removes the entry for key from the named section, along with
// the comments before it.
func (d *Document) DeleteEntry(section, key string) error {
	s, err := d.Section(section)
	if err != nil {
		return err
	}
	return s.Delete(key)
}

// Delete removes the entry for key, matched case-insensitively.
func (s *Section) Delete(key string) error {
	i := s.index(key)
	if i < 0 {
		return keyNotFound(s.Name, key)
	}
	s.Entries = append(s.Entries[:i:i], s.Entries[i+1:]...)
	return nil
}
