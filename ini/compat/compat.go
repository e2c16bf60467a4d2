// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package compat reads INI files with the value semantics of Python's
// configparser module (RawConfigParser, without interpolation).
//
// Unlike package ini, compat discards formatting: it exists to answer "what
// value would configparser see for this key?" so that a lossless parse can be
// checked against it.
package compat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Errors wrapped by ParseError.
var (
	ErrMissingSectionHeader = errors.New("missing section header")
	ErrDuplicateSection     = errors.New("duplicate section")
	ErrDuplicateOption      = errors.New("duplicate option")
	ErrSyntax               = errors.New("unparsable line")
)

// A ParseError describes a line Parse could not accept.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("read ini: line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options holds optional parameters for Parse. The zero value matches
// configparser's defaults.
type Options struct {
	AllowNoValue bool
	// Delimiters defaults to "=" and ":".
	Delimiters []string
	// CommentPrefixes defaults to "#" and ";".
	CommentPrefixes []string
	// InlineCommentPrefixes start a comment anywhere in a line when they
	// are at the start of the line or preceded by white space.
	InlineCommentPrefixes []string
	// BlankLinesEndValues makes blank lines (and comment lines) terminate
	// multi-line values instead of being kept in them.
	BlankLinesEndValues bool
	// NonStrict permits repeated sections and options. Later options
	// override earlier ones.
	NonStrict bool
	// DefaultSection names the section whose options every other section
	// inherits. Defaults to "DEFAULT".
	DefaultSection string
}

// Config is the result of reading an INI file.
type Config struct {
	defaults *section
	sections []*section
}

type section struct {
	name    string
	options []*option
}

type option struct {
	name     string
	lines    []string
	hasValue bool
	value    string
}

func (s *section) option(name string) *option {
	for _, o := range s.options {
		if o.name == name {
			return o
		}
	}
	return nil
}

func (c *Config) section(name string) *section {
	if name == c.defaults.name {
		return c.defaults
	}
	for _, s := range c.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Parse reads an INI file. Nil options are treated identically as passing
// the zero value.
//
// A missing section header or (unless NonStrict is set) a repeated section or
// option stops parsing immediately. Lines that cannot be parsed are skipped
// and reported together, after the rest of the file has been read; in that
// case Parse returns both the Config and the error.
func Parse(r io.Reader, opts *Options) (*Config, error) {
	if opts == nil {
		opts = new(Options)
	}
	delims := opts.Delimiters
	if delims == nil {
		delims = []string{"=", ":"}
	}
	comments := opts.CommentPrefixes
	if comments == nil {
		comments = []string{"#", ";"}
	}
	defaultName := opts.DefaultSection
	if defaultName == "" {
		defaultName = "DEFAULT"
	}

	cfg := &Config{defaults: &section{name: defaultName}}
	var (
		cursect     *section
		curopt      *option
		indentLevel = 0
		seen        = make(map[string]struct{})
		errs        []error
	)
	s := bufio.NewScanner(r)
	s.Buffer(nil, math.MaxInt)
	lineno := 1
	for ; s.Scan(); lineno++ {
		line := s.Text()
		commentStart := inlineCommentStart(line, opts.InlineCommentPrefixes)
		trimmed := strings.TrimFunc(line, isSpace)
		for _, prefix := range comments {
			if prefix != "" && strings.HasPrefix(trimmed, prefix) {
				commentStart = 0
				break
			}
		}
		value := line
		if commentStart >= 0 {
			value = line[:commentStart]
		}
		value = strings.TrimFunc(value, isSpace)

		if value == "" {
			if opts.BlankLinesEndValues {
				indentLevel = math.MaxInt
			} else if commentStart < 0 && curopt != nil && curopt.hasValue {
				curopt.lines = append(curopt.lines, "")
			}
			continue
		}

		curIndent := utf8.RuneCountInString(line[:strings.IndexFunc(line, notSpace)])
		if cursect != nil && curopt != nil && curIndent > indentLevel {
			if !curopt.hasValue {
				errs = append(errs, &ParseError{Line: lineno, Text: line, Err: ErrSyntax})
				continue
			}
			curopt.lines = append(curopt.lines, value)
			continue
		}
		indentLevel = curIndent

		if name, ok := sectionHeader(value); ok {
			switch existing := cfg.section(name); {
			case existing != nil && existing != cfg.defaults:
				if _, dup := seen[name]; dup && !opts.NonStrict {
					return nil, &ParseError{Line: lineno, Text: line, Err: ErrDuplicateSection}
				}
				cursect = existing
				seen[name] = struct{}{}
			case existing == cfg.defaults:
				cursect = cfg.defaults
			default:
				cursect = &section{name: name}
				cfg.sections = append(cfg.sections, cursect)
				seen[name] = struct{}{}
			}
			curopt = nil
			continue
		}
		if cursect == nil {
			return nil, &ParseError{Line: lineno, Text: line, Err: ErrMissingSectionHeader}
		}

		name, optval, hasValue, ok := splitOption(value, delims, opts.AllowNoValue)
		if !ok {
			// The previous option stays open for continuation lines.
			errs = append(errs, &ParseError{Line: lineno, Text: line, Err: ErrSyntax})
			continue
		}
		name = optionName(name)
		if name == "" {
			errs = append(errs, &ParseError{Line: lineno, Text: line, Err: ErrSyntax})
			curopt = nil
			continue
		}
		key := cursect.name + "\x00" + name
		if _, dup := seen[key]; dup && !opts.NonStrict {
			return nil, &ParseError{Line: lineno, Text: line, Err: ErrDuplicateOption}
		}
		seen[key] = struct{}{}
		curopt = cursect.option(name)
		if curopt == nil {
			curopt = &option{name: name}
			cursect.options = append(cursect.options, curopt)
		}
		curopt.hasValue = hasValue
		curopt.lines = nil
		if hasValue {
			curopt.lines = []string{strings.TrimFunc(optval, isSpace)}
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read ini: line %d: %w", lineno, err)
	}

	for _, sect := range append([]*section{cfg.defaults}, cfg.sections...) {
		for _, o := range sect.options {
			o.value = strings.TrimRightFunc(strings.Join(o.lines, "\n"), isSpace)
		}
	}
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

// sectionHeader matches "[name]" at the start of value. Text after the
// closing bracket is ignored.
func sectionHeader(value string) (string, bool) {
	if !strings.HasPrefix(value, "[") {
		return "", false
	}
	end := strings.IndexByte(value, ']')
	if end < 2 {
		return "", false
	}
	return value[1:end], true
}

// splitOption splits value at the earliest delimiter. Among delimiters at
// the same position, the first listed wins.
func splitOption(value string, delims []string, allowNoValue bool) (name, optval string, hasValue, ok bool) {
	pos, delim := -1, ""
	for _, d := range delims {
		if d == "" {
			continue
		}
		if i := strings.Index(value, d); i >= 0 && (pos < 0 || i < pos) {
			pos, delim = i, d
		}
	}
	if pos < 0 {
		if !allowNoValue {
			return "", "", false, false
		}
		return value, "", false, true
	}
	return value[:pos], value[pos+len(delim):], true, true
}

// optionName normalizes an option name the way configparser's optionxform
// does.
func optionName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimRightFunc(name, isSpace))
}

// inlineCommentStart returns the byte offset of the inline comment in line,
// or -1. Each prefix is searched for occurrence by occurrence, in rounds, and
// the search stops at the first round that finds a prefix at the start of the
// line or after white space.
func inlineCommentStart(line string, prefixes []string) int {
	type cursor struct {
		prefix string
		index  int
	}
	var cursors []cursor
	for _, p := range prefixes {
		if p != "" {
			cursors = append(cursors, cursor{prefix: p, index: -1})
		}
	}
	for len(cursors) > 0 {
		start := -1
		next := cursors[:0]
		for _, c := range cursors {
			from := c.index + 1
			if from > len(line) {
				continue
			}
			i := strings.Index(line[from:], c.prefix)
			if i < 0 {
				continue
			}
			c.index = from + i
			next = append(next, c)
			if c.index == 0 || precededBySpace(line, c.index) {
				if start < 0 || c.index < start {
					start = c.index
				}
			}
		}
		if start >= 0 {
			return start
		}
		cursors = next
	}
	return -1
}

func precededBySpace(line string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(line[:i])
	return isSpace(r)
}

// isSpace matches the white space recognized by Python's str.strip, which
// also includes the ASCII separator controls.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func notSpace(r rune) bool {
	return !isSpace(r)
}

// Sections returns the default section's name followed by the names of the
// other sections in the order they first appeared.
func (c *Config) Sections() []string {
	names := []string{c.defaults.name}
	for _, s := range c.sections {
		names = append(names, s.name)
	}
	return names
}

// HasSection reports whether the section appeared in the file. The default
// section is always present.
func (c *Config) HasSection(name string) bool {
	return c.section(name) != nil
}

// Keys returns the option names visible in a section: its own options
// followed by inherited defaults it does not override. Keys returns nil for
// an unknown section.
func (c *Config) Keys(section string) []string {
	s := c.section(section)
	if s == nil {
		return nil
	}
	var keys []string
	for _, o := range s.options {
		keys = append(keys, o.name)
	}
	if s == c.defaults {
		return keys
	}
	for _, o := range c.defaults.options {
		if s.option(o.name) == nil {
			keys = append(keys, o.name)
		}
	}
	return keys
}

// Get returns the value of an option, falling back to the default section.
// hasValue is false for options written without a delimiter. ok is false if
// the option is not visible in the section.
func (c *Config) Get(section, key string) (value string, hasValue, ok bool) {
	s := c.section(section)
	if s == nil {
		return "", false, false
	}
	key = optionName(key)
	o := s.option(key)
	if o == nil {
		o = c.defaults.option(key)
	}
	if o == nil {
		return "", false, false
	}
	return o.value, o.hasValue, true
}
