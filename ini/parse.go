// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// ParseOptions holds optional parameters for Parse. The zero value selects
// the defaults of the configparser dialect.
type ParseOptions struct {
	// AllowNoValue permits entries that consist of a key alone.
	AllowNoValue bool

	// Delimiters separate keys from values. If two delimiters occur at the
	// same position, the one listed first wins. If nil, "=" and ":" are used.
	Delimiters []string

	// CommentPrefixes start whole-line comments. If nil, "#" and ";" are
	// used. A non-nil empty slice disables comments.
	CommentPrefixes []string

	// InlineCommentPrefixes is recorded but not applied: value text keeps
	// any inline comment markers verbatim.
	InlineCommentPrefixes []string

	// BlankLinesEndValues makes a blank or comment line terminate a
	// multi-line value. By default blank lines inside a continuation block
	// are kept as empty value lines.
	BlankLinesEndValues bool
}

var (
	defaultDelimiters      = []string{"=", ":"}
	defaultCommentPrefixes = []string{"#", ";"}
)

// A Parser converts text into Documents. Its configuration is fixed when it
// is created. A Parser is safe to use from multiple goroutines.
type Parser struct {
	allowNoValue          bool
	delimiters            []string
	commentPrefixes       []string
	inlineCommentPrefixes []string
	blankLinesEndValues   bool
}

// NewParser returns a Parser configured by opts. Nil options are treated
// identically as passing the zero value. NewParser panics if a delimiter or
// comment prefix is the empty string.
func NewParser(opts *ParseOptions) *Parser {
	if opts == nil {
		opts = new(ParseOptions)
	}
	p := &Parser{
		allowNoValue:          opts.AllowNoValue,
		delimiters:            copyOrDefault(opts.Delimiters, defaultDelimiters),
		commentPrefixes:       copyOrDefault(opts.CommentPrefixes, defaultCommentPrefixes),
		inlineCommentPrefixes: copyOrDefault(opts.InlineCommentPrefixes, nil),
		blankLinesEndValues:   opts.BlankLinesEndValues,
	}
	for _, d := range p.delimiters {
		if d == "" {
			panic("ini.NewParser: empty delimiter")
		}
	}
	for _, c := range p.commentPrefixes {
		if c == "" {
			panic("ini.NewParser: empty comment prefix")
		}
	}
	return p
}

func copyOrDefault(list, def []string) []string {
	if list == nil {
		return append([]string(nil), def...)
	}
	return append([]string{}, list...)
}

// Parse parses INI text. Nil options are treated identically as passing the
// zero value.
//
// The only error Parse returns is a *StructuralError for an entry that
// appears before any section header.
func Parse(text string, opts *ParseOptions) (*Document, error) {
	return NewParser(opts).Parse(text)
}

// parseState is carried from one physical line to the next.
type parseState struct {
	doc     *Document
	section *Section
	entry   *Entry
	// entryIndent is the indentation width of the open entry's key line, or
	// -1 when no continuation is possible.
	entryIndent int

	// pending is text not yet attached to any node. pendingLines holds the
	// same text split into lines so it can be folded into a value.
	pending      strings.Builder
	pendingLines []lineParts
}

// Parse parses INI text using p's configuration.
func (p *Parser) Parse(text string) (*Document, error) {
	st := &parseState{
		doc:         new(Document),
		entryIndent: -1,
	}
	for i, line := range splitLines(text) {
		if err := p.parseLine(st, line, splitLine(line)); err != nil {
			if se, ok := err.(*StructuralError); ok {
				se.Line = i + 1
			}
			return nil, err
		}
	}
	st.doc.Trailing = st.pending.String()
	return st.doc, nil
}

func (p *Parser) parseLine(st *parseState, line string, parts lineParts) error {
	comment := !parts.blank() && p.isComment(parts.core)
	if st.isContinuation(parts) && !(comment && p.blankLinesEndValues) {
		st.foldPending()
		v := ValueLine{
			Leading:  parts.indent,
			Text:     parts.core,
			Trailing: parts.trailing,
			Newline:  parts.newline,
		}
		if comment {
			v.Text = ""
			v.Trailing = parts.core + parts.trailing
			v.Comment = true
		}
		st.entry.Lines = append(st.entry.Lines, v)
		return nil
	}

	if parts.blank() || comment {
		if p.blankLinesEndValues {
			st.entryIndent = -1
		}
		st.addPending(line, parts)
		return nil
	}

	if m, ok := matchSection(parts.core); ok {
		st.section = &Section{
			Leading:      st.takePending() + parts.indent,
			OpenBracket:  m.open,
			Name:         m.name,
			CloseBracket: m.close,
			Trailing:     m.trailing + parts.trailing,
			Newline:      parts.newline,
		}
		st.doc.Sections = append(st.doc.Sections, st.section)
		st.entry = nil
		st.entryIndent = -1
		return nil
	}

	if m, ok := p.matchEntry(parts.core); ok {
		if st.section == nil {
			return &StructuralError{Text: line}
		}
		st.entry = &Entry{
			Leading:         st.takePending() + parts.indent,
			Key:             m.key,
			BeforeDelimiter: m.beforeDelimiter,
			Delimiter:       m.delimiter,
			AfterDelimiter:  m.afterDelimiter,
			Lines: []ValueLine{{
				Text:     m.value,
				Trailing: parts.trailing,
				Newline:  parts.newline,
			}},
		}
		st.section.Entries = append(st.section.Entries, st.entry)
		st.entryIndent = indentWidth(parts.indent)
		return nil
	}

	st.addPending(line, parts)
	return nil
}

// isContinuation reports whether a line extends the open entry's value.
// Blank lines never do on their own; they are folded in when a later
// continuation line follows them. Comment lines do, unless blank lines end
// values, in which case the caller closes the value instead.
func (st *parseState) isContinuation(parts lineParts) bool {
	return st.entry != nil &&
		st.entryIndent >= 0 &&
		!parts.blank() &&
		indentWidth(parts.indent) > st.entryIndent
}

func (st *parseState) addPending(line string, parts lineParts) {
	st.pending.WriteString(line)
	st.pendingLines = append(st.pendingLines, parts)
}

func (st *parseState) takePending() string {
	s := st.pending.String()
	st.pending.Reset()
	st.pendingLines = st.pendingLines[:0]
	return s
}

// foldPending moves pending lines into the open entry. Blank lines become
// empty value lines. Anything else between the entry and this continuation
// was a comment or unparsable text and is kept as a comment line.
func (st *parseState) foldPending() {
	for _, parts := range st.pendingLines {
		v := ValueLine{
			Leading: parts.indent,
			Newline: parts.newline,
		}
		if parts.blank() {
			v.Trailing = parts.trailing
		} else {
			v.Trailing = parts.core + parts.trailing
			v.Comment = true
		}
		st.entry.Lines = append(st.entry.Lines, v)
	}
	st.takePending()
}
