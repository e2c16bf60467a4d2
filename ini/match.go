// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type sectionMatch struct {
	open     string
	name     string
	close    string
	trailing string
}

// matchSection matches "[name]rest" where name is non-empty and contains no
// closing bracket. Anything after the bracket is kept as trailing text.
func matchSection(core string) (sectionMatch, bool) {
	if !strings.HasPrefix(core, "[") {
		return sectionMatch{}, false
	}
	end := strings.IndexByte(core, ']')
	if end < 2 {
		return sectionMatch{}, false
	}
	return sectionMatch{
		open:     core[:1],
		name:     core[1:end],
		close:    core[end : end+1],
		trailing: core[end+1:],
	}, true
}

type entryMatch struct {
	key             string
	beforeDelimiter string
	delimiter       string
	afterDelimiter  string
	value           string
}

// matchEntry splits core at the earliest occurrence of a delimiter. If two
// delimiters start at the same position, the one listed first wins. A core
// without a delimiter is only an entry when bare keys are allowed.
func (p *Parser) matchEntry(core string) (entryMatch, bool) {
	pos, delim := -1, ""
	for _, d := range p.delimiters {
		i := strings.Index(core, d)
		if i >= 0 && (pos < 0 || i < pos) {
			pos, delim = i, d
		}
	}
	if pos < 0 {
		if !p.allowNoValue || core == "" {
			return entryMatch{}, false
		}
		key := strings.TrimRightFunc(core, isSpace)
		return entryMatch{
			key:             key,
			beforeDelimiter: core[len(key):],
		}, true
	}
	key := strings.TrimRightFunc(core[:pos], isSpace)
	rest := core[pos+len(delim):]
	value := strings.TrimLeftFunc(rest, isSpace)
	return entryMatch{
		key:             key,
		beforeDelimiter: core[len(key):pos],
		delimiter:       delim,
		afterDelimiter:  rest[:len(rest)-len(value)],
		value:           value,
	}, true
}

// isComment reports whether core starts with a whole-line comment prefix.
func (p *Parser) isComment(core string) bool {
	for _, prefix := range p.commentPrefixes {
		if strings.HasPrefix(core, prefix) {
			return true
		}
	}
	return false
}

// isSpace reports whether r is white space in the sense used by
// configparser's patterns, which also counts the ASCII separator controls.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// indentWidth returns the number of characters in indent. Indentation is
// measured in characters, not bytes or columns.
func indentWidth(indent string) int {
	return utf8.RuneCountInString(indent)
}
