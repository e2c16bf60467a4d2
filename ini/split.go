// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// indentChars are the characters that may appear in a line's leading
// indentation. The set matches what configparser-compatible readers strip
// before deciding whether a line continues a value.
const indentChars = " \t\r\x1f\x1e\x1d\x1c\x0c\x0b"

// lineParts is a physical line decomposed into its formatting and content.
// indent + core + trailing + newline always equals the original line.
type lineParts struct {
	indent   string
	core     string
	trailing string
	newline  string
}

// blank reports whether the line has no content besides whitespace.
func (p lineParts) blank() bool {
	return p.core == ""
}

// splitLine decomposes one physical line. The line may contain at most one
// "\n", at its end.
func splitLine(line string) lineParts {
	var p lineParts
	n := 0
	for n < len(line) && strings.IndexByte(indentChars, line[n]) >= 0 {
		n++
	}
	p.indent, line = line[:n], line[n:]

	switch {
	case strings.HasSuffix(line, "\r\n"):
		p.newline = "\r\n"
	case strings.HasSuffix(line, "\n"):
		p.newline = "\n"
	}
	line = line[:len(line)-len(p.newline)]

	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	p.core, p.trailing = line[:end], line[end:]
	return p
}

// splitLines splits text after each "\n". The final element holds the text
// after the last newline and is omitted if empty.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
