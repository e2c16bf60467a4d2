// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

// lineDiff returns a line-oriented diff of a and b, or the empty string if
// they are equal. Each line is quoted so that differences in white space and
// line endings are visible.
func lineDiff(a, b string) string {
	if a == b {
		return ""
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	sb := new(strings.Builder)
	for i, d := range diffs {
		text := splitAfterNewline(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, line := range text {
				sb.WriteString(delColor(fmt.Sprintf("-%q", line)))
				sb.WriteString("\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range text {
				sb.WriteString(addColor(fmt.Sprintf("+%q", line)))
				sb.WriteString("\n")
			}
		case diffmatchpatch.DiffEqual:
			writeContext(sb, text, i > 0, i < len(diffs)-1)
		}
	}
	return sb.String()
}

// writeContext writes the unchanged lines that border a change. before and
// after report whether there is a change above and below the lines.
func writeContext(sb *strings.Builder, text []string, before, after bool) {
	head, tail := 0, 0
	if before {
		head = min(diffContext, len(text))
	}
	if after {
		tail = min(diffContext, len(text)-head)
	}
	for _, line := range text[:head] {
		fmt.Fprintf(sb, " %q\n", line)
	}
	if head+tail < len(text) {
		sb.WriteString(hunkColor(fmt.Sprintf("@@ %d unchanged lines @@", len(text)-head-tail)))
		sb.WriteString("\n")
	}
	for _, line := range text[len(text)-tail:] {
		fmt.Fprintf(sb, " %q\n", line)
	}
}

func splitAfterNewline(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
