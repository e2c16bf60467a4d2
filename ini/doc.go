// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a lossless parser and editor for INI configuration text
in the dialect read by configparser-style libraries.
See https://en.wikipedia.org/wiki/INI_file.

Unlike most INI packages, this package keeps every byte of its input. Parse
produces a Document, a concrete syntax tree that records whitespace, comments,
blank lines, and line terminators alongside the keys and values. Serializing a
Document that has not been modified reproduces the parsed text exactly, and
edits made through Document.SetValue, Document.DeleteSection, and
Document.DeleteEntry only touch the bytes that have to change.

The package is specifically designed for read-modify-write scenarios such as
bumping a version in a setup.cfg while leaving the rest of the file alone.

Syntax

A document is a sequence of physical lines. Each line is classified as one of:

	[section]          a section header
	key = value        an entry; "=" and ":" are the default delimiters
	    more value     a continuation of the previous entry's value
	# comment          a comment; "#" and ";" are the default prefixes
	                   a blank line

A continuation line is any non-blank line indented deeper than the key line of
the entry above it. Continuation lines extend that entry's value: the
interpreted value of

	[metadata]
	classifiers =
	    Topic :: Utilities
	    License :: OSI Approved

is "\nTopic :: Utilities\nLicense :: OSI Approved". Blank lines inside a
continuation block are kept in the value unless
ParseOptions.BlankLinesEndValues is set. Comment lines inside the block are
kept in the tree but are not part of the value.

Entries must appear after a section header. Text that is neither a section
header nor an entry is kept verbatim and attached to the next node, so almost
any input parses.

Keys are compared case-insensitively and section names are compared exactly.
Repeated sections and keys are permitted; lookups return the first match.
*/
package ini
