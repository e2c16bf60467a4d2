// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
)

// ErrNoSection is reported (through StructuralError) when an entry appears
// before the first section header.
var ErrNoSection = errors.New("entry outside of section")

// ErrNotFound is reported (through LookupError) when a section or key does
// not exist.
var ErrNotFound = errors.New("not found")

// A StructuralError describes input that cannot be represented as a
// Document. Parsing stops at the first StructuralError.
type StructuralError struct {
	// Line is the 1-based line number of the offending line.
	Line int
	// Text is the offending line, including its terminator.
	Text string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("parse ini file: line %d: %v: %q", e.Line, ErrNoSection, e.Text)
}

// Unwrap returns ErrNoSection.
func (e *StructuralError) Unwrap() error {
	return ErrNoSection
}

// A LookupError is returned by operations addressed at a section or key that
// does not exist.
type LookupError struct {
	Section string
	// Key is empty when the section itself is missing.
	Key string

	keyed bool
}

func sectionNotFound(section string) *LookupError {
	return &LookupError{Section: section}
}

func keyNotFound(section, key string) *LookupError {
	return &LookupError{Section: section, Key: key, keyed: true}
}

func (e *LookupError) Error() string {
	if e.keyed {
		return fmt.Sprintf("ini: key %q in section %q %v", e.Key, e.Section, ErrNotFound)
	}
	return fmt.Sprintf("ini: section %q %v", e.Section, ErrNotFound)
}

// Unwrap returns ErrNotFound.
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}
