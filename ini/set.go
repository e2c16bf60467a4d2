// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"os"
)

// FileSet is a list of documents to obtain configuration from in descending
// order of precedence. Nil elements are ignored.
type FileSet []*Document

// ParseFiles parses the files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *Document.
func ParseFiles(opts *ParseOptions, paths ...string) (FileSet, error) {
	p := NewParser(opts)
	fset := make(FileSet, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		doc, err := p.Parse(string(data))
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %s: %w", path, err)
		}
		fset = append(fset, doc)
	}
	return fset, nil
}

// Get returns the value of key in the named section from the first document
// that has it.
func (fset FileSet) Get(section, key string) (_ string, ok bool) {
	for _, doc := range fset {
		if v, err := doc.Get(section, key); err == nil {
			return v, true
		}
	}
	return "", false
}

// Has reports whether any document has key in the named section.
func (fset FileSet) Has(section, key string) bool {
	_, ok := fset.Get(section, key)
	return ok
}

// SectionNames returns the names of sections in any document, each name
// once, in the order they are first seen.
func (fset FileSet) SectionNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, doc := range fset {
		for _, name := range doc.SectionNames() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// SetValue sets the key in the first document and deletes every entry for it
// from all subsequent documents. SetValue panics if len(fset) == 0. If
// fset[0] == nil, SetValue allocates a new Document.
func (fset FileSet) SetValue(section, key, value string) {
	if fset[0] == nil {
		fset[0] = new(Document)
	}
	fset[0].SetValue(section, key, value)
	for _, doc := range fset[1:] {
		if doc == nil {
			continue
		}
		for _, s := range doc.Sections {
			if s.Name != section {
				continue
			}
			for s.Delete(key) == nil {
			}
		}
	}
}
