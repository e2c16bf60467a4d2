// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetValue(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		options *ParseOptions
		section string
		key     string
		value   string
		want    string
	}{
		{
			name:    "Empty",
			section: "a",
			key:     "b",
			value:   "1",
			want:    "[a]\nb = 1\n",
		},
		{
			name:    "EmptyValue",
			section: "a",
			key:     "b",
			value:   "",
			want:    "[a]\nb =\n",
		},
		{
			name:    "HangingValue",
			section: "a",
			key:     "b",
			value:   "\n1\n2",
			want:    "[a]\nb = \n  1\n  2\n",
		},
		{
			name:    "FinalNewlineDropped",
			section: "a",
			key:     "b",
			value:   "1\n2\n",
			want:    "[a]\nb = 1\n  2\n",
		},
		{
			name:    "NewKey",
			source:  "[a]\nb = 1\n",
			section: "a",
			key:     "c",
			value:   "2",
			want:    "[a]\nb = 1\nc = 2\n",
		},
		{
			name:    "NewSection",
			source:  "[a]\nb = 1\n",
			section: "x",
			key:     "y",
			value:   "z",
			want:    "[a]\nb = 1\n\n[x]\ny = z\n",
		},
		{
			name:    "NewSectionMissingNewline",
			source:  "[a]\nb = 1",
			section: "x",
			key:     "y",
			value:   "z",
			want:    "[a]\nb = 1\n\n[x]\ny = z\n",
		},
		{
			name:    "NewKeyMissingNewline",
			source:  "[a]\nb = 1",
			section: "a",
			key:     "c",
			value:   "2",
			want:    "[a]\nb = 1\nc = 2\n",
		},
		{
			name:    "HeaderOnly",
			source:  "[a]",
			section: "a",
			key:     "b",
			value:   "1",
			want:    "[a]\nb = 1\n",
		},
		{
			name:    "CommentsOnly",
			source:  "# hello",
			section: "a",
			key:     "b",
			value:   "1",
			want:    "# hello\n[a]\nb = 1\n",
		},
		{
			name:    "ReplaceBetweenComments",
			source:  "[a]\n#comment1\nb = 1\n#comment2\n",
			section: "a",
			key:     "b",
			value:   "2",
			want:    "[a]\n#comment1\nb = 2\n#comment2\n",
		},
		{
			name:    "Replace",
			source:  "[a]\nb = 1\n",
			section: "a",
			key:     "b",
			value:   "2",
			want:    "[a]\nb = 2\n",
		},
		{
			name:    "ReplaceCaseInsensitive",
			source:  "[a]\nKey = 1\n",
			section: "a",
			key:     "KEY",
			value:   "2",
			want:    "[a]\nKey = 2\n",
		},
		{
			name:    "SectionCaseSensitive",
			source:  "[a]\nb = 1\n",
			section: "A",
			key:     "b",
			value:   "2",
			want:    "[a]\nb = 1\n\n[A]\nb = 2\n",
		},
		{
			name:    "ReplaceMultiLine",
			source:  "[a]\nb = 1\n  2\n  # c\n  3\nd = 4\n",
			section: "a",
			key:     "b",
			value:   "x",
			want:    "[a]\nb = x\nd = 4\n",
		},
		{
			name:    "ReplaceKeepsFollowingComments",
			source:  "[a]\nb = 1\n  2\n\n# about d\nd = 4\n",
			section: "a",
			key:     "b",
			value:   "x",
			want:    "[a]\nb = x\n\n# about d\nd = 4\n",
		},
		{
			name:    "IndentedKey",
			source:  "[a]\n  b = 1\n",
			section: "a",
			key:     "b",
			value:   "1\n2",
			want:    "[a]\n  b = 1\n    2\n",
		},
		{
			name:    "SpacingPreserved",
			source:  "[a]\nb =\n  x\n",
			section: "a",
			key:     "b",
			value:   "z",
			want:    "[a]\nb =z\n",
		},
		{
			name:    "ColonPreserved",
			source:  "[a]\nb:1\n",
			section: "a",
			key:     "b",
			value:   "2",
			want:    "[a]\nb:2\n",
		},
		{
			name:    "BareKey",
			source:  "[a]\nflag\n",
			options: &ParseOptions{AllowNoValue: true},
			section: "a",
			key:     "flag",
			value:   "1",
			want:    "[a]\nflag = 1\n",
		},
		{
			name:    "BareKeyEmptyValue",
			source:  "[a]\nflag\n",
			options: &ParseOptions{AllowNoValue: true},
			section: "a",
			key:     "flag",
			value:   "",
			want:    "[a]\nflag =\n",
		},
		{
			name:    "TrailingCommentsStayLast",
			source:  "[a]\nb = 1\n\n# end\n",
			section: "a",
			key:     "c",
			value:   "2",
			want:    "[a]\nb = 1\nc = 2\n\n# end\n",
		},
		{
			name:    "IndentedTextAfterSection",
			source:  "[a]\n  junk\n",
			section: "a",
			key:     "k",
			value:   "v",
			want:    "[a]\n  junk\nk = v\n",
		},
		{
			name:    "IndentedTextBeforeNextSection",
			source:  "[a]\n  junk\n[c]\nd = 1\n",
			section: "a",
			key:     "k",
			value:   "v\nw",
			want:    "[a]\n  junk\nk = v\n  w\n[c]\nd = 1\n",
		},
		{
			name:    "IndentedHeaderFollows",
			source:  "[a]\n  [c]\n",
			section: "a",
			key:     "k",
			value:   "v\nw",
			want:    "[a]\n  k = v\n    w\n  [c]\n",
		},
		{
			name:    "IndentedHeaderAfterBlankLine",
			source:  "[a]\nb = 1\n\n  [c]\n",
			options: &ParseOptions{BlankLinesEndValues: true},
			section: "a",
			key:     "k",
			value:   "v",
			want:    "[a]\nb = 1\n\n  k = v\n  [c]\n",
		},
		{
			name:    "FirstOfRepeatedSection",
			source:  "[a]\nb = 1\n[a]\nc = 2\n",
			section: "a",
			key:     "c",
			value:   "3",
			want:    "[a]\nb = 1\nc = 3\n[a]\nc = 2\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(test.source, test.options)
			if err != nil {
				t.Fatal(err)
			}
			d.SetValue(test.section, test.key, test.value)
			if diff := cmp.Diff(test.want, d.String()); diff != "" {
				t.Errorf("after SetValue(%q, %q, %q) (-want +got):\n%s", test.section, test.key, test.value, diff)
			}

			// The new text must read back the same value.
			d2, err := Parse(d.String(), test.options)
			if err != nil {
				t.Fatal("Parse(d.String()):", err)
			}
			want := test.value
			if len(want) > 0 && want[len(want)-1] == '\n' {
				want = want[:len(want)-1]
			}
			if got, err := d2.Get(test.section, test.key); err != nil || got != want {
				t.Errorf("reparsed Get(%q, %q) = %q, %v; want %q, <nil>", test.section, test.key, got, err, want)
			}
		})
	}
}

func TestSetValuePreservesOtherValues(t *testing.T) {
	const source = "; header\n" +
		"[metadata]\n" +
		"name = inikit\n" +
		"classifiers =\n" +
		"    Topic :: Utilities\n" +
		"\n" +
		"    License :: OSI Approved\n" +
		"[options]\n" +
		"  packages = find:\n" +
		"  install_requires =\n" +
		"      requests\n"
	d, err := Parse(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	before := values(d)
	d.SetValue("metadata", "version", "1.0")
	d.SetValue("options", "packages", "find_namespace:")
	d.SetValue("extras", "test", "pytest\ncoverage")

	d2, err := Parse(d.String(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := before
	want["metadata"]["version"] = "1.0"
	want["options"]["packages"] = "find_namespace:"
	want["extras"] = map[string]string{"test": "pytest\ncoverage"}
	if diff := cmp.Diff(want, values(d2)); diff != "" {
		t.Errorf("values after edits (-want +got):\n%s", diff)
	}
}

func TestSetValueKeepsUntouchedText(t *testing.T) {
	const source = "[a]\n" +
		"  x   :   1  \n" +
		"\tY=2\t\n" +
		"# note\n" +
		"z = 3\n"
	d, err := Parse(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	d.SetValue("a", "y", "20")
	const want = "[a]\n" +
		"  x   :   1  \n" +
		"\tY=20\n" +
		"# note\n" +
		"z = 3\n"
	if diff := cmp.Diff(want, d.String()); diff != "" {
		t.Errorf("after SetValue (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	const source = "[a]\n" +
		"b = 1\n" +
		"# about c\n" +
		"c = 2\n" +
		"  3\n" +
		"[d]\n" +
		"e = 4\n"

	t.Run("Entry", func(t *testing.T) {
		d, err := Parse(source, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.DeleteEntry("a", "C"); err != nil {
			t.Fatal("DeleteEntry:", err)
		}
		const want = "[a]\nb = 1\n[d]\ne = 4\n"
		if diff := cmp.Diff(want, d.String()); diff != "" {
			t.Errorf("after DeleteEntry (-want +got):\n%s", diff)
		}
	})
	t.Run("SimilarKeys", func(t *testing.T) {
		d, err := Parse("[a]\na=1\naa=2\n[b]\nb=2\n", nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.DeleteEntry("a", "aa"); err != nil {
			t.Fatal("DeleteEntry:", err)
		}
		const want = "[a]\na=1\n[b]\nb=2\n"
		if diff := cmp.Diff(want, d.String()); diff != "" {
			t.Errorf("after DeleteEntry (-want +got):\n%s", diff)
		}
		if err := d.DeleteEntry("a", "z"); !errors.Is(err, ErrNotFound) {
			t.Errorf("DeleteEntry(\"a\", \"z\") = %v; want %v", err, ErrNotFound)
		}
	})
	t.Run("Section", func(t *testing.T) {
		d, err := Parse(source, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.DeleteSection("d"); err != nil {
			t.Fatal("DeleteSection:", err)
		}
		const want = "[a]\nb = 1\n# about c\nc = 2\n  3\n"
		if diff := cmp.Diff(want, d.String()); diff != "" {
			t.Errorf("after DeleteSection (-want +got):\n%s", diff)
		}
	})
	t.Run("MissingSection", func(t *testing.T) {
		d, err := Parse(source, nil)
		if err != nil {
			t.Fatal(err)
		}
		err = d.DeleteSection("x")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("DeleteSection(\"x\") = %v; want %v", err, ErrNotFound)
		}
		var lookupErr *LookupError
		if !errors.As(err, &lookupErr) || lookupErr.Section != "x" || lookupErr.Key != "" {
			t.Errorf("DeleteSection(\"x\") = %#v; want *LookupError{Section: \"x\"}", err)
		}
		if d.String() != source {
			t.Errorf("document changed after failed delete:\n%s", d)
		}
	})
	t.Run("MissingKey", func(t *testing.T) {
		d, err := Parse(source, nil)
		if err != nil {
			t.Fatal(err)
		}
		err = d.DeleteEntry("d", "b")
		var lookupErr *LookupError
		if !errors.As(err, &lookupErr) || lookupErr.Section != "d" || lookupErr.Key != "b" {
			t.Errorf("DeleteEntry(\"d\", \"b\") = %v; want *LookupError{Section: \"d\", Key: \"b\"}", err)
		}
		if err := d.DeleteEntry("x", "b"); !errors.Is(err, ErrNotFound) {
			t.Errorf("DeleteEntry(\"x\", \"b\") = %v; want %v", err, ErrNotFound)
		}
	})
}

func TestNewEntry(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{key: "a", value: "1", want: "a = 1\n"},
		{key: "a", value: "", want: "a =\n"},
		{key: "a", value: "1\n2", want: "a = 1\n  2\n"},
		{key: "a", value: "\n", want: "a =\n"},
		{key: "a", value: "\nx", want: "a = \n  x\n"},
	}
	for _, test := range tests {
		s := NewSection("s")
		s.Entries = append(s.Entries, NewEntry(test.key, test.value))
		d := &Document{Sections: []*Section{s}}
		if diff := cmp.Diff("[s]\n"+test.want, d.String()); diff != "" {
			t.Errorf("NewEntry(%q, %q) (-want +got):\n%s", test.key, test.value, diff)
		}
	}
}

// values returns every key's interpreted value, by section.
func values(d *Document) map[string]map[string]string {
	m := make(map[string]map[string]string)
	for _, s := range d.Sections {
		if _, dup := m[s.Name]; dup {
			continue
		}
		m[s.Name] = make(map[string]string)
		for _, key := range s.Keys() {
			m[s.Name][key], _ = s.Get(key)
		}
	}
	return m
}
