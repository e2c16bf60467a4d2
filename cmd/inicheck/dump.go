// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
)

var dumpJSON bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print every section, key, and interpreted value",
		Long: `The dump command prints the keys of each section with their interpreted
values, quoted so that embedded newlines are visible. Keys are shown
lower-cased, the way lookups compare them.

Example:
  inicheck dump setup.cfg
  inicheck dump --json tox.ini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), args[0])
		},
	}
}

type dumpSection struct {
	Name    string      `json:"name"`
	Entries []dumpEntry `json:"entries"`
}

type dumpEntry struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	HasValue bool   `json:"has_value"`
}

func runDump(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := ini.Parse(string(data), parseOptions())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	sections := make([]dumpSection, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		ds := dumpSection{Name: s.Name, Entries: []dumpEntry{}}
		for i, key := range s.Keys() {
			e := s.Entries[i]
			ds.Entries = append(ds.Entries, dumpEntry{
				Key:      key,
				Value:    e.Value(),
				HasValue: e.HasValue(),
			})
		}
		sections = append(sections, ds)
	}

	if dumpJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(sections)
	}
	for _, s := range sections {
		fmt.Fprintf(out, "[%s]\n", s.Name)
		for _, e := range s.Entries {
			if !e.HasValue {
				fmt.Fprintf(out, "%s\n", e.Key)
				continue
			}
			fmt.Fprintf(out, "%s = %q\n", e.Key, e.Value)
		}
	}
	return nil
}
