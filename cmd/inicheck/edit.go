// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
	"zombiezen.com/go/log"
)

var (
	setWrite    bool
	deleteWrite bool
)

func init() {
	setCmd := newSetCmd()
	setCmd.Flags().BoolVarP(&setWrite, "write", "w", false, "Write the result to the file instead of printing a diff")
	rootCmd.AddCommand(setCmd)

	deleteCmd := newDeleteCmd()
	deleteCmd.Flags().BoolVarP(&deleteWrite, "write", "w", false, "Write the result to the file instead of printing a diff")
	rootCmd.AddCommand(deleteCmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set FILE SECTION KEY VALUE",
		Short: "Set a value",
		Long: `The set command sets a key to a value, creating the section and the key if
needed. Without --write, it prints the change as a diff.

Example:
  inicheck set setup.cfg metadata version 1.2.0
  inicheck set -w tox.ini testenv deps "$(printf '\npytest\ncoverage')"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFile(cmd.Context(), cmd.OutOrStdout(), args[0], setWrite, func(doc *ini.Document) error {
				doc.SetValue(args[1], args[2], args[3])
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE SECTION [KEY]",
		Short: "Delete a key or a whole section",
		Long: `The delete command removes a key, or a whole section if no key is given,
along with the comments directly above it. Without --write, it prints the
change as a diff.

Example:
  inicheck delete setup.cfg options.extras_require
  inicheck delete -w setup.cfg metadata license_file`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFile(cmd.Context(), cmd.OutOrStdout(), args[0], deleteWrite, func(doc *ini.Document) error {
				if len(args) == 2 {
					return doc.DeleteSection(args[1])
				}
				return doc.DeleteEntry(args[1], args[2])
			})
		},
	}
}

// editFile applies edit to the document in path. If write is true, the file
// is replaced, keeping its permissions. Otherwise the change is printed to
// out as a diff.
func editFile(ctx context.Context, out io.Writer, path string, write bool, edit func(*ini.Document) error) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := ini.Parse(string(data), parseOptions())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := edit(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	newText := doc.String()
	if !write {
		_, err := io.WriteString(out, lineDiff(string(data), newText))
		return err
	}
	if newText == string(data) {
		log.Debugf(ctx, "%s unchanged", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(newText), info.Mode().Perm()); err != nil {
		return err
	}
	log.Infof(ctx, "Wrote %s", path)
	return nil
}
