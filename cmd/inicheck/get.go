// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
	"zombiezen.com/go/log"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get SECTION KEY FILE...",
		Short: "Print a value",
		Long: `The get command prints the value of a key. When more than one file is
given, the first file that has the key wins; missing files are skipped.

Example:
  inicheck get metadata version setup.cfg
  inicheck get user name .git/config ~/.gitconfig`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], args[2:])
		},
	}
}

func runGet(ctx context.Context, out io.Writer, section, key string, paths []string) error {
	fset, err := ini.ParseFiles(parseOptions(), paths...)
	if err != nil {
		return err
	}
	for i, doc := range fset {
		if doc == nil {
			log.Debugf(ctx, "Skipping missing file %s", paths[i])
		}
	}
	v, ok := fset.Get(section, key)
	if !ok {
		return fmt.Errorf("get: key %q in section %q: %w", key, section, ini.ErrNotFound)
	}
	_, err = fmt.Fprintln(out, v)
	return err
}
