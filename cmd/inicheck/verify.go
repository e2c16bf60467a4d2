// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
	"github.com/yourbase/inikit/ini/compat"
	"zombiezen.com/go/log"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check that files round-trip and agree with configparser",
		Long: `The verify command parses each file, writes it back out, and compares the
result with the original bytes. It then reads the file the way Python's
configparser does and checks that every key has the same value.

Example:
  inicheck verify setup.cfg tox.ini
  inicheck verify --allow-no-value my.cnf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

// Verification results.
const (
	statusOK        = "OK"
	statusParse     = "FAIL PARSE"
	statusRoundTrip = "FAIL ROUND TRIP"
	statusReference = "FAIL REFERENCE"
	statusMissing   = "FAIL MISSING"
	statusCompare   = "FAIL COMPARE"
	statusEmpty     = "FAIL EMPTY"
)

func runVerify(ctx context.Context, out io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		status, detail := verifyFile(ctx, path)
		if status == statusOK {
			fmt.Fprintf(out, "%s %s\n", path, okColor(status))
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", path, failColor(status))
		io.WriteString(out, detail)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed verification", failed, len(paths))
	}
	return nil
}

// verifyFile checks a single file. detail is empty or a sequence of
// newline-terminated lines explaining a failure.
func verifyFile(ctx context.Context, path string) (status, detail string) {
	log.Debugf(ctx, "Verifying %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf(ctx, "%v", err)
		return statusParse, ""
	}
	text := string(data)
	doc, err := ini.Parse(text, parseOptions())
	if err != nil {
		log.Errorf(ctx, "%s: %v", path, err)
		return statusParse, ""
	}
	if got := doc.String(); got != text {
		return statusRoundTrip, lineDiff(text, got)
	}
	ref, err := compat.Parse(strings.NewReader(text), compatOptions())
	if err != nil {
		log.Warnf(ctx, "%s: configparser would reject file: %v", path, err)
		return statusReference, ""
	}
	return compareValues(doc, ref)
}

// compareValues checks that every value visible to configparser is present
// in doc with the same value, and that doc has nothing configparser lacks.
// Line endings are normalized before comparing, since configparser reads
// "\r\n" as "\n".
func compareValues(doc *ini.Document, ref *compat.Config) (status, detail string) {
	defaultSection := ref.Sections()[0]
	checked := 0
	var missing, mismatched strings.Builder
	for _, name := range ref.Sections() {
		for _, key := range ref.Keys(name) {
			want, _, _ := ref.Get(name, key)
			got, err := doc.Get(name, key)
			if err != nil {
				got, err = doc.Get(defaultSection, key)
			}
			if err != nil {
				fmt.Fprintf(&missing, "  [%s] %s: missing from syntax tree\n", name, key)
				continue
			}
			checked++
			got = strings.ReplaceAll(got, "\r\n", "\n")
			if got != want {
				fmt.Fprintf(&mismatched, "  [%s] %s: got %q; configparser has %q\n", name, key, got, want)
			}
		}
	}
	for _, s := range doc.Sections {
		for _, key := range s.Keys() {
			if _, _, ok := ref.Get(s.Name, key); !ok {
				fmt.Fprintf(&missing, "  [%s] %s: missing from configparser\n", s.Name, key)
			}
		}
	}
	switch {
	case missing.Len() > 0:
		return statusMissing, missing.String()
	case mismatched.Len() > 0:
		return statusCompare, mismatched.String()
	case checked == 0:
		return statusEmpty, ""
	default:
		return statusOK, ""
	}
}
