// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inicheck verifies and edits INI files without disturbing their formatting.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yourbase/inikit/envvar"
	"github.com/yourbase/inikit/ini"
	"github.com/yourbase/inikit/ini/compat"
)

var (
	// Global flags
	verbose               bool
	quiet                 bool
	noColor               bool
	allowNoValue          bool
	delimiters            []string
	commentPrefixes       []string
	inlineCommentPrefixes []string
	blankLinesEndValues   bool
)

var rootCmd = &cobra.Command{
	Use:   "inicheck",
	Short: "Verify and edit INI files without disturbing their formatting",
	Long: `inicheck parses INI files into a lossless syntax tree. It can check that
a file survives a parse and re-serialize unchanged and that every value agrees
with configparser's reading of the file, and it can set or delete values while
leaving comments, whitespace, and line endings alone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(os.Stderr)
		setupColor(os.Stdout)
		return checkDialectFlags()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log each step")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Log errors only")
	flags.BoolVar(&noColor, "no-color", envvar.Set("NO_COLOR"), "Disable colored output")
	addDialectFlags(flags)
}

// addDialectFlags registers the flags that select the INI dialect. Their
// defaults come from INICHECK_* environment variables.
func addDialectFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&allowNoValue, "allow-no-value",
		envvar.Bool("INICHECK_ALLOW_NO_VALUE", false),
		"Accept keys without a delimiter")
	flags.StringSliceVar(&delimiters, "delimiters",
		envvar.List("INICHECK_DELIMITERS", ",", []string{"=", ":"}),
		"Key-value delimiters")
	flags.StringSliceVar(&commentPrefixes, "comment-prefixes",
		envvar.List("INICHECK_COMMENT_PREFIXES", ",", []string{"#", ";"}),
		"Prefixes of whole-line comments")
	flags.StringSliceVar(&inlineCommentPrefixes, "inline-comment-prefixes",
		envvar.List("INICHECK_INLINE_COMMENT_PREFIXES", ",", nil),
		"Prefixes of inline comments, applied by the configparser reference only")
	flags.BoolVar(&blankLinesEndValues, "blank-lines-end-values",
		envvar.Bool("INICHECK_BLANK_LINES_END_VALUES", false),
		"End multi-line values at blank lines")
}

// checkDialectFlags rejects flag values that the parsers cannot accept.
func checkDialectFlags() error {
	for _, d := range delimiters {
		if d == "" {
			return errors.New("--delimiters: empty delimiter")
		}
	}
	for _, c := range commentPrefixes {
		if c == "" {
			return errors.New("--comment-prefixes: empty prefix")
		}
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "inicheck:", err)
		os.Exit(1)
	}
}

// parseOptions returns the lossless parser options selected by flags.
func parseOptions() *ini.ParseOptions {
	return &ini.ParseOptions{
		AllowNoValue:          allowNoValue,
		Delimiters:            delimiters,
		CommentPrefixes:       commentPrefixes,
		InlineCommentPrefixes: inlineCommentPrefixes,
		BlankLinesEndValues:   blankLinesEndValues,
	}
}

// compatOptions returns the configparser options that correspond to
// parseOptions.
func compatOptions() *compat.Options {
	return &compat.Options{
		AllowNoValue:          allowNoValue,
		Delimiters:            delimiters,
		CommentPrefixes:       commentPrefixes,
		InlineCommentPrefixes: inlineCommentPrefixes,
		BlankLinesEndValues:   blankLinesEndValues,
	}
}
