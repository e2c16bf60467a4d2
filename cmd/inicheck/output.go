// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"zombiezen.com/go/log"
)

// cliLogger writes log entries as single lines prefixed with the program
// name.
type cliLogger struct {
	min log.Level

	mu sync.Mutex
	w  io.Writer
}

func (l *cliLogger) Log(ctx context.Context, entry log.Entry) {
	if !l.LogEnabled(entry) {
		return
	}
	prefix := ""
	switch {
	case entry.Level >= log.Error:
		prefix = "error: "
	case entry.Level >= log.Warn:
		prefix = "warning: "
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "inicheck: %s%s\n", prefix, entry.Msg)
}

func (l *cliLogger) LogEnabled(entry log.Entry) bool {
	return entry.Level >= l.min
}

// setupLogging installs the default logger at the level chosen by the
// --verbose and --quiet flags.
func setupLogging(w io.Writer) {
	level := log.Info
	switch {
	case quiet:
		level = log.Error
	case verbose:
		level = log.Debug
	}
	log.SetDefault(&cliLogger{min: level, w: w})
}

// setupColor disables color unless f is a terminal and color has not been
// turned off by flag or environment.
func setupColor(f *os.File) {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	if noColor || !tty {
		color.NoColor = true
	}
}

var (
	okColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failColor = color.New(color.FgRed, color.Bold).SprintFunc()
	addColor  = color.New(color.FgGreen).SprintFunc()
	delColor  = color.New(color.FgRed).SprintFunc()
	hunkColor = color.New(color.FgCyan).SprintFunc()
)
