// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar reads environment variables that supply defaults for
// command-line flags.
package envvar

import (
	"os"
	"strconv"
	"strings"
)

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. If it is unset or
// cannot be parsed by strconv.ParseBool, it returns the default value.
func Bool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// Set reports whether the environment variable is present and non-empty.
// It follows the NO_COLOR convention, where any value counts.
func Set(key string) bool {
	return os.Getenv(key) != ""
}

// List splits the value of an environment variable on sep. Empty elements
// are dropped. If the variable is empty or unset, List returns the default
// value.
func List(key string, sep string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var list []string
	for _, elem := range strings.Split(v, sep) {
		if elem != "" {
			list = append(list, elem)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
