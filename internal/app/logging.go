// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns a timestamped logger writing to stderr. An unknown level
// falls back to info.
func NewLogger(prefix, level string) *log.Logger {
	return newLoggerTo(os.Stderr, prefix, level)
}

func newLoggerTo(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
	})
}
