// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging installs the process-wide slog handler.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Debug   bool
	LogFile string // empty: stderr only
}

// Setup makes a charmbracelet/log logger the slog default and returns it.
// On a terminal it prints coloured text; otherwise JSON lines. The returned
// closer flushes the log file, if any.
func Setup(cfg Config) (*log.Logger, io.Closer) {
	var writer io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.LogFile != "" {
		// Create rotating file handler
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stderr, fileWriter)
		closer = fileWriter
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	formatter := log.JSONFormatter
	if cfg.LogFile == "" && isatty.IsTerminal(os.Stderr.Fd()) {
		formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "word-sprint",
		Formatter:       formatter,
	})

	slog.SetDefault(slog.New(logger))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
