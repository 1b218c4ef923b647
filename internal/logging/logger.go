// File: internal/logging/logger.go
// Brief: logr construction over zap for CLI commands.

// Package logging builds the logr.Logger every component receives at
// construction time. Warnings (patch field conflicts, divergent coalesced
// content) flow through it; fatal conditions are returned as errors instead.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// New returns a logger configured from a level string.
func New(level string) (logr.Logger, error) {
	opts := crzap.Options{}
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		opts.Development = true
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return logr.Logger{}, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
	atomic := zap.NewAtomicLevelAt(zapLevel)
	opts.Level = &atomic
	return crzap.New(crzap.UseFlagOptions(&opts)), nil
}
