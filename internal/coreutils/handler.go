// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/interp"
)

type (
	// HandlerContext provides the execution environment of a command.
	HandlerContext struct {
		// Stdin is the input stream for the command.
		Stdin io.Reader
		// Stdout is the output stream for the command.
		Stdout io.Writer
		// Stderr receives diagnostics.
		Stderr io.Writer
		// Dir is the working directory used to resolve relative paths.
		Dir string
		// LookupEnv retrieves environment variables.
		LookupEnv func(string) (string, bool)
		// Logger receives debug output. Nil discards.
		Logger *log.Logger
	}

	// handlerContextKey is the context key for storing HandlerContext.
	handlerContextKey struct{}

	// loggerKey is the context key for a logger attached by the shell.
	loggerKey struct{}
)

var discardLogger = log.New(io.Discard)

// ExtractHandlerContext builds a HandlerContext from mvdan/sh's exec handler
// context. The logger, if any, comes from WithLogger.
func ExtractHandlerContext(ctx context.Context) *HandlerContext {
	hc := interp.HandlerCtx(ctx)
	logger, _ := ctx.Value(loggerKey{}).(*log.Logger)
	// A runner without stdin leaves hc.Stdin nil.
	stdin := hc.Stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	return &HandlerContext{
		Stdin:  stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
		// expand.Variable.Set reports whether the variable exists.
		LookupEnv: func(name string) (string, bool) {
			v := hc.Env.Get(name)
			return v.Str, v.Set
		},
		Logger: logger,
	}
}

// WithHandlerContext stores a HandlerContext in the context.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// WithLogger attaches a logger that ExtractHandlerContext hands to commands
// run from the shell.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetHandlerContext retrieves the HandlerContext from the context. Without
// one set by WithHandlerContext it is extracted from mvdan/sh's context.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	if hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext); ok {
		return hc
	}
	return ExtractHandlerContext(ctx)
}

// logger returns the configured logger or one that discards.
func (hc *HandlerContext) logger() *log.Logger {
	if hc.Logger == nil {
		return discardLogger
	}
	return hc.Logger
}

// getenv returns an environment variable, or "" when unset.
func (hc *HandlerContext) getenv(name string) string {
	if hc.LookupEnv == nil {
		return ""
	}
	if v, ok := hc.LookupEnv(name); ok {
		return v
	}
	return ""
}

// resolve makes path absolute relative to the working directory.
func (hc *HandlerContext) resolve(path string) string {
	if filepath.IsAbs(path) || hc.Dir == "" {
		return path
	}
	return filepath.Join(hc.Dir, path)
}
