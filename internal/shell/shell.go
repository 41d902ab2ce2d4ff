// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/invowk/textutils/internal/coreutils"
	"github.com/invowk/textutils/internal/issue"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// builtinFailure is the exit status of a builtin that returned an error.
	builtinFailure = 1
	// builtinUsage is the exit status of a builtin given bad flags or operands.
	builtinUsage = 2
)

type (
	// ExitStatus is a non-zero exit status of a script.
	ExitStatus int

	// IO holds the standard streams of a script.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Script describes one script execution.
	Script struct {
		// Source is the script text.
		Source io.Reader
		// Name is used in parse error positions, e.g. "build.sh" or "-c".
		Name string
		// Dir is the initial working directory.
		Dir string
		// Env is the environment in "KEY=value" form.
		Env []string
		// Args are the positional parameters $1, $2, ...
		Args []string
		IO   IO
	}

	// Runner executes scripts, dispatching registered utilities in-process.
	Runner struct {
		registry       *coreutils.Registry
		enableBuiltins bool
		logger         *log.Logger
	}
)

func (e ExitStatus) Error() string {
	return "exit status " + strconv.Itoa(int(e))
}

// NewRunner creates a Runner. A nil registry disables builtins; a nil logger
// discards debug output.
func NewRunner(registry *coreutils.Registry, enableBuiltins bool, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		registry:       registry,
		enableBuiltins: enableBuiltins && registry != nil,
		logger:         logger,
	}
}

// Run parses and executes the script. A script that exits non-zero returns
// ExitStatus; parse and interpreter failures are returned as
// issue.ActionableError.
func (r *Runner) Run(ctx context.Context, s Script) error {
	prog, err := syntax.NewParser().Parse(s.Source, s.Name)
	if err != nil {
		return scriptError("parse script", s.Name, err)
	}

	opts := []interp.RunnerOption{
		interp.Dir(s.Dir),
		interp.Env(expand.ListEnviron(s.Env...)),
		interp.StdIO(s.IO.Stdin, s.IO.Stdout, s.IO.Stderr),
		interp.ExecHandlers(r.execHandler),
	}

	// "--" keeps arguments like "-v" from being taken as shell options.
	if len(s.Args) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, s.Args...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return scriptError("create interpreter", s.Name, err)
	}

	err = runner.Run(coreutils.WithLogger(ctx, r.logger), prog)
	if err == nil {
		return nil
	}

	var status interp.ExitStatus
	if errors.As(err, &status) {
		r.logger.Debug("script exited", "name", s.Name, "status", int(status))
		return ExitStatus(status)
	}
	return scriptError("run script", s.Name, err)
}

// execHandler runs registered utilities in-process and hands every other
// command to next.
func (r *Runner) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if r.enableBuiltins {
			if handled, err := r.tryBuiltin(ctx, args); handled {
				return err
			}
		}
		return next(ctx, args)
	}
}

// tryBuiltin reports whether args named a registered utility. A failing
// utility has its error printed and is mapped to an exit status, since any
// other handler error aborts the whole script.
func (r *Runner) tryBuiltin(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	cmd, found := r.registry.Lookup(args[0])
	if !found {
		return false, nil
	}

	r.logger.Debug("running builtin", "name", args[0], "args", args[1:])
	err := cmd.Run(ctx, args)
	if err == nil {
		return true, nil
	}

	fmt.Fprintln(interp.HandlerCtx(ctx).Stderr, err)
	if errors.Is(err, coreutils.ErrUsage) {
		return true, interp.ExitStatus(builtinUsage)
	}
	return true, interp.ExitStatus(builtinFailure)
}

func scriptError(op, name string, err error) error {
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(name).
		WithIssue(issue.ScriptFailedId).
		Wrap(err).
		BuildError()
}
