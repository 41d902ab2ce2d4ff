// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/invowk/textutils/internal/config"
	"github.com/invowk/textutils/internal/coreutils"
	"github.com/invowk/textutils/internal/issue"

	"github.com/charmbracelet/fang"
)

const (
	// failureExitCode is the status of a utility that failed at runtime.
	failureExitCode = 1
	// usageExitCode is the status of bad flags or operands.
	usageExitCode = 2
)

// handleError prints err to w. Utility and script failures are printed as
// the utilities themselves would; ActionableErrors get their suggestions.
// In verbose mode a matching issue guide follows.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var (
		exitErr *ExitError
		ae      *issue.ActionableError
	)
	switch {
	case errors.As(err, &ae):
		errStyles := newStyles(w, a.cfg.UI.Color)
		fmt.Fprintln(w, errStyles.Error.Render("Error: ")+ae.Format(a.verbose))
	case errors.As(err, &exitErr):
		if exitErr.Err == nil {
			return
		}
		fmt.Fprintln(w, exitErr.Err.Error())
	default:
		fang.DefaultErrorHandler(w, styles, err)
	}

	if !a.verbose {
		return
	}
	if id := classifyError(err); id != 0 {
		a.renderIssue(w, id)
	}
}

// renderIssue writes the Markdown guide of the issue with the given id.
func (a *App) renderIssue(w io.Writer, id issue.Id) {
	guide := issue.Get(id)
	if guide == nil {
		return
	}

	stylePath := "auto"
	if a.cfg.UI.Color == config.ColorNever {
		stylePath = "notty"
	}

	rendered, err := guide.Render(stylePath)
	if err != nil {
		a.logger.Debug("failed to render issue guide", "id", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}

// classifyError maps an error to the issue guide that explains it, or zero
// when none applies. An issue attached to an ActionableError wins.
func classifyError(err error) issue.Id {
	var (
		ae         *issue.ActionableError
		countErr   *coreutils.CountError
		patternErr *coreutils.PatternError
	)
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.As(err, &countErr):
		return issue.IllegalCountId
	case errors.As(err, &patternErr):
		return issue.InvalidPatternId
	case errors.Is(err, coreutils.ErrCommandNotFound):
		return issue.UnknownUtilityId
	case errors.Is(err, fs.ErrNotExist):
		return issue.FileNotFoundId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
