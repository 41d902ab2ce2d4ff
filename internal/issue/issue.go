// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	PermissionDeniedId
	IllegalCountId
	InvalidPatternId
	ConfigLoadFailedId
	UnknownUtilityId
	ScriptFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference pages for the utilities involved
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal-formatted Markdown, with a trailing
// "See also" section listing every doc and external link.
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

One of the paths given to the utility does not exist.

## Things you can try:
- Check the spelling of the path and the current directory:
~~~
$ textutils ls -a .
~~~
- Use "-" to read standard input instead of a file
- Quote paths that contain spaces or glob characters`,
		docLinks: []HttpLink{
			"https://www.gnu.org/software/coreutils/manual/html_node/Common-options.html",
		},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A file or directory could not be opened with the current user's permissions.

## Things you can try:
- Inspect the owner and mode of the path:
~~~
$ textutils ls -l path/to/file
~~~
- Grant read access to the file, or execute access to its parent directories
- For recursive searches, exclude unreadable directories with "find --exclude-from"`,
	}

	illegalCountIssue = &Issue{
		id: IllegalCountId,
		mdMsg: `
# Illegal count!

A line or byte count must be a positive integer.

## Things you can try:
- Use a positive value, e.g. "head -n 5"
- For tail, prefix the value with "+" to start at a given position:
~~~
$ textutils tail -n +3 file.txt
~~~`,
		docLinks: []HttpLink{
			"https://www.gnu.org/software/coreutils/manual/html_node/head-invocation.html",
			"https://www.gnu.org/software/coreutils/manual/html_node/tail-invocation.html",
		},
	}

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid pattern!

The regular expression could not be compiled.

## Things you can try:
- Escape regex metacharacters such as "(", "[" and "." when matching them literally
- Use -P for Perl-style features like lookaround and backreferences:
~~~
$ textutils grep -P '(?<=id=)\d+' log.txt
~~~`,
		extLinks: []HttpLink{
			"https://github.com/google/re2/wiki/Syntax",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be loaded or validated.

## Things you can try:
- Show the resolved configuration path:
~~~
$ textutils config path
~~~
- Regenerate a default configuration:
~~~
$ textutils config init --force
~~~
- Check that "ui.color" is one of "auto", "always" or "never"`,
		extLinks: []HttpLink{
			"https://cuelang.org/docs/",
		},
	}

	unknownUtilityIssue = &Issue{
		id: UnknownUtilityId,
		mdMsg: `
# Unknown utility!

The requested utility is not part of this toolkit.

## Things you can try:
- List the available utilities:
~~~
$ textutils list
~~~
- Run it through the host shell instead`,
	}

	scriptFailedIssue = &Issue{
		id: ScriptFailedId,
		mdMsg: `
# Script failed!

The shell script could not be parsed or a command in it exited with a non-zero status.

## Things you can try:
- Run the script with verbose logging to see each builtin dispatch:
~~~
$ textutils --verbose sh script.sh
~~~
- Disable the builtin utilities to compare against the host tools:
~~~
shell: enable_builtins: false
~~~`,
		extLinks: []HttpLink{
			"https://pkg.go.dev/mvdan.cc/sh/v3/interp",
		},
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():     fileNotFoundIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		illegalCountIssue.Id():     illegalCountIssue,
		invalidPatternIssue.Id():   invalidPatternIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		unknownUtilityIssue.Id():   unknownUtilityIssue,
		scriptFailedIssue.Id():     scriptFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
