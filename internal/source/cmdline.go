package source

import (
	"context"
	"fmt"
	"strings"
)

const cmdlineOrigin = "cmdline"

// CommandLine adapts a list of --key=value arguments into assignments
// rooted at the target instance's namespace: --times=3 for instance "hello"
// becomes the path ["hello", "times"]. Dots in the key add deeper segments.
type CommandLine struct {
	instance string
	args     []string
}

// NewCommandLine creates an adapter over the given argument list. The list
// is expected to be pre-filtered to assignment arguments; application-level
// options are the caller's business.
func NewCommandLine(instance string, args []string) *CommandLine {
	return &CommandLine{instance: instance, args: args}
}

// Read implements the Adapter interface. Every argument must have the form
// --key=value; anything else is collected as a ParseError.
func (c *CommandLine) Read(_ context.Context) (Result, error) {
	var res Result
	for _, arg := range c.args {
		body, ok := strings.CutPrefix(arg, "--")
		if !ok {
			res.Errors = append(res.Errors, &ParseError{
				Origin: cmdlineOrigin,
				Reason: fmt.Sprintf("argument %q: expected --key=value", arg),
			})
			continue
		}
		key, value, ok := strings.Cut(body, "=")
		if !ok || key == "" {
			res.Errors = append(res.Errors, &ParseError{
				Origin: cmdlineOrigin,
				Reason: fmt.Sprintf("argument %q: expected --key=value", arg),
			})
			continue
		}

		path := append([]string{c.instance}, strings.Split(key, ".")...)
		if badSegment(path) {
			res.Errors = append(res.Errors, &ParseError{
				Origin: cmdlineOrigin,
				Reason: fmt.Sprintf("argument %q: key has an empty segment", arg),
			})
			continue
		}

		res.Assignments = append(res.Assignments, Assignment{
			Path:     path,
			Value:    value,
			Priority: PriorityCommandLine,
			Origin:   cmdlineOrigin,
		})
	}
	return res, nil
}

func badSegment(path []string) bool {
	for _, seg := range path {
		if seg == "" {
			return true
		}
	}
	return false
}
