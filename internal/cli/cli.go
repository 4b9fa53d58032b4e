package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/pyrite/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options are the application-level flags; every other --key=value
// argument is a configuration assignment handed to the command-line source
// adapter untouched.
var optionNames = map[string]bool{
	"config":     true,
	"search":     true,
	"log-format": true,
	"log-level":  true,
	"watch":      true,
	"help":       true,
	"h":          true,
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("pyrite", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
pyrite - bind and run a configurable component.

Usage:
  pyrite [options] FAMILY [INSTANCE] [--key=value ...]

Arguments:
  FAMILY
    The component family to bind, e.g. 'applications.hello'.
  INSTANCE
    The runtime instance name. Defaults to the last family segment.
  --key=value
    A configuration assignment for the instance, e.g. --times=3 or
    --greeter.decoration='?!'. Outranks every file-based setting.

Options (value must be attached with '='):
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an explicit configuration file (.pfg, .yaml, .hcl).")
	searchFlag := flagSet.String("search", ".", "Colon-separated directories searched for an instance-named configuration file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	watchFlag := flagSet.Bool("watch", false, "Keep running, re-binding when the --config file changes.")

	// Application options and configuration assignments share the --name
	// syntax, so split them up front: known option names go to the flag
	// set, everything else is an assignment for the instance.
	flagArgs, positionals, assignments := split(args)

	if err := flagSet.Parse(flagArgs); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if len(positionals) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if len(positionals) > 2 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", positionals[2])}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	instance := ""
	if len(positionals) == 2 {
		instance = positionals[1]
	}

	config, err := app.NewConfig(app.Config{
		Family:      positionals[0],
		Instance:    instance,
		ConfigPath:  *configFlag,
		SearchPath:  strings.Split(*searchFlag, ":"),
		Assignments: assignments,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Watch:       *watchFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}

// split partitions the argument list into application flags, positionals
// and configuration assignments.
func split(args []string) (flagArgs, positionals, assignments []string) {
	for _, arg := range args {
		name, isFlag := strings.CutPrefix(arg, "--")
		if !isFlag {
			if short, ok := strings.CutPrefix(arg, "-"); ok && optionNames[short] {
				flagArgs = append(flagArgs, arg)
				continue
			}
			positionals = append(positionals, arg)
			continue
		}
		name, _, _ = strings.Cut(name, "=")
		if optionNames[name] {
			flagArgs = append(flagArgs, arg)
		} else {
			assignments = append(assignments, arg)
		}
	}
	return flagArgs, positionals, assignments
}
