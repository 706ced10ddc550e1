// Package cli parses command-line arguments into an app configuration.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/weavekit/weavekit/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("weavekit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
weavekit - a declarative component runtime: discovers component manifests,
wires constructor dependency graphs, and serves a categorized provider
registry.

Usage:
  weavekit [options] [COMPONENTS_PATH]

Arguments:
  COMPONENTS_PATH
    Path to a directory tree containing component manifest (.hcl) files.

Options:
`)
		flagSet.PrintDefaults()
	}

	componentsFlag := flagSet.String("components", "", "Path to the component manifest tree.")
	cFlag := flagSet.String("c", "", "Path to the component manifest tree (shorthand).")
	envFileFlag := flagSet.String("env-file", "", "Optional .env file to load before wiring.")
	httpPortFlag := flagSet.Int("http-port", 0, "Port for the introspection HTTP server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *componentsFlag != "" {
		path = *componentsFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
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

	config, err := app.NewConfig(app.Config{
		ComponentsPath: path,
		EnvFile:        *envFileFlag,
		HTTPPort:       *httpPortFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
