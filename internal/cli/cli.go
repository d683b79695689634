package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/modreg/internal/app"
	"github.com/vk/modreg/internal/jsunit"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("modreg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
modreg - Define modules from manifests, require entry points and print their exports.

Usage:
  modreg [options] [MANIFEST_PATH...]

Arguments:
  MANIFEST_PATH
    A .hcl, .yaml or .yml manifest, or a directory containing manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to a manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to a manifest file or directory (shorthand).")
	requireFlag := flagSet.String("require", "", "Comma separated identifiers to require instead of the manifests' entries.")
	queryFlag := flagSet.String("query", "", "gjson path selecting part of the rendered exports.")
	globalFlag := flagSet.String("global-name", jsunit.DefaultGlobalName, "Global binding under which JavaScript units see the registry.")
	listFlag := flagSet.Bool("list", false, "Print the defined records instead of requiring entries.")
	metricsPortFlag := flagSet.Int("metrics-port", 0, "Port for the /health and /metrics HTTP server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text', 'json' or 'auto'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *manifestFlag != "" {
		paths = append(paths, *manifestFlag)
	}
	if *mFlag != "" {
		paths = append(paths, *mFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Manifest paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "text", "json", "auto":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text', 'json' or 'auto'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPaths: paths,
		Entries:       splitList(*requireFlag),
		Query:         *queryFlag,
		GlobalName:    *globalFlag,
		List:          *listFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		MetricsPort:   *metricsPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
