// Package cli parses qschedctl's command-line arguments into an app.Config,
// mirroring the teacher's internal/cli: a flag.FlagSet with a custom usage
// banner, explicit validation of enum-like flags, and app.NewConfig as the
// single place final validation happens.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/qsched/internal/app"
)

// ExitError carries the process exit code a caller should use when Parse
// fails, so main can distinguish a usage error from an internal one.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly
// (e.g. -h was given), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("qschedctl", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
qschedctl - dependence-graph-based list scheduler for quantum circuits.

Usage:
  qschedctl -circuit FILE -platform FILE [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	circuitFlag := flagSet.String("circuit", "", "Path to the HCL file with the circuit block.")
	platformFlag := flagSet.String("platform", "", "Path to the HCL file with the platform block.")
	schedulerFlag := flagSet.String("scheduler", "ASAP", "Pre-pass cycle-solving direction. Options: 'ASAP' or 'ALAP'.")
	uniformFlag := flagSet.Bool("uniform", true, "Run the ALAP-uniforming redistribution pass after scheduling.")
	commuteFlag := flagSet.Bool("commute", true, "Suppress RAR/DAD edges for commuting gates.")
	dotDirFlag := flagSet.String("dot-dir", "", "If set, write the scheduled DOT graph to this directory.")
	workersFlag := flagSet.Int("workers", 1, "Number of kernels to schedule concurrently.")
	telemetryFlag := flagSet.String("telemetry-url", "", "If set, mirror schedule events to this socket.io endpoint.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *circuitFlag == "" || *platformFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	scheduler := strings.ToUpper(*schedulerFlag)
	if scheduler != "ASAP" && scheduler != "ALAP" {
		return nil, false, &ExitError{Code: 2, Message: "invalid scheduler: must be 'ASAP' or 'ALAP'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		CircuitPath:  *circuitFlag,
		PlatformPath: *platformFlag,
		Scheduler:    scheduler,
		Uniform:      *uniformFlag,
		Commute:      *commuteFlag,
		DotDir:       *dotDirFlag,
		Workers:      *workersFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		TelemetryURL: *telemetryFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
