package app

import "errors"

// Config holds everything an App instance needs to schedule one kernel and
// report the result, mirroring the teacher's struct-of-flags AppConfig.
type Config struct {
	CircuitPath  string // HCL file with a `circuit` block
	PlatformPath string // HCL file with a `platform` block

	Scheduler string // "ASAP" or "ALAP"
	Uniform   bool
	Commute   bool

	DotDir string // if non-empty, write the scheduled DOT graph here
	Workers int

	LogFormat string
	LogLevel  string

	// TelemetryURL, if set, mirrors schedule events to a socket.io endpoint.
	TelemetryURL string
}

// NewConfig validates cfg and returns it, mirroring the teacher's
// app.NewConfig required-field check.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CircuitPath == "" {
		return nil, errors.New("CircuitPath is a required configuration field and cannot be empty")
	}
	if cfg.PlatformPath == "" {
		return nil, errors.New("PlatformPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
