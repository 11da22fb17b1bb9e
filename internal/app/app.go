// Package app wires together HCL loading, dependence-graph construction,
// scheduling, and reporting into the single-kernel entry point
// cmd/qschedctl drives. Its shape — an isolated logger, a config struct
// loaded once at construction, a panic-on-fatal-config-error constructor —
// mirrors the teacher's internal/app.App.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/qsched/internal/circuithcl"
	"github.com/vk/qsched/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle for one scheduling run.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loaded circuithcl.Result
}

// NewApp loads the circuit and platform HCL files eagerly, the same way the
// teacher's NewApp loads its grid config eagerly: a failure here is a fatal
// startup error, not a recoverable one, so it panics rather than returning
// an error the caller might paper over.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("logger configured")

	platform, err := circuithcl.LoadPlatformFile(cfg.PlatformPath)
	if err != nil {
		panic(fmt.Errorf("failed to load platform description: %w", err))
	}
	circuit, qubitCount, cregCount, err := circuithcl.LoadCircuitFile(cfg.CircuitPath, platform)
	if err != nil {
		panic(fmt.Errorf("failed to load circuit: %w", err))
	}
	logger.Debug("circuit and platform loaded", "gates", len(circuit), "qubit_count", qubitCount, "creg_count", cregCount)

	_ = ctx
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loaded: circuithcl.Result{Platform: platform, Circuit: circuit, QubitCount: qubitCount, CregCount: cregCount},
	}
}
