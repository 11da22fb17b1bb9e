package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/vk/qsched/internal/ctxlog"
	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/dot"
	"github.com/vk/qsched/internal/program"
	"github.com/vk/qsched/internal/scheduleropts"
	"github.com/vk/qsched/internal/telemetry"
)

// Run schedules the loaded circuit and reports the result to outW, mirroring
// the teacher's App.Run: build dependencies from config, do the work, print
// a short human-readable summary.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	opts := scheduleropts.Default()
	if a.config.Scheduler == string(scheduleropts.ALAP) {
		opts.Scheduler = scheduleropts.ALAP
	}
	opts.Uniform = a.config.Uniform
	opts.Commute = a.config.Commute
	opts.PrintDotGraphs = a.config.DotDir != ""
	opts.OutputDir = a.config.DotDir

	kernel := program.Kernel{
		Name:    "default",
		Circuit: a.loaded,
		Opts:    opts,
	}

	if a.config.TelemetryURL != "" {
		sink, err := telemetry.Dial(ctx, a.config.TelemetryURL, false)
		if err != nil {
			return fmt.Errorf("app: connecting telemetry sink: %w", err)
		}
		defer sink.Close()
		kernel.Telemetry = sink
	}

	results, err := program.Run(ctx, []program.Kernel{kernel}, a.config.Workers)
	if err != nil {
		return fmt.Errorf("app: scheduling failed: %w", err)
	}
	g := results[0].Graph

	if a.config.DotDir != "" {
		if err := a.writeDot(g); err != nil {
			return fmt.Errorf("app: writing DOT output: %w", err)
		}
	}

	a.printSummary(g)
	return nil
}

func (a *App) writeDot(g *depgraph.Graph) error {
	if err := os.MkdirAll(a.config.DotDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(a.config.DotDir, "schedule.dot")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dot.Render(g, dot.Options{RankByCycle: true}, f)
}

func (a *App) printSummary(g *depgraph.Graph) {
	// Real gates occupy cycles 1..SINK-1; SOURCE alone holds cycle 0.
	finalCycle := g.Sink().Gate.Cycle - 1
	gateCount := 0
	for _, n := range g.Nodes {
		if n.Kind == depgraph.RealNode {
			gateCount++
		}
	}
	fmt.Fprint(a.outW, color.Green.Sprintf("scheduled %d gates across %d cycles\n", gateCount, finalCycle))
	for _, n := range g.Nodes {
		if n.Kind != depgraph.RealNode {
			continue
		}
		fmt.Fprintf(a.outW, "  cycle %4d  %s\n", n.Gate.Cycle, n.Gate.Name)
	}
}
