// Package program schedules several independent kernels concurrently,
// bounding fan-out the way the teacher's internal/dag.Executor bounds its
// worker pool — but generalized from a shared-graph worker pool consuming a
// readyChan to independent, bounded-concurrency kernel runs, since kernels
// share no state once loaded (spec §5: scheduling runs single-threaded on
// one kernel at a time; the concurrency here is across kernels, never
// within one).
package program

import (
	"context"
	"fmt"

	"github.com/vk/qsched/internal/circuithcl"
	"github.com/vk/qsched/internal/criticality"
	"github.com/vk/qsched/internal/ctxlog"
	"github.com/vk/qsched/internal/cyclesolve"
	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/resource"
	"github.com/vk/qsched/internal/scheduler"
	"github.com/vk/qsched/internal/scheduleropts"
	"github.com/vk/qsched/internal/telemetry"
	"github.com/vk/qsched/internal/uniform"
	"golang.org/x/sync/errgroup"
)

// Kernel is one independently schedulable circuit plus the platform it
// targets.
type Kernel struct {
	Name    string
	Circuit circuithcl.Result
	Opts    scheduleropts.Options
	// Resources overrides the default per-kernel resource.SlotManager;
	// nil selects the default.
	Resources resource.Manager
	Telemetry *telemetry.Sink
}

// Result is one kernel's outcome: the resource-constrained final graph, or,
// when Opts.Uniform is set, the uniformed graph, whose cycles uniform.Run
// recomputes from the dependence graph alone.
type Result struct {
	Kernel *Kernel
	Graph  *depgraph.Graph
}

// Run schedules every kernel, at most workers of them concurrently,
// stopping at the first failure (mirroring the teacher's cancel-on-
// first-error executor semantics via errgroup's context cancellation).
func Run(ctx context.Context, kernels []Kernel, workers int) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(kernels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range kernels {
		i := i
		k := &kernels[i]
		g.Go(func() error {
			kernelLogger := logger.With("kernel", k.Name)
			graph, err := scheduleKernel(ctxlog.WithLogger(gctx, kernelLogger), k)
			if err != nil {
				return fmt.Errorf("program: kernel %q: %w", k.Name, err)
			}
			results[i] = Result{Kernel: k, Graph: graph}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scheduleKernel(ctx context.Context, k *Kernel) (*depgraph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	res := k.Circuit

	dgOpts := depgraph.Options{Commute: k.Opts.Commute}
	g, err := depgraph.Build(ctx, res.Circuit, res.Platform, res.QubitCount, res.CregCount, dgOpts)
	if err != nil {
		return nil, fmt.Errorf("building dependence graph: %w", err)
	}

	if k.Opts.Prescheduler {
		switch k.Opts.Scheduler {
		case scheduleropts.ALAP:
			cyclesolve.ALAP(g)
		default:
			cyclesolve.ASAP(g)
		}
	}

	rm := k.Resources
	if rm == nil {
		rm = resource.NewSlotManager(res.Platform, res.QubitCount)
	}
	schedOpts := scheduler.Options{
		Direction:            criticality.Forward,
		Resources:            rm,
		StallCycleMultiplier: k.Opts.StallCycleMultiplier,
	}
	if err := scheduler.Run(ctx, g, schedOpts); err != nil {
		return nil, fmt.Errorf("list scheduling: %w", err)
	}

	if k.Opts.Uniform {
		uniform.Run(g)
	}

	if k.Telemetry != nil {
		for _, n := range g.Nodes {
			if n.Kind == depgraph.RealNode {
				k.Telemetry.Publish(ctx, k.Name, n.Gate)
			}
		}
	}

	logger.Info("kernel scheduled", "nodes", len(g.Nodes), "final_cycle", g.Sink().Gate.Cycle)
	return g, nil
}
