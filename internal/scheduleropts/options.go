// Package scheduleropts defines the explicit configuration struct the
// scheduling pipeline is parameterized by — no global string-keyed registry,
// per spec.md §9's design notes, matching the teacher's AppConfig
// struct-of-flags style.
package scheduleropts

// Direction selects which terminal sentinel a scheduling pass walks toward.
type Direction string

const (
	ASAP Direction = "ASAP"
	ALAP Direction = "ALAP"
)

// Options is the full set of inputs spec.md §6 recognizes for one kernel's
// scheduling run.
type Options struct {
	// Scheduler selects the unconstrained cycle-solving direction used as
	// the pre-pass (ASAP or ALAP).
	Scheduler Direction
	// Uniform runs the ALAP-uniforming redistribution pass after the
	// resource-constrained schedule.
	Uniform bool
	// Commute suppresses RAR and DAD edges when true, per spec.md §4.1.
	Commute bool
	// PrintDotGraphs renders a DOT document for the final schedule.
	PrintDotGraphs bool
	// OutputDir is the filesystem directory DOT output is written under,
	// when PrintDotGraphs is set.
	OutputDir string
	// Prescheduler gates the non-resource-constrained pre-pass entirely;
	// when false, scheduling goes straight to the resource-constrained
	// list scheduler.
	Prescheduler bool
	// StallCycleMultiplier bounds the resource-constrained list
	// scheduler's curr_cycle advance at depth * multiplier cycles. Zero
	// selects the package default (4), per spec.md §9's Open Question.
	StallCycleMultiplier int
}

// Default returns the Options a caller gets when it asks for nothing in
// particular: ASAP pre-pass, uniforming on, full commutativity analysis,
// no DOT output.
func Default() Options {
	return Options{
		Scheduler:    ASAP,
		Uniform:      true,
		Commute:      true,
		Prescheduler: true,
	}
}
