// Package platform models the Platform Oracle collaborator: it supplies the
// cycle time (duration of one scheduling cycle, in the same units as gate
// duration) and the qubit count the scheduler needs but never computes
// itself.
package platform

import (
	"context"
	"fmt"
)

// Platform is the minimal read-only oracle the scheduler consults.
type Platform struct {
	// CycleTime is the duration of one scheduling cycle, positive, in the
	// same time units as Gate.Duration.
	CycleTime int
	// QubitNumber is the number of qubits this platform exposes.
	QubitNumber int
}

// Validate enforces the invariants §6 and §7 assume are true by the time a
// Platform reaches the scheduler: a non-positive cycle time would make every
// edge weight computation (ceil(duration/cycle_time)) meaningless.
func (p Platform) Validate() error {
	if p.CycleTime <= 0 {
		return fmt.Errorf("platform: cycle_time must be positive, got %d", p.CycleTime)
	}
	if p.QubitNumber < 0 {
		return fmt.Errorf("platform: qubit_number must be non-negative, got %d", p.QubitNumber)
	}
	return nil
}

// Source supplies a Platform value, possibly from a remote calibration
// service. The scheduling packages take a resolved Platform value, not a
// Source; a caller resolves the Platform from a Source before building a
// kernel.
type Source interface {
	Platform(ctx context.Context) (Platform, error)
}

// Static is a Source that always returns the same, caller-supplied Platform.
type Static Platform

// Platform implements Source.
func (s Static) Platform(ctx context.Context) (Platform, error) {
	return Platform(s), nil
}
