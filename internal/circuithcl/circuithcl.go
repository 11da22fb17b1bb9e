// Package circuithcl loads a circuit and its target platform description
// from an HCL document, the way the teacher's internal/hcl loader and
// internal/dag/node_runner.go's gohcl.DecodeBody usage load declarative
// step graphs — generalized here to a platform block and a circuit block
// of gate blocks instead of steps and arguments.
//
// Gate names may carry a parenthesized parameter suffix (e.g. "rx(1.57)"),
// mirroring the original scheduler.cc's stripname(): the suffix is stripped
// before kind lookup so the HCL author can keep parameters readable in the
// gate name without leaking string dispatch into the scheduler itself.
package circuithcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/platform"
)

// Document is the decoded shape of one circuit+platform HCL file.
type Document struct {
	Platform PlatformBlock `hcl:"platform,block"`
	Circuit  CircuitBlock  `hcl:"circuit,block"`
}

// PlatformBlock is the HCL `platform "name" { ... }` block.
type PlatformBlock struct {
	Name        string `hcl:"name,label"`
	CycleTime   int    `hcl:"cycle_time"`
	QubitNumber int    `hcl:"qubit_number"`
}

// CircuitBlock is the HCL `circuit "name" { gate ... }` block.
type CircuitBlock struct {
	Name  string     `hcl:"name,label"`
	Gates []GateBlock `hcl:"gate,block"`
}

// GateBlock is one HCL `gate "name" { ... }` entry.
type GateBlock struct {
	Name     string `hcl:"name,label"`
	Kind     string `hcl:"kind"`
	Qubits   []int  `hcl:"qubits,optional"`
	Cregs    []int  `hcl:"cregs,optional"`
	Duration int    `hcl:"duration,optional"`
}

// Result is everything a scheduling run needs, decoded from one document.
type Result struct {
	Platform    platform.Platform
	Circuit     []*gate.Gate
	QubitCount  int
	CregCount   int
}

// platformDocument is the shape of a platform-only HCL file, for callers
// (like cmd/qschedctl's -platform flag) that keep platform and circuit
// descriptions in separate files.
type platformDocument struct {
	Platform PlatformBlock `hcl:"platform,block"`
}

// circuitDocument is the shape of a circuit-only HCL file.
type circuitDocument struct {
	Circuit CircuitBlock `hcl:"circuit,block"`
}

// LoadPlatformFile parses a file containing only a `platform` block.
func LoadPlatformFile(path string) (platform.Platform, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return platform.Platform{}, fmt.Errorf("circuithcl: parsing %s: %w", path, diags)
	}
	var doc platformDocument
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return platform.Platform{}, fmt.Errorf("circuithcl: decoding %s: %w", path, diags)
	}
	p := platform.Platform{CycleTime: doc.Platform.CycleTime, QubitNumber: doc.Platform.QubitNumber}
	if err := p.Validate(); err != nil {
		return platform.Platform{}, fmt.Errorf("circuithcl: invalid platform %q: %w", doc.Platform.Name, err)
	}
	return p, nil
}

// LoadCircuitFile parses a file containing only a `circuit` block and
// decodes its gates against p (used only to fold p.QubitNumber into the
// returned qubit count floor).
func LoadCircuitFile(path string, p platform.Platform) (circuit []*gate.Gate, qubitCount, cregCount int, err error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, 0, 0, fmt.Errorf("circuithcl: parsing %s: %w", path, diags)
	}
	var doc circuitDocument
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return nil, 0, 0, fmt.Errorf("circuithcl: decoding %s: %w", path, diags)
	}
	return gatesFromBlock(doc.Circuit, p)
}

func gatesFromBlock(cb CircuitBlock, p platform.Platform) (circuit []*gate.Gate, qubitCount, cregCount int, err error) {
	circuit = make([]*gate.Gate, 0, len(cb.Gates))
	for _, gb := range cb.Gates {
		kind, kerr := kindFromString(gb.Kind)
		if kerr != nil {
			return nil, 0, 0, fmt.Errorf("gate %q: %w", gb.Name, kerr)
		}
		circuit = append(circuit, gate.New(stripParams(gb.Name), kind, gb.Qubits, gb.Cregs, gb.Duration))
		for _, q := range gb.Qubits {
			if q+1 > qubitCount {
				qubitCount = q + 1
			}
		}
		for _, c := range gb.Cregs {
			if c+1 > cregCount {
				cregCount = c + 1
			}
		}
	}
	if p.QubitNumber > qubitCount {
		qubitCount = p.QubitNumber
	}
	return circuit, qubitCount, cregCount, nil
}

// LoadFile parses and decodes the HCL file at path.
func LoadFile(path string) (Result, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Result{}, fmt.Errorf("circuithcl: parsing %s: %w", path, diags)
	}
	return decode(f.Body)
}

// LoadBytes parses and decodes an in-memory HCL document, useful for tests
// and embedded circuit literals.
func LoadBytes(filename string, src []byte) (Result, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Result{}, fmt.Errorf("circuithcl: parsing %s: %w", filename, diags)
	}
	return decode(f.Body)
}

func decode(body hcl.Body) (Result, error) {
	var doc Document
	if diags := gohcl.DecodeBody(body, nil, &doc); diags.HasErrors() {
		return Result{}, fmt.Errorf("circuithcl: decoding document: %w", diags)
	}

	p := platform.Platform{CycleTime: doc.Platform.CycleTime, QubitNumber: doc.Platform.QubitNumber}
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("circuithcl: invalid platform %q: %w", doc.Platform.Name, err)
	}

	circuit, qubitCount, cregCount, err := gatesFromBlock(doc.Circuit, p)
	if err != nil {
		return Result{}, fmt.Errorf("circuithcl: %w", err)
	}

	return Result{Platform: p, Circuit: circuit, QubitCount: qubitCount, CregCount: cregCount}, nil
}

// stripParams removes a trailing "(...)" parameter suffix from a gate name,
// mirroring the original's stripname().
func stripParams(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}

func kindFromString(s string) (gate.Kind, error) {
	switch stripParams(strings.ToLower(strings.TrimSpace(s))) {
	case "generic", "":
		return gate.Generic, nil
	case "measure":
		return gate.Measure, nil
	case "display":
		return gate.Display, nil
	case "classical":
		return gate.Classical, nil
	case "cnot":
		return gate.CNOT, nil
	case "cz":
		return gate.CZ, nil
	case "wait":
		return gate.Wait, nil
	case "remap":
		return gate.Remap, nil
	case "dummy":
		return gate.Dummy, nil
	default:
		return 0, fmt.Errorf("unknown gate kind %q", s)
	}
}
