package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunShouldExit(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, nil)
	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRunParseError(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined")
}

func TestRunPanicRecovery(t *testing.T) {
	dir := t.TempDir()
	platformPath := writeFile(t, dir, "platform.hcl", `
platform "demo" {
  cycle_time = 10
  qubit_number = 2
}`)
	circuitPath := writeFile(t, dir, "circuit.hcl", `
circuit "broken" {
  gate "h" {
    // missing closing brace
`)

	out := &bytes.Buffer{}
	err := run(out, []string{"-circuit", circuitPath, "-platform", platformPath})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "application startup panicked"))
}

func TestRunSchedulesCircuit(t *testing.T) {
	dir := t.TempDir()
	platformPath := writeFile(t, dir, "platform.hcl", `
platform "demo" {
  cycle_time = 10
  qubit_number = 2
}`)
	circuitPath := writeFile(t, dir, "circuit.hcl", `
circuit "bell" {
  gate "h" {
    kind     = "generic"
    qubits   = [0]
    duration = 10
  }
  gate "cnot" {
    kind     = "cnot"
    qubits   = [0, 1]
    duration = 20
  }
}`)

	out := &bytes.Buffer{}
	err := run(out, []string{"-circuit", circuitPath, "-platform", platformPath})
	require.NoError(t, err)
	require.Contains(t, out.String(), "scheduled")
}
