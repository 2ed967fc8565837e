package mocks

import (
	"context"

	"github.com/user/sweepcast/pkg/ports"
)

// ProcessRunner is a mock implementation of ports.ProcessRunner.
// Without RunFunc it replays Stdout and Stderr and exits with ExitCode.
type ProcessRunner struct {
	RunFunc func(ctx context.Context, args []string, onStdout, onStderr func(string)) (int, error)

	Stdout   []string
	Stderr   []string
	ExitCode int

	// Recorded calls for verification
	Calls [][]string
}

func (m *ProcessRunner) Run(ctx context.Context, args []string, onStdout, onStderr func(string)) (int, error) {
	m.Calls = append(m.Calls, args)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, args, onStdout, onStderr)
	}
	for _, line := range m.Stderr {
		onStderr(line)
	}
	for _, line := range m.Stdout {
		onStdout(line)
	}
	return m.ExitCode, nil
}

var _ ports.ProcessRunner = (*ProcessRunner)(nil)

// OutputProbe is a mock implementation of ports.OutputProbe.
type OutputProbe struct {
	ProbeFunc func(path string) (ports.VideoInfo, error)

	Paths []string
}

func (m *OutputProbe) Probe(path string) (ports.VideoInfo, error) {
	m.Paths = append(m.Paths, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.VideoInfo{}, nil
}

var _ ports.OutputProbe = (*OutputProbe)(nil)
