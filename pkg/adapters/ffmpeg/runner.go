package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/user/sweepcast/pkg/ports"
)

// maxLineSize bounds a single output line; ffmpeg banners can be long.
const maxLineSize = 1024 * 1024

// Runner executes ffmpeg and streams its output line by line.
type Runner struct {
	binary    string
	waitDelay time.Duration
}

// New creates a runner for the given binary.
// An empty path is resolved with Find on first use.
func New(binary string) *Runner {
	return &Runner{binary: binary, waitDelay: 5 * time.Second}
}

// Binary returns the resolved executable path.
func (r *Runner) Binary() (string, error) {
	if r.binary != "" {
		if _, err := os.Stat(r.binary); err == nil {
			return r.binary, nil
		}
	}
	path, err := Find(r.binary)
	if err != nil {
		return "", err
	}
	r.binary = path
	return path, nil
}

// Run starts ffmpeg and blocks until it exits.
// A non-zero exit status is reported through exitCode with a nil error;
// err is only set when the process could not run or ctx was cancelled.
func (r *Runner) Run(ctx context.Context, args []string, onStdout, onStderr func(string)) (int, error) {
	binary, err := r.Binary()
	if err != nil {
		return -1, err
	}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Cancel = func() error {
		// ffmpeg finalizes its outputs on interrupt.
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = r.waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("start ffmpeg: %w", err)
	}

	var wg sync.WaitGroup
	scan := func(rd io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(rd)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if forward != nil {
				forward(scanner.Text())
			}
		}
		// Drain so the process never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, rd)
	}

	wg.Add(2)
	go scan(stdout, onStdout)
	go scan(stderr, onStderr)
	wg.Wait()

	waitErr := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return exitCode(cmd), fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("wait ffmpeg: %w", waitErr)
	}
	return 0, nil
}

func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

var _ ports.ProcessRunner = (*Runner)(nil)
