package ports

import (
	"context"
)

// ProcessRunner abstracts execution of the external encoder.
type ProcessRunner interface {
	// Run executes the encoder with args, delivering stdout and stderr lines
	// to the callbacks as they arrive. It returns the process exit code.
	// A non-nil error means the process could not be run or was cancelled;
	// a non-zero exit code alone is not an error.
	Run(ctx context.Context, args []string, onStdout, onStderr func(line string)) (exitCode int, err error)
}

// OutputProbe inspects an encoded video file.
type OutputProbe interface {
	// Probe returns the video track sample count and frame dimensions.
	Probe(path string) (VideoInfo, error)
}

// VideoInfo describes an encoded video track.
type VideoInfo struct {
	Frames int
	Width  int
	Height int
}
