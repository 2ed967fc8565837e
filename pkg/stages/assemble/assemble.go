package assemble

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/sweepcast/pkg/pipeline"
)

// Stage turns an encoder job into a ready-to-run encode input.
type Stage struct{}

// NewStage creates a new assemble stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute builds the argument list. Nothing is spawned here.
func (s *Stage) Execute(ctx context.Context, job pipeline.EncoderJob) (pipeline.EncodeInput, error) {
	args, err := BuildArgs(job)
	if err != nil {
		return pipeline.EncodeInput{}, err
	}
	return pipeline.EncodeInput{Job: job, Args: args}, nil
}

// OutputName returns the video file name for a browser kind and width range.
func OutputName(kind string, minWidth, maxWidth int, format pipeline.FormatTag) string {
	return fmt.Sprintf("%s-%d-%d%s", kind, minWidth, maxWidth, format.Extension())
}

// Outputs maps each requested format to its destination in dir.
func Outputs(dir, kind string, minWidth, maxWidth int, formats []pipeline.FormatTag) (pipeline.OutputSpec, error) {
	spec := make(pipeline.OutputSpec, len(formats))
	for _, f := range formats {
		if !f.Known() {
			return nil, fmt.Errorf("%w: unsupported output format %q", pipeline.ErrUsage, f)
		}
		spec[f] = filepath.Join(dir, OutputName(kind, minWidth, maxWidth, f))
	}
	return spec, nil
}
