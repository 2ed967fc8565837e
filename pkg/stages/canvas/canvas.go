// Package canvas computes the output canvas that every frame is padded into.
package canvas

import (
	"context"

	"github.com/user/sweepcast/pkg/pipeline"
)

// Stage turns sequence maxima into an even-sized canvas.
type Stage struct{}

// NewStage creates a new canvas stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute normalizes the tallest and widest measured dimensions.
func (s *Stage) Execute(ctx context.Context, stats pipeline.SequenceStats) (pipeline.Dimension, error) {
	w, h := Normalize(stats.TallestHeight, stats.WidestWidth)
	return pipeline.Dimension{Width: w, Height: h}, nil
}

// Normalize returns the canvas width and height for the given maxima, each
// rounded up to an even number. yuv420p and yuva420p reject odd sizes.
func Normalize(tallestHeight, widestWidth int) (canvasWidth, canvasHeight int) {
	return Even(widestWidth), Even(tallestHeight)
}

// Even rounds n up to the next even number.
func Even(n int) int {
	if n%2 != 0 {
		return n + 1
	}
	return n
}
