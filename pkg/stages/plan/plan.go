// Package plan implements the capture planning stage.
package plan

import (
	"context"
	"fmt"
	"strconv"

	"github.com/user/sweepcast/pkg/pipeline"
)

// Stage decides which widths to capture and at which height bound.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new plan stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute computes the capture plan for the width range.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.CapturePlan, error) {
	return ComputePlan(input)
}

// ComputePlan returns the ascending widths minWidth..maxWidth and the initial
// height bound. A fixed policy never grows; an unbounded policy starts at the
// probe height and lets the capture loop expand it.
func ComputePlan(input pipeline.PlanInput) (pipeline.CapturePlan, error) {
	if input.MinWidth <= 0 || input.MaxWidth <= 0 {
		return pipeline.CapturePlan{}, fmt.Errorf("%w: widths must be positive (min %d, max %d)",
			pipeline.ErrUsage, input.MinWidth, input.MaxWidth)
	}
	if input.MinWidth > input.MaxWidth {
		return pipeline.CapturePlan{}, fmt.Errorf("%w: min width %d is greater than max width %d",
			pipeline.ErrUsage, input.MinWidth, input.MaxWidth)
	}
	if input.Height.Fixed < 0 {
		return pipeline.CapturePlan{}, fmt.Errorf("%w: max height must be positive, got %d",
			pipeline.ErrUsage, input.Height.Fixed)
	}

	widths := make([]int, 0, input.MaxWidth-input.MinWidth+1)
	for w := input.MinWidth; w <= input.MaxWidth; w++ {
		widths = append(widths, w)
	}

	plan := pipeline.CapturePlan{
		Widths:      widths,
		WidthDigits: len(strconv.Itoa(input.MaxWidth)),
	}

	if input.Height.IsUnbounded() {
		plan.InitialBound = input.ProbeHeight
		if plan.InitialBound <= 0 {
			plan.InitialBound = pipeline.DefaultProbeHeight
		}
		plan.CanGrow = true
	} else {
		plan.InitialBound = input.Height.Fixed
	}

	return plan, nil
}
