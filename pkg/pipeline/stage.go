// Package pipeline holds the stage contract and the value types passed
// between the planning, capture, canvas, assembly and encode stages.
package pipeline

import (
	"context"
)

// Stage is one step of a sweep. Stages are run in order by the orchestrator
// and must return promptly once ctx is cancelled.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc lets a plain function act as a Stage.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute calls f.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
