package termprogress

import "github.com/user/sweepcast/pkg/ports"

// Noop discards all progress.
type Noop struct{}

// NewNoop creates a progress sink that draws nothing.
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) Begin(string, int) {}
func (Noop) Step()             {}
func (Noop) Set(float64)       {}
func (Noop) Done()             {}

var _ ports.Progress = (*Noop)(nil)
