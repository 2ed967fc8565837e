// Package termprogress renders phase progress on the terminal.
package termprogress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/sweepcast/pkg/ports"
)

// fractionScale is the bar size used for fraction-based phases.
const fractionScale = 1000

// Bar implements ports.Progress with a progress bar per phase.
type Bar struct {
	out io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// New creates a Bar writing to out.
func New(out io.Writer) *Bar {
	return &Bar{out: out}
}

// NewAuto returns a Bar on stderr when it is a terminal, otherwise a Noop.
func NewAuto(enabled bool) ports.Progress {
	if !enabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return NewNoop()
	}
	return New(os.Stderr)
}

// Begin starts a phase. A total of 0 makes the phase fraction based.
func (b *Bar) Begin(description string, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar != nil {
		_ = b.bar.Finish()
	}
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100 * time.Millisecond),
		progressbar.OptionClearOnFinish(),
	}
	max := total
	if max > 0 {
		opts = append(opts, progressbar.OptionShowCount())
	} else {
		max = fractionScale
	}
	b.bar = progressbar.NewOptions(max, opts...)
}

// Step advances a counted phase by one.
func (b *Bar) Step() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

// Set moves a fraction-based phase to fraction in [0, 1].
func (b *Bar) Set(fraction float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	_ = b.bar.Set(int(fraction * float64(b.bar.GetMax())))
}

// Done finishes the current phase.
func (b *Bar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
}

var _ ports.Progress = (*Bar)(nil)
