// Package encode implements the encoder supervision stage.
package encode

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/user/sweepcast/pkg/pipeline"
	"github.com/user/sweepcast/pkg/ports"
)

// Stage runs the encoder once and reports its progress.
// The whole multi-format fan-out is a single process.
type Stage struct {
	runner   ports.ProcessRunner
	progress ports.Progress
	logger   ports.Logger
	handler  pipeline.EventHandler
}

// NewStage creates a new encode stage.
func NewStage(runner ports.ProcessRunner, progress ports.Progress, logger ports.Logger) *Stage {
	return &Stage{
		runner:   runner,
		progress: progress,
		logger:   logger.WithComponent("encode"),
	}
}

// OnEvent registers an additional observer for encoder events.
func (s *Stage) OnEvent(handler pipeline.EventHandler) *Stage {
	s.handler = handler
	return s
}

// Execute spawns the encoder and blocks until it exits.
// Exit status 0 is the only success; any other status is returned as
// *pipeline.ExitError. Cancelling ctx terminates the encoder.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{State: pipeline.EncodeNotStarted}

	if len(input.Args) == 0 {
		return result, fmt.Errorf("%w: empty encoder argument list", pipeline.ErrAssembly)
	}

	sup := &supervisor{
		total: input.Job.FrameCount,
		emit:  s.emit,
	}

	s.logger.Debug("Running encoder: %s", strings.Join(input.Args, " "))
	s.progress.Begin("Encoding", 0)
	defer s.progress.Done()

	result.State = pipeline.EncodeRunning
	code, err := s.runner.Run(ctx, input.Args, sup.stdout, sup.stderr)
	result.Details = sup.detailsSeen()
	result.Progress = sup.lastFraction()
	if err != nil {
		result.State = pipeline.EncodeFailed
		result.ExitCode = code
		return result, fmt.Errorf("%w: run encoder: %w", pipeline.ErrEncode, err)
	}

	result.ExitCode = code
	s.logger.Debug("Encoder finished with status %d", code)

	if code != 0 {
		result.State = pipeline.EncodeFailed
		s.emit(pipeline.EncodeEvent{Kind: pipeline.EventDone, ExitCode: code})
		return result, &pipeline.ExitError{Code: code}
	}

	result.State = pipeline.EncodeSucceeded
	result.Progress = 1.0
	s.emit(pipeline.EncodeEvent{Kind: pipeline.EventProgress, Fraction: 1.0})
	s.emit(pipeline.EncodeEvent{Kind: pipeline.EventDone, ExitCode: code})

	return result, nil
}

// emit forwards an event to the progress display, the log and the observer.
func (s *Stage) emit(ev pipeline.EncodeEvent) {
	switch ev.Kind {
	case pipeline.EventOutput:
		s.logger.Debug("%s", ev.Line)
	case pipeline.EventDetails:
		s.logger.Debug("Input stream: %s %dx%d", ev.Details.Codec, ev.Details.Width, ev.Details.Height)
	case pipeline.EventProgress:
		s.progress.Set(ev.Fraction)
	}
	if s.handler != nil {
		s.handler(ev)
	}
}

// streamPattern matches ffmpeg's stream description, e.g.
// "Stream #0:0: Video: png, rgba(pc), 500x801, 30 fps".
var streamPattern = regexp.MustCompile(`Stream #\d+:\d+.*?: Video: (\w+).*?, (\d+)x(\d+)`)

// supervisor translates encoder output lines into events.
// stdout and stderr are read on separate goroutines.
type supervisor struct {
	total int
	emit  func(pipeline.EncodeEvent)

	mu       sync.Mutex
	details  *pipeline.StreamDetails
	fraction float64

	emitMu sync.Mutex
}

// send delivers events one at a time so observers need no locking.
func (s *supervisor) send(ev pipeline.EncodeEvent) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.emit(ev)
}

// stdout handles -progress key=value lines.
func (s *supervisor) stdout(line string) {
	s.send(pipeline.EncodeEvent{Kind: pipeline.EventOutput, Line: line})

	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok || key != "frame" || s.total <= 0 {
		return
	}
	frame, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || frame < 0 {
		return
	}

	fraction := float64(frame) / float64(s.total)
	if fraction > 1 {
		fraction = 1
	}

	s.mu.Lock()
	s.fraction = fraction
	s.mu.Unlock()

	s.send(pipeline.EncodeEvent{Kind: pipeline.EventProgress, Fraction: fraction})
}

// stderr handles diagnostics; the first stream description becomes the
// one-time details event.
func (s *supervisor) stderr(line string) {
	s.send(pipeline.EncodeEvent{Kind: pipeline.EventOutput, Line: line})

	m := streamPattern.FindStringSubmatch(line)
	if m == nil {
		return
	}

	s.mu.Lock()
	if s.details != nil {
		s.mu.Unlock()
		return
	}
	w, _ := strconv.Atoi(m[2])
	h, _ := strconv.Atoi(m[3])
	details := &pipeline.StreamDetails{
		Codec:  m[1],
		Width:  w,
		Height: h,
		Raw:    strings.TrimSpace(line),
	}
	s.details = details
	s.mu.Unlock()

	s.send(pipeline.EncodeEvent{Kind: pipeline.EventDetails, Details: details})
}

func (s *supervisor) detailsSeen() *pipeline.StreamDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

func (s *supervisor) lastFraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraction
}
