// Package capture implements the adaptive full-page capture loop.
package capture

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/sweepcast/pkg/pipeline"
	"github.com/user/sweepcast/pkg/ports"
)

// defaultViewportHeight is used when the input leaves the viewport height unset.
const defaultViewportHeight = 720

// Stage captures one full-page image per planned width.
// The stage owns the browser session for the whole run; widths are captured
// strictly one after another on the same page.
type Stage struct {
	browser     ports.Browser
	fs          ports.FileSystem
	measurer    ports.ImageMeasurer
	labeler     ports.FrameLabeler
	progress    ports.Progress
	logger      ports.Logger
	browserOpts ports.BrowserOptions
}

// New creates a new capture stage.
func New(browser ports.Browser, fs ports.FileSystem, measurer ports.ImageMeasurer, progress ports.Progress, logger ports.Logger, opts ports.BrowserOptions) *Stage {
	return &Stage{
		browser:     browser,
		fs:          fs,
		measurer:    measurer,
		progress:    progress,
		logger:      logger.WithComponent("capture"),
		browserOpts: opts,
	}
}

// WithLabeler sets the labeler used for inputs that ask for width labels.
// The width is stamped onto each frame before it is measured.
func (s *Stage) WithLabeler(labeler ports.FrameLabeler) *Stage {
	s.labeler = labeler
	return s
}

// FrameName returns the file name for a width, zero-padded to digits.
func FrameName(kind string, width, digits int) string {
	return fmt.Sprintf("%s-%0*d.png", kind, digits, width)
}

// FramePattern returns the printf-style pattern that addresses every frame.
func FramePattern(dir, kind string, digits int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%%0%dd.png", kind, digits))
}

// Execute runs the capture loop.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureOutput, error) {
	plan := input.Plan
	output := pipeline.CaptureOutput{
		Results: make([]pipeline.CaptureResult, 0, len(plan.Widths)),
	}

	if len(plan.Widths) == 0 {
		return output, fmt.Errorf("%w: empty capture plan", pipeline.ErrUsage)
	}
	if plan.InitialBound <= 0 {
		return output, fmt.Errorf("%w: height bound must be positive, got %d", pipeline.ErrUsage, plan.InitialBound)
	}
	if input.Label && s.labeler == nil {
		return output, fmt.Errorf("%w: width labels requested without a labeler", pipeline.ErrUsage)
	}

	if err := s.fs.MkdirAll(input.OutputDir); err != nil {
		return output, fmt.Errorf("%w: create output directory: %v", pipeline.ErrCapture, err)
	}

	opts := s.browserOpts
	opts.Kind = input.BrowserKind

	s.logger.Debug("Launching %s browser", input.BrowserKind)
	if err := s.browser.Launch(ctx, opts); err != nil {
		return output, fmt.Errorf("%w: launch browser: %v", pipeline.ErrCapture, err)
	}
	defer func() {
		s.browser.Close()
		s.logger.Debug("Browser closed")
	}()

	s.logger.Debug("Navigating to %s", input.URL)
	if err := s.browser.Navigate(input.URL); err != nil {
		return output, fmt.Errorf("%w: navigate: %v", pipeline.ErrCapture, err)
	}

	viewportHeight := input.ViewportHeight
	if viewportHeight <= 0 {
		viewportHeight = defaultViewportHeight
	}

	s.progress.Begin("Capturing", len(plan.Widths))
	defer s.progress.Done()

	for _, width := range plan.Widths {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		path := filepath.Join(input.OutputDir, FrameName(input.BrowserKind, width, plan.WidthDigits))
		result, err := s.captureWidth(ctx, width, viewportHeight, path, plan, input.Label)
		if err != nil {
			return output, err
		}

		if result.Attempts > 1 {
			output.CeilingHits++
			if output.CeilingHits == 2 {
				s.logger.Warn("Pages taller than the initial height bound of %d px; consider raising the probe height", plan.InitialBound)
			}
		}

		output.Stats.Observe(result.MeasuredWidth, result.MeasuredHeight)
		output.Results = append(output.Results, result)
		s.progress.Step()
	}

	output.Pattern = FramePattern(input.OutputDir, input.BrowserKind, plan.WidthDigits)
	output.StartNumber = plan.Widths[0]

	s.logger.Debug("Captured %d frames, tallest %d px, widest %d px",
		len(output.Results), output.Stats.TallestHeight, output.Stats.WidestWidth)

	return output, nil
}

// captureWidth captures a single width, growing the bound while the page is
// truncated. A measured height equal to the bound counts as truncated.
func (s *Stage) captureWidth(ctx context.Context, width, viewportHeight int, path string, plan pipeline.CapturePlan, label bool) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{Width: width, FilePath: path}

	if err := s.browser.SetViewport(width, viewportHeight); err != nil {
		return result, fmt.Errorf("%w: set viewport %d: %v", pipeline.ErrCapture, width, err)
	}

	bound := plan.InitialBound
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Attempts++

		data, err := s.browser.CaptureClip(ports.Clip{X: 0, Y: 0, Width: width, Height: bound})
		if err != nil {
			return result, fmt.Errorf("%w: capture width %d: %v", pipeline.ErrCapture, width, err)
		}
		if err := s.fs.WriteFile(path, data); err != nil {
			return result, fmt.Errorf("%w: write %s: %v", pipeline.ErrCapture, path, err)
		}
		if label && s.labeler != nil {
			if err := s.labeler.Label(path, fmt.Sprintf("%dpx", width)); err != nil {
				return result, fmt.Errorf("%w: label %s: %v", pipeline.ErrCapture, path, err)
			}
		}

		mw, mh, err := s.measurer.Measure(path)
		if err != nil {
			return result, fmt.Errorf("%w: measure %s: %v", pipeline.ErrCapture, path, err)
		}
		result.MeasuredWidth = mw
		result.MeasuredHeight = mh

		if !plan.CanGrow || mh < bound {
			s.logger.Debug("Captured width %d: %dx%d (bound %d)", width, mw, mh, bound)
			return result, nil
		}

		next := mh + pipeline.HeightStep
		s.logger.Debug("Width %d truncated at %d px, retrying with bound %d", width, bound, next)
		bound = next
	}
}
