// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/sweepcast/pkg/pipeline"
	"github.com/user/sweepcast/pkg/ports"
	"github.com/user/sweepcast/pkg/stages/assemble"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	URL       string
	OutputDir string // empty means a fresh temporary directory

	// Capture
	BrowserKind    string
	MinWidth       int
	MaxWidth       int
	Height         pipeline.HeightPolicy
	ProbeHeight    int
	ViewportHeight int
	Label          bool

	// Encoding
	Formats []pipeline.FormatTag
	FPS     float64
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BrowserKind:    ports.KindChromium,
		MinWidth:       320,
		MaxWidth:       1280,
		Height:         pipeline.Unbounded(),
		ProbeHeight:    pipeline.DefaultProbeHeight,
		ViewportHeight: 720,
		FPS:            assemble.DefaultFPS,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	planStage     pipeline.Stage[pipeline.PlanInput, pipeline.CapturePlan]
	captureStage  pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureOutput]
	canvasStage   pipeline.Stage[pipeline.SequenceStats, pipeline.Dimension]
	assembleStage pipeline.Stage[pipeline.EncoderJob, pipeline.EncodeInput]
	encodeStage   pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	probe         ports.OutputProbe
	fs            ports.FileSystem
	logger        ports.Logger
}

// New creates a new Orchestrator. probe may be nil to skip verification.
func New(
	planStage pipeline.Stage[pipeline.PlanInput, pipeline.CapturePlan],
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureOutput],
	canvasStage pipeline.Stage[pipeline.SequenceStats, pipeline.Dimension],
	assembleStage pipeline.Stage[pipeline.EncoderJob, pipeline.EncodeInput],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	probe ports.OutputProbe,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		planStage:     planStage,
		captureStage:  captureStage,
		canvasStage:   canvasStage,
		assembleStage: assembleStage,
		encodeStage:   encodeStage,
		probe:         probe,
		fs:            fs,
		logger:        logger,
	}
}

// Run executes the complete pipeline.
// The returned RunResult is populated up to the failing phase on error.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{
		URL:         config.URL,
		BrowserKind: config.BrowserKind,
		MinWidth:    config.MinWidth,
		MaxWidth:    config.MaxWidth,
		Height:      config.Height,
	}

	// 1. Plan
	plan, err := o.planStage.Execute(ctx, pipeline.PlanInput{
		MinWidth:    config.MinWidth,
		MaxWidth:    config.MaxWidth,
		Height:      config.Height,
		ProbeHeight: config.ProbeHeight,
	})
	if err != nil {
		return result, fmt.Errorf("plan stage: %w", err)
	}
	result.Plan = plan

	// Outputs are resolved before capturing so bad formats fail fast.
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir, err = o.fs.MkdirTemp("sweepcast-")
		if err != nil {
			return result, fmt.Errorf("%w: create output directory: %w", pipeline.ErrCapture, err)
		}
	}
	result.OutputDir = outputDir

	outputs, err := assemble.Outputs(outputDir, config.BrowserKind, config.MinWidth, config.MaxWidth, config.Formats)
	if err != nil {
		return result, err
	}

	o.logger.Info("Capturing %s at widths %d-%d with %s", config.URL, config.MinWidth, config.MaxWidth, config.BrowserKind)
	o.logger.Info("Output directory: %s", outputDir)

	// 2. Capture
	capture, err := o.captureStage.Execute(ctx, pipeline.CaptureInput{
		URL:            config.URL,
		Plan:           plan,
		OutputDir:      outputDir,
		BrowserKind:    config.BrowserKind,
		ViewportHeight: config.ViewportHeight,
		Label:          config.Label,
	})
	if err != nil {
		o.logger.Error("Capture failed: %s", err)
		return result, fmt.Errorf("capture stage: %w", err)
	}
	result.Capture = capture

	// 3. Canvas
	canvas, err := o.canvasStage.Execute(ctx, capture.Stats)
	if err != nil {
		return result, fmt.Errorf("canvas stage: %w", err)
	}
	result.Canvas = canvas
	o.logger.Info("Captured %d frames, canvas %dx%d", len(capture.Results), canvas.Width, canvas.Height)

	if len(outputs) == 0 {
		o.logger.Info("No video formats requested, skipping encode")
		return result, nil
	}

	// 4. Assemble
	job := pipeline.EncoderJob{
		InputPattern: capture.Pattern,
		StartNumber:  capture.StartNumber,
		FrameCount:   len(capture.Results),
		FPS:          config.FPS,
		CanvasWidth:  canvas.Width,
		CanvasHeight: canvas.Height,
		Outputs:      outputs,
	}
	encodeInput, err := o.assembleStage.Execute(ctx, job)
	if err != nil {
		o.logger.Error("Assembly failed: %s", err)
		return result, fmt.Errorf("assemble stage: %w", err)
	}
	result.Outputs = outputs
	result.EncoderArgs = encodeInput.Args

	// 5. Encode
	o.logger.Info("Encoding %d outputs: %s", len(outputs), joinTags(outputs.Tags()))
	encoded, err := o.encodeStage.Execute(ctx, encodeInput)
	result.Encode = encoded
	if err != nil {
		o.logger.Error("Encode failed: %s", err)
		return result, fmt.Errorf("encode stage: %w", err)
	}
	for _, tag := range outputs.Tags() {
		o.logger.Info("Wrote %s", outputs[tag])
	}

	// 6. Verify
	if path, ok := outputs[pipeline.FormatMP4]; ok && o.probe != nil {
		o.verify(path, job)
	}

	o.logger.Info("Run completed successfully")
	return result, nil
}

// verify checks the encoded mp4 against the job. Mismatches only warn.
func (o *Orchestrator) verify(path string, job pipeline.EncoderJob) {
	name := filepath.Base(path)
	info, err := o.probe.Probe(path)
	if err != nil {
		o.logger.Warn("Could not verify %s: %s", name, err)
		return
	}
	if info.Frames != job.FrameCount {
		o.logger.Warn("%s has %d frames, expected %d", name, info.Frames, job.FrameCount)
	}
	if info.Width != job.CanvasWidth || info.Height != job.CanvasHeight {
		o.logger.Warn("%s is %dx%d, expected %dx%d", name, info.Width, info.Height, job.CanvasWidth, job.CanvasHeight)
	}
}

func joinTags(tags []pipeline.FormatTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	URL         string
	BrowserKind string
	OutputDir   string
	MinWidth    int
	MaxWidth    int
	Height      pipeline.HeightPolicy

	Plan    pipeline.CapturePlan
	Capture pipeline.CaptureOutput
	Canvas  pipeline.Dimension

	// Set only when video was produced
	Outputs     pipeline.OutputSpec
	EncoderArgs []string
	Encode      pipeline.EncodeResult
}

// Encoded reports whether any video output was written.
func (r RunResult) Encoded() bool {
	return len(r.Outputs) > 0 && r.Encode.State == pipeline.EncodeSucceeded
}
