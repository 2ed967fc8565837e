package summarizer

import (
	"time"

	"github.com/google/uuid"

	"github.com/user/sweepcast/pkg/pipeline"
)

// Summary is the record of a completed run.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	RunID       string    `json:"run_id" yaml:"run_id"`

	URL         string `json:"url" yaml:"url"`
	BrowserKind string `json:"browser" yaml:"browser"`
	OutputDir   string `json:"output_dir" yaml:"output_dir"`
	MinWidth    int    `json:"min_width" yaml:"min_width"`
	MaxWidth    int    `json:"max_width" yaml:"max_width"`
	MaxHeight   string `json:"max_height" yaml:"max_height"` // integer or "full"
	WidthDigits int    `json:"width_digits" yaml:"width_digits"`

	Frames FrameInfo  `json:"frames" yaml:"frames"`
	Video  *VideoInfo `json:"video,omitempty" yaml:"video,omitempty"`
}

// FrameInfo describes the captured frame sequence.
type FrameInfo struct {
	Count         int    `json:"count" yaml:"count"`
	Pattern       string `json:"pattern" yaml:"pattern"`
	TallestHeight int    `json:"tallest_height" yaml:"tallest_height"`
	WidestWidth   int    `json:"widest_width" yaml:"widest_width"`
	CeilingHits   int    `json:"ceiling_hits" yaml:"ceiling_hits"`
}

// VideoInfo describes the encoded outputs.
type VideoInfo struct {
	Outputs      map[string]string `json:"outputs" yaml:"outputs"`
	CanvasWidth  int               `json:"canvas_width" yaml:"canvas_width"`
	CanvasHeight int               `json:"canvas_height" yaml:"canvas_height"`
	EncoderArgs  []string          `json:"encoder_args" yaml:"encoder_args"`
	Codec        string            `json:"input_codec,omitempty" yaml:"input_codec,omitempty"`
}

// NewSummary creates a Summary stamped with the current time and a fresh run ID.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
		RunID:       uuid.NewString(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRequest sets what was asked for.
func (b *Builder) WithRequest(url, browserKind string, minWidth, maxWidth int, height pipeline.HeightPolicy) *Builder {
	b.summary.URL = url
	b.summary.BrowserKind = browserKind
	b.summary.MinWidth = minWidth
	b.summary.MaxWidth = maxWidth
	b.summary.MaxHeight = height.String()
	return b
}

// WithCapture sets the output directory and frame statistics.
func (b *Builder) WithCapture(outputDir string, plan pipeline.CapturePlan, capture pipeline.CaptureOutput) *Builder {
	b.summary.OutputDir = outputDir
	b.summary.WidthDigits = plan.WidthDigits
	b.summary.Frames = FrameInfo{
		Count:         len(capture.Results),
		Pattern:       capture.Pattern,
		TallestHeight: capture.Stats.TallestHeight,
		WidestWidth:   capture.Stats.WidestWidth,
		CeilingHits:   capture.CeilingHits,
	}
	return b
}

// WithVideo records the encoded outputs. Empty outputs leave Video unset.
func (b *Builder) WithVideo(outputs pipeline.OutputSpec, canvas pipeline.Dimension, args []string, details *pipeline.StreamDetails) *Builder {
	if len(outputs) == 0 {
		return b
	}
	v := &VideoInfo{
		Outputs:      make(map[string]string, len(outputs)),
		CanvasWidth:  canvas.Width,
		CanvasHeight: canvas.Height,
		EncoderArgs:  append([]string(nil), args...),
	}
	for tag, path := range outputs {
		v.Outputs[string(tag)] = path
	}
	if details != nil {
		v.Codec = details.Codec
	}
	b.summary.Video = v
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
