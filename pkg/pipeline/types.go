package pipeline

import (
	"fmt"
	"sort"
	"strconv"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// =============================================================================
// Plan Stage Types
// =============================================================================

// DefaultProbeHeight is the initial capture bound used when the height is unbounded.
const DefaultProbeHeight = 10000

// HeightStep is added to the measured height when a capture was truncated.
const HeightStep = 1000

// HeightPolicy decides the height bound requested for each capture.
// A zero Fixed value means the height is unbounded.
type HeightPolicy struct {
	Fixed int
}

// Unbounded returns a policy that lets the capture loop grow the bound.
func Unbounded() HeightPolicy {
	return HeightPolicy{}
}

// FixedHeight returns a policy that always captures at the given height.
func FixedHeight(h int) HeightPolicy {
	return HeightPolicy{Fixed: h}
}

// IsUnbounded reports whether the bound may grow.
func (p HeightPolicy) IsUnbounded() bool {
	return p.Fixed == 0
}

// String returns "full" for the unbounded policy and the height otherwise.
func (p HeightPolicy) String() string {
	if p.IsUnbounded() {
		return "full"
	}
	return strconv.Itoa(p.Fixed)
}

// ParseHeightPolicy parses an integer height or the literal "full".
func ParseHeightPolicy(s string) (HeightPolicy, error) {
	if s == "" || s == "full" {
		return Unbounded(), nil
	}
	h, err := strconv.Atoi(s)
	if err != nil || h <= 0 {
		return HeightPolicy{}, fmt.Errorf("%w: max height must be a positive integer or \"full\", got %q", ErrUsage, s)
	}
	return FixedHeight(h), nil
}

// PlanInput contains the width range and height policy.
type PlanInput struct {
	MinWidth    int
	MaxWidth    int
	Height      HeightPolicy
	ProbeHeight int // Initial bound for unbounded captures (default: 10000)
}

// CapturePlan is the ordered set of capture requests for a run.
type CapturePlan struct {
	Widths       []int
	InitialBound int
	CanGrow      bool
	WidthDigits  int
}

// Requests returns one CaptureRequest per planned width.
func (p CapturePlan) Requests() []CaptureRequest {
	reqs := make([]CaptureRequest, len(p.Widths))
	for i, w := range p.Widths {
		reqs[i] = CaptureRequest{Width: w, HeightBound: p.InitialBound}
	}
	return reqs
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureRequest is a single width to capture at a height bound.
type CaptureRequest struct {
	Width       int
	HeightBound int
}

// CaptureResult is an accepted capture for one width.
type CaptureResult struct {
	Width          int
	MeasuredWidth  int
	MeasuredHeight int
	FilePath       string
	Attempts       int
}

// SequenceStats tracks the largest measured dimensions of a capture sequence.
type SequenceStats struct {
	TallestHeight int
	WidestWidth   int
}

// Observe folds a measured frame into the running maxima.
func (s *SequenceStats) Observe(width, height int) {
	if height > s.TallestHeight {
		s.TallestHeight = height
	}
	if width > s.WidestWidth {
		s.WidestWidth = width
	}
}

// CaptureInput contains parameters for the capture loop.
type CaptureInput struct {
	URL            string
	Plan           CapturePlan
	OutputDir      string
	BrowserKind    string
	ViewportHeight int
	Label          bool
}

// CaptureOutput contains the captured sequence.
type CaptureOutput struct {
	Results     []CaptureResult
	Stats       SequenceStats
	Pattern     string // printf-style numeric pattern addressing every frame
	StartNumber int
	CeilingHits int
}

// =============================================================================
// Encoder Types
// =============================================================================

// FormatTag identifies an output container/codec combination.
type FormatTag string

const (
	FormatGIF  FormatTag = "gif"
	FormatMP4  FormatTag = "mp4"
	FormatPNG  FormatTag = "png"
	FormatWebM FormatTag = "webm"
)

// KnownFormats lists every supported tag in sorted order.
var KnownFormats = []FormatTag{FormatGIF, FormatMP4, FormatPNG, FormatWebM}

// Known reports whether the tag is supported.
func (f FormatTag) Known() bool {
	for _, k := range KnownFormats {
		if f == k {
			return true
		}
	}
	return false
}

// Extension returns the file extension for the format.
func (f FormatTag) Extension() string {
	return "." + string(f)
}

// OutputSpec maps format tags to destination paths.
type OutputSpec map[FormatTag]string

// Tags returns the format tags sorted lexically, which fixes branch order.
func (o OutputSpec) Tags() []FormatTag {
	tags := make([]FormatTag, 0, len(o))
	for t := range o {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// EncoderJob describes a single encoder invocation.
type EncoderJob struct {
	InputPattern string
	StartNumber  int
	FrameCount   int
	FPS          float64
	CanvasWidth  int
	CanvasHeight int
	Outputs      OutputSpec
}

// EncodeInput contains the job and the prepared argument list.
type EncodeInput struct {
	Job  EncoderJob
	Args []string
}

// EncodeState is the lifecycle state of an encoder process.
type EncodeState int

const (
	EncodeNotStarted EncodeState = iota
	EncodeRunning
	EncodeSucceeded
	EncodeFailed
)

// String returns the string representation of the state.
func (s EncodeState) String() string {
	switch s {
	case EncodeNotStarted:
		return "not-started"
	case EncodeRunning:
		return "running"
	case EncodeSucceeded:
		return "succeeded"
	case EncodeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EncodeResult is the terminal status of an encode.
type EncodeResult struct {
	State    EncodeState
	ExitCode int
	Progress float64
	Details  *StreamDetails
}

// =============================================================================
// Encode Events
// =============================================================================

// EventKind classifies an encoder event.
type EventKind int

const (
	EventOutput EventKind = iota
	EventDetails
	EventProgress
	EventDone
)

// StreamDetails describes the input stream as reported by the encoder.
type StreamDetails struct {
	Codec  string
	Width  int
	Height int
	Raw    string
}

// EncodeEvent is pushed to observers while the encoder runs.
type EncodeEvent struct {
	Kind     EventKind
	Line     string         // EventOutput
	Details  *StreamDetails // EventDetails
	Fraction float64        // EventProgress
	ExitCode int            // EventDone
}

// EventHandler receives encoder events.
type EventHandler func(EncodeEvent)
