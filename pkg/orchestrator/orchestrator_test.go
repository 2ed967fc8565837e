package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/sweepcast/pkg/adapters/logger"
	"github.com/user/sweepcast/pkg/mocks"
	"github.com/user/sweepcast/pkg/pipeline"
	"github.com/user/sweepcast/pkg/ports"
	"github.com/user/sweepcast/pkg/stages/assemble"
	"github.com/user/sweepcast/pkg/stages/canvas"
	"github.com/user/sweepcast/pkg/stages/capture"
	"github.com/user/sweepcast/pkg/stages/encode"
	"github.com/user/sweepcast/pkg/stages/plan"
)

// mockStage is a mock for any pipeline stage.
type mockStage[In, Out any] struct {
	result Out
	err    error
	inputs []In
}

func (m *mockStage[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		var zero Out
		return zero, m.err
	}
	return m.result, nil
}

type harness struct {
	page    *mocks.Page
	browser *mocks.Browser
	runner  *mocks.ProcessRunner
	probe   *mocks.OutputProbe
	fs      *mocks.FileSystem
	log     *recordingLogger
	orch    *Orchestrator
}

func newHarness(page *mocks.Page) *harness {
	h := &harness{
		page:    page,
		browser: page.Browser(),
		runner:  &mocks.ProcessRunner{},
		probe:   &mocks.OutputProbe{},
		fs:      mocks.NewFileSystem(),
		log:     &recordingLogger{},
	}
	progress := &mocks.Progress{}
	h.orch = New(
		plan.NewStage(),
		capture.New(h.browser, h.fs, page.Measurer(), progress, h.log, ports.BrowserOptions{Headless: true}),
		canvas.NewStage(),
		assemble.NewStage(),
		encode.NewStage(h.runner, progress, h.log),
		h.probe,
		h.fs,
		h.log,
	)
	return h
}

func TestOrchestrator_Run_MP4AndWebM(t *testing.T) {
	// widest 500, tallest 801
	page := &mocks.Page{HeightAt: func(w int) int {
		if w == 500 {
			return 801
		}
		return 640
	}}
	h := newHarness(page)
	h.probe.ProbeFunc = func(path string) (ports.VideoInfo, error) {
		return ports.VideoInfo{Frames: 2, Width: 500, Height: 802}, nil
	}

	cfg := DefaultConfig()
	cfg.URL = "https://example.com"
	cfg.OutputDir = "/out"
	cfg.MinWidth, cfg.MaxWidth = 499, 500
	cfg.Formats = []pipeline.FormatTag{pipeline.FormatWebM, pipeline.FormatMP4}

	result, err := h.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Canvas != (pipeline.Dimension{Width: 500, Height: 802}) {
		t.Errorf("expected canvas 500x802, got %+v", result.Canvas)
	}
	if !result.Encoded() {
		t.Error("expected encoded result")
	}
	if len(h.runner.Calls) != 1 {
		t.Fatalf("expected a single encoder invocation, got %d", len(h.runner.Calls))
	}

	argv := strings.Join(h.runner.Calls[0], " ")
	for _, want := range []string{"split=2", "w=500:h=802", "/out/chromium-499-500.mp4", "/out/chromium-499-500.webm", "-start_number 499", "/out/chromium-%03d.png"} {
		if !strings.Contains(argv, want) {
			t.Errorf("expected %q in encoder args: %s", want, argv)
		}
	}
	if strings.Join(result.EncoderArgs, " ") != argv {
		t.Error("result must carry the exact encoder arguments")
	}

	if len(h.probe.Paths) != 1 || h.probe.Paths[0] != "/out/chromium-499-500.mp4" {
		t.Errorf("expected mp4 to be verified, got %v", h.probe.Paths)
	}
	if len(h.log.warns) != 0 {
		t.Errorf("unexpected warnings: %v", h.log.warns)
	}
}

func TestOrchestrator_Run_CaptureOnly(t *testing.T) {
	h := newHarness(&mocks.Page{ContentHeight: 900})

	cfg := DefaultConfig()
	cfg.URL = "https://example.com"
	cfg.MinWidth, cfg.MaxWidth = 320, 321

	result, err := h.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(h.runner.Calls) != 0 {
		t.Error("encoder must not run without formats")
	}
	if result.Encoded() {
		t.Error("expected no encoded outputs")
	}
	if !strings.HasPrefix(result.OutputDir, "/tmp/sweepcast-") {
		t.Errorf("expected temporary output dir, got %s", result.OutputDir)
	}
	if len(result.Capture.Results) != 2 {
		t.Errorf("expected 2 frames, got %d", len(result.Capture.Results))
	}
}

func TestOrchestrator_Run_VerifyMismatchWarns(t *testing.T) {
	h := newHarness(&mocks.Page{ContentHeight: 600})
	h.probe.ProbeFunc = func(path string) (ports.VideoInfo, error) {
		return ports.VideoInfo{Frames: 1, Width: 320, Height: 600}, nil
	}

	cfg := DefaultConfig()
	cfg.URL = "https://example.com"
	cfg.OutputDir = "/out"
	cfg.MinWidth, cfg.MaxWidth = 320, 321
	cfg.Formats = []pipeline.FormatTag{pipeline.FormatMP4}

	if _, err := h.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("verification mismatch must not fail the run: %v", err)
	}
	if len(h.log.warns) != 2 {
		t.Errorf("expected frame and size warnings, got %v", h.log.warns)
	}
}

func TestOrchestrator_Run_EncoderFailure(t *testing.T) {
	h := newHarness(&mocks.Page{ContentHeight: 600})
	h.runner.ExitCode = 1

	cfg := DefaultConfig()
	cfg.URL = "https://example.com"
	cfg.OutputDir = "/out"
	cfg.MinWidth, cfg.MaxWidth = 320, 320
	cfg.Formats = []pipeline.FormatTag{pipeline.FormatGIF}

	result, err := h.orch.Run(context.Background(), cfg)
	var exitErr *pipeline.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected exit error 1, got %v", err)
	}
	if result.Encode.State != pipeline.EncodeFailed {
		t.Errorf("expected failed encode state, got %s", result.Encode.State)
	}
	if len(h.probe.Paths) != 0 {
		t.Error("failed encodes must not be verified")
	}
}

func TestOrchestrator_Run_UnknownFormat(t *testing.T) {
	h := newHarness(&mocks.Page{ContentHeight: 600})

	cfg := DefaultConfig()
	cfg.URL = "https://example.com"
	cfg.OutputDir = "/out"
	cfg.Formats = []pipeline.FormatTag{"avi"}

	_, err := h.orch.Run(context.Background(), cfg)
	if !errors.Is(err, pipeline.ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if len(h.browser.Clips) != 0 {
		t.Error("nothing should be captured for an invalid request")
	}
}

func TestOrchestrator_Run_StageErrors(t *testing.T) {
	planErr := errors.New("plan boom")
	captureErr := errors.New("capture boom")

	okPlan := &mockStage[pipeline.PlanInput, pipeline.CapturePlan]{
		result: pipeline.CapturePlan{Widths: []int{320}, InitialBound: 800, WidthDigits: 3},
	}
	okCapture := &mockStage[pipeline.CaptureInput, pipeline.CaptureOutput]{
		result: pipeline.CaptureOutput{
			Results: []pipeline.CaptureResult{{Width: 320, MeasuredWidth: 320, MeasuredHeight: 700}},
			Stats:   pipeline.SequenceStats{TallestHeight: 700, WidestWidth: 320},
		},
	}

	tests := []struct {
		name    string
		plan    *mockStage[pipeline.PlanInput, pipeline.CapturePlan]
		capture *mockStage[pipeline.CaptureInput, pipeline.CaptureOutput]
		want    error
	}{
		{"plan", &mockStage[pipeline.PlanInput, pipeline.CapturePlan]{err: planErr}, okCapture, planErr},
		{"capture", okPlan, &mockStage[pipeline.CaptureInput, pipeline.CaptureOutput]{err: captureErr}, captureErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encodeStage := &mockStage[pipeline.EncodeInput, pipeline.EncodeResult]{}
			o := New(
				tt.plan,
				tt.capture,
				canvas.NewStage(),
				assemble.NewStage(),
				encodeStage,
				nil,
				mocks.NewFileSystem(),
				logger.NewNoop(),
			)

			cfg := DefaultConfig()
			cfg.OutputDir = "/out"
			cfg.Formats = []pipeline.FormatTag{pipeline.FormatMP4}

			_, err := o.Run(context.Background(), cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(encodeStage.inputs) != 0 {
				t.Error("encoder must not run after an earlier failure")
			}
		})
	}
}

// recordingLogger keeps warnings for assertions and drops everything else.
type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) {}
func (l *recordingLogger) Info(msg string, args ...interface{})  {}
func (l *recordingLogger) Warn(msg string, args ...interface{})  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, args ...interface{}) {}
func (l *recordingLogger) WithComponent(string) ports.Logger {
	return l
}
