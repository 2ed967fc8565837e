// Package main provides the CLI entry point for sweepcast.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/sweepcast/pkg/adapters/chromebrowser"
	"github.com/user/sweepcast/pkg/adapters/ffmpeg"
	"github.com/user/sweepcast/pkg/adapters/gglabel"
	"github.com/user/sweepcast/pkg/adapters/imagemeasure"
	"github.com/user/sweepcast/pkg/adapters/logger"
	"github.com/user/sweepcast/pkg/adapters/mp4probe"
	"github.com/user/sweepcast/pkg/adapters/osfilesystem"
	"github.com/user/sweepcast/pkg/adapters/pwbrowser"
	"github.com/user/sweepcast/pkg/adapters/termprogress"
	"github.com/user/sweepcast/pkg/config"
	"github.com/user/sweepcast/pkg/orchestrator"
	"github.com/user/sweepcast/pkg/pipeline"
	"github.com/user/sweepcast/pkg/ports"
	"github.com/user/sweepcast/pkg/stages/assemble"
	"github.com/user/sweepcast/pkg/stages/canvas"
	"github.com/user/sweepcast/pkg/stages/capture"
	"github.com/user/sweepcast/pkg/stages/encode"
	"github.com/user/sweepcast/pkg/stages/plan"
	"github.com/user/sweepcast/pkg/summarizer"
)

var version = "dev"

// Exit statuses by error class.
const (
	exitUsage    = 2
	exitCapture  = 3
	exitAssembly = 4
	exitEncode   = 5
	exitOther    = 1
)

const (
	catCapture = "Capture"
	catOutput  = "Output"
	catBrowser = "Browser"
	catLogging = "Logging"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	// -v is --verbose here.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: l10n.T("Show version information")}

	return &cli.App{
		Name:      "sweepcast",
		Usage:     l10n.T("Record how a web page responds across viewport widths"),
		UsageText: "sweepcast [options] URL",
		Version:   version,
		Flags:     flags(),
		Action:    run,
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		// Capture
		&cli.IntFlag{Name: "min-width", Value: 320, Category: catCapture, Usage: l10n.T("Narrowest viewport width")},
		&cli.IntFlag{Name: "max-width", Value: 1280, Category: catCapture, Usage: l10n.T("Widest viewport width")},
		&cli.StringFlag{Name: "max-height", Value: "full", Category: catCapture, Usage: l10n.T("Capture height in pixels, or full for the whole page")},
		&cli.BoolFlag{Name: "label", Category: catCapture, Usage: l10n.T("Stamp the viewport width onto each frame")},

		// Output
		&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Category: catOutput, Usage: l10n.T("Directory for frames and videos (default: new temporary directory)")},
		&cli.BoolFlag{Name: "mp4", Category: catOutput, Usage: l10n.T("Encode an MP4 video")},
		&cli.BoolFlag{Name: "png", Category: catOutput, Usage: l10n.T("Encode an animated PNG")},
		&cli.BoolFlag{Name: "gif", Category: catOutput, Usage: l10n.T("Encode an animated GIF")},
		&cli.BoolFlag{Name: "webm", Category: catOutput, Usage: l10n.T("Encode a WebM video")},
		&cli.Float64Flag{Name: "fps", Value: assemble.DefaultFPS, Category: catOutput, Usage: l10n.T("Frames per second of the videos")},
		&cli.StringFlag{Name: "ffmpeg-path", EnvVars: []string{"FFMPEG_PATH"}, Category: catOutput, Usage: l10n.T("Path to ffmpeg executable")},
		&cli.BoolFlag{Name: "json", Category: catOutput, Usage: l10n.T("Print the run summary as JSON on stdout")},
		&cli.StringFlag{Name: "summary", Category: catOutput, Usage: l10n.T("Write the run summary to a file (.json or .yaml)")},

		// Browser
		&cli.StringFlag{Name: "browser", Value: ports.KindChromium, Category: catBrowser, Usage: l10n.T("Browser kind (chromium, firefox, webkit)")},
		&cli.StringFlag{Name: "engine", Value: config.EngineAuto, Category: catBrowser, Usage: l10n.T("Automation engine (auto, chromedp, playwright)")},
		&cli.StringFlag{Name: "chrome-path", Category: catBrowser, Usage: l10n.T("Path to Chrome executable")},
		&cli.BoolFlag{Name: "no-headless", Category: catBrowser, Usage: l10n.T("Run browser in non-headless mode")},
		&cli.BoolFlag{Name: "ignore-https-errors", Category: catBrowser, Usage: l10n.T("Ignore HTTPS certificate errors")},
		&cli.StringFlag{Name: "proxy-server", Category: catBrowser, Usage: l10n.T("HTTP proxy server (e.g., http://proxy:8080)")},

		// Logging
		&cli.BoolFlag{Name: "progress", Category: catLogging, Usage: l10n.T("Show progress bars")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Category: catLogging, Usage: l10n.T("Suppress all log output")},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Category: catLogging, Usage: l10n.T("Log every capture and encoder line")},
		&cli.StringFlag{Name: "config", Category: catLogging, Usage: l10n.T("YAML configuration file")},
	}
}

// run executes the capture and encode pipeline.
func run(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	orchConfig, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	var log ports.Logger
	if cfg.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(cfg.LogLevel())
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Adapters
	fs := osfilesystem.New()
	progress := termprogress.NewAuto(cfg.Progress && !cfg.Quiet)
	var browser ports.Browser
	if cfg.UsePlaywright() {
		browser = pwbrowser.New()
	} else {
		browser = chromebrowser.New()
	}

	// Stages
	captureStage := capture.New(browser, fs, imagemeasure.New(), progress, log, cfg.BrowserOptions()).
		WithLabeler(gglabel.New())

	orch := orchestrator.New(
		plan.NewStage(),
		captureStage,
		canvas.NewStage(),
		assemble.NewStage(),
		encode.NewStage(ffmpeg.New(cfg.FFmpegPath), progress, log),
		mp4probe.New(),
		fs,
		log,
	)

	result, runErr := orch.Run(ctx, orchConfig)

	// A summary is still useful for partial runs.
	if result.Plan.WidthDigits > 0 {
		summary := buildSummary(result)
		if cfg.SummaryPath != "" {
			if err := summarizer.NewWriter(summarizer.FormatterFor(cfg.SummaryPath), fs).Write(cfg.SummaryPath, summary); err != nil {
				log.Error("Failed to write summary: %s", err)
			} else {
				log.Info("Summary saved to %s", cfg.SummaryPath)
			}
		}
		if cfg.JSON && runErr == nil {
			if err := summarizer.NewWriter(summarizer.NewJSONFormatter(), fs).Print(os.Stdout, summary); err != nil {
				return err
			}
		}
	}

	return runErr
}

// buildConfig layers the config file and explicitly set flags over Defaults.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: load config: %w", pipeline.ErrUsage, err)
		}
		cfg = loaded
	}

	if c.NArg() > 1 {
		return cfg, fmt.Errorf("%w: expected a single URL, got %d arguments", pipeline.ErrUsage, c.NArg())
	}
	if c.NArg() == 1 {
		cfg.URL = c.Args().First()
	}

	if c.IsSet("min-width") {
		cfg.MinWidth = c.Int("min-width")
	}
	if c.IsSet("max-width") {
		cfg.MaxWidth = c.Int("max-width")
	}
	if c.IsSet("max-height") {
		cfg.MaxHeight = c.String("max-height")
	}
	if c.IsSet("label") {
		cfg.Label = c.Bool("label")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("json") {
		cfg.JSON = c.Bool("json")
	}
	if c.IsSet("summary") {
		cfg.SummaryPath = c.String("summary")
	}
	if c.IsSet("browser") {
		cfg.Browser = c.String("browser")
	}
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.Bool("no-headless") {
		cfg.Headless = false
	}
	if c.Bool("ignore-https-errors") {
		cfg.IgnoreHTTPSErrors = true
	}
	if c.IsSet("proxy-server") {
		cfg.ProxyServer = c.String("proxy-server")
	}
	if c.IsSet("progress") {
		cfg.Progress = c.Bool("progress")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}

	for _, tag := range pipeline.KnownFormats {
		if c.Bool(string(tag)) {
			cfg.Formats = append(cfg.Formats, string(tag))
		}
	}

	return cfg, nil
}

func buildSummary(result orchestrator.RunResult) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithRequest(result.URL, result.BrowserKind, result.MinWidth, result.MaxWidth, result.Height).
		WithCapture(result.OutputDir, result.Plan, result.Capture)
	if result.Encoded() {
		b.WithVideo(result.Outputs, result.Canvas, result.EncoderArgs, result.Encode.Details)
	}
	return b.Build()
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrUsage):
		return exitUsage
	case errors.Is(err, pipeline.ErrCapture):
		return exitCapture
	case errors.Is(err, pipeline.ErrAssembly):
		return exitAssembly
	case errors.Is(err, pipeline.ErrEncode):
		return exitEncode
	default:
		return exitOther
	}
}
