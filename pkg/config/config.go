// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/sweepcast/pkg/orchestrator"
	"github.com/user/sweepcast/pkg/pipeline"
	"github.com/user/sweepcast/pkg/ports"
)

// Browser engines.
const (
	EngineAuto       = "auto"
	EngineChromedp   = "chromedp"
	EnginePlaywright = "playwright"
)

// Config represents the full configuration for sweepcast.
type Config struct {
	// Input/Output
	URL       string `yaml:"url"`
	OutputDir string `yaml:"output_dir"`

	// Capture
	MinWidth       int    `yaml:"min_width"`
	MaxWidth       int    `yaml:"max_width"`
	MaxHeight      string `yaml:"max_height"` // integer or "full"
	ProbeHeight    int    `yaml:"probe_height"`
	ViewportHeight int    `yaml:"viewport_height"`
	Label          bool   `yaml:"label"`

	// Browser
	Browser           string `yaml:"browser"`
	Engine            string `yaml:"engine"`
	Headless          bool   `yaml:"headless"`
	ChromePath        string `yaml:"chrome_path"`
	UserAgent         string `yaml:"user_agent"`
	IgnoreHTTPSErrors bool   `yaml:"ignore_https_errors"`
	ProxyServer       string `yaml:"proxy_server"`
	TimeoutMs         int    `yaml:"timeout_ms"`

	// Encoding
	Formats    []string `yaml:"formats"`
	FPS        float64  `yaml:"fps"`
	FFmpegPath string   `yaml:"ffmpeg_path"`

	// Reporting
	Progress    bool   `yaml:"progress"`
	JSON        bool   `yaml:"json"`
	SummaryPath string `yaml:"summary"`
	Quiet       bool   `yaml:"quiet"`
	Verbose     bool   `yaml:"verbose"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		MinWidth:       320,
		MaxWidth:       1280,
		MaxHeight:      "full",
		ProbeHeight:    pipeline.DefaultProbeHeight,
		ViewportHeight: 720,

		Browser:   ports.KindChromium,
		Engine:    EngineAuto,
		Headless:  true,
		TimeoutMs: 30000,

		FPS: 30.0,
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", pipeline.ErrUsage, path, err)
	}

	return cfg, nil
}

// Validate reports usage errors in the configuration.
func (c Config) Validate() error {
	if c.Quiet && c.Verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", pipeline.ErrUsage)
	}
	if c.URL == "" {
		return fmt.Errorf("%w: URL is required", pipeline.ErrUsage)
	}
	if c.MinWidth <= 0 || c.MaxWidth <= 0 {
		return fmt.Errorf("%w: widths must be positive", pipeline.ErrUsage)
	}
	if c.MinWidth > c.MaxWidth {
		return fmt.Errorf("%w: min width %d exceeds max width %d", pipeline.ErrUsage, c.MinWidth, c.MaxWidth)
	}
	if !ports.IsBrowserKind(c.Browser) {
		return fmt.Errorf("%w: unknown browser %q", pipeline.ErrUsage, c.Browser)
	}
	switch c.Engine {
	case EngineAuto, EnginePlaywright:
	case EngineChromedp:
		if c.Browser != ports.KindChromium {
			return fmt.Errorf("%w: chromedp engine only drives chromium", pipeline.ErrUsage)
		}
	default:
		return fmt.Errorf("%w: unknown engine %q", pipeline.ErrUsage, c.Engine)
	}
	if _, err := pipeline.ParseHeightPolicy(c.MaxHeight); err != nil {
		return err
	}
	if _, err := c.FormatTags(); err != nil {
		return err
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: fps must not be negative", pipeline.ErrUsage)
	}
	return nil
}

// FormatTags converts the requested formats, rejecting unknown ones.
// Duplicates are dropped.
func (c Config) FormatTags() ([]pipeline.FormatTag, error) {
	var tags []pipeline.FormatTag
	seen := make(map[pipeline.FormatTag]bool)
	for _, f := range c.Formats {
		tag := pipeline.FormatTag(f)
		if !tag.Known() {
			return nil, fmt.Errorf("%w: unsupported output format %q", pipeline.ErrUsage, f)
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// UsePlaywright reports whether the playwright engine drives the browser.
func (c Config) UsePlaywright() bool {
	return c.Engine == EnginePlaywright || c.Browser != ports.KindChromium
}

// LogLevel derives the log level from the verbosity flags.
func (c Config) LogLevel() ports.LogLevel {
	return ports.LevelFromFlags(c.Quiet, c.Verbose)
}

// BrowserOptions converts Config to launch options.
func (c Config) BrowserOptions() ports.BrowserOptions {
	return ports.BrowserOptions{
		Kind:              c.Browser,
		Headless:          c.Headless,
		ChromePath:        c.ChromePath,
		UserAgent:         c.UserAgent,
		IgnoreHTTPSErrors: c.IgnoreHTTPSErrors,
		ProxyServer:       c.ProxyServer,
		TimeoutMs:         c.TimeoutMs,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
// Call Validate first.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	height, err := pipeline.ParseHeightPolicy(c.MaxHeight)
	if err != nil {
		return orchestrator.Config{}, err
	}
	formats, err := c.FormatTags()
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		URL:       c.URL,
		OutputDir: c.OutputDir,

		BrowserKind:    c.Browser,
		MinWidth:       c.MinWidth,
		MaxWidth:       c.MaxWidth,
		Height:         height,
		ProbeHeight:    c.ProbeHeight,
		ViewportHeight: c.ViewportHeight,
		Label:          c.Label,

		Formats: formats,
		FPS:     c.FPS,
	}, nil
}
