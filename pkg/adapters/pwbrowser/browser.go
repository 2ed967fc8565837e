// Package pwbrowser provides a browser implementation using playwright-go.
// It drives Chromium, Firefox and WebKit through the Playwright driver.
package pwbrowser

import (
	"context"
	"fmt"
	"math"

	"github.com/playwright-community/playwright-go"

	"github.com/user/sweepcast/pkg/ports"
)

// contentSizeScript reports the scrollable document size in CSS pixels.
const contentSizeScript = `() => {
	const d = document.documentElement, b = document.body || d;
	return [
		Math.max(d.scrollWidth, b.scrollWidth, d.clientWidth),
		Math.max(d.scrollHeight, b.scrollHeight, d.clientHeight)
	];
}`

// Browser implements ports.Browser using Playwright.
type Browser struct {
	// AutoInstall downloads the driver and browser when they are missing.
	AutoInstall bool

	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	timeout float64
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{AutoInstall: true}
}

// Launch starts the Playwright driver and the requested browser kind.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	kind := opts.Kind
	if kind == "" {
		kind = ports.KindChromium
	}
	if !ports.IsBrowserKind(kind) {
		return fmt.Errorf("unsupported browser kind %q", kind)
	}

	pw, err := playwright.Run()
	if err != nil && b.AutoInstall {
		if ierr := playwright.Install(&playwright.RunOptions{Browsers: []string{kind}}); ierr != nil {
			return fmt.Errorf("install playwright %s: %w", kind, ierr)
		}
		pw, err = playwright.Run()
	}
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	b.pw = pw

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ProxyServer != "" {
		launchOpts.Proxy = &playwright.Proxy{Server: opts.ProxyServer}
	}
	if kind == ports.KindChromium && opts.ChromePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ChromePath)
	}

	browser, err := b.browserType(kind).Launch(launchOpts)
	if err != nil {
		b.Close()
		return fmt.Errorf("launch %s: %w", kind, err)
	}
	b.browser = browser

	pageOpts := playwright.BrowserNewPageOptions{
		IgnoreHttpsErrors: playwright.Bool(opts.IgnoreHTTPSErrors),
	}
	if opts.UserAgent != "" {
		pageOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	page, err := browser.NewPage(pageOpts)
	if err != nil {
		b.Close()
		return fmt.Errorf("new page: %w", err)
	}
	b.page = page

	if opts.TimeoutMs > 0 {
		b.timeout = float64(opts.TimeoutMs)
	}

	return ctx.Err()
}

func (b *Browser) browserType(kind string) playwright.BrowserType {
	switch kind {
	case ports.KindFirefox:
		return b.pw.Firefox
	case ports.KindWebKit:
		return b.pw.WebKit
	default:
		return b.pw.Chromium
	}
}

// Navigate loads the specified URL and waits for the load event.
func (b *Browser) Navigate(url string) error {
	opts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if b.timeout > 0 {
		opts.Timeout = playwright.Float(b.timeout)
	}
	if _, err := b.page.Goto(url, opts); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

// SetViewport sets the viewport dimensions in CSS pixels.
func (b *Browser) SetViewport(width, height int) error {
	return b.page.SetViewportSize(width, height)
}

// CaptureClip takes a full-page screenshot clipped to the rectangle and to
// the current document size.
func (b *Browser) CaptureClip(clip ports.Clip) ([]byte, error) {
	width, height := float64(clip.Width), float64(clip.Height)

	size, err := b.page.Evaluate(contentSizeScript)
	if err != nil {
		return nil, fmt.Errorf("measure content: %w", err)
	}
	if dims, ok := size.([]interface{}); ok && len(dims) == 2 {
		if cw, ok := number(dims[0]); ok {
			width = math.Min(width, math.Ceil(cw))
		}
		if ch, ok := number(dims[1]); ok {
			height = math.Min(height, math.Ceil(ch))
		}
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("page has no content to capture")
	}

	data, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Type:     playwright.ScreenshotTypePng,
		FullPage: playwright.Bool(true),
		Clip: &playwright.Rect{
			X:      float64(clip.X),
			Y:      float64(clip.Y),
			Width:  width,
			Height: height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Close shuts down the browser and the driver.
func (b *Browser) Close() error {
	var firstErr error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			firstErr = err
		}
		b.browser = nil
		b.page = nil
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.pw = nil
	}
	return firstErr
}

// number converts a value decoded from the driver to float64.
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

var _ ports.Browser = (*Browser)(nil)
