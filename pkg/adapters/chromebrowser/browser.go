package chromebrowser

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/sweepcast/pkg/ports"
)

// Browser drives a single Chromium tab over the DevTools protocol.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	timeout time.Duration
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Launch starts Chrome with the given options.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if opts.Kind != "" && opts.Kind != ports.KindChromium {
		return fmt.Errorf("chromedp cannot drive %s", opts.Kind)
	}

	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		// Scrollbars would eat into the captured width
		chromedp.Flag("hide-scrollbars", true),
	}

	if opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chromium not found: install it, set SWEEPCAST_CHROME_PATH or CHROME_PATH, or pass --chrome-path")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if opts.UserAgent != "" {
		chromedpOpts = append(chromedpOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.IgnoreHTTPSErrors {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}

	if opts.ProxyServer != "" {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("proxy-server", opts.ProxyServer))
	}

	// Container and CI friendly flags
	chromedpOpts = append(chromedpOpts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	)

	if opts.TimeoutMs > 0 {
		b.timeout = time.Duration(opts.TimeoutMs) * time.Millisecond
	}

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)

	// Start the browser process now so launch failures surface here.
	if err := chromedp.Run(b.ctx); err != nil {
		b.Close()
		return fmt.Errorf("start chrome: %w", err)
	}
	return nil
}

// Navigate loads the specified URL and waits for the load event.
func (b *Browser) Navigate(url string) error {
	ctx := b.ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	return chromedp.Run(ctx, chromedp.Navigate(url))
}

// SetViewport sets the viewport width and height at a device scale of 1.
func (b *Browser) SetViewport(width, height int) error {
	if err := chromedp.Run(b.ctx,
		emulation.SetDeviceMetricsOverride(int64(width), int64(height), 1, false),
	); err != nil {
		return fmt.Errorf("set device metrics: %w", err)
	}
	return nil
}

// CaptureClip captures the page beyond the viewport, clipped to the
// rectangle and to the current content size.
func (b *Browser) CaptureClip(clip ports.Clip) ([]byte, error) {
	var data []byte
	err := chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, _, _, _, _, content, err := page.GetLayoutMetrics().Do(ctx)
		if err != nil {
			return fmt.Errorf("get layout metrics: %w", err)
		}

		width, height := float64(clip.Width), float64(clip.Height)
		if content != nil {
			width = math.Min(width, math.Ceil(content.Width))
			height = math.Min(height, math.Ceil(content.Height))
		}
		if width < 1 || height < 1 {
			return fmt.Errorf("page has no content to capture")
		}

		data, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithCaptureBeyondViewport(true).
			WithFromSurface(true).
			WithClip(&page.Viewport{
				X:      float64(clip.X),
				Y:      float64(clip.Y),
				Width:  width,
				Height: height,
				Scale:  1,
			}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return data, nil
}

// Close shuts down the browser.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
	}
	return nil
}

var _ ports.Browser = (*Browser)(nil)
