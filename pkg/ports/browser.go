// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// Browser abstracts the browser session used to capture the page.
// A Browser is owned by one capture loop at a time; its methods are not
// safe for concurrent use because every call mutates the same page.
type Browser interface {
	// Launch starts the browser with the given options.
	Launch(ctx context.Context, opts BrowserOptions) error

	// Navigate loads the specified URL.
	Navigate(url string) error

	// SetViewport sets the viewport dimensions in CSS pixels.
	SetViewport(width, height int) error

	// CaptureClip captures the full page clipped to the given rectangle and
	// returns PNG data. The result may be smaller than the clip when the page
	// content is smaller.
	CaptureClip(clip Clip) ([]byte, error)

	// Close shuts down the browser.
	Close() error
}

// Clip is a capture rectangle in CSS pixels.
type Clip struct {
	X      int
	Y      int
	Width  int
	Height int
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Kind              string // chromium, firefox or webkit
	Headless          bool
	ChromePath        string
	UserAgent         string
	IgnoreHTTPSErrors bool
	ProxyServer       string
	TimeoutMs         int // Navigation timeout
}

// Browser kinds.
const (
	KindChromium = "chromium"
	KindFirefox  = "firefox"
	KindWebKit   = "webkit"
)

// BrowserKinds lists every supported browser kind.
var BrowserKinds = []string{KindChromium, KindFirefox, KindWebKit}

// IsBrowserKind reports whether kind is supported.
func IsBrowserKind(kind string) bool {
	for _, k := range BrowserKinds {
		if k == kind {
			return true
		}
	}
	return false
}
