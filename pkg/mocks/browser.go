// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/user/sweepcast/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
type Browser struct {
	LaunchFunc      func(ctx context.Context, opts ports.BrowserOptions) error
	NavigateFunc    func(url string) error
	SetViewportFunc func(width, height int) error
	CaptureClipFunc func(clip ports.Clip) ([]byte, error)
	CloseFunc       func() error

	mu sync.Mutex

	// Recorded calls for verification
	LaunchOpts ports.BrowserOptions
	Viewports  []ports.Clip
	Clips      []ports.Clip
	Closed     bool
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	m.mu.Lock()
	m.LaunchOpts = opts
	m.mu.Unlock()
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) Navigate(url string) error {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(url)
	}
	return nil
}

func (m *Browser) SetViewport(width, height int) error {
	m.mu.Lock()
	m.Viewports = append(m.Viewports, ports.Clip{Width: width, Height: height})
	m.mu.Unlock()
	if m.SetViewportFunc != nil {
		return m.SetViewportFunc(width, height)
	}
	return nil
}

func (m *Browser) CaptureClip(clip ports.Clip) ([]byte, error) {
	m.mu.Lock()
	m.Clips = append(m.Clips, clip)
	m.mu.Unlock()
	if m.CaptureClipFunc != nil {
		return m.CaptureClipFunc(clip)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (m *Browser) Close() error {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Page is a synthetic page whose full-page height is ContentHeight at every
// width. Captures are clipped to the requested rectangle.
type Page struct {
	ContentHeight int
	// ContentWidth caps the captured width when positive.
	ContentWidth int
	// HeightAt overrides ContentHeight per width when set.
	HeightAt func(width int) int

	mu   sync.Mutex
	last ports.Clip
}

// Browser returns a mock browser that renders this page.
func (p *Page) Browser() *Browser {
	return &Browser{
		CaptureClipFunc: func(clip ports.Clip) ([]byte, error) {
			p.mu.Lock()
			p.last = clip
			p.mu.Unlock()
			return []byte{0x89, 'P', 'N', 'G'}, nil
		},
	}
}

// Measurer returns a mock measurer reporting the size of the last capture.
func (p *Page) Measurer() *ImageMeasurer {
	return &ImageMeasurer{
		MeasureFunc: func(path string) (int, int, error) {
			p.mu.Lock()
			clip := p.last
			p.mu.Unlock()

			h := p.ContentHeight
			if p.HeightAt != nil {
				h = p.HeightAt(clip.Width)
			}
			if clip.Height < h {
				h = clip.Height
			}
			w := clip.Width
			if p.ContentWidth > 0 && p.ContentWidth < w {
				w = p.ContentWidth
			}
			return w, h, nil
		},
	}
}
