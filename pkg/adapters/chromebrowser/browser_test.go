package chromebrowser

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/user/sweepcast/pkg/ports"
)

func launchOrSkip(t *testing.T) *Browser {
	t.Helper()
	if os.Getenv("SWEEPCAST_BROWSER_TESTS") == "" {
		t.Skip("set SWEEPCAST_BROWSER_TESTS=1 to run browser tests")
	}
	if ResolveChromePath("") == "" {
		t.Skip("Chrome not installed")
	}

	b := New()
	if err := b.Launch(context.Background(), ports.BrowserOptions{Headless: true}); err != nil {
		t.Fatalf("failed to launch: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBrowser_Launch_RejectsOtherKinds(t *testing.T) {
	b := New()
	if err := b.Launch(context.Background(), ports.BrowserOptions{Kind: ports.KindFirefox}); err == nil {
		b.Close()
		t.Fatal("expected error for firefox")
	}
}

func TestBrowser_CaptureClip_ClampsToContent(t *testing.T) {
	b := launchOrSkip(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body style="margin:0"><div style="height:1500px;background:#08f"></div></body></html>`))
	}))
	defer srv.Close()

	if err := b.Navigate(srv.URL); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := b.SetViewport(400, 600); err != nil {
		t.Fatalf("set viewport: %v", err)
	}

	tests := []struct {
		bound      int
		wantHeight int
	}{
		{bound: 1000, wantHeight: 1000},
		{bound: 10000, wantHeight: 1500},
	}
	for _, tt := range tests {
		data, err := b.CaptureClip(ports.Clip{Width: 400, Height: tt.bound})
		if err != nil {
			t.Fatalf("capture: %v", err)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if cfg.Width != 400 || cfg.Height != tt.wantHeight {
			t.Errorf("bound %d: expected 400x%d, got %dx%d", tt.bound, tt.wantHeight, cfg.Width, cfg.Height)
		}
	}
}
