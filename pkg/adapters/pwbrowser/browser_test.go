package pwbrowser

import (
	"context"
	"os"
	"testing"

	"github.com/user/sweepcast/pkg/ports"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{in: 12, want: 12, ok: true},
		{in: int64(7), want: 7, ok: true},
		{in: 1500.5, want: 1500.5, ok: true},
		{in: "12", ok: false},
		{in: nil, ok: false},
	}
	for _, tt := range tests {
		got, ok := number(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("number(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBrowser_Launch_UnknownKind(t *testing.T) {
	b := New()
	if err := b.Launch(context.Background(), ports.BrowserOptions{Kind: "netscape"}); err == nil {
		b.Close()
		t.Fatal("expected error for unknown kind")
	}
}

func TestBrowser_CaptureClip_Firefox(t *testing.T) {
	if os.Getenv("SWEEPCAST_BROWSER_TESTS") == "" {
		t.Skip("set SWEEPCAST_BROWSER_TESTS=1 to run browser tests")
	}

	b := New()
	if err := b.Launch(context.Background(), ports.BrowserOptions{Kind: ports.KindFirefox, Headless: true}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	defer b.Close()

	if err := b.Navigate("data:text/html,<body style='margin:0'><div style='height:900px'></div></body>"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := b.SetViewport(320, 480); err != nil {
		t.Fatalf("viewport: %v", err)
	}
	data, err := b.CaptureClip(ports.Clip{Width: 320, Height: 10000})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected PNG data")
	}
}
