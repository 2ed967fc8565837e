package canvas

import (
	"context"
	"testing"

	"github.com/user/sweepcast/pkg/pipeline"
)

func TestEven(t *testing.T) {
	for h := 0; h <= 2001; h++ {
		got := Even(h)
		if got%2 != 0 {
			t.Fatalf("Even(%d) = %d is odd", h, got)
		}
		if got != h && got != h+1 {
			t.Fatalf("Even(%d) = %d, want %d or %d", h, got, h, h+1)
		}
		if Even(got) != got {
			t.Fatalf("Even is not idempotent at %d", h)
		}
	}
}

func TestNormalize(t *testing.T) {
	w, h := Normalize(801, 500)
	if w != 500 || h != 802 {
		t.Errorf("expected 500x802, got %dx%d", w, h)
	}

	w, h = Normalize(10500, 1279)
	if w != 1280 || h != 10500 {
		t.Errorf("expected 1280x10500, got %dx%d", w, h)
	}
}

func TestStage_Execute(t *testing.T) {
	dim, err := NewStage().Execute(context.Background(), pipeline.SequenceStats{TallestHeight: 801, WidestWidth: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dim != (pipeline.Dimension{Width: 500, Height: 802}) {
		t.Errorf("expected 500x802, got %+v", dim)
	}
}
