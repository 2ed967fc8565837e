package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/user/sweepcast/pkg/pipeline"
)

func TestComputePlan_WidthsAscendingWithoutGaps(t *testing.T) {
	ranges := []struct{ min, max int }{
		{320, 320},
		{320, 322},
		{1, 10},
		{999, 1001},
	}

	for _, r := range ranges {
		plan, err := ComputePlan(pipeline.PlanInput{MinWidth: r.min, MaxWidth: r.max, Height: pipeline.Unbounded()})
		if err != nil {
			t.Fatalf("[%d,%d]: unexpected error: %v", r.min, r.max, err)
		}

		if len(plan.Widths) != r.max-r.min+1 {
			t.Errorf("[%d,%d]: expected %d widths, got %d", r.min, r.max, r.max-r.min+1, len(plan.Widths))
		}
		for i, w := range plan.Widths {
			if w != r.min+i {
				t.Errorf("[%d,%d]: widths[%d] = %d, want %d", r.min, r.max, i, w, r.min+i)
			}
		}
	}
}

func TestComputePlan_FixedHeight(t *testing.T) {
	plan, err := ComputePlan(pipeline.PlanInput{MinWidth: 320, MaxWidth: 322, Height: pipeline.FixedHeight(800)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.InitialBound != 800 {
		t.Errorf("expected bound 800, got %d", plan.InitialBound)
	}
	if plan.CanGrow {
		t.Error("fixed policy must not grow")
	}
	for _, req := range plan.Requests() {
		if req.HeightBound != 800 {
			t.Errorf("width %d: expected bound 800, got %d", req.Width, req.HeightBound)
		}
	}
}

func TestComputePlan_UnboundedUsesProbeCeiling(t *testing.T) {
	plan, err := ComputePlan(pipeline.PlanInput{MinWidth: 100, MaxWidth: 100, Height: pipeline.Unbounded()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.InitialBound != pipeline.DefaultProbeHeight {
		t.Errorf("expected bound %d, got %d", pipeline.DefaultProbeHeight, plan.InitialBound)
	}
	if !plan.CanGrow {
		t.Error("unbounded policy must grow")
	}

	plan, err = ComputePlan(pipeline.PlanInput{MinWidth: 100, MaxWidth: 100, Height: pipeline.Unbounded(), ProbeHeight: 4000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.InitialBound != 4000 {
		t.Errorf("expected custom probe 4000, got %d", plan.InitialBound)
	}
}

func TestComputePlan_WidthDigits(t *testing.T) {
	tests := []struct {
		max    int
		digits int
	}{
		{9, 1},
		{99, 2},
		{320, 3},
		{1280, 4},
	}

	for _, tt := range tests {
		plan, err := ComputePlan(pipeline.PlanInput{MinWidth: 1, MaxWidth: tt.max})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.WidthDigits != tt.digits {
			t.Errorf("max %d: expected %d digits, got %d", tt.max, tt.digits, plan.WidthDigits)
		}
	}
}

func TestComputePlan_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input pipeline.PlanInput
	}{
		{"min greater than max", pipeline.PlanInput{MinWidth: 500, MaxWidth: 400}},
		{"zero width", pipeline.PlanInput{MinWidth: 0, MaxWidth: 400}},
		{"negative height", pipeline.PlanInput{MinWidth: 1, MaxWidth: 2, Height: pipeline.HeightPolicy{Fixed: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStage().Execute(context.Background(), tt.input)
			if !errors.Is(err, pipeline.ErrUsage) {
				t.Errorf("expected usage error, got %v", err)
			}
		})
	}
}

func TestParseHeightPolicy(t *testing.T) {
	p, err := pipeline.ParseHeightPolicy("full")
	if err != nil || !p.IsUnbounded() {
		t.Errorf("expected unbounded policy, got %+v, %v", p, err)
	}

	p, err = pipeline.ParseHeightPolicy("800")
	if err != nil || p.Fixed != 800 {
		t.Errorf("expected fixed 800, got %+v, %v", p, err)
	}

	for _, bad := range []string{"0", "-5", "tall"} {
		if _, err := pipeline.ParseHeightPolicy(bad); !errors.Is(err, pipeline.ErrUsage) {
			t.Errorf("%q: expected usage error, got %v", bad, err)
		}
	}
}
