package timeline

import (
	"errors"
	"testing"
)

func TestZoomStartsAtHundred(t *testing.T) {
	z := NewZoom()
	if z.YearsPerRow() != 100 || z.LabelInterval() != 100 {
		t.Fatalf("expected 100/100, got %d/%d", z.YearsPerRow(), z.LabelInterval())
	}
}

func TestZoomStepAndLabels(t *testing.T) {
	z := NewZoom()
	want := []struct{ ypr, label int }{
		{50, 50},
		{20, 10},
		{10, 10},
	}
	for _, w := range want {
		if !z.Step(ZoomIn) {
			t.Fatalf("expected step to %d to change the level", w.ypr)
		}
		if z.YearsPerRow() != w.ypr || z.LabelInterval() != w.label {
			t.Fatalf("expected %d/%d, got %d/%d", w.ypr, w.label, z.YearsPerRow(), z.LabelInterval())
		}
	}
	if z.Step(ZoomIn) {
		t.Fatal("expected no change past the finest level")
	}
}

func TestZoomOutIdempotentAtBoundary(t *testing.T) {
	z := NewZoom()
	z.Step(ZoomOut)
	if !z.Step(ZoomOut) {
		t.Fatal("expected second zoom out to reach 500")
	}
	for i := 0; i < 5; i++ {
		if z.Step(ZoomOut) {
			t.Fatalf("step %d: expected no change at coarsest level", i)
		}
		if z.YearsPerRow() != 500 {
			t.Fatalf("expected 500 years per row, got %d", z.YearsPerRow())
		}
	}
	if z.LabelInterval() != 500 {
		t.Fatalf("expected 500-year labels, got %d", z.LabelInterval())
	}
}

func TestZoomStepScale(t *testing.T) {
	z := NewZoom()
	s := DefaultScale()
	next, changed := z.StepScale(ZoomOut, s)
	if !changed || next.YearsPerRow != 200 || next.YearLabelInterval != 100 {
		t.Fatalf("unexpected scale after zoom out: %+v changed=%v", next, changed)
	}
	if next.StartYear != s.StartYear || next.EndYear != s.EndYear {
		t.Fatalf("zoom must not move bounds: %+v", next)
	}
	z.Step(ZoomOut)
	same, changed := z.StepScale(ZoomOut, next)
	if changed || same != next {
		t.Fatalf("expected untouched scale at boundary, got %+v changed=%v", same, changed)
	}
}

func TestZoomSetYearsPerRow(t *testing.T) {
	z, err := NewZoomAt(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z.Index() != 4 {
		t.Fatalf("expected index 4, got %d", z.Index())
	}
	if err := z.SetYearsPerRow(30); !errors.Is(err, ErrUnknownZoom) {
		t.Fatalf("expected ErrUnknownZoom, got %v", err)
	}
	if z.YearsPerRow() != 20 {
		t.Fatalf("failed set must not move the cursor, got %d", z.YearsPerRow())
	}
}

func TestLabelInterval(t *testing.T) {
	for ypr, want := range map[int]int{500: 500, 200: 100, 100: 100, 50: 50, 20: 10, 10: 10} {
		if got := LabelInterval(ypr); got != want {
			t.Errorf("LabelInterval(%d) = %d, want %d", ypr, got, want)
		}
	}
}
