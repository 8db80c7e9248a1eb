package timeline

import (
	"errors"
	"testing"
)

func TestLayoutGroupsPerColumn(t *testing.T) {
	items := []span{
		{id: 1, start: -509, end: -27, region: "Western Europe"},
		{id: 2, start: -264, end: -146, region: "Western Europe"},
		{id: 3, start: -334, end: -323, region: "Eastern Europe"},
		{id: 4, start: -403, end: -221, region: "China"},
		{id: 5, start: 0, end: 10, region: "Atlantis"},
	}
	columns := []string{"Western Europe", "Eastern Europe", "South Asia", "China"}
	s := DefaultScale().WithBounds(ComputeBounds(items))

	plan := Layout(items, columns, s, Options{})

	if len(plan.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(plan.Columns))
	}
	if plan.Columns[0].Lanes != 2 {
		t.Fatalf("expected 2 lanes in Western Europe, got %d", plan.Columns[0].Lanes)
	}
	if plan.Columns[2].Lanes != 0 || len(plan.Columns[2].Blocks) != 0 {
		t.Fatalf("expected empty South Asia column, got %+v", plan.Columns[2])
	}
	if len(plan.Excluded) != 1 || plan.Excluded[0].id != 5 {
		t.Fatalf("expected Atlantis event excluded, got %+v", plan.Excluded)
	}
	if plan.Blocks() != 4 {
		t.Fatalf("expected 4 blocks, got %d", plan.Blocks())
	}

	b, region, ok := plan.Block(func(s span) bool { return s.id == 2 })
	if !ok || region != "Western Europe" || b.Lane != 1 {
		t.Fatalf("unexpected block for event 2: %+v in %q", b, region)
	}
	if b.Geometry.Width.Percent != 50 {
		t.Fatalf("expected half-width block, got %+v", b.Geometry.Width)
	}
	if b.Geometry.Top != YearToPixel(-264, s) {
		t.Fatalf("expected top at -264, got %v", b.Geometry.Top)
	}
}

func TestLayoutLanesAreIndependentPerColumn(t *testing.T) {
	items := []span{
		{id: 1, start: 0, end: 100, region: "A"},
		{id: 2, start: 0, end: 100, region: "B"},
	}
	plan := Layout(items, []string{"A", "B"}, DefaultScale(), Options{})
	for _, col := range plan.Columns {
		if col.Lanes != 1 {
			t.Fatalf("column %s: expected 1 lane, got %d", col.Region, col.Lanes)
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	plan := Layout[span](nil, nil, DefaultScale(), Options{})
	if len(plan.Columns) != 0 || plan.Blocks() != 0 {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
	if plan.Height != DefaultScale().Height() {
		t.Fatalf("expected default height, got %v", plan.Height)
	}
}

func TestLayoutFlagsInvertedUnderFlagPolicy(t *testing.T) {
	items := []span{{id: 1, start: 100, end: 0, region: "A"}}
	plan := Layout(items, []string{"A"}, DefaultScale(), Options{Policy: PolicyFlag})
	b := plan.Columns[0].Blocks[0]
	if !b.Malformed {
		t.Fatal("expected malformed flag")
	}
	if b.Geometry.Height != MinBlockHeight {
		t.Fatalf("expected clamped height, got %v", b.Geometry.Height)
	}

	plan = Layout(items, []string{"A"}, DefaultScale(), Options{Policy: PolicyClamp})
	if plan.Columns[0].Blocks[0].Malformed {
		t.Fatal("clamp policy must not flag")
	}
}

func TestPolicy(t *testing.T) {
	p, err := ParsePolicy(" Reject ")
	if err != nil || p != PolicyReject {
		t.Fatalf("expected reject, got %q %v", p, err)
	}
	if err := p.Check(10, 5); !errors.Is(err, ErrInvertedInterval) {
		t.Fatalf("expected ErrInvertedInterval, got %v", err)
	}
	if err := p.Check(5, 5); err != nil {
		t.Fatalf("zero-length interval must pass, got %v", err)
	}
	if err := PolicyClamp.Check(10, 5); err != nil {
		t.Fatalf("clamp must accept, got %v", err)
	}
	if _, err := ParsePolicy("bogus"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
