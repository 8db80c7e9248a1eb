package app

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/store"
	"tableflip.dev/annals/pkg/timeline"
)

type memoryPersistence struct {
	mu      sync.Mutex
	seeded  bool
	events  map[int]event.Event
	regions []event.Region
	writes  int
	failOn  string
	// failDelete makes DeleteEvent fail for this id.
	failDelete int
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{events: make(map[int]event.Event)}
}

func seededPersistence(d *event.Dataset) *memoryPersistence {
	m := newMemoryPersistence()
	if err := m.Replace(context.Background(), d); err != nil {
		panic(err)
	}
	m.writes = 0
	return m
}

func (m *memoryPersistence) Load(ctx context.Context) (*event.Dataset, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.seeded {
		return event.Defaults(), false, nil
	}
	events := make([]event.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	regions := event.NewDataset(nil, m.regions).Clone().Regions
	return event.NewDataset(events, regions), true, nil
}

func (m *memoryPersistence) Events(ctx context.Context) ([]event.Event, error) {
	d, _, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	return d.Events, nil
}

func (m *memoryPersistence) Regions() ([]event.Region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regions, nil
}

func (m *memoryPersistence) fail(op string) error {
	if m.failOn == op {
		return errors.New("disk full")
	}
	return nil
}

func (m *memoryPersistence) StoreEvent(e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("store"); err != nil {
		return err
	}
	m.events[e.ID] = e
	m.seeded = true
	m.writes++
	return nil
}

func (m *memoryPersistence) DeleteEvent(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return event.ErrEventNotFound
	}
	if id == m.failDelete {
		return errors.New("disk full")
	}
	delete(m.events, id)
	m.writes++
	return nil
}

func (m *memoryPersistence) StoreRegions(regions []event.Region) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regions = event.NewDataset(nil, regions).Clone().Regions
	m.seeded = true
	m.writes++
	return nil
}

func (m *memoryPersistence) Replace(_ context.Context, d *event.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("replace"); err != nil {
		return err
	}
	c := d.Clone()
	m.events = make(map[int]event.Event, len(c.Events))
	for _, e := range c.Events {
		m.events[e.ID] = e
	}
	m.regions = c.Regions
	m.seeded = true
	m.writes++
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Change, error) {
	ch := make(chan store.Change)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func newSession(t *testing.T, p store.Persistence, opts Options) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), p, opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewSessionUsesDefaults(t *testing.T) {
	s := newSession(t, newMemoryPersistence(), Options{})
	if len(s.Events()) != 4 {
		t.Fatalf("expected sample events, got %d", len(s.Events()))
	}
	if got := s.Bounds(); got != (timeline.Bounds{StartYear: -700, EndYear: 100}) {
		t.Fatalf("expected -700..100, got %+v", got)
	}
	if s.YearsPerRow() != 100 || s.Scale().YearLabelInterval != 100 {
		t.Fatalf("unexpected scale %+v", s.Scale())
	}
	if len(s.Visible()) != 8 {
		t.Fatalf("expected all 8 regions visible, got %v", s.Visible())
	}
	if s.Policy() != timeline.PolicyClamp || s.Cascade() != event.CascadeDescendants {
		t.Fatalf("unexpected policies %q %q", s.Policy(), s.Cascade())
	}
}

func TestNewSessionRejectsUnknownZoom(t *testing.T) {
	if _, err := NewSession(context.Background(), newMemoryPersistence(), Options{YearsPerRow: 30}); !errors.Is(err, timeline.ErrUnknownZoom) {
		t.Fatalf("expected ErrUnknownZoom, got %v", err)
	}
	if _, err := NewSession(context.Background(), nil, Options{}); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}

func TestFirstMutationSavesSamples(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	s := newSession(t, p, Options{})

	e, err := s.AddEvent(ctx, event.Draft{Name: "Han dynasty", Start: -202, End: 220, Region: "China"}, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID != 5 {
		t.Fatalf("expected id 5, got %d", e.ID)
	}
	if len(p.events) != 5 || len(p.regions) != 8 {
		t.Fatalf("expected samples plus new event saved, got %d events %d regions", len(p.events), len(p.regions))
	}
	if got := s.Bounds(); got != (timeline.Bounds{StartYear: -700, EndYear: 400}) {
		t.Fatalf("expected bounds recomputed to -700..400, got %+v", got)
	}

	reopened := newSession(t, p, Options{})
	if !reflect.DeepEqual(reopened.Events(), s.Events()) {
		t.Fatalf("expected persisted events, got %+v", reopened.Events())
	}
}

func TestFailedWriteLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	p := seededPersistence(event.Defaults())
	p.failOn = "store"
	s := newSession(t, p, Options{})

	if _, err := s.AddEvent(ctx, event.Draft{Name: "x", Start: 1, End: 2, Region: "China"}, nil); err == nil {
		t.Fatal("expected write error")
	}
	if len(s.Events()) != 4 {
		t.Fatalf("expected rollback, got %d events", len(s.Events()))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	p := seededPersistence(event.Defaults())
	s := newSession(t, p, Options{Cascade: event.CascadeChildren})

	if _, err := s.UpdateEvent(ctx, 4, event.Draft{Name: "Warring States", Start: -475, End: -221, Region: "China"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.events[4].Start != -475 {
		t.Fatalf("expected update persisted, got %+v", p.events[4])
	}
	if got := s.Bounds().StartYear; got != -700 {
		t.Fatalf("expected start -700, got %d", got)
	}

	removed, err := s.DeleteEvent(ctx, 1, "")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(removed) != 2 || removed[0].ID != 1 || removed[1].ID != 2 {
		t.Fatalf("expected event 1 and child 2 removed, got %+v", removed)
	}
	if _, ok := p.events[2]; ok {
		t.Fatal("child still persisted")
	}
	if got := s.Bounds(); got != (timeline.Bounds{StartYear: -600, EndYear: -100}) {
		t.Fatalf("expected -600..-100, got %+v", got)
	}

	if _, err := s.DeleteEvent(ctx, 1, ""); !errors.Is(err, event.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeletingEverythingUsesDefaultBounds(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, seededPersistence(event.Defaults()), Options{})
	for _, id := range []int{1, 3, 4} {
		if _, err := s.DeleteEvent(ctx, id, event.CascadeDescendants); err != nil {
			t.Fatalf("delete %d: %v", id, err)
		}
	}
	if got := s.Bounds(); got != timeline.DefaultBounds() {
		t.Fatalf("expected default bounds, got %+v", got)
	}
	if s.Render().Blocks() != 0 {
		t.Fatal("expected no blocks")
	}
}

func TestRejectPolicy(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, seededPersistence(event.Defaults()), Options{Policy: timeline.PolicyReject})
	_, err := s.AddEvent(ctx, event.Draft{Name: "Backwards", Start: 10, End: 0, Region: "China"}, nil)
	if !errors.Is(err, timeline.ErrInvertedInterval) {
		t.Fatalf("expected ErrInvertedInterval, got %v", err)
	}
	if _, err := s.UpdateEvent(ctx, 1, event.Draft{Name: "x", Start: 5, End: 1, Region: "China"}); !errors.Is(err, timeline.ErrInvertedInterval) {
		t.Fatalf("expected ErrInvertedInterval, got %v", err)
	}
}

func TestFlagPolicyMarksBlocks(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, seededPersistence(event.Defaults()), Options{Policy: timeline.PolicyFlag})
	e, err := s.AddEvent(ctx, event.Draft{Name: "Backwards", Start: 10, End: 0, Region: "China"}, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, _, ok := s.Render().Block(func(ev event.Event) bool { return ev.ID == e.ID })
	if !ok || !b.Malformed || b.Geometry.Height != timeline.MinBlockHeight {
		t.Fatalf("expected flagged minimum-height block, got %+v %v", b, ok)
	}
}

func TestVisibleFilter(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, seededPersistence(event.Defaults()), Options{})

	dropped := s.SetVisible([]string{"China", "Atlantis", "Western Europe"})
	if !reflect.DeepEqual(dropped, []string{"Atlantis"}) {
		t.Fatalf("expected Atlantis dropped, got %v", dropped)
	}
	if !reflect.DeepEqual(s.Visible(), []string{"Western Europe", "China"}) {
		t.Fatalf("expected taxonomy order, got %v", s.Visible())
	}
	plan := s.Render()
	if len(plan.Columns) != 2 || len(plan.Excluded) != 1 {
		t.Fatalf("expected 2 columns and Alexander excluded, got %d/%d", len(plan.Columns), len(plan.Excluded))
	}
	if plan.Columns[0].Lanes != 2 {
		t.Fatalf("expected Rome and Punic Wars in 2 lanes, got %d", plan.Columns[0].Lanes)
	}

	s.SetVisible(nil)
	if len(s.Render().Columns) != 0 {
		t.Fatal("expected an empty filter to show no columns")
	}

	if _, err := s.AddRegion(ctx, "Oceania"); err != nil {
		t.Fatalf("add region: %v", err)
	}
	if len(s.Visible()) != 9 {
		t.Fatalf("expected filter reset after region edit, got %v", s.Visible())
	}
}

func TestRegionEditsPersist(t *testing.T) {
	ctx := context.Background()
	p := seededPersistence(event.Defaults())
	s := newSession(t, p, Options{})

	sub, err := s.AddSubregion(ctx, "r1", "Iberia")
	if err != nil {
		t.Fatalf("add subregion: %v", err)
	}
	if len(p.regions[0].Subregions) != 1 {
		t.Fatalf("expected persisted subregion, got %+v", p.regions[0])
	}
	if _, err := s.AddRegion(ctx, "Iberia"); !errors.Is(err, event.ErrDuplicateRegion) {
		t.Fatalf("expected ErrDuplicateRegion, got %v", err)
	}
	if _, err := s.DeleteSubregion(ctx, "r1", sub.ID); err != nil {
		t.Fatalf("delete subregion: %v", err)
	}
	if _, err := s.DeleteRegion(ctx, "r8"); err != nil {
		t.Fatalf("delete region: %v", err)
	}
	if len(p.regions) != 7 || len(p.regions[0].Subregions) != 0 {
		t.Fatalf("unexpected persisted regions %+v", p.regions)
	}
}

func TestZoom(t *testing.T) {
	s := newSession(t, newMemoryPersistence(), Options{YearsPerRow: 500})
	if s.Zoom(timeline.ZoomOut) {
		t.Fatal("expected no change zooming out past the coarsest level")
	}
	if !s.Zoom(timeline.ZoomIn) || s.YearsPerRow() != 200 {
		t.Fatalf("expected 200 years per row, got %d", s.YearsPerRow())
	}
	if err := s.SetYearsPerRow(10); err != nil {
		t.Fatalf("set zoom: %v", err)
	}
	if s.Scale().YearLabelInterval != 10 {
		t.Fatalf("expected label interval 10, got %d", s.Scale().YearLabelInterval)
	}
	// Bounds survive zoom changes.
	if got := s.Bounds(); got != (timeline.Bounds{StartYear: -700, EndYear: 100}) {
		t.Fatalf("expected bounds kept, got %+v", got)
	}
}

func TestImportAndReload(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersistence()
	s := newSession(t, p, Options{})
	s.SetVisible([]string{"China"})

	d := event.NewDataset(
		[]event.Event{{ID: 7, Name: "Tang dynasty", Start: 618, End: 907, Region: "China"}},
		[]event.Region{{ID: "r6", Name: "China", Subregions: []event.Subregion{}}},
	)
	if err := s.Import(ctx, d); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(s.Events()) != 1 || !reflect.DeepEqual(s.Visible(), []string{"China"}) {
		t.Fatalf("unexpected session after import: %+v %v", s.Events(), s.Visible())
	}
	if got := s.Bounds(); got != (timeline.Bounds{StartYear: 500, EndYear: 1100}) {
		t.Fatalf("expected 500..1100, got %+v", got)
	}

	p.events[8] = event.Event{ID: 8, Name: "Song dynasty", Start: 960, End: 1279, Region: "China"}
	if err := s.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(s.Events()) != 2 {
		t.Fatalf("expected reload to see the external write, got %d", len(s.Events()))
	}
	if e, err := s.AddEvent(ctx, event.Draft{Name: "Yuan", Start: 1271, End: 1368, Region: "China"}, nil); err != nil || e.ID != 9 {
		t.Fatalf("expected id 9, got %+v %v", e, err)
	}
}

func TestApplyView(t *testing.T) {
	s := newSession(t, seededPersistence(event.Defaults()), Options{})
	dropped, err := s.ApplyView(View{YearsPerRow: 50, Regions: []string{"China", "Mars"}})
	if err != nil {
		t.Fatalf("apply view: %v", err)
	}
	if !reflect.DeepEqual(dropped, []string{"Mars"}) || !reflect.DeepEqual(s.Visible(), []string{"China"}) {
		t.Fatalf("unexpected filter %v dropped %v", s.Visible(), dropped)
	}
	if s.YearsPerRow() != 50 || s.Scale().YearLabelInterval != 50 {
		t.Fatalf("unexpected scale %+v", s.Scale())
	}
	if _, err := s.ApplyView(View{YearsPerRow: 7}); !errors.Is(err, timeline.ErrUnknownZoom) {
		t.Fatalf("expected ErrUnknownZoom, got %v", err)
	}
	if _, err := s.ApplyView(View{}); err != nil || len(s.Visible()) != 8 {
		t.Fatalf("expected all regions, got %v %v", s.Visible(), err)
	}
}

func TestFailedCascadeRestoresErasedEvents(t *testing.T) {
	ctx := context.Background()
	p := seededPersistence(event.Defaults())
	p.failDelete = 2
	s := newSession(t, p, Options{})

	if _, err := s.DeleteEvent(ctx, 1, event.CascadeDescendants); err == nil {
		t.Fatal("expected delete error")
	}
	if len(s.Events()) != 4 {
		t.Fatalf("expected rollback, got %d events", len(s.Events()))
	}
	if _, ok := p.events[1]; !ok {
		t.Fatal("expected event 1 written back after the failed cascade")
	}

	reopened := newSession(t, p, Options{})
	if !reflect.DeepEqual(reopened.Events(), s.Events()) {
		t.Fatalf("expected storage to match the session, got %+v", reopened.Events())
	}
}

func diskSession(t *testing.T, path string) *Session {
	t.Helper()
	p, err := store.Load(store.StaticConfig(path))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return newSession(t, p, Options{})
}

func TestFailedImportKeepsStoredEvents(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir()
	s := diskSession(t, path)
	if _, err := s.AddEvent(ctx, event.Draft{Name: "Han dynasty", Start: -202, End: 220, Region: "China"}, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	tests := map[string]*event.Dataset{
		"missing id": event.NewDataset(
			[]event.Event{{Name: "no id", Start: 1, End: 2, Region: "China"}},
			event.Defaults().Regions,
		),
		"duplicate ids": event.NewDataset(
			[]event.Event{
				{ID: 7, Name: "a", Start: 1, End: 2, Region: "A"},
				{ID: 7, Name: "b", Start: 3, End: 4, Region: "A"},
			},
			[]event.Region{{ID: "r1", Name: "A"}},
		),
		"duplicate region names": event.NewDataset(
			[]event.Event{{ID: 7, Name: "a", Start: 1, End: 2, Region: "A"}},
			[]event.Region{{ID: "r1", Name: "A"}, {ID: "r2", Name: "A"}},
		),
	}
	for name, d := range tests {
		t.Run(name, func(t *testing.T) {
			err := s.Import(ctx, d)
			if !errors.Is(err, event.ErrInvalidDataset) {
				t.Fatalf("expected ErrInvalidDataset, got %v", err)
			}
			if len(s.Events()) != 5 {
				t.Fatalf("expected session unchanged, got %d events", len(s.Events()))
			}
			reopened := diskSession(t, path)
			if len(reopened.Events()) != 5 || len(reopened.Regions()) != 8 {
				t.Fatalf("expected stored data kept, got %d events %d regions", len(reopened.Events()), len(reopened.Regions()))
			}
		})
	}
}

func TestRenderViewLeavesSessionAlone(t *testing.T) {
	s := newSession(t, seededPersistence(event.Defaults()), Options{})
	s.SetVisible([]string{"Western Europe", "China"})

	plan, dropped, err := s.RenderView(View{YearsPerRow: 20, Regions: []string{"China", "Mars"}})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}
	if plan.Scale.YearsPerRow != 20 || len(plan.Columns) != 1 || plan.Columns[0].Region != "China" {
		t.Fatalf("unexpected plan %d years per row, %d columns", plan.Scale.YearsPerRow, len(plan.Columns))
	}
	if !reflect.DeepEqual(dropped, []string{"Mars"}) {
		t.Fatalf("expected Mars dropped, got %v", dropped)
	}
	if s.YearsPerRow() != 100 || !reflect.DeepEqual(s.Visible(), []string{"Western Europe", "China"}) {
		t.Fatalf("expected session view unchanged, got %d %v", s.YearsPerRow(), s.Visible())
	}

	all, _, err := s.RenderView(View{})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}
	if len(all.Columns) != 8 || all.Scale.YearsPerRow != 100 {
		t.Fatalf("expected every region at 100 years per row, got %d columns at %d", len(all.Columns), all.Scale.YearsPerRow)
	}

	if _, _, err := s.RenderView(View{YearsPerRow: 7}); !errors.Is(err, timeline.ErrUnknownZoom) {
		t.Fatalf("expected ErrUnknownZoom, got %v", err)
	}
}
