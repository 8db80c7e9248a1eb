// Package app holds the Session: the one owner of the dataset, the visible
// region filter and the zoom state that every front end drives.
package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/logger"
	"tableflip.dev/annals/pkg/store"
	"tableflip.dev/annals/pkg/timeline"
)

// Plan is the layout of events.
type Plan = timeline.Plan[event.Event]

// Block is one placed event.
type Block = timeline.Block[event.Event]

var ErrNoPersistence = errors.New("app: no persistence configured")

// Options tune a Session. Zero values mean the defaults.
type Options struct {
	Policy      timeline.Policy
	Cascade     event.Cascade
	YearsPerRow int
	Log         *logger.Logger
}

// OptionsFromConfig reads the layout and delete settings from cfg.
func OptionsFromConfig(cfg store.Config, log *logger.Logger) (Options, error) {
	policy, err := timeline.ParsePolicy(cfg.IntervalPolicy())
	if err != nil {
		return Options{}, err
	}
	cascade, err := event.ParseCascade(cfg.Cascade())
	if err != nil {
		return Options{}, err
	}
	return Options{
		Policy:      policy,
		Cascade:     cascade,
		YearsPerRow: cfg.ZoomDefault(),
		Log:         log,
	}, nil
}

// Session is not safe for concurrent use; callers that share one guard it.
type Session struct {
	persistence store.Persistence
	log         *logger.Logger

	dataset *event.Dataset
	seeded  bool
	visible []string

	zoom    *timeline.Zoom
	policy  timeline.Policy
	cascade event.Cascade
	scale   timeline.Scale
}

// NewSession loads the dataset from p, falling back to the sample data when
// nothing was saved yet.
func NewSession(ctx context.Context, p store.Persistence, opts Options) (*Session, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	s := &Session{
		persistence: p,
		log:         opts.Log,
		zoom:        timeline.NewZoom(),
		policy:      opts.Policy,
		cascade:     opts.Cascade,
		scale:       timeline.DefaultScale(),
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.policy == "" {
		s.policy = timeline.PolicyClamp
	}
	if s.cascade == "" {
		s.cascade = event.CascadeDescendants
	}
	if opts.YearsPerRow != 0 {
		if err := s.zoom.SetYearsPerRow(opts.YearsPerRow); err != nil {
			return nil, err
		}
	}
	s.scale = s.zoom.Apply(s.scale)
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory dataset with what storage holds. The visible
// filter keeps the names that still exist.
func (s *Session) Reload(ctx context.Context) error {
	d, found, err := s.persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("app: load dataset: %w", err)
	}
	first := s.dataset == nil
	s.dataset = d
	s.seeded = found
	if first {
		s.visible = d.RegionNames()
	} else {
		s.SetVisible(s.visible)
	}
	s.recomputeBounds()
	s.log.Debug("dataset loaded", "events", len(d.Events), "regions", len(d.Regions), "saved", found)
	return nil
}

// Policy is the interval policy in force.
func (s *Session) Policy() timeline.Policy { return s.policy }

// Cascade is the default delete cascade.
func (s *Session) Cascade() event.Cascade { return s.cascade }

// Dataset returns a copy of the current dataset.
func (s *Session) Dataset() *event.Dataset { return s.dataset.Clone() }

// Events returns a copy of all events in creation order.
func (s *Session) Events() []event.Event { return s.dataset.Clone().Events }

// Regions returns a copy of the region taxonomy.
func (s *Session) Regions() []event.Region { return s.dataset.Clone().Regions }

// Event returns the event with id.
func (s *Session) Event(id int) (event.Event, bool) {
	return s.dataset.Find(id)
}

// Scale is the current scale, bounds and zoom applied.
func (s *Session) Scale() timeline.Scale { return s.scale }

// Bounds are the current vertical year range.
func (s *Session) Bounds() timeline.Bounds {
	return timeline.Bounds{StartYear: s.scale.StartYear, EndYear: s.scale.EndYear}
}

// Visible returns the visible column names in display order.
func (s *Session) Visible() []string {
	return append([]string(nil), s.visible...)
}

// SetVisible shows only names, in taxonomy order. Unknown names are dropped
// and returned.
func (s *Session) SetVisible(names []string) (dropped []string) {
	s.visible, dropped = s.filter(names)
	return dropped
}

// filter orders names by the taxonomy and splits off the unknown ones.
func (s *Session) filter(names []string) (visible, dropped []string) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	visible = make([]string, 0, len(names))
	for _, n := range s.dataset.RegionNames() {
		if want[n] {
			visible = append(visible, n)
			delete(want, n)
		}
	}
	for _, n := range names {
		if want[n] {
			dropped = append(dropped, n)
			delete(want, n)
		}
	}
	return visible, dropped
}

// ShowAll resets the filter to every region name.
func (s *Session) ShowAll() {
	s.visible = s.dataset.RegionNames()
}

// YearsPerRow is the current zoom level.
func (s *Session) YearsPerRow() int { return s.zoom.YearsPerRow() }

// ZoomLevels lists the selectable years-per-row values.
func (s *Session) ZoomLevels() []int { return s.zoom.Levels() }

// Zoom moves one level and reports whether the scale changed.
func (s *Session) Zoom(dir timeline.Direction) bool {
	next, changed := s.zoom.StepScale(dir, s.scale)
	s.scale = next
	return changed
}

// SetYearsPerRow jumps straight to a zoom level.
func (s *Session) SetYearsPerRow(n int) error {
	if err := s.zoom.SetYearsPerRow(n); err != nil {
		return err
	}
	s.scale = s.zoom.Apply(s.scale)
	return nil
}

// View narrows a session for one command: a zoom level (0 keeps the
// current one) and the visible regions (empty keeps them all).
type View struct {
	YearsPerRow int
	Regions     []string
}

// ApplyView sets zoom and filter. It returns region names that were not
// recognized.
func (s *Session) ApplyView(v View) ([]string, error) {
	if v.YearsPerRow != 0 {
		if err := s.SetYearsPerRow(v.YearsPerRow); err != nil {
			return nil, err
		}
	}
	if len(v.Regions) == 0 {
		s.ShowAll()
		return nil, nil
	}
	dropped := s.SetVisible(v.Regions)
	if len(dropped) > 0 {
		s.log.Warn("ignoring unknown regions", "regions", dropped)
	}
	return dropped, nil
}

// Render lays out the visible events from scratch.
func (s *Session) Render() Plan {
	return s.layout(s.visible, s.scale)
}

// RenderView lays out v without touching the session zoom or filter. An
// empty v renders every region at the current zoom.
func (s *Session) RenderView(v View) (Plan, []string, error) {
	scale := s.scale
	if v.YearsPerRow != 0 {
		z, err := timeline.NewZoomAt(v.YearsPerRow)
		if err != nil {
			return Plan{}, nil, err
		}
		scale = z.Apply(scale)
	}
	visible := s.dataset.RegionNames()
	var dropped []string
	if len(v.Regions) > 0 {
		visible, dropped = s.filter(v.Regions)
		if len(dropped) > 0 {
			s.log.Warn("ignoring unknown regions", "regions", dropped)
		}
	}
	return s.layout(visible, scale), dropped, nil
}

func (s *Session) layout(visible []string, scale timeline.Scale) Plan {
	plan := timeline.Layout(s.dataset.Events, visible, scale, timeline.Options{Policy: s.policy})
	if n := len(plan.Excluded); n > 0 {
		s.log.Debug("events outside visible regions", "count", n)
	}
	if s.policy == timeline.PolicyFlag {
		for _, c := range plan.Columns {
			for _, b := range c.Blocks {
				if b.Malformed {
					s.log.Warn("inverted interval", "id", b.Item.ID, "name", b.Item.Name, "start", b.Item.Start, "end", b.Item.End)
				}
			}
		}
	}
	return plan
}

func (s *Session) recomputeBounds() {
	s.scale = s.scale.WithBounds(timeline.ComputeBounds(s.dataset.Events))
}

// persist writes one change. The first write after loading the sample data
// saves the whole dataset so the samples survive.
func (s *Session) persist(ctx context.Context, write func() error) error {
	if !s.seeded {
		if err := s.persistence.Replace(ctx, s.dataset); err != nil {
			return fmt.Errorf("app: save dataset: %w", err)
		}
		s.seeded = true
		return nil
	}
	if err := write(); err != nil {
		return fmt.Errorf("app: save: %w", err)
	}
	return nil
}

// mutate applies change to a copy and keeps it only if it persisted.
func (s *Session) mutate(ctx context.Context, change func(d *event.Dataset) (func() error, error)) error {
	prev := s.dataset
	next := prev.Clone()
	write, err := change(next)
	if err != nil {
		return err
	}
	s.dataset = next
	if err := s.persist(ctx, write); err != nil {
		s.dataset = prev
		return err
	}
	s.recomputeBounds()
	return nil
}

// AddEvent creates an event, optionally under parent.
func (s *Session) AddEvent(ctx context.Context, draft event.Draft, parent *int) (event.Event, error) {
	if err := s.policy.Check(draft.Start, draft.End); err != nil {
		return event.Event{}, err
	}
	var created event.Event
	err := s.mutate(ctx, func(d *event.Dataset) (func() error, error) {
		e, err := d.Add(draft, parent)
		if err != nil {
			return nil, err
		}
		created = e
		return func() error { return s.persistence.StoreEvent(e) }, nil
	})
	if err != nil {
		return event.Event{}, err
	}
	s.log.Info("event created", "id", created.ID, "name", created.Name)
	return created, nil
}

// UpdateEvent replaces the editable fields of event id.
func (s *Session) UpdateEvent(ctx context.Context, id int, draft event.Draft) (event.Event, error) {
	if err := s.policy.Check(draft.Start, draft.End); err != nil {
		return event.Event{}, err
	}
	var updated event.Event
	err := s.mutate(ctx, func(d *event.Dataset) (func() error, error) {
		e, err := d.Update(id, draft)
		if err != nil {
			return nil, err
		}
		updated = e
		return func() error { return s.persistence.StoreEvent(e) }, nil
	})
	if err != nil {
		return event.Event{}, err
	}
	s.log.Info("event updated", "id", updated.ID)
	return updated, nil
}

// DeleteEvent removes event id. An empty cascade uses the session default.
func (s *Session) DeleteEvent(ctx context.Context, id int, cascade event.Cascade) ([]event.Event, error) {
	if cascade == "" {
		cascade = s.cascade
	}
	var removed []event.Event
	err := s.mutate(ctx, func(d *event.Dataset) (func() error, error) {
		r, err := d.Delete(id, cascade)
		if err != nil {
			return nil, err
		}
		removed = r
		return func() error {
			for i, e := range r {
				if err := s.persistence.DeleteEvent(e.ID); err != nil {
					s.restore(r[:i])
					return err
				}
			}
			return nil
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("event deleted", "id", id, "cascade", cascade, "removed", len(removed))
	return removed, nil
}

// restore writes back events erased before a cascade failed, so storage
// matches the rolled back session.
func (s *Session) restore(events []event.Event) {
	for _, e := range events {
		if err := s.persistence.StoreEvent(e); err != nil {
			s.log.Error("restore deleted event", "id", e.ID, "err", err)
		}
	}
}

func (s *Session) mutateRegions(ctx context.Context, change func(d *event.Dataset) error) error {
	err := s.mutate(ctx, func(d *event.Dataset) (func() error, error) {
		if err := change(d); err != nil {
			return nil, err
		}
		regions := d.Regions
		return func() error { return s.persistence.StoreRegions(regions) }, nil
	})
	if err != nil {
		return err
	}
	s.ShowAll()
	return nil
}

// AddRegion appends a main region.
func (s *Session) AddRegion(ctx context.Context, name string) (event.Region, error) {
	var r event.Region
	err := s.mutateRegions(ctx, func(d *event.Dataset) (err error) {
		r, err = d.AddRegion(name)
		return err
	})
	return r, err
}

// AddSubregion appends a subregion to regionID.
func (s *Session) AddSubregion(ctx context.Context, regionID, name string) (event.Subregion, error) {
	var sub event.Subregion
	err := s.mutateRegions(ctx, func(d *event.Dataset) (err error) {
		sub, err = d.AddSubregion(regionID, name)
		return err
	})
	return sub, err
}

// DeleteRegion removes a main region and its subregions.
func (s *Session) DeleteRegion(ctx context.Context, regionID string) (event.Region, error) {
	var r event.Region
	err := s.mutateRegions(ctx, func(d *event.Dataset) (err error) {
		r, err = d.DeleteRegion(regionID)
		return err
	})
	return r, err
}

// DeleteSubregion removes one subregion.
func (s *Session) DeleteSubregion(ctx context.Context, regionID, subID string) (event.Subregion, error) {
	var sub event.Subregion
	err := s.mutateRegions(ctx, func(d *event.Dataset) (err error) {
		sub, err = d.DeleteSubregion(regionID, subID)
		return err
	})
	return sub, err
}

// Import replaces the whole dataset with d. Nothing is written when d fails
// validation.
func (s *Session) Import(ctx context.Context, d *event.Dataset) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("app: import: %w", err)
	}
	if s.policy == timeline.PolicyReject {
		for _, e := range d.Events {
			if err := s.policy.Check(e.Start, e.End); err != nil {
				return fmt.Errorf("event %d: %w", e.ID, err)
			}
		}
	}
	if err := s.persistence.Replace(ctx, d); err != nil {
		return fmt.Errorf("app: import: %w", err)
	}
	c := d.Clone()
	s.dataset = event.NewDataset(c.Events, c.Regions)
	s.seeded = true
	s.ShowAll()
	s.recomputeBounds()
	s.log.Info("dataset imported", "events", len(d.Events), "regions", len(d.Regions))
	return nil
}

// Watch forwards storage changes.
func (s *Session) Watch(ctx context.Context) (<-chan store.Change, error) {
	return s.persistence.Watch(ctx)
}
