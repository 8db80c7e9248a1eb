// Package mcp serves the timeline over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/timeline"
)

// Service serializes tool calls onto one session. Calls may arrive
// concurrently from the transport.
type Service struct {
	mu      sync.Mutex
	session *app.Session
}

var errNoSession = errors.New("session is not configured")

// CreateEventOptions captures the parameters used to create an event.
type CreateEventOptions struct {
	Name        string `json:"name"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Region      string `json:"region"`
	Description string `json:"description"`
	ParentID    *int   `json:"parent_id"`
}

// UpdateEventOptions changes only the fields that are set.
type UpdateEventOptions struct {
	ID          int     `json:"id"`
	Name        *string `json:"name"`
	Start       *int    `json:"start"`
	End         *int    `json:"end"`
	Region      *string `json:"region"`
	Description *string `json:"description"`
}

// LayoutResult is a plan plus any filter names that matched nothing.
type LayoutResult struct {
	Plan    app.Plan `json:"plan"`
	Ignored []string `json:"ignored,omitempty"`
}

// NewService wraps s.
func NewService(s *app.Session) *Service {
	return &Service{session: s}
}

func (s *Service) lock() (*app.Session, func(), error) {
	if s.session == nil {
		return nil, nil, errNoSession
	}
	s.mu.Lock()
	return s.session, s.mu.Unlock, nil
}

// ListEvents returns every event, or those filed under region.
func (s *Service) ListEvents(ctx context.Context, region string) ([]event.Event, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	all := sess.Events()
	if region == "" {
		return all, nil
	}
	out := make([]event.Event, 0, len(all))
	for _, e := range all {
		if e.Region == region {
			out = append(out, e)
		}
	}
	return out, nil
}

// CreateEvent adds an event.
func (s *Service) CreateEvent(ctx context.Context, opts CreateEventOptions) (event.Event, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return event.Event{}, err
	}
	defer unlock()

	return sess.AddEvent(ctx, event.Draft{
		Name:        opts.Name,
		Start:       opts.Start,
		End:         opts.End,
		Region:      opts.Region,
		Description: opts.Description,
	}, opts.ParentID)
}

// UpdateEvent edits an event.
func (s *Service) UpdateEvent(ctx context.Context, opts UpdateEventOptions) (event.Event, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return event.Event{}, err
	}
	defer unlock()

	current, ok := sess.Event(opts.ID)
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	draft := event.DraftOf(current)
	if opts.Name != nil {
		draft.Name = *opts.Name
	}
	if opts.Start != nil {
		draft.Start = *opts.Start
	}
	if opts.End != nil {
		draft.End = *opts.End
	}
	if opts.Region != nil {
		draft.Region = *opts.Region
	}
	if opts.Description != nil {
		draft.Description = *opts.Description
	}
	return sess.UpdateEvent(ctx, opts.ID, draft)
}

// DeleteEvent removes an event; an empty cascade uses the configured one.
func (s *Service) DeleteEvent(ctx context.Context, id int, cascade string) ([]event.Event, error) {
	var c event.Cascade
	if cascade != "" {
		var err error
		if c, err = event.ParseCascade(cascade); err != nil {
			return nil, err
		}
	}
	sess, unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return sess.DeleteEvent(ctx, id, c)
}

// ListRegions returns the taxonomy.
func (s *Service) ListRegions(ctx context.Context) ([]event.Region, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return sess.Regions(), nil
}

// AddRegion appends a main region.
func (s *Service) AddRegion(ctx context.Context, name string) (event.Region, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return event.Region{}, err
	}
	defer unlock()
	return sess.AddRegion(ctx, name)
}

// AddSubregion appends a subregion.
func (s *Service) AddSubregion(ctx context.Context, regionID, name string) (event.Subregion, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return event.Subregion{}, err
	}
	defer unlock()
	return sess.AddSubregion(ctx, regionID, name)
}

// Layout computes the plan for a zoom level and region filter. The view
// applies to this call only; the shared session keeps its zoom and filter.
func (s *Service) Layout(ctx context.Context, view app.View) (LayoutResult, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return LayoutResult{}, err
	}
	defer unlock()

	plan, ignored, err := sess.RenderView(view)
	if err != nil {
		return LayoutResult{}, err
	}
	return LayoutResult{Plan: plan, Ignored: ignored}, nil
}

// Bounds reports the current year range.
func (s *Service) Bounds(ctx context.Context) (timeline.Bounds, error) {
	sess, unlock, err := s.lock()
	if err != nil {
		return timeline.Bounds{}, err
	}
	defer unlock()
	return sess.Bounds(), nil
}

// Reload re-reads storage after an outside change.
func (s *Service) Reload(ctx context.Context) error {
	sess, unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return sess.Reload(ctx)
}
