// Package store persists the timeline dataset on local disk with diskv and
// reports external changes through fsnotify.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/logger"
)

// Persistence defines the persistence contract for the dataset.
type Persistence interface {
	// Load returns the stored dataset. When nothing was ever saved it
	// returns the sample dataset and false.
	Load(ctx context.Context) (*event.Dataset, bool, error)
	Events(ctx context.Context) ([]event.Event, error)
	Regions() ([]event.Region, error)
	StoreEvent(e event.Event) error
	DeleteEvent(id int) error
	StoreRegions(regions []event.Region) error
	// Replace overwrites everything with d. Invalid datasets are rejected
	// before anything is written.
	Replace(ctx context.Context, d *event.Dataset) error
	Watch(ctx context.Context) (<-chan Change, error)
}

const (
	eventsBucket = "events"
	metaBucket   = "meta"
	regionsKey   = metaBucket + "-regions"
	seededKey    = metaBucket + "-seeded"
)

// Option customizes Load.
type Option func(*persistence)

// WithLogger routes store diagnostics to log.
func WithLogger(log *logger.Logger) Option {
	return func(p *persistence) {
		p.log = log.With("component", "store")
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *logger.Logger
}

func (p *persistence) Load(ctx context.Context) (*event.Dataset, bool, error) {
	if !p.d.Has(seededKey) {
		return event.Defaults(), false, nil
	}
	events, err := p.Events(ctx)
	if err != nil {
		return nil, false, err
	}
	regions, err := p.Regions()
	if err != nil {
		return nil, false, err
	}
	if regions == nil {
		regions = event.Defaults().Regions
	}
	return event.NewDataset(events, regions), true, nil
}

func (p *persistence) readEvent(key string) (event.Event, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return event.Event{}, err
	}
	var e event.Event
	if err := json.Unmarshal(val, &e); err != nil {
		return event.Event{}, err
	}
	id, err := strconv.Atoi(keyToPathTransform(key).FileName)
	if err != nil {
		return event.Event{}, fmt.Errorf("bad event key: %w", err)
	}
	e.ID = id
	return e, nil
}

func (p *persistence) Events(ctx context.Context) ([]event.Event, error) {
	all := make([]event.Event, 0)
	for key := range p.d.KeysPrefix(eventsBucket+"-", ctx.Done()) {
		e, err := p.readEvent(key)
		if err != nil {
			p.log.Warn("skipping unreadable event", "key", key, "error", err)
			continue
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Ids are allocated in creation order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// Regions returns nil when no taxonomy was stored yet.
func (p *persistence) Regions() ([]event.Region, error) {
	if !p.d.Has(regionsKey) {
		return nil, nil
	}
	val, err := p.d.Read(regionsKey)
	if err != nil {
		return nil, fmt.Errorf("store: read regions: %w", err)
	}
	regions := make([]event.Region, 0)
	if err := json.Unmarshal(val, &regions); err != nil {
		return nil, fmt.Errorf("store: decode regions: %w", err)
	}
	return regions, nil
}

func (p *persistence) StoreEvent(e event.Event) error {
	if e.ID <= 0 {
		return fmt.Errorf("store: event id must be positive, got %d", e.ID)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(eventKey(e.ID), data); err != nil {
		return fmt.Errorf("store: write event %d: %w", e.ID, err)
	}
	return p.markSeeded()
}

func (p *persistence) DeleteEvent(id int) error {
	key := eventKey(id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %d", event.ErrEventNotFound, id)
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase event %d: %w", id, err)
	}
	return p.markSeeded()
}

func (p *persistence) StoreRegions(regions []event.Region) error {
	if regions == nil {
		regions = []event.Region{}
	}
	data, err := json.Marshal(regions)
	if err != nil {
		return err
	}
	if err := p.d.Write(regionsKey, data); err != nil {
		return fmt.Errorf("store: write regions: %w", err)
	}
	return p.markSeeded()
}

// Replace writes every event of d before erasing keys d no longer has, so a
// failure part way leaves the previous events readable.
func (p *persistence) Replace(ctx context.Context, d *event.Dataset) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("store: replace: %w", err)
	}
	existing := make([]string, 0)
	for key := range p.d.KeysPrefix(eventsBucket+"-", ctx.Done()) {
		existing = append(existing, key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	keep := make(map[string]bool, len(d.Events))
	for _, e := range d.Events {
		if err := p.StoreEvent(e); err != nil {
			return err
		}
		keep[eventKey(e.ID)] = true
	}
	if err := p.StoreRegions(d.Regions); err != nil {
		return err
	}

	for _, key := range existing {
		if keep[key] {
			continue
		}
		if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return nil
}

// markSeeded records that the dataset was written at least once, so an empty
// event list is not mistaken for a fresh install.
func (p *persistence) markSeeded() error {
	if p.d.Has(seededKey) {
		return nil
	}
	return p.d.Write(seededKey, []byte("1"))
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// eventKey makes `events-<id>`.
func eventKey(id int) string {
	return fmt.Sprintf("%s-%d", eventsBucket, id)
}
