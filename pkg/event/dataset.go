package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEventNotFound is returned when no event has the requested id.
	ErrEventNotFound = errors.New("event: not found")
	// ErrUnknownRegion is returned when an event names no known region.
	ErrUnknownRegion = errors.New("event: unknown region")
	// ErrRegionNotFound is returned when no region or subregion has the id.
	ErrRegionNotFound = errors.New("event: region not found")
	// ErrDuplicateRegion is returned when a region name is already used.
	ErrDuplicateRegion = errors.New("event: region name already in use")
	// ErrEmptyName is returned for blank event or region names.
	ErrEmptyName = errors.New("event: name required")
	// ErrInvalidDataset is returned by Validate.
	ErrInvalidDataset = errors.New("event: invalid dataset")
)

// Cascade selects which events go with a deleted event.
type Cascade string

const (
	// CascadeChildren removes the event and its direct children only.
	// Grandchildren stay behind with a dangling parent id.
	CascadeChildren Cascade = "children"
	// CascadeDescendants removes the event and its whole subtree.
	CascadeDescendants Cascade = "descendants"
)

// ParseCascade converts s to a Cascade. Empty input means CascadeDescendants.
func ParseCascade(s string) (Cascade, error) {
	switch c := Cascade(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CascadeDescendants, nil
	case CascadeChildren, CascadeDescendants:
		return c, nil
	default:
		return CascadeDescendants, fmt.Errorf("event: unknown cascade %q (expected children or descendants)", s)
	}
}

const firstRegionID = 100

// Dataset is the full editable state: events and the region taxonomy.
type Dataset struct {
	Events  []Event  `json:"events" yaml:"events"`
	Regions []Region `json:"regions" yaml:"regions"`

	nextEventID  int
	nextRegionID int
}

// NewDataset wraps events and regions. Id counters continue after the
// largest ids present.
func NewDataset(events []Event, regions []Region) *Dataset {
	d := &Dataset{Events: events, Regions: regions}
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Regions == nil {
		d.Regions = []Region{}
	}
	return d
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Events:       make([]Event, len(d.Events)),
		Regions:      cloneRegions(d.Regions),
		nextEventID:  d.nextEventID,
		nextRegionID: d.nextRegionID,
	}
	for i, e := range d.Events {
		out.Events[i] = clone(e)
	}
	return out
}

// RegionNames is Names(d.Regions).
func (d *Dataset) RegionNames() []string {
	return Names(d.Regions)
}

// NextEventID is the id the next created event will get.
func (d *Dataset) NextEventID() int {
	if d.nextEventID > 0 {
		return d.nextEventID
	}
	next := 1
	for _, e := range d.Events {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

func (d *Dataset) allocEventID() int {
	id := d.NextEventID()
	d.nextEventID = id + 1
	return id
}

// NextRegionID is the numeric part of the next region or subregion id. Region
// and subregion ids share one counter.
func (d *Dataset) NextRegionID() int {
	if d.nextRegionID > 0 {
		return d.nextRegionID
	}
	highest := -1
	for _, r := range d.Regions {
		if n, ok := parseRegionID(r.ID, "r"); ok && n > highest {
			highest = n
		}
		for _, s := range r.Subregions {
			if n, ok := parseRegionID(s.ID, "s"); ok && n > highest {
				highest = n
			}
		}
	}
	if highest < 0 {
		return firstRegionID
	}
	return highest + 1
}

func (d *Dataset) allocRegionID() int {
	id := d.NextRegionID()
	d.nextRegionID = id + 1
	return id
}

func parseRegionID(id, prefix string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Find returns the event with id.
func (d *Dataset) Find(id int) (Event, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.Events[i], true
	}
	return Event{}, false
}

func (d *Dataset) indexOf(id int) int {
	for i, e := range d.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Children returns the direct children of id in dataset order.
func (d *Dataset) Children(id int) []Event {
	var out []Event
	for _, e := range d.Events {
		if e.IsChildOf(id) {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) validate(draft Draft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(draft.Region) == "" || !KnownName(d.Regions, draft.Region) {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, draft.Region)
	}
	return nil
}

// Add creates an event from draft with a fresh id. parent, when set, must
// name an existing event.
func (d *Dataset) Add(draft Draft, parent *int) (Event, error) {
	if err := d.validate(draft); err != nil {
		return Event{}, err
	}
	if parent != nil {
		if _, ok := d.Find(*parent); !ok {
			return Event{}, fmt.Errorf("%w: parent %d", ErrEventNotFound, *parent)
		}
		parent = IntPtr(*parent)
	}
	e := Event{ID: d.allocEventID(), ParentID: parent}
	draft.apply(&e)
	d.Events = append(d.Events, e)
	return e, nil
}

// Update replaces the editable fields of event id.
func (d *Dataset) Update(id int, draft Draft) (Event, error) {
	i := d.indexOf(id)
	if i < 0 {
		return Event{}, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	if err := d.validate(draft); err != nil {
		return Event{}, err
	}
	draft.apply(&d.Events[i])
	return d.Events[i], nil
}

// Delete removes event id and, per cascade, the events below it. It returns
// every removed event, the requested one first.
func (d *Dataset) Delete(id int, cascade Cascade) ([]Event, error) {
	root, ok := d.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}

	doomed := map[int]struct{}{id: {}}
	switch cascade {
	case CascadeChildren:
		for _, e := range d.Events {
			if e.IsChildOf(id) {
				doomed[e.ID] = struct{}{}
			}
		}
	default:
		queue := []int{id}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, e := range d.Events {
				if _, seen := doomed[e.ID]; seen {
					continue
				}
				if e.IsChildOf(cur) {
					doomed[e.ID] = struct{}{}
					queue = append(queue, e.ID)
				}
			}
		}
	}

	removed := []Event{root}
	kept := make([]Event, 0, len(d.Events))
	for _, e := range d.Events {
		if _, gone := doomed[e.ID]; !gone {
			kept = append(kept, e)
		} else if e.ID != id {
			removed = append(removed, e)
		}
	}
	d.Events = kept
	return removed, nil
}

func (d *Dataset) checkNewName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if KnownName(d.Regions, name) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateRegion, name)
	}
	return name, nil
}

// AddRegion appends a main region with no subregions.
func (d *Dataset) AddRegion(name string) (Region, error) {
	name, err := d.checkNewName(name)
	if err != nil {
		return Region{}, err
	}
	r := Region{
		ID:         fmt.Sprintf("r%d", d.allocRegionID()),
		Name:       name,
		Subregions: []Subregion{},
	}
	d.Regions = append(d.Regions, r)
	return r, nil
}

// AddSubregion appends a subregion to the region with regionID.
func (d *Dataset) AddSubregion(regionID, name string) (Subregion, error) {
	i := d.regionIndex(regionID)
	if i < 0 {
		return Subregion{}, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	name, err := d.checkNewName(name)
	if err != nil {
		return Subregion{}, err
	}
	s := Subregion{ID: fmt.Sprintf("s%d", d.allocRegionID()), Name: name}
	d.Regions[i].Subregions = append(d.Regions[i].Subregions, s)
	return s, nil
}

// DeleteRegion removes a main region together with its subregions. Events
// filed under them are kept; they just stop matching any column.
func (d *Dataset) DeleteRegion(regionID string) (Region, error) {
	i := d.regionIndex(regionID)
	if i < 0 {
		return Region{}, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	r := d.Regions[i]
	d.Regions = append(d.Regions[:i:i], d.Regions[i+1:]...)
	return r, nil
}

// DeleteSubregion removes one subregion of regionID.
func (d *Dataset) DeleteSubregion(regionID, subID string) (Subregion, error) {
	i := d.regionIndex(regionID)
	if i < 0 {
		return Subregion{}, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	subs := d.Regions[i].Subregions
	for j, s := range subs {
		if s.ID == subID {
			d.Regions[i].Subregions = append(subs[:j:j], subs[j+1:]...)
			return s, nil
		}
	}
	return Subregion{}, fmt.Errorf("%w: %s/%s", ErrRegionNotFound, regionID, subID)
}

// Validate checks a dataset built outside the mutation methods, such as an
// imported file: event ids are positive and unique, region and subregion ids
// are set and unique, and names are unique across regions and subregions.
func (d *Dataset) Validate() error {
	ids := make(map[int]bool, len(d.Events))
	for _, e := range d.Events {
		if e.ID <= 0 {
			return fmt.Errorf("%w: event %q has id %d", ErrInvalidDataset, e.Name, e.ID)
		}
		if ids[e.ID] {
			return fmt.Errorf("%w: duplicate event id %d", ErrInvalidDataset, e.ID)
		}
		ids[e.ID] = true
	}

	regionIDs := make(map[string]bool)
	names := make(map[string]bool)
	check := func(id, name string) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: region %q has no id", ErrInvalidDataset, name)
		}
		if regionIDs[id] {
			return fmt.Errorf("%w: duplicate region id %q", ErrInvalidDataset, id)
		}
		regionIDs[id] = true
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: region %s: %w", ErrInvalidDataset, id, ErrEmptyName)
		}
		if names[name] {
			return fmt.Errorf("%w: %w: %q", ErrInvalidDataset, ErrDuplicateRegion, name)
		}
		names[name] = true
		return nil
	}
	for _, r := range d.Regions {
		if err := check(r.ID, r.Name); err != nil {
			return err
		}
		for _, s := range r.Subregions {
			if err := check(s.ID, s.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dataset) regionIndex(id string) int {
	for i, r := range d.Regions {
		if r.ID == id {
			return i
		}
	}
	return -1
}
