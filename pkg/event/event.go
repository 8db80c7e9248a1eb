// Package event defines the persisted timeline records: events and the
// region taxonomy they are filed under.
package event

import (
	"fmt"

	"tableflip.dev/annals/pkg/timeline"
)

// Event is one named span of years in a region.
type Event struct {
	ID          int    `json:"id" yaml:"id"`
	ParentID    *int   `json:"parentId" yaml:"parentId"`
	Name        string `json:"name" yaml:"name"`
	Start       int    `json:"start" yaml:"start"`
	End         int    `json:"end" yaml:"end"`
	Region      string `json:"region" yaml:"region"`
	Description string `json:"description" yaml:"description"`
}

// Years implements timeline.Ranged.
func (e Event) Years() (int, int) { return e.Start, e.End }

// Column implements timeline.Item.
func (e Event) Column() string { return e.Region }

// HasParent reports whether e is a sub-event.
func (e Event) HasParent() bool { return e.ParentID != nil }

// IsChildOf reports whether e's parent is id.
func (e Event) IsChildOf(id int) bool {
	return e.ParentID != nil && *e.ParentID == id
}

// Period renders the event's span for display.
func (e Event) Period() string {
	return timeline.FormatSpan(e.Start, e.End)
}

func (e Event) String() string {
	return fmt.Sprintf("#%d %s (%s) [%s]", e.ID, e.Name, e.Period(), e.Region)
}

// Draft carries the user-editable fields of an event.
type Draft struct {
	Name        string
	Start       int
	End         int
	Region      string
	Description string
}

// DraftOf copies the editable fields of e.
func DraftOf(e Event) Draft {
	return Draft{
		Name:        e.Name,
		Start:       e.Start,
		End:         e.End,
		Region:      e.Region,
		Description: e.Description,
	}
}

func (d Draft) apply(e *Event) {
	e.Name = d.Name
	e.Start = d.Start
	e.End = d.End
	e.Region = d.Region
	e.Description = d.Description
}

// IntPtr is a helper for building parent references.
func IntPtr(v int) *int { return &v }

func clone(e Event) Event {
	if e.ParentID != nil {
		e.ParentID = IntPtr(*e.ParentID)
	}
	return e
}
