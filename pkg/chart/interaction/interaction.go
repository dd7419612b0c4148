// Package interaction holds the chart interaction state machine.
//
// The geometry pipeline is pure and knows nothing about pointers or
// clicks; interaction state lives with the consumer and is advanced by a
// pure reducer over discrete UI events. Rendering effects (dimming,
// emphasis) are derived from the state on demand, never stored on the
// layout itself.
package interaction

// State is the committed interaction state. The zero value is the neutral
// state: no segment active, no segment hovered.
type State struct {
	// ActiveID is the selected segment, or "" when none is selected.
	ActiveID string `json:"active_id,omitempty"`

	// HoverID is the segment currently under the pointer. Hover is a
	// transient rendering hint; it never affects the committed layout.
	HoverID string `json:"-"`
}

// Event is a discrete UI event forwarded from the rendering surface.
type Event interface{ isEvent() }

// Click toggles selection of a segment.
type Click struct{ SegmentID string }

// HoverEnter marks the pointer entering a segment.
type HoverEnter struct{ SegmentID string }

// HoverLeave marks the pointer leaving the chart.
type HoverLeave struct{}

func (Click) isEvent()      {}
func (HoverEnter) isEvent() {}
func (HoverLeave) isEvent() {}

// Reduce advances the state by one event. It is a pure function: the input
// state is returned updated by value and never mutated.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Click:
		if s.ActiveID == e.SegmentID {
			s.ActiveID = ""
		} else {
			s.ActiveID = e.SegmentID
		}
	case HoverEnter:
		s.HoverID = e.SegmentID
	case HoverLeave:
		s.HoverID = ""
	}
	return s
}

// Emphasis is the derived rendering treatment for one segment.
type Emphasis int

const (
	// Normal renders the segment with no special treatment.
	Normal Emphasis = iota

	// Dimmed renders the segment at reduced opacity because another
	// segment is active.
	Dimmed

	// Emphasized renders the active segment with a stronger stroke and
	// scaled-up label.
	Emphasized
)

// EmphasisFor derives the rendering treatment for a segment id. When no
// segment is active everything renders normally; otherwise the active
// segment is emphasized and every other segment is dimmed.
func (s State) EmphasisFor(id string) Emphasis {
	if s.ActiveID == "" {
		return Normal
	}
	if s.ActiveID == id {
		return Emphasized
	}
	return Dimmed
}

// Hovered reports whether the segment is under the pointer.
func (s State) Hovered(id string) bool {
	return s.HoverID != "" && s.HoverID == id
}
