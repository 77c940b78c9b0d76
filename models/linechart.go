package models

import (
	"encoding/json"
	"fmt"
)

// RefKind tags a chart entry as a chartable reference or an ad-hoc
// trackable reference.
type RefKind string

const (
	RefChartable RefKind = "chartable"
	RefTrackable RefKind = "trackable"
)

// DataRef is what a chart entry points at: either a chartable, or a raw
// trackable carrying its own multiplier and inversion flag.
type DataRef struct {
	Kind RefKind

	// Chartable reference.
	ChartableID ChartableID

	// Ad-hoc trackable reference.
	TrackableID TrackableID
	Multiplier  float64
	Inverted    bool
}

// ChartableRef builds a reference to a chartable.
func ChartableRef(id ChartableID) DataRef {
	return DataRef{Kind: RefChartable, ChartableID: id}
}

// TrackableRef builds an ad-hoc trackable reference with multiplier 1.
func TrackableRef(id TrackableID) DataRef {
	return DataRef{Kind: RefTrackable, TrackableID: id, Multiplier: 1}
}

// Equal reports whether two refs point at the same thing; multiplier and
// inversion do not participate, so a chart cannot hold the same trackable
// twice with different weights.
func (r DataRef) Equal(other DataRef) bool {
	if r.Kind != other.Kind {
		return false
	}
	if r.Kind == RefChartable {
		return r.ChartableID == other.ChartableID
	}
	return r.TrackableID == other.TrackableID
}

// ChartEntry is one positioned, toggleable data set in a chart.
type ChartEntry struct {
	Ref     DataRef
	Visible bool
}

// LineChart is a named, ordered collection of chartables and ad-hoc
// trackables displayed together. Entry order is stored state: it drives
// both list order in the UI and series z-order when rendering.
type LineChart struct {
	ID        ChartID      `json:"id"`
	Name      string       `json:"name"`
	FillLines bool         `json:"fillLines"`
	Entries   []ChartEntry `json:"entries"`
}

// DisplayName returns the name, or the placeholder when empty.
func (lc *LineChart) DisplayName() string {
	if lc.Name == "" {
		return NoNamePlaceholder
	}
	return lc.Name
}

// entryIndex returns the position of the entry with the given ref, or -1.
func (lc *LineChart) entryIndex(ref DataRef) int {
	for i, e := range lc.Entries {
		if e.Ref.Equal(ref) {
			return i
		}
	}
	return -1
}

// references reports whether any entry points at the chartable.
func (lc *LineChart) references(id ChartableID) bool {
	return lc.entryIndex(ChartableRef(id)) >= 0
}

// referencesTrackable reports whether any entry is an ad-hoc reference to
// the trackable.
func (lc *LineChart) referencesTrackable(id TrackableID) bool {
	return lc.entryIndex(TrackableRef(id)) >= 0
}

// CanMoveUp reports whether the entry at index can move toward the front.
// The UI disables the button on false; MoveEntryUp is still a safe no-op.
func (lc *LineChart) CanMoveUp(index int) bool {
	return index > 0 && index < len(lc.Entries)
}

// CanMoveDown reports whether the entry at index can move toward the back.
func (lc *LineChart) CanMoveDown(index int) bool {
	return index >= 0 && index < len(lc.Entries)-1
}

// Wire shape for entries: tagged by kind, visibility alongside.

type chartEntryJSON struct {
	Kind        RefKind      `json:"kind"`
	ChartableID *ChartableID `json:"chartableId,omitempty"`
	TrackableID *TrackableID `json:"trackableId,omitempty"`
	Multiplier  *float64     `json:"multiplier,omitempty"`
	Inverted    *bool        `json:"inverted,omitempty"`
	Visible     bool         `json:"visible"`
}

// MarshalJSON implements the tagged wire shape for chart entries.
func (e ChartEntry) MarshalJSON() ([]byte, error) {
	wire := chartEntryJSON{Kind: e.Ref.Kind, Visible: e.Visible}
	switch e.Ref.Kind {
	case RefChartable:
		id := e.Ref.ChartableID
		wire.ChartableID = &id
	case RefTrackable:
		id := e.Ref.TrackableID
		mult := e.Ref.Multiplier
		inv := e.Ref.Inverted
		wire.TrackableID = &id
		wire.Multiplier = &mult
		wire.Inverted = &inv
	default:
		return nil, fmt.Errorf("unknown chart entry kind %q", e.Ref.Kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the tagged wire shape for chart entries.
func (e *ChartEntry) UnmarshalJSON(data []byte) error {
	var wire chartEntryJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case RefChartable:
		if wire.ChartableID == nil {
			return fmt.Errorf("chartable entry missing chartableId")
		}
		e.Ref = ChartableRef(*wire.ChartableID)
	case RefTrackable:
		if wire.TrackableID == nil {
			return fmt.Errorf("trackable entry missing trackableId")
		}
		e.Ref = TrackableRef(*wire.TrackableID)
		if wire.Multiplier != nil {
			e.Ref.Multiplier = *wire.Multiplier
		}
		if wire.Inverted != nil {
			e.Ref.Inverted = *wire.Inverted
		}
	default:
		return fmt.Errorf("unknown chart entry kind %q", wire.Kind)
	}
	e.Visible = wire.Visible
	return nil
}
