package models

import (
	"encoding/json"
	"fmt"
)

// Encode serializes the whole document. Indented, matching the on-disk
// format the storage backends persist.
func (u *UserData) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user data: %w", err)
	}
	return data, nil
}

// DecodeUserData parses a stored document and repairs anything a decoder
// can leave nil, so the edit protocol never has to check for missing maps
// or stale id counters.
func DecodeUserData(data []byte) (*UserData, error) {
	var u UserData
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	if u.Trackables == nil {
		u.Trackables = []*Trackable{}
	}
	if u.Chartables == nil {
		u.Chartables = []*Chartable{}
	}
	if u.Charts == nil {
		u.Charts = []*LineChart{}
	}

	// Colour names are a closed enum; a document carrying an unknown one
	// is corrupt and must fail the load, not render grey.
	for _, t := range u.Trackables {
		if _, err := ParseColour(string(t.Colour)); err != nil {
			return nil, fmt.Errorf("trackable %d: %w", t.ID, err)
		}
	}
	for _, c := range u.Chartables {
		if c.Colour != nil {
			if _, err := ParseColour(string(*c.Colour)); err != nil {
				return nil, fmt.Errorf("chartable %d: %w", c.ID, err)
			}
		}
	}

	// Id counters must stay ahead of every stored id; a hand-edited or
	// older document may have stale ones.
	for _, t := range u.Trackables {
		if t.ID >= u.NextTrackableID {
			u.NextTrackableID = t.ID + 1
		}
	}
	for _, c := range u.Chartables {
		if c.ID >= u.NextChartableID {
			u.NextChartableID = c.ID + 1
		}
	}
	for _, lc := range u.Charts {
		if lc.ID >= u.NextChartID {
			u.NextChartID = lc.ID + 1
		}
	}
	if u.NextTrackableID < 1 {
		u.NextTrackableID = 1
	}
	if u.NextChartableID < 1 {
		u.NextChartableID = 1
	}
	if u.NextChartID < 1 {
		u.NextChartID = 1
	}
	return &u, nil
}
