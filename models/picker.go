package models

import (
	"sort"
	"strings"
)

// Picker lists: the candidates offered when adding a reference somewhere.
// Canonical ordering everywhere is a case-insensitive sort on the display
// name, with the placeholder substituted for empty names.

func sortChartables(list []*Chartable) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].DisplayName()) < strings.ToLower(list[j].DisplayName())
	})
}

func sortTrackables(list []*Trackable) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].DisplayQuestion()) < strings.ToLower(list[j].DisplayQuestion())
	})
}

// AvailableChartables lists chartables not yet present in the chart,
// sorted for the add-entry picker. The first element is the default
// candidate when entering the adding state.
func (u *UserData) AvailableChartables(chart *LineChart) []*Chartable {
	var out []*Chartable
	for _, c := range u.Chartables {
		if !chart.references(c.ID) {
			out = append(out, c)
		}
	}
	sortChartables(out)
	return out
}

// AvailableTrackables lists summable trackables not yet charted ad-hoc in
// the chart, sorted for the add-entry picker.
func (u *UserData) AvailableTrackables(chart *LineChart) []*Trackable {
	var out []*Trackable
	for _, t := range u.Trackables {
		if t.Summable() && !chart.referencesTrackable(t.ID) {
			out = append(out, t)
		}
	}
	sortTrackables(out)
	return out
}

// SummableTrackables lists trackables that may be added to the chartable's
// sum: summable and not already summed there.
func (u *UserData) SummableTrackables(c *Chartable) []*Trackable {
	var out []*Trackable
	for _, t := range u.Trackables {
		if t.Summable() && c.sumIndex(t.ID) < 0 {
			out = append(out, t)
		}
	}
	sortTrackables(out)
	return out
}
