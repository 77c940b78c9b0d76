package models

import "github.com/rs/zerolog/log"

// The aggregation engine. Everything here is a pure recomputation from the
// stores: results are caches, invalidated by any write, never persisted.
// Dangling references should be impossible (the edit protocol refuses the
// deletes that would create them) but are skipped and logged rather than
// crashing the page.

// ResolveColour returns the chartable's effective colour.
//
// A single-term chartable always takes the summed trackable's colour; an
// explicit chartable colour only applies with two or more terms, falling
// back to the first term's trackable, then to the neutral default.
func (u *UserData) ResolveColour(c *Chartable) Colour {
	if len(c.Sum) == 0 {
		return DefaultColour
	}
	if len(c.Sum) >= 2 && c.Colour != nil {
		return *c.Colour
	}
	t := u.TrackableByID(c.Sum[0].TrackableID)
	if t == nil {
		log.Warn().Int("chartable", int(c.ID)).Int("trackable", int(c.Sum[0].TrackableID)).
			Msg("chartable sum references a missing trackable")
		return DefaultColour
	}
	return t.Colour
}

// ComputeSeries returns the chartable's per-day aggregate: the day-wise
// sparse union with + of each summed trackable's numeric series scaled by
// its multiplier. A day present in only some terms contributes only those
// terms' values; there is no zero-fill. Inversion, when set, reflects the
// already-summed series about its own observed maximum.
func (u *UserData) ComputeSeries(c *Chartable) map[Day]float64 {
	series := map[Day]float64{}
	for _, term := range c.Sum {
		t := u.TrackableByID(term.TrackableID)
		if t == nil {
			log.Warn().Int("chartable", int(c.ID)).Int("trackable", int(term.TrackableID)).
				Msg("chartable sum references a missing trackable")
			continue
		}
		for day, v := range t.NumericSeries() {
			series[day] += v * term.Multiplier
		}
	}
	if c.Inverted {
		invertSeries(series)
	}
	return series
}

// invertSeries replaces each value v with max-v, max taken over the
// present days. Empty series have no maximum, so inversion is a no-op.
func invertSeries(series map[Day]float64) {
	if len(series) == 0 {
		return
	}
	first := true
	var max float64
	for _, v := range series {
		if first || v > max {
			max = v
			first = false
		}
	}
	for day, v := range series {
		series[day] = max - v
	}
}

// RefSeries computes the per-day series behind a chart entry: a chartable
// entry delegates to ComputeSeries, an ad-hoc trackable entry scales the
// trackable's numeric series by the entry's own multiplier and applies the
// entry's own inversion.
func (u *UserData) RefSeries(ref DataRef) map[Day]float64 {
	switch ref.Kind {
	case RefChartable:
		c := u.ChartableByID(ref.ChartableID)
		if c == nil {
			log.Warn().Int("chartable", int(ref.ChartableID)).Msg("chart references a missing chartable")
			return map[Day]float64{}
		}
		return u.ComputeSeries(c)
	case RefTrackable:
		t := u.TrackableByID(ref.TrackableID)
		if t == nil {
			log.Warn().Int("trackable", int(ref.TrackableID)).Msg("chart references a missing trackable")
			return map[Day]float64{}
		}
		series := map[Day]float64{}
		for day, v := range t.NumericSeries() {
			series[day] = v * ref.Multiplier
		}
		if ref.Inverted {
			invertSeries(series)
		}
		return series
	}
	return map[Day]float64{}
}

// RefColour resolves the stored colour behind a chart entry.
func (u *UserData) RefColour(ref DataRef) Colour {
	switch ref.Kind {
	case RefChartable:
		if c := u.ChartableByID(ref.ChartableID); c != nil {
			return u.ResolveColour(c)
		}
	case RefTrackable:
		if t := u.TrackableByID(ref.TrackableID); t != nil {
			return t.Colour
		}
	}
	return DefaultColour
}

// RefLabel returns the display name behind a chart entry.
func (u *UserData) RefLabel(ref DataRef) string {
	switch ref.Kind {
	case RefChartable:
		if c := u.ChartableByID(ref.ChartableID); c != nil {
			return c.DisplayName()
		}
		return NoNamePlaceholder
	case RefTrackable:
		if t := u.TrackableByID(ref.TrackableID); t != nil {
			return t.DisplayQuestion()
		}
		return NoQuestionPlaceholder
	}
	return NoNamePlaceholder
}

// EffectiveHex returns the render colour for an entry, applying the
// view-layer dim overlay: hidden entries are dimmed, and while some entry
// is hovered or selected every other entry is dimmed. This never touches
// the stored colour and is re-derived on every render.
func (u *UserData) EffectiveHex(entry ChartEntry, focus *DataRef) string {
	if !entry.Visible {
		return dimHex
	}
	if focus != nil && !entry.Ref.Equal(*focus) {
		return dimHex
	}
	return u.RefColour(entry.Ref).Hex()
}
