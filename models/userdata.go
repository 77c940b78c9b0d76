package models

import "math"

// UserData is the root aggregate: all three stores plus the id counters.
// It is loaded whole from storage at startup and saved whole after every
// successful edit. There is exactly one writer; every edit method below
// validates completely before touching any store, so a returned error
// always means "nothing changed".
type UserData struct {
	Trackables []*Trackable `json:"trackables"`
	Chartables []*Chartable `json:"chartables"`
	Charts     []*LineChart `json:"charts"`

	NextTrackableID TrackableID `json:"nextTrackableId"`
	NextChartableID ChartableID `json:"nextChartableId"`
	NextChartID     ChartID     `json:"nextChartId"`
}

// NewUserData returns an empty document.
func NewUserData() *UserData {
	return &UserData{
		Trackables:      []*Trackable{},
		Chartables:      []*Chartable{},
		Charts:          []*LineChart{},
		NextTrackableID: 1,
		NextChartableID: 1,
		NextChartID:     1,
	}
}

// TrackableByID looks up a trackable, or nil.
func (u *UserData) TrackableByID(id TrackableID) *Trackable {
	for _, t := range u.Trackables {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ChartableByID looks up a chartable, or nil.
func (u *UserData) ChartableByID(id ChartableID) *Chartable {
	for _, c := range u.Chartables {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ChartByID looks up a chart, or nil.
func (u *UserData) ChartByID(id ChartID) *LineChart {
	for _, lc := range u.Charts {
		if lc.ID == id {
			return lc
		}
	}
	return nil
}

// --- Trackable edits ---

// AddTrackable appends a new trackable: empty question, yes/no responses,
// next palette colour.
func (u *UserData) AddTrackable() *Trackable {
	t := &Trackable{
		ID:        u.NextTrackableID,
		Colour:    Colours[len(u.Trackables)%len(Colours)],
		Responses: NewResponseSeries(KindYesNo),
	}
	u.NextTrackableID++
	u.Trackables = append(u.Trackables, t)
	return t
}

// SetQuestion sets the question text. Empty is allowed; display code
// substitutes the placeholder.
func (u *UserData) SetQuestion(id TrackableID, question string) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	t.Question = question
	return nil
}

// SetTrackableColour sets the trackable's own colour.
func (u *UserData) SetTrackableColour(id TrackableID, colour Colour) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if _, err := ParseColour(string(colour)); err != nil {
		return invalidf("colour", "%v", err)
	}
	t.Colour = colour
	return nil
}

// SetResponse records the answer for a day from raw input. Empty input
// clears the day; invalid input is rejected without touching the series.
func (u *UserData) SetResponse(id TrackableID, day Day, raw string) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	return t.Responses.Set(day, raw)
}

// ClearResponse removes the answer for a day.
func (u *UserData) ClearResponse(id TrackableID, day Day) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	t.Responses.Clear(day)
	return nil
}

// ConvertTrackable changes the answer type, carrying responses across per
// the conversion table. Converting a summed trackable to text would break
// the "text never participates in sums" rule, so it is refused.
func (u *UserData) ConvertTrackable(id TrackableID, to ResponseKind, params ConvertParams) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if to == KindText && u.trackableSummed(id) {
		return invalidf("type", "trackable is part of a chartable sum and cannot become text")
	}
	t.Responses = t.Responses.Convert(to, params)
	return nil
}

// SetScaleMin changes the lower scale bound. Existing out-of-range
// responses are kept; OutOfRange flags them for display.
func (u *UserData) SetScaleMin(id TrackableID, min int) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if t.Responses.Kind != KindScale {
		return invalidf("scale", "trackable is not a scale")
	}
	if min > t.Responses.ScaleMax {
		return invalidf("scale", "minimum %d above maximum %d", min, t.Responses.ScaleMax)
	}
	t.Responses.ScaleMin = min
	return nil
}

// SetScaleMax changes the upper scale bound.
func (u *UserData) SetScaleMax(id TrackableID, max int) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if t.Responses.Kind != KindScale {
		return invalidf("scale", "trackable is not a scale")
	}
	if max < t.Responses.ScaleMin {
		return invalidf("scale", "maximum %d below minimum %d", max, t.Responses.ScaleMin)
	}
	t.Responses.ScaleMax = max
	return nil
}

// AddIcon appends an icon choice to an icon trackable.
func (u *UserData) AddIcon(id TrackableID, name string) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if t.Responses.Kind != KindIcon {
		return invalidf("icon", "trackable is not an icon question")
	}
	if name == "" {
		return invalidf("icon", "icon name is empty")
	}
	t.Responses.Icons = append(t.Responses.Icons, name)
	return nil
}

// RemoveLastIcon removes the final icon choice. Only the last index may be
// removed, and only while no stored response uses it, so historical
// answers are never silently invalidated.
func (u *UserData) RemoveLastIcon(id TrackableID) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if t.Responses.Kind != KindIcon {
		return invalidf("icon", "trackable is not an icon question")
	}
	last := len(t.Responses.Icons) - 1
	if last < 0 {
		return invalidf("icon", "no icons to remove")
	}
	if t.Responses.iconInUse(last) {
		return invalidf("icon", "icon %q is used by recorded answers", t.Responses.Icons[last])
	}
	t.Responses.Icons = t.Responses.Icons[:last]
	return nil
}

// DeleteTrackable removes a trackable. Refused while it has any recorded
// responses or is referenced by any chartable sum or chart entry.
func (u *UserData) DeleteTrackable(id TrackableID) error {
	t := u.TrackableByID(id)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if t.Responses.Count() > 0 {
		return ErrHasResponses
	}
	if u.trackableSummed(id) || u.trackableCharted(id) {
		return ErrTrackableInUse
	}
	for i, existing := range u.Trackables {
		if existing.ID == id {
			u.Trackables = append(u.Trackables[:i], u.Trackables[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteTrackableAllowed reports whether DeleteTrackable would succeed,
// so the UI can disable the button instead of merely ignoring the click.
func (u *UserData) DeleteTrackableAllowed(id TrackableID) bool {
	t := u.TrackableByID(id)
	return t != nil && t.Responses.Count() == 0 &&
		!u.trackableSummed(id) && !u.trackableCharted(id)
}

// DeleteChartableAllowed reports whether DeleteChartable would succeed.
func (u *UserData) DeleteChartableAllowed(id ChartableID) bool {
	if u.ChartableByID(id) == nil {
		return false
	}
	for _, lc := range u.Charts {
		if lc.references(id) {
			return false
		}
	}
	return true
}

func (u *UserData) trackableSummed(id TrackableID) bool {
	for _, c := range u.Chartables {
		if c.sumIndex(id) >= 0 {
			return true
		}
	}
	return false
}

func (u *UserData) trackableCharted(id TrackableID) bool {
	for _, lc := range u.Charts {
		if lc.referencesTrackable(id) {
			return true
		}
	}
	return false
}

// --- Chartable edits ---

// AddChartable appends a new chartable with an empty name and empty sum.
func (u *UserData) AddChartable() *Chartable {
	c := &Chartable{
		ID:  u.NextChartableID,
		Sum: []SumTerm{},
	}
	u.NextChartableID++
	u.Chartables = append(u.Chartables, c)
	return c
}

// SetChartableName sets the name. Empty is allowed.
func (u *UserData) SetChartableName(id ChartableID, name string) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	c.Name = name
	return nil
}

// SetChartableColour sets the explicit colour override. Only meaningful
// with two or more sum terms; single-term chartables always take the
// summed trackable's colour, so the edit is refused there.
func (u *UserData) SetChartableColour(id ChartableID, colour Colour) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	if _, err := ParseColour(string(colour)); err != nil {
		return invalidf("colour", "%v", err)
	}
	if len(c.Sum) < 2 {
		return invalidf("colour", "colour follows the summed trackable until the sum has at least two entries")
	}
	c.Colour = &colour
	return nil
}

// ClearChartableColour reverts to the derived colour.
func (u *UserData) ClearChartableColour(id ChartableID) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	c.Colour = nil
	return nil
}

// SetInverted toggles inversion of the summed series.
func (u *UserData) SetInverted(id ChartableID, inverted bool) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	c.Inverted = inverted
	return nil
}

// AddSumTerm appends a trackable to the sum with multiplier 1. The
// trackable must exist, be summable (not text), and not already be summed.
func (u *UserData) AddSumTerm(id ChartableID, trackableID TrackableID) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	t := u.TrackableByID(trackableID)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if !t.Summable() {
		return invalidf("trackable", "text questions cannot be summed")
	}
	if c.sumIndex(trackableID) >= 0 {
		return invalidf("trackable", "%q is already part of the sum", t.DisplayQuestion())
	}
	c.Sum = append(c.Sum, SumTerm{TrackableID: trackableID, Multiplier: 1})
	return nil
}

// ReplaceSumTerm swaps the trackable a term points at, in place, keeping
// the term's multiplier and position.
func (u *UserData) ReplaceSumTerm(id ChartableID, from, to TrackableID) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	idx := c.sumIndex(from)
	if idx < 0 {
		return ErrNoSuchTrackable
	}
	if to == from {
		return nil
	}
	t := u.TrackableByID(to)
	if t == nil {
		return ErrNoSuchTrackable
	}
	if !t.Summable() {
		return invalidf("trackable", "text questions cannot be summed")
	}
	if c.sumIndex(to) >= 0 {
		return invalidf("trackable", "%q is already part of the sum", t.DisplayQuestion())
	}
	c.Sum[idx].TrackableID = to
	return nil
}

// RemoveSumTerm drops a trackable from the sum.
func (u *UserData) RemoveSumTerm(id ChartableID, trackableID TrackableID) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	idx := c.sumIndex(trackableID)
	if idx < 0 {
		return ErrNoSuchTrackable
	}
	c.Sum = append(c.Sum[:idx], c.Sum[idx+1:]...)
	return nil
}

// SetMultiplier sets a term's weight. Must be > 0; zero, negative, and
// non-finite values are rejected and never stored.
func (u *UserData) SetMultiplier(id ChartableID, trackableID TrackableID, multiplier float64) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	idx := c.sumIndex(trackableID)
	if idx < 0 {
		return ErrNoSuchTrackable
	}
	if multiplier <= 0 || math.IsInf(multiplier, 0) || math.IsNaN(multiplier) {
		return invalidf("multiplier", "must be greater than zero")
	}
	c.Sum[idx].Multiplier = multiplier
	return nil
}

// DeleteChartable removes a chartable. Refused while any chart references
// it; its sum terms are only references, so they need no cleanup.
func (u *UserData) DeleteChartable(id ChartableID) error {
	c := u.ChartableByID(id)
	if c == nil {
		return ErrNoSuchChartable
	}
	for _, lc := range u.Charts {
		if lc.references(id) {
			return ErrChartableInUse
		}
	}
	for i, existing := range u.Chartables {
		if existing.ID == id {
			u.Chartables = append(u.Chartables[:i], u.Chartables[i+1:]...)
			break
		}
	}
	return nil
}

// --- Chart edits ---

// AddChart appends a new chart with an empty name and no entries.
func (u *UserData) AddChart() *LineChart {
	lc := &LineChart{
		ID:      u.NextChartID,
		Entries: []ChartEntry{},
	}
	u.NextChartID++
	u.Charts = append(u.Charts, lc)
	return lc
}

// SetChartName sets the name. Empty is allowed.
func (u *UserData) SetChartName(id ChartID, name string) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	lc.Name = name
	return nil
}

// SetFillLines toggles filling under the curves.
func (u *UserData) SetFillLines(id ChartID, fill bool) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	lc.FillLines = fill
	return nil
}

// AddChartEntry prepends a visible entry, so new data sets show up at the
// top of the list. Each ref may appear at most once per chart.
func (u *UserData) AddChartEntry(id ChartID, ref DataRef) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	if err := u.validateRef(ref); err != nil {
		return err
	}
	if lc.entryIndex(ref) >= 0 {
		return invalidf("entry", "already part of this chart")
	}
	entry := ChartEntry{Ref: ref, Visible: true}
	lc.Entries = append([]ChartEntry{entry}, lc.Entries...)
	return nil
}

func (u *UserData) validateRef(ref DataRef) error {
	switch ref.Kind {
	case RefChartable:
		if u.ChartableByID(ref.ChartableID) == nil {
			return ErrNoSuchChartable
		}
	case RefTrackable:
		t := u.TrackableByID(ref.TrackableID)
		if t == nil {
			return ErrNoSuchTrackable
		}
		if !t.Summable() {
			return invalidf("trackable", "text questions cannot be charted")
		}
		if ref.Multiplier <= 0 || math.IsInf(ref.Multiplier, 0) || math.IsNaN(ref.Multiplier) {
			return invalidf("multiplier", "must be greater than zero")
		}
	default:
		return invalidf("entry", "unknown reference kind %q", ref.Kind)
	}
	return nil
}

// RemoveChartEntry removes one entry from one chart. This is the
// "remove from this chart" case: other charts referencing the same data
// set are untouched.
func (u *UserData) RemoveChartEntry(id ChartID, ref DataRef) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	idx := lc.entryIndex(ref)
	if idx < 0 {
		return ErrNoSuchEntry
	}
	lc.Entries = append(lc.Entries[:idx], lc.Entries[idx+1:]...)
	return nil
}

// MoveEntryUp swaps the entry with its predecessor. Moving the first entry
// up is a no-op, so a double-invoked disabled button stays safe.
func (u *UserData) MoveEntryUp(id ChartID, index int) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	if index < 0 || index >= len(lc.Entries) {
		return ErrNoSuchEntry
	}
	if index == 0 {
		return nil
	}
	lc.Entries[index-1], lc.Entries[index] = lc.Entries[index], lc.Entries[index-1]
	return nil
}

// MoveEntryDown swaps the entry with its successor. Moving the last entry
// down is a no-op.
func (u *UserData) MoveEntryDown(id ChartID, index int) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	if index < 0 || index >= len(lc.Entries) {
		return ErrNoSuchEntry
	}
	if index == len(lc.Entries)-1 {
		return nil
	}
	lc.Entries[index], lc.Entries[index+1] = lc.Entries[index+1], lc.Entries[index]
	return nil
}

// SetEntryVisible toggles an entry's visibility without moving it.
func (u *UserData) SetEntryVisible(id ChartID, ref DataRef, visible bool) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	idx := lc.entryIndex(ref)
	if idx < 0 {
		return ErrNoSuchEntry
	}
	lc.Entries[idx].Visible = visible
	return nil
}

// SetEntryMultiplier sets the weight of an ad-hoc trackable entry.
func (u *UserData) SetEntryMultiplier(id ChartID, ref DataRef, multiplier float64) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	idx := lc.entryIndex(ref)
	if idx < 0 {
		return ErrNoSuchEntry
	}
	if lc.Entries[idx].Ref.Kind != RefTrackable {
		return invalidf("multiplier", "only trackable entries carry their own multiplier")
	}
	if multiplier <= 0 || math.IsInf(multiplier, 0) || math.IsNaN(multiplier) {
		return invalidf("multiplier", "must be greater than zero")
	}
	lc.Entries[idx].Ref.Multiplier = multiplier
	return nil
}

// SetEntryInverted toggles inversion of an ad-hoc trackable entry.
func (u *UserData) SetEntryInverted(id ChartID, ref DataRef, inverted bool) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	idx := lc.entryIndex(ref)
	if idx < 0 {
		return ErrNoSuchEntry
	}
	if lc.Entries[idx].Ref.Kind != RefTrackable {
		return invalidf("inverted", "only trackable entries carry their own inversion")
	}
	lc.Entries[idx].Ref.Inverted = inverted
	return nil
}

// ConvertEntry replaces an entry's reference in place, keeping its
// position and visibility. Used to switch between a chartable entry and an
// ad-hoc trackable entry without losing list order.
func (u *UserData) ConvertEntry(id ChartID, index int, ref DataRef) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	if index < 0 || index >= len(lc.Entries) {
		return ErrNoSuchEntry
	}
	if err := u.validateRef(ref); err != nil {
		return err
	}
	if dup := lc.entryIndex(ref); dup >= 0 && dup != index {
		return invalidf("entry", "already part of this chart")
	}
	lc.Entries[index].Ref = ref
	return nil
}

// DeleteChart removes a chart. Nothing references charts, so this always
// succeeds for an existing id.
func (u *UserData) DeleteChart(id ChartID) error {
	lc := u.ChartByID(id)
	if lc == nil {
		return ErrNoSuchChart
	}
	for i, existing := range u.Charts {
		if existing.ID == id {
			u.Charts = append(u.Charts[:i], u.Charts[i+1:]...)
			break
		}
	}
	return nil
}
