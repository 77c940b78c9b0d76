package models

// SumTerm is one weighted trackable reference in a chartable's sum. The
// multiplier is always > 0; zero or negative values are rejected at edit
// time and never stored.
type SumTerm struct {
	TrackableID TrackableID `json:"trackableId"`
	Multiplier  float64     `json:"multiplier"`
}

// Chartable is a derived aggregate metric: an ordered weighted sum of
// trackables, optionally inverted, optionally with an explicit colour.
// A nil Colour means "derive from the first summed trackable".
type Chartable struct {
	ID       ChartableID `json:"id"`
	Name     string      `json:"name"`
	Colour   *Colour     `json:"colour"`
	Inverted bool        `json:"inverted"`
	Sum      []SumTerm   `json:"sum"`
}

// NoNamePlaceholder substitutes for an empty name anywhere it is displayed
// or sorted. The stored name stays empty.
const NoNamePlaceholder = "[no name]"

// DisplayName returns the name, or the placeholder when empty.
func (c *Chartable) DisplayName() string {
	if c.Name == "" {
		return NoNamePlaceholder
	}
	return c.Name
}

// sumIndex returns the position of a trackable in the sum, or -1.
func (c *Chartable) sumIndex(id TrackableID) int {
	for i, term := range c.Sum {
		if term.TrackableID == id {
			return i
		}
	}
	return -1
}

// HasExplicitColour reports whether a stored colour would actually be used:
// single-term chartables always take the summed trackable's colour, so an
// explicit colour is only meaningful with two or more terms.
func (c *Chartable) HasExplicitColour() bool {
	return c.Colour != nil && len(c.Sum) >= 2
}
