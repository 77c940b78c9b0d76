package models

// Trackable is a user-defined daily question with a typed response series.
type Trackable struct {
	ID        TrackableID    `json:"id"`
	Question  string         `json:"question"`
	Colour    Colour         `json:"colour"`
	Responses ResponseSeries `json:"data"`
}

// NoQuestionPlaceholder substitutes for an empty question anywhere it is
// displayed or sorted. The stored question stays empty.
const NoQuestionPlaceholder = "[no question]"

// DisplayQuestion returns the question, or the placeholder when empty.
func (t *Trackable) DisplayQuestion() string {
	if t.Question == "" {
		return NoQuestionPlaceholder
	}
	return t.Question
}

// NumericSeries converts the responses to a numeric day map; nil for text
// trackables, which cannot participate in chartable sums.
func (t *Trackable) NumericSeries() map[Day]float64 {
	return t.Responses.NumericSeries()
}

// Summable reports whether the trackable may appear in a chartable sum.
func (t *Trackable) Summable() bool {
	return t.Responses.Summable()
}
