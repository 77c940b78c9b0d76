package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResponseKind enumerates the six answer types.
type ResponseKind string

const (
	KindYesNo ResponseKind = "yesNo"
	KindIcon  ResponseKind = "icon"
	KindScale ResponseKind = "scale"
	KindInt   ResponseKind = "int"
	KindFloat ResponseKind = "float"
	KindText  ResponseKind = "text"
)

// Kinds lists the answer types in picker order.
var Kinds = []ResponseKind{KindYesNo, KindIcon, KindScale, KindInt, KindFloat, KindText}

// ParseKind validates an answer-type name from a form or a stored document.
func ParseKind(s string) (ResponseKind, error) {
	for _, k := range Kinds {
		if s == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown answer type %q", s)
}

// ResponseSeries is a closed tagged union: exactly one of the day maps is
// in use, selected by Kind. Day maps are sparse; a day is present only if
// the user answered that day.
//
// Invariants: every Scale value lies in [ScaleMin, ScaleMax] at the time it
// is stored (bounds may later shrink past stored values, see OutOfRange);
// every Icon value is a valid index into Icons.
type ResponseSeries struct {
	Kind ResponseKind

	YesNo map[Day]bool

	Icons []string
	Icon  map[Day]int

	ScaleMin int
	ScaleMax int
	Scale    map[Day]int

	Int map[Day]int

	Float map[Day]float64

	Text map[Day]string
}

// NewResponseSeries returns an empty series of the given kind with default
// parameters (scale 1..5, no icons).
func NewResponseSeries(kind ResponseKind) ResponseSeries {
	s := ResponseSeries{Kind: kind}
	switch kind {
	case KindYesNo:
		s.YesNo = map[Day]bool{}
	case KindIcon:
		s.Icon = map[Day]int{}
	case KindScale:
		s.ScaleMin, s.ScaleMax = 1, 5
		s.Scale = map[Day]int{}
	case KindInt:
		s.Int = map[Day]int{}
	case KindFloat:
		s.Float = map[Day]float64{}
	case KindText:
		s.Text = map[Day]string{}
	}
	return s
}

// Count returns the number of recorded days.
func (s *ResponseSeries) Count() int {
	switch s.Kind {
	case KindYesNo:
		return len(s.YesNo)
	case KindIcon:
		return len(s.Icon)
	case KindScale:
		return len(s.Scale)
	case KindInt:
		return len(s.Int)
	case KindFloat:
		return len(s.Float)
	case KindText:
		return len(s.Text)
	}
	return 0
}

// Has reports whether the day has a recorded answer.
func (s *ResponseSeries) Has(day Day) bool {
	switch s.Kind {
	case KindYesNo:
		_, ok := s.YesNo[day]
		return ok
	case KindIcon:
		_, ok := s.Icon[day]
		return ok
	case KindScale:
		_, ok := s.Scale[day]
		return ok
	case KindInt:
		_, ok := s.Int[day]
		return ok
	case KindFloat:
		_, ok := s.Float[day]
		return ok
	case KindText:
		_, ok := s.Text[day]
		return ok
	}
	return false
}

// NumericSeries converts the series to a numeric day map for aggregation:
// yes/no becomes 0/1, icons become their index, scale and int their value.
// Text series return nil: text never participates in chartable sums.
func (s *ResponseSeries) NumericSeries() map[Day]float64 {
	switch s.Kind {
	case KindYesNo:
		out := make(map[Day]float64, len(s.YesNo))
		for d, v := range s.YesNo {
			if v {
				out[d] = 1
			} else {
				out[d] = 0
			}
		}
		return out
	case KindIcon:
		out := make(map[Day]float64, len(s.Icon))
		for d, v := range s.Icon {
			out[d] = float64(v)
		}
		return out
	case KindScale:
		out := make(map[Day]float64, len(s.Scale))
		for d, v := range s.Scale {
			out[d] = float64(v)
		}
		return out
	case KindInt:
		out := make(map[Day]float64, len(s.Int))
		for d, v := range s.Int {
			out[d] = float64(v)
		}
		return out
	case KindFloat:
		out := make(map[Day]float64, len(s.Float))
		for d, v := range s.Float {
			out[d] = v
		}
		return out
	}
	return nil
}

// Summable reports whether the series can appear in a chartable sum.
func (s *ResponseSeries) Summable() bool {
	return s.Kind != KindText
}

// DisplayValue renders the recorded answer for a day, if any.
func (s *ResponseSeries) DisplayValue(day Day) (string, bool) {
	switch s.Kind {
	case KindYesNo:
		v, ok := s.YesNo[day]
		if !ok {
			return "", false
		}
		if v {
			return "yes", true
		}
		return "no", true
	case KindIcon:
		v, ok := s.Icon[day]
		if !ok {
			return "", false
		}
		if v >= 0 && v < len(s.Icons) {
			return s.Icons[v], true
		}
		return strconv.Itoa(v), true
	case KindScale:
		v, ok := s.Scale[day]
		if !ok {
			return "", false
		}
		return strconv.Itoa(v), true
	case KindInt:
		v, ok := s.Int[day]
		if !ok {
			return "", false
		}
		return strconv.Itoa(v), true
	case KindFloat:
		v, ok := s.Float[day]
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case KindText:
		v, ok := s.Text[day]
		return v, ok
	}
	return "", false
}

// Set records the answer for a day from raw form input. An empty string
// clears the day. A non-empty unparsable or out-of-range value is rejected
// with a ValidationError and the series is left untouched; values are never
// clamped into range.
func (s *ResponseSeries) Set(day Day, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.Clear(day)
		return nil
	}

	switch s.Kind {
	case KindYesNo:
		v, err := parseYesNo(raw)
		if err != nil {
			return err
		}
		s.YesNo[day] = v
	case KindIcon:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return invalidf("answer", "not an icon index: %q", raw)
		}
		if v < 0 || v >= len(s.Icons) {
			return invalidf("answer", "icon index %d out of range (have %d icons)", v, len(s.Icons))
		}
		s.Icon[day] = v
	case KindScale:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return invalidf("answer", "not a whole number: %q", raw)
		}
		if v < s.ScaleMin || v > s.ScaleMax {
			return invalidf("answer", "%d outside scale %d..%d", v, s.ScaleMin, s.ScaleMax)
		}
		s.Scale[day] = v
	case KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return invalidf("answer", "not a whole number: %q", raw)
		}
		s.Int[day] = v
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return invalidf("answer", "not a number: %q", raw)
		}
		s.Float[day] = v
	case KindText:
		s.Text[day] = raw
	}
	return nil
}

func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, invalidf("answer", "not a yes/no answer: %q", raw)
}

// Clear removes the answer for a day, if any.
func (s *ResponseSeries) Clear(day Day) {
	switch s.Kind {
	case KindYesNo:
		delete(s.YesNo, day)
	case KindIcon:
		delete(s.Icon, day)
	case KindScale:
		delete(s.Scale, day)
	case KindInt:
		delete(s.Int, day)
	case KindFloat:
		delete(s.Float, day)
	case KindText:
		delete(s.Text, day)
	}
}

// OutOfRange reports whether the stored answer for a day lies outside the
// current scale bounds. Shrinking the bounds keeps existing answers (they
// are the user's history); this flags them for a display-only warning.
func (s *ResponseSeries) OutOfRange(day Day) bool {
	if s.Kind != KindScale {
		return false
	}
	v, ok := s.Scale[day]
	return ok && (v < s.ScaleMin || v > s.ScaleMax)
}

// ConvertParams carries the target-type parameters for a conversion.
type ConvertParams struct {
	Icons    []string
	ScaleMin int
	ScaleMax int
}

// Convert builds a series of the target kind from this one. Conversions
// are a finite pairwise table:
//
//   - same kind: identity (parameters unchanged)
//   - text -> anything numeric: drops all data
//   - anything -> text: answers rendered as strings
//   - numeric -> numeric: values carried over (yes/no becomes 0/1, floats
//     truncate to whole numbers); values that do not fit the target domain
//     (icon index past the icon list, scale value outside the new bounds)
//     are dropped rather than clamped.
func (s *ResponseSeries) Convert(to ResponseKind, params ConvertParams) ResponseSeries {
	if to == s.Kind {
		return *s
	}

	out := NewResponseSeries(to)
	switch to {
	case KindIcon:
		out.Icons = params.Icons
	case KindScale:
		out.ScaleMin, out.ScaleMax = params.ScaleMin, params.ScaleMax
		if out.ScaleMin > out.ScaleMax {
			out.ScaleMin, out.ScaleMax = out.ScaleMax, out.ScaleMin
		}
	}

	if to == KindText {
		for _, day := range s.days() {
			if v, ok := s.DisplayValue(day); ok {
				out.Text[day] = v
			}
		}
		return out
	}

	// Numeric targets start from the numeric view of the source; a text
	// source has none, so the conversion is lossy by design.
	for day, v := range s.NumericSeries() {
		switch to {
		case KindYesNo:
			out.YesNo[day] = v != 0
		case KindIcon:
			if idx := int(v); idx >= 0 && idx < len(out.Icons) {
				out.Icon[day] = idx
			}
		case KindScale:
			if iv := int(v); iv >= out.ScaleMin && iv <= out.ScaleMax {
				out.Scale[day] = iv
			}
		case KindInt:
			out.Int[day] = int(v)
		case KindFloat:
			out.Float[day] = v
		}
	}
	return out
}

func (s *ResponseSeries) days() []Day {
	var days []Day
	switch s.Kind {
	case KindYesNo:
		for d := range s.YesNo {
			days = append(days, d)
		}
	case KindIcon:
		for d := range s.Icon {
			days = append(days, d)
		}
	case KindScale:
		for d := range s.Scale {
			days = append(days, d)
		}
	case KindInt:
		for d := range s.Int {
			days = append(days, d)
		}
	case KindFloat:
		for d := range s.Float {
			days = append(days, d)
		}
	case KindText:
		for d := range s.Text {
			days = append(days, d)
		}
	}
	return days
}

// iconInUse reports whether any stored answer uses the given icon index.
func (s *ResponseSeries) iconInUse(index int) bool {
	for _, v := range s.Icon {
		if v == index {
			return true
		}
	}
	return false
}

// Wire shape: {"type": ..., per-kind fields}. Day-keyed maps marshal with
// stringified integer keys, matching the stored document format.

type responseSeriesJSON struct {
	Type  ResponseKind       `json:"type"`
	YesNo map[Day]bool       `json:"yesNo,omitempty"`
	Icons []string           `json:"icons,omitempty"`
	Icon  map[Day]int        `json:"icon,omitempty"`
	Min   *int               `json:"min,omitempty"`
	Max   *int               `json:"max,omitempty"`
	Scale map[Day]int        `json:"scale,omitempty"`
	Int   map[Day]int        `json:"int,omitempty"`
	Float map[Day]float64    `json:"float,omitempty"`
	Text  map[Day]string     `json:"text,omitempty"`
}

// MarshalJSON implements the tagged-union wire shape.
func (s ResponseSeries) MarshalJSON() ([]byte, error) {
	wire := responseSeriesJSON{Type: s.Kind}
	switch s.Kind {
	case KindYesNo:
		wire.YesNo = s.YesNo
	case KindIcon:
		wire.Icons = s.Icons
		wire.Icon = s.Icon
	case KindScale:
		min, max := s.ScaleMin, s.ScaleMax
		wire.Min, wire.Max = &min, &max
		wire.Scale = s.Scale
	case KindInt:
		wire.Int = s.Int
	case KindFloat:
		wire.Float = s.Float
	case KindText:
		wire.Text = s.Text
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the tagged-union wire shape.
func (s *ResponseSeries) UnmarshalJSON(data []byte) error {
	var wire responseSeriesJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	kind, err := ParseKind(string(wire.Type))
	if err != nil {
		return err
	}

	*s = NewResponseSeries(kind)
	switch kind {
	case KindYesNo:
		if wire.YesNo != nil {
			s.YesNo = wire.YesNo
		}
	case KindIcon:
		s.Icons = wire.Icons
		if wire.Icon != nil {
			s.Icon = wire.Icon
		}
	case KindScale:
		if wire.Min != nil {
			s.ScaleMin = *wire.Min
		}
		if wire.Max != nil {
			s.ScaleMax = *wire.Max
		}
		if wire.Scale != nil {
			s.Scale = wire.Scale
		}
	case KindInt:
		if wire.Int != nil {
			s.Int = wire.Int
		}
	case KindFloat:
		if wire.Float != nil {
			s.Float = wire.Float
		}
	case KindText:
		if wire.Text != nil {
			s.Text = wire.Text
		}
	}
	return nil
}
