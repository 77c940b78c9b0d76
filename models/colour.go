package models

import "fmt"

// Colour is a small closed palette, serialized by name.
type Colour string

const (
	ColourRed    Colour = "red"
	ColourOrange Colour = "orange"
	ColourYellow Colour = "yellow"
	ColourGreen  Colour = "green"
	ColourTeal   Colour = "teal"
	ColourBlue   Colour = "blue"
	ColourPurple Colour = "purple"
	ColourPink   Colour = "pink"
	ColourGrey   Colour = "grey"
)

// DefaultColour is the neutral fallback used when no colour can be
// resolved from a chartable's summed trackables.
const DefaultColour = ColourGrey

// Colours lists the palette in picker order.
var Colours = []Colour{
	ColourRed, ColourOrange, ColourYellow, ColourGreen, ColourTeal,
	ColourBlue, ColourPurple, ColourPink, ColourGrey,
}

var colourHex = map[Colour]string{
	ColourRed:    "#e45649",
	ColourOrange: "#e8853d",
	ColourYellow: "#d8b40c",
	ColourGreen:  "#50a14f",
	ColourTeal:   "#0997b3",
	ColourBlue:   "#4078f2",
	ColourPurple: "#a626a4",
	ColourPink:   "#d6409f",
	ColourGrey:   "#8e8e93",
}

// dimHex is the render colour for hidden or de-emphasized series. It is a
// view-layer overlay, never stored.
const dimHex = "#d1d1d6"

// Hex returns the render colour for charts.
func (c Colour) Hex() string {
	if hex, ok := colourHex[c]; ok {
		return hex
	}
	return colourHex[DefaultColour]
}

// ParseColour validates a colour name from a form or a stored document.
func ParseColour(s string) (Colour, error) {
	c := Colour(s)
	if _, ok := colourHex[c]; !ok {
		return "", fmt.Errorf("unknown colour %q", s)
	}
	return c, nil
}
