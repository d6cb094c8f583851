package domain

import "strings"

// LineStyle is the dash pattern of a border or route line.
type LineStyle int

const (
	// LineStyleUnset means the stylesheet did not say, or said something unrecognised.
	LineStyleUnset LineStyle = iota
	LineStyleSolid
	LineStyleDashed
	LineStyleDotted
)

// ParseLineStyle maps solid/dashed/dotted, in any case, to a LineStyle.
// Anything else yields LineStyleUnset.
func ParseLineStyle(s string) LineStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid":
		return LineStyleSolid
	case "dashed":
		return LineStyleDashed
	case "dotted":
		return LineStyleDotted
	default:
		return LineStyleUnset
	}
}

func (l LineStyle) String() string {
	switch l {
	case LineStyleSolid:
		return "solid"
	case LineStyleDashed:
		return "dashed"
	case LineStyleDotted:
		return "dotted"
	default:
		return "unset"
	}
}

// BorderStyle is the styling of a named border group. Empty Color and
// LineStyleUnset mean the stylesheet does not set them.
type BorderStyle struct {
	Color string
	Style LineStyle
}

// RouteStyle is the styling of a named route group. Width is only
// meaningful when HasWidth is true.
type RouteStyle struct {
	Color    string
	Style    LineStyle
	Width    float64
	HasWidth bool
}
