// Package domain contains the star-map core: hex coordinates, scale, mains,
// styles, tile requests and the errors shared by every adapter.
package domain

import "fmt"

const (
	// SectorWidth is the number of hex columns in a sector.
	SectorWidth = 32
	// SectorHeight is the number of hex rows in a sector.
	SectorHeight = 40

	// ReferenceSectorX and ReferenceSectorY locate the sector holding the origin.
	ReferenceSectorX = 0
	ReferenceSectorY = 0
	// ReferenceHexX and ReferenceHexY locate the hex inside the reference
	// sector that maps to absolute (0,0).
	ReferenceHexX = 1
	ReferenceHexY = 40
)

// Hex is an absolute hex coordinate. Columns use an offset layout in which
// even columns sit half a hex higher than odd ones.
type Hex struct {
	X int
	Y int
}

// String returns the coordinate as "x,y".
func (h Hex) String() string {
	return fmt.Sprintf("%d,%d", h.X, h.Y)
}

// SectorHex addresses a hex by sector and 1-based offset within that sector.
type SectorHex struct {
	SectorX int
	SectorY int
	HexX    int // 1..SectorWidth
	HexY    int // 1..SectorHeight
}

// Valid reports whether the offsets lie inside a sector.
func (s SectorHex) Valid() bool {
	return s.HexX >= 1 && s.HexX <= SectorWidth && s.HexY >= 1 && s.HexY <= SectorHeight
}

// RelativeToAbsolute converts a sector-relative position to an absolute hex.
func RelativeToAbsolute(s SectorHex) Hex {
	return Hex{
		X: (s.SectorX-ReferenceSectorX)*SectorWidth + (s.HexX - ReferenceHexX),
		Y: (s.SectorY-ReferenceSectorY)*SectorHeight + (s.HexY - ReferenceHexY),
	}
}

// AbsoluteToRelative converts an absolute hex to its sector and offset.
func AbsoluteToRelative(h Hex) SectorHex {
	dx := h.X + (ReferenceHexX - 1)
	dy := h.Y + (ReferenceHexY - 1)
	return SectorHex{
		SectorX: floorDiv(dx, SectorWidth) + ReferenceSectorX,
		SectorY: floorDiv(dy, SectorHeight) + ReferenceSectorY,
		HexX:    floorMod(dx, SectorWidth) + 1,
		HexY:    floorMod(dy, SectorHeight) + 1,
	}
}

// HexDistance returns the number of hex steps between a and b.
//
// The parity correction matches the distances used by jump-route and trade
// calculations and must not be changed.
func HexDistance(a, b Hex) int {
	dx := b.X - a.X
	dy := b.Y - a.Y
	adx := abs(dx)
	ody := dy + adx/2
	if isEven(a.X) && !isEven(b.X) {
		ody++
	}
	return max(adx-ody, ody, adx)
}

// Direction is one of the six hex neighbour directions.
type Direction int

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

// Directions lists every direction in clockwise order starting at North.
var Directions = [6]Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case NorthWest:
		return "NW"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Neighbor returns the hex adjacent to h in direction d.
// An unknown direction returns h unchanged.
func Neighbor(h Hex, d Direction) Hex {
	// Even columns are raised, so their diagonal neighbours share the row
	// above; odd columns share the row below.
	upper, lower := h.Y-1, h.Y
	if !isEven(h.X) {
		upper, lower = h.Y, h.Y+1
	}
	switch d {
	case North:
		return Hex{X: h.X, Y: h.Y - 1}
	case NorthEast:
		return Hex{X: h.X + 1, Y: upper}
	case SouthEast:
		return Hex{X: h.X + 1, Y: lower}
	case South:
		return Hex{X: h.X, Y: h.Y + 1}
	case SouthWest:
		return Hex{X: h.X - 1, Y: lower}
	case NorthWest:
		return Hex{X: h.X - 1, Y: upper}
	default:
		return h
	}
}

// Neighbors returns the six hexes adjacent to h, in Directions order.
func Neighbors(h Hex) [6]Hex {
	var out [6]Hex
	for i, d := range Directions {
		out[i] = Neighbor(h, d)
	}
	return out
}

func isEven(n int) bool {
	return n&1 == 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
