package domain

import "math"

// ParsecScaleX is the horizontal distance between hex columns in map space.
var ParsecScaleX = math.Cos(math.Pi / 6)

// ParsecScaleY is the vertical distance between hex rows in map space.
const ParsecScaleY = 1.0

// MapPoint is a position in continuous map space, measured in parsecs.
type MapPoint struct {
	X float64
	Y float64
}

// HexToMap returns the centre of h in map space.
func HexToMap(h Hex) MapPoint {
	y := float64(h.Y)
	if isEven(h.X) {
		y -= 0.5
	}
	return MapPoint{
		X: float64(h.X) * ParsecScaleX,
		Y: y * ParsecScaleY,
	}
}

// MapToHex returns the hex whose column and row are nearest to p.
func MapToHex(p MapPoint) Hex {
	x := int(math.Round(p.X / ParsecScaleX))
	y := p.Y / ParsecScaleY
	if isEven(x) {
		y += 0.5
	}
	return Hex{X: x, Y: int(math.Round(y))}
}
