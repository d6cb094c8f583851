// Package geometry generates the procedural map overlays: the parsec hex
// grid and the background starfield. Both are cached per render context.
package geometry

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Point is a vertex in parsec units.
type Point struct {
	X float64
	Y float64
}

// Digest returns a stable fingerprint of a point list, used to compare
// generated geometry without keeping it around.
func Digest(points []Point) uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
