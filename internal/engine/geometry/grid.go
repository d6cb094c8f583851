package geometry

import "go.trai.ch/starmap/internal/engine/cache"

const (
	// GridSlop is the number of extra hex columns and rows generated on every
	// side of the viewport so partially visible hexes are drawn.
	GridSlop = 1
	// PointsPerHex is the number of vertices emitted for each hex.
	PointsPerHex = 4
)

// GridKey identifies a grid by viewport size in whole parsecs.
type GridKey struct {
	Width  int
	Height int
}

// GridCache keeps constructed hex-grid overlays for recently used viewport
// sizes. The builder turns raw points into whatever handle the renderer
// draws, and the handle is what gets cached.
//
// A GridCache is not safe for concurrent use.
type GridCache[H any] struct {
	grids *cache.EvictionCache[GridKey, H]
	build func([]Point) H
}

// NewGridCache returns a cache of at most capacity grids.
func NewGridCache[H any](capacity int, build func([]Point) H) *GridCache[H] {
	return &GridCache[H]{
		grids: cache.New[GridKey, H](capacity),
		build: build,
	}
}

// Grid returns the overlay for a viewport of width by height parsecs,
// building it on first use.
func (g *GridCache[H]) Grid(width, height int) H {
	key := GridKey{Width: width, Height: height}
	if h, ok := g.grids.Get(key); ok {
		return h
	}
	h := g.build(GridPoints(width, height))
	g.grids.Put(key, h)
	return h
}

// Clear drops every cached grid. Call it when the render context is lost or
// the style changes.
func (g *GridCache[H]) Clear() {
	g.grids.Clear()
}

// Len returns the number of cached grids.
func (g *GridCache[H]) Len() int {
	return g.grids.Len()
}

// Stats returns the underlying cache counters.
func (g *GridCache[H]) Stats() cache.Stats {
	return g.grids.Stats()
}

// HexesPerGrid returns how many hexes GridPoints emits for a viewport.
func HexesPerGrid(width, height int) int {
	w := max(width+2*GridSlop, 0)
	h := max(height+2*GridSlop, 0)
	return w * h
}

// GridPoints returns the hex-grid vertices for a viewport of width by height
// parsecs. Each hex contributes PointsPerHex points tracing its upper edge:
// left vertex, upper-left, upper-right, right vertex. Odd columns sit half a
// parsec lower than even ones.
func GridPoints(width, height int) []Point {
	points := make([]Point, 0, HexesPerGrid(width, height)*PointsPerHex)
	for px := -GridSlop; px < width+GridSlop; px++ {
		yOffset := 0.0
		if px&1 != 0 {
			yOffset = 0.5
		}
		cx := float64(px)
		for py := -GridSlop; py < height+GridSlop; py++ {
			cy := float64(py) + yOffset
			points = append(points,
				Point{X: cx - 2.0/3, Y: cy},
				Point{X: cx - 1.0/3, Y: cy - 0.5},
				Point{X: cx + 1.0/3, Y: cy - 0.5},
				Point{X: cx + 2.0/3, Y: cy},
			)
		}
	}
	return points
}
