package geometry

import (
	"math"
	"math/rand/v2"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// ChunkSize is the edge of a starfield chunk in parsecs.
	ChunkSize = 256
	// StarfieldPeriod is the number of chunks after which the pattern repeats
	// along each axis.
	StarfieldPeriod = 16
	// MaxChunks bounds the chunks one ChunksCovering call may list.
	MaxChunks = 1024

	minStars      = 50
	maxStars      = 300 // exclusive
	maxBrightness = 5   // exclusive
)

// Chunk is the index of a starfield chunk.
type Chunk struct {
	X int
	Y int
}

// StarfieldCache holds generated starfields by chunk index modulo
// StarfieldPeriod. It holds at most StarfieldPeriod² entries and never
// evicts.
//
// A StarfieldCache is not safe for concurrent use.
type StarfieldCache struct {
	chunks map[Chunk][]Point
}

// NewStarfieldCache returns an empty cache.
func NewStarfieldCache() *StarfieldCache {
	return &StarfieldCache{chunks: make(map[Chunk][]Point)}
}

// Starfield returns the stars of chunk (chunkX, chunkY) in chunk-local
// coordinates. Brighter stars appear several times. The returned slice is
// shared and must not be modified.
func (s *StarfieldCache) Starfield(chunkX, chunkY int) []Point {
	key := Chunk{X: wrap(chunkX), Y: wrap(chunkY)}
	if points, ok := s.chunks[key]; ok {
		return points
	}
	points := GenerateStarfield(key.X, key.Y)
	s.chunks[key] = points
	return points
}

// Len returns the number of generated chunks.
func (s *StarfieldCache) Len() int {
	return len(s.chunks)
}

// Clear drops every generated chunk.
func (s *StarfieldCache) Clear() {
	clear(s.chunks)
}

// GenerateStarfield builds the starfield for a wrapped chunk index. The same
// index always yields the same points.
func GenerateStarfield(indexX, indexY int) []Point {
	seed := (indexX << 16) ^ indexY
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	count := minStars + rng.IntN(maxStars-minStars)
	points := make([]Point, 0, count*2)
	for range count {
		p := Point{
			X: rng.Float64() * ChunkSize,
			Y: rng.Float64() * ChunkSize,
		}
		brightness := 1 + rng.IntN(maxBrightness-1)
		for range brightness {
			points = append(points, p)
		}
	}
	return points
}

// ChunkOrigin returns the map-space position of a chunk's top-left corner.
func ChunkOrigin(c Chunk) Point {
	return Point{X: float64(c.X) * ChunkSize, Y: float64(c.Y) * ChunkSize}
}

// ChunksCovering lists the chunks that intersect the map-space rectangle
// [minX, maxX] x [minY, maxY], row by row. An inverted rectangle covers
// nothing. Bounds must be finite and cover at most MaxChunks chunks.
func ChunksCovering(minX, minY, maxX, maxY float64) ([]Chunk, error) {
	for _, v := range [...]float64{minX, minY, maxX, maxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRegion, "bounds must be finite"), "bound", v)
		}
	}
	if maxX < minX || maxY < minY {
		return nil, nil
	}

	fx0, fx1 := math.Floor(minX/ChunkSize), math.Floor(maxX/ChunkSize)
	fy0, fy1 := math.Floor(minY/ChunkSize), math.Floor(maxY/ChunkSize)
	if count := (fx1 - fx0 + 1) * (fy1 - fy0 + 1); count > MaxChunks {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRegion, "region covers too many chunks"), "chunks", count)
	}
	x0, x1, y0, y1 := int(fx0), int(fx1), int(fy0), int(fy1)

	chunks := make([]Chunk, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			chunks = append(chunks, Chunk{X: x, Y: y})
		}
	}
	return chunks, nil
}

func wrap(i int) int {
	m := i % StarfieldPeriod
	if m < 0 {
		m += StarfieldPeriod
	}
	return m
}
