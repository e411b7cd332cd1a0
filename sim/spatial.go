// Package sim implements the particle simulation: spatial hashing, force
// composition, integration, boundary wrap and color derivation.
package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cell keys pack three signed cell coordinates into one uint64, 21 bits per
// axis with a bias. Avoids string keys and their allocation in the hot path.
const (
	cellBits = 21
	cellBias = 1 << (cellBits - 1)
	cellMask = (1 << cellBits) - 1
)

// MaxQueryResults caps the number of neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 128

// Neighbor holds a nearby particle with precomputed spatial data.
type Neighbor struct {
	Index  int32
	Delta  r3.Vec  // Vector from the neighbor to the query point
	DistSq float64 // Squared distance (avoid sqrt until needed)
}

// SpatialGrid provides O(1) amortized neighbor lookups using a hashed
// cell grid. Rebuilt from scratch every step; safe for concurrent read-only
// queries between rebuilds.
type SpatialGrid struct {
	cellSize float64
	cells    map[uint64][]int32
}

// NewSpatialGrid creates a spatial grid with the given cell size.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int32, 1024),
	}
}

// Rebuild discards all bucket contents and re-inserts every particle.
// Bucket slices are reused across rebuilds to avoid churn; buckets that have
// drifted empty are pruned once the map grows well past the particle count.
func (g *SpatialGrid) Rebuild(positions []r3.Vec) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}

	for i, p := range positions {
		key := g.key(p.X, p.Y, p.Z)
		g.cells[key] = append(g.cells[key], int32(i))
	}

	if len(g.cells) > 4*len(positions)+1024 {
		for k, bucket := range g.cells {
			if len(bucket) == 0 {
				delete(g.cells, k)
			}
		}
	}
}

// QueryInto finds particles within radius of p, excluding self, and appends
// them to dst (up to MaxQueryResults). Returns the updated slice; reuse dst
// across calls to avoid allocations.
//
// Enumeration is exact as long as cellSize >= radius: any particle within
// radius of p lies in p's cell or one of the 26 adjacent cells.
func (g *SpatialGrid) QueryInto(dst []Neighbor, self int32, p r3.Vec, radius float64, positions []r3.Vec) []Neighbor {
	cx := int64(math.Floor(p.X / g.cellSize))
	cy := int64(math.Floor(p.Y / g.cellSize))
	cz := int64(math.Floor(p.Z / g.cellSize))

	radiusSq := radius * radius

	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				bucket, ok := g.cells[packKey(cx+dx, cy+dy, cz+dz)]
				if !ok {
					continue
				}

				for _, j := range bucket {
					if j == self {
						continue
					}

					q := positions[j]
					delta := r3.Vec{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
					distSq := delta.X*delta.X + delta.Y*delta.Y + delta.Z*delta.Z

					// distSq == 0 is excluded: coincident particles have no
					// defined repulsion direction.
					if distSq > 0 && distSq < radiusSq {
						dst = append(dst, Neighbor{Index: j, Delta: delta, DistSq: distSq})
						if len(dst) >= MaxQueryResults {
							return dst
						}
					}
				}
			}
		}
	}

	return dst
}

// CellCount returns the number of occupied buckets. Telemetry only.
func (g *SpatialGrid) CellCount() int {
	n := 0
	for _, bucket := range g.cells {
		if len(bucket) > 0 {
			n++
		}
	}
	return n
}

// key returns the packed cell key for a world position.
func (g *SpatialGrid) key(x, y, z float64) uint64 {
	return packKey(
		int64(math.Floor(x/g.cellSize)),
		int64(math.Floor(y/g.cellSize)),
		int64(math.Floor(z/g.cellSize)),
	)
}

// packKey packs three signed cell coordinates into a single map key.
func packKey(cx, cy, cz int64) uint64 {
	ux := uint64(cx+cellBias) & cellMask
	uy := uint64(cy+cellBias) & cellMask
	uz := uint64(cz+cellBias) & cellMask
	return ux<<(2*cellBits) | uy<<cellBits | uz
}
