// SPDX-License-Identifier: Unlicense OR MIT

package attrib

import (
	"math"

	"github.com/gioui-contrib/filledpath/internal/hoard"
	"github.com/gioui-contrib/filledpath/internal/tess"
)

// FuzzVertex is the attribute packed for the anti-alias silhouette pass
// (§4.7): a base position, the outward edge normal, a sign selecting which
// side of the edge this copy of the vertex fuzzes toward (+1 or -1 on edge
// quads, 0 on the zero-spread centre vertex of a bevel triangle), and a Z
// layer used to order overlapping fuzz quads from sibling subsets after a
// merge (§4.8).
type FuzzVertex struct {
	X, Y   float32
	NX, NY float32
	Sign   float32
	Z      float32
}

// FuzzChunk is one winding number's fuzz geometry: a quad (two triangles)
// per silhouette edge and a bevel triangle at each vertex shared by an edge
// and its successor where at least one of the two is a silhouette edge (no
// convexity test is made).
type FuzzChunk struct {
	Attrs   []FuzzVertex
	Indices []uint32
}

// PackFuzz builds one FuzzChunk per winding number that has any silhouette
// edges at all; windings with none (fully interior to a larger same-sign
// region) are omitted.
func PackFuzz(h *hoard.Hoard, components []*tess.Component) map[int]*FuzzChunk {
	chunks := make(map[int]*FuzzChunk)
	for _, c := range components {
		chunk := &FuzzChunk{}
		var z float32
		for _, e := range c.Edges {
			if e.DrawEdge {
				appendEdgeQuad(chunk, h, e, z)
				z++
			}
			if e.DrawBevel {
				appendBevelFan(chunk, h, c, e, z)
				z++
			}
		}
		if len(chunk.Attrs) > 0 {
			chunks[c.Winding] = chunk
		}
	}
	return chunks
}

// edgeNormal returns the unit outward normal of the directed edge (sx,sy)
// to (ex,ey): a 90 degree rotation of its unit tangent. Degenerate
// (zero-length) edges produce a zero normal; their quad still carries the
// right positions, just no fuzz spread, matching a silhouette edge too
// short to be meaningfully anti-aliased.
func edgeNormal(sx, sy, ex, ey float64) (nx, ny float32) {
	tx, ty := ex-sx, ey-sy
	l := math.Hypot(tx, ty)
	if l == 0 {
		return 0, 0
	}
	tx, ty = tx/l, ty/l
	return float32(-ty), float32(tx)
}

func appendEdgeQuad(chunk *FuzzChunk, h *hoard.Hoard, e tess.Edge, z float32) {
	sx, sy := h.Point(e.Start)
	ex, ey := h.Point(e.End)
	nx, ny := edgeNormal(sx, sy, ex, ey)
	base := uint32(len(chunk.Attrs))
	chunk.Attrs = append(chunk.Attrs,
		FuzzVertex{X: float32(sx), Y: float32(sy), NX: nx, NY: ny, Sign: 1, Z: z},
		FuzzVertex{X: float32(sx), Y: float32(sy), NX: nx, NY: ny, Sign: -1, Z: z},
		FuzzVertex{X: float32(ex), Y: float32(ey), NX: nx, NY: ny, Sign: 1, Z: z},
		FuzzVertex{X: float32(ex), Y: float32(ey), NX: nx, NY: ny, Sign: -1, Z: z},
	)
	chunk.Indices = append(chunk.Indices,
		base, base+1, base+2,
		base+2, base+1, base+3,
	)
}

// appendBevelFan fills the wedge at the shared vertex between e and its
// successor edge with a single outward-facing triangle, fanned from a
// zero-spread (Sign 0) copy of the shared vertex so the fill-side edge of
// the wedge never moves.
func appendBevelFan(chunk *FuzzChunk, h *hoard.Hoard, c *tess.Component, e tess.Edge, z float32) {
	next := c.Edges[e.Next]
	sx, sy := h.Point(e.Start)
	ex, ey := h.Point(e.End)
	nx1, ny1 := edgeNormal(sx, sy, ex, ey)
	nsx, nsy := h.Point(next.Start)
	nex, ney := h.Point(next.End)
	nx2, ny2 := edgeNormal(nsx, nsy, nex, ney)

	base := uint32(len(chunk.Attrs))
	chunk.Attrs = append(chunk.Attrs,
		FuzzVertex{X: float32(ex), Y: float32(ey), NX: nx1, NY: ny1, Sign: 1, Z: z},
		FuzzVertex{X: float32(ex), Y: float32(ey), NX: nx2, NY: ny2, Sign: 1, Z: z},
		FuzzVertex{X: float32(ex), Y: float32(ey), Sign: 0, Z: z},
	)
	chunk.Indices = append(chunk.Indices, base, base+1, base+2)
}

// MergeFuzz merges two children's per-winding fuzz chunks. A winding
// present in both gets its right-hand attrs appended after the left's, with
// each of the right side's Z layers z mapped to -z-1, so every right-hand
// ("B") vertex carries a lower Z than any left-hand ("A") vertex, whatever
// either side's own internal Z ordering.
func MergeFuzz(left, right map[int]*FuzzChunk) map[int]*FuzzChunk {
	merged := make(map[int]*FuzzChunk, len(left)+len(right))
	for w, c := range left {
		merged[w] = c
	}
	for w, rc := range right {
		lc, ok := merged[w]
		if !ok {
			merged[w] = rc
			continue
		}
		merged[w] = mergeChunk(lc, rc)
	}
	return merged
}

func mergeChunk(left, right *FuzzChunk) *FuzzChunk {
	offset := uint32(len(left.Attrs))
	out := &FuzzChunk{
		Attrs:   append(append([]FuzzVertex(nil), left.Attrs...), right.Attrs...),
		Indices: append([]uint32(nil), left.Indices...),
	}
	for i := offset; i < uint32(len(out.Attrs)); i++ {
		out.Attrs[i].Z = -out.Attrs[i].Z - 1
	}
	for _, idx := range right.Indices {
		out.Indices = append(out.Indices, idx+offset)
	}
	return out
}
