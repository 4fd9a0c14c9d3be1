// SPDX-License-Identifier: Unlicense OR MIT

// Package attrib implements C8: packing a realized SubPath's per-winding
// triangle and edge lists into GPU-attribute-shaped chunks, and merging
// two children's chunks into their parent's. The fixed-stride vertex
// struct and flat index-buffer style follow the teacher's own
// internal/path.Vertex and internal/scene command packing.
package attrib

import (
	"sort"

	"github.com/gioui-contrib/filledpath/internal/hoard"
	"github.com/gioui-contrib/filledpath/internal/tess"
)

// FillVertex is the attribute packed for the fill (stencil) pass. Position
// is the only datum the fill triangulation needs; normals and Z layers are
// a fuzz-pass concern (§4.7).
type FillVertex struct {
	X, Y float32
}

// Ranges locates the four fixed fill-rule chunks, plus one sub-range per
// individual winding number, inside one shared index buffer. Every range
// is a contiguous [start, end) pair in index-element units.
type Ranges struct {
	OddEven, Nonzero, ComplementOddEven, ComplementNonzero [2]int
	PerWinding                                              map[int][2]int
}

// PackFill builds one subset's fill attribute buffer and index buffer.
// Every hoard point becomes an attribute (unreferenced points are not
// compacted away), so merging two subsets' chunks only needs to
// offset index values by the attribute-array length, never renumber them.
func PackFill(h *hoard.Hoard, components []*tess.Component) ([]FillVertex, []uint32, Ranges) {
	attrs := make([]FillVertex, h.NumPoints())
	for i := range attrs {
		x, y := h.Point(i)
		attrs[i] = FillVertex{X: float32(x), Y: float32(y)}
	}

	var odd, evenNonzero []*tess.Component
	var zero *tess.Component
	for _, c := range components {
		switch {
		case c.Winding == 0:
			zero = c
		case c.Winding%2 != 0:
			odd = append(odd, c)
		default:
			evenNonzero = append(evenNonzero, c)
		}
	}
	sort.Slice(odd, func(i, j int) bool { return odd[i].Winding < odd[j].Winding })
	sort.Slice(evenNonzero, func(i, j int) bool { return evenNonzero[i].Winding < evenNonzero[j].Winding })

	var indices []uint32
	ranges := Ranges{PerWinding: make(map[int][2]int)}
	appendGroup := func(cs []*tess.Component) {
		for _, c := range cs {
			start := len(indices)
			indices = append(indices, c.Triangles...)
			ranges.PerWinding[c.Winding] = [2]int{start, len(indices)}
		}
	}

	appendGroup(odd)
	oddEnd := len(indices)
	appendGroup(evenNonzero)
	zeroStart := len(indices)
	if zero != nil {
		appendGroup([]*tess.Component{zero})
	}

	ranges.OddEven = [2]int{0, oddEnd}
	ranges.Nonzero = [2]int{0, zeroStart}
	ranges.ComplementOddEven = [2]int{oddEnd, len(indices)}
	ranges.ComplementNonzero = [2]int{zeroStart, len(indices)}
	return attrs, indices, ranges
}

// The three contiguous groups an index buffer is laid out in, per
// PackFill: odd windings, then nonzero-even windings, then winding zero.
const (
	groupOdd = iota
	groupEven
	groupZero
)

func groupOf(w int) int {
	switch {
	case w == 0:
		return groupZero
	case w%2 != 0:
		return groupOdd
	default:
		return groupEven
	}
}

// MergeFill concatenates two children's fill chunks. A blind
// left-then-right concatenation of each child's own
// [odd|evenNonzero|zero] buffer would *not* preserve the §8 fill-rule
// contiguity invariant for the merged parent: the left child's zero group
// would land in the middle of the combined buffer, inside what looks like
// the nonzero range, and two children that independently produced the
// same absolute winding number (e.g. both carry a winding-0 region) would
// collide into a single PerWinding entry that only covers one side's
// triangles. Instead, MergeFill re-groups by winding number exactly as
// PackFill itself would: for each of the three groups (odd, even-nonzero,
// zero), every distinct winding present in either child gets one
// contiguous span — that child's triangles, then the other's, in
// ascending winding order within the group — and the four fixed ranges
// are derived from the resulting group boundaries.
func MergeFill(leftAttrs, rightAttrs []FillVertex, leftIdx, rightIdx []uint32, leftRanges, rightRanges Ranges) ([]FillVertex, []uint32, Ranges) {
	offset := uint32(len(leftAttrs))
	attrs := append(append([]FillVertex(nil), leftAttrs...), rightAttrs...)

	windingsByGroup := map[int][]int{}
	seen := map[int]bool{}
	for w := range leftRanges.PerWinding {
		if !seen[w] {
			seen[w] = true
			g := groupOf(w)
			windingsByGroup[g] = append(windingsByGroup[g], w)
		}
	}
	for w := range rightRanges.PerWinding {
		if !seen[w] {
			seen[w] = true
			g := groupOf(w)
			windingsByGroup[g] = append(windingsByGroup[g], w)
		}
	}
	for g := range windingsByGroup {
		sort.Ints(windingsByGroup[g])
	}

	indices := make([]uint32, 0, len(leftIdx)+len(rightIdx))
	merged := Ranges{PerWinding: make(map[int][2]int, len(leftRanges.PerWinding)+len(rightRanges.PerWinding))}
	appendGroup := func(g int) (start, end int) {
		start = len(indices)
		for _, w := range windingsByGroup[g] {
			spanStart := len(indices)
			if lr, ok := leftRanges.PerWinding[w]; ok {
				indices = append(indices, leftIdx[lr[0]:lr[1]]...)
			}
			if rr, ok := rightRanges.PerWinding[w]; ok {
				indices = append(indices, shiftIndices(rightIdx[rr[0]:rr[1]], offset)...)
			}
			merged.PerWinding[w] = [2]int{spanStart, len(indices)}
		}
		return start, len(indices)
	}

	_, oddEnd := appendGroup(groupOdd)
	_, evenEnd := appendGroup(groupEven)
	zeroStart, zeroEnd := appendGroup(groupZero)

	merged.OddEven = [2]int{0, oddEnd}
	merged.Nonzero = [2]int{0, evenEnd}
	merged.ComplementOddEven = [2]int{oddEnd, zeroEnd}
	merged.ComplementNonzero = [2]int{zeroStart, zeroEnd}
	return attrs, indices, merged
}

func shiftIndices(s []uint32, off uint32) []uint32 {
	out := make([]uint32, len(s))
	for i, v := range s {
		out[i] = v + off
	}
	return out
}
