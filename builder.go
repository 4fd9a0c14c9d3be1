// SPDX-License-Identifier: Unlicense OR MIT

package filledpath

import (
	"sort"

	"github.com/gioui-contrib/filledpath/internal/attrib"
	"github.com/gioui-contrib/filledpath/internal/hoard"
	"github.com/gioui-contrib/filledpath/internal/subpath"
	"github.com/gioui-contrib/filledpath/internal/tess"
	"github.com/gioui-contrib/filledpath/internal/winding"
)

// buildSubset is C6's Builder: it orchestrates one leaf SubPath's
// realization through the PointHoard and Tesser, then packs the surviving
// winding components into GPU-shaped attribute chunks (§4.5).
func buildSubset(sp *subpath.SubPath, newTri tess.Factory) *realizedData {
	h := hoard.New(sp.Box)
	contours, windingOffset := h.GenerateContours(sp.Contours)

	t := tess.New(h, windingOffset)
	tri := newTri()
	t.Run(tri, contours)

	var nonEmpty []*tess.Component
	for _, c := range t.Components() {
		if len(c.Triangles) > 0 {
			nonEmpty = append(nonEmpty, c)
		}
	}

	if len(nonEmpty) == 0 {
		return emptyFallback(h, sp.Box, windingOffset)
	}

	fillAttrs, fillIdx, fillRanges := attrib.PackFill(h, nonEmpty)
	fuzz := attrib.PackFuzz(h, nonEmpty)

	windings := make([]int, len(nonEmpty))
	for i, c := range nonEmpty {
		windings[i] = c.Winding
	}
	sort.Ints(windings)

	return &realizedData{
		windingNumbers: windings,
		fillAttrs:      fillAttrs,
		fillIdx:        fillIdx,
		fillRanges:     fillRanges,
		fuzz:           fuzz,
	}
}

// emptyFallback synthesizes the bounding rectangle as two triangles at the
// subpath's winding offset, so a leaf whose triangulator produced nothing
// (every component purged) still draws something under complement-nonzero
// (§4.5 step 4). It is built through the same attrib.PackFill path real
// triangulation uses, so the fill-rule chunk ranges stay consistent.
func emptyFallback(h *hoard.Hoard, box subpath.Box, windingOffset int) *realizedData {
	i0 := h.FetchDiscretized(box.MinX, box.MinY, winding.OnMinX|winding.OnMinY)
	i1 := h.FetchDiscretized(box.MaxX, box.MinY, winding.OnMaxX|winding.OnMinY)
	i2 := h.FetchDiscretized(box.MaxX, box.MaxY, winding.OnMaxX|winding.OnMaxY)
	i3 := h.FetchDiscretized(box.MinX, box.MaxY, winding.OnMinX|winding.OnMaxY)

	comp := &tess.Component{
		Winding: windingOffset,
		Triangles: []uint32{
			uint32(i0), uint32(i1), uint32(i2),
			uint32(i0), uint32(i2), uint32(i3),
		},
	}
	fillAttrs, fillIdx, fillRanges := attrib.PackFill(h, []*tess.Component{comp})
	return &realizedData{
		windingNumbers: []int{windingOffset},
		fillAttrs:      fillAttrs,
		fillIdx:        fillIdx,
		fillRanges:     fillRanges,
		fuzz:           map[int]*attrib.FuzzChunk{},
	}
}
