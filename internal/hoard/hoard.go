// SPDX-License-Identifier: Unlicense OR MIT

// Package hoard implements C4, the PointHoard: a deduplicating,
// discretizing point table that turns one SubPath's fp64 contours into the
// simple, grid-snapped contours the Tesser feeds to the external
// triangulator, folding any boundary-hugging contour into a scalar winding
// offset instead of geometry.
package hoard

import (
	"github.com/arl/assertgo"

	"github.com/gioui-contrib/filledpath/internal/grid"
	"github.com/gioui-contrib/filledpath/internal/subpath"
	"github.com/gioui-contrib/filledpath/internal/winding"
)

// Vertex is one contour vertex in the output Path: an index into the
// Hoard's point table plus its boundary-flag bitset at emission time.
type Vertex struct {
	Index int
	Flags winding.Flags
}

// Contour is one output contour, free of self-intersection and consecutive
// duplicates, ready for the triangulator.
type Contour []Vertex

// Hoard is the PointHoard of §4.3.
type Hoard struct {
	conv *grid.Converter

	pts   [][2]float64 // fp64, parallel to ipts
	ipts  []grid.Point
	index map[grid.Point]int

	box subpath.Box
}

// New builds a Hoard scoped to one SubPath's box.
func New(box subpath.Box) *Hoard {
	return &Hoard{
		conv:  grid.New(box.MinX, box.MinY, box.MaxX, box.MaxY),
		index: make(map[grid.Point]int),
		box:   box,
	}
}

// NumPoints reports how many distinct points the hoard has accumulated.
func (h *Hoard) NumPoints() int { return len(h.pts) }

// Point returns the fp64 (un-fudged, un-discretized) position of vertex i.
func (h *Hoard) Point(i int) (x, y float64) { p := h.pts[i]; return p[0], p[1] }

// IPoint returns the grid-space integer position of vertex i.
func (h *Hoard) IPoint(i int) grid.Point { return h.ipts[i] }

// FudgeDelta exposes the converter's fudge constant.
func (h *Hoard) FudgeDelta() float64 { return grid.FudgeDelta }

// EdgeHugs reports whether the edge between vertices a and b hugs the grid
// boundary, per §4.3's edge_hugs_boundary.
func (h *Hoard) EdgeHugs(a, b int) bool {
	return grid.EdgeHugsBoundary(h.ipts[a], h.ipts[b])
}

// Apply returns the grid-space fp64 position of the i-th vertex, nudged by
// k fudge deltas toward the grid center on each axis. Every vertex
// delivered to the triangulator uses a freshly incremented k, so the set
// of points the triangulator ever sees is pairwise fp64-distinct even when
// two vertices share an ipt.
func (h *Hoard) Apply(i, k int) (x, y float64) {
	ip := h.ipts[i]
	x, y = float64(ip.X), float64(ip.Y)
	d := grid.FudgeDelta * float64(k)
	if x > grid.Center {
		x -= d
	} else {
		x += d
	}
	if y > grid.Center {
		y -= d
	} else {
		y += d
	}
	return
}

func overrideForFlags(x, y float64, flags winding.Flags, box subpath.Box) (float64, float64) {
	flags.Validate()
	if flags&winding.OnMinX != 0 {
		x = box.MinX
	} else if flags&winding.OnMaxX != 0 {
		x = box.MaxX
	}
	if flags&winding.OnMinY != 0 {
		y = box.MinY
	} else if flags&winding.OnMaxY != 0 {
		y = box.MaxY
	}
	return x, y
}

// FetchDiscretized snaps pt to the grid (overriding with the box's exact
// boundary coordinate where flags demand it, so two points claimed to lie
// on the same boundary become exactly collinear), deduplicating on the
// resulting grid point.
func (h *Hoard) FetchDiscretized(x, y float64, flags winding.Flags) int {
	x, y = overrideForFlags(x, y, flags, h.box)
	ip := h.conv.IApply(x, y)
	if idx, ok := h.index[ip]; ok {
		return idx
	}
	idx := len(h.pts)
	h.pts = append(h.pts, [2]float64{x, y})
	h.ipts = append(h.ipts, ip)
	h.index[ip] = idx
	return idx
}

// FetchUndiscretized appends pt without deduplication; used for
// triangulator-synthesized (combine) vertices that must get a unique id
// but never coalesce with an existing one.
func (h *Hoard) FetchUndiscretized(x, y float64) int {
	idx := len(h.pts)
	ip := h.conv.IApply(x, y)
	h.pts = append(h.pts, [2]float64{x, y})
	h.ipts = append(h.ipts, ip)
	return idx
}

// FetchCorner returns the canonical, deduplicated point for one of the
// box's four corners.
func (h *Hoard) FetchCorner(isMaxX, isMaxY bool) (idx int, ip grid.Point) {
	x, y := h.box.MinX, h.box.MinY
	var flags winding.Flags
	if isMaxX {
		x, flags = h.box.MaxX, flags|winding.OnMaxX
	} else {
		flags |= winding.OnMinX
	}
	if isMaxY {
		y, flags = h.box.MaxY, flags|winding.OnMaxY
	} else {
		flags |= winding.OnMinY
	}
	idx = h.FetchDiscretized(x, y, flags)
	return idx, h.ipts[idx]
}

// Unapply inverts a grid-space fp64 coordinate back to the hoard's
// original box, for the triangulator's combine fallback.
func (h *Hoard) Unapply(x, y float64) (float64, float64) {
	return h.conv.Unapply(x, y)
}

// GenerateContours runs the §4.3 contour pipeline over every contour of a
// SubPath, returning the simplified contours ready for the Tesser plus the
// accumulated winding offset from any reduced (boundary-hugging) contour.
func (h *Hoard) GenerateContours(contours []subpath.Contour) ([]Contour, int) {
	offset := 0
	var out []Contour
	for _, c := range contours {
		seq := h.discretize(c)
		seq = dropConsecutiveDuplicates(seq)
		seq = closeCycle(seq)
		if len(seq) < 3 {
			continue
		}
		for _, loop := range unloop(seq) {
			if sum, ok := reduce(loop); ok {
				assert.True(sum%4 == 0, "hoard: reducible contour progress %d not a multiple of 4", sum)
				offset += -sum / 4
				continue
			}
			out = append(out, loop)
		}
	}
	return out, offset
}

func (h *Hoard) discretize(c subpath.Contour) Contour {
	seq := make(Contour, len(c))
	for i, p := range c {
		seq[i] = Vertex{Index: h.FetchDiscretized(p.X, p.Y, p.Flags), Flags: p.Flags}
	}
	return seq
}

func dropConsecutiveDuplicates(seq Contour) Contour {
	if len(seq) == 0 {
		return seq
	}
	out := seq[:1]
	for _, v := range seq[1:] {
		if v.Index == out[len(out)-1].Index {
			continue
		}
		out = append(out, v)
	}
	return out
}

func closeCycle(seq Contour) Contour {
	for len(seq) > 1 && seq[0].Index == seq[len(seq)-1].Index {
		seq = seq[:len(seq)-1]
	}
	return seq
}

// unloop extracts every cyclic sub-range that revisits a vertex, producing
// simple (non-self-intersecting) contours. Quadratic in contour length,
// acceptable for typical inputs; see the open question in the design
// notes about adversarial inputs.
func unloop(seq Contour) []Contour {
	var result []Contour
	var split func(c Contour)
	split = func(c Contour) {
		n := len(c)
		seen := make(map[int]int, n)
		for i, v := range c {
			if j, ok := seen[v.Index]; ok {
				loop := append(Contour(nil), c[j:i]...)
				rest := append(append(Contour(nil), c[:j]...), c[i:]...)
				split(loop)
				split(rest)
				return
			}
			seen[v.Index] = i
		}
		if n >= 3 {
			result = append(result, c)
		}
	}
	split(seq)
	return result
}

// reduce reports whether c is entirely boundary-hugging with a consistent
// cyclic corner progress, and if so returns the signed progress sum.
func reduce(c Contour) (sum int, ok bool) {
	n := len(c)
	sign := 0
	for i := 0; i < n; i++ {
		a, b := c[i].Flags, c[(i+1)%n].Flags
		p := winding.BoundaryProgress(a, b)
		if p == 0 {
			return 0, false
		}
		if sign == 0 {
			sign = p
		} else if p != sign {
			return 0, false
		}
		sum += p
	}
	return sum, true
}
