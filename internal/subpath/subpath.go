// SPDX-License-Identifier: Unlicense OR MIT

// Package subpath implements C3 of the engine: a path fragment bound to a
// double-precision bounding box, with half-plane splitting into two child
// fragments. See gio's gpu/stroke.go strokeQuads.split for the sibling
// contour-splitting-by-field style this package follows.
package subpath

import (
	"math"
	"sort"

	"github.com/arl/assertgo"

	"github.com/gioui-contrib/filledpath/internal/winding"
)

// Box is a double-precision axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Point is one fp64 contour vertex with its boundary-flag bitset.
type Point struct {
	X, Y  float64
	Flags winding.Flags
}

// Contour is a closed ordered sequence of points; the last point is
// implicitly connected back to the first.
type Contour []Point

// SubPath is a bounding box and the contours that fall within it.
type SubPath struct {
	Box        Box
	Contours   []Contour
	Generation int
}

// rootPad is the relative margin NewRoot inflates the tight extent of the
// input contours by, on each axis. The spec does not say how a root
// SubPath's box is established (in practice a caller would hand the engine
// an enclosing device/clip rectangle, not the path's own tight extent); a
// tight-fit root box would make any input contour that is itself an
// axis-aligned rectangle (the common case, e.g. nested boxes) degenerately
// "reducible" at the root before any split ever happens, which contradicts
// the reduction rule's intent of only folding away a contour that hugs a
// boundary introduced by splitting. Padding by a fixed margin sidesteps
// that without inventing a whole separate "initial box" concept.
const rootPad = 0.01

// NewRoot builds the root SubPath from raw, unflagged polyline contours:
// the bounding box is the extent of every point inflated by rootPad, and
// any point that happens to lie exactly on that inflated extent is flagged
// accordingly, matching the flag assignment a later Split performs at its
// own box.
func NewRoot(raw [][][2]float64) *SubPath {
	assert.True(len(raw) > 0, "subpath: NewRoot requires at least one contour")
	box := Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, c := range raw {
		for _, p := range c {
			if p[0] < box.MinX {
				box.MinX = p[0]
			}
			if p[0] > box.MaxX {
				box.MaxX = p[0]
			}
			if p[1] < box.MinY {
				box.MinY = p[1]
			}
			if p[1] > box.MaxY {
				box.MaxY = p[1]
			}
		}
	}
	box.MinX, box.MaxX = padAxis(box.MinX, box.MaxX)
	box.MinY, box.MaxY = padAxis(box.MinY, box.MaxY)
	sp := &SubPath{Box: box}
	for _, c := range raw {
		cont := make(Contour, len(c))
		for i, p := range c {
			cont[i] = Point{X: p[0], Y: p[1], Flags: flagsFor(p[0], p[1], box)}
		}
		sp.Contours = append(sp.Contours, cont)
	}
	return sp
}

func padAxis(lo, hi float64) (float64, float64) {
	m := (hi - lo) * rootPad
	if m == 0 {
		m = 1
	}
	return lo - m, hi + m
}

func flagsFor(x, y float64, box Box) winding.Flags {
	var f winding.Flags
	switch {
	case x == box.MinX:
		f |= winding.OnMinX
	case x == box.MaxX:
		f |= winding.OnMaxX
	}
	switch {
	case y == box.MinY:
		f |= winding.OnMinY
	case y == box.MaxY:
		f |= winding.OnMaxY
	}
	return f
}

// isReducible reports whether c, judged from its points' boundary flags
// alone, hugs the box boundary with a consistent cyclic corner progress:
// every consecutive pair of points (including the wraparound pair) must be
// CCW neighbor corners advancing in the same direction. Preserved literally
// per the spec's corner-to-corner progress definition: a contour with
// intermediate non-corner boundary points (e.g. extra colinear points along
// one edge) is not reducible by this test and is kept as ordinary geometry,
// passed on to triangulation like any other contour.
func isReducible(c Contour) (sum int, ok bool) {
	n := len(c)
	if n < 1 {
		return 0, false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := c[i].Flags
		b := c[(i+1)%n].Flags
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

// PointCount returns the number of points across every contour that is not
// boundary-reducible, per the SubPath invariant in §3.
func (sp *SubPath) PointCount() int {
	n := 0
	for _, c := range sp.Contours {
		if _, ok := isReducible(c); ok {
			continue
		}
		n += len(c)
	}
	return n
}

// sizeMaxRatio and the median-split axis selection below implement §4.2.

// ChooseSplit picks the splitting coordinate and value. sizeMaxRatio <= 0
// disables the aspect-ratio shortcut. It reports the predicted point
// counts for each side (including points on both sides of a crossing,
// per §4.2) using the *pre-split* counting rule the spec's Open Question
// preserves: these counts do not account for the two new boundary-crossing
// points that an actual Split will introduce.
func (sp *SubPath) ChooseSplit(sizeMaxRatio float64) (axis int, value float64, countLeft, countRight int) {
	w, h := sp.Box.MaxX-sp.Box.MinX, sp.Box.MaxY-sp.Box.MinY
	if sizeMaxRatio > 0 {
		if w > h && w > sizeMaxRatio*h {
			return 0, (sp.Box.MinX + sp.Box.MaxX) / 2, -1, -1
		}
		if h > w && h > sizeMaxRatio*w {
			return 1, (sp.Box.MinY + sp.Box.MaxY) / 2, -1, -1
		}
	}
	bestAxis := -1
	var bestValue float64
	bestTotal := -1
	var bestLeft, bestRight int
	for axis := 0; axis < 2; axis++ {
		proj := sp.projections(axis)
		if len(proj) == 0 {
			continue
		}
		value := proj[len(proj)/2]
		left, right := 0, 0
		for _, v := range proj {
			if v <= value {
				left++
			}
			if v >= value {
				right++
			}
		}
		total := left + right
		if bestAxis == -1 || total < bestTotal {
			bestAxis, bestValue, bestTotal, bestLeft, bestRight = axis, value, total, left, right
		}
	}
	if bestAxis == -1 {
		return 0, 0, 0, 0
	}
	return bestAxis, bestValue, bestLeft, bestRight
}

// projections collects axis-coordinate values of every point belonging to
// a non-reducible contour, sorted ascending, used both as the median
// candidate source and the left/right counting source.
func (sp *SubPath) projections(axis int) []float64 {
	var proj []float64
	for _, c := range sp.Contours {
		if _, ok := isReducible(c); ok {
			continue
		}
		for _, p := range c {
			if axis == 0 {
				proj = append(proj, p.X)
			} else {
				proj = append(proj, p.Y)
			}
		}
	}
	sort.Float64s(proj)
	return proj
}

// Split partitions sp against the half-plane axis=value, producing two
// child SubPaths whose boxes are clipped on that axis. Every contour is
// walked edge by edge (cyclically); a point with coord <= value is kept on
// the left, coord >= value on the right (both, inclusive, when exactly on
// the line); an edge that strictly straddles the line gets an interpolated
// crossing point appended to both children, flagged for whichever new
// boundary it now sits on.
func (sp *SubPath) Split(axis int, value float64) (left, right *SubPath) {
	assert.True(axis == 0 || axis == 1, "subpath: invalid splitting axis %d", axis)
	leftBox, rightBox := sp.Box, sp.Box
	if axis == 0 {
		leftBox.MaxX, rightBox.MinX = value, value
	} else {
		leftBox.MaxY, rightBox.MinY = value, value
	}
	left = &SubPath{Box: leftBox, Generation: sp.Generation + 1}
	right = &SubPath{Box: rightBox, Generation: sp.Generation + 1}
	for _, c := range sp.Contours {
		lc, rc := splitContour(c, axis, value)
		if len(lc) > 0 {
			left.Contours = append(left.Contours, lc)
		}
		if len(rc) > 0 {
			right.Contours = append(right.Contours, rc)
		}
	}
	return left, right
}

func coord(p Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func minMaxMask(axis int) winding.Flags {
	if axis == 0 {
		return winding.OnMinX | winding.OnMaxX
	}
	return winding.OnMinY | winding.OnMaxY
}

func clearAndSetSide(f winding.Flags, axis int, isMax bool) winding.Flags {
	f &^= minMaxMask(axis)
	if axis == 0 {
		if isMax {
			f |= winding.OnMaxX
		} else {
			f |= winding.OnMinX
		}
	} else {
		if isMax {
			f |= winding.OnMaxY
		} else {
			f |= winding.OnMinY
		}
	}
	return f
}

func lerpPoint(a, b Point, t float64) (x, y float64) {
	x = a.X + (b.X-a.X)*t
	y = a.Y + (b.Y-a.Y)*t
	return
}

func splitContour(c Contour, axis int, value float64) (left, right Contour) {
	n := len(c)
	for i := 0; i < n; i++ {
		a := c[i]
		b := c[(i+1)%n]
		av, bv := coord(a, axis), coord(b, axis)
		if av <= value {
			left = append(left, a)
		}
		if av >= value {
			right = append(right, a)
		}
		if av != value && bv != value && (av < value) != (bv < value) {
			t := (value - av) / (bv - av)
			x, y := lerpPoint(a, b, t)
			union := a.Flags | b.Flags
			left = append(left, Point{X: x, Y: y, Flags: clearAndSetSide(union, axis, true)})
			right = append(right, Point{X: x, Y: y, Flags: clearAndSetSide(union, axis, false)})
		}
	}
	return left, right
}
