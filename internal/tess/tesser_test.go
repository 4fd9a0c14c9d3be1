// SPDX-License-Identifier: Unlicense OR MIT

package tess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gioui-contrib/filledpath/internal/hoard"
	"github.com/gioui-contrib/filledpath/internal/subpath"
)

// fakeTriangulator fan-triangulates each contour it receives as its own
// winding=1 region, treating everything outside as winding 0. It is not a
// general-purpose triangulator (it assumes star-shaped-from-first-vertex
// contours), but it drives the Callbacks contract faithfully enough to
// exercise the Tesser without depending on an external library.
type fakeTriangulator struct {
	cb       Callbacks
	contours [][]uint32
}

func newFakeTriangulator() Triangulator { return &fakeTriangulator{} }

func (f *fakeTriangulator) SetCallbacks(cb Callbacks)  { f.cb = cb }
func (f *fakeTriangulator) SetBoundaryOnly(bool)       {}
func (f *fakeTriangulator) BeginPolygon()              { f.contours = nil }
func (f *fakeTriangulator) BeginContour(bool)          { f.contours = append(f.contours, nil) }
func (f *fakeTriangulator) TessVertex(x, y float64, id uint32) {
	n := len(f.contours) - 1
	f.contours[n] = append(f.contours[n], id)
}
func (f *fakeTriangulator) EndContour() {}
func (f *fakeTriangulator) EndPolygon() {
	for _, c := range f.contours {
		if len(c) < 3 {
			continue
		}
		f.cb.Begin(1)
		for i := 1; i+1 < len(c); i++ {
			f.cb.Vertex(c[0])
			f.cb.Vertex(c[i])
			f.cb.Vertex(c[i+1])
		}
		neighbors := make([]int, len(c))
		f.cb.EmitMonotone(1, c, neighbors)
	}
}

// testBox is an interior-square bounding box larger than the squares the
// tests triangulate, so their contours never hug the box boundary and
// silhouette edges draw unconditionally.
func testBox() subpath.Box { return subpath.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10} }

func unitSquareContours(h *hoard.Hoard) []hoard.Contour {
	sq := subpath.Contour{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}
	out, _ := h.GenerateContours([]subpath.Contour{sq})
	return out
}

func TestRunAcceptsFanTriangles(t *testing.T) {
	h := hoard.New(testBox())
	contours := unitSquareContours(h)
	tr := New(h, 0)
	tr.Run(newFakeTriangulator(), contours)

	require.False(t, tr.Failed())
	comps := tr.Components()
	require.Len(t, comps, 1)
	assert.Equal(t, 1, comps[0].Winding)
	assert.Equal(t, 2, len(comps[0].Triangles)/3)
}

func TestWindingOffsetShiftsStoredWinding(t *testing.T) {
	h := hoard.New(testBox())
	contours := unitSquareContours(h)
	tr := New(h, 3)
	tr.Run(newFakeTriangulator(), contours)
	comps := tr.Components()
	require.Len(t, comps, 1)
	assert.Equal(t, 4, comps[0].Winding)
}

func TestEmitMonotoneMarksSilhouetteEdges(t *testing.T) {
	h := hoard.New(testBox())
	contours := unitSquareContours(h)
	tr := New(h, 0)
	tr.Run(newFakeTriangulator(), contours)
	comps := tr.Components()
	require.Len(t, comps, 1)
	require.Len(t, comps[0].Edges, 4)
	for _, e := range comps[0].Edges {
		assert.True(t, e.DrawEdge)
	}
}

func TestAcceptTriangleRejectsZeroArea(t *testing.T) {
	h := hoard.New(testBox())
	a := h.FetchDiscretized(0, 0, 0)
	b := h.FetchDiscretized(2, 2, 0)
	c := h.FetchDiscretized(4, 4, 0) // collinear with a, b
	tr := New(h, 0)
	assert.False(t, tr.acceptTriangle(uint32(a), uint32(b), uint32(c)))
}

func TestAcceptTriangleRejectsRepeatedVertex(t *testing.T) {
	h := hoard.New(testBox())
	a := h.FetchDiscretized(0, 0, 0)
	b := h.FetchDiscretized(2, 2, 0)
	tr := New(h, 0)
	assert.False(t, tr.acceptTriangle(uint32(a), uint32(a), uint32(b)))
}
