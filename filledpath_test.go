// SPDX-License-Identifier: Unlicense OR MIT

package filledpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gioui-contrib/filledpath/f32"
	"github.com/gioui-contrib/filledpath/internal/tess"
	"github.com/gioui-contrib/filledpath/preview"
)

// fanTriangulator fan-triangulates each contour as its own winding region,
// offset from the other contours of the same polygon by their nesting
// order: the first contour seen in a polygon is "outer" (reported winding
// 1), every contour after it nests one level deeper (winding 2, 3, …). This
// is enough to reproduce the nested-squares scenario in §8 without pulling
// in an external triangulator.
type fanTriangulator struct {
	cb       tess.Callbacks
	contours [][]uint32
}

func newFanTriangulator() tess.Triangulator { return &fanTriangulator{} }

func (f *fanTriangulator) SetCallbacks(cb tess.Callbacks) { f.cb = cb }
func (f *fanTriangulator) SetBoundaryOnly(bool)           {}
func (f *fanTriangulator) BeginPolygon()                  { f.contours = nil }
func (f *fanTriangulator) BeginContour(bool)              { f.contours = append(f.contours, nil) }
func (f *fanTriangulator) TessVertex(x, y float64, id uint32) {
	n := len(f.contours) - 1
	f.contours[n] = append(f.contours[n], id)
}
func (f *fanTriangulator) EndContour() {}
func (f *fanTriangulator) EndPolygon() {
	for depth, c := range f.contours {
		if len(c) < 3 {
			continue
		}
		w := depth + 1
		f.cb.Begin(w)
		for i := 1; i+1 < len(c); i++ {
			f.cb.Vertex(c[0])
			f.cb.Vertex(c[i])
			f.cb.Vertex(c[i+1])
		}
		neighbor := w - 1
		neighbors := make([]int, len(c))
		for i := range neighbors {
			neighbors[i] = neighbor
		}
		f.cb.EmitMonotone(w, c, neighbors)
	}
}

func unitSquare() [][][2]float64 {
	return [][][2]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
}

func nestedSquares() [][][2]float64 {
	return [][][2]float64{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		{{1, 1}, {3, 1}, {3, 3}, {1, 3}},
	}
}

func TestUnitSquareOneSubsetOneWinding(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	require.Equal(t, 1, fp.NumSubsets())
	s := fp.Subset(0)
	assert.Equal(t, []int{1}, s.WindingNumbers)
	assert.True(t, len(s.FillIndices) >= 6) // at least two triangles
}

func TestSubsetIdempotent(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	a := fp.Subset(0)
	b := fp.Subset(0)
	assert.Equal(t, a.WindingNumbers, b.WindingNumbers)
	assert.Equal(t, a.FillIndices, b.FillIndices)
}

func TestNestedSquaresWindings(t *testing.T) {
	fp := New(nestedSquares(), newFanTriangulator)
	s := fp.Subset(0)
	assert.Equal(t, []int{1, 2}, s.WindingNumbers)
}

// TestNestedSquaresNonzeroAreaMatchesRasterOracle cross-checks the §8
// scenario 2 nonzero-fill area (16, the outer square) against an
// independent rasterized pixel count, rather than trusting the same
// triangle-area arithmetic the fill packer itself could get wrong.
func TestNestedSquaresNonzeroAreaMatchesRasterOracle(t *testing.T) {
	fp := New(nestedSquares(), newFanTriangulator)
	s := fp.Subset(0)
	idx := s.FillIndices[s.FillRanges.Nonzero[0]:s.FillRanges.Nonzero[1]]
	got := preview.Area(s.FillAttrs, idx, 0, 0, 4, 4, 64)
	assert.InDelta(t, 16.0, got, 0.5)
}

// TestUnitSquareAreaMatchesRasterOracle is the §8 scenario 1 area check
// (1) via the same independent rasterizer.
func TestUnitSquareAreaMatchesRasterOracle(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	s := fp.Subset(0)
	got := preview.Area(s.FillAttrs, s.FillIndices, -0.5, -0.5, 1.5, 1.5, 64)
	assert.InDelta(t, 1.0, got, 0.1)
}

func TestBoundingPathEnclosesRootExtent(t *testing.T) {
	fp := New(nestedSquares(), newFanTriangulator)
	s := fp.Subset(0)
	// NewRoot pads the tight extent (see subpath.rootPad), so the bounding
	// path is a strict superset of the input squares' [0,4]x[0,4] extent,
	// not an exact match.
	assert.True(t, s.BoundingPath[0].X < 0 && s.BoundingPath[0].Y < 0)
	assert.True(t, s.BoundingPath[2].X > 4 && s.BoundingPath[2].Y > 4)
}

func TestSelectSubsetsFullyInsideReturnsRoot(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	planes := []HalfPlane{
		{A: 1, B: 0, C: 10},  // x + 10 >= 0
		{A: -1, B: 0, C: 10}, // -x + 10 >= 0
		{A: 0, B: 1, C: 10},
		{A: 0, B: -1, C: 10},
	}
	ids := fp.SelectSubsets(planes, f32.Affine2D{}, 1<<20, 1<<20)
	assert.Equal(t, []int{0}, ids)
}

func TestSelectSubsetsFullyOutsidePrunesEverything(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	planes := []HalfPlane{{A: 1, B: 0, C: -100}} // x - 100 >= 0, never true near the unit square
	ids := fp.SelectSubsets(planes, f32.Affine2D{}, 1<<20, 1<<20)
	assert.Len(t, ids, 0)
}

func TestStatsCountsOnlyRealizedSubsets(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	before := fp.Stats()
	assert.Equal(t, 0, before.TotalTriangles)
	fp.Subset(0)
	after := fp.Stats()
	assert.True(t, after.TotalTriangles > 0)
}

func TestCloseIsNoOp(t *testing.T) {
	fp := New(unitSquare(), newFanTriangulator)
	assert.NoError(t, fp.Close())
}

func TestFillChunkFromFillRule(t *testing.T) {
	assert.Equal(t, 0, FillChunkFromFillRule(FillRuleOddEven))
	assert.Equal(t, 3, FillChunkFromFillRule(FillRuleComplementNonzero))
}

func TestFillChunkFromWindingNumberZeroIsComplementNonzero(t *testing.T) {
	assert.Equal(t, FillChunkFromFillRule(FillRuleComplementNonzero), FillChunkFromWindingNumber(0))
}

func TestFillChunkFromWindingNumberDistinctPerWinding(t *testing.T) {
	seen := map[int]bool{}
	for w := -5; w <= 5; w++ {
		c := FillChunkFromWindingNumber(w)
		assert.False(t, seen[c], "winding %d collided on chunk %d", w, c)
		seen[c] = true
	}
}

func TestAAFuzzChunkFromWindingNumberInterleaves(t *testing.T) {
	assert.Equal(t, 0, AAFuzzChunkFromWindingNumber(0))
	assert.Equal(t, 1, AAFuzzChunkFromWindingNumber(-1))
	assert.Equal(t, 2, AAFuzzChunkFromWindingNumber(1))
	assert.Equal(t, 3, AAFuzzChunkFromWindingNumber(-2))
	assert.Equal(t, 4, AAFuzzChunkFromWindingNumber(2))
}
