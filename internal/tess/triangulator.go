// SPDX-License-Identifier: Unlicense OR MIT

// Package tess drives the external triangulator (§6's contract) and
// collects its output per winding component: triangle lists and
// silhouette-edge boundaries. The triangulator itself is out of scope
// (§1); this package only defines the interface it must satisfy and the
// Tesser that talks to it, mirroring the callback-driven decode loop the
// teacher uses to turn an op stream into rasterizer calls (raster/raster.go
// Rasterizer.Frame).
package tess

import "math"

// NullClientID is the sentinel a Callbacks.Vertex call receives in place
// of a real vertex id when the triangulator could not resolve one; it
// signals a local, non-fatal triangulation failure (§7).
const NullClientID uint32 = math.MaxUint32

// Callbacks is implemented by the Tesser and registered with a
// Triangulator before driving it through one SubPath.
type Callbacks interface {
	// FillRule reports whether the triangulator should emit geometry for
	// the given (triangulator-local) winding number. The engine always
	// answers true: every winding is emitted and classified later.
	FillRule(winding int) bool
	// Begin starts a new triangle batch for the reported winding number.
	Begin(winding int)
	// Vertex receives triangle corner ids in groups of three. An id equal
	// to NullClientID marks the whole triangle as failed.
	Vertex(id uint32)
	// Combine asks for an interpolated vertex at grid-space (x, y). When
	// all four data ids are valid they are the inputs to interpolate by
	// weight; otherwise (x, y) must be inverted back to original space.
	Combine(x, y float64, data [4]uint32, weight [4]float32) uint32
	// Boundary asks for one corner of the bounding rectangle, optionally
	// perturbed by step fudge deltas away from the grid center.
	Boundary(step int, isMaxX, isMaxY bool) (id uint32, x, y float64)
	// EmitMonotone reports one monotone polygon's boundary: vertex ids and,
	// per edge, the winding number of the polygon on the other side.
	EmitMonotone(winding int, vertexIDs []uint32, neighborWindings []int)
}

// Triangulator is the external collaborator consumed by the Tesser. It is
// acquired and released around each SubPath realization; no pooling is
// required (§5).
type Triangulator interface {
	SetCallbacks(cb Callbacks)
	SetBoundaryOnly(bool)
	BeginPolygon()
	BeginContour(isClosed bool)
	TessVertex(x, y float64, id uint32)
	EndContour()
	EndPolygon()
}

// Factory constructs a fresh Triangulator handle; the Builder calls it once
// per SubPath realization (§5: "acquired and released around each SubPath
// realization").
type Factory func() Triangulator
