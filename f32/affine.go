// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "math"

// Affine2D is an affine transformation matrix in row-major form:
//
//	sx hx ox
//	hy sy oy
//
// Transform applies this matrix to a Point; Mul composes two matrices so
// that (a.Mul(b)).Transform(p) == a.Transform(b.Transform(p)).
type Affine2D struct {
	sx, hx, ox float32
	hy, sy, oy float32
}

// Elems returns the matrix elements in the order (sx, hx, ox, hy, sy, oy).
func (a Affine2D) Elems() (sx, hx, ox, hy, sy, oy float32) {
	sx, hx, ox = a.sxOrIdentity(), a.hx, a.ox
	hy, sy, oy = a.hy, a.syOrIdentity(), a.oy
	return
}

func (a Affine2D) sxOrIdentity() float32 {
	if a == (Affine2D{}) {
		return 1
	}
	return a.sx
}

func (a Affine2D) syOrIdentity() float32 {
	if a == (Affine2D{}) {
		return 1
	}
	return a.sy
}

// identity normalizes a zero-value Affine2D (as constructed by Affine2D{})
// into the identity matrix.
func (a Affine2D) identity() Affine2D {
	if a == (Affine2D{}) {
		return Affine2D{sx: 1, sy: 1}
	}
	return a
}

// Offset returns a transform that applies a and then translates by p.
func (a Affine2D) Offset(p Point) Affine2D {
	return Affine2D{sx: 1, sy: 1, ox: p.X, oy: p.Y}.Mul(a)
}

// Scale returns a transform that applies a and then scales around origin by
// factor.
func (a Affine2D) Scale(origin, factor Point) Affine2D {
	m := Affine2D{
		sx: factor.X,
		sy: factor.Y,
	}.aroundPoint(origin, factor.X, factor.Y)
	return m.Mul(a)
}

// Rotate returns a transform that applies a and then rotates by radians
// around origin.
func (a Affine2D) Rotate(origin Point, radians float32) Affine2D {
	s, c := float32(math.Sin(float64(radians))), float32(math.Cos(float64(radians)))
	m := Affine2D{sx: c, hx: -s, hy: s, sy: c}.aroundOrigin(origin)
	return m.Mul(a)
}

// Shear returns a transform that applies a and then shears by ax, ay
// radians around origin.
func (a Affine2D) Shear(origin Point, ax, ay float32) Affine2D {
	tx := float32(math.Tan(float64(ax)))
	ty := float32(math.Tan(float64(ay)))
	m := Affine2D{sx: 1, hx: tx, hy: ty, sy: 1}.aroundOrigin(origin)
	return m.Mul(a)
}

// aroundPoint rebases a linear transform so that it appears to be applied
// around origin rather than around the space origin, for a transform whose
// linear part scales by (sx, sy).
func (a Affine2D) aroundPoint(origin Point, sx, sy float32) Affine2D {
	a.ox = origin.X - origin.X*sx
	a.oy = origin.Y - origin.Y*sy
	return a
}

// aroundOrigin rebases the (rotation/shear) linear part of a so it is
// applied around origin instead of around the space origin.
func (a Affine2D) aroundOrigin(origin Point) Affine2D {
	a.ox = origin.X - (a.sx*origin.X + a.hx*origin.Y)
	a.oy = origin.Y - (a.hy*origin.X + a.sy*origin.Y)
	return a
}

// Invert returns the inverse of a. Invert panics if a is singular.
func (a Affine2D) Invert() Affine2D {
	a = a.identity()
	det := a.sx*a.sy - a.hx*a.hy
	if det == 0 {
		panic("f32: matrix is not invertible")
	}
	invDet := 1 / det
	sx := a.sy * invDet
	hx := -a.hx * invDet
	hy := -a.hy * invDet
	sy := a.sx * invDet
	ox := -(sx*a.ox + hx*a.oy)
	oy := -(hy*a.ox + sy*a.oy)
	return Affine2D{sx: sx, hx: hx, ox: ox, hy: hy, sy: sy, oy: oy}
}

// Transform applies a to p and returns the result.
func (a Affine2D) Transform(p Point) Point {
	a = a.identity()
	return Point{
		X: a.sx*p.X + a.hx*p.Y + a.ox,
		Y: a.hy*p.X + a.sy*p.Y + a.oy,
	}
}

// Mul returns the transform that applies b, then a: Mul(a,b).Transform(p)
// == a.Transform(b.Transform(p)).
func (a Affine2D) Mul(b Affine2D) Affine2D {
	a, b = a.identity(), b.identity()
	return Affine2D{
		sx: a.sx*b.sx + a.hx*b.hy,
		hx: a.sx*b.hx + a.hx*b.sy,
		ox: a.sx*b.ox + a.hx*b.oy + a.ox,
		hy: a.hy*b.sx + a.sy*b.hy,
		sy: a.hy*b.hx + a.sy*b.sy,
		oy: a.hy*b.ox + a.sy*b.oy + a.oy,
	}
}
