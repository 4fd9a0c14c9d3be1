// SPDX-License-Identifier: Unlicense OR MIT

// Package grid implements the integer discretization grid that lets the
// engine hand a general-purpose fp64 triangulator single-precision input
// without tolerating coincident edges. See CoordinateConverter in the
// design notes: every SubPath realization gets its own Converter scoped to
// that SubPath's bounding box, remapped onto [MinCoord, MaxCoord]².
package grid

import (
	"math"

	"github.com/arl/assertgo"
)

const (
	// Log2BoxDim is the bit width of the discretization grid. 2^24 fits
	// inside fp32's 23-bit significand, so grid coordinates up to 2^24 are
	// exactly representable in fp32 (MaxCoord, 2^24+1, is the one value in
	// range that is not; it rounds to 2^24).
	Log2BoxDim = 24
	// BoxDim is the grid's side length in grid units.
	BoxDim = 1 << Log2BoxDim
	// MinCoord and MaxCoord bound every axis of every grid coordinate.
	// Spec §4.3 phrases the extremes as 0 and 2^24; they are shifted up by
	// 1 here so every produced coordinate is strictly positive and int64
	// arithmetic in hugsAxis/near never has to special-case a zero extreme.
	MinCoord = 1
	MaxCoord = 1 + BoxDim
	// Center is the fixed midpoint of the grid, used to pick which
	// direction the fudge offset nudges a vertex.
	Center = MinCoord + BoxDim/2

	// NegativeLog2Fudge is the shift defining FudgeDelta.
	NegativeLog2Fudge = 20
	// FudgeDelta is additive, not multiplicative: it is more than 30 fp64
	// ULPs at grid magnitude (~2^24) but less than one fp32 ULP there, so
	// fudged positions are bit-identical in fp32 while remaining distinct
	// in the fp64 arithmetic the triangulator uses.
	FudgeDelta = 1.0 / (1 << NegativeLog2Fudge)
)

// Point is an integer grid coordinate pair.
type Point struct {
	X, Y int64
}

// Converter remaps one SubPath's fp64 bounding box onto the grid.
type Converter struct {
	pminX, pminY float64
	scaleX, scaleY float64
}

// New builds a Converter for the box [pmin, pmax].
func New(pminX, pminY, pmaxX, pmaxY float64) *Converter {
	assert.True(pmaxX >= pminX && pmaxY >= pminY, "grid: degenerate box min=(%v,%v) max=(%v,%v)", pminX, pminY, pmaxX, pmaxY)
	c := &Converter{pminX: pminX, pminY: pminY}
	c.scaleX = safeScale(pmaxX - pminX)
	c.scaleY = safeScale(pmaxY - pminY)
	return c
}

func safeScale(dim float64) float64 {
	if dim <= 0 {
		// A zero-extent axis (a degenerate, line-like path) maps every
		// point on that axis to the same grid coordinate.
		return 0
	}
	return BoxDim / dim
}

func clampInt(v float64) int64 {
	if v < 0 {
		return 0
	}
	if v > BoxDim {
		return BoxDim
	}
	return int64(math.Round(v))
}

// IApply maps a point in the converter's fp64 box onto the integer grid.
// The result always lies in [MinCoord, MaxCoord] on each axis.
func (c *Converter) IApply(x, y float64) Point {
	return Point{
		X: MinCoord + clampInt(c.scaleX*(x-c.pminX)),
		Y: MinCoord + clampInt(c.scaleY*(y-c.pminY)),
	}
}

// Unapply inverts IApply, mapping a grid-space fp64 coordinate back to the
// converter's original box.
func (c *Converter) Unapply(x, y float64) (px, py float64) {
	px, py = c.pminX, c.pminY
	if c.scaleX != 0 {
		px = (x-MinCoord)/c.scaleX + c.pminX
	}
	if c.scaleY != 0 {
		py = (y-MinCoord)/c.scaleY + c.pminY
	}
	return
}

// EdgeHugsBoundary reports whether, on some axis, both endpoints of the
// edge (a, b) sit within 1 grid unit of the grid's extreme coordinate.
func EdgeHugsBoundary(a, b Point) bool {
	return hugsAxis(a.X, b.X) || hugsAxis(a.Y, b.Y)
}

func hugsAxis(a, b int64) bool {
	return (near(a, MinCoord) && near(b, MinCoord)) || (near(a, MaxCoord) && near(b, MaxCoord))
}

func near(v, extreme int64) bool {
	d := v - extreme
	if d < 0 {
		d = -d
	}
	return d <= 1
}
