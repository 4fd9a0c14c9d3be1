// SPDX-License-Identifier: Unlicense OR MIT

// Package winding holds the small per-point vocabulary shared by SubPath
// splitting and PointHoard's boundary reduction: the boundary-flag bitset,
// the four box corners in cyclic CCW order, and the progress arithmetic
// used to fold a boundary-hugging contour into a winding offset.
package winding

import "github.com/arl/assertgo"

// Flags is the per-point boundary-flag bitset. on_min_x and on_max_x are
// mutually exclusive, as are the y flags.
type Flags uint8

const (
	OnMinX Flags = 1 << iota
	OnMaxX
	OnMinY
	OnMaxY
)

// Validate asserts the mutual-exclusion invariant; a contract violation
// here is a programmer error, never a caller-recoverable condition.
func (f Flags) Validate() {
	assert.True(f&(OnMinX|OnMaxX) != (OnMinX | OnMaxX), "winding: flags %v set both x bits", f)
	assert.True(f&(OnMinY|OnMaxY) != (OnMinY | OnMaxY), "winding: flags %v set both y bits", f)
}

// Corner identifies one of the box's four corners, in cyclic CCW order.
type Corner int

const (
	MinXMinY Corner = iota
	MaxXMinY
	MaxXMaxY
	MinXMaxY
	numCorners
)

// NotACorner is returned by AsCorner when the flag set names no corner.
const NotACorner Corner = -1

var cornerFlags = [numCorners]Flags{
	MinXMinY: OnMinX | OnMinY,
	MaxXMinY: OnMaxX | OnMinY,
	MaxXMaxY: OnMaxX | OnMaxY,
	MinXMaxY: OnMinX | OnMaxY,
}

// AsCorner reports which corner, if any, f identifies. Any combination of
// bits other than the four listed in cornerFlags is "not a corner" (zero,
// one, or an impossible two-bit set such as on_min_x|on_max_x, which
// Validate would already have rejected).
func (f Flags) AsCorner() (Corner, bool) {
	for c, cf := range cornerFlags {
		if cf == f {
			return Corner(c), true
		}
	}
	return NotACorner, false
}

// Next returns the next corner in CCW order.
func (c Corner) Next() Corner { return (c + 1) % numCorners }

// Prev returns the previous corner in CCW order.
func (c Corner) Prev() Corner { return (c + numCorners - 1) % numCorners }

// Flags returns the boundary-flag bitset identifying c.
func (c Corner) Flags() Flags { return cornerFlags[c] }

// Progress reports a contour's boundary progress walking from corner a to
// corner b: +1 advancing to the next corner in CCW order, -1 to the
// previous, 0 otherwise (including a == b).
func Progress(a, b Corner) int {
	switch b {
	case a.Next():
		return 1
	case a.Prev():
		return -1
	default:
		return 0
	}
}

// BoundaryProgress is Progress generalized over raw flag sets: it is
// nonzero only when both a and b identify corners that are CCW neighbors.
// A non-corner boundary point (a single flag bit, from a point that lies
// on an edge but not at a corner) always yields zero progress, so only
// corner-to-corner contour segments accumulate a winding offset; see the
// reduction rule in PointHoard.
func BoundaryProgress(a, b Flags) int {
	ca, aOK := a.AsCorner()
	cb, bOK := b.AsCorner()
	if !aOK || !bOK {
		return 0
	}
	return Progress(ca, cb)
}
