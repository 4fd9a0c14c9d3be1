// SPDX-License-Identifier: Unlicense OR MIT

package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inRange(v int64) bool { return v >= MinCoord && v <= MaxCoord }

func TestIApplyRange(t *testing.T) {
	c := New(0, 0, 10, 10)
	for _, p := range [][2]float64{{0, 0}, {10, 10}, {5, 5}, {-1, 11}} {
		ip := c.IApply(p[0], p[1])
		assert.True(t, inRange(ip.X))
		assert.True(t, inRange(ip.Y))
	}
}

func TestIApplyCorners(t *testing.T) {
	c := New(0, 0, 10, 10)
	require.Equal(t, Point{X: MinCoord, Y: MinCoord}, c.IApply(0, 0))
	require.Equal(t, Point{X: MaxCoord, Y: MaxCoord}, c.IApply(10, 10))
}

func TestUnapplyRoundTrip(t *testing.T) {
	c := New(-5, -5, 5, 5)
	ip := c.IApply(2.5, -1.5)
	x, y := c.Unapply(float64(ip.X), float64(ip.Y))
	assert.InDelta(t, 2.5, x, 1e-3)
	assert.InDelta(t, -1.5, y, 1e-3)
}

func TestDegenerateAxis(t *testing.T) {
	// A zero-width box (a vertical line) maps every point on that axis to
	// the same grid coordinate instead of dividing by zero.
	c := New(3, 0, 3, 10)
	a := c.IApply(3, 2)
	b := c.IApply(3, 8)
	assert.Equal(t, a.X, b.X)
}

func TestEdgeHugsBoundary(t *testing.T) {
	assert.True(t, EdgeHugsBoundary(Point{MinCoord, MinCoord}, Point{MinCoord, 500}))
	assert.True(t, EdgeHugsBoundary(Point{MaxCoord, 10}, Point{MaxCoord, 20}))
	assert.False(t, EdgeHugsBoundary(Point{Center, Center}, Point{Center + 1, Center}))
}

func TestFudgeDeltaSubFP32(t *testing.T) {
	// FudgeDelta must be invisible once rounded to float32 at grid
	// magnitude, but distinct in float64.
	base := float64(Center)
	assert.Equal(t, float32(base), float32(base+FudgeDelta))
	assert.NotEqual(t, base, base+FudgeDelta)
}
