// SPDX-License-Identifier: Unlicense OR MIT

package winding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsBothXBits(t *testing.T) {
	assert.Panics(t, func() { (OnMinX | OnMaxX).Validate() })
}

func TestValidateRejectsBothYBits(t *testing.T) {
	assert.Panics(t, func() { (OnMinY | OnMaxY).Validate() })
}

func TestValidateAcceptsCorner(t *testing.T) {
	assert.NotPanics(t, func() { (OnMinX | OnMinY).Validate() })
}

func TestAsCornerAllFour(t *testing.T) {
	for c := Corner(0); c < numCorners; c++ {
		got, ok := c.Flags().AsCorner()
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestAsCornerRejectsNonCorner(t *testing.T) {
	_, ok := OnMinX.AsCorner()
	assert.False(t, ok)
	_, ok = Flags(0).AsCorner()
	assert.False(t, ok)
}

func TestNextPrevAreInverses(t *testing.T) {
	for c := Corner(0); c < numCorners; c++ {
		assert.Equal(t, c, c.Next().Prev())
		assert.Equal(t, c, c.Prev().Next())
	}
}

func TestProgressCycle(t *testing.T) {
	assert.Equal(t, 1, Progress(MinXMinY, MaxXMinY))
	assert.Equal(t, -1, Progress(MaxXMinY, MinXMinY))
	assert.Equal(t, 0, Progress(MinXMinY, MaxXMaxY))
	assert.Equal(t, 0, Progress(MinXMinY, MinXMinY))
}

func TestBoundaryProgressNonCornerIsZero(t *testing.T) {
	assert.Equal(t, 0, BoundaryProgress(OnMinX, OnMinX|OnMinY))
	assert.Equal(t, 0, BoundaryProgress(Flags(0), OnMinX|OnMinY))
}

func TestBoundaryProgressFullCycleSumsToFour(t *testing.T) {
	corners := []Corner{MinXMinY, MaxXMinY, MaxXMaxY, MinXMaxY}
	sum := 0
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		sum += BoundaryProgress(c.Flags(), next.Flags())
	}
	assert.Equal(t, 4, sum)
}
