// SPDX-License-Identifier: Unlicense OR MIT

package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gioui-contrib/filledpath/internal/attrib"
)

func TestAreaOfUnitSquare(t *testing.T) {
	attrs := []attrib.FillVertex{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	idx := []uint32{0, 1, 2, 0, 2, 3}
	got := Area(attrs, idx, 0, 0, 1, 1, 64)
	assert.InDelta(t, 1.0, got, 0.05)
}

func TestAreaOfEmptyIndicesIsZero(t *testing.T) {
	attrs := []attrib.FillVertex{{X: 0, Y: 0}}
	assert.Equal(t, 0.0, Area(attrs, nil, 0, 0, 1, 1, 64))
}
