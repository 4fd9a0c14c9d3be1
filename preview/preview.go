// SPDX-License-Identifier: Unlicense OR MIT

// Package preview rasterizes a subset's packed fill attributes with
// golang.org/x/image/vector, the same scanline rasterizer the teacher's
// own raster.Rasterizer drives from a decoded op stream (see
// raster/raster.go's decodePath). It exists only as an independent area
// oracle for tests: a triangle-area sum can be wrong in ways a rasterized
// pixel count would catch (e.g. two triangles silently overlapping).
package preview

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gioui-contrib/filledpath/internal/attrib"
)

// Area rasterizes the triangles named by idx (index triples into attrs,
// in the subset's caller-unit fp64 space) into a res-pixels-per-unit
// raster covering [minX,minY]-[maxX,maxY] and returns the covered area
// back in caller units. Overlapping triangles (e.g. a self-intersecting
// nonzero-fill region) saturate rather than double-count, since the
// rasterizer accumulates winding coverage per pixel, not per triangle.
func Area(attrs []attrib.FillVertex, idx []uint32, minX, minY, maxX, maxY float64, res int) float64 {
	if len(idx) == 0 || res <= 0 {
		return 0
	}
	w := int((maxX - minX) * float64(res))
	h := int((maxY - minY) * float64(res))
	if w <= 0 || h <= 0 {
		return 0
	}

	toPixel := func(v attrib.FillVertex) (float32, float32) {
		return float32((float64(v.X) - minX) * float64(res)), float32((float64(v.Y) - minY) * float64(res))
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Over
	for i := 0; i+2 < len(idx); i += 3 {
		ax, ay := toPixel(attrs[idx[i]])
		bx, by := toPixel(attrs[idx[i+1]])
		cx, cy := toPixel(attrs[idx[i+2]])
		r.MoveTo(ax, ay)
		r.LineTo(bx, by)
		r.LineTo(cx, cy)
		r.LineTo(ax, ay)
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	src := image.NewUniform(color.Alpha{A: 255})
	r.Draw(dst, dst.Bounds(), src, image.Point{})

	var sum int
	for _, p := range dst.Pix {
		sum += int(p)
	}
	pixelArea := float64(sum) / 255
	return pixelArea / (float64(res) * float64(res))
}
