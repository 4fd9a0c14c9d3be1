// SPDX-License-Identifier: Unlicense OR MIT

package tess

import (
	"math"
	"sort"

	"github.com/arl/assertgo"
	"golang.org/x/exp/maps"

	"github.com/gioui-contrib/filledpath/internal/grid"
	"github.com/gioui-contrib/filledpath/internal/hoard"
)

// minHeight is the minimum triangle altitude, in grid units, below which a
// triangle is a sliver smaller than display resolution and is dropped.
const minHeight = 1 << 7

// Edge is one silhouette-edge candidate from a monotone-polygon boundary.
type Edge struct {
	Start, End int
	Next       int
	DrawEdge   bool
	DrawBevel  bool
}

// Component is the accumulated triangle and edge data for one stored
// winding number (§3's "per-winding component data").
type Component struct {
	Winding   int
	Triangles []uint32
	Edges     []Edge
}

// Tesser drives one Triangulator over one SubPath's hoard-generated
// contours and collects per-winding triangles and silhouette edges.
type Tesser struct {
	hoard         *hoard.Hoard
	windingOffset int

	components map[int]*Component
	curWinding int // raw, triangulator-reported winding of the in-progress batch
	pending    []uint32
	vertCount  int
	failed     bool
}

// New builds a Tesser for one SubPath, given its PointHoard and the
// winding offset GenerateContours computed.
func New(h *hoard.Hoard, windingOffset int) *Tesser {
	return &Tesser{
		hoard:         h,
		windingOffset: windingOffset,
		components:    make(map[int]*Component),
	}
}

// Failed reports whether the triangulator signaled a failure during Run.
func (t *Tesser) Failed() bool { return t.failed }

// Components returns the accumulated per-winding components, sorted by
// stored winding number for deterministic iteration.
func (t *Tesser) Components() []*Component {
	keys := maps.Keys(t.components)
	sort.Ints(keys)
	out := make([]*Component, len(keys))
	for i, k := range keys {
		out[i] = t.components[k]
	}
	return out
}

func (t *Tesser) component(stored int) *Component {
	c, ok := t.components[stored]
	if !ok {
		c = &Component{Winding: stored}
		t.components[stored] = c
	}
	return c
}

// Run drives tri through contours, a single polygon made of one or more
// closed contours, each a sequence of hoard vertex indices.
func (t *Tesser) Run(tri Triangulator, contours []hoard.Contour) {
	tri.SetCallbacks(t)
	tri.BeginPolygon()
	for _, c := range contours {
		tri.BeginContour(true)
		for _, v := range c {
			x, y := t.hoard.Apply(v.Index, t.vertCount)
			t.vertCount++
			tri.TessVertex(x, y, uint32(v.Index))
		}
		tri.EndContour()
	}
	tri.EndPolygon()
}

func (t *Tesser) FillRule(winding int) bool { return true }

func (t *Tesser) Begin(winding int) {
	t.curWinding = winding
	t.component(winding + t.windingOffset)
	t.pending = t.pending[:0]
}

func (t *Tesser) Vertex(id uint32) {
	t.pending = append(t.pending, id)
	if len(t.pending) < 3 {
		return
	}
	a, b, c := t.pending[0], t.pending[1], t.pending[2]
	t.pending = t.pending[:0]
	if a == NullClientID || b == NullClientID || c == NullClientID {
		t.failed = true
		return
	}
	if !t.acceptTriangle(a, b, c) {
		return
	}
	comp := t.component(t.curWinding + t.windingOffset)
	comp.Triangles = append(comp.Triangles, a, b, c)
}

func (t *Tesser) acceptTriangle(a, b, c uint32) bool {
	if a == b || b == c || a == c {
		return false
	}
	pa, pb, pc := t.hoard.IPoint(int(a)), t.hoard.IPoint(int(b)), t.hoard.IPoint(int(c))
	area2 := cross(pb.X-pa.X, pb.Y-pa.Y, pc.X-pa.X, pc.Y-pa.Y)
	if area2 == 0 {
		return false
	}
	if area2 < 0 {
		area2 = -area2
	}
	return altitudeOK(area2, pa, pb) && altitudeOK(area2, pb, pc) && altitudeOK(area2, pc, pa)
}

func cross(ax, ay, bx, by int64) int64 { return ax*by - ay*bx }

func altitudeOK(area2 int64, p, q grid.Point) bool {
	dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return false
	}
	altitude := float64(area2) / length
	return altitude >= minHeight
}

func (t *Tesser) Combine(x, y float64, data [4]uint32, weight [4]float32) uint32 {
	var nx, ny float64
	valid := true
	for _, id := range data {
		if id == NullClientID {
			valid = false
			break
		}
	}
	if valid {
		for i, id := range data {
			px, py := t.hoard.Point(int(id))
			nx += px * float64(weight[i])
			ny += py * float64(weight[i])
		}
	} else {
		nx, ny = t.hoard.Unapply(x, y)
	}
	return uint32(t.hoard.FetchUndiscretized(nx, ny))
}

func (t *Tesser) Boundary(step int, isMaxX, isMaxY bool) (id uint32, x, y float64) {
	idx, ip := t.hoard.FetchCorner(isMaxX, isMaxY)
	x, y = float64(ip.X), float64(ip.Y)
	d := t.hoard.FudgeDelta() * float64(step)
	if x > grid.Center {
		x += d
	} else {
		x -= d
	}
	if y > grid.Center {
		y += d
	} else {
		y -= d
	}
	return uint32(idx), x, y
}

func (t *Tesser) EmitMonotone(winding int, ids []uint32, neighbors []int) {
	assert.True(len(ids) == len(neighbors), "tess: emit_monotone vertex/neighbor count mismatch")
	comp := t.component(winding + t.windingOffset)
	n := len(ids)
	if n == 0 {
		return
	}
	base := len(comp.Edges)
	for i := 0; i < n; i++ {
		va, vb := ids[i], ids[(i+1)%n]
		hugs := t.hoard.EdgeHugs(int(va), int(vb))
		same := neighbors[i] == winding
		comp.Edges = append(comp.Edges, Edge{
			Start:    int(va),
			End:      int(vb),
			Next:     base + (i+1)%n,
			DrawEdge: !hugs && !same,
		})
	}
	for i := 0; i < n; i++ {
		cur := &comp.Edges[base+i]
		nxt := &comp.Edges[cur.Next]
		if cur.DrawEdge || nxt.DrawEdge {
			cur.DrawBevel = true
		}
	}
}
