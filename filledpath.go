// SPDX-License-Identifier: Unlicense OR MIT

// Package filledpath computes, on demand, a spatial hierarchy of
// triangulated sub-regions for a tessellated planar path under arbitrary
// fill rules, together with anti-alias silhouette geometry along each
// winding component's edges. See the teacher's gpu package for the sibling
// "build once, select and merge for each frame" style this follows.
package filledpath

import (
	"github.com/gioui-contrib/filledpath/f32"
	"github.com/gioui-contrib/filledpath/internal/attrib"
	"github.com/gioui-contrib/filledpath/internal/subpath"
	"github.com/gioui-contrib/filledpath/internal/tess"
)

// FillRule enumerates the four standard fill predicates over a winding
// number (§6, GLOSSARY).
type FillRule int

const (
	FillRuleOddEven FillRule = iota
	FillRuleNonzero
	FillRuleComplementOddEven
	FillRuleComplementNonzero

	fillRuleDataCount
)

// FilledPath is the construction from a tessellated path (§6): a set of
// closed polygonal contours with integer winding contributions, given as
// (X, Y) polylines in some caller-chosen fp64 unit.
type FilledPath struct {
	root   *node
	nodes  []*node
	newTri tess.Factory
}

// New builds the full tree skeleton for contours (all splits decided, no
// triangulation yet, per §3's lifecycle) using tri to construct a fresh
// external Triangulator handle for each subset realized later.
func New(contours [][][2]float64, tri tess.Factory) *FilledPath {
	root := subpath.NewRoot(contours)
	tb := &treeBuilder{}
	rootNode := tb.build(root)
	return &FilledPath{root: rootNode, nodes: tb.nodes, newTri: tri}
}

// NumSubsets reports the number of nodes in the tree (leaves and interior
// nodes both carry a stable subset ID, per §3).
func (fp *FilledPath) NumSubsets() int { return len(fp.nodes) }

// Subset idempotently forces realization of subset i and returns its data.
func (fp *FilledPath) Subset(i int) Subset {
	n := fp.nodes[i]
	n.makeReady(fp.newTri)
	return Subset{
		ID:             n.id,
		BoundingPath:   boundingPath(n.boxF32),
		WindingNumbers: n.data.windingNumbers,
		FillAttrs:      n.data.fillAttrs,
		FillIndices:    n.data.fillIdx,
		FillRanges:     n.data.fillRanges,
		Fuzz:           n.data.fuzz,
	}
}

// SelectSubsets transforms clip into the tree's local frame via
// clipMatrixLocal and returns the IDs of the subsets that together cover
// the unclipped region, each no larger than maxAttr attributes / maxIdx
// indices (§4.6, §6).
func (fp *FilledPath) SelectSubsets(clip []HalfPlane, clipMatrixLocal f32.Affine2D, maxAttr, maxIdx int) []int {
	local := make([]HalfPlane, len(clip))
	for i, pl := range clip {
		local[i] = transformHalfPlane(pl, clipMatrixLocal)
	}
	var out []int
	fp.root.selectSubsets(local, maxAttr, maxIdx, fp.newTri, &out)
	return out
}

// Subset is one spatial sub-region's realized geometry: a closed bounding
// rectangle, the winding numbers present, and the packed fill and fuzz
// attribute chunks (§6).
type Subset struct {
	ID             int
	BoundingPath   [4]f32.Point
	WindingNumbers []int
	FillAttrs      []attrib.FillVertex
	FillIndices    []uint32
	FillRanges     attrib.Ranges
	Fuzz           map[int]*attrib.FuzzChunk
}

func boundingPath(box f32.Rectangle) [4]f32.Point {
	return [4]f32.Point{
		f32.Pt(box.Min.X, box.Min.Y),
		f32.Pt(box.Max.X, box.Min.Y),
		f32.Pt(box.Max.X, box.Max.Y),
		f32.Pt(box.Min.X, box.Max.Y),
	}
}

// FillChunkFromFillRule returns the fixed chunk id for one of the four
// standard fill rules (§4.7).
func FillChunkFromFillRule(rule FillRule) int { return int(rule) }

// FillChunkFromWindingNumber returns the fixed chunk id for one specific
// winding number's fill triangles: complement_nonzero for w==0, otherwise
// fill_rule_data_count + sign + 2*(|w|-1) (§4.7).
func FillChunkFromWindingNumber(w int) int {
	if w == 0 {
		return int(FillRuleComplementNonzero)
	}
	aw, sign := w, 0
	if aw < 0 {
		aw, sign = -aw, 1
	}
	return int(fillRuleDataCount) + sign + 2*(aw-1)
}

// AAFuzzChunkFromWindingNumber returns the fixed chunk id for one winding
// number's fuzz geometry, interleaving nonnegative and negative windings as
// 0, -1, 1, -2, 2, … (§4.7).
func AAFuzzChunkFromWindingNumber(w int) int {
	aw := w
	if aw < 0 {
		aw = -aw
	}
	u := 2 * aw
	if w < 0 {
		u--
	}
	return u
}

// Stats is a diagnostic summary of a built tree, useful for instrumenting a
// consumer's draw-call and triangle budget; not part of the core contract.
type Stats struct {
	NumSubsets       int
	MaxRealizedDepth int
	TotalTriangles   int
}

// Stats walks the tree, reporting totals over whatever subsets have been
// realized so far; it never forces realization.
func (fp *FilledPath) Stats() Stats {
	s := Stats{NumSubsets: len(fp.nodes)}
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if n.data != nil {
			if depth > s.MaxRealizedDepth {
				s.MaxRealizedDepth = depth
			}
			s.TotalTriangles += len(n.data.fillIdx) / 3
		}
		if !n.isLeaf() {
			walk(n.left, depth+1)
			walk(n.right, depth+1)
		}
	}
	walk(fp.root, 0)
	return s
}

// Close documents the post-order destruction ordering §5 specifies; Go's
// garbage collector makes it a no-op, but the method keeps the contract's
// shape available to a future pooled-triangulator owner.
func (fp *FilledPath) Close() error { return nil }
