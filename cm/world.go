// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"github.com/pkg/errors"

	"clipmap/math/vec"
)

// Model handles recognized by BoxTrace/TransformedBoxTrace in place of a
// real inline model index. 0 always means "the world".
const (
	WorldModelHandle   = 0
	BoxModelHandle     = -1
	CapsuleModelHandle = -2
)

// InlineModel is a single brush/surface-bearing submodel, addressed by a
// positive model handle passed to BoxTrace. It is represented as one
// Leaf plus the model's bounds.
type InlineModel struct {
	Leaf   Leaf
	Bounds [2]vec.Vec3
}

// World is the immutable static geometry a Trace is run against, plus
// the per-world dedup scratch described in §5: checkcount is bumped at
// the start of every trace (and once more before position-test leaf
// iteration), and brushCheck/surfaceCheck record the stamp each brush or
// surface was last visited at. Geometry is safe to share across
// goroutines; the checkcount scratch is not, so at most one trace may
// run against a given World at a time.
type World struct {
	Nodes    []Node
	Leafs    []Leaf
	Brushes  []Brush
	Surfaces []Surface
	Models   []InlineModel // indexed by model handle - 1

	PerPolyCollision bool

	// NoCurves and ForceTriangles mirror the engine's cm_noCurves /
	// cm_forceTriangles cvars: NoCurves treats every patch surface as
	// empty space, ForceTriangles tests triangle-soup surfaces even when
	// PerPolyCollision is off. Both may be toggled between traces.
	NoCurves       bool
	ForceTriangles bool

	checkcount   uint32
	brushCheck   []uint32
	surfaceCheck []uint32
}

// NewWorld validates and wraps a precompiled set of geometry tables. The
// axial-first-six invariant on brush sides (§6) is the caller's
// responsibility; NewWorld only checks structural well-formedness.
func NewWorld(nodes []Node, leafs []Leaf, brushes []Brush, surfaces []Surface, models []InlineModel, perPolyCollision bool) (*World, error) {
	for i, n := range nodes {
		for _, c := range n.Children {
			if c >= 0 && int(c) >= len(nodes) {
				return nil, errors.Errorf("node %d: child node index %d out of range", i, c)
			}
			if c < 0 && int(-1-c) >= len(leafs) {
				return nil, errors.Errorf("node %d: child leaf index %d out of range", i, -1-c)
			}
		}
	}
	for i, l := range leafs {
		for _, b := range l.Brushes {
			if int(b) < 0 || int(b) >= len(brushes) {
				return nil, errors.Errorf("leaf %d: brush index %d out of range", i, b)
			}
		}
		for _, s := range l.Surfaces {
			if int(s) < 0 || int(s) >= len(surfaces) {
				return nil, errors.Errorf("leaf %d: surface index %d out of range", i, s)
			}
		}
	}
	return &World{
		Nodes:            nodes,
		Leafs:            leafs,
		Brushes:          brushes,
		Surfaces:         surfaces,
		Models:           models,
		PerPolyCollision: perPolyCollision,
		brushCheck:       make([]uint32, len(brushes)),
		surfaceCheck:     make([]uint32, len(surfaces)),
	}, nil
}

// bumpCheckcount advances the dedup stamp and returns it.
func (w *World) bumpCheckcount() uint32 {
	w.checkcount++
	return w.checkcount
}

// model resolves a positive inline-model handle to its backing leaf and
// bounds. BoxModelHandle and CapsuleModelHandle are handled by callers
// before reaching here.
func (w *World) model(handle int) (*InlineModel, bool) {
	i := handle - 1
	if i < 0 || i >= len(w.Models) {
		return nil, false
	}
	return &w.Models[i], true
}

// tempBoxModel builds a throwaway InlineModel consisting of a single
// brush equal to an AABB [mins,maxs], used by the box-vs-capsule and
// capsule-vs-box dispatch (§4.5) to hand the opposite volume type back
// to the ordinary leaf iterator.
func tempBoxModel(mins, maxs vec.Vec3) (InlineModel, Brush) {
	planes := axialPlanes(mins, maxs)
	sides := make([]BrushSide, len(planes))
	for i := range planes {
		sides[i] = BrushSide{Plane: &planes[i]}
	}
	brush := Brush{Sides: sides, Bounds: [2]vec.Vec3{mins, maxs}, Contents: ^Contents(0)}
	leaf := Leaf{Brushes: []int32{0}}
	return InlineModel{Leaf: leaf, Bounds: [2]vec.Vec3{mins, maxs}}, brush
}

// axialPlanes returns the six ±X,±Y,±Z half-space planes of the AABB
// [mins,maxs], in the fixed order required by the axial-first-six
// invariant (§3): -X,+X,-Y,+Y,-Z,+Z.
func axialPlanes(mins, maxs vec.Vec3) [6]Plane {
	return [6]Plane{
		NewPlane(vec.Vec3{X: -1}, -mins.X),
		NewPlane(vec.Vec3{X: 1}, maxs.X),
		NewPlane(vec.Vec3{Y: -1}, -mins.Y),
		NewPlane(vec.Vec3{Y: 1}, maxs.Y),
		NewPlane(vec.Vec3{Z: -1}, -mins.Z),
		NewPlane(vec.Vec3{Z: 1}, maxs.Z),
	}
}
