// SPDX-License-Identifier: GPL-2.0-or-later

// Package cm implements the collision tracing core of a BSP-based world:
// position tests and swept traces of an axis-aligned box or vertical
// capsule against a static brush/patch world, an inline brush model, or
// the built-in capsule model.
package cm

import (
	"clipmap/math/vec"
)

// Contents is a bitmask of material classes a brush or surface belongs to.
type Contents uint32

const (
	ContentsSolid Contents = 1 << iota
	ContentsLava
	ContentsSlime
	ContentsWater
	ContentsFog
	ContentsPlayerClip
	ContentsMonsterClip
	ContentsBody // used to tag capsule-vs-capsule hits, see traceThroughSphere
	ContentsTrigger
	ContentsNoDrop
)

// SurfaceFlags is a bitmask of material properties a brush side or
// surface carries (slick, nonsolid, sky, ...). Opaque to the core beyond
// being copied into the trace result.
type SurfaceFlags uint32

// PlaneType classifies a plane's normal: AxialX/Y/Z planes have a unit
// normal along one axis, letting callers skip the dot product.
type PlaneType uint8

const (
	PlaneAxialX PlaneType = iota
	PlaneAxialY
	PlaneAxialZ
	PlaneNonAxial
)

// Plane is a half-space boundary: points P with dot(Normal, P) == Dist lie
// on the plane, dot(Normal, P) > Dist lie in front of it.
type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     PlaneType
	SignBits uint8 // bit i set iff Normal.Idx(i) < 0
}

// NewPlane builds a Plane from a normal and distance, deriving Type and
// SignBits. normal must already be unit length.
func NewPlane(normal vec.Vec3, dist float32) Plane {
	p := Plane{Normal: normal, Dist: dist, Type: PlaneNonAxial}
	for i := 0; i < 3; i++ {
		if normal.Idx(i) == 1 || normal.Idx(i) == -1 {
			p.Type = PlaneType(i)
		}
		if normal.Idx(i) < 0 {
			p.SignBits |= 1 << uint(i)
		}
	}
	return p
}

// BrushSide is one half-space of a convex Brush.
type BrushSide struct {
	Plane        *Plane
	SurfaceFlags SurfaceFlags
}

// Brush is the intersection of a set of half-spaces. If there are at
// least 6 sides, the first six are the axial ±X,±Y,±Z planes defining
// Bounds exactly; testBoxInBrush skips those six once its AABB bounds
// check against Bounds has passed, since that check already covers them.
// traceThroughBrush tests every side.
type Brush struct {
	Sides    []BrushSide
	Bounds   [2]vec.Vec3 // mins, maxs
	Contents Contents
}

// PatchPlane is one plane of a SurfaceCollide's shared plane pool,
// referenced by index from facets so that adjacent facets can share a
// border plane.
type PatchPlane struct {
	Plane    Plane
	SignBits uint8
}

// Facet is a convex polygon of a patch decomposition: the half-space in
// front of SurfacePlane, clipped by its border planes. The final border
// is always the back side of SurfacePlane and must never be reported as
// the contact plane (see traceThroughSurfaceCollide).
type Facet struct {
	SurfacePlane  int
	BorderPlanes  []int
	BorderInward  []bool
}

// SurfaceCollide is the precomputed convex-facet decomposition of a
// curved (patch) surface, produced by an offline mesh-to-facet step that
// is out of scope for this package.
type SurfaceCollide struct {
	Planes []PatchPlane
	Facets []Facet
	Bounds [2]vec.Vec3
}

// SurfaceType distinguishes the handful of surface kinds the tracer
// understands; anything else is never tested against.
type SurfaceType int

const (
	SurfaceOther SurfaceType = iota
	SurfacePatch
	SurfaceTriangleSoup
)

// Surface is a single curved or triangle-soup piece of map geometry.
type Surface struct {
	Type         SurfaceType
	Contents     Contents
	SurfaceFlags SurfaceFlags
	Collide      *SurfaceCollide
}

// Leaf is a spatial cell of the BSP tree: a set of brush and surface
// indices. The same brush or surface may be listed by many leafs, hence
// the checkcount dedup in traceThroughLeaf/testInLeaf.
type Leaf struct {
	Brushes  []int32
	Surfaces []int32
}

// Node is a BSP tree node; a negative Children entry c refers to leaf
// -1-c, a non-negative entry to another node.
type Node struct {
	Plane    *Plane
	Children [2]int32
}

// TraceKind selects the shape of the volume being swept or tested.
type TraceKind int

const (
	TraceAABB TraceKind = iota
	TraceCapsule
)

// Sphere describes the mover when TraceKind == TraceCapsule: a vertical
// "pill" made of a cylinder capped by two hemispheres of Radius.
// HalfHeight is half the capsule's full height, hemispheres included, and
// Offset is the vector from the volume's center to its top hemisphere
// center (bottom is center - Offset); unrotated, Offset is
// (0, 0, HalfHeight-Radius).
type Sphere struct {
	Radius     float32
	HalfHeight float32
	Offset     vec.Vec3
}

// TraceResult is the outcome of a position test or sweep.
type TraceResult struct {
	Fraction     float32 // [0,1]; 1 means no contact
	EndPos       vec.Vec3
	Plane        Plane // valid only if Fraction < 1 && !AllSolid
	SurfaceFlags SurfaceFlags
	Contents     Contents
	StartSolid   bool
	AllSolid     bool
}
