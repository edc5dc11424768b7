// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"testing"

	"clipmap/math/vec"
	"clipmap/rand"
)

// randVec draws each component from [lo,hi) using g.
func randVec(g *rand.Generator, lo, hi float32) vec.Vec3 {
	span := hi - lo
	return vec.Vec3{
		X: lo + g.Float32()*span,
		Y: lo + g.Float32()*span,
		Z: lo + g.Float32()*span,
	}
}

// TestTraceConsistencyFuzz runs a large number of random box and capsule
// traces against a fixed brush-and-patch world and checks that every
// result satisfies CheckTraceConsistency, the property required by the
// fuzz test.
func TestTraceConsistencyFuzz(t *testing.T) {
	w := fuzzWorld(t)
	g := rand.New(12345)

	for i := 0; i < 2000; i++ {
		start := randVec(&g, -4, 4)
		end := randVec(&g, -4, 4)

		size := g.Float32()*0.9 + 0.05
		mins := vec.Vec3{X: -size, Y: -size, Z: -size}
		maxs := vec.Vec3{X: size, Y: size, Z: size}

		var r TraceResult
		if g.Intn(2) == 0 {
			r = BoxTrace(w, start, end, mins, maxs, WorldModelHandle, ContentsSolid, 0)
		} else {
			sphere := Sphere{Radius: size, HalfHeight: size}
			r = CapsuleTrace(w, start, end, sphere, WorldModelHandle, ContentsSolid, 0)
		}

		if msg := CheckTraceConsistency(start, end, ContentsSolid, 0, r); msg != "" {
			t.Fatalf("iteration %d: start=%v end=%v: %s", i, start, end, msg)
		}
	}
}

// fuzzWorld builds a small world with two overlapping-leaf brushes (so
// the checkcount dedup actually gets exercised) plus a patch surface, all
// reachable from a two-level tree.
func fuzzWorld(t *testing.T) *World {
	t.Helper()

	cube := func(mins, maxs vec.Vec3) Brush {
		planes := axialPlanes(mins, maxs)
		sides := make([]BrushSide, len(planes))
		for i := range planes {
			sides[i] = BrushSide{Plane: &planes[i]}
		}
		return Brush{Sides: sides, Bounds: [2]vec.Vec3{mins, maxs}, Contents: ContentsSolid}
	}

	brushes := []Brush{
		cube(vec.Vec3{X: -1, Y: -1, Z: -1}, vec.Vec3{X: 1, Y: 1, Z: 1}),
		cube(vec.Vec3{X: 1.5, Y: -1, Z: -1}, vec.Vec3{X: 3, Y: 1, Z: 1}),
	}

	// a single facet on the plane x=1.2, between the two brushes, bounded
	// by y=-1 and y=1 plus its back plane, reachable as a patch surface
	// from the same leaf as both brushes.
	patchPlane := func(normal vec.Vec3, dist float32) PatchPlane {
		p := NewPlane(normal, dist)
		return PatchPlane{Plane: p, SignBits: p.SignBits}
	}
	sc := &SurfaceCollide{
		Planes: []PatchPlane{
			patchPlane(vec.Vec3{X: 1}, 1.2),
			patchPlane(vec.Vec3{X: -1}, -1.2),
			patchPlane(vec.Vec3{Y: 1}, 1),
			patchPlane(vec.Vec3{Y: -1}, 1),
		},
		Facets: []Facet{
			{SurfacePlane: 0, BorderPlanes: []int{2, 3, 1}, BorderInward: []bool{false, false, true}},
		},
		Bounds: [2]vec.Vec3{{X: 1.2, Y: -1, Z: -1}, {X: 1.2, Y: 1, Z: 1}},
	}
	surfaces := []Surface{
		{Type: SurfacePatch, Contents: ContentsSolid, Collide: sc},
	}

	leaf := Leaf{Brushes: []int32{0, 1}, Surfaces: []int32{0}}

	splitPlane := NewPlane(vec.Vec3{X: 1}, 0)
	node := Node{Plane: &splitPlane, Children: [2]int32{-1, -1}}

	w, err := NewWorld([]Node{node}, []Leaf{leaf}, brushes, surfaces, nil, false)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}
