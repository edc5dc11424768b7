// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"testing"

	"clipmap/math/vec"
)

// unitCubeWorld returns a World whose only geometry is the solid unit
// cube [0,1]^3, reachable from model 0 through a single root node whose
// two children both point at the same leaf (the plane never matters:
// every trace ends up in leaf 0 regardless of which side of it falls).
func unitCubeWorld(t *testing.T) *World {
	t.Helper()

	mins := vec.Vec3{X: 0, Y: 0, Z: 0}
	maxs := vec.Vec3{X: 1, Y: 1, Z: 1}
	planes := axialPlanes(mins, maxs)
	sides := make([]BrushSide, len(planes))
	for i := range planes {
		sides[i] = BrushSide{Plane: &planes[i]}
	}
	brush := Brush{Sides: sides, Bounds: [2]vec.Vec3{mins, maxs}, Contents: ContentsSolid}

	rootPlane := NewPlane(vec.Vec3{X: 1}, 0)
	node := Node{Plane: &rootPlane, Children: [2]int32{-1, -1}}

	leaf := Leaf{Brushes: []int32{0}}

	w, err := NewWorld([]Node{node}, []Leaf{leaf}, []Brush{brush}, nil, nil, false)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestBoxTraceEmptyWorld(t *testing.T) {
	w, err := NewWorld(nil, nil, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	start := vec.Vec3{X: 0, Y: 0, Z: 0}
	end := vec.Vec3{X: 100, Y: 0, Z: 0}
	r := BoxTrace(w, start, end, vec.Vec3{}, vec.Vec3{}, WorldModelHandle, ContentsSolid, 0)

	if r.Fraction != 1 {
		t.Errorf("Fraction = %v, want 1", r.Fraction)
	}
	if !vec.Equal(r.EndPos, end) {
		t.Errorf("EndPos = %v, want %v", r.EndPos, end)
	}
	if r.StartSolid {
		t.Errorf("StartSolid = true, want false")
	}
}

func TestBoxTracePointHitsBrush(t *testing.T) {
	w := unitCubeWorld(t)

	start := vec.Vec3{X: -1, Y: 0.5, Z: 0.5}
	end := vec.Vec3{X: 2, Y: 0.5, Z: 0.5}
	r := BoxTrace(w, start, end, vec.Vec3{}, vec.Vec3{}, WorldModelHandle, ContentsSolid, 0)

	want := float32((1 - surfaceClipEpsilon) / 3)
	if diff := r.Fraction - want; diff < -1e-4 || diff > 1e-4 {
		t.Errorf("Fraction = %v, want ~%v", r.Fraction, want)
	}
	if !vec.Equal(r.Plane.Normal, vec.Vec3{X: -1}) {
		t.Errorf("Plane.Normal = %v, want (-1,0,0)", r.Plane.Normal)
	}
	if r.Plane.Dist != 0 {
		t.Errorf("Plane.Dist = %v, want 0", r.Plane.Dist)
	}
	if r.Contents != ContentsSolid {
		t.Errorf("Contents = %v, want %v", r.Contents, ContentsSolid)
	}
	if got := CheckTraceConsistency(start, end, ContentsSolid, 0, r); got != "" {
		t.Errorf("CheckTraceConsistency: %s", got)
	}
}

func TestBoxTraceStartsInsideBrush(t *testing.T) {
	w := unitCubeWorld(t)

	point := vec.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	mins := vec.Vec3{X: -1, Y: -1, Z: -1}
	maxs := vec.Vec3{X: 1, Y: 1, Z: 1}
	r := BoxTrace(w, point, point, mins, maxs, WorldModelHandle, ContentsSolid, 0)

	if !r.StartSolid || !r.AllSolid {
		t.Fatalf("StartSolid=%v AllSolid=%v, want both true", r.StartSolid, r.AllSolid)
	}
	if r.Fraction != 0 {
		t.Errorf("Fraction = %v, want 0", r.Fraction)
	}
	if !vec.Equal(r.EndPos, point) {
		t.Errorf("EndPos = %v, want %v", r.EndPos, point)
	}
}

func TestTransformedBoxTraceIdentityMatchesBoxTrace(t *testing.T) {
	w := unitCubeWorld(t)

	start := vec.Vec3{X: -1, Y: 0.5, Z: 0.5}
	end := vec.Vec3{X: 2, Y: 0.5, Z: 0.5}
	mins := vec.Vec3{X: -0.25, Y: -0.25, Z: -0.25}
	maxs := vec.Vec3{X: 0.25, Y: 0.25, Z: 0.25}

	got := TransformedBoxTrace(w, start, end, mins, maxs, WorldModelHandle, ContentsSolid, 0, vec.Vec3{}, vec.Vec3{})
	want := BoxTrace(w, start, end, mins, maxs, WorldModelHandle, ContentsSolid, 0)

	if got.Fraction != want.Fraction {
		t.Errorf("Fraction = %v, want %v", got.Fraction, want.Fraction)
	}
	if !vec.Equal(got.EndPos, want.EndPos) {
		t.Errorf("EndPos = %v, want %v", got.EndPos, want.EndPos)
	}
	if !vec.Equal(got.Plane.Normal, want.Plane.Normal) {
		t.Errorf("Plane.Normal = %v, want %v", got.Plane.Normal, want.Plane.Normal)
	}
}
