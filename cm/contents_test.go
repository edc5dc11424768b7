// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"testing"

	"clipmap/math/vec"
)

func TestPointContentsUnitCube(t *testing.T) {
	w := unitCubeWorld(t)

	inside := vec.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	if got := PointContents(w, inside, WorldModelHandle, 0); got != ContentsSolid {
		t.Errorf("PointContents(inside) = %v, want %v", got, ContentsSolid)
	}

	outside := vec.Vec3{X: 5, Y: 5, Z: 5}
	if got := PointContents(w, outside, WorldModelHandle, 0); got != 0 {
		t.Errorf("PointContents(outside) = %v, want 0", got)
	}
}

func TestPointContentsSkipMask(t *testing.T) {
	w := unitCubeWorld(t)
	inside := vec.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

	if got := PointContents(w, inside, WorldModelHandle, ContentsSolid); got != 0 {
		t.Errorf("PointContents with skipmask = %v, want 0", got)
	}
}

func TestBoxContentsOverlap(t *testing.T) {
	w := unitCubeWorld(t)

	mins := vec.Vec3{X: 0.75, Y: 0.75, Z: 0.75}
	maxs := vec.Vec3{X: 2, Y: 2, Z: 2}
	if got := BoxContents(w, mins, maxs, WorldModelHandle, 0); got != ContentsSolid {
		t.Errorf("BoxContents(overlapping) = %v, want %v", got, ContentsSolid)
	}

	mins2 := vec.Vec3{X: 5, Y: 5, Z: 5}
	maxs2 := vec.Vec3{X: 6, Y: 6, Z: 6}
	if got := BoxContents(w, mins2, maxs2, WorldModelHandle, 0); got != 0 {
		t.Errorf("BoxContents(disjoint) = %v, want 0", got)
	}
}

func TestPointContentsEmptyWorld(t *testing.T) {
	w, err := NewWorld(nil, nil, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if got := PointContents(w, vec.Vec3{}, WorldModelHandle, 0); got != 0 {
		t.Errorf("PointContents(empty world) = %v, want 0", got)
	}
}
