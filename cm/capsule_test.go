// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"testing"

	"clipmap/math/vec"
)

// capsuleBounds returns the mins/maxs of a vertical capsule of the given
// radius and cylinder half-height, centered at the origin.
func capsuleBounds(radius, halfHeight float32) (vec.Vec3, vec.Vec3) {
	half := halfHeight + radius
	return vec.Vec3{X: -radius, Y: -radius, Z: -half}, vec.Vec3{X: radius, Y: radius, Z: half}
}

func TestTraceAgainstCapsuleNoContact(t *testing.T) {
	mins, maxs := capsuleBounds(10, 20)

	start := vec.Vec3{}
	end := vec.Vec3{X: 50}
	targetMins := vec.Vec3{X: 90, Y: -10, Z: -20}
	targetMaxs := vec.Vec3{X: 110, Y: 10, Z: 20}

	r := TraceAgainstCapsule(start, end, mins, maxs, TraceCapsule, nil, targetMins, targetMaxs, ContentsBody, 0)

	if r.Fraction != 1 {
		t.Errorf("Fraction = %v, want 1 (mover never gets within reach of the target)", r.Fraction)
	}
}

func TestTraceAgainstCapsuleHorizontalContact(t *testing.T) {
	mins, maxs := capsuleBounds(10, 20)

	start := vec.Vec3{}
	end := vec.Vec3{X: 100}
	targetMins := vec.Vec3{X: 40, Y: -10, Z: -20}
	targetMaxs := vec.Vec3{X: 60, Y: 10, Z: 20}

	r := TraceAgainstCapsule(start, end, mins, maxs, TraceCapsule, nil, targetMins, targetMaxs, ContentsBody, 0)

	// contact should occur close to where the capsule axes are 20 units
	// apart (r=10 each side), i.e. around x=30 out of a 100-unit sweep.
	want := float32(0.30)
	if diff := r.Fraction - want; diff < -0.05 || diff > 0.05 {
		t.Errorf("Fraction = %v, want ~%v", r.Fraction, want)
	}
	if r.Fraction >= 1 {
		t.Fatalf("expected a contact, got Fraction = %v", r.Fraction)
	}
	if r.Plane.Normal.X >= 0 {
		t.Errorf("Plane.Normal = %v, want to point back toward start (negative X)", r.Plane.Normal)
	}
}

func TestTraceAgainstBoxStartSolid(t *testing.T) {
	mins := vec.Vec3{X: -1, Y: -1, Z: -1}
	maxs := vec.Vec3{X: 1, Y: 1, Z: 1}
	point := vec.Vec3{X: 0.5, Y: 0, Z: 0}

	r := TraceAgainstBox(point, point, mins, maxs, TraceAABB, nil, vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1}, ContentsSolid, 0)

	if !r.StartSolid {
		t.Errorf("StartSolid = false, want true")
	}
}
