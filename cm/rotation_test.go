// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"testing"

	"clipmap/math/vec"
)

// TestTransformedBoxTraceYaw90 covers §4.7 with a nonzero rotation: the
// unit cube world is traced with the model yawed 90 degrees, using a
// world-space ray that lands on the same local-frame ray as scenario
// (b) (point trace from (-1,0.5,0.5) to (2,0.5,0.5) against the unit
// cube). If createRotationMatrix failed to invert its right row, this
// ray would land on a different local ray entirely and either miss the
// cube or report the wrong contact plane.
func TestTransformedBoxTraceYaw90(t *testing.T) {
	w := unitCubeWorld(t)

	angles := vec.Vec3{X: 0, Y: 90, Z: 0}
	origin := vec.Vec3{}

	// world = (-local.Y, local.X, local.Z) is the inverse of the
	// yaw=90 rotation matrix (right row inverted), so this start/end
	// maps to local (-1,0.5,0.5) -> (2,0.5,0.5), scenario (b)'s ray.
	start := vec.Vec3{X: -0.5, Y: -1, Z: 0.5}
	end := vec.Vec3{X: -0.5, Y: 2, Z: 0.5}

	r := TransformedBoxTrace(w, start, end, vec.Vec3{}, vec.Vec3{}, WorldModelHandle, ContentsSolid, 0, origin, angles)

	want := float32((1 - surfaceClipEpsilon) / 3)
	if diff := r.Fraction - want; diff < -1e-4 || diff > 1e-4 {
		t.Fatalf("Fraction = %v, want ~%v", r.Fraction, want)
	}

	wantNormal := vec.Vec3{X: 0, Y: -1, Z: 0}
	if !vec.Equal(r.Plane.Normal, wantNormal) {
		t.Errorf("Plane.Normal = %v, want %v (local (-1,0,0) rotated back to world)", r.Plane.Normal, wantNormal)
	}

	if got := CheckTraceConsistency(start, end, ContentsSolid, 0, r); got != "" {
		t.Errorf("CheckTraceConsistency: %s", got)
	}
}
