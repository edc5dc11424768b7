// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"clipmap/math/vec"
)

// rotationMatrix is a row-major 3x3 rotation built from a set of
// pitch/yaw/roll angles, used by TransformedBoxTrace to move a trace into
// and back out of a rotated inline model's local frame.
type rotationMatrix [3]vec.Vec3

// createRotationMatrix builds the matrix whose rows are the forward,
// right and up basis vectors of angles, matching the engine's convention
// that CM_TransformedBoxTrace rotates world points into model space by
// this matrix and back out by its transpose. The right row is inverted
// after AngleVectors, exactly as CreateRotationMatrix does, since
// AngleVectors returns the un-inverted right vector and a bare
// {forward, right, up} frame is a reflection, not a proper rotation.
func createRotationMatrix(angles vec.Vec3) rotationMatrix {
	forward, right, up := vec.AngleVectors(angles)
	right = right.Scale(-1)
	return rotationMatrix{forward, right, up}
}

// rotatePoint applies m to point.
func rotatePoint(m rotationMatrix, point vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: vec.Dot(m[0], point),
		Y: vec.Dot(m[1], point),
		Z: vec.Dot(m[2], point),
	}
}

// transpose returns m's transpose, the inverse of a pure rotation.
func (m rotationMatrix) transpose() rotationMatrix {
	var t rotationMatrix
	for i := 0; i < 3; i++ {
		t[i] = vec.Vec3{X: m[0].Idx(i), Y: m[1].Idx(i), Z: m[2].Idx(i)}
	}
	return t
}

// capsuleTilt returns the world-space offset a capsule's sphere-offset
// vector picks up from being carried by a rotated inline model. Matches
// CM_TransformedBoxTrace's sign pattern exactly: (+M[0][2], -M[1][2],
// +M[2][2]) applied to m, which already carries the row-1 inversion from
// createRotationMatrix.
func capsuleTilt(m rotationMatrix, offset vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: m[0].Z * offset.Z,
		Y: -m[1].Z * offset.Z,
		Z: m[2].Z * offset.Z,
	}
}
