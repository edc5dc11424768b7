// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"clipmap/math/vec"
)

// BoxTrace sweeps an AABB mover of the given mins/maxs from start to end
// through model (WorldModelHandle for the whole world, or a positive
// inline-model handle). A zero-length sweep (start == end) runs a
// position test instead: the result's Fraction is 0 with StartSolid set
// if the box already overlaps solid geometry there, 1 otherwise.
func BoxTrace(w *World, start, end, mins, maxs vec.Vec3, model int, contents, skipContents Contents) TraceResult {
	return worldTrace(w, start, end, mins, maxs, TraceAABB, nil, model, contents, skipContents)
}

// CapsuleTrace is BoxTrace's vertical-capsule counterpart.
func CapsuleTrace(w *World, start, end vec.Vec3, sphere Sphere, model int, contents, skipContents Contents) TraceResult {
	half := sphere.HalfHeight
	mins := vec.Vec3{X: -sphere.Radius, Y: -sphere.Radius, Z: -half}
	maxs := vec.Vec3{X: sphere.Radius, Y: sphere.Radius, Z: half}
	return worldTrace(w, start, end, mins, maxs, TraceCapsule, &sphere, model, contents, skipContents)
}

func worldTrace(w *World, start, end, mins, maxs vec.Vec3, kind TraceKind, sphere *Sphere, model int, contents, skipContents Contents) TraceResult {
	stamp := w.bumpCheckcount()
	tw := newTraceWork(start, end, mins, maxs, kind, contents, skipContents, sphere)

	switch model {
	case WorldModelHandle:
		// An unloaded/empty world has no root to descend into; leave
		// tw.result at its default fraction=1, no contact.
		if len(w.Nodes) > 0 {
			if vec.Equal(start, end) {
				positionTestThroughTree(tw, w, 0, tw.start, stamp)
			} else {
				traceThroughTree(tw, w, 0, 0, 1, tw.start, tw.end, stamp)
			}
		}
	case BoxModelHandle, CapsuleModelHandle:
		// A bare world/model handle never addresses the standalone
		// box/capsule dispatch; callers wanting that use
		// TraceAgainstBox/TraceAgainstCapsule directly.
	default:
		if im, ok := w.model(model); ok {
			if vec.Equal(start, end) {
				testInLeaf(tw, w, &im.Leaf, stamp)
			} else {
				traceThroughLeaf(tw, w, &im.Leaf, stamp)
			}
		}
	}

	return finishTrace(tw, start, end)
}

// TransformedBoxTrace is BoxTrace for an inline model that has been moved
// to origin and rotated by angles (pitch, yaw, roll, degrees) away from
// the orientation it was compiled at. The mover is carried into the
// model's local frame, swept there, and the resulting contact plane and
// end position are carried back out to world space.
func TransformedBoxTrace(w *World, start, end, mins, maxs vec.Vec3, model int, contents, skipContents Contents, origin, angles vec.Vec3) TraceResult {
	return transformedTrace(w, start, end, mins, maxs, TraceAABB, nil, model, contents, skipContents, origin, angles)
}

// TransformedCapsuleTrace is TransformedBoxTrace's capsule counterpart.
func TransformedCapsuleTrace(w *World, start, end vec.Vec3, sphere Sphere, model int, contents, skipContents Contents, origin, angles vec.Vec3) TraceResult {
	half := sphere.HalfHeight
	mins := vec.Vec3{X: -sphere.Radius, Y: -sphere.Radius, Z: -half}
	maxs := vec.Vec3{X: sphere.Radius, Y: sphere.Radius, Z: half}
	return transformedTrace(w, start, end, mins, maxs, TraceCapsule, &sphere, model, contents, skipContents, origin, angles)
}

func transformedTrace(w *World, start, end, mins, maxs vec.Vec3, kind TraceKind, sphere *Sphere, model int, contents, skipContents Contents, origin, angles vec.Vec3) TraceResult {
	rotated := angles.X != 0 || angles.Y != 0 || angles.Z != 0

	localStart := vec.Sub(start, origin)
	localEnd := vec.Sub(end, origin)

	var m rotationMatrix
	if rotated {
		m = createRotationMatrix(angles)
		localStart = rotatePoint(m, localStart)
		localEnd = rotatePoint(m, localEnd)

		if kind == TraceCapsule {
			tilted := *sphere
			tilted.Offset = capsuleTilt(m, sphere.Offset)
			sphere = &tilted
		}
	}

	stamp := w.bumpCheckcount()
	tw := newTraceWork(localStart, localEnd, mins, maxs, kind, contents, skipContents, sphere)
	tw.modelOrigin = origin

	switch model {
	case WorldModelHandle:
		if len(w.Nodes) > 0 {
			if vec.Equal(localStart, localEnd) {
				positionTestThroughTree(tw, w, 0, tw.start, stamp)
			} else {
				traceThroughTree(tw, w, 0, 0, 1, tw.start, tw.end, stamp)
			}
		}
	case BoxModelHandle, CapsuleModelHandle:
	default:
		if im, ok := w.model(model); ok {
			if vec.Equal(localStart, localEnd) {
				testInLeaf(tw, w, &im.Leaf, stamp)
			} else {
				traceThroughLeaf(tw, w, &im.Leaf, stamp)
			}
		}
	}

	result := tw.result

	if rotated && result.Fraction != 1 {
		t := m.transpose()
		result.Plane.Normal = rotatePoint(t, result.Plane.Normal)
	}

	if result.Fraction == 1 {
		result.EndPos = end
	} else {
		result.EndPos = vec.Lerp(start, end, result.Fraction)
	}

	return result
}

// TraceAgainstBox sweeps a mover of the given kind against a single
// standalone AABB target [targetMins,targetMaxs], with no World
// involved: the target is built as a one-brush model on the fly. This is
// the box-target counterpart of the engine's two-step "build a temporary
// clip model, then trace against its handle" protocol, collapsed into a
// single call since a Go World has nowhere safe to stash that kind of
// caller-specific scratch state.
func TraceAgainstBox(start, end, mins, maxs vec.Vec3, kind TraceKind, sphere *Sphere, targetMins, targetMaxs vec.Vec3, contents, skipContents Contents) TraceResult {
	tw := newTraceWork(start, end, mins, maxs, kind, contents, skipContents, sphere)
	target, brush := tempBoxModel(targetMins, targetMaxs)

	if vec.Equal(start, end) {
		testInLeafWithBrushes(tw, target.Leaf, []Brush{brush})
	} else {
		traceThroughLeafWithBrushes(tw, target.Leaf, []Brush{brush})
	}

	return finishTrace(tw, start, end)
}

// TraceAgainstCapsule is TraceAgainstBox's counterpart for a standalone
// vertical-capsule target.
func TraceAgainstCapsule(start, end, mins, maxs vec.Vec3, kind TraceKind, sphere *Sphere, targetMins, targetMaxs vec.Vec3, contents, skipContents Contents) TraceResult {
	tw := newTraceWork(start, end, mins, maxs, kind, contents, skipContents, sphere)
	target := InlineModel{Bounds: [2]vec.Vec3{targetMins, targetMaxs}}

	switch tw.kind {
	case TraceCapsule:
		if vec.Equal(start, end) {
			testCapsuleInCapsule(tw, &target)
		} else {
			traceCapsuleThroughCapsule(tw, &target)
		}
	default:
		if vec.Equal(start, end) {
			testBoxInCapsule(tw, &target)
		} else {
			traceBoxThroughCapsule(tw, &target)
		}
	}

	return finishTrace(tw, start, end)
}

func finishTrace(tw *traceWork, start, end vec.Vec3) TraceResult {
	r := tw.result
	if r.Fraction == 1 {
		r.EndPos = end
	} else {
		r.EndPos = vec.Lerp(start, end, r.Fraction)
	}
	return r
}
