// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"github.com/chewxy/math32"

	"clipmap/math/vec"
)

// radiusEpsilon nudges a sphere/cylinder sweep's effective radius outward
// by a hair so a mover that just grazes the surface is still reported as
// touching it.
const radiusEpsilon = 1.0

// traceThroughSphere finds where the segment [start,end] first enters the
// sphere of radius centered at origin, recording a contact with
// ContentsBody if it's the closest hit so far. origin/start/end are all
// in the trace's local (model-relative) frame; tw.modelOrigin converts
// the contact plane back to world space.
func traceThroughSphere(tw *traceWork, origin vec.Vec3, radius float32, start, end vec.Vec3) {
	dir := vec.Sub(start, origin)
	if vec.LengthSquared(dir) < radius*radius {
		tw.result.Fraction = 0
		tw.result.StartSolid = true
		if vec.LengthSquared(vec.Sub(end, origin)) < radius*radius {
			tw.result.AllSolid = true
		}
		return
	}

	dir = vec.Sub(end, start)
	length := dir.Length()
	dir = dir.Normalize()

	l1 := distanceFromLineSquared(origin, start, end, dir)
	l2 := vec.LengthSquared(vec.Sub(end, origin))

	if l1 >= radius*radius && l2 > (radius+surfaceClipEpsilon)*(radius+surfaceClipEpsilon) {
		return
	}

	v1 := vec.Sub(start, origin)
	b := 2.0 * vec.Dot(dir, v1)
	c := vec.LengthSquared(v1) - (radius+radiusEpsilon)*(radius+radiusEpsilon)

	d := b*b - 4*c

	if d > 0 {
		sqrtd := math32.Sqrt(d)
		fraction := (-b - sqrtd) * 0.5

		if fraction < 0 {
			fraction = 0
		} else {
			fraction /= length
		}

		if fraction < tw.result.Fraction {
			dir := vec.Sub(end, start)
			intersection := vec.Add(start, dir.Scale(fraction))
			normal := vec.Sub(intersection, origin)
			scale := 1 / (radius + radiusEpsilon)
			normal = normal.Scale(scale)

			worldIntersection := vec.Add(tw.modelOrigin, intersection)
			plane := Plane{Normal: normal, Dist: vec.Dot(normal, worldIntersection)}

			tw.result.Fraction = fraction
			tw.result.Plane = plane
			tw.result.Contents = ContentsBody
		}
	}
	// d == 0: the sweep is exactly tangent to the sphere. This is a slide,
	// not a contact, and deliberately records nothing.
}

// traceThroughVerticalCylinder is traceThroughSphere's analog for the
// capsule's cylindrical midsection: the cylinder stands on the Z axis at
// origin, extending halfheight above and below it.
func traceThroughVerticalCylinder(tw *traceWork, origin vec.Vec3, radius, halfheight float32, start, end vec.Vec3) {
	start2d := vec.Vec3{X: start.X, Y: start.Y}
	end2d := vec.Vec3{X: end.X, Y: end.Y}
	org2d := vec.Vec3{X: origin.X, Y: origin.Y}

	if start.Z <= origin.Z+halfheight && start.Z >= origin.Z-halfheight {
		dir := vec.Sub(start2d, org2d)
		if vec.LengthSquared(dir) < radius*radius {
			tw.result.Fraction = 0
			tw.result.StartSolid = true
			if vec.LengthSquared(vec.Sub(end2d, org2d)) < radius*radius {
				tw.result.AllSolid = true
			}
			return
		}
	}

	dir := vec.Sub(end2d, start2d)
	length := dir.Length()
	dir = dir.Normalize()

	l1 := distanceFromLineSquared(org2d, start2d, end2d, dir)
	l2 := vec.LengthSquared(vec.Sub(end2d, org2d))

	if l1 >= radius*radius && l2 > (radius+surfaceClipEpsilon)*(radius+surfaceClipEpsilon) {
		return
	}

	v1 := vec.Sub(start, origin)
	b := 2.0 * (v1.X*dir.X + v1.Y*dir.Y)
	c := v1.X*v1.X + v1.Y*v1.Y - (radius+radiusEpsilon)*(radius+radiusEpsilon)

	d := b*b - 4*c

	if d > 0 {
		sqrtd := math32.Sqrt(d)
		fraction := (-b - sqrtd) * 0.5

		if fraction < 0 {
			fraction = 0
		} else {
			fraction /= length
		}

		if fraction < tw.result.Fraction {
			fullDir := vec.Sub(end, start)
			intersection := vec.Add(start, fullDir.Scale(fraction))

			if intersection.Z <= origin.Z+halfheight && intersection.Z >= origin.Z-halfheight {
				normal := vec.Sub(intersection, origin)
				normal.Z = 0
				scale := 1 / (radius + radiusEpsilon)
				normal = normal.Scale(scale)

				worldIntersection := vec.Add(tw.modelOrigin, intersection)
				plane := Plane{Normal: normal, Dist: vec.Dot(normal, worldIntersection)}

				tw.result.Fraction = fraction
				tw.result.Plane = plane
				tw.result.Contents = ContentsBody
			}
		}
	}
	// d == 0: tangent sweep, deliberately not a contact.
}

// symmetricSize centers mins/maxs about their own midpoint, returning the
// center offset and the resulting symmetric half-extents.
func symmetricSize(mins, maxs vec.Vec3) (offset, size0, size1 vec.Vec3) {
	offset = vec.Add(mins, maxs).Scale(0.5)
	size0 = vec.Sub(mins, offset)
	size1 = vec.Sub(maxs, offset)
	return
}

// traceCapsuleThroughCapsule sweeps tw's own capsule mover against the
// fixed capsule model's two hemispheres and, when there is horizontal
// motion, its cylindrical midsection.
func traceCapsuleThroughCapsule(tw *traceWork, model *InlineModel) {
	mins, maxs := model.Bounds[0], model.Bounds[1]

	if tw.bounds[0].X > maxs.X+radiusEpsilon || tw.bounds[0].Y > maxs.Y+radiusEpsilon || tw.bounds[0].Z > maxs.Z+radiusEpsilon ||
		tw.bounds[1].X < mins.X-radiusEpsilon || tw.bounds[1].Y < mins.Y-radiusEpsilon || tw.bounds[1].Z < mins.Z-radiusEpsilon {
		return
	}

	starttop := vec.Add(tw.start, tw.sphere.Offset)
	startbottom := vec.Sub(tw.start, tw.sphere.Offset)
	endtop := vec.Add(tw.end, tw.sphere.Offset)
	endbottom := vec.Sub(tw.end, tw.sphere.Offset)

	offset, _, size1 := symmetricSize(mins, maxs)

	halfwidth, halfheight := size1.X, size1.Z
	radius := halfheight
	if halfwidth < radius {
		radius = halfwidth
	}
	offs := halfheight - radius

	top := offset
	top.Z += offs
	bottom := offset
	bottom.Z -= offs

	radius += tw.sphere.Radius

	if tw.start.X != tw.end.X || tw.start.Y != tw.end.Y {
		h := halfheight + tw.sphere.HalfHeight - radius
		if h > 0 {
			traceThroughVerticalCylinder(tw, offset, radius, h, tw.start, tw.end)
		}
	}

	traceThroughSphere(tw, top, radius, startbottom, endbottom)
	traceThroughSphere(tw, bottom, radius, starttop, endtop)
}

// traceBoxThroughCapsule sweeps an AABB mover against a fixed capsule
// model by swapping roles: it moves into the capsule's local frame,
// turns tw itself into a capsule mover matching that capsule, and sweeps
// it against a one-brush temporary leaf standing in for the original box.
// This keeps exactly one sphere/cylinder sweep implementation doing the
// real work regardless of which side is the capsule.
func traceBoxThroughCapsule(tw *traceWork, model *InlineModel) {
	mins, maxs := model.Bounds[0], model.Bounds[1]
	offset, _, size1 := symmetricSize(mins, maxs)

	tw.start = vec.Sub(tw.start, offset)
	tw.end = vec.Sub(tw.end, offset)

	tw.kind = TraceCapsule
	radius := size1.Z
	if size1.X < radius {
		radius = size1.X
	}
	tw.sphere = Sphere{Radius: radius, HalfHeight: size1.Z, Offset: vec.Vec3{Z: size1.Z - radius}}

	box, brush := tempBoxModel(tw.size[0], tw.size[1])
	traceThroughLeafWithBrushes(tw, box.Leaf, []Brush{brush})
}

// testCapsuleInCapsule reports (by setting StartSolid/AllSolid on tw) if
// tw's capsule mover's start position overlaps the fixed capsule model.
func testCapsuleInCapsule(tw *traceWork, model *InlineModel) {
	mins, maxs := model.Bounds[0], model.Bounds[1]

	top := vec.Add(tw.start, tw.sphere.Offset)
	bottom := vec.Sub(tw.start, tw.sphere.Offset)

	offset, _, size1 := symmetricSize(mins, maxs)
	halfwidth, halfheight := size1.X, size1.Z
	radius := halfheight
	if halfwidth < radius {
		radius = halfwidth
	}
	offs := halfheight - radius

	r := (tw.sphere.Radius + radius) * (tw.sphere.Radius + radius)

	p1 := offset
	p1.Z += offs
	p2 := offset
	p2.Z -= offs

	hit := func(a, b vec.Vec3) bool {
		d := vec.Sub(a, b)
		return vec.LengthSquared(d) < r
	}

	if hit(p1, top) || hit(p1, bottom) || hit(p2, top) || hit(p2, bottom) {
		tw.result.StartSolid = true
		tw.result.AllSolid = true
		tw.result.Fraction = 0
	}

	if (top.Z >= p1.Z && top.Z <= p2.Z) || (bottom.Z >= p1.Z && bottom.Z <= p2.Z) {
		top2d := vec.Vec3{X: top.X, Y: top.Y}
		p12d := vec.Vec3{X: p1.X, Y: p1.Y}
		if hit(top2d, p12d) {
			tw.result.StartSolid = true
			tw.result.AllSolid = true
			tw.result.Fraction = 0
		}
	}
}

// testBoxInCapsule is testCapsuleInCapsule's box-mover counterpart,
// converting tw into a capsule test against a temporary one-brush leaf
// standing in for the box, mirroring traceBoxThroughCapsule.
func testBoxInCapsule(tw *traceWork, model *InlineModel) {
	mins, maxs := model.Bounds[0], model.Bounds[1]
	offset, _, size1 := symmetricSize(mins, maxs)

	tw.start = vec.Sub(tw.start, offset)
	tw.end = vec.Sub(tw.end, offset)

	tw.kind = TraceCapsule
	radius := size1.Z
	if size1.X < radius {
		radius = size1.X
	}
	tw.sphere = Sphere{Radius: radius, HalfHeight: size1.Z, Offset: vec.Vec3{Z: size1.Z - radius}}

	box, brush := tempBoxModel(tw.size[0], tw.size[1])
	testInLeafWithBrushes(tw, box.Leaf, []Brush{brush})
}
