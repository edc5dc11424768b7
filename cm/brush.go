// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"clipmap/math/vec"
)

// surfaceClipEpsilon biases contact fractions a hair inward so a mover
// that exactly grazes a plane is reported as touching it rather than
// sliding through on floating point noise.
const surfaceClipEpsilon = 0.125

// capsuleStartEnd returns the point on the capsule's axis (start or end
// of the sweep) nearest to plane p: whichever hemisphere center is
// furthest opposite the normal.
func capsuleStartEnd(tw *traceWork, p *Plane, point vec.Vec3) vec.Vec3 {
	if vec.Dot(p.Normal, tw.sphere.Offset) > 0 {
		return vec.Sub(point, tw.sphere.Offset)
	}
	return vec.Add(point, tw.sphere.Offset)
}

// testBoxInBrush checks whether the mover's start position lies inside
// brush, marking the traceWork StartSolid/AllSolid if so. The brush's
// first six sides are always the axial bounding planes (§3); a bounds
// reject against them is exact and lets the remaining sides be skipped
// entirely when it fails.
func testBoxInBrush(tw *traceWork, brush *Brush) {
	if len(brush.Sides) == 0 {
		return
	}

	if tw.bounds[0].X > brush.Bounds[1].X || tw.bounds[0].Y > brush.Bounds[1].Y || tw.bounds[0].Z > brush.Bounds[1].Z ||
		tw.bounds[1].X < brush.Bounds[0].X || tw.bounds[1].Y < brush.Bounds[0].Y || tw.bounds[1].Z < brush.Bounds[0].Z {
		return
	}

	sides := brush.Sides
	if len(sides) >= 6 {
		sides = sides[6:]
	}

	for i := range sides {
		p := sides[i].Plane

		if tw.kind == TraceCapsule {
			dist := p.Dist + tw.sphere.Radius
			startp := capsuleStartEnd(tw, p, tw.start)
			if vec.Dot(startp, p.Normal)-dist > 0 {
				return
			}
		} else {
			dist := p.Dist - vec.Dot(tw.offsets.corner(p), p.Normal)
			if vec.Dot(tw.start, p.Normal)-dist > 0 {
				return
			}
		}
	}

	tw.result.StartSolid = true
	tw.result.AllSolid = true
	tw.result.Fraction = 0
	tw.result.Contents = brush.Contents
}

// traceThroughBrush sweeps the mover from tw.start to tw.end through
// brush, narrowing [enterFrac,leaveFrac] one plane at a time and
// recording the latest entering plane as the contact if it beats the
// best fraction seen so far.
func traceThroughBrush(tw *traceWork, brush *Brush) {
	if len(brush.Sides) == 0 {
		return
	}

	enterFrac := float32(-1.0)
	leaveFrac := float32(1.0)
	startout := false
	getout := false

	var clipPlane *Plane
	var leadSide *BrushSide

	for i := range brush.Sides {
		side := &brush.Sides[i]
		p := side.Plane

		var d1, d2 float32
		if tw.kind == TraceCapsule {
			dist := p.Dist + tw.sphere.Radius
			startp := capsuleStartEnd(tw, p, tw.start)
			endp := capsuleStartEnd(tw, p, tw.end)
			d1 = vec.Dot(startp, p.Normal) - dist
			d2 = vec.Dot(endp, p.Normal) - dist
		} else {
			dist := p.Dist - vec.Dot(tw.offsets.corner(p), p.Normal)
			d1 = vec.Dot(tw.start, p.Normal) - dist
			d2 = vec.Dot(tw.end, p.Normal) - dist
		}

		if d2 > 0 {
			getout = true
		}
		if d1 > 0 {
			startout = true
		}

		if d1 > 0 && (d2 >= surfaceClipEpsilon || d2 >= d1) {
			return
		}
		if d1 <= 0 && d2 <= 0 {
			continue
		}

		if d1 > d2 {
			f := (d1 - surfaceClipEpsilon) / (d1 - d2)
			if f < 0 {
				f = 0
			}
			if f > enterFrac {
				enterFrac = f
				clipPlane = p
				leadSide = side
			}
		} else {
			f := (d1 + surfaceClipEpsilon) / (d1 - d2)
			if f > 1 {
				f = 1
			}
			if f < leaveFrac {
				leaveFrac = f
			}
		}
	}

	if !startout {
		tw.result.StartSolid = true
		if !getout {
			tw.result.AllSolid = true
			tw.result.Fraction = 0
			tw.result.Contents = brush.Contents
		}
		return
	}

	if enterFrac < leaveFrac && enterFrac > -1 && enterFrac < tw.result.Fraction {
		if enterFrac < 0 {
			enterFrac = 0
		}
		tw.result.Fraction = enterFrac
		tw.result.Plane = *clipPlane
		tw.result.SurfaceFlags = leadSide.SurfaceFlags
		tw.result.Contents = brush.Contents
	}
}
