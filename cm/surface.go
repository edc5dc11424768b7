// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"github.com/chewxy/math32"

	"clipmap/math/vec"
)

// boundsIntersect reports whether two AABBs overlap.
func boundsIntersect(aMin, aMax, bMin, bMax vec.Vec3) bool {
	if aMin.X > bMax.X || aMin.Y > bMax.Y || aMin.Z > bMax.Z {
		return false
	}
	if aMax.X < bMin.X || aMax.Y < bMin.Y || aMax.Z < bMin.Z {
		return false
	}
	return true
}

// facetPlane resolves plane index idx of sc, expanded for the mover (box
// corner or capsule radius) the same way testBoxInBrush expands a brush
// plane. inward flips the plane to face the facet's interior, as border
// planes require; the corner offset is still looked up by the plane's
// original (unflipped) SignBits and applied with its absolute value,
// which is valid only because the swept box is kept symmetric about its
// center (see newTraceWork).
func facetPlane(tw *traceWork, sc *SurfaceCollide, idx int, inward bool) Plane {
	pp := sc.Planes[idx]
	p := pp.Plane
	if inward {
		p.Normal = vec.Neg(p.Normal)
		p.Dist = -p.Dist
	}

	if tw.kind == TraceCapsule {
		p.Dist += tw.sphere.Radius
		return p
	}

	offset := vec.Dot(tw.offsets[pp.SignBits], p.Normal)
	if inward {
		p.Dist += math32.Abs(offset)
	} else {
		p.Dist -= offset
	}
	return p
}

// checkFacetPlane narrows the running [enterFrac,leaveFrac] window
// against one facet plane, the same entry/exit logic as
// traceThroughBrush but operating on an explicit start/end pair (raw
// trace endpoints or capsule-offset endpoints) and threading the
// fractions through rather than closing over tw. Returns ok=false if the
// facet cannot be hit at all; hit reports whether this call moved
// enterFrac.
func checkFacetPlane(p Plane, start, end vec.Vec3, enterFrac, leaveFrac float32) (ok, hit bool, newEnter, newLeave float32) {
	newEnter, newLeave = enterFrac, leaveFrac

	d1 := vec.Dot(start, p.Normal) - p.Dist
	d2 := vec.Dot(end, p.Normal) - p.Dist

	if d1 > 0 && (d2 >= surfaceClipEpsilon || d2 >= d1) {
		return false, false, newEnter, newLeave
	}
	if d1 <= 0 && d2 <= 0 {
		return true, false, newEnter, newLeave
	}

	if d1 > d2 {
		f := (d1 - surfaceClipEpsilon) / (d1 - d2)
		if f < 0 {
			f = 0
		}
		if f > newEnter {
			newEnter = f
			hit = true
		}
	} else {
		f := (d1 + surfaceClipEpsilon) / (d1 - d2)
		if f > 1 {
			f = 1
		}
		if f < newLeave {
			newLeave = f
		}
	}
	return true, hit, newEnter, newLeave
}

// traceThroughSurfaceCollide sweeps the mover through a patch or
// triangle-soup surface's facet decomposition, skipping entirely when
// the sweep's conservative bounds don't even reach the surface's bounds.
func traceThroughSurfaceCollide(tw *traceWork, sc *SurfaceCollide) {
	if !boundsIntersect(tw.bounds[0], tw.bounds[1], sc.Bounds[0], sc.Bounds[1]) {
		return
	}

	if tw.isPoint {
		tracePointThroughSurfaceCollide(tw, sc)
		return
	}

	for fi := range sc.Facets {
		facet := &sc.Facets[fi]

		plane := facetPlane(tw, sc, facet.SurfacePlane, false)

		var startp, endp vec.Vec3
		if tw.kind == TraceCapsule {
			startp = capsuleStartEnd(tw, &plane, tw.start)
			endp = capsuleStartEnd(tw, &plane, tw.end)
		} else {
			startp, endp = tw.start, tw.end
		}

		ok, hit, enterFrac, leaveFrac := checkFacetPlane(plane, startp, endp, -1, 1)
		if !ok {
			continue
		}
		var bestPlane Plane
		if hit {
			bestPlane = plane
		}

		hitnum := -1
		j := 0
		for ; j < len(facet.BorderPlanes); j++ {
			bp := facetPlane(tw, sc, facet.BorderPlanes[j], facet.BorderInward[j])

			if tw.kind == TraceCapsule {
				startp = capsuleStartEnd(tw, &bp, tw.start)
				endp = capsuleStartEnd(tw, &bp, tw.end)
			} else {
				startp, endp = tw.start, tw.end
			}

			var bok, bhit bool
			bok, bhit, enterFrac, leaveFrac = checkFacetPlane(bp, startp, endp, enterFrac, leaveFrac)
			if !bok {
				break
			}
			if bhit {
				hitnum = j
				bestPlane = bp
			}
		}

		if j < len(facet.BorderPlanes) {
			continue
		}

		// never clip against the back side: the last border is always
		// the facet's back plane.
		if hitnum == len(facet.BorderPlanes)-1 {
			continue
		}

		if enterFrac < leaveFrac && enterFrac >= 0 && enterFrac < tw.result.Fraction {
			if enterFrac < 0 {
				enterFrac = 0
			}
			tw.result.Fraction = enterFrac
			tw.result.Plane = bestPlane
		}
	}
}

// tracePointThroughSurfaceCollide is the fast path used when the mover
// is a single point (no volume): instead of per-facet entry/exit
// fractions it precomputes each plane's front-facing flag and ray
// intersection fraction once, then scans facets for the first crossed
// surface plane whose borders all agree it's inside the facet.
func tracePointThroughSurfaceCollide(tw *traceWork, sc *SurfaceCollide) {
	frontFacing := make([]bool, len(sc.Planes))
	intersection := make([]float32, len(sc.Planes))

	for i := range sc.Planes {
		pp := &sc.Planes[i]
		offset := vec.Dot(tw.offsets[pp.SignBits], pp.Plane.Normal)
		d1 := vec.Dot(tw.start, pp.Plane.Normal) - pp.Plane.Dist + offset
		d2 := vec.Dot(tw.end, pp.Plane.Normal) - pp.Plane.Dist + offset

		frontFacing[i] = d1 > 0

		if d1 == d2 {
			intersection[i] = 99999
		} else {
			intersection[i] = d1 / (d1 - d2)
			if intersection[i] <= 0 {
				intersection[i] = 99999
			}
		}
	}

	for fi := range sc.Facets {
		facet := &sc.Facets[fi]

		if !frontFacing[facet.SurfacePlane] {
			continue
		}

		intersect := intersection[facet.SurfacePlane]
		if intersect < 0 {
			continue
		}
		if intersect > tw.result.Fraction {
			continue
		}

		j := 0
		for ; j < len(facet.BorderPlanes); j++ {
			k := facet.BorderPlanes[j]
			if frontFacing[k] != facet.BorderInward[j] {
				if intersection[k] > intersect {
					break
				}
			} else if intersection[k] < intersect {
				break
			}
		}

		if j != len(facet.BorderPlanes) {
			continue
		}

		pp := &sc.Planes[facet.SurfacePlane]
		offset := vec.Dot(tw.offsets[pp.SignBits], pp.Plane.Normal)
		d1 := vec.Dot(tw.start, pp.Plane.Normal) - pp.Plane.Dist + offset
		d2 := vec.Dot(tw.end, pp.Plane.Normal) - pp.Plane.Dist + offset

		frac := (d1 - surfaceClipEpsilon) / (d1 - d2)
		if frac < 0 {
			frac = 0
		}
		tw.result.Fraction = frac
		tw.result.Plane = pp.Plane
	}
}

// positionTestInSurfaceCollide reports whether the mover's start position
// lies inside one of sc's facets. Always false for a point mover: a
// volumeless point can't be "inside" a zero-thickness patch surface.
func positionTestInSurfaceCollide(tw *traceWork, sc *SurfaceCollide) bool {
	if tw.isPoint {
		return false
	}

	for fi := range sc.Facets {
		facet := &sc.Facets[fi]

		plane := facetPlane(tw, sc, facet.SurfacePlane, false)
		startp := tw.start
		if tw.kind == TraceCapsule {
			startp = capsuleStartEnd(tw, &plane, tw.start)
		}

		if vec.Dot(plane.Normal, startp)-plane.Dist > 0 {
			continue
		}

		j := 0
		for ; j < len(facet.BorderPlanes); j++ {
			bp := facetPlane(tw, sc, facet.BorderPlanes[j], facet.BorderInward[j])
			bstartp := tw.start
			if tw.kind == TraceCapsule {
				bstartp = capsuleStartEnd(tw, &bp, tw.start)
			}
			if vec.Dot(bp.Normal, bstartp)-bp.Dist > 0 {
				break
			}
		}

		if j < len(facet.BorderPlanes) {
			continue
		}

		return true
	}

	return false
}
