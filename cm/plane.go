// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"github.com/chewxy/math32"

	"clipmap/math/vec"
)

// cornerTable holds, for each of the 8 possible plane SignBits, the
// corner of a box (given as its local mins/maxs) to clip against that
// plane: component i is taken from maxs if bit i of SignBits is set,
// from mins otherwise. Built once per TraceWork from the swept volume's
// local size and indexed by SignBits, this avoids enumerating all 8
// corners of the box on every plane test.
type cornerTable [8]vec.Vec3

// newCornerTable builds the 8-entry corner lookup for a box with local
// bounds [mins,maxs].
func newCornerTable(mins, maxs vec.Vec3) cornerTable {
	var t cornerTable
	for bits := 0; bits < 8; bits++ {
		var c vec.Vec3
		for i := 0; i < 3; i++ {
			if bits&(1<<uint(i)) != 0 {
				c = c.WithIdx(i, maxs.Idx(i))
			} else {
				c = c.WithIdx(i, mins.Idx(i))
			}
		}
		t[bits] = c
	}
	return t
}

// corner returns the table entry matching plane p's SignBits.
func (t cornerTable) corner(p *Plane) vec.Vec3 {
	return t[p.SignBits]
}

// boxOnPlaneSide classifies an AABB against a plane: 1 if entirely in
// front, 2 if entirely behind, 3 if it straddles. BoxContents uses this
// to walk down to every leaf a box overlaps without the fraction/offset
// bookkeeping a full trace needs.
func boxOnPlaneSide(mins, maxs vec.Vec3, p *Plane) int {
	if p.Type <= PlaneAxialZ {
		i := int(p.Type)
		if mins.Idx(i) >= p.Dist {
			return 1
		}
		if maxs.Idx(i) < p.Dist {
			return 2
		}
		return 3
	}

	var dmin, dmax float32
	for i := 0; i < 3; i++ {
		n := p.Normal.Idx(i)
		if n >= 0 {
			dmin += n * mins.Idx(i)
			dmax += n * maxs.Idx(i)
		} else {
			dmin += n * maxs.Idx(i)
			dmax += n * mins.Idx(i)
		}
	}
	side := 0
	if dmin >= p.Dist {
		side = 1
	}
	if dmax < p.Dist {
		side |= 2
	}
	if side == 0 {
		return 3
	}
	return side
}

// projectPointOntoVector projects point onto the line through vStart with
// direction vDir, returning the projected point.
func projectPointOntoVector(point, vStart, vDir vec.Vec3) vec.Vec3 {
	pVec := vec.Sub(point, vStart)
	return vec.Add(vStart, vDir.Scale(vec.Dot(pVec, vDir)))
}

// distanceFromLineSquared returns the squared distance from p to the
// infinite line through lp1 with direction dir, clamped so that a
// projection falling outside the [lp1,lp2] segment on any axis is
// measured to the nearer endpoint instead. Used by the sphere/cylinder
// sweep to find where a swept axis comes closest to a static origin.
func distanceFromLineSquared(p, lp1, lp2, dir vec.Vec3) float32 {
	proj := projectPointOntoVector(p, lp1, dir)

	j := 3
	for i := 0; i < 3; i++ {
		pr, a, b := proj.Idx(i), lp1.Idx(i), lp2.Idx(i)
		if (pr > a && pr > b) || (pr < a && pr < b) {
			j = i
			break
		}
	}

	if j < 3 {
		var t vec.Vec3
		if math32.Abs(proj.Idx(j)-lp1.Idx(j)) < math32.Abs(proj.Idx(j)-lp2.Idx(j)) {
			t = vec.Sub(p, lp1)
		} else {
			t = vec.Sub(p, lp2)
		}
		return vec.LengthSquared(t)
	}

	return vec.LengthSquared(vec.Sub(p, proj))
}
