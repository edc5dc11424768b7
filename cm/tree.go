// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"clipmap/math"
	"clipmap/math/vec"
)

// traceThroughTree walks the contacted leafs of w's BSP tree from p1 to
// p2 (the [p1f,p2f] fractions of the overall sweep this segment covers),
// recursing into whichever children the swept volume's conservative
// extents could reach. At a non-axial split plane it widens the test by
// tw.maxOffset rather than the true per-plane projection of the box; this
// is a known, intentional over-approximation inherited from the swept
// AABB/capsule representation and must not be tightened.
func traceThroughTree(tw *traceWork, w *World, num int32, p1f, p2f float32, p1, p2 vec.Vec3, stamp uint32) {
	if tw.result.Fraction < p1f {
		return
	}

	if num < 0 {
		traceThroughLeaf(tw, w, &w.Leafs[-1-num], stamp)
		return
	}

	node := &w.Nodes[num]
	plane := node.Plane

	var t1, t2, offset float32
	if plane.Type <= PlaneAxialZ {
		i := int(plane.Type)
		t1 = p1.Idx(i) - plane.Dist
		t2 = p2.Idx(i) - plane.Dist
		offset = tw.extents.Idx(i)
	} else {
		t1 = vec.Dot(plane.Normal, p1) - plane.Dist
		t2 = vec.Dot(plane.Normal, p2) - plane.Dist
		offset = tw.maxOffset
	}

	if t1 >= offset+1 && t2 >= offset+1 {
		traceThroughTree(tw, w, node.Children[0], p1f, p2f, p1, p2, stamp)
		return
	}
	if t1 < -offset-1 && t2 < -offset-1 {
		traceThroughTree(tw, w, node.Children[1], p1f, p2f, p1, p2, stamp)
		return
	}

	var side int
	var frac, frac2 float32
	if t1 < t2 {
		idist := 1 / (t1 - t2)
		side = 1
		frac2 = (t1 + offset + surfaceClipEpsilon) * idist
		frac = (t1 - offset + surfaceClipEpsilon) * idist
	} else if t1 > t2 {
		idist := 1 / (t1 - t2)
		side = 0
		frac2 = (t1 - offset - surfaceClipEpsilon) * idist
		frac = (t1 + offset + surfaceClipEpsilon) * idist
	} else {
		side = 0
		frac = 1
		frac2 = 0
	}

	frac = math.Clamp(0, frac, 1)

	midf := p1f + (p2f-p1f)*frac
	mid := vec.Lerp(p1, p2, frac)
	traceThroughTree(tw, w, node.Children[side], p1f, midf, p1, mid, stamp)

	frac2 = math.Clamp(0, frac2, 1)

	midf = p1f + (p2f-p1f)*frac2
	mid = vec.Lerp(p1, p2, frac2)
	traceThroughTree(tw, w, node.Children[side^1], midf, p2f, mid, p2, stamp)
}

// positionTestThroughTree is traceThroughTree's position-test counterpart:
// since the mover doesn't move, there is no fraction to narrow, only
// leafs to visit. A stationary box can still straddle a split plane, so
// both children are visited whenever the conservative extents overlap it.
func positionTestThroughTree(tw *traceWork, w *World, num int32, point vec.Vec3, stamp uint32) {
	if tw.result.AllSolid {
		return
	}

	if num < 0 {
		testInLeaf(tw, w, &w.Leafs[-1-num], stamp)
		return
	}

	node := &w.Nodes[num]
	plane := node.Plane

	var d, offset float32
	if plane.Type <= PlaneAxialZ {
		i := int(plane.Type)
		d = point.Idx(i) - plane.Dist
		offset = tw.extents.Idx(i)
	} else {
		d = vec.Dot(plane.Normal, point) - plane.Dist
		offset = tw.maxOffset
	}

	if d > offset {
		positionTestThroughTree(tw, w, node.Children[0], point, stamp)
		return
	}
	if d < -offset {
		positionTestThroughTree(tw, w, node.Children[1], point, stamp)
		return
	}

	positionTestThroughTree(tw, w, node.Children[0], point, stamp)
	if tw.result.AllSolid {
		return
	}
	positionTestThroughTree(tw, w, node.Children[1], point, stamp)
}
