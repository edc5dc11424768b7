// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"clipmap/math/vec"
)

// PointContents returns the union of Contents of every brush in model
// (WorldModelHandle for the whole world, or a positive inline-model
// handle) that actually contains point, ignoring any brush whose
// Contents intersects skipContents. Unlike a trace this needs no
// checkcount dedup: a point can only ever be inside one copy of a brush
// no matter how many leafs reference it, so re-testing costs nothing but
// a few wasted plane checks.
func PointContents(w *World, point vec.Vec3, model int, skipContents Contents) Contents {
	switch model {
	case WorldModelHandle:
		if len(w.Nodes) == 0 {
			return 0
		}
		return pointContentsNode(w, 0, point, skipContents)
	case BoxModelHandle, CapsuleModelHandle:
		return 0
	default:
		im, ok := w.model(model)
		if !ok {
			return 0
		}
		return leafPointContents(w.Brushes, im.Leaf, point, skipContents)
	}
}

func pointContentsNode(w *World, num int32, point vec.Vec3, skipContents Contents) Contents {
	if num < 0 {
		return leafPointContents(w.Brushes, w.Leafs[-1-num], point, skipContents)
	}

	node := &w.Nodes[num]
	p := node.Plane

	var d float32
	if p.Type <= PlaneAxialZ {
		d = point.Idx(int(p.Type)) - p.Dist
	} else {
		d = vec.Dot(p.Normal, point) - p.Dist
	}

	if d >= 0 {
		return pointContentsNode(w, node.Children[0], point, skipContents)
	}
	return pointContentsNode(w, node.Children[1], point, skipContents)
}

func leafPointContents(brushes []Brush, leaf Leaf, point vec.Vec3, skipContents Contents) Contents {
	var out Contents
	for _, bi := range leaf.Brushes {
		b := &brushes[bi]
		if b.Contents&skipContents != 0 {
			continue
		}
		if pointInBrush(b, point) {
			out |= b.Contents
		}
	}
	return out
}

func pointInBrush(b *Brush, point vec.Vec3) bool {
	for i := range b.Sides {
		p := b.Sides[i].Plane
		if vec.Dot(p.Normal, point)-p.Dist > 0 {
			return false
		}
	}
	return true
}

// BoxContents is PointContents's AABB counterpart: the union of Contents
// of every brush whose bounds overlap [mins,maxs]. It uses
// boxOnPlaneSide to prune tree descent to only the children the box can
// actually reach, the same pruning the renderer's world traversal uses
// against the view frustum.
func BoxContents(w *World, mins, maxs vec.Vec3, model int, skipContents Contents) Contents {
	switch model {
	case WorldModelHandle:
		if len(w.Nodes) == 0 {
			return 0
		}
		return boxContentsNode(w, 0, mins, maxs, skipContents)
	case BoxModelHandle, CapsuleModelHandle:
		return 0
	default:
		im, ok := w.model(model)
		if !ok {
			return 0
		}
		return leafBoxContents(w.Brushes, im.Leaf, mins, maxs, skipContents)
	}
}

func boxContentsNode(w *World, num int32, mins, maxs vec.Vec3, skipContents Contents) Contents {
	if num < 0 {
		return leafBoxContents(w.Brushes, w.Leafs[-1-num], mins, maxs, skipContents)
	}

	node := &w.Nodes[num]
	side := boxOnPlaneSide(mins, maxs, node.Plane)

	var out Contents
	if side&1 != 0 {
		out |= boxContentsNode(w, node.Children[0], mins, maxs, skipContents)
	}
	if side&2 != 0 {
		out |= boxContentsNode(w, node.Children[1], mins, maxs, skipContents)
	}
	return out
}

func leafBoxContents(brushes []Brush, leaf Leaf, mins, maxs vec.Vec3, skipContents Contents) Contents {
	var out Contents
	for _, bi := range leaf.Brushes {
		b := &brushes[bi]
		if b.Contents&skipContents != 0 {
			continue
		}
		if !boundsIntersect(mins, maxs, b.Bounds[0], b.Bounds[1]) {
			continue
		}
		out |= b.Contents
	}
	return out
}
