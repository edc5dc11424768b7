// SPDX-License-Identifier: GPL-2.0-or-later

package cm

// traceThroughLeaf sweeps tw through every brush and surface referenced
// by leaf, deduping against ones already visited this trace via w's
// checkcount scratch (the same brush or surface is commonly reachable
// from more than one leaf).
func traceThroughLeaf(tw *traceWork, w *World, leaf *Leaf, stamp uint32) {
	for _, bi := range leaf.Brushes {
		if w.brushCheck[bi] == stamp {
			continue
		}
		w.brushCheck[bi] = stamp

		b := &w.Brushes[bi]
		if b.Contents&tw.contents == 0 {
			continue
		}
		if b.Contents&tw.skipContents != 0 {
			continue
		}
		if !boundsIntersect(tw.bounds[0], tw.bounds[1], b.Bounds[0], b.Bounds[1]) {
			continue
		}

		traceThroughBrush(tw, b)
		if tw.result.AllSolid {
			return
		}
	}

	// traceThroughSurface never sets StartSolid/AllSolid, so a fraction
	// of exactly 0 is as close as a surface trace can get us.
	if tw.result.Fraction == 0 {
		return
	}

	for _, si := range leaf.Surfaces {
		if w.surfaceCheck[si] == stamp {
			continue
		}
		w.surfaceCheck[si] = stamp

		s := &w.Surfaces[si]
		if s.Contents&tw.contents == 0 {
			continue
		}
		if s.Contents&tw.skipContents != 0 {
			continue
		}
		if s.Collide == nil || !boundsIntersect(tw.bounds[0], tw.bounds[1], s.Collide.Bounds[0], s.Collide.Bounds[1]) {
			continue
		}

		traceThroughSurface(tw, w, s)
		if tw.result.Fraction == 0 {
			return
		}
	}
}

// traceThroughSurface dispatches to the facet sweep for patch surfaces
// unless w.NoCurves is set, and for triangle-soup surfaces only when
// w.PerPolyCollision or w.ForceTriangles opts into the (much more
// expensive) per-triangle test, then copies the surface's
// material flags into the result if this surface produced a closer hit
// than anything seen before it.
func traceThroughSurface(tw *traceWork, w *World, s *Surface) {
	oldFrac := tw.result.Fraction

	if s.Collide != nil {
		switch {
		case s.Type == SurfacePatch && !w.NoCurves:
			traceThroughSurfaceCollide(tw, s.Collide)
		case s.Type == SurfaceTriangleSoup && (w.PerPolyCollision || w.ForceTriangles):
			traceThroughSurfaceCollide(tw, s.Collide)
		}
	}

	if tw.result.Fraction < oldFrac {
		tw.result.SurfaceFlags = s.SurfaceFlags
		tw.result.Contents = s.Contents
	}
}

// testInLeaf is traceThroughLeaf's position-test counterpart: it reports
// (via tw.result.StartSolid/AllSolid) whether tw's start position
// overlaps any brush or patch surface in leaf.
func testInLeaf(tw *traceWork, w *World, leaf *Leaf, stamp uint32) {
	for _, bi := range leaf.Brushes {
		if w.brushCheck[bi] == stamp {
			continue
		}
		w.brushCheck[bi] = stamp

		b := &w.Brushes[bi]
		if b.Contents&tw.contents == 0 {
			continue
		}
		if b.Contents&tw.skipContents != 0 {
			continue
		}

		testBoxInBrush(tw, b)
		if tw.result.AllSolid {
			return
		}
	}

	for _, si := range leaf.Surfaces {
		if w.surfaceCheck[si] == stamp {
			continue
		}
		w.surfaceCheck[si] = stamp

		s := &w.Surfaces[si]
		if s.Contents&tw.contents == 0 {
			continue
		}
		if s.Contents&tw.skipContents != 0 {
			continue
		}
		patchOK := s.Type == SurfacePatch && !w.NoCurves
		triOK := s.Type == SurfaceTriangleSoup && (w.PerPolyCollision || w.ForceTriangles)
		if !patchOK && !triOK {
			continue
		}
		if s.Collide == nil {
			continue
		}
		if positionTestInSurfaceCollide(tw, s.Collide) {
			tw.result.StartSolid = true
			tw.result.AllSolid = true
			tw.result.Fraction = 0
			tw.result.Contents = s.Contents
			return
		}
	}
}

// traceThroughLeafWithBrushes and testInLeafWithBrushes run the same
// sweep/test against a standalone leaf + brush set that has no place in
// a World's checkcount scratch (the one-brush temporary models used by
// the box/capsule dispatch in capsule.go). A freshly built temp model
// can't have been visited already, so there is nothing to dedup.
func traceThroughLeafWithBrushes(tw *traceWork, leaf Leaf, brushes []Brush) {
	for _, bi := range leaf.Brushes {
		b := &brushes[bi]
		if b.Contents&tw.contents == 0 {
			continue
		}
		if b.Contents&tw.skipContents != 0 {
			continue
		}
		if !boundsIntersect(tw.bounds[0], tw.bounds[1], b.Bounds[0], b.Bounds[1]) {
			continue
		}
		traceThroughBrush(tw, b)
		if tw.result.AllSolid {
			return
		}
	}
}

func testInLeafWithBrushes(tw *traceWork, leaf Leaf, brushes []Brush) {
	for _, bi := range leaf.Brushes {
		b := &brushes[bi]
		if b.Contents&tw.contents == 0 {
			continue
		}
		if b.Contents&tw.skipContents != 0 {
			continue
		}
		testBoxInBrush(tw, b)
		if tw.result.AllSolid {
			return
		}
	}
}
