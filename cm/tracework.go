// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"github.com/chewxy/math32"

	"clipmap/math/vec"
)

// traceWork is the scratch state threaded through one position test or
// sweep: the mover's symmetric local bounds and center-relative start/end,
// the content masks, and the in-progress result. Nothing here outlives a
// single trace.
type traceWork struct {
	kind         TraceKind
	start, end   vec.Vec3
	size         [2]vec.Vec3 // symmetric local mins/maxs, relative to the mover's center
	offsets      cornerTable
	extents      vec.Vec3 // size[1], or zero when isPoint
	isPoint      bool
	maxOffset    float32
	bounds       [2]vec.Vec3 // conservative world-space bounds of the whole sweep
	modelOrigin  vec.Vec3
	sphere       Sphere
	contents     Contents
	skipContents Contents

	result TraceResult
}

// newTraceWork builds a traceWork from a caller's start/end/mins/maxs,
// symmetrizing the box around its center as described in §6: this keeps
// plane expansion correct once the box is later rotated into a model's
// local frame by TransformedBoxTrace. A non-nil sphere overrides the
// capsule derived from mins/maxs (passed by CapsuleTrace, and by
// TransformedCapsuleTrace after tilting its Offset into the model's frame).
func newTraceWork(start, end, mins, maxs vec.Vec3, kind TraceKind, contents, skipContents Contents, sphere *Sphere) *traceWork {
	offset := vec.Add(mins, maxs).Scale(0.5)
	size0 := vec.Sub(mins, offset)
	size1 := vec.Sub(maxs, offset)

	tw := &traceWork{
		kind:         kind,
		start:        vec.Add(start, offset),
		end:          vec.Add(end, offset),
		size:         [2]vec.Vec3{size0, size1},
		contents:     contents,
		skipContents: skipContents,
		result:       TraceResult{Fraction: 1},
	}

	if sphere != nil {
		tw.sphere = *sphere
	} else {
		radius := size1.Z
		if size1.X < radius {
			radius = size1.X
		}
		tw.sphere = Sphere{
			Radius:     radius,
			HalfHeight: size1.Z,
			Offset:     vec.Vec3{Z: size1.Z - radius},
		}
	}

	tw.maxOffset = size1.Length()
	tw.offsets = newCornerTable(size0, size1)

	if tw.kind == TraceCapsule {
		for i := 0; i < 3; i++ {
			off := math32.Abs(tw.sphere.Offset.Idx(i)) + tw.sphere.Radius
			lo, hi := tw.start.Idx(i), tw.end.Idx(i)
			if lo > hi {
				lo, hi = hi, lo
			}
			tw.bounds[0] = tw.bounds[0].WithIdx(i, lo-off)
			tw.bounds[1] = tw.bounds[1].WithIdx(i, hi+off)
		}
	} else {
		for i := 0; i < 3; i++ {
			lo, hi := tw.start.Idx(i), tw.end.Idx(i)
			if lo > hi {
				lo, hi = hi, lo
			}
			tw.bounds[0] = tw.bounds[0].WithIdx(i, lo+size0.Idx(i))
			tw.bounds[1] = tw.bounds[1].WithIdx(i, hi+size1.Idx(i))
		}
	}

	if size0.X == 0 && size0.Y == 0 && size0.Z == 0 {
		tw.isPoint = true
	} else {
		tw.extents = size1
	}

	return tw
}
