// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"github.com/chewxy/math32"

	"clipmap/math/vec"
)

// normalLengthEpsilon is how far a contact plane's normal may drift from
// unit length before CheckTraceConsistency flags it.
const normalLengthEpsilon = 0.01

// CheckTraceConsistency re-derives the structural invariants a
// TraceResult produced from [start,end] against contentmask/skipmask
// must satisfy, returning a description of the first one it finds
// violated, or "" if result is internally consistent. It is a
// post-condition check meant for tests and fuzzing, not something a
// caller runs on every trace.
func CheckTraceConsistency(start, end vec.Vec3, contentmask, skipmask Contents, result TraceResult) string {
	if result.Fraction < 0 || result.Fraction > 1 {
		return "fraction out of [0,1]"
	}

	if result.AllSolid && !result.StartSolid {
		return "allsolid set without startsolid"
	}

	if result.AllSolid {
		if result.Fraction != 0 {
			return "allsolid with nonzero fraction"
		}
		if !vec.Equal(result.EndPos, start) {
			return "allsolid with endpos != start"
		}
		return ""
	}

	if result.Fraction == 1 {
		if !vec.Equal(result.EndPos, end) {
			return "fraction 1 with endpos != end"
		}
		if result.Contents != 0 {
			return "fraction 1 with nonzero contents"
		}
		if result.SurfaceFlags != 0 {
			return "fraction 1 with nonzero surfaceflags"
		}
		return ""
	}

	want := vec.Lerp(start, end, result.Fraction)
	if !vec.Equal(result.EndPos, want) {
		return "endpos does not match lerp(start, end, fraction)"
	}

	n := result.Plane.Normal.Length()
	if math32.Abs(n-1) > normalLengthEpsilon {
		return "contact plane normal is not unit length"
	}

	if result.Contents&contentmask == 0 {
		return "contact contents do not intersect contentmask"
	}
	if result.Contents&skipmask != 0 {
		return "contact contents intersect skipmask"
	}

	return ""
}

// DistanceToBrush returns the maximum, over brush's sides, of the signed
// distance from point to that side's plane: the standard convex-distance
// estimate for a brush, negative when point lies inside every side and
// positive once it has crossed at least one.
func DistanceToBrush(brush *Brush, point vec.Vec3) float32 {
	d := float32(math32.Inf(-1))
	for i := range brush.Sides {
		p := brush.Sides[i].Plane
		pd := vec.Dot(point, p.Normal) - p.Dist
		if pd > d {
			d = pd
		}
	}
	return d
}

// DistanceToModel returns the smallest DistanceToBrush over every brush
// model references, i.e. the distance to whichever of its brushes point
// is closest to (or furthest inside).
func DistanceToModel(model *InlineModel, brushes []Brush, point vec.Vec3) float32 {
	best := float32(math32.Inf(1))
	for _, bi := range model.Leaf.Brushes {
		d := DistanceToBrush(&brushes[bi], point)
		if d < best {
			best = d
		}
	}
	return best
}
