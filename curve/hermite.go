package curve

import (
	"github.com/npillmayer/splines"
)

// hermite evaluates the cubic Hermite basis between points p0 and p1 with
// tangents m0 (outgoing at p0) and m1 (incoming at p1), at parameter t.
func hermite(p0, p1, m0, m1 splines.Vec3, t float64) splines.Vec3 {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return p0.Scaled(h00).
		Add(m0.Scaled(h10)).
		Add(p1.Scaled(h01)).
		Add(m1.Scaled(h11))
}

// evalSegment evaluates the curve between the two vertices of seg at local
// fraction f. Linear curves interpolate the straight chord; all other
// variants go through the Hermite basis with the stored tangents.
// Assumes derived state is fresh.
func (s *Spline) evalSegment(seg Segment, f float64) splines.Vec3 {
	a := s.vertices[seg.A]
	b := s.vertices[seg.B]
	if s.kind == KindLinear {
		return splines.Interp(a.Point, b.Point, f)
	}
	return hermite(a.Point, b.Point, a.OutTangent, b.InTangent, f)
}

// generateTangents recomputes all tangents of a cardinal curve from
// neighboring points: tangent[i] = (point[i+1] - point[i-1]) * (1-tension)/2.
// Looped curves wrap their neighbors; open curves substitute control point
// 0 for the first vertex's predecessor and control point 1 for the last
// vertex's successor. In and out tangent of a vertex are set equal, so this
// mode cannot represent corners.
func (s *Spline) generateTangents() {
	f := (1 - s.tension) / 2
	n := len(s.vertices)
	for i := range s.vertices {
		var prev, next splines.Vec3
		if s.looped {
			prev = s.vertices[(i-1+n)%n].Point
			next = s.vertices[(i+1)%n].Point
		} else {
			if i == 0 {
				prev = s.controls[0]
			} else {
				prev = s.vertices[i-1].Point
			}
			if i == n-1 {
				next = s.controls[1]
			} else {
				next = s.vertices[i+1].Point
			}
		}
		t := next.Sub(prev).Scaled(f)
		s.vertices[i].InTangent = t
		s.vertices[i].OutTangent = t
	}
}

// deriveSimpleTangents derives the end tangents of a two-point curve from
// its control points, putting the cubic Bézier (start, c0, c1, end) into
// Hermite form.
func (s *Spline) deriveSimpleTangents() {
	p0 := s.vertices[0].Point
	p1 := s.vertices[1].Point
	t0 := s.controls[0].Sub(p0).Scaled(3)
	t1 := p1.Sub(s.controls[1]).Scaled(3)
	s.vertices[0].InTangent = t0
	s.vertices[0].OutTangent = t0
	s.vertices[1].InTangent = t1
	s.vertices[1].OutTangent = t1
}

// zeroTangents resets all tangents; linear curves carry none.
func (s *Spline) zeroTangents() {
	for i := range s.vertices {
		s.vertices[i].InTangent = splines.Origin
		s.vertices[i].OutTangent = splines.Origin
	}
}
