package curve

import (
	"math"

	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/tween"
)

// wraparound maps any percent into [0,1), so negative and >1 inputs are
// well-defined on looped curves.
func wraparound(p float64) float64 {
	return math.Mod(math.Mod(p, 1)+1, 1)
}

// normalizePercent wraps looped percents and clamps open ones to [0,1].
func (s *Spline) normalizePercent(p float64) float64 {
	if s.looped {
		return wraparound(p)
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// locate maps a normalized traversal percent to a segment using uniform
// vertex-index spacing. Assumes derived state is fresh.
func (s *Spline) locate(percent float64) Segment {
	segs := s.SegmentCount()
	n := len(s.vertices)
	t := s.normalizePercent(percent) * float64(segs)
	i := int(math.Floor(t))
	if s.looped {
		i %= segs
		return Segment{A: i, B: (i + 1) % n, Frac: t - math.Floor(t)}
	}
	if i > segs-1 {
		i = segs - 1
	}
	return Segment{A: i, B: i + 1, Frac: t - float64(i)}
}

// LocateSegment maps a traversal percent in [0,1] (wrapped modulo 1 if
// looped, clamped otherwise) to the segment containing it. Each segment
// occupies an equal share of [0,1] regardless of its length; use
// TransformPercent first for arc-length spacing.
func (s *Spline) LocateSegment(percent float64) (Segment, error) {
	if err := s.ensureFresh(); err != nil {
		return Segment{}, err
	}
	return s.locate(percent), nil
}

func (s *Spline) pointAt(percent float64, ease tween.Func) splines.Vec3 {
	seg := s.locate(percent)
	f := seg.Frac
	if ease != nil {
		f = ease(f)
	}
	return s.evalSegment(seg, f)
}

// Point locates the segment for percent, applies the easing function to
// the local interpolation fraction (nil eases linearly), and evaluates the
// curve between the segment's two vertices.
func (s *Spline) Point(percent float64, ease tween.Func) (splines.Vec3, error) {
	if err := s.ensureFresh(); err != nil {
		return splines.Origin, err
	}
	return s.pointAt(percent, ease), nil
}

// Direction approximates the travel direction at percent by a normalized
// forward difference of Point in the eased domain. When both samples
// coincide (degenerate segment, or an open curve queried at its very end)
// the result is the zero vector.
func (s *Spline) Direction(percent float64, ease tween.Func) (splines.Vec3, error) {
	if err := s.ensureFresh(); err != nil {
		return splines.Origin, err
	}
	p := s.pointAt(percent, ease)
	q := s.pointAt(percent+directionLookahead, ease)
	return q.Sub(p).Normalized(), nil
}

// Distance returns the curve's total length: the sum of straight chords
// for PrecisionDirect, the length along the sampled curve otherwise.
func (s *Spline) Distance(prec Precision) (float64, error) {
	if err := s.ensureFresh(); err != nil {
		return 0, err
	}
	if prec == PrecisionDirect {
		return s.directTotal, nil
	}
	return s.preciseTotal, nil
}

// DirectDistance returns the sum of straight chord lengths between
// consecutive vertices.
func (s *Spline) DirectDistance() (float64, error) {
	return s.Distance(PrecisionDirect)
}

func (s *Spline) table(prec Precision) []arcEntry {
	if prec == PrecisionDirect {
		return s.direct
	}
	return s.precise
}

// TransformPercent converts an arc-length percent (equal share per unit of
// travelled distance) into the uniform percent (equal share per segment)
// that Point and LocateSegment consume. PrecisionVertex performs no
// remapping; percents 0 and 1 are returned unchanged.
func (s *Spline) TransformPercent(percent float64, prec Precision) (float64, error) {
	if err := s.ensureFresh(); err != nil {
		return 0, err
	}
	if prec == PrecisionVertex || percent == 0 || percent == 1 {
		return percent, nil
	}
	p := s.normalizePercent(percent)
	if p == 0 || p == 1 {
		return p, nil
	}
	tab := s.table(prec)
	segs := s.SegmentCount()
	// Scan backward from the last segment for the first marker <= p, so
	// ties resolve toward the later segment. Values below the first marker
	// fall back to segment 0.
	i := segs - 1
	for ; i > 0; i-- {
		if tab[i].Marker <= p {
			break
		}
	}
	e := tab[i]
	var f float64
	if !splines.Is0(e.Length) {
		f = (p - e.Marker) / e.Length
	}
	return (float64(i) + f) / float64(segs), nil
}

// InverseTransformPercent converts a uniform percent into the arc-length
// percent at the selected precision tier. It is the inverse of
// TransformPercent away from the boundary fallback cases.
func (s *Spline) InverseTransformPercent(percent float64, prec Precision) (float64, error) {
	if err := s.ensureFresh(); err != nil {
		return 0, err
	}
	if prec == PrecisionVertex || percent == 0 || percent == 1 {
		return percent, nil
	}
	p := s.normalizePercent(percent)
	if p == 0 || p == 1 {
		return p, nil
	}
	tab := s.table(prec)
	segs := s.SegmentCount()
	t := p * float64(segs)
	i := int(math.Floor(t))
	if i > segs-1 {
		i = segs - 1
	}
	e := tab[i]
	return e.Marker + (t-float64(i))*e.Length, nil
}

// UserDataAt returns the tag attached to the nearer endpoint of the
// segment located at percent.
func (s *Spline) UserDataAt(percent float64) (any, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}
	seg := s.locate(percent)
	if seg.Frac < 0.5 {
		return s.vertices[seg.A].Tag, nil
	}
	return s.vertices[seg.B].Tag, nil
}
