package curve

import (
	"fmt"

	"github.com/npillmayer/splines"
)

// Process is the explicit rebuild trigger. It returns whether a rebuild
// actually occurred (false if the spline was not dirty).
//
// Rebuild order: default/derive control points and tangents where the
// variant requires it, then recompute the direct and precise arc-length
// tables, clear the dirty flag, and finally notify the update callback.
// A failed rebuild leaves the spline dirty; previously cached results stay
// untouched.
func (s *Spline) Process() (bool, error) {
	if !s.dirty {
		return false, nil
	}
	if err := s.validate(); err != nil {
		return false, err
	}
	if s.ControlCount() > 0 && (!s.hasControls || s.defaulted) {
		// control points never set by the caller default to the adjacent
		// endpoints and keep tracking them across rebuilds
		s.controls[0] = s.vertices[0].Point
		s.controls[1] = s.vertices[len(s.vertices)-1].Point
		s.hasControls = true
		s.defaulted = true
		tracer().Debugf("control points defaulted to endpoints %s and %s",
			s.controls[0], s.controls[1])
	}
	switch {
	case s.kind == KindLinear:
		s.zeroTangents()
	case s.kind == KindSimple:
		s.deriveSimpleTangents()
	case s.kind == KindHermite && s.mode == TangentCardinal:
		s.generateTangents()
	}
	s.rebuildArcTables()
	s.dirty = false
	tracer().Infof("rebuilt %s curve: %d vertices, direct %.6g, precise %.6g",
		s.kind, len(s.vertices), s.directTotal, s.preciseTotal)
	if s.onUpdate != nil {
		s.onUpdate(s)
	}
	return true, nil
}

// ensureFresh is the idempotent entry point called at the top of every
// query.
func (s *Spline) ensureFresh() error {
	_, err := s.Process()
	return err
}

func (s *Spline) validate() error {
	n := len(s.vertices)
	if n < 2 {
		return fmt.Errorf("%w: curve needs at least 2 vertices, has %d", ErrTooFewVertices, n)
	}
	if s.kind == KindSimple {
		if n != 2 {
			return fmt.Errorf("%w: simple curve needs exactly 2 vertices, has %d",
				ErrBadConfiguration, n)
		}
		if s.looped {
			return fmt.Errorf("%w: simple curve cannot be looped", ErrBadConfiguration)
		}
	}
	return nil
}

// rebuildArcTables walks every topological segment, recording the direct
// (chord) length and the precise length sampled at arcSubdivisions
// sub-steps along the actual curve. Running (marker, length) pairs are
// normalized by the respective grand total, so each tier partitions [0,1).
// Open curves pin the sentinel entry just past the last vertex to
// {marker 1, length 0}.
func (s *Spline) rebuildArcTables() {
	n := len(s.vertices)
	segs := s.SegmentCount()
	s.direct = growTable(s.direct, n)
	s.precise = growTable(s.precise, n)
	var runDirect, runPrecise float64
	for i := 0; i < segs; i++ {
		a := s.vertices[i].Point
		b := s.vertices[(i+1)%n].Point
		chord := b.Sub(a).Magnitude()
		s.direct[i] = arcEntry{Marker: runDirect, Length: chord}
		runDirect += chord

		seg := Segment{A: i, B: (i + 1) % n}
		prev := a
		var length float64
		for k := 1; k <= arcSubdivisions; k++ {
			pt := s.evalSegment(seg, float64(k)/float64(arcSubdivisions))
			length += pt.Sub(prev).Magnitude()
			prev = pt
		}
		s.precise[i] = arcEntry{Marker: runPrecise, Length: length}
		runPrecise += length
	}
	s.directTotal = runDirect
	s.preciseTotal = runPrecise
	normalizeTable(s.direct[:segs], runDirect)
	normalizeTable(s.precise[:segs], runPrecise)
	if !s.looped {
		s.direct[n-1] = arcEntry{Marker: 1, Length: 0}
		s.precise[n-1] = arcEntry{Marker: 1, Length: 0}
	}
}

// growTable reslices tab to n entries, reusing capacity. Tables grow but
// never shrink below the largest previously seen size.
func growTable(tab []arcEntry, n int) []arcEntry {
	if cap(tab) >= n {
		return tab[:n]
	}
	return make([]arcEntry, n)
}

// normalizeTable divides every marker/length pair by the tier's grand
// total. A degenerate total (all vertices coincident) zeroes the table;
// lookups then fall back to segment 0.
func normalizeTable(tab []arcEntry, total float64) {
	if splines.Is0(total) {
		for i := range tab {
			tab[i] = arcEntry{}
		}
		return
	}
	for i := range tab {
		tab[i].Marker /= total
		tab[i].Length /= total
	}
}
