package curve

import (
	"fmt"

	"github.com/npillmayer/splines"
)

// DynamicCurve is a mutable container that can be reconfigured between
// variant kinds at runtime. It holds the full configuration (kind, points,
// control points, tension, loop flag) and lazily materializes a matching
// Spline: a change that only touches data reconfigures the existing
// instance in place, a change of kind discards and replaces it.
//
// The host's dirty flag is distinct from the inner spline's own dirty
// flag; Curve() clears the former, the spline's rebuild the latter.
type DynamicCurve struct {
	kind        Kind
	mode        TangentMode
	tension     float64
	looped      bool
	points      []splines.Vec3
	controls    [2]splines.Vec3
	hasControls bool
	dirty       bool
	inner       *Spline
	onUpdate    func(Curve)
}

// NewDynamic creates an unconfigured host for the given variant kind.
func NewDynamic(kind Kind) *DynamicCurve {
	return &DynamicCurve{kind: kind, dirty: true}
}

// Kind returns the configured variant kind.
func (d *DynamicCurve) Kind() Kind {
	return d.kind
}

// SetKind reconfigures the host to a different variant kind. Hermite
// curves start in explicit-tangent mode; see SetAsCardinal.
func (d *DynamicCurve) SetKind(kind Kind) {
	if d.kind != kind {
		d.kind = kind
		d.dirty = true
	}
}

// SetAsCardinal configures a Hermite curve with cardinal tangent
// generation at the given tension, switching kind if necessary.
func (d *DynamicCurve) SetAsCardinal(tension float64) {
	d.kind = KindHermite
	d.mode = TangentCardinal
	d.tension = tension
	d.dirty = true
}

// SetAsCatmullRom configures a Hermite curve with Catmull-Rom tangents
// (cardinal, tension 0).
func (d *DynamicCurve) SetAsCatmullRom() {
	d.SetAsCardinal(0)
}

// SetLooped switches between open and cyclic topology.
func (d *DynamicCurve) SetLooped(looped bool) {
	if d.looped != looped {
		d.looped = looped
		d.dirty = true
	}
}

// SetPoints replaces the configured vertex points.
func (d *DynamicCurve) SetPoints(points []splines.Vec3) {
	d.points = append(d.points[:0], points...)
	d.dirty = true
}

// AppendPoint adds a vertex point to the configuration.
func (d *DynamicCurve) AppendPoint(p splines.Vec3) {
	d.points = append(d.points, p)
	d.dirty = true
}

// SetControlPoints configures both auxiliary control points.
func (d *DynamicCurve) SetControlPoints(c0, c1 splines.Vec3) {
	d.controls = [2]splines.Vec3{c0, c1}
	d.hasControls = true
	d.dirty = true
}

// SetUpdateCallback attaches a rebuild notification, applied to the inner
// spline on the next materialization.
func (d *DynamicCurve) SetUpdateCallback(fn func(Curve)) {
	d.onUpdate = fn
	d.dirty = true
}

// Curve materializes (or reuses) a Spline matching the configuration and
// rebuilds it. A configuration the variant cannot satisfy returns an error
// and leaves the host dirty; cached results inside a reused instance stay
// stale rather than corrupted until a configuration rebuilds successfully.
func (d *DynamicCurve) Curve() (*Spline, error) {
	if !d.dirty && d.inner != nil {
		return d.inner, nil
	}
	if d.kind != KindLinear && d.kind != KindSimple && d.kind != KindHermite {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownKind, int(d.kind))
	}
	s := d.inner
	if s == nil || s.Kind() != d.kind {
		tracer().Debugf("replacing curve instance with new %s curve", d.kind)
		s = NewWithCapacity(d.kind, len(d.points))
	}
	s.SetVertices(d.points)
	s.SetLooped(d.looped)
	if d.kind == KindHermite {
		if d.mode == TangentCardinal {
			_ = s.SetAsCardinal(d.tension)
		} else {
			_ = s.SetAsExplicit()
		}
	}
	if d.hasControls && s.ControlCount() > 0 {
		_ = s.SetControlPoint(0, d.controls[0])
		_ = s.SetControlPoint(1, d.controls[1])
	}
	s.SetUpdateCallback(d.onUpdate)
	if _, err := s.Process(); err != nil {
		return nil, err
	}
	d.inner = s
	d.dirty = false
	return s, nil
}
