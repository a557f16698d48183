package curve

import (
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/tween"
)

// Placement provides the rigid transform (position, orientation, scale)
// mapping a curve's local space into the space of its host object. The
// transform is re-read on every query, so a moving host is picked up
// without further wiring.
type Placement interface {
	Placement() splines.AT
}

// PlacementFunc adapts a plain function to the Placement interface.
type PlacementFunc func() splines.AT

// Placement calls f.
func (f PlacementFunc) Placement() splines.AT {
	return f()
}

// Spatial decorates a curve with a rigid transform. All point and
// control-point outputs of the inner curve are mapped into the placement's
// coordinate space; directions and tangents are mapped by the linear part
// only. Setters apply the inverse transform before delegating, so the
// inner curve's storage stays in local space.
//
// Spatial holds no cached state of its own: rebuild triggers and the dirty
// discipline are the inner curve's business.
type Spatial struct {
	inner Curve
	at    Placement
}

// InSpace wraps a curve with a placement. The wrapper's lifetime must not
// exceed that of either argument.
func InSpace(c Curve, pl Placement) *Spatial {
	return &Spatial{inner: c, at: pl}
}

// Inner returns the wrapped curve.
func (sp *Spatial) Inner() Curve {
	return sp.inner
}

func (sp *Spatial) inverse() (splines.AT, error) {
	inv, err := sp.at.Placement().Invert()
	if err != nil {
		tracer().Errorf("placement not invertible: %v", err)
	}
	return inv, err
}

// Kind returns the inner curve's variant kind.
func (sp *Spatial) Kind() Kind {
	return sp.inner.Kind()
}

// IsLooped delegates to the inner curve.
func (sp *Spatial) IsLooped() bool {
	return sp.inner.IsLooped()
}

// SetLooped delegates to the inner curve.
func (sp *Spatial) SetLooped(looped bool) {
	sp.inner.SetLooped(looped)
}

// VertexCount delegates to the inner curve.
func (sp *Spatial) VertexCount() int {
	return sp.inner.VertexCount()
}

// Vertex returns vertex i mapped into placement space.
func (sp *Spatial) Vertex(i int) (splines.Vec3, error) {
	p, err := sp.inner.Vertex(i)
	if err != nil {
		return p, err
	}
	return sp.at.Placement().Transform(p), nil
}

// SetVertex maps p back into local space and delegates.
func (sp *Spatial) SetVertex(i int, p splines.Vec3) error {
	inv, err := sp.inverse()
	if err != nil {
		return err
	}
	return sp.inner.SetVertex(i, inv.Transform(p))
}

// Tangents returns the tangents at vertex i mapped by the linear part of
// the placement.
func (sp *Spatial) Tangents(i int) (in, out splines.Vec3, err error) {
	in, out, err = sp.inner.Tangents(i)
	if err != nil {
		return in, out, err
	}
	m := sp.at.Placement()
	return m.TransformVector(in), m.TransformVector(out), nil
}

// SetTangents maps the tangents back into local space and delegates.
func (sp *Spatial) SetTangents(i int, in, out splines.Vec3) error {
	inv, err := sp.inverse()
	if err != nil {
		return err
	}
	return sp.inner.SetTangents(i, inv.TransformVector(in), inv.TransformVector(out))
}

// VertexUserData delegates to the inner curve; tags are opaque.
func (sp *Spatial) VertexUserData(i int) (any, error) {
	return sp.inner.VertexUserData(i)
}

// SetVertexUserData delegates to the inner curve; tags are opaque.
func (sp *Spatial) SetVertexUserData(i int, tag any) error {
	return sp.inner.SetVertexUserData(i, tag)
}

// ControlCount delegates to the inner curve.
func (sp *Spatial) ControlCount() int {
	return sp.inner.ControlCount()
}

// ControlPoint returns control point i mapped into placement space.
func (sp *Spatial) ControlPoint(i int) (splines.Vec3, error) {
	p, err := sp.inner.ControlPoint(i)
	if err != nil {
		return p, err
	}
	return sp.at.Placement().Transform(p), nil
}

// SetControlPoint maps p back into local space and delegates.
func (sp *Spatial) SetControlPoint(i int, p splines.Vec3) error {
	inv, err := sp.inverse()
	if err != nil {
		return err
	}
	return sp.inner.SetControlPoint(i, inv.Transform(p))
}

// Distance delegates to the inner curve. Lengths are reported in local
// space; a scaling placement does not rescale them.
func (sp *Spatial) Distance(prec Precision) (float64, error) {
	return sp.inner.Distance(prec)
}

// DirectDistance delegates to the inner curve.
func (sp *Spatial) DirectDistance() (float64, error) {
	return sp.inner.DirectDistance()
}

// LocateSegment delegates to the inner curve; segment indices and
// fractions are coordinate-free.
func (sp *Spatial) LocateSegment(percent float64) (Segment, error) {
	return sp.inner.LocateSegment(percent)
}

// Point returns the inner curve's point mapped into placement space.
func (sp *Spatial) Point(percent float64, ease tween.Func) (splines.Vec3, error) {
	p, err := sp.inner.Point(percent, ease)
	if err != nil {
		return p, err
	}
	return sp.at.Placement().Transform(p), nil
}

// Direction returns the inner curve's direction mapped by the linear part
// of the placement and renormalized.
func (sp *Spatial) Direction(percent float64, ease tween.Func) (splines.Vec3, error) {
	d, err := sp.inner.Direction(percent, ease)
	if err != nil {
		return d, err
	}
	return sp.at.Placement().TransformVector(d).Normalized(), nil
}

// TransformPercent delegates to the inner curve.
func (sp *Spatial) TransformPercent(percent float64, prec Precision) (float64, error) {
	return sp.inner.TransformPercent(percent, prec)
}

// InverseTransformPercent delegates to the inner curve.
func (sp *Spatial) InverseTransformPercent(percent float64, prec Precision) (float64, error) {
	return sp.inner.InverseTransformPercent(percent, prec)
}

// Process delegates the rebuild trigger to the inner curve on every call.
func (sp *Spatial) Process() (bool, error) {
	return sp.inner.Process()
}

// SetUpdateCallback delegates to the inner curve.
func (sp *Spatial) SetUpdateCallback(fn func(Curve)) {
	sp.inner.SetUpdateCallback(fn)
}
