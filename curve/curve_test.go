package curve

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/tween"
)

func squareLoop() *Spline {
	s := NewCatmullRom(
		splines.V(0, 0, 0),
		splines.V(10, 0, 0),
		splines.V(10, 10, 0),
		splines.V(0, 10, 0),
	)
	s.SetLooped(true)
	return s
}

func TestSegmentPartition(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, n := range []int{2, 3, 5, 9} { // segment counts 1, 2, 4, 8
		points := make([]splines.Vec3, n)
		for i := range points {
			points[i] = splines.V(float64(i), 0, 0)
		}
		s := NewLinear(points...)
		segs := s.SegmentCount()
		for k := 0; k < segs; k++ {
			seg, err := s.LocateSegment(float64(k) / float64(segs))
			if err != nil {
				t.Fatalf("LocateSegment failed: %v", err)
			}
			if seg.A != k || seg.B != k+1 {
				t.Errorf("segments=%d k=%d: got vertices (%d,%d)", segs, k, seg.A, seg.B)
			}
			if !splines.Is0(seg.Frac) {
				t.Errorf("segments=%d k=%d: got interpolation %g, want 0", segs, k, seg.Frac)
			}
		}
		seg, _ := s.LocateSegment(1)
		if seg.A != segs-1 || !splines.Is1(seg.Frac) {
			t.Errorf("segments=%d: end located at (%d, %g), want (%d, 1)",
				segs, seg.A, seg.Frac, segs-1)
		}
	}
}

func TestLoopedSegmentLocation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := squareLoop()
	seg, err := s.LocateSegment(0.75)
	if err != nil {
		t.Fatalf("LocateSegment failed: %v", err)
	}
	if seg.A != 3 || seg.B != 0 {
		t.Errorf("expected last segment to wrap to vertex 0, got (%d,%d)", seg.A, seg.B)
	}
	seg, _ = s.LocateSegment(-0.25)
	if seg.A != 3 || seg.B != 0 {
		t.Errorf("expected negative percent to wrap, got (%d,%d)", seg.A, seg.B)
	}
}

func TestLoopedWrap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := squareLoop()
	for _, p := range []float64{0, 0.1, 0.37, 0.5, 0.99} {
		a, err := s.Point(p, nil)
		if err != nil {
			t.Fatalf("Point failed: %v", err)
		}
		b, err := s.Point(p+1, nil)
		if err != nil {
			t.Fatalf("Point failed: %v", err)
		}
		if !a.Equal(b) {
			t.Errorf("p=%g: point(p)=%v differs from point(p+1)=%v", p, a, b)
		}
	}
}

func TestCatmullRomTensionZeroEquivalence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	points := []splines.Vec3{
		splines.V(0, 0, 0), splines.V(1, 2, 0), splines.V(3, 2, 1), splines.V(4, 0, 1),
	}
	cardinal := NewHermite(points...)
	if err := cardinal.SetAsCardinal(0); err != nil {
		t.Fatalf("SetAsCardinal failed: %v", err)
	}
	catmull := NewHermite(points...)
	if err := catmull.SetAsCatmullRom(); err != nil {
		t.Fatalf("SetAsCatmullRom failed: %v", err)
	}
	if _, err := cardinal.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if _, err := catmull.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for i := 0; i < len(points); i++ {
		in1, out1, _ := cardinal.Tangents(i)
		in2, out2, _ := catmull.Tangents(i)
		if !in1.Equal(in2) || !out1.Equal(out2) {
			t.Errorf("vertex %d: cardinal(0) tangents (%v,%v) differ from Catmull-Rom (%v,%v)",
				i, in1, out1, in2, out2)
		}
	}
}

// Linear curve, non-looped: direct distance is the chord sum and uniform
// percent 0.5 lands exactly on the middle vertex.
func TestLinearScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(10, 0, 0), splines.V(10, 10, 0))
	d, err := s.DirectDistance()
	if err != nil {
		t.Fatalf("DirectDistance failed: %v", err)
	}
	if !splines.Is0(d - 20) {
		t.Errorf("expected direct distance 20, got %g", d)
	}
	p, err := s.Point(0.5, nil)
	if err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if !p.Equal(splines.V(10, 0, 0)) {
		t.Errorf("expected point(0.5) = (10,0,0), got %v", p)
	}
	precise, _ := s.Distance(PrecisionPrecise)
	if !splines.Is0(precise - 20) {
		t.Errorf("expected linear precise distance 20, got %g", precise)
	}
}

// Simple curve: endpoints are hit exactly, the control points only shape
// the interior.
func TestSimpleScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewSimple(splines.V(0, 0, 0), splines.V(10, 0, 0),
		splines.V(5, 10, 0), splines.V(5, 10, 0))
	p0, err := s.Point(0, nil)
	if err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if !p0.Equal(splines.V(0, 0, 0)) {
		t.Errorf("expected point(0) = start, got %v", p0)
	}
	p1, _ := s.Point(1, nil)
	if !p1.Equal(splines.V(10, 0, 0)) {
		t.Errorf("expected point(1) = end, got %v", p1)
	}
	mid, _ := s.Point(0.5, nil)
	if mid.Y <= 0 {
		t.Errorf("expected control points to pull the curve upward, got %v", mid)
	}
}

// Cardinal curve with control points at the endpoints: the sampled length
// follows the curvature and can only exceed the chord sum.
func TestCardinalScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewCardinal(0,
		splines.V(0, 0, 0), splines.V(1, 0, 0), splines.V(2, 1, 0), splines.V(3, 1, 0))
	if err := s.ResetControlPoints(); err != nil {
		t.Fatalf("ResetControlPoints failed: %v", err)
	}
	precise, err := s.Distance(PrecisionPrecise)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	direct, _ := s.DirectDistance()
	if precise < direct-splines.Epsilon {
		t.Errorf("expected precise distance %g >= direct distance %g", precise, direct)
	}
}

func TestDirtyFlagDiscipline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(1, 0, 0))
	rebuilt, err := s.Process()
	if err != nil || !rebuilt {
		t.Fatalf("expected first Process to rebuild, got (%v, %v)", rebuilt, err)
	}
	rebuilt, _ = s.Process()
	if rebuilt {
		t.Errorf("expected clean Process to be a no-op")
	}
	if err := s.SetVertex(1, splines.V(2, 0, 0)); err != nil {
		t.Fatalf("SetVertex failed: %v", err)
	}
	if !s.IsDirty() {
		t.Errorf("expected SetVertex to flag the spline dirty")
	}
	rebuilt, _ = s.Process()
	if !rebuilt {
		t.Errorf("expected Process after mutation to rebuild")
	}
	d, _ := s.DirectDistance()
	if !splines.Is0(d - 2) {
		t.Errorf("expected rebuilt distance 2, got %g", d)
	}
}

func TestUpdateCallback(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(1, 0, 0))
	count := 0
	s.SetUpdateCallback(func(Curve) { count++ })
	if _, err := s.Point(0.5, nil); err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if _, err := s.Point(0.7, nil); err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one rebuild notification, got %d", count)
	}
}

func TestTooFewVertices(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0))
	_, err := s.Point(0.5, nil)
	if !errors.Is(err, ErrTooFewVertices) {
		t.Errorf("expected ErrTooFewVertices, got %v", err)
	}
	if !s.IsDirty() {
		t.Errorf("expected failed rebuild to leave the spline dirty")
	}
}

func TestIndexErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(1, 0, 0))
	if _, err := s.Vertex(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for vertex -1, got %v", err)
	}
	if err := s.SetVertex(2, splines.Origin); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for vertex 2, got %v", err)
	}
	simple := NewSimple(splines.V(0, 0, 0), splines.V(1, 0, 0),
		splines.V(0, 1, 0), splines.V(1, 1, 0))
	if _, err := simple.ControlPoint(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for control 2, got %v", err)
	}
}

func TestControlPointSupport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	linear := NewLinear(splines.V(0, 0, 0), splines.V(1, 0, 0))
	if _, err := linear.ControlPoint(0); !errors.Is(err, ErrNoControlPoints) {
		t.Errorf("expected ErrNoControlPoints on linear curve, got %v", err)
	}
	looped := NewCatmullRom(splines.V(0, 0, 0), splines.V(1, 0, 0), splines.V(1, 1, 0))
	looped.SetLooped(true)
	if err := looped.SetControlPoint(0, splines.Origin); !errors.Is(err, ErrNoControlPoints) {
		t.Errorf("expected ErrNoControlPoints on looped hermite curve, got %v", err)
	}
	if looped.ControlCount() != 0 {
		t.Errorf("expected control count 0 on looped hermite curve")
	}
	looped.SetLooped(false)
	if looped.ControlCount() != 2 {
		t.Errorf("expected control count 2 on open hermite curve")
	}
}

func TestSimpleConfigurationErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(KindSimple)
	s.AppendVertex(splines.V(0, 0, 0))
	s.AppendVertex(splines.V(1, 0, 0))
	s.AppendVertex(splines.V(2, 0, 0))
	_, err := s.Process()
	if !errors.Is(err, ErrBadConfiguration) {
		t.Errorf("expected ErrBadConfiguration for 3-vertex simple curve, got %v", err)
	}
	s2 := NewSimple(splines.V(0, 0, 0), splines.V(1, 0, 0),
		splines.V(0, 1, 0), splines.V(1, 1, 0))
	s2.SetLooped(true)
	if _, err := s2.Process(); !errors.Is(err, ErrBadConfiguration) {
		t.Errorf("expected ErrBadConfiguration for looped simple curve, got %v", err)
	}
}

func TestTangentModeErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(1, 0, 0))
	if err := s.SetAsCatmullRom(); !errors.Is(err, ErrBadConfiguration) {
		t.Errorf("expected ErrBadConfiguration for catmull-rom on linear curve, got %v", err)
	}
}

func TestControlPointAutoDefault(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewCatmullRom(splines.V(0, 0, 0), splines.V(1, 1, 0), splines.V(2, 0, 0))
	if _, err := s.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	c0, err := s.ControlPoint(0)
	if err != nil {
		t.Fatalf("ControlPoint failed: %v", err)
	}
	if !c0.Equal(splines.V(0, 0, 0)) {
		t.Errorf("expected control 0 defaulted to first vertex, got %v", c0)
	}
	c1, _ := s.ControlPoint(1)
	if !c1.Equal(splines.V(2, 0, 0)) {
		t.Errorf("expected control 1 defaulted to last vertex, got %v", c1)
	}
}

func TestDirection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(10, 0, 0))
	dir, err := s.Direction(0.5, nil)
	if err != nil {
		t.Fatalf("Direction failed: %v", err)
	}
	if !dir.Equal(splines.V(1, 0, 0)) {
		t.Errorf("expected direction (1,0,0), got %v", dir)
	}
	// at the very end of an open curve both samples coincide
	dir, _ = s.Direction(1, nil)
	if !dir.IsOrigin() {
		t.Errorf("expected degenerate direction to be the zero vector, got %v", dir)
	}
}

func TestDirectionEased(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(
		splines.V(0, 0, 0), splines.V(10, 0, 0), splines.V(10, 10, 0), splines.V(0, 10, 0))
	s.SetLooped(true)
	fwd, err := s.Direction(0.1, nil)
	if err != nil {
		t.Fatalf("Direction failed: %v", err)
	}
	rev, _ := s.Direction(0.1, tween.Flip)
	if !fwd.Add(rev).Zap().IsOrigin() {
		t.Errorf("expected flipped easing to reverse direction: fwd=%v rev=%v", fwd, rev)
	}
}

func TestUserData(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(10, 0, 0))
	if err := s.SetVertexUserData(0, "red"); err != nil {
		t.Fatalf("SetVertexUserData failed: %v", err)
	}
	if err := s.SetVertexUserData(1, "blue"); err != nil {
		t.Fatalf("SetVertexUserData failed: %v", err)
	}
	tag, err := s.VertexUserData(0)
	if err != nil || tag != "red" {
		t.Errorf("expected tag 'red', got %v (%v)", tag, err)
	}
	near, err := s.UserDataAt(0.1)
	if err != nil || near != "red" {
		t.Errorf("expected tag of nearer endpoint 'red', got %v (%v)", near, err)
	}
	far, _ := s.UserDataAt(0.9)
	if far != "blue" {
		t.Errorf("expected tag of nearer endpoint 'blue', got %v", far)
	}
	if _, err := s.VertexUserData(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestTagsDoNotFlagDirty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(1, 0, 0))
	if _, err := s.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if err := s.SetVertexUserData(0, 42); err != nil {
		t.Fatalf("SetVertexUserData failed: %v", err)
	}
	if s.IsDirty() {
		t.Errorf("expected tag mutation to leave derived state fresh")
	}
}

func TestExplicitTangents(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewHermite(splines.V(0, 0, 0), splines.V(10, 0, 0))
	up := splines.V(0, 10, 0)
	if err := s.SetTangents(0, up, up); err != nil {
		t.Fatalf("SetTangents failed: %v", err)
	}
	if err := s.SetTangents(1, up, up); err != nil {
		t.Fatalf("SetTangents failed: %v", err)
	}
	// equal up-tangents lift the quarter point by 10*(h10+h11) = 0.9375
	q, err := s.Point(0.25, nil)
	if err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if math.Abs(q.Y-0.9375) > 1e-9 {
		t.Errorf("expected quarter point lifted to y=0.9375, got %v", q)
	}
	// at the midpoint the symmetric tangent contributions cancel exactly
	mid, _ := s.Point(0.5, nil)
	if math.Abs(mid.X-5) > 1e-9 || !splines.Is0(mid.Y) {
		t.Errorf("expected midpoint (5,0,0), got %v", mid)
	}
}

// Defaulted control points track the endpoints across vertex changes;
// explicitly set ones stay put.
func TestControlPointDefaultTracksEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewCatmullRom(splines.V(0, 0, 0), splines.V(1, 1, 0), splines.V(2, 0, 0))
	if _, err := s.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if err := s.SetVertex(0, splines.V(-5, 0, 0)); err != nil {
		t.Fatalf("SetVertex failed: %v", err)
	}
	if _, err := s.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	c0, err := s.ControlPoint(0)
	if err != nil {
		t.Fatalf("ControlPoint failed: %v", err)
	}
	if !c0.Equal(splines.V(-5, 0, 0)) {
		t.Errorf("expected defaulted control 0 to follow the moved endpoint, got %v", c0)
	}
	pinned := splines.V(9, 9, 9)
	if err := s.SetControlPoint(0, pinned); err != nil {
		t.Fatalf("SetControlPoint failed: %v", err)
	}
	if err := s.SetVertex(0, splines.V(7, 7, 0)); err != nil {
		t.Fatalf("SetVertex failed: %v", err)
	}
	if _, err := s.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	c0, _ = s.ControlPoint(0)
	if !c0.Equal(pinned) {
		t.Errorf("expected explicit control 0 to survive vertex changes, got %v", c0)
	}
}

// Place an object halfway along a path, once by uniform percent (each
// segment an equal share) and once at constant speed (each unit of
// travelled distance an equal share). For this vertex spacing both land on
// the middle vertex.
func ExampleSpline_usage() {
	s := NewLinear(
		splines.V(0, 0, 0), splines.V(10, 0, 0), splines.V(10, 10, 0))
	d, _ := s.DirectDistance()
	fmt.Printf("distance = %g\n", d)
	pt, _ := s.Point(0.5, nil)
	fmt.Printf("uniform midpoint = %s\n", pt)
	u, _ := s.TransformPercent(0.5, PrecisionDirect)
	pt, _ = s.Point(u, nil)
	fmt.Printf("constant-speed midpoint = %s\n", pt)

	// distance = 20
	// uniform midpoint = (10,0,0)
	// constant-speed midpoint = (10,0,0)
}

func TestPercentClampOpen(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewLinear(splines.V(0, 0, 0), splines.V(10, 0, 0))
	p, err := s.Point(1.5, nil)
	if err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if !p.Equal(splines.V(10, 0, 0)) {
		t.Errorf("expected percents past 1 to clamp to the end, got %v", p)
	}
	p, _ = s.Point(-0.5, nil)
	if !p.IsOrigin() {
		t.Errorf("expected negative percents to clamp to the start, got %v", p)
	}
}
