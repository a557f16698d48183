package curve

import (
	"fmt"

	"github.com/npillmayer/splines"
)

// Spline is the concrete curve engine: a single tagged-variant type
// covering all curve kinds. Vertices, topology, tension and control points
// are set through explicit setters, each of which flags the spline dirty;
// queries lazily rebuild derived state (tangents and arc-length tables)
// before answering.
type Spline struct {
	kind         Kind
	mode         TangentMode
	tension      float64
	looped       bool
	vertices     []Vertex
	controls     [2]splines.Vec3
	hasControls  bool
	defaulted    bool // controls hold rebuild defaults, not caller values
	dirty        bool
	direct       []arcEntry // chord-length table, one entry per vertex
	precise      []arcEntry // sampled-length table, one entry per vertex
	directTotal  float64
	preciseTotal float64
	onUpdate     func(Curve)
}

// New creates an empty spline of the given variant kind. Hermite splines
// start in explicit-tangent mode; see SetAsCardinal and SetAsCatmullRom.
func New(kind Kind) *Spline {
	return NewWithCapacity(kind, 0)
}

// NewWithCapacity creates an empty spline with room for n vertices.
func NewWithCapacity(kind Kind, n int) *Spline {
	return &Spline{
		kind:     kind,
		vertices: make([]Vertex, 0, n),
		dirty:    true,
	}
}

// NewLinear creates a piecewise-linear curve through the given points.
func NewLinear(points ...splines.Vec3) *Spline {
	s := NewWithCapacity(KindLinear, len(points))
	s.SetVertices(points)
	return s
}

// NewSimple creates a two-point curve shaped by two control points.
func NewSimple(start, end, c0, c1 splines.Vec3) *Spline {
	s := NewWithCapacity(KindSimple, 2)
	s.SetVertices([]splines.Vec3{start, end})
	s.controls = [2]splines.Vec3{c0, c1}
	s.hasControls = true
	return s
}

// NewHermite creates a Hermite curve with explicit per-vertex tangents
// (initially zero; see SetTangents).
func NewHermite(points ...splines.Vec3) *Spline {
	s := NewWithCapacity(KindHermite, len(points))
	s.SetVertices(points)
	return s
}

// NewCatmullRom creates a Hermite curve with Catmull-Rom generated tangents.
func NewCatmullRom(points ...splines.Vec3) *Spline {
	return NewCardinal(0, points...)
}

// NewCardinal creates a Hermite curve with cardinal generated tangents.
func NewCardinal(tension float64, points ...splines.Vec3) *Spline {
	s := NewWithCapacity(KindHermite, len(points))
	s.SetVertices(points)
	s.mode = TangentCardinal
	s.tension = tension
	return s
}

// Kind returns the curve's variant kind. The kind is fixed at
// construction; swapping kinds is the job of DynamicCurve.
func (s *Spline) Kind() Kind {
	return s.kind
}

// IsLooped is a predicate: does the last vertex wrap to the first?
func (s *Spline) IsLooped() bool {
	return s.looped
}

// SetLooped switches between open and cyclic topology.
func (s *Spline) SetLooped(looped bool) {
	if s.looped != looped {
		s.looped = looped
		s.dirty = true
	}
}

// IsDirty is a predicate: is cached derived state stale?
func (s *Spline) IsDirty() bool {
	return s.dirty
}

// VertexCount returns the number of vertices.
func (s *Spline) VertexCount() int {
	return len(s.vertices)
}

// SegmentCount returns the number of topological segments: vertexCount for
// looped curves, vertexCount-1 otherwise.
func (s *Spline) SegmentCount() int {
	if s.looped {
		return len(s.vertices)
	}
	return len(s.vertices) - 1
}

func (s *Spline) checkVertex(i int) error {
	if i < 0 || i >= len(s.vertices) {
		return fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, i, len(s.vertices))
	}
	return nil
}

// Vertex returns the point stored at vertex i.
func (s *Spline) Vertex(i int) (splines.Vec3, error) {
	if err := s.checkVertex(i); err != nil {
		return splines.Origin, err
	}
	return s.vertices[i].Point, nil
}

// SetVertex moves vertex i and marks the spline dirty.
func (s *Spline) SetVertex(i int, p splines.Vec3) error {
	if err := s.checkVertex(i); err != nil {
		return err
	}
	s.vertices[i].Point = p
	s.dirty = true
	return nil
}

// Tangents returns the in/out tangents stored at vertex i. For cardinal
// tangent mode the values are only meaningful after a rebuild.
func (s *Spline) Tangents(i int) (in, out splines.Vec3, err error) {
	if err := s.checkVertex(i); err != nil {
		return splines.Origin, splines.Origin, err
	}
	return s.vertices[i].InTangent, s.vertices[i].OutTangent, nil
}

// SetTangents stores explicit in/out tangents at vertex i and marks the
// spline dirty. Generated-tangent modes overwrite them on rebuild.
func (s *Spline) SetTangents(i int, in, out splines.Vec3) error {
	if err := s.checkVertex(i); err != nil {
		return err
	}
	s.vertices[i].InTangent = in
	s.vertices[i].OutTangent = out
	s.dirty = true
	return nil
}

// VertexUserData returns the opaque tag stored at vertex i.
func (s *Spline) VertexUserData(i int) (any, error) {
	if err := s.checkVertex(i); err != nil {
		return nil, err
	}
	return s.vertices[i].Tag, nil
}

// SetVertexUserData attaches a caller-owned tag to vertex i. Tags do not
// contribute to derived state and therefore do not flag the spline dirty.
func (s *Spline) SetVertexUserData(i int, tag any) error {
	if err := s.checkVertex(i); err != nil {
		return err
	}
	s.vertices[i].Tag = tag
	return nil
}

// AppendVertex adds a vertex at the end of the curve and returns its index.
func (s *Spline) AppendVertex(p splines.Vec3) int {
	s.vertices = append(s.vertices, Vertex{Point: p})
	s.dirty = true
	return len(s.vertices) - 1
}

// SetVertices replaces all vertices with the given points, dropping
// tangents and tags.
func (s *Spline) SetVertices(points []splines.Vec3) {
	if cap(s.vertices) >= len(points) {
		s.vertices = s.vertices[:len(points)]
		for i := range s.vertices {
			s.vertices[i] = Vertex{Point: points[i]}
		}
	} else {
		s.vertices = make([]Vertex, len(points))
		for i, p := range points {
			s.vertices[i] = Vertex{Point: p}
		}
	}
	s.dirty = true
}

// Vertices returns a copy of the vertex sequence.
func (s *Spline) Vertices() []Vertex {
	vs := make([]Vertex, len(s.vertices))
	copy(vs, s.vertices)
	return vs
}

// ControlCount returns the number of auxiliary control points: 2 for open
// Simple/Hermite curves, 0 for Linear and looped Hermite curves.
func (s *Spline) ControlCount() int {
	switch s.kind {
	case KindSimple:
		return 2
	case KindHermite:
		if s.looped {
			return 0
		}
		return 2
	}
	return 0
}

func (s *Spline) checkControl(i int) error {
	if s.ControlCount() == 0 {
		return fmt.Errorf("%w: %s curve (looped=%v)", ErrNoControlPoints, s.kind, s.looped)
	}
	if i < 0 || i >= s.ControlCount() {
		return fmt.Errorf("%w: control point %d of %d", ErrIndexOutOfRange, i, s.ControlCount())
	}
	return nil
}

// ControlPoint returns auxiliary control point i.
func (s *Spline) ControlPoint(i int) (splines.Vec3, error) {
	if err := s.checkControl(i); err != nil {
		return splines.Origin, err
	}
	return s.controls[i], nil
}

// SetControlPoint moves auxiliary control point i and marks the spline
// dirty. Control points are not sampled directly; they derive end tangents.
func (s *Spline) SetControlPoint(i int, p splines.Vec3) error {
	if err := s.checkControl(i); err != nil {
		return err
	}
	s.controls[i] = p
	s.hasControls = true
	s.defaulted = false
	s.dirty = true
	return nil
}

// ResetControlPoints pins both control points to the adjacent endpoints
// (control 0 to the first vertex, control 1 to the last). This is also
// the default applied on rebuild when no control point was ever set;
// defaulted controls keep tracking the endpoints across vertex changes
// until SetControlPoint stores an explicit value.
func (s *Spline) ResetControlPoints() error {
	if s.ControlCount() == 0 {
		return fmt.Errorf("%w: %s curve (looped=%v)", ErrNoControlPoints, s.kind, s.looped)
	}
	if len(s.vertices) == 0 {
		return fmt.Errorf("%w: no vertices to pin control points to", ErrTooFewVertices)
	}
	s.controls[0] = s.vertices[0].Point
	s.controls[1] = s.vertices[len(s.vertices)-1].Point
	s.hasControls = true
	s.defaulted = true
	s.dirty = true
	return nil
}

// SetAsCardinal switches a Hermite curve to cardinal tangent generation
// with the given tension. Tension 0 yields Catmull-Rom behavior.
func (s *Spline) SetAsCardinal(tension float64) error {
	if s.kind != KindHermite {
		return fmt.Errorf("%w: %s curve cannot generate tangents", ErrBadConfiguration, s.kind)
	}
	s.mode = TangentCardinal
	s.tension = tension
	s.dirty = true
	return nil
}

// SetAsCatmullRom switches a Hermite curve to Catmull-Rom tangent
// generation (cardinal with tension 0).
func (s *Spline) SetAsCatmullRom() error {
	return s.SetAsCardinal(0)
}

// SetAsExplicit switches a Hermite curve back to explicit per-vertex
// tangents (see SetTangents).
func (s *Spline) SetAsExplicit() error {
	if s.kind != KindHermite {
		return fmt.Errorf("%w: %s curve has no tangent mode", ErrBadConfiguration, s.kind)
	}
	s.mode = TangentExplicit
	s.dirty = true
	return nil
}

// TangentMode returns the curve's tangent mode. Non-Hermite kinds report
// TangentExplicit.
func (s *Spline) TangentMode() TangentMode {
	return s.mode
}

// CardinalTension returns the tension used by cardinal tangent generation.
func (s *Spline) CardinalTension() float64 {
	return s.tension
}

// SetUpdateCallback attaches a notification invoked once after every
// successful rebuild.
func (s *Spline) SetUpdateCallback(fn func(Curve)) {
	s.onUpdate = fn
}
