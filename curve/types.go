package curve

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/tween"
)

// tracer writes to trace with key 'splines.curve'
func tracer() tracing.Trace {
	return tracing.Select("splines.curve")
}

// arcSubdivisions is the fixed number of sub-steps sampled per segment when
// building the precise arc-length table. Rebuild cost is linear in
// segment count × arcSubdivisions.
const arcSubdivisions = 16

// directionLookahead is the parameter step used by the forward-difference
// approximation in Direction.
const directionLookahead = 0.001

var (
	// ErrTooFewVertices indicates a curve with fewer than 2 vertices at rebuild time.
	ErrTooFewVertices = errors.New("curve has too few vertices")
	// ErrBadConfiguration indicates a variant whose requirements the vertex set does not meet.
	ErrBadConfiguration = errors.New("curve configuration is invalid")
	// ErrIndexOutOfRange indicates a vertex or control-point index out of bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoControlPoints indicates control-point access on a variant/topology without control points.
	ErrNoControlPoints = errors.New("curve variant has no control points")
	// ErrUnknownKind indicates an unrecognized curve variant kind.
	ErrUnknownKind = errors.New("unknown curve variant kind")
)

// Kind enumerates the supported curve variants.
type Kind int

const (
	// KindLinear is a piecewise-linear curve through its vertices.
	KindLinear Kind = iota
	// KindSimple is a two-vertex curve shaped by two control points
	// (a cubic Bézier in Hermite form).
	KindSimple
	// KindHermite is a Hermite-family curve with per-vertex tangents,
	// either explicit or generated (cardinal / Catmull-Rom).
	KindHermite
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindSimple:
		return "simple"
	case KindHermite:
		return "hermite"
	}
	return "unknown"
}

// TangentMode selects how a Hermite curve obtains its tangents.
type TangentMode int

const (
	// TangentExplicit uses the tangents stored at each vertex as-is.
	TangentExplicit TangentMode = iota
	// TangentCardinal generates tangents from neighboring points and a
	// tension parameter; tension 0 is Catmull-Rom.
	TangentCardinal
)

// Precision selects the arc-length remapping tier for percent transforms
// and distance queries.
type Precision int

const (
	// PrecisionVertex performs no remapping: each segment occupies an
	// equal share of [0,1].
	PrecisionVertex Precision = iota
	// PrecisionDirect remaps by straight chord lengths between vertices.
	PrecisionDirect
	// PrecisionPrecise remaps by lengths sampled along the actual curve.
	PrecisionPrecise
)

// Vertex is a curve vertex: a point, optional in/out tangents, and an
// opaque caller-owned tag. Tangents are meaningful only for Hermite-family
// curves; the tag is stored but never interpreted by curve math.
type Vertex struct {
	Point      splines.Vec3
	InTangent  splines.Vec3
	OutTangent splines.Vec3
	Tag        any
}

// Segment locates a position on a curve: the indices of its two bounding
// vertices and the local interpolation fraction between them. Segments are
// always derived by LocateSegment, never stored.
type Segment struct {
	A, B int
	Frac float64
}

// Curve is the common contract implemented by every curve variant
// (see Spline) and by decorators such as Spatial.
//
// Queries may trigger a lazy rebuild and therefore mutate cached state;
// a Curve is not safe for concurrent use without external locking.
type Curve interface {
	Kind() Kind
	IsLooped() bool
	SetLooped(looped bool)

	VertexCount() int
	Vertex(i int) (splines.Vec3, error)
	SetVertex(i int, p splines.Vec3) error
	Tangents(i int) (in, out splines.Vec3, err error)
	SetTangents(i int, in, out splines.Vec3) error
	VertexUserData(i int) (any, error)
	SetVertexUserData(i int, tag any) error

	ControlCount() int
	ControlPoint(i int) (splines.Vec3, error)
	SetControlPoint(i int, p splines.Vec3) error

	Distance(prec Precision) (float64, error)
	DirectDistance() (float64, error)
	LocateSegment(percent float64) (Segment, error)
	Point(percent float64, ease tween.Func) (splines.Vec3, error)
	Direction(percent float64, ease tween.Func) (splines.Vec3, error)
	TransformPercent(percent float64, prec Precision) (float64, error)
	InverseTransformPercent(percent float64, prec Precision) (float64, error)

	Process() (bool, error)
	SetUpdateCallback(fn func(Curve))
}

// An arcEntry holds one segment's share of a normalized arc-length table:
// the running marker where the segment starts in [0,1) and the segment's
// normalized length.
type arcEntry struct {
	Marker float64
	Length float64
}
