/*
Package splines implements 3D points, vectors and rigid transformations,
used as the numeric foundation for parametric curve evaluation
(see package curve).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package splines

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines'
func tracer() tracing.Trace {
	return tracing.Select("splines")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Vector Data Type ======================================================

// Vec3 is a 3D point or vector with float64 components.
type Vec3 struct {
	X, Y, Z float64
}

// Origin represents the frequently used constant (0,0,0).
var Origin = V(0, 0, 0)

// V is a quick notation for constructing a vector from floats.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Pretty Stringer for vectors.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// F is a quick notation for getting float values from a vector.
func (v Vec3) F() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

// IsValid is a predicate: are all components finite?
func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Zap rounds every component to Epsilon.
func (v Vec3) Zap() Vec3 {
	return V(Zap(v.X), Zap(v.Y), Zap(v.Z))
}

// IsOrigin is a predicate: is this vector origin?
func (v Vec3) IsOrigin() bool {
	return v.Equal(Origin)
}

// Equal compares two vectors.
func (v Vec3) Equal(w Vec3) bool {
	w = w.Zap()
	return Is0(v.X-w.X) && Is0(v.Y-w.Y) && Is0(v.Z-w.Z)
}

// Add returns a new vector v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return V(v.X+w.X, v.Y+w.Y, v.Z+w.Z)
}

// Sub returns a new vector v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return V(v.X-w.X, v.Y-w.Y, v.Z-w.Z)
}

// Scaled returns a new vector scaled by factor a.
func (v Vec3) Scaled(a float64) Vec3 {
	return V(v.X*a, v.Y*a, v.Z*a)
}

// Dot is the scalar product of two vectors.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross is the vector product of two vectors.
func (v Vec3) Cross(w Vec3) Vec3 {
	return V(
		v.Y*w.Z-v.Z*w.Y,
		v.Z*w.X-v.X*w.Z,
		v.X*w.Y-v.Y*w.X,
	)
}

// Magnitude is the Euclidean length of a vector.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit-length copy of v. A vector of magnitude ~0
// cannot be normalized and yields origin.
func (v Vec3) Normalized() Vec3 {
	m := v.Magnitude()
	if Is0(m) {
		tracer().Debugf("normalizing degenerate vector %s", v)
		return Origin
	}
	return v.Scaled(1 / m)
}

// Interp interpolates linearly between p and q: t=0 yields p, t=1 yields q.
func Interp(p, q Vec3, t float64) Vec3 {
	return p.Add(q.Sub(p).Scaled(t))
}
