package splines

import (
	"errors"
	"fmt"
	"math"
)

// === Affine Transformations ================================================

// ErrSingularTransform indicates a transform without an inverse.
var ErrSingularTransform = errors.New("transform is singular")

// AT is an affine transform, a matrix type used for transforming points
// and vectors in 3D space.
type AT []float64 // a 4x4 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 16)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*4+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*4+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*4 : (row+1)*4]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 4)
	c[0] = m[col]
	c[1] = m[4+col]
	c[2] = m[8+col]
	c[3] = m[12+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	m.set(3, 3, 1.0)
	return m
}

// Translation transform. Translate a point by v.
func Translation(v Vec3) AT {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// Scaling transform, with per-axis scale factors.
func Scaling(sx, sy, sz float64) AT {
	m := newAT()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	m.set(2, 2, sz)
	m.set(3, 3, 1.0)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around an axis
// through the origin. Argument theta is in radians.
// The axis need not be normalized; a degenerate axis yields identity.
func Rotation(axis Vec3, theta float64) AT {
	u := axis.Normalized()
	if u.IsOrigin() {
		tracer().Errorf("rotation around degenerate axis %s", axis)
		return Identity()
	}
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	k := 1 - cos
	m := Identity()
	m.set(0, 0, cos+u.X*u.X*k)
	m.set(0, 1, u.X*u.Y*k-u.Z*sin)
	m.set(0, 2, u.X*u.Z*k+u.Y*sin)
	m.set(1, 0, u.Y*u.X*k+u.Z*sin)
	m.set(1, 1, cos+u.Y*u.Y*k)
	m.set(1, 2, u.Y*u.Z*k-u.X*sin)
	m.set(2, 0, u.Z*u.X*k-u.Y*sin)
	m.set(2, 1, u.Z*u.Y*k+u.X*sin)
	m.set(2, 2, cos+u.Z*u.Z*k)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := "["
	for row := 0; row < 4; row++ {
		if row > 0 {
			s += "|"
		}
		r := m.row(row)
		s += fmt.Sprintf("%g,%g,%g,%g", r[0], r[1], r[2], r[3])
	}
	return s + "]"
}

// v1 × v2, v.n = [a,b,c,d]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	p4 := vec1[3] * vec2[3]
	return p1 + p2 + p3 + p4
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 4)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	c[3] = dotProd(m.row(3), v)
	return c
}

// Transform a 3D-point. The argument is unchanged and a new point is returned.
func (m AT) Transform(p Vec3) Vec3 {
	c := []float64{p.X, p.Y, p.Z, 1.0}
	c = m.multiplyVector(c)
	return V(c[0], c[1], c[2])
}

// TransformVector transforms a direction or tangent vector, applying the
// linear part of the transform only (no translation).
func (m AT) TransformVector(v Vec3) Vec3 {
	c := []float64{v.X, v.Y, v.Z, 0.0}
	c = m.multiplyVector(c)
	return V(c[0], c[1], c[2])
}

// 3x3 sub-determinant of the linear part.
func (m AT) det3() float64 {
	return m.get(0, 0)*(m.get(1, 1)*m.get(2, 2)-m.get(1, 2)*m.get(2, 1)) -
		m.get(0, 1)*(m.get(1, 0)*m.get(2, 2)-m.get(1, 2)*m.get(2, 0)) +
		m.get(0, 2)*(m.get(1, 0)*m.get(2, 1)-m.get(1, 1)*m.get(2, 0))
}

// Invert returns the inverse transform. Affine transforms with a singular
// linear part (e.g., scale 0) return ErrSingularTransform.
func (m AT) Invert() (AT, error) {
	det := m.det3()
	if Is0(det) {
		return nil, fmt.Errorf("%w: determinant %g", ErrSingularTransform, det)
	}
	inv := Identity()
	// adjugate of the 3x3 linear part, divided by the determinant
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r1, r2 := (col+1)%3, (col+2)%3
			c1, c2 := (row+1)%3, (row+2)%3
			cof := m.get(r1, c1)*m.get(r2, c2) - m.get(r1, c2)*m.get(r2, c1)
			inv.set(row, col, cof/det)
		}
	}
	// -R⁻¹ · t
	t := []float64{m.get(0, 3), m.get(1, 3), m.get(2, 3), 0.0}
	for row := 0; row < 3; row++ {
		inv.set(row, 3, -dotProd(inv.row(row), t))
	}
	return inv, nil
}
