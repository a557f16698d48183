// Package tween provides easing functions mapping a traversal fraction in
// [0,1] onto an eased fraction in [0,1]. They are consumed by the curve
// evaluation functions in package curve to shape motion along a path.
package tween

// Func is an easing function. It must map 0 to 0 and 1 to 1; between the
// endpoints it is free to reshape the fraction.
type Func func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// Flip reverses traversal direction.
func Flip(t float64) float64 {
	return 1 - t
}

// SmoothStep eases in and out with the cubic 3t²-2t³.
func SmoothStep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// CubicBezier generates an easing determined by a cubic Bézier curve.
//
// The parameters are cubic control parameters. The curve starts at (0,0)
// going toward (x0,y0), and arrives at (1,1) coming from (x1,y1).
func CubicBezier(x0, y0, x1, y1 float64) Func {
	return func(x float64) float64 {
		// A cubic Bézier curve restricted to starting at (0,0) and
		// ending at (1,1) is defined as
		//
		// 	B(t) = 3*(1-t)^2*t*P0 + 3*(1-t)*t^2*P1 + t^3
		//
		// with derivative
		//
		//	B'(t) = 3*(1-t)^2*P0 + 6*(1-t)*t*(P1-P0) + 3*t^2*(1-P1)
		//
		// Given a value x ∈ [0,1], we solve for t using Newton's
		// method and solve for y using t.
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}

		// Solve for t using x.
		t := x
		for i := 0; i < 5; i++ {
			t2 := t * t
			t3 := t2 * t
			d := 1 - t
			d2 := d * d

			nx := 3*d2*t*x0 + 3*d*t2*x1 + t3
			dxdt := 3*d2*x0 + 6*d*t*(x1-x0) + 3*t2*(1-x1)
			if dxdt == 0 {
				break
			}

			t -= (nx - x) / dxdt
			if t <= 0 || t >= 1 {
				break
			}
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		// Solve for y using t.
		t2 := t * t
		t3 := t2 * t
		d := 1 - t
		d2 := d * d
		return 3*d2*t*y0 + 3*d*t2*y1 + t3
	}
}
