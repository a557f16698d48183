// Package curve evaluates parametric curves for driving objects along
// smooth paths: given a set of control vertices it computes positions,
// travel directions and arc-length-normalized traversal, usable both for
// one-off placement and for continuous per-frame playback.
/*

Three curve variants share a single engine: piecewise-linear curves,
simple two-point curves shaped by a pair of control points, and
Hermite-family curves whose per-vertex tangents are either explicit or
generated cardinal-style (Catmull-Rom at tension 0):

	s := curve.NewCatmullRom(
		splines.V(0, 0, 0),
		splines.V(1, 0, 0),
		splines.V(2, 1, 0),
		splines.V(3, 1, 0),
	)
	pt, err := s.Point(0.25, nil)
	dir, err := s.Direction(0.25, tween.SmoothStep)

Traversal percents are uniform by default: each topological segment
occupies an equal share of [0,1] regardless of its length. For
constant-speed motion, remap through the arc-length tables first:

	u, err := s.TransformPercent(p, curve.PrecisionPrecise)
	pt, err := s.Point(u, nil)

PrecisionDirect trades accuracy for cost by using straight chord lengths;
PrecisionPrecise samples along the actual curve.

Mutation is cheap and lazy: every setter only flags the spline dirty, and
the next query (or an explicit Process call) regenerates tangents and
arc-length tables in one pass. Queries may therefore mutate cached state;
curves are not safe for concurrent use without external locking.

Spatial decorates any curve with a rigid transform so all results arrive
in the space of a host object, and DynamicCurve is a reconfigurable
container that swaps variant kinds at runtime while reusing the engine
instance whenever the kind is unchanged.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curve
