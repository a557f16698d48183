// Package footprint derives planar ground footprints from curves: a looped
// curve is sampled, projected onto the XY plane and turned into a polygon,
// which can then be intersected with other footprints. Typical use is
// answering "do these two patrol routes share ground?" for objects driven
// along curves.
package footprint

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/curve"
)

// L writes to trace with key 'splines.footprint'
func L() tracing.Trace {
	return tracing.Select("splines.footprint")
}

var (
	// ErrOpenCurve indicates an outline request for a non-looped curve.
	ErrOpenCurve = errors.New("footprint requires a looped curve")
	// ErrTooFewSamples indicates an outline request with fewer than 3 samples.
	ErrTooFewSamples = errors.New("footprint needs at least 3 samples")
)

// Outline samples a looped curve at the given number of uniform percents
// and projects the samples onto the ground (XY) plane, yielding a polygon
// with a single contour.
func Outline(c curve.Curve, samples int) (polyclip.Polygon, error) {
	if !c.IsLooped() {
		return nil, ErrOpenCurve
	}
	if samples < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSamples, samples)
	}
	contour := make(polyclip.Contour, 0, samples)
	for k := 0; k < samples; k++ {
		pt, err := c.Point(float64(k)/float64(samples), nil)
		if err != nil {
			return nil, err
		}
		contour = append(contour, polyclip.Point{X: pt.X, Y: pt.Y})
	}
	L().Debugf("sampled outline with %d points, area %.4g",
		len(contour), Area(polyclip.Polygon{contour}))
	return polyclip.Polygon{contour}, nil
}

// Box returns a rectangular footprint spanning two opposite corners
// (Z components are ignored).
func Box(min, max splines.Vec3) polyclip.Polygon {
	return polyclip.Polygon{{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
	}}
}

// Overlap returns the intersection of two footprints.
func Overlap(a, b polyclip.Polygon) polyclip.Polygon {
	return a.Construct(polyclip.INTERSECTION, b)
}

// Overlaps is a predicate: do two footprints share ground area?
func Overlaps(a, b polyclip.Polygon) bool {
	return !splines.Is0(Area(Overlap(a, b)))
}

// Area computes the unsigned area of a footprint by the shoelace formula,
// summed over its contours.
func Area(pg polyclip.Polygon) float64 {
	var area float64
	for _, contour := range pg {
		n := len(contour)
		if n < 3 {
			continue
		}
		var a float64
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a += contour[i].X*contour[j].Y - contour[j].X*contour[i].Y
		}
		area += math.Abs(a) / 2
	}
	return area
}
