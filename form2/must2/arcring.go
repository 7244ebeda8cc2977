package must2

import (
	"math"

	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// ArcRing returns the SDF2 for an annular wedge. The wedge has inner
// radius radius, radial width thickness and spans angle radians
// counter-clockwise starting from the positive x-axis.
// An angle of zero or less gives an empty shape. Angles of a full turn
// or more give the whole annulus.
func ArcRing(radius, thickness, angle float64) sdf.SDF2 {
	if radius < 0 {
		panic("radius < 0")
	}
	if thickness <= 0 {
		panic("thickness <= 0")
	}
	if angle <= tolerance {
		return sdf.Empty2D()
	}
	annulus := sdf.Difference2D(Circle(radius+thickness), Circle(radius))
	if angle >= tau-tolerance {
		return annulus
	}
	// A single clipping triangle only bounds a sector up to a quarter
	// turn. Wider spans are the union of rotated quarter wedges plus
	// the remainder.
	clip := 2 * (radius + thickness)
	quarters := int(angle / (math.Pi / 2))
	rem := angle - float64(quarters)*(math.Pi/2)
	var parts []sdf.SDF2
	for i := 0; i < quarters; i++ {
		parts = append(parts, sdf.Transform2D(wedge(clip, math.Pi/2), sdf.Rotate(float64(i)*math.Pi/2)))
	}
	if rem > tolerance {
		parts = append(parts, sdf.Transform2D(wedge(clip, rem), sdf.Rotate(float64(quarters)*math.Pi/2)))
	}
	sector := parts[0]
	if len(parts) > 1 {
		sector = sdf.Union2D(parts...)
	}
	return sdf.Intersect2D(annulus, sector)
}

// wedge returns a triangle covering the sector [0, theta] out to at
// least the clip radius. theta must not exceed a quarter turn.
func wedge(clip, theta float64) sdf.SDF2 {
	return Polygon([]r2.Vec{
		{},
		{X: clip},
		{X: clip * math.Cos(theta), Y: clip * math.Sin(theta)},
	})
}
