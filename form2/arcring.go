package form2

import (
	"runtime/debug"

	"github.com/rcgears/dogbox/form2/must2"
	"github.com/rcgears/dogbox/sdf"
)

// ArcRing returns the SDF2 for an annular wedge with inner radius
// radius, radial width thickness, spanning angle radians
// counter-clockwise from the positive x-axis.
func ArcRing(radius, thickness, angle float64) (s sdf.SDF2, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.ArcRing(radius, thickness, angle), err
}
