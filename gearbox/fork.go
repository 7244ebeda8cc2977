package gearbox

import (
	"errors"
	"fmt"

	"github.com/rcgears/dogbox/form2/must2"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ForkSpec describes the shifter fork: a flat blade whose arc band
// rides the shifter groove and whose rod runs out to the actuation
// pivot.
type ForkSpec struct {
	EngagementRadius    float64 // band inner radius, rides the groove floor
	EngagementThickness float64 // band radial depth
	EngagementAngle     float64 // band span, degrees
	RodHeight           float64 // rod length from band to pivot
	RodAngle            float64 // rod swing off the band centerline, degrees
	RodThickness        float64 // rod width across
	BoreDiameter        float64 // pivot pin hole in the pad
	Width               float64 // blade thickness (extrusion height)
}

func (k ForkSpec) validate() error {
	switch {
	case k.EngagementRadius <= 0:
		return errors.New("fork: engagement radius <= 0")
	case k.EngagementThickness <= 0:
		return errors.New("fork: engagement thickness <= 0")
	case k.EngagementAngle <= 0 || k.EngagementAngle >= 360:
		return errors.New("fork: engagement angle outside (0, 360) degrees")
	case k.RodHeight <= 0:
		return errors.New("fork: rod height <= 0")
	case k.RodThickness <= 0:
		return errors.New("fork: rod thickness <= 0")
	case k.BoreDiameter <= 0:
		return errors.New("fork: bore diameter <= 0")
	case k.BoreDiameter >= 2*k.RodThickness:
		return errors.New("fork: bore does not fit the pivot pad")
	case k.Width <= 0:
		return errors.New("fork: width <= 0")
	}
	return nil
}

// Fork builds the shifter fork blade. The band is centered about the
// +x axis; the rod leaves the back of the band along +x, swung by
// RodAngle, ending in a round pivot pad with a pin bore. The blade
// spans z in [0, Width].
func Fork(k ForkSpec) (sdf.SDF3, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	theta := sdf.DtoR(k.EngagementAngle)
	band := sdf.Transform2D(
		must2.ArcRing(k.EngagementRadius, k.EngagementThickness, theta),
		sdf.Rotate(-theta/2),
	)

	// the rod sinks half the band depth into it so the blend has
	// material to join
	rOut := k.EngagementRadius + k.EngagementThickness
	rodStart := rOut - k.EngagementThickness/2
	padCenter := r2.Vec{X: rodStart + k.RodHeight}
	rod := sdf.Transform2D(
		must2.Line(k.RodHeight, k.RodThickness/2),
		sdf.Translate2d(r2.Vec{X: rodStart + k.RodHeight/2}),
	)
	pad := sdf.Transform2D(must2.Circle(k.RodThickness), sdf.Translate2d(padCenter))
	pin := sdf.Transform2D(must2.Circle(k.BoreDiameter/2), sdf.Translate2d(padCenter))
	arm := sdf.Difference2D(sdf.Union2D(rod, pad), pin)
	arm = sdf.Transform2D(arm, sdf.Rotate(sdf.DtoR(k.RodAngle)))

	blade := sdf.Union2D(band, arm)
	blade.SetMin(sdf.RoundMin(k.EngagementThickness))
	solid := sdf.Extrude3D(blade, k.Width)
	return sdf.Transform3D(solid, sdf.Translate3d(r3.Vec{Z: k.Width / 2})), nil
}

// MatesWith reports whether the fork rides this shifter's groove.
// No builder calls it: mating dimensions are a design-time contract
// between separately printed parts, but callers can check before
// committing plastic.
func (k ForkSpec) MatesWith(s ShifterSpec) error {
	grooveRadius := s.ForkGrooveDiameter / 2
	if !sdf.EqualFloat64(k.EngagementRadius, grooveRadius, 1e-9) {
		return fmt.Errorf("fork rides radius %g, groove floor is at %g", k.EngagementRadius, grooveRadius)
	}
	if k.Width >= s.ForkGrooveWidth {
		return fmt.Errorf("fork blade %g does not clear groove width %g", k.Width, s.ForkGrooveWidth)
	}
	return nil
}
