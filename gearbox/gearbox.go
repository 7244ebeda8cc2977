// Package gearbox generates printable drivetrain solids for a small
// RC transmission: involute gears carrying dog-clutch rings, the
// sliding shifter collars that engage them and the forks that move
// the collars. Every builder is a pure function from a value spec to
// a signed distance solid. Lengths are millimetres, angles in the
// specs are degrees.
package gearbox

import (
	"errors"

	"github.com/rcgears/dogbox/form3/must3"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Design is the full parameter set for one generator run. It is
// immutable by convention: builders copy what they need and never
// write back.
type Design struct {
	Part    PartKind
	Gear    GearSpec
	Keyway  *KeywaySpec  // nil leaves the gear unkeyed
	DogRing *DogRingSpec // nil leaves the gear undogged
	Shifter ShifterSpec
	Fork    ForkSpec
}

// DefaultDesign returns the stock drivetrain parameter set. The gear,
// shifter and fork values are sized to mate with each other.
func DefaultDesign() Design {
	dogs := DogRingSpec{
		Count:          3,
		RadialOffset:   1.5,
		ToothAngle:     30,
		ToothRadius:    1.5,
		ToothThickness: 1.5,
		Height:         1.5,
		Direction:      Outside,
		Face:           Front,
	}
	shifterDogs := dogs
	shifterDogs.Face = Both
	return Design{
		Part: PartSpur,
		Gear: GearSpec{
			Module:        1,
			Teeth:         12,
			Width:         5,
			BoreDiameter:  3,
			PressureAngle: 20,
			Kind:          Spur,
		},
		Keyway:  &KeywaySpec{Width: 1, Height: 1},
		DogRing: &dogs,
		Shifter: ShifterSpec{
			OuterDiameter:      15,
			BoreDiameter:       3,
			Width:              0, // derived from the groove width
			ForkGrooveWidth:    1,
			ForkGrooveDiameter: 12,
			DogRing:            shifterDogs,
			Keyway:             &KeywaySpec{Width: 1, Height: 1},
		},
		Fork: ForkSpec{
			EngagementRadius:    6,
			EngagementThickness: 1.5,
			EngagementAngle:     150,
			RodHeight:           18,
			RodAngle:            15,
			RodThickness:        2.5,
			BoreDiameter:        3,
			Width:               0.8,
		},
	}
}

// KeywaySpec is a slot cut into a bore for a drive key. Width is
// tangential, Height radial.
type KeywaySpec struct {
	Width  float64
	Height float64
}

// prism returns the keyway cutter for a bore of the given radius in a
// body spanning z in [0, width]. The slot is centered on the bore
// surface on the +x side and over-length in z so it cuts the whole
// width and anything unioned onto the faces.
func (k KeywaySpec) prism(boreRadius, width float64) (sdf.SDF3, error) {
	switch {
	case k.Width <= 0:
		return nil, errors.New("keyway: width <= 0")
	case k.Height <= 0:
		return nil, errors.New("keyway: height <= 0")
	}
	slot := must3.Box(r3.Vec{X: k.Height, Y: k.Width, Z: 3 * width}, 0)
	return sdf.Transform3D(slot, sdf.Translate3d(r3.Vec{X: boreRadius, Z: width / 2})), nil
}
