package gearbox

import (
	"errors"
	"fmt"

	"github.com/rcgears/dogbox/form3/must3"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// dogTeethMin is the smallest tooth count a gear face can carry a dog
// ring on. Below it the ring is skipped with a diagnostic.
const dogTeethMin = 10

// GearKind picks the gear blank shape.
type GearKind int

const (
	Spur GearKind = iota
	Bevel
)

func (k GearKind) String() string {
	switch k {
	case Spur:
		return "spur"
	case Bevel:
		return "bevel"
	}
	return "unknown"
}

// GearSpec describes the toothed disc.
type GearSpec struct {
	Module        float64 // pitch diameter / tooth count
	Teeth         int
	Width         float64 // face width
	BoreDiameter  float64
	PressureAngle float64 // degrees
	Kind          GearKind
}

func (k GearSpec) validate() error {
	switch {
	case k.Module <= 0:
		return errors.New("gear: module <= 0")
	case k.Teeth < 1:
		return errors.New("gear: teeth < 1")
	case k.Width <= 0:
		return errors.New("gear: width <= 0")
	case k.BoreDiameter <= 0:
		return errors.New("gear: bore diameter <= 0")
	case k.PressureAngle <= 0 || k.PressureAngle >= 45:
		return errors.New("gear: pressure angle outside (0, 45) degrees")
	}
	return nil
}

// bevelScale is the top-face shrink factor of the bevel blank: the
// profile tapers linearly toward the pitch apex over the face width.
func bevelScale(k GearSpec) r2.Vec {
	pitchRadius := k.Module * float64(k.Teeth) / 2
	s := sdf.Clamp(1-k.Width/pitchRadius, 0.5, 0.999)
	return r2.Vec{X: s, Y: s}
}

// GearBody builds the toothed disc with an optional dog ring and an
// optional keyway. The body spans z in [0, width]. The keyway is cut
// last so the slot runs through an outside dog ring sharing its
// radius; a dog ring on a gear with dogTeethMin teeth or fewer is
// skipped with a diagnostic and the rest of the part still builds.
func GearBody(gear GearSpec, keyway *KeywaySpec, dogRing *DogRingSpec) (sdf.SDF3, error) {
	if err := gear.validate(); err != nil {
		return nil, err
	}
	profile, err := newGearProfile(gear)
	if err != nil {
		return nil, err
	}
	var blank sdf.SDF3
	switch gear.Kind {
	case Spur:
		blank = sdf.Extrude3D(profile, gear.Width)
	case Bevel:
		blank = sdf.ScaleExtrude3D(profile, gear.Width, bevelScale(gear))
	default:
		return nil, fmt.Errorf("gear: unknown kind %d", gear.Kind)
	}
	// extrusions are symmetric about z=0; shift the body onto [0, width]
	solid := sdf.Transform3D(blank, sdf.Translate3d(r3.Vec{Z: gear.Width / 2}))

	if dogRing != nil {
		if gear.Teeth <= dogTeethMin {
			diagf("gear: dog ring skipped, %d teeth but need more than %d", gear.Teeth, dogTeethMin)
		} else {
			ring, err := placeRing(*dogRing, gear.Width)
			if err != nil {
				return nil, err
			}
			if dogRing.Direction == Inside {
				solid = sdf.Difference3D(solid, ring)
			} else {
				solid = sdf.Union3D(solid, ring)
			}
		}
	}

	// the profile already carries the bore; an over-length cut keeps
	// the through-hole open across whatever the faces gained
	bore := must3.Cylinder(3*gear.Width, gear.BoreDiameter/2, 0)
	solid = sdf.Difference3D(solid, sdf.Transform3D(bore, sdf.Translate3d(r3.Vec{Z: gear.Width / 2})))

	if keyway != nil {
		slot, err := keyway.prism(gear.BoreDiameter/2, gear.Width)
		if err != nil {
			return nil, err
		}
		solid = sdf.Difference3D(solid, slot)
	}
	return solid, nil
}
