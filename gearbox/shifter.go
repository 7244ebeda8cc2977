package gearbox

import (
	"errors"
	"math"

	"github.com/rcgears/dogbox/form2/must2"
	"github.com/rcgears/dogbox/form3/must3"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// ShifterSpec describes the sliding dog collar.
type ShifterSpec struct {
	OuterDiameter      float64
	BoreDiameter       float64
	Width              float64 // 0 derives 3x the groove width
	ForkGrooveWidth    float64
	ForkGrooveDiameter float64 // groove floor diameter the fork rides
	DogRing            DogRingSpec
	Keyway             *KeywaySpec
}

func (k ShifterSpec) validate() error {
	switch {
	case k.OuterDiameter <= 0:
		return errors.New("shifter: outer diameter <= 0")
	case k.BoreDiameter <= 0:
		return errors.New("shifter: bore diameter <= 0")
	case k.BoreDiameter >= k.OuterDiameter:
		return errors.New("shifter: bore does not fit inside the collar")
	case k.Width < 0:
		return errors.New("shifter: width < 0")
	case k.ForkGrooveWidth <= 0:
		return errors.New("shifter: fork groove width <= 0")
	case k.ForkGrooveDiameter <= k.BoreDiameter:
		return errors.New("shifter: groove floor inside the bore")
	case k.ForkGrooveDiameter >= k.OuterDiameter:
		return errors.New("shifter: groove floor outside the collar")
	}
	return nil
}

// width returns the collar width, derived from the groove when unset.
func (k ShifterSpec) width() float64 {
	if k.Width == 0 {
		return 3 * k.ForkGrooveWidth
	}
	return k.Width
}

// Shifter builds the sliding collar: a cylinder with a mid-height
// circumferential groove for the fork, a through-bore, an optional
// keyway and dog rings on the requested face(s). Inside sockets are
// carved with the other cuts; outside teeth are unioned on after all
// cutting so they protrude intact. The body spans z in [0, width].
func Shifter(k ShifterSpec) (sdf.SDF3, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	width := k.width()
	if width <= k.ForkGrooveWidth {
		return nil, errors.New("shifter: width does not clear the fork groove")
	}
	radius := k.OuterDiameter / 2
	forkRadius := k.ForkGrooveDiameter / 2

	collar := must3.Cylinder(width, radius, 0)
	solid := sdf.Transform3D(collar, sdf.Translate3d(r3.Vec{Z: width / 2}))

	// groove ring: from the groove floor out past the rim, cut at
	// mid-height so walls of equal width remain either side
	grooveProfile := must2.ArcRing(forkRadius, radius+1-forkRadius, 2*math.Pi)
	groove := sdf.Extrude3D(grooveProfile, k.ForkGrooveWidth)
	solid = sdf.Difference3D(solid, sdf.Transform3D(groove, sdf.Translate3d(r3.Vec{Z: width / 2})))

	bore := must3.Cylinder(3*width, k.BoreDiameter/2, 0)
	solid = sdf.Difference3D(solid, sdf.Transform3D(bore, sdf.Translate3d(r3.Vec{Z: width / 2})))

	if k.Keyway != nil {
		slot, err := k.Keyway.prism(k.BoreDiameter/2, width)
		if err != nil {
			return nil, err
		}
		solid = sdf.Difference3D(solid, slot)
	}

	ring, err := placeRing(k.DogRing, width)
	if err != nil {
		return nil, err
	}
	if k.DogRing.Direction == Inside {
		return sdf.Difference3D(solid, ring), nil
	}
	return sdf.Union3D(solid, ring), nil
}
