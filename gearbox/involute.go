package gearbox

import (
	"fmt"

	"github.com/deadsy/sdfx/obj"
	sdfx "github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// involuteFacets is the flank facet count handed to the involute
// profile generator.
const involuteFacets = 10

// gearProfile adapts the sdfx involute generator to the local SDF2
// interface. The profile is a full gear disc: involute teeth down to
// the root circle and solid material inward to the bore circle.
type gearProfile struct {
	sdf2 sdfx.SDF2
	bb   r2.Box
}

// newGearProfile builds the 2d tooth profile for a gear spec.
// Tooth mathematics stay in the collaborator; this package only sizes
// the ring wall so material runs from the root circle to the bore.
func newGearProfile(k GearSpec) (*gearProfile, error) {
	pitchRadius := k.Module * float64(k.Teeth) / 2
	rootRadius := pitchRadius - 1.25*k.Module
	ringWidth := rootRadius - k.BoreDiameter/2
	if ringWidth <= 0 {
		return nil, fmt.Errorf("gear: bore diameter %g does not fit inside the root circle diameter %g",
			k.BoreDiameter, 2*rootRadius)
	}
	profile, err := obj.InvoluteGear(
		k.Teeth,                   // number of gear teeth
		k.Module,                  // pitch diameter / tooth count
		sdf.DtoR(k.PressureAngle), // pressure angle, radians
		0,                         // backlash
		0,                         // root clearance
		ringWidth,                 // ring wall from the root circle
		involuteFacets,
	)
	if err != nil {
		return nil, fmt.Errorf("involute gear: %w", err)
	}
	bb := profile.BoundingBox()
	return &gearProfile{
		sdf2: profile,
		bb: r2.Box{
			Min: r2.Vec{X: bb.Min.X, Y: bb.Min.Y},
			Max: r2.Vec{X: bb.Max.X, Y: bb.Max.Y},
		},
	}, nil
}

// Evaluate returns the minimum distance to the gear profile.
func (g *gearProfile) Evaluate(p r2.Vec) float64 {
	return g.sdf2.Evaluate(v2.Vec{X: p.X, Y: p.Y})
}

// Bounds returns the bounding box of the gear profile.
func (g *gearProfile) Bounds() r2.Box {
	return g.bb
}
