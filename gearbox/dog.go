package gearbox

import (
	"errors"
	"fmt"

	"github.com/rcgears/dogbox/form2/must2"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// socketAngleGrowth widens inside sockets over their mating teeth
	// so the clutch engages without binding.
	socketAngleGrowth = 1.3
	// socketClearance is the radial and axial oversize of inside
	// sockets, in millimetres.
	socketClearance = 0.25
	// faceBite is how far face features sink into the body. Boolean
	// surfaces must not coincide or the mesher leaves cracks.
	faceBite = 0.01
)

// Direction tells the dog-ring composer whether its teeth add
// material to a body or carve sockets out of the mating one.
type Direction int

const (
	Outside Direction = iota
	Inside
)

func (d Direction) String() string {
	switch d {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// ParseDirection maps a configuration string to its Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{Outside, Inside} {
		if s == d.String() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown dog ring direction %q", s)
}

// Face selects which face(s) of a body receive a dog ring.
type Face int

const (
	Back Face = iota
	Front
	Both
)

func (f Face) String() string {
	switch f {
	case Back:
		return "back"
	case Front:
		return "front"
	case Both:
		return "both"
	}
	return "unknown"
}

// ParseFace maps a configuration string to its Face.
func ParseFace(s string) (Face, error) {
	for _, f := range []Face{Back, Front, Both} {
		if s == f.String() {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown dog ring face %q", s)
}

// DogRingSpec describes a ring of clutch teeth about the z-axis.
type DogRingSpec struct {
	Count          int     // teeth around the ring
	RadialOffset   float64 // outward shift of each tooth
	ToothAngle     float64 // angular span of one tooth, degrees
	ToothRadius    float64 // inner radius of the tooth arc
	ToothThickness float64 // radial depth of the tooth arc
	Height         float64 // tooth height off the face
	Direction      Direction
	Face           Face
}

func (k DogRingSpec) validate() error {
	switch {
	case k.Count < 2:
		return errors.New("dog ring: count < 2")
	case k.ToothRadius < 0:
		return errors.New("dog ring: tooth radius < 0")
	case k.ToothThickness <= 0:
		return errors.New("dog ring: tooth thickness <= 0")
	case k.ToothAngle <= 0:
		return errors.New("dog ring: tooth angle <= 0")
	case k.ToothAngle*socketAngleGrowth >= 360/float64(k.Count):
		return errors.New("dog ring: teeth overlap once socket growth is applied")
	case k.Height <= 0:
		return errors.New("dog ring: height <= 0")
	case k.RadialOffset < 0:
		return errors.New("dog ring: radial offset < 0")
	}
	return nil
}

// DogTooth returns a single clutch tooth: an annular wedge profile
// extruded straight up to height. The tooth is centered about the +x
// axis with engagement edges at half the angle either side, and its
// base sits on z=0, so a composer can shift it radially and place
// copies about the origin.
func DogTooth(radius, thickness, angleDeg, height float64) (sdf.SDF3, error) {
	switch {
	case radius < 0:
		return nil, errors.New("dog tooth: radius < 0")
	case thickness <= 0:
		return nil, errors.New("dog tooth: thickness <= 0")
	case angleDeg <= 0 || angleDeg >= 360:
		return nil, errors.New("dog tooth: angle outside (0, 360) degrees")
	case height <= 0:
		return nil, errors.New("dog tooth: height <= 0")
	}
	theta := sdf.DtoR(angleDeg)
	profile := sdf.Transform2D(must2.ArcRing(radius, thickness, theta), sdf.Rotate(-theta/2))
	tooth := sdf.Extrude3D(profile, height)
	return sdf.Transform3D(tooth, sdf.Translate3d(r3.Vec{Z: height / 2})), nil
}

// DogRing places Count teeth at even spacing about the z-axis, bases
// on z=0. An outside ring is exact-size teeth meant to be unioned
// onto a body face. An inside ring is an enlarged socket template
// meant to be subtracted from the mating body: the tooth angle grows
// by socketAngleGrowth and the radial and axial dimensions by
// socketClearance, so the mating outside teeth seat freely.
func DogRing(k DogRingSpec) (sdf.SDF3, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	radius := k.ToothRadius
	thickness := k.ToothThickness
	angle := k.ToothAngle
	height := k.Height
	if k.Direction == Inside {
		radius -= socketClearance
		if radius < 0 {
			radius = 0
		}
		thickness += 2 * socketClearance
		angle *= socketAngleGrowth
		height += socketClearance
	}
	tooth, err := DogTooth(radius, thickness, angle, height)
	if err != nil {
		return nil, err
	}
	tooth = sdf.Transform3D(tooth, sdf.Translate3d(r3.Vec{X: k.RadialOffset}))
	return sdf.RotateCopy3D(tooth, k.Count), nil
}

// ringHeight is the total axial extent of the composed ring.
func (k DogRingSpec) ringHeight() float64 {
	if k.Direction == Inside {
		return k.Height + socketClearance
	}
	return k.Height
}

// placeRing positions the composed ring at the requested face(s) of a
// body spanning z in [0, bodyHeight]. Outside teeth protrude beyond
// the face, biting into the body by faceBite. Inside sockets recess
// into the face, protruding past it by faceBite so the cut opens.
func placeRing(k DogRingSpec, bodyHeight float64) (sdf.SDF3, error) {
	ring, err := DogRing(k)
	if err != nil {
		return nil, err
	}
	height := k.ringHeight()
	var parts []sdf.SDF3
	at := func(z float64) {
		parts = append(parts, sdf.Transform3D(ring, sdf.Translate3d(r3.Vec{Z: z})))
	}
	switch k.Direction {
	case Outside:
		if k.Face == Back || k.Face == Both {
			at(faceBite - height)
		}
		if k.Face == Front || k.Face == Both {
			at(bodyHeight - faceBite)
		}
	case Inside:
		if k.Face == Back || k.Face == Both {
			at(-faceBite)
		}
		if k.Face == Front || k.Face == Both {
			at(bodyHeight + faceBite - height)
		}
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return sdf.Union3D(parts...), nil
}
