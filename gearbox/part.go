package gearbox

import (
	"fmt"

	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// PartKind selects which drivetrain part Build emits.
type PartKind int

const (
	PartSpur PartKind = iota
	PartBevel
	PartShifter
	PartFork
	PartShifterFork
	PartTest
)

func (k PartKind) String() (str string) {
	switch k {
	case PartSpur:
		str = "spur"
	case PartBevel:
		str = "bevel"
	case PartShifter:
		str = "shifter"
	case PartFork:
		str = "fork"
	case PartShifterFork:
		str = "shifter&fork"
	case PartTest:
		str = "test"
	default:
		str = "unknown"
	}
	return str
}

// ParsePartKind maps a configuration string to its PartKind.
func ParsePartKind(s string) (PartKind, error) {
	for _, k := range []PartKind{PartSpur, PartBevel, PartShifter, PartFork, PartShifterFork, PartTest} {
		if s == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown part type %q", s)
}

// plateGap separates parts laid on a shared print plate.
const plateGap = 2.0

// Build runs the one builder selected by d.Part and returns its
// solid. The test part is a no-op: it returns a nil solid and a nil
// error, and callers skip emission.
func Build(d Design) (sdf.SDF3, error) {
	switch d.Part {
	case PartSpur:
		gear := d.Gear
		gear.Kind = Spur
		return GearBody(gear, d.Keyway, d.DogRing)
	case PartBevel:
		gear := d.Gear
		gear.Kind = Bevel
		return GearBody(gear, d.Keyway, d.DogRing)
	case PartShifter:
		return Shifter(d.Shifter)
	case PartFork:
		return Fork(d.Fork)
	case PartShifterFork:
		return shifterAndFork(d)
	case PartTest:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown part kind %d", d.Part)
}

// shifterAndFork lays the collar and its fork side by side on one
// plate, the fork shifted clear in +y.
func shifterAndFork(d Design) (sdf.SDF3, error) {
	collar, err := Shifter(d.Shifter)
	if err != nil {
		return nil, err
	}
	fork, err := Fork(d.Fork)
	if err != nil {
		return nil, err
	}
	dy := collar.Bounds().Max.Y - fork.Bounds().Min.Y + plateGap
	fork = sdf.Transform3D(fork, sdf.Translate3d(r3.Vec{Y: dy}))
	return sdf.Union3D(collar, fork), nil
}
