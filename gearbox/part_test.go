package gearbox_test

import (
	"math"
	"testing"

	"github.com/rcgears/dogbox/gearbox"
)

func TestParsePartKind(t *testing.T) {
	kinds := []gearbox.PartKind{
		gearbox.PartSpur,
		gearbox.PartBevel,
		gearbox.PartShifter,
		gearbox.PartFork,
		gearbox.PartShifterFork,
		gearbox.PartTest,
	}
	for _, k := range kinds {
		got, err := gearbox.ParsePartKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePartKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := gearbox.ParsePartKind("gear"); err == nil {
		t.Error("unknown part name parsed without error")
	}
	if gearbox.PartKind(99).String() != "unknown" {
		t.Error("out of range part kind needs the unknown name")
	}
}

func TestBuild(t *testing.T) {
	for _, part := range []gearbox.PartKind{
		gearbox.PartSpur,
		gearbox.PartBevel,
		gearbox.PartShifter,
		gearbox.PartFork,
		gearbox.PartShifterFork,
	} {
		d := gearbox.DefaultDesign()
		d.Part = part
		solid, err := gearbox.Build(d)
		if err != nil {
			t.Errorf("%v: %v", part, err)
			continue
		}
		if solid == nil {
			t.Errorf("%v: no solid", part)
		}
	}

	d := gearbox.DefaultDesign()
	d.Part = gearbox.PartKind(42)
	if _, err := gearbox.Build(d); err == nil {
		t.Error("unknown part kind built without error")
	}
}

// The test part is a calibration no-op: no solid, no error.
func TestBuildTestPart(t *testing.T) {
	d := gearbox.DefaultDesign()
	d.Part = gearbox.PartTest
	solid, err := gearbox.Build(d)
	if err != nil {
		t.Fatal(err)
	}
	if solid != nil {
		t.Errorf("test part produced a solid with bounds %+v", solid.Bounds())
	}
}

// Build overrides the blank kind for the two gear parts.
func TestBuildGearKinds(t *testing.T) {
	d := gearbox.DefaultDesign()
	d.Part = gearbox.PartBevel
	d.Gear.Kind = gearbox.Spur // the part selector wins
	bevel, err := gearbox.Build(d)
	if err != nil {
		t.Fatal(err)
	}
	rim := ringAt(4.6, 90, 4.9)
	if got := bevel.Evaluate(rim); got <= 0 {
		t.Errorf("bevel part kept its full width rim, got %g", got)
	}
	d.Part = gearbox.PartSpur
	d.Gear.Kind = gearbox.Bevel
	spur, err := gearbox.Build(d)
	if err != nil {
		t.Fatal(err)
	}
	if got := spur.Evaluate(rim); got >= 0 {
		t.Errorf("spur part lost its rim, got %g", got)
	}
}

// The combined plate lays the fork beside the shifter with daylight
// between the two parts.
func TestShifterForkPlate(t *testing.T) {
	d := gearbox.DefaultDesign()
	d.Part = gearbox.PartShifterFork
	combined, err := gearbox.Build(d)
	if err != nil {
		t.Fatal(err)
	}
	collar, err := gearbox.Shifter(d.Shifter)
	if err != nil {
		t.Fatal(err)
	}
	fork, err := gearbox.Fork(d.Fork)
	if err != nil {
		t.Fatal(err)
	}

	cb, fb, bb := collar.Bounds(), fork.Bounds(), combined.Bounds()
	gap := bb.Max.Y - cb.Max.Y - (fb.Max.Y - fb.Min.Y)
	if math.Abs(gap-2) > tol {
		t.Errorf("plate gap %g, want 2", gap)
	}
	if math.Abs(bb.Min.Y-cb.Min.Y) > tol {
		t.Errorf("combined plate moved the shifter: min y %g, want %g", bb.Min.Y, cb.Min.Y)
	}

	// both parts are present in the combined field
	if got := combined.Evaluate(ringAt(7, 90, 0.5)); got >= 0 {
		t.Errorf("shifter missing from the plate, got %g", got)
	}
	dy := cb.Max.Y - fb.Min.Y + 2
	probe := ringAt(6.75, 0, 0.4)
	probe.Y += dy
	if got := combined.Evaluate(probe); got >= 0 {
		t.Errorf("fork missing from the plate, got %g", got)
	}
}
