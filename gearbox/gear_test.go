package gearbox_test

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rcgears/dogbox/gearbox"
)

func stockGear() gearbox.GearSpec {
	return gearbox.GearSpec{
		Module:        1,
		Teeth:         12,
		Width:         5,
		BoreDiameter:  3,
		PressureAngle: 20,
		Kind:          gearbox.Spur,
	}
}

// captureDiagnostics routes builder diagnostics into a buffer for the
// duration of a test.
func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := gearbox.DiagnosticsWriter
	buf := &bytes.Buffer{}
	gearbox.DiagnosticsWriter = buf
	t.Cleanup(func() { gearbox.DiagnosticsWriter = old })
	return buf
}

func TestGearBody(t *testing.T) {
	keyway := &gearbox.KeywaySpec{Width: 1, Height: 1}
	dogs := stockRing()
	gear, err := gearbox.GearBody(stockGear(), keyway, &dogs)
	if err != nil {
		t.Fatal(err)
	}
	// 12 teeth, module 1: pitch radius 6, root radius 4.75, tip radius 7
	inside := []r3.Vec{
		ringAt(3, 90, 2.5),
		ringAt(4.6, 33, 2.5),
		ringAt(4.6, 213, 0.2),
		{X: 3.75, Z: 5.5}, // front dog tooth
	}
	for _, p := range inside {
		if got := gear.Evaluate(p); got >= 0 {
			t.Errorf("no material at %v, got %g", p, got)
		}
	}
	outside := []r3.Vec{
		{X: 0.5, Y: 0.3, Z: 2.5},  // bore
		ringAt(7.3, 45, 2.5),      // beyond the tip circle
		ringAt(3, 90, 5.5),        // above the face, off the dog ring
		ringAt(3.75, 60, 5.5),     // between dog teeth
		{X: 3.75, Z: -0.5},        // no ring on the back face
		{X: 1.8, Y: 0.2, Z: 2.5},  // keyway slot
		{X: 1.8, Y: 0, Z: 0.05},   // slot reaches the back face
		{X: 1.8, Y: -0.2, Z: 4.9}, // and the front face
	}
	for _, p := range outside {
		if got := gear.Evaluate(p); got <= 0 {
			t.Errorf("material at %v, got %g", p, got)
		}
	}

	// without the keyway the slot region is solid
	plain, err := gearbox.GearBody(stockGear(), nil, &dogs)
	if err != nil {
		t.Fatal(err)
	}
	if got := plain.Evaluate(r3.Vec{X: 1.8, Y: 0.2, Z: 2.5}); got >= 0 {
		t.Errorf("unkeyed gear hollow at the slot, got %g", got)
	}
}

func TestGearDogRingSkipped(t *testing.T) {
	buf := captureDiagnostics(t)
	gear := stockGear()
	gear.Teeth = 8
	dogs := stockRing()
	solid, err := gearbox.GearBody(gear, nil, &dogs)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "dog ring skipped") {
		t.Errorf("no skip diagnostic, wrote %q", buf.String())
	}
	// the gear itself still builds, without face teeth
	if got := solid.Evaluate(ringAt(2.2, 90, 2.5)); got >= 0 {
		t.Errorf("gear body missing, got %g", got)
	}
	if got := solid.Evaluate(r3.Vec{X: 3.3, Z: 5.5}); got <= 0 {
		t.Errorf("dog tooth built despite the skip, got %g", got)
	}

	// one more tooth than the limit keeps the ring
	buf.Reset()
	gear.Teeth = 11
	solid, err = gearbox.GearBody(gear, nil, &dogs)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostic %q", buf.String())
	}
	if got := solid.Evaluate(r3.Vec{X: 3.75, Z: 5.5}); got >= 0 {
		t.Errorf("dog tooth missing on an 11 tooth gear, got %g", got)
	}
}

// The keyway is cut after the dog ring lands, so a deep slot opens a
// channel through any tooth crossing its radius.
func TestKeywayCutsDogRing(t *testing.T) {
	dogs := stockRing()
	deep := &gearbox.KeywaySpec{Width: 1, Height: 4}
	p := r3.Vec{X: 3.2, Z: 5.5} // inside the front tooth at 0 degrees

	slotted, err := gearbox.GearBody(stockGear(), deep, &dogs)
	if err != nil {
		t.Fatal(err)
	}
	if got := slotted.Evaluate(p); got <= 0 {
		t.Errorf("deep keyway did not cut the dog tooth, got %g", got)
	}
	whole, err := gearbox.GearBody(stockGear(), nil, &dogs)
	if err != nil {
		t.Fatal(err)
	}
	if got := whole.Evaluate(p); got >= 0 {
		t.Errorf("tooth missing without the keyway, got %g", got)
	}
}

func TestBevelGear(t *testing.T) {
	spur, err := gearbox.GearBody(stockGear(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	gear := stockGear()
	gear.Kind = gearbox.Bevel
	bevel, err := gearbox.GearBody(gear, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rim := ringAt(4.6, 90, 4.9)
	if got := spur.Evaluate(rim); got >= 0 {
		t.Fatalf("spur gear missing its rim, got %g", got)
	}
	if got := bevel.Evaluate(rim); got <= 0 {
		t.Errorf("bevel gear still full width at the top, got %g", got)
	}
	base := ringAt(4.6, 90, 0.1)
	if got := bevel.Evaluate(base); got >= 0 {
		t.Errorf("bevel gear missing its base, got %g", got)
	}
}

func TestGearValidation(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*gearbox.GearSpec)
		msg    string
	}{
		{name: "zero module", mutate: func(k *gearbox.GearSpec) { k.Module = 0 }, msg: "module"},
		{name: "no teeth", mutate: func(k *gearbox.GearSpec) { k.Teeth = 0 }, msg: "teeth"},
		{name: "zero width", mutate: func(k *gearbox.GearSpec) { k.Width = 0 }, msg: "width"},
		{name: "zero bore", mutate: func(k *gearbox.GearSpec) { k.BoreDiameter = 0 }, msg: "bore"},
		{name: "flat pressure angle", mutate: func(k *gearbox.GearSpec) { k.PressureAngle = 0 }, msg: "pressure angle"},
		{name: "steep pressure angle", mutate: func(k *gearbox.GearSpec) { k.PressureAngle = 45 }, msg: "pressure angle"},
		{name: "bore through the teeth", mutate: func(k *gearbox.GearSpec) { k.BoreDiameter = 10 }, msg: "root circle"},
	} {
		k := stockGear()
		tc.mutate(&k)
		_, err := gearbox.GearBody(k, nil, nil)
		if err == nil {
			t.Errorf("%s: gear built without error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.msg)
		}
	}
	if _, err := gearbox.GearBody(stockGear(), &gearbox.KeywaySpec{Width: 0, Height: 1}, nil); err == nil {
		t.Error("zero width keyway accepted")
	}
}

func TestGearKindString(t *testing.T) {
	if gearbox.Spur.String() != "spur" || gearbox.Bevel.String() != "bevel" {
		t.Error("gear kind names changed")
	}
	if gearbox.GearKind(9).String() != "unknown" {
		t.Error("out of range gear kind needs the unknown name")
	}
}
