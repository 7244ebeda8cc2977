package form3_test

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rcgears/dogbox/form3"
	"github.com/rcgears/dogbox/form3/must3"
)

const tol = 1e-9

func TestErrorRecovery(t *testing.T) {
	if _, err := form3.Sphere(-1); err == nil {
		t.Error("negative radius sphere built without error")
	} else if !strings.Contains(err.Error(), "radius") {
		t.Errorf("unhelpful error %q", err)
	}
	if _, err := form3.Cylinder(5, -1, 0); err == nil {
		t.Error("negative radius cylinder built without error")
	}
	if _, err := form3.Cylinder(1, 2, 1.5); err == nil {
		t.Error("over-rounded cylinder built without error")
	}
	if _, err := form3.Box(r3.Vec{X: -1, Y: 1, Z: 1}, 0); err == nil {
		t.Error("negative size box built without error")
	}
	if _, err := form3.Capsule(4, -1); err == nil {
		t.Error("negative radius capsule built without error")
	}
}

// A tall cylinder holds material far beyond the radius of a sphere of
// equal footprint.
func TestCylinder(t *testing.T) {
	s := must3.Cylinder(10, 1, 0)
	for _, tc := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -1},
		{p: r3.Vec{Z: 4.9}, want: -0.1},
		{p: r3.Vec{Z: 5.1}, want: 0.1},
		{p: r3.Vec{X: 1.2}, want: 0.2},
		{p: r3.Vec{X: 0.6, Y: 0.8, Z: 0}, want: 0},
	} {
		if got := s.Evaluate(tc.p); math.Abs(got-tc.want) > tol {
			t.Errorf("cylinder at %v = %g, want %g", tc.p, got, tc.want)
		}
	}
	bb := s.Bounds()
	if bb.Min.Z != -5 || bb.Max.Z != 5 || bb.Max.X != 1 {
		t.Errorf("cylinder bounds %+v", bb)
	}
}

func TestSphere(t *testing.T) {
	s := must3.Sphere(2)
	for _, tc := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -2},
		{p: r3.Vec{X: 3}, want: 1},
		{p: r3.Vec{X: 2, Y: 0, Z: 0}, want: 0},
	} {
		if got := s.Evaluate(tc.p); math.Abs(got-tc.want) > tol {
			t.Errorf("sphere at %v = %g, want %g", tc.p, got, tc.want)
		}
	}
}

func TestBox(t *testing.T) {
	s := must3.Box(r3.Vec{X: 2, Y: 4, Z: 6}, 0)
	for _, tc := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -1},
		{p: r3.Vec{X: 2}, want: 1},
		{p: r3.Vec{Y: 3}, want: 1},
		{p: r3.Vec{Z: 4}, want: 1},
		{p: r3.Vec{X: 2, Y: 3, Z: 4}, want: math.Sqrt(3)},
	} {
		if got := s.Evaluate(tc.p); math.Abs(got-tc.want) > tol {
			t.Errorf("box at %v = %g, want %g", tc.p, got, tc.want)
		}
	}
}

func TestCapsule(t *testing.T) {
	s := must3.Capsule(4, 1)
	for _, tc := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -1},
		{p: r3.Vec{Z: 1.9}, want: -0.1},
		{p: r3.Vec{Z: 2.1}, want: 0.1},
		{p: r3.Vec{X: 0.5}, want: -0.5},
	} {
		if got := s.Evaluate(tc.p); math.Abs(got-tc.want) > tol {
			t.Errorf("capsule at %v = %g, want %g", tc.p, got, tc.want)
		}
	}
}

func TestRoundedCylinder(t *testing.T) {
	s := must3.Cylinder(4, 2, 0.5)
	// the square edge is shaved back by the rounding
	if got := s.Evaluate(r3.Vec{X: 2, Z: 2}); got <= 0 {
		t.Errorf("rounded edge still sharp, got %g", got)
	}
	if got := s.Evaluate(r3.Vec{}); math.Abs(got+2) > tol {
		t.Errorf("center = %g, want -2", got)
	}
}

func TestMatchesMust3(t *testing.T) {
	s, err := form3.Box(r3.Vec{X: 1, Y: 2, Z: 3}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	ref := must3.Box(r3.Vec{X: 1, Y: 2, Z: 3}, 0.1)
	for _, p := range []r3.Vec{{}, {X: 1}, {X: -0.4, Y: 0.7, Z: 1.9}} {
		if got, want := s.Evaluate(p), ref.Evaluate(p); got != want {
			t.Errorf("wrapped box differs at %v: %g != %g", p, got, want)
		}
	}
}
