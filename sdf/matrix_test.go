package sdf

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rcgears/dogbox/internal/d3"
)

const matrixTol = 1e-9

func randVec3(rng *rand.Rand) r3.Vec {
	return r3.Vec{
		X: rng.Float64()*10 - 5,
		Y: rng.Float64()*10 - 5,
		Z: rng.Float64()*10 - 5,
	}
}

func TestM44InverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	matrices := []m44{
		Identity3d(),
		Translate3d(r3.Vec{X: 1, Y: -2, Z: 3}),
		Scale3d(r3.Vec{X: 0.5, Y: 2, Z: 4}),
		RotateX(0.7),
		RotateY(-1.2),
		RotateZ(2.1),
		Translate3d(r3.Vec{X: -3, Z: 0.5}).Mul(RotateZ(1.1)).Mul(Scale3d(d3.Elem(2))),
	}
	for im, m := range matrices {
		inv := m.Inverse()
		for i := 0; i < 50; i++ {
			p := randVec3(rng)
			q := inv.MulPosition(m.MulPosition(p))
			if r3.Norm(r3.Sub(q, p)) > matrixTol {
				t.Errorf("matrix %d: inverse round trip moved %v to %v", im, p, q)
			}
		}
	}
}

func TestM33InverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	matrices := []m33{
		Identity2d(),
		Translate2d(r2.Vec{X: 2, Y: -1}),
		Rotate(0.9),
		Translate2d(r2.Vec{X: -0.5, Y: 4}).Mul(Rotate(-2.3)),
	}
	for im, m := range matrices {
		inv := m.Inverse()
		for i := 0; i < 50; i++ {
			p := r2.Vec{X: rng.Float64()*10 - 5, Y: rng.Float64()*10 - 5}
			q := inv.MulPosition(m.MulPosition(p))
			if r2.Norm(r2.Sub(q, p)) > matrixTol {
				t.Errorf("matrix %d: inverse round trip moved %v to %v", im, p, q)
			}
		}
	}
}

func TestRotations(t *testing.T) {
	got := RotateZ(math.Pi / 2).MulPosition(r3.Vec{X: 1})
	if !d3.EqualWithin(got, r3.Vec{Y: 1}, matrixTol) {
		t.Errorf("quarter turn about z moved x to %v", got)
	}
	got = RotateX(math.Pi / 2).MulPosition(r3.Vec{Y: 1})
	if !d3.EqualWithin(got, r3.Vec{Z: 1}, matrixTol) {
		t.Errorf("quarter turn about x moved y to %v", got)
	}
	got = RotateY(math.Pi / 2).MulPosition(r3.Vec{Z: 1})
	if !d3.EqualWithin(got, r3.Vec{X: 1}, matrixTol) {
		t.Errorf("quarter turn about y moved z to %v", got)
	}
	p := Rotate(math.Pi / 2).MulPosition(r2.Vec{X: 1})
	if math.Abs(p.X) > matrixTol || math.Abs(p.Y-1) > matrixTol {
		t.Errorf("quarter turn in the plane moved x to %v", p)
	}
}

func TestDeterminant(t *testing.T) {
	if d := RotateX(0.6).Determinant(); math.Abs(d-1) > matrixTol {
		t.Errorf("rotation determinant %g, want 1", d)
	}
	if d := Scale3d(r3.Vec{X: 2, Y: 3, Z: 4}).Determinant(); math.Abs(d-24) > matrixTol {
		t.Errorf("scale determinant %g, want 24", d)
	}
	a := Translate3d(r3.Vec{X: 1}).Mul(RotateY(1.2))
	b := Scale3d(r3.Vec{X: 0.5, Y: 2, Z: 1})
	if da, db, dab := a.Determinant(), b.Determinant(), a.Mul(b).Determinant(); math.Abs(dab-da*db) > matrixTol {
		t.Errorf("determinant of product %g, want %g", dab, da*db)
	}
	if d := Rotate(1.1).Determinant(); math.Abs(d-1) > matrixTol {
		t.Errorf("plane rotation determinant %g, want 1", d)
	}
}

func TestMulBox(t *testing.T) {
	box := r3.Box{Min: r3.Vec{X: -1, Y: -2, Z: -3}, Max: r3.Vec{X: 2, Y: 1, Z: 3}}
	matrices := []m44{
		Identity3d(),
		Translate3d(r3.Vec{X: 5, Y: -1, Z: 2}),
		RotateZ(0.4).Mul(RotateX(-0.8)),
		Translate3d(r3.Vec{Y: 3}).Mul(RotateY(1.9)).Mul(Scale3d(r3.Vec{X: 2, Y: 0.5, Z: 1})),
	}
	for im, m := range matrices {
		mb := d3.Box(m.MulBox(box)).Enlarge(d3.Elem(matrixTol))
		for _, c := range d3.Box(box).Vertices() {
			if q := m.MulPosition(c); !mb.Contains(q) {
				t.Errorf("matrix %d: transformed corner %v escapes the transformed box %+v", im, q, mb)
			}
		}
	}
}
