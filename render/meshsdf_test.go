package render_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rcgears/dogbox/form3/must3"
	"github.com/rcgears/dogbox/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeshSDF(t *testing.T) {
	mesh := render.NewMeshSDF(sphereModel(t, 20))

	if d := mesh.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("center distance %g, want negative", d)
	}
	if d := mesh.Evaluate(r3.Vec{X: 2}); d <= 0 {
		t.Errorf("outside distance %g, want positive", d)
	}
	if d := mesh.Evaluate(r3.Vec{X: 0.5}); math.Abs(d+0.5) > 0.1 {
		t.Errorf("interior distance %g, want about -0.5", d)
	}

	bb := mesh.Bounds()
	for _, got := range []float64{bb.Max.X, bb.Max.Y, bb.Max.Z, -bb.Min.X, -bb.Min.Y, -bb.Min.Z} {
		if got < 0.8 || got > 1.1 {
			t.Fatalf("mesh bounds %+v stray from the unit sphere", bb)
		}
	}
}

// Away from the surface by a couple of cells the pseudo field must
// agree in sign with the solid the mesh came from.
func TestMeshSDFSignAgreement(t *testing.T) {
	const cells = 20
	sphere := must3.Sphere(1)
	mesh := render.NewMeshSDF(sphereModel(t, cells))
	cell := 2.4 / cells
	rng := rand.New(rand.NewSource(1))
	checked := 0
	for i := 0; i < 200; i++ {
		p := r3.Vec{
			X: 3 * (rng.Float64() - 0.5),
			Y: 3 * (rng.Float64() - 0.5),
			Z: 3 * (rng.Float64() - 0.5),
		}
		want := sphere.Evaluate(p)
		if math.Abs(want) < 2*cell {
			continue
		}
		checked++
		if got := mesh.Evaluate(p); math.Signbit(got) != math.Signbit(want) {
			t.Fatalf("sign disagreement at %+v: mesh %g, solid %g", p, got, want)
		}
	}
	if checked < 50 {
		t.Fatalf("only %d points checked", checked)
	}
}
