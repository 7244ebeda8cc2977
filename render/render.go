// Package render triangulates solids into meshes and reads and
// writes them as STL.
package render

import (
	"github.com/rcgears/dogbox/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle defined by its vertices.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the triangle's unit normal using the right hand
// rule on the vertex winding.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if any two vertices coincide within tol.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

// Renderer produces the triangle mesh of a model piecemeal, in the
// manner of io.Reader: ReadTriangles fills t, returns how many
// triangles were written and returns io.EOF once the model is
// exhausted.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}
