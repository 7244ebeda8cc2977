package must2

import (
	"math"

	"github.com/rcgears/dogbox/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	tau       = 2 * math.Pi
	tolerance = 1e-9
)

// sdfBox2d is the signed distance to a 2d box centered on the origin
// with half-dimensions s.
func sdfBox2d(p, s r2.Vec) float64 {
	p = d2.AbsElem(p)
	d := r2.Sub(p, s)
	k := s.Y - s.X
	if d.X > 0 && d.Y > 0 {
		return r2.Norm(d)
	}
	if p.Y-p.X > k {
		return d.Y
	}
	return d.X
}
