package render

import (
	"math"

	"github.com/rcgears/dogbox/internal/d3"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ sdf.SDF3         = meshSDF{}
	_ kdtree.Interface = meshTriangles{}
	_ kdtree.Bounder   = meshTriangles{}
)

// NewMeshSDF builds a pseudo signed distance field from a triangle
// mesh. A query point is matched to the nearest triangle by centroid
// in a k-d tree, the distance is measured to the closest point on
// that triangle and the sign is taken from its normal. Near edges
// the centroid match can pick a non-nearest triangle, so treat the
// result as approximate. Its use is cross-checking a rendered mesh
// against the solid it came from.
func NewMeshSDF(model []Triangle3) sdf.SDF3 {
	tris := make(meshTriangles, len(model))
	for i := range tris {
		tris[i] = meshTriangle(model[i])
	}
	return meshSDF{tree: *kdtree.New(tris, true)}
}

type meshSDF struct {
	tree kdtree.Tree
}

func (s meshSDF) Evaluate(p r3.Vec) float64 {
	tri := s.nearest(p)
	closest := d3.Triangle(tri.V).Closest(p)
	offset := r3.Sub(p, closest)
	dist := r3.Norm(offset)
	if dist == 0 {
		return 0
	}
	return math.Copysign(dist, r3.Dot(offset, Triangle3(tri).Normal()))
}

// nearest returns the triangle whose centroid is closest to point p.
func (s meshSDF) nearest(p r3.Vec) meshTriangle {
	got, _ := s.tree.Nearest(meshTriangle{
		V: [3]r3.Vec{p, p, p},
	})
	return got.(meshTriangle)
}

func (s meshSDF) Bounds() r3.Box {
	bb := s.tree.Root.Bounding
	if bb == nil {
		panic("mesh SDF built from empty model")
	}
	tMin := bb.Min.(meshTriangle)
	tMax := bb.Max.(meshTriangle)
	return r3.Box{
		Min: d3.MinElem(tMin.V[2], d3.MinElem(tMin.V[0], tMin.V[1])),
		Max: d3.MaxElem(tMax.V[2], d3.MaxElem(tMax.V[0], tMax.V[1])),
	}
}

type meshTriangles []meshTriangle

type meshTriangle Triangle3

func (k meshTriangles) Index(i int) kdtree.Comparable {
	return k[i]
}

// Len returns the length of the list.
func (k meshTriangles) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k meshTriangles) Pivot(d kdtree.Dim) int {
	p := meshPlane{dim: int(d), triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half open
// indexing equivalent to built-in slice indexing.
func (k meshTriangles) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

func (k meshTriangles) Bounds() *kdtree.Bounding {
	min := r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	max := r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	for _, tri := range k {
		tb := tri.Bounds()
		min = d3.MinElem(min, tb.Min.(meshTriangle).V[0])
		max = d3.MaxElem(max, tb.Max.(meshTriangle).V[0])
	}
	return &kdtree.Bounding{
		Min: meshTriangle{V: [3]r3.Vec{min, min, min}},
		Max: meshTriangle{V: [3]r3.Vec{max, max, max}},
	}
}

// Compare returns the signed distance of a from the plane passing
// through b and perpendicular to the dimension d, comparing triangle
// centroids.
func (a meshTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return meshComp(a, b.(meshTriangle), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a meshTriangle) Dims() int {
	return 3
}

// Distance returns the squared Euclidean distance between the
// centroids of the receiver and the parameter.
func (a meshTriangle) Distance(b kdtree.Comparable) float64 {
	ac := d3.Triangle(a.V).Centroid()
	bc := d3.Triangle(b.(meshTriangle).V).Centroid()
	return r3.Norm2(r3.Sub(ac, bc))
}

func (a meshTriangle) Bounds() *kdtree.Bounding {
	min := d3.MinElem(a.V[2], d3.MinElem(a.V[0], a.V[1]))
	max := d3.MaxElem(a.V[2], d3.MaxElem(a.V[0], a.V[1]))
	return &kdtree.Bounding{
		Min: meshTriangle{V: [3]r3.Vec{min, min, min}},
		Max: meshTriangle{V: [3]r3.Vec{max, max, max}},
	}
}

// c = a.dim - b.dim on triangle centroids.
func meshComp(a, b meshTriangle, dim int) (c float64) {
	switch dim {
	case 0:
		c = (a.V[0].X + a.V[1].X + a.V[2].X) - (b.V[0].X + b.V[1].X + b.V[2].X)
	case 1:
		c = (a.V[0].Y + a.V[1].Y + a.V[2].Y) - (b.V[0].Y + b.V[1].Y + b.V[2].Y)
	case 2:
		c = (a.V[0].Z + a.V[1].Z + a.V[2].Z) - (b.V[0].Z + b.V[1].Z + b.V[2].Z)
	}
	return c / 3
}

type meshPlane struct {
	dim       int
	triangles meshTriangles
}

func (p meshPlane) Less(i, j int) bool {
	return meshComp(p.triangles[i], p.triangles[j], p.dim) < 0
}
func (p meshPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p meshPlane) Len() int {
	return len(p.triangles)
}
func (p meshPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
