package render

import (
	"io"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/rcgears/dogbox/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// sdfxSolid presents one of our solids to the sdfx triangulators.
type sdfxSolid struct {
	s sdf.SDF3
}

func (a sdfxSolid) Evaluate(p v3.Vec) float64 {
	return a.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a sdfxSolid) BoundingBox() sdfxsdf.Box3 {
	bb := a.s.Bounds()
	return sdfxsdf.Box3{
		Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

// marchingCubes triangulates a solid on a uniform grid and streams
// the mesh out through the Renderer interface.
type marchingCubes struct {
	s     sdf.SDF3
	cells int
	run   bool
	buf   triangle3Buffer
}

// NewMarchingCubesRenderer returns a Renderer that triangulates s
// with uniform marching cubes, meshCells cells along the longest
// axis of its bounding box.
func NewMarchingCubesRenderer(s sdf.SDF3, meshCells int) Renderer {
	if meshCells < 2 {
		panic("meshCells must be 2 or larger")
	}
	return &marchingCubes{s: s, cells: meshCells}
}

// ReadTriangles writes triangles rendered from the model into the
// argument buffer. The whole model is triangulated on first call.
func (mc *marchingCubes) ReadTriangles(dst []Triangle3) (int, error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if !mc.run {
		mc.run = true
		tris := sdfxrender.ToTriangles(sdfxSolid{s: mc.s}, sdfxrender.NewMarchingCubesUniform(mc.cells))
		model := make([]Triangle3, len(tris))
		for i, t := range tris {
			for j := 0; j < 3; j++ {
				model[i].V[j] = r3.Vec{X: t[j].X, Y: t[j].Y, Z: t[j].Z}
			}
		}
		mc.buf = triangle3Buffer{buf: model}
	}
	if mc.buf.Len() == 0 {
		return 0, io.EOF
	}
	return mc.buf.Read(dst), nil
}
