package render_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcgears/dogbox/form3/must3"
	"github.com/rcgears/dogbox/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLRoundTrip(t *testing.T) {
	model := sphereModel(t, 16)
	var buf bytes.Buffer
	if err := render.WriteSTL(&buf, model); err != nil {
		t.Fatal(err)
	}
	got, err := render.ReadSTL(&buf)
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("read %d triangles, wrote %d", len(got), len(model))
	}
	for i := range got {
		for j := 0; j < 3; j++ {
			if d := r3.Norm(r3.Sub(got[i].V[j], model[i].V[j])); d > 1e-6 {
				t.Fatalf("triangle %d vertex %d moved by %g", i, j, d)
			}
		}
	}
}

// CreateSTL streams through a fixed size buffer. Its output must be
// identical to rendering everything up front and writing in one go.
func TestCreateSTLMatchesWrite(t *testing.T) {
	model := sphereModel(t, 16)
	path := filepath.Join(t.TempDir(), "sphere.stl")
	if err := render.CreateSTL(path, render.NewMarchingCubesRenderer(must3.Sphere(1), 16)); err != nil {
		t.Fatal(err)
	}
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render.WriteSTL(&buf, model); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fileBytes, buf.Bytes()) {
		t.Errorf("file render (%d bytes) differs from in-memory render (%d bytes)", len(fileBytes), buf.Len())
	}
	readback, err := render.ReadSTLFile(path)
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(readback) != len(model) {
		t.Errorf("file holds %d triangles, want %d", len(readback), len(model))
	}
}

func TestCreateSTLASCIIMatchesWrite(t *testing.T) {
	model := sphereModel(t, 8)
	path := filepath.Join(t.TempDir(), "preview.stl")
	if err := render.CreateSTLASCII(path, render.NewMarchingCubesRenderer(must3.Sphere(1), 8)); err != nil {
		t.Fatal(err)
	}
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render.WriteSTLASCII(&buf, "preview", model); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fileBytes, buf.Bytes()) {
		t.Error("file render differs from in-memory render")
	}
	text := string(fileBytes)
	if !strings.HasPrefix(text, "solid preview\n") || !strings.HasSuffix(text, "endsolid preview\n") {
		t.Error("missing solid framing lines")
	}
	if got := strings.Count(text, "facet normal"); got != len(model) {
		t.Errorf("%d facets in file, want %d", got, len(model))
	}
}

func TestSTLErrors(t *testing.T) {
	if err := render.WriteSTL(&bytes.Buffer{}, nil); err == nil {
		t.Error("empty model written without error")
	}
	if err := render.WriteSTLASCII(&bytes.Buffer{}, "x", nil); err == nil {
		t.Error("empty ascii model written without error")
	}
	if _, err := render.ReadSTL(bytes.NewReader(make([]byte, 10))); err == nil || !strings.Contains(err.Error(), "header") {
		t.Errorf("short header: %v", err)
	}
	if _, err := render.ReadSTL(bytes.NewReader(make([]byte, 84))); err == nil || !strings.Contains(err.Error(), "0 triangles") {
		t.Errorf("zero count: %v", err)
	}

	truncated := make([]byte, 84)
	truncated[80] = 1
	if _, err := render.ReadSTL(bytes.NewReader(truncated)); err == nil || !strings.Contains(err.Error(), "triangles read") {
		t.Errorf("truncated body: %v", err)
	}

	nan := make([]byte, 84+50)
	nan[80] = 1
	binary.LittleEndian.PutUint32(nan[84:], math.Float32bits(float32(math.NaN())))
	if _, err := render.ReadSTL(bytes.NewReader(nan)); err == nil || !strings.Contains(err.Error(), "inf/NaN") {
		t.Errorf("nan normal: %v", err)
	}

	degenerate := make([]byte, 84+50)
	degenerate[80] = 1
	if _, err := render.ReadSTL(bytes.NewReader(degenerate)); err == nil || !strings.Contains(err.Error(), "degenerate") {
		t.Errorf("degenerate triangle: %v", err)
	}
}

// A mesh whose stored normals are wrong is still worth returning.
func TestReadSTLNormalMismatch(t *testing.T) {
	b := make([]byte, 84+50)
	b[80] = 1
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(b[84+off:], math.Float32bits(v))
	}
	// flat +z triangle with a stored +x normal
	put(0, 1)
	put(24, 1)
	put(36+4, 1)
	tris, err := render.ReadSTL(bytes.NewReader(b))
	if !errors.Is(err, render.ErrNormalMismatch) {
		t.Errorf("want normal mismatch, got %v", err)
	}
	if len(tris) != 1 {
		t.Errorf("mismatched model not returned, got %d triangles", len(tris))
	}
}
