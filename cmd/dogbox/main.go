// Command dogbox batch-exports printable drivetrain parts for a
// small RC transmission. Parts are described by parameter sets in a
// customizer JSON or CSV table, or generated one at a time from the
// built-in defaults, and written out as STL meshes with optional PNG
// previews and a mesh-against-solid verification pass.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rcgears/dogbox/gearbox"
	"github.com/rcgears/dogbox/internal/d3"
	"github.com/rcgears/dogbox/preset"
	"github.com/rcgears/dogbox/render"
	"github.com/rcgears/dogbox/sdf"
)

type config struct {
	outDir  string
	format  string
	cells   int
	preview bool
	verify  bool
	quiet   bool
}

type job struct {
	name   string
	design gearbox.Design
}

type result struct {
	name      string
	path      string
	triangles int
	duration  time.Duration
	skipped   bool
	err       error
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("dogbox: ")
	var (
		paramsFile = flag.String("params", "", "parameter file (.json, .json5 or .csv)")
		selection  = flag.String("select", "all", "parameter sets to export, e.g. \"0-5,7\", \"every:2 in 0-10\", \"from:5\", \"up_to:4\"")
		partName   = flag.String("part", "", "single part type built from defaults: spur, bevel, shifter, fork, shifter&fork, test")
		outDir     = flag.String("o", ".", "output directory")
		format     = flag.String("format", "binstl", "export format: binstl, asciistl")
		cells      = flag.Int("cells", 200, "mesh resolution in cells along the longest axis")
		preview    = flag.Bool("preview", false, "write a PNG preview next to each STL")
		verify     = flag.Bool("verify", false, "sample the written mesh against the solid")
		workers    = flag.Int("j", runtime.NumCPU(), "parallel part builds")
		quiet      = flag.Bool("q", false, "only report errors and the final summary")
	)
	flag.Parse()

	if *format != "binstl" && *format != "asciistl" {
		log.Fatalf("unsupported export format %q", *format)
	}
	cfg := config{
		outDir:  *outDir,
		format:  *format,
		cells:   *cells,
		preview: *preview,
		verify:  *verify,
		quiet:   *quiet,
	}

	jobs, err := buildJobs(*paramsFile, *selection, *partName)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(cfg.outDir, 0777); err != nil {
		log.Fatal(err)
	}

	n := *workers
	if n < 1 {
		n = 1
	}
	start := time.Now()
	results := make([]result, len(jobs))
	idxc := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxc {
				results[i] = exportOne(jobs[i], cfg)
			}
		}()
	}
	for i := range jobs {
		idxc <- i
	}
	close(idxc)
	wg.Wait()

	failed := summarize(results, time.Since(start))
	if failed > 0 {
		os.Exit(1)
	}
}

// buildJobs resolves the parameter table and selection, or the
// single built-in part, into the list of parts to export.
func buildJobs(paramsFile, selection, partName string) ([]job, error) {
	if paramsFile == "" {
		if partName == "" {
			return nil, errors.New("nothing to export: need -params or -part")
		}
		kind, err := gearbox.ParsePartKind(partName)
		if err != nil {
			return nil, err
		}
		d := gearbox.DefaultDesign()
		d.Part = kind
		return []job{{name: kind.String(), design: d}}, nil
	}
	table, err := preset.Load(paramsFile)
	if err != nil {
		return nil, err
	}
	indices, err := preset.Select(selection, len(table.Sets))
	if err != nil {
		return nil, fmt.Errorf("selection parsing error: %w", err)
	}
	jobs := make([]job, 0, len(indices))
	for _, i := range indices {
		set := table.Sets[i]
		d, err := preset.Decode(set.Params)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", set.Name, err)
		}
		jobs = append(jobs, job{name: set.Name, design: d})
	}
	return jobs, nil
}

func exportOne(j job, cfg config) result {
	start := time.Now()
	res := result{name: j.name}
	fail := func(err error) result {
		res.err = err
		res.duration = time.Since(start)
		return res
	}
	solid, err := gearbox.Build(j.design)
	if err != nil {
		return fail(err)
	}
	if solid == nil {
		// The test part builds no geometry.
		res.skipped = true
		res.duration = time.Since(start)
		if !cfg.quiet {
			log.Printf("%s: no geometry, skipping export", j.name)
		}
		return res
	}
	model, err := render.RenderAll(render.NewMarchingCubesRenderer(solid, cfg.cells))
	if err != nil {
		return fail(err)
	}
	res.triangles = len(model)
	res.path = filepath.Join(cfg.outDir, j.name+".stl")
	if err := writeModel(res.path, j.name, model, cfg.format); err != nil {
		return fail(err)
	}
	if cfg.verify {
		if err := verifyModel(res.path, solid, model, cfg); err != nil {
			return fail(err)
		}
	}
	if cfg.preview {
		png := strings.TrimSuffix(res.path, ".stl") + ".png"
		if err := render.PreviewSTL(res.path, png, render.DefaultView()); err != nil {
			return fail(err)
		}
	}
	res.duration = time.Since(start)
	if !cfg.quiet {
		log.Printf("exported %s in %.2fs", res.path, res.duration.Seconds())
	}
	return res
}

func writeModel(path, name string, model []render.Triangle3, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if format == "asciistl" {
		return render.WriteSTLASCII(f, name, model)
	}
	return render.WriteSTL(f, model)
}

// verifyModel samples random points inside the solid's bounding box
// and checks that the written mesh agrees with the solid on which
// side of the surface each point lies. Points closer to the surface
// than the mesh resolution are not counted.
func verifyModel(path string, solid sdf.SDF3, model []render.Triangle3, cfg config) error {
	const samples = 2000
	if cfg.format == "binstl" {
		// Round-trip through the file to also check what was written.
		readBack, err := render.ReadSTLFile(path)
		if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
			return fmt.Errorf("verify: %w", err)
		}
		if len(readBack) != len(model) {
			return fmt.Errorf("verify: wrote %d triangles, read back %d", len(model), len(readBack))
		}
		model = readBack
	}
	mesh := render.NewMeshSDF(model)
	bb := d3.Box(solid.Bounds())
	margin := 2 * d3.Max(bb.Size()) / float64(cfg.cells)
	checked, mismatches := 0, 0
	for _, p := range bb.RandomSet(samples) {
		want := solid.Evaluate(p)
		if math.Abs(want) < margin {
			continue
		}
		checked++
		if math.Signbit(want) != math.Signbit(mesh.Evaluate(p)) {
			mismatches++
		}
	}
	if mismatches*100 > checked {
		return fmt.Errorf("verify: mesh disagrees with solid at %d of %d sample points", mismatches, checked)
	}
	if !cfg.quiet {
		log.Printf("verified %s: %d of %d sample points disagree", path, mismatches, checked)
	}
	return nil
}

func summarize(results []result, total time.Duration) (failed int) {
	exported, skipped := 0, 0
	fmt.Println("\nBatch export completed.")
	for _, r := range results {
		switch {
		case r.err != nil:
			failed++
			fmt.Printf("  ✗ %-24s %v\n", r.name, r.err)
		case r.skipped:
			skipped++
			fmt.Printf("  - %-24s no geometry\n", r.name)
		default:
			exported++
			fmt.Printf("  ✓ %-24s %6.2fs %8d triangles\n", r.name, r.duration.Seconds(), r.triangles)
		}
	}
	fmt.Printf("Total exports attempted: %d\n", len(results))
	fmt.Printf("Successful exports: %d\n", exported)
	if skipped > 0 {
		fmt.Printf("Skipped: %d\n", skipped)
	}
	fmt.Printf("Failed exports: %d\n", failed)
	fmt.Printf("Total time taken: %.2f seconds.\n", total.Seconds())
	return failed
}
