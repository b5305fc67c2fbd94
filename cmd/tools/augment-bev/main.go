// Command augment-bev synthesizes a lidar scene, runs one augmentation
// over it, and renders before/after bird's-eye-view plots of the point
// cloud and cuboid footprints. Runs are optionally appended to a sqlite
// run log so any output can be regenerated from its seed.
//
// Examples:
//
//	augment-bev -aug reflect-x -p 1.0 -seed 7 -out /tmp/bev
//	augment-bev -aug scale -low 0.9 -high 1.1 -runlog runs.db
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/argoai/argoverse2-api/internal/augment"
	"github.com/argoai/argoverse2-api/internal/frame"
	"github.com/argoai/argoverse2-api/internal/geom"
	"github.com/argoai/argoverse2-api/internal/runlog"
	"github.com/argoai/argoverse2-api/internal/sweep"
)

func main() {
	var (
		aug        = flag.String("aug", "reflect-x", "augmentation: reflect-x, reflect-y or scale")
		p          = flag.Float64("p", 1.0, "reflection probability")
		low        = flag.Float64("low", 0.9, "scale range lower bound (inclusive)")
		high       = flag.Float64("high", 1.1, "scale range upper bound (inclusive)")
		seed       = flag.Uint64("seed", 1, "random seed for scene and augmentation")
		numPoints  = flag.Int("points", 4096, "synthetic lidar point count")
		numCuboids = flag.Int("cuboids", 12, "synthetic cuboid count")
		outDir     = flag.String("out", ".", "output directory for BEV plots")
		runlogPath = flag.String("runlog", "", "optional sqlite run log path")
	)
	flag.Parse()

	if err := run(*aug, *p, *low, *high, *seed, *numPoints, *numCuboids, *outDir, *runlogPath); err != nil {
		log.Fatalf("augment-bev: %v", err)
	}
}

func run(aug string, p, low, high float64, seed uint64, numPoints, numCuboids int, outDir, runlogPath string) error {
	lidar, cuboids := sweep.SyntheticScene(sweep.SceneConfig{
		NumPoints:  numPoints,
		NumCuboids: numCuboids,
	}, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	a := augment.New(rand.NewPCG(seed, seed+1))

	var (
		outLidar   *frame.Frame
		outCuboids *frame.Frame
		kind       string
		err        error
	)
	switch aug {
	case "reflect-x":
		kind = runlog.KindReflectX
		outLidar, outCuboids, err = a.SampleSceneReflectionX(lidar.Frame, cuboids.Frame, p)
	case "reflect-y":
		kind = runlog.KindReflectY
		outLidar, outCuboids, err = a.SampleSceneReflectionY(lidar.Frame, cuboids.Frame, p)
	case "scale":
		kind = runlog.KindScale
		outLidar, outCuboids, err = a.SampleRandomObjectScale(lidar.Frame, cuboids.Frame, low, high)
	default:
		return fmt.Errorf("unknown augmentation %q", aug)
	}
	if err != nil {
		return err
	}
	applied := outLidar != lidar.Frame

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	beforePath := filepath.Join(outDir, "bev_before.png")
	afterPath := filepath.Join(outDir, fmt.Sprintf("bev_after_%s.png", aug))
	if err := plotBEV(beforePath, "input scene", lidar.Frame, cuboids.Frame); err != nil {
		return err
	}
	if err := plotBEV(afterPath, aug, outLidar, outCuboids); err != nil {
		return err
	}
	log.Printf("wrote %s and %s (applied=%v)", beforePath, afterPath, applied)

	if runlogPath != "" {
		db, err := runlog.Open(runlogPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.RecordRun(runlog.Run{
			Kind:        kind,
			Seed:        seed,
			Probability: p,
			ScaleLow:    low,
			ScaleHigh:   high,
			LidarRows:   lidar.Frame.NumRows(),
			CuboidRows:  cuboids.Frame.NumRows(),
			Applied:     applied,
		})
		if err != nil {
			return err
		}
		log.Printf("recorded run %d in %s", id, runlogPath)
	}
	return nil
}

// plotBEV renders a top-down view: lidar returns as a scatter and each
// cuboid's top-face footprint as a closed polyline.
func plotBEV(path, title string, lidar, cuboids *frame.Frame) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("BEV: %s", title)
	pl.X.Label.Text = "x (m)"
	pl.Y.Label.Text = "y (m)"

	xs, err := lidar.Float64s(sweep.ColX)
	if err != nil {
		return err
	}
	ys, err := lidar.Float64s(sweep.ColY)
	if err != nil {
		return err
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(0.7)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	pl.Add(scatter)

	pose, err := cuboids.Floats(sweep.CuboidPoseFields...)
	if err != nil {
		return err
	}
	polygons := geom.CuboidsToPolygons(pose)
	numCuboids, _ := polygons.Dims()
	for i := 0; i < numCuboids; i++ {
		// Top face corners are vertices 0, 1, 5, 4 in polygon order.
		face := []int{0, 1, 5, 4, 0}
		line := make(plotter.XYs, len(face))
		for k, v := range face {
			line[k] = plotter.XY{X: polygons.At(i, 3*v), Y: polygons.At(i, 3*v+1)}
		}
		poly, err := plotter.NewLine(line)
		if err != nil {
			return err
		}
		poly.Width = vg.Points(1)
		poly.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
		pl.Add(poly)
	}

	return pl.Save(8*vg.Inch, 8*vg.Inch, path)
}
