// Package augment applies randomized, physically consistent geometric
// perturbations to a lidar sweep and its cuboid annotations. Every
// transform is applied jointly: a reflection or scale seen by the point
// cloud is mirrored exactly in the annotation columns, so training
// labels stay valid.
//
// Two augmentations are provided: scene reflection across the x or y
// axis (Bernoulli-gated) and per-object random scaling (always applied).
// Calls are stateless apart from draws on the injected random source;
// independent Augmenters never share mutable state and may run
// concurrently.
package augment

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/argoai/argoverse2-api/internal/frame"
	"github.com/argoai/argoverse2-api/internal/geom"
	"github.com/argoai/argoverse2-api/internal/sweep"
)

var (
	// ErrInvalidProbability is returned when a reflection probability
	// falls outside [0, 1].
	ErrInvalidProbability = errors.New("probability outside [0, 1]")
	// ErrInvalidScaleRange is returned when a scale range is empty or
	// not strictly positive.
	ErrInvalidScaleRange = errors.New("invalid scale range")
)

// Augmenter owns the random source used for augmentation decisions.
// The zero value is not usable; construct with New.
type Augmenter struct {
	src              rand.Source
	scaleAboutCenter bool
}

// Option configures an Augmenter.
type Option func(*Augmenter)

// WithScaleAboutCenter re-centres object scaling on each cuboid's own
// translation instead of the global origin. The origin-centred default
// reproduces the historical behaviour, which leaves the recorded box
// centre out of step with the scaled points for off-origin boxes.
func WithScaleAboutCenter() Option {
	return func(a *Augmenter) { a.scaleAboutCenter = true }
}

// New returns an Augmenter drawing from src. A nil src gets a
// time-seeded PCG source; pass an explicit seeded source for
// reproducible runs.
func New(src rand.Source, opts ...Option) *Augmenter {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32)
	}
	a := &Augmenter{src: src}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// axis parameterizes the two reflection variants: which lidar column is
// negated and which pose-reflection primitives apply. The variants are
// otherwise identical and share one code path.
type axis struct {
	name               string
	mirroredLidarCol   string
	reflectTranslation func(mat.Matrix) *mat.Dense
	reflectOrientation func(mat.Matrix) *mat.Dense
}

var (
	axisX = axis{"x", sweep.ColY, geom.ReflectTranslationX, geom.ReflectOrientationX}
	axisY = axis{"y", sweep.ColX, geom.ReflectTranslationY, geom.ReflectOrientationY}
)

// SampleSceneReflectionX draws one Bernoulli(p) trial and, when it
// fires, mirrors the scene across the x-axis: every point's y
// coordinate is negated and every cuboid pose is reflected. Otherwise
// the inputs are returned unchanged. Extents are never modified.
func (a *Augmenter) SampleSceneReflectionX(lidar, cuboids *frame.Frame, p float64) (*frame.Frame, *frame.Frame, error) {
	return a.sampleSceneReflection(axisX, lidar, cuboids, p)
}

// SampleSceneReflectionY is SampleSceneReflectionX across the y-axis:
// point x coordinates are negated.
func (a *Augmenter) SampleSceneReflectionY(lidar, cuboids *frame.Frame, p float64) (*frame.Frame, *frame.Frame, error) {
	return a.sampleSceneReflection(axisY, lidar, cuboids, p)
}

func (a *Augmenter) sampleSceneReflection(ax axis, lidar, cuboids *frame.Frame, p float64) (*frame.Frame, *frame.Frame, error) {
	if !(p >= 0 && p <= 1) { // also rejects NaN
		return nil, nil, fmt.Errorf("reflect scene %s: p=%v: %w", ax.name, p, ErrInvalidProbability)
	}
	bern := distuv.Bernoulli{P: p, Src: a.src}
	if bern.Rand() == 0 {
		// Identity: hand back the inputs untouched.
		return lidar, cuboids, nil
	}

	mirrored, err := lidar.Floats(ax.mirroredLidarCol)
	if err != nil {
		return nil, nil, fmt.Errorf("reflect scene %s: %w", ax.name, err)
	}
	negateInPlace(mirrored)
	outLidar, err := lidar.WithFloats(mirrored, ax.mirroredLidarCol)
	if err != nil {
		return nil, nil, fmt.Errorf("reflect scene %s: %w", ax.name, err)
	}

	txyz, err := cuboids.Floats(sweep.TranslationFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("reflect scene %s: %w", ax.name, err)
	}
	quats, err := cuboids.Floats(sweep.QuatWXYZFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("reflect scene %s: %w", ax.name, err)
	}
	outCuboids, err := cuboids.WithFloats(ax.reflectTranslation(txyz), sweep.TranslationFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("reflect scene %s: %w", ax.name, err)
	}
	outCuboids, err = outCuboids.WithFloats(ax.reflectOrientation(quats), sweep.QuatWXYZFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("reflect scene %s: %w", ax.name, err)
	}
	return outLidar, outCuboids, nil
}

// SampleRandomObjectScale perturbs object sizes: for each cuboid, in
// table order, it draws s ~ Uniform[low, high] and multiplies both the
// cuboid's extent and the coordinates of the points interior to it by
// s. Interior membership is computed once against the pre-scale
// geometry; points shared by overlapping cuboids are scaled once per
// containing cuboid, so the factors compose in table order. Unlike the
// reflections there is no skip probability.
//
// Scaling is about the global origin unless the Augmenter was built
// with WithScaleAboutCenter. Translations and orientations are never
// modified.
func (a *Augmenter) SampleRandomObjectScale(lidar, cuboids *frame.Frame, low, high float64) (*frame.Frame, *frame.Frame, error) {
	if !(low > 0 && low <= high) { // also rejects NaN bounds
		return nil, nil, fmt.Errorf("scale scene: range [%v, %v]: %w", low, high, ErrInvalidScaleRange)
	}

	points, err := lidar.Floats(sweep.LidarFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("scale scene: %w", err)
	}
	pose, err := cuboids.Floats(sweep.CuboidPoseFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("scale scene: %w", err)
	}

	polygons := geom.CuboidsToPolygons(pose)
	mask := geom.ComputeInteriorPointsMask(points, polygons)

	uni := distuv.Uniform{Min: low, Max: high, Src: a.src}
	numCuboids, _ := pose.Dims()
	var extentMatrix mat.Matrix = &mat.Dense{}
	var extents *mat.Dense
	if numCuboids > 0 {
		extents = mat.NewDense(numCuboids, 3, nil)
		extentMatrix = extents
	}

	// Sequential fold over cuboids: each step scales the then-current
	// point coordinates, so overlapping boxes compose multiplicatively.
	// Must not be parallelized across cuboids.
	for i := 0; i < numCuboids; i++ {
		s := uni.Rand()
		var cx, cy, cz float64
		if a.scaleAboutCenter {
			cx, cy, cz = pose.At(i, 0), pose.At(i, 1), pose.At(i, 2)
		}
		for _, j := range mask.RowIndices(i) {
			points.Set(j, 0, cx+s*(points.At(j, 0)-cx))
			points.Set(j, 1, cy+s*(points.At(j, 1)-cy))
			points.Set(j, 2, cz+s*(points.At(j, 2)-cz))
		}
		extents.Set(i, 0, pose.At(i, 3)*s)
		extents.Set(i, 1, pose.At(i, 4)*s)
		extents.Set(i, 2, pose.At(i, 5)*s)
	}

	outLidar, err := lidar.WithFloats(points, sweep.LidarFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("scale scene: %w", err)
	}
	outCuboids, err := cuboids.WithFloats(extentMatrix, sweep.ExtentFields...)
	if err != nil {
		return nil, nil, fmt.Errorf("scale scene: %w", err)
	}
	return outLidar, outCuboids, nil
}

// negateInPlace flips the sign of every element of m. Empty matrices
// are left alone.
func negateInPlace(m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, -m.At(i, j))
		}
	}
}
