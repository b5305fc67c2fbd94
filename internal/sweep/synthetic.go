package sweep

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/argoai/argoverse2-api/internal/frame"
)

// SceneConfig controls the synthetic scene generator.
type SceneConfig struct {
	// NumPoints is the total lidar return count, scattered uniformly over
	// the ground plane disc plus a cluster inside each cuboid.
	NumPoints int
	// NumCuboids is the number of annotated objects.
	NumCuboids int
	// RangeM is the radius of the scattered background disc. Default 50.
	RangeM float64
	// PointsPerCuboid is how many of NumPoints are forced inside each
	// cuboid so that object-level augmentations have something to move.
	// Default 16.
	PointsPerCuboid int
}

// randReader adapts a rand.Rand to io.Reader so synthetic track UUIDs
// stay deterministic for a given source.
type randReader struct{ rng *rand.Rand }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint64())
	}
	return len(p), nil
}

var syntheticCategories = []string{
	"REGULAR_VEHICLE", "PEDESTRIAN", "BICYCLE", "BUS", "TRUCK",
}

// SyntheticScene builds a deterministic (given src) sweep: background
// points on a disc around the sensor, plus yaw-rotated vehicle-sized
// cuboids each seeded with interior points. Track identifiers are fresh
// UUIDs drawn from the same source.
func SyntheticScene(cfg SceneConfig, src rand.Source) (Lidar, Cuboids) {
	if cfg.RangeM == 0 {
		cfg.RangeM = 50
	}
	if cfg.PointsPerCuboid == 0 {
		cfg.PointsPerCuboid = 16
	}
	rng := rand.New(src)

	type box struct {
		tx, ty, tz float64
		l, w, h    float64
		yaw        float64
	}
	boxes := make([]box, cfg.NumCuboids)
	for i := range boxes {
		boxes[i] = box{
			tx:  (rng.Float64()*2 - 1) * cfg.RangeM * 0.6,
			ty:  (rng.Float64()*2 - 1) * cfg.RangeM * 0.6,
			tz:  0.8,
			l:   3.5 + rng.Float64()*2,
			w:   1.6 + rng.Float64()*0.6,
			h:   1.4 + rng.Float64()*1.2,
			yaw: rng.Float64() * 2 * math.Pi,
		}
	}

	interior := cfg.PointsPerCuboid * cfg.NumCuboids
	if interior > cfg.NumPoints {
		interior = cfg.NumPoints
	}
	background := cfg.NumPoints - interior

	xs := make([]float64, 0, cfg.NumPoints)
	ys := make([]float64, 0, cfg.NumPoints)
	zs := make([]float64, 0, cfg.NumPoints)
	for i := 0; i < background; i++ {
		r := cfg.RangeM * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		xs = append(xs, r*math.Cos(theta))
		ys = append(ys, r*math.Sin(theta))
		zs = append(zs, rng.Float64()*0.2)
	}
	for i := 0; i < interior; i++ {
		b := boxes[i%cfg.NumCuboids]
		// Uniform in the box frame, then rotate by yaw and translate.
		lx := (rng.Float64() - 0.5) * b.l * 0.9
		ly := (rng.Float64() - 0.5) * b.w * 0.9
		lz := (rng.Float64() - 0.5) * b.h * 0.9
		c, s := math.Cos(b.yaw), math.Sin(b.yaw)
		xs = append(xs, b.tx+c*lx-s*ly)
		ys = append(ys, b.ty+s*lx+c*ly)
		zs = append(zs, b.tz+lz)
	}

	lf := frame.New().
		MustAddFloats(ColX, xs).
		MustAddFloats(ColY, ys).
		MustAddFloats(ColZ, zs)

	tx := make([]float64, cfg.NumCuboids)
	ty := make([]float64, cfg.NumCuboids)
	tz := make([]float64, cfg.NumCuboids)
	ln := make([]float64, cfg.NumCuboids)
	wd := make([]float64, cfg.NumCuboids)
	ht := make([]float64, cfg.NumCuboids)
	qw := make([]float64, cfg.NumCuboids)
	qx := make([]float64, cfg.NumCuboids)
	qy := make([]float64, cfg.NumCuboids)
	qz := make([]float64, cfg.NumCuboids)
	cats := make([]string, cfg.NumCuboids)
	tracks := make([]string, cfg.NumCuboids)
	for i, b := range boxes {
		tx[i], ty[i], tz[i] = b.tx, b.ty, b.tz
		ln[i], wd[i], ht[i] = b.l, b.w, b.h
		// Yaw-only orientation about +z.
		qw[i] = math.Cos(b.yaw / 2)
		qz[i] = math.Sin(b.yaw / 2)
		cats[i] = syntheticCategories[rng.IntN(len(syntheticCategories))]
		tracks[i] = uuid.Must(uuid.NewRandomFromReader(randReader{rng})).String()
	}

	cf := frame.New().
		MustAddFloats(ColTx, tx).
		MustAddFloats(ColTy, ty).
		MustAddFloats(ColTz, tz).
		MustAddFloats(ColLength, ln).
		MustAddFloats(ColWidth, wd).
		MustAddFloats(ColHeight, ht).
		MustAddFloats(ColQw, qw).
		MustAddFloats(ColQx, qx).
		MustAddFloats(ColQy, qy).
		MustAddFloats(ColQz, qz).
		MustAddStrings(ColCategory, cats).
		MustAddStrings(ColTrackUUID, tracks)

	return Lidar{Frame: lf}, Cuboids{Frame: cf}
}
