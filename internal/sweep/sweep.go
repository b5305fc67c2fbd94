// Package sweep models one lidar sweep and its ground-truth annotations:
// the column vocabulary shared by the augmentation code, thin typed
// wrappers over the columnar frames, and a synthetic scene generator for
// tooling and tests.
package sweep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/argoai/argoverse2-api/internal/frame"
)

// Lidar point column names (sensor frame, metres).
const (
	ColX = "x"
	ColY = "y"
	ColZ = "z"
)

// Cuboid annotation column names: centre translation (metres),
// scalar-first orientation quaternion, and box extent (metres).
const (
	ColTx     = "tx_m"
	ColTy     = "ty_m"
	ColTz     = "tz_m"
	ColLength = "length_m"
	ColWidth  = "width_m"
	ColHeight = "height_m"
	ColQw     = "qw"
	ColQx     = "qx"
	ColQy     = "qy"
	ColQz     = "qz"

	ColCategory  = "category"
	ColTrackUUID = "track_uuid"
)

// LidarFields is the coordinate column ordering for lidar matrices.
var LidarFields = []string{ColX, ColY, ColZ}

// TranslationFields is the cuboid centre column ordering.
var TranslationFields = []string{ColTx, ColTy, ColTz}

// ExtentFields is the cuboid size column ordering.
var ExtentFields = []string{ColLength, ColWidth, ColHeight}

// QuatWXYZFields is the scalar-first orientation column ordering.
var QuatWXYZFields = []string{ColQw, ColQx, ColQy, ColQz}

// CuboidPoseFields is the canonical 10-column cuboid ordering consumed
// by the geometry primitives: translation, extent, then orientation.
var CuboidPoseFields = []string{
	ColTx, ColTy, ColTz,
	ColLength, ColWidth, ColHeight,
	ColQw, ColQx, ColQy, ColQz,
}

// Lidar wraps the tabular form of one lidar sweep.
type Lidar struct {
	Frame *frame.Frame
}

// AsMatrix extracts the given fields (default LidarFields) as an
// (N×len(fields)) matrix.
func (l Lidar) AsMatrix(fields ...string) (*mat.Dense, error) {
	if len(fields) == 0 {
		fields = LidarFields
	}
	m, err := l.Frame.Floats(fields...)
	if err != nil {
		return nil, fmt.Errorf("lidar: %w", err)
	}
	return m, nil
}

// Cuboids wraps the tabular form of the ground-truth annotations for
// one sweep.
type Cuboids struct {
	Frame *frame.Frame
}

// AsMatrix extracts the given fields (default CuboidPoseFields) as an
// (M×len(fields)) matrix.
func (c Cuboids) AsMatrix(fields ...string) (*mat.Dense, error) {
	if len(fields) == 0 {
		fields = CuboidPoseFields
	}
	m, err := c.Frame.Floats(fields...)
	if err != nil {
		return nil, fmt.Errorf("cuboids: %w", err)
	}
	return m, nil
}

// Categories returns the per-cuboid category labels.
func (c Cuboids) Categories() ([]string, error) {
	return c.Frame.Strings(ColCategory)
}

// TrackUUIDs returns the per-cuboid track identifiers.
func (c Cuboids) TrackUUIDs() ([]string, error) {
	return c.Frame.Strings(ColTrackUUID)
}

// URI identifies a sweep by log and nanosecond timestamp.
type URI struct {
	LogID       string
	TimestampNs int64
}

func (u URI) String() string {
	return fmt.Sprintf("%s@%d", u.LogID, u.TimestampNs)
}

// Sweep bundles the lidar returns and annotations captured at one
// timestamp.
type Sweep struct {
	URI     URI
	Lidar   Lidar
	Cuboids Cuboids
}
